package outline

import (
	"fmt"
	"math"
	"sort"
)

// BooleanOp is a boolean operation on two paths.
type BooleanOp int

// see BooleanOp
const (
	Union        BooleanOp = iota // area covered by either path
	Intersection                  // area covered by both paths
	Difference                    // area of the first path not covered by the second
	Xor                           // area covered by exactly one path
	Cut                           // area of the first path divided into pieces along the second
	Slice                         // first path split where the second crosses it
)

var booleanOpNames = []string{"union", "intersection", "difference", "xor", "cut", "slice"}

func (op BooleanOp) String() string {
	if op < 0 || int(op) >= len(booleanOpNames) {
		return fmt.Sprintf("BooleanOp(%d)", int(op))
	}
	return booleanOpNames[op]
}

// MarshalText implements encoding.TextMarshaler.
func (op BooleanOp) MarshalText() ([]byte, error) {
	if op < 0 || int(op) >= len(booleanOpNames) {
		return nil, fmt.Errorf("unknown boolean operation %d", int(op))
	}
	return []byte(booleanOpNames[op]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *BooleanOp) UnmarshalText(b []byte) error {
	for i, name := range booleanOpNames {
		if name == string(b) {
			*op = BooleanOp(i)
			return nil
		}
	}
	return fmt.Errorf("unknown boolean operation %q", string(b))
}

// ordered returns true if the result depends on the order of the operands.
func (op BooleanOp) ordered() bool {
	return op == Difference || op == Cut || op == Slice
}

// BooleanError is the result code of a boolean operation that could not be performed.
type BooleanError int

// see BooleanError
const (
	ErrNoPath         BooleanError = iota + 1 // an operand is not a path
	ErrTooFewOperands                         // not enough operands for the operation
	ErrAmbiguousOrder                         // more than two operands for an operation that depends on their order
	ErrArrangement                            // the arrangement engine failed
)

func (err BooleanError) Error() string {
	switch err {
	case ErrNoPath:
		return "boolean: operand is not a path"
	case ErrTooFewOperands:
		return "boolean: too few operands"
	case ErrAmbiguousOrder:
		return "boolean: operand order is ambiguous"
	case ErrArrangement:
		return "boolean: arrangement failed"
	}
	return fmt.Sprintf("boolean: error %d", int(err))
}

////////////////////////////////////////////////////////////////

// Boolean returns the boolean combination of a and b, which are filled under fillRuleA and fillRuleB respectively. For Cut, b only divides a and fillRuleB is ignored. For Slice, both paths are taken as unfilled and the result consists of open pieces of a. A result with fewer than two drawing commands is returned as an empty path.
func Boolean(a, b *Path, op BooleanOp, fillRuleA, fillRuleB FillRule) (*Path, error) {
	ps, err := BooleanNested(a, b, op, fillRuleA, fillRuleB)
	if err != nil {
		return nil, err
	}
	return (&Path{}).Append(ps...), nil
}

// BooleanNested is like Boolean, but returns one path per outer contour together with its direct holes. For Slice each piece is returned separately.
func BooleanNested(a, b *Path, op BooleanOp, fillRuleA, fillRuleB FillRule) ([]*Path, error) {
	if a == nil || b == nil {
		return nil, ErrNoPath
	}

	var ps []*Path
	switch op {
	case Union, Intersection, Difference, Xor:
		ra, err := NewRegion(a, fillRuleA, Tolerance)
		if err != nil {
			return nil, fmt.Errorf("%v of first operand: %w", op, err)
		}
		rb, err := NewRegion(b, fillRuleB, Tolerance)
		if err != nil {
			return nil, fmt.Errorf("%v of second operand: %w", op, err)
		}
		r, err := ra.Combine(rb, op)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", op, err)
		}
		ps = r.ToNestedPaths()
	case Cut:
		ra, err := NewRegion(a, fillRuleA, Tolerance)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", op, err)
		}
		ps = cut(ra, flattenSubpaths(b, Tolerance))
	case Slice:
		ps = slice(a, b, Tolerance)
	default:
		return nil, fmt.Errorf("unknown boolean operation %d", int(op))
	}

	if drawCount(ps) < 2 {
		return nil, nil
	}
	return ps, nil
}

// BooleanAll combines all paths by op from left to right, each filled under fillRule. A single operand is only accepted for Union, which normalizes it, and the order dependent operations (Difference, Cut and Slice) accept exactly two operands.
func BooleanAll(ps []*Path, op BooleanOp, fillRule FillRule) (*Path, error) {
	for _, p := range ps {
		if p == nil {
			return nil, ErrNoPath
		}
	}
	if len(ps) == 0 || len(ps) == 1 && op != Union {
		return nil, ErrTooFewOperands
	} else if 2 < len(ps) && op.ordered() {
		return nil, ErrAmbiguousOrder
	}

	if len(ps) == 1 {
		r, err := NewRegion(ps[0], fillRule, Tolerance)
		if err != nil {
			return nil, err
		}
		q := r.ToPath()
		if drawCount([]*Path{q}) < 2 {
			return &Path{}, nil
		}
		return q, nil
	}

	res, err := Boolean(ps[0], ps[1], op, fillRule, fillRule)
	if err != nil {
		return nil, err
	}
	for _, p := range ps[2:] {
		// the intermediate result is normalized, counter clockwise contours fill
		if res, err = Boolean(res, p, op, NonZero, fillRule); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// drawCount returns the number of drawing commands of all paths.
func drawCount(ps []*Path) int {
	n := 0
	for _, p := range ps {
		for i := 0; i < len(p.d); {
			if p.d[i] != MoveToCmd {
				n++
			}
			i += cmdLen(p.d[i])
		}
	}
	return n
}

////////////////////////////////////////////////////////////////

// sliceCut is a position on a subpath where it is sliced.
type sliceCut struct {
	seg int
	t   float64
}

// slice splits the subpaths of a where they cross b, keeping the original curves of a.
func slice(a, b *Path, tolerance float64) []*Path {
	fsb := flattenSubpaths(b, tolerance)
	ps := []*Path{}
	for _, fa := range flattenSubpaths(a, tolerance) {
		cuts := sliceCuts(fa, fsb)
		ps = append(ps, splitSubpath(fa.segs, fa.closed, cuts)...)
	}
	return ps
}

// sliceCuts returns the positions on the original segments of fa where it intersects any of fsb.
func sliceCuts(fa flatSubpath, fsb []flatSubpath) []sliceCut {
	cuts := []sliceCut{}
	for i := 0; i < fa.edges(); i++ {
		a0, a1 := fa.edge(i)
		r0, r1 := fa.refs[i], segmentRef{len(fa.segs) - 1, 1.0}
		if i+1 < len(fa.refs) {
			r1 = fa.refs[i+1]
		}
		if r0.seg != r1.seg {
			r0 = segmentRef{r1.seg, 0.0}
		}
		for _, fb := range fsb {
			for j := 0; j < fb.edges(); j++ {
				b0, b1 := fb.edge(j)
				pos, ta, _, ok := intersectionSegmentSegment(a0, a1, b0, b1)
				if !ok {
					continue
				}
				s := fa.segs[r1.seg]
				t := r0.t + ta*(r1.t-r0.t)
				if !s.IsLine() {
					t = refineNearest(s, pos, t)
				}
				cuts = append(cuts, sliceCut{r1.seg, t})
			}
		}
	}
	return cuts
}

// refineNearest improves the parameter t of the point on s closest to p by Newton iterations.
func refineNearest(s Segment, p Point, t float64) float64 {
	for i := 0; i < 8; i++ {
		q := s.PointAt(t).Sub(p)
		d1 := s.Derivative(t, 1)
		d2 := s.Derivative(t, 2)
		df := d1.Dot(d1) + q.Dot(d2)
		if equal(df, 0.0) {
			break
		}
		tNext := math.Max(0.0, math.Min(1.0, t-q.Dot(d1)/df))
		if math.Abs(tNext-t) < 1e-12 {
			return tNext
		}
		t = tNext
	}
	return t
}

// splitSubpath splits the segments of a subpath at the cuts into open pieces. A closed subpath without cuts is returned whole and closed, otherwise the piece running through its start point is kept in one piece.
func splitSubpath(segs []Segment, closed bool, cuts []sliceCut) []*Path {
	sort.Slice(cuts, func(i, j int) bool {
		if cuts[i].seg != cuts[j].seg {
			return cuts[i].seg < cuts[j].seg
		}
		return cuts[i].t < cuts[j].t
	})

	// split the segments, marking the pieces that start at a cut
	pieces := []Segment{}
	starts := []bool{}
	pending := false
	k := 0
	for i, s := range segs {
		t0 := 0.0
		rest := s
		for ; k < len(cuts) && cuts[k].seg == i; k++ {
			t := cuts[k].t
			if t-t0 < Epsilon {
				pending = true
				continue
			} else if 1.0-t < Epsilon {
				break
			}
			var first Segment
			first, rest = rest.Split((t - t0) / (1.0 - t0))
			pieces = append(pieces, first)
			starts = append(starts, pending)
			pending, t0 = true, t
		}
		pieces = append(pieces, rest)
		starts = append(starts, pending)
		pending = false
		for ; k < len(cuts) && cuts[k].seg == i; k++ {
			pending = true // cut at the end of the segment
		}
	}
	if pending && closed {
		starts[0] = true
	}

	first := -1
	for i, start := range starts {
		if start && (0 < i || closed) {
			first = i
			break
		}
	}
	if first == -1 {
		p := &Path{}
		p.MoveTo(segs[0].Start.X, segs[0].Start.Y)
		for _, s := range segs {
			p.appendSegment(s)
		}
		if closed {
			p.Close()
		}
		return []*Path{p}
	}

	order := make([]int, 0, len(pieces))
	if closed {
		for i := range pieces {
			order = append(order, (first+i)%len(pieces))
		}
	} else {
		for i := range pieces {
			order = append(order, i)
		}
	}

	ps := []*Path{}
	var p *Path
	for n, i := range order {
		if p == nil || 0 < n && starts[i] {
			if p != nil {
				ps = append(ps, p)
			}
			p = &Path{}
			p.MoveTo(pieces[i].Start.X, pieces[i].Start.Y)
		}
		p.appendSegment(pieces[i])
	}
	return append(ps, p)
}
