package outline

import (
	"fmt"
	"math"
)

// joinSnapDistance is the distance below which the end of the result and the start of the outgoing curve are considered to coincide, in which case no join is added.
const joinSnapDistance = 0.01

// JoinType selects the geometry that connects two consecutive offset curves.
type JoinType int

// see JoinType
const (
	BevelJoin JoinType = iota
	RoundJoin
	MiterJoin
	MiterClipJoin
	ExtrapolateJoin  // extrapolates the curvature of both curves, falls back to a miter join
	Extrapolate1Join // as ExtrapolateJoin, grows one circle when they don't intersect
	Extrapolate2Join // as ExtrapolateJoin, adjusts both circles by the same radius when they don't intersect
	Extrapolate3Join // as ExtrapolateJoin, replaces one circle by its tangent when they don't intersect
)

var joinNames = []string{"bevel", "round", "miter", "miter-clip", "extrapolate", "extrapolate1", "extrapolate2", "extrapolate3"}

func (jt JoinType) String() string {
	if jt < 0 || int(jt) >= len(joinNames) {
		return fmt.Sprintf("JoinType(%d)", int(jt))
	}
	return joinNames[jt]
}

// MarshalText implements encoding.TextMarshaler.
func (jt JoinType) MarshalText() ([]byte, error) {
	if jt < 0 || int(jt) >= len(joinNames) {
		return nil, fmt.Errorf("unknown join type %d", int(jt))
	}
	return []byte(joinNames[jt]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (jt *JoinType) UnmarshalText(b []byte) error {
	for i, name := range joinNames {
		if name == string(b) {
			*jt = JoinType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown join type %q", string(b))
}

// Joiner returns the join strategy for the join type.
func (jt JoinType) Joiner() Joiner {
	switch jt {
	case RoundJoin:
		return roundJoiner{}
	case MiterJoin:
		return miterJoiner{false}
	case MiterClipJoin:
		return miterJoiner{true}
	case ExtrapolateJoin:
		return extrapolateJoiner{0}
	case Extrapolate1Join:
		return extrapolateJoiner{1}
	case Extrapolate2Join:
		return extrapolateJoiner{2}
	case Extrapolate3Join:
		return extrapolateJoiner{3}
	}
	return bevelJoiner{}
}

////////////////////////////////////////////////////////////////

// JoinContext holds what a Joiner needs to connect the incoming offset curve, which is the last segment of Result, to the Outgoing offset curve. It lives for a single join.
type JoinContext struct {
	Result     *Path   // path being built, it ends with the incoming offset curve
	Outgoing   *Path   // offset of the next segment, it is appended completely to Result
	InTangent  Point   // unit tangent at the end of the incoming original segment
	OutTangent Point   // unit tangent at the start of the outgoing original segment
	MiterLimit float64 // limit of the miter length as a multiple of the half-width
	Width      float64 // signed half-width, positive offsets lie to the right of the direction of travel
}

// start returns the end point of the incoming curve.
func (ctx *JoinContext) start() Point {
	return ctx.Result.Pos()
}

// end returns the start point of the outgoing curve.
func (ctx *JoinContext) end() Point {
	return Point{ctx.Outgoing.d[1], ctx.Outgoing.d[2]}
}

// anchor returns the point on the original path at the join.
func (ctx *JoinContext) anchor() Point {
	return ctx.start().Add(ctx.InTangent.Rot90CCW().Mul(ctx.Width))
}

// limit returns the maximum distance from the anchor of the join geometry.
func (ctx *JoinContext) limit() float64 {
	return ctx.MiterLimit * math.Abs(ctx.Width)
}

// outgoingSegment returns the first curve of the outgoing path.
func (ctx *JoinContext) outgoingSegment() (Segment, bool) {
	if len(ctx.Outgoing.d) <= cmdLen(MoveToCmd) {
		return Segment{}, false
	}
	return segmentAt(ctx.Outgoing.d, cmdLen(MoveToCmd), ctx.end()), true
}

// finish appends the outgoing path.
func (ctx *JoinContext) finish() {
	ctx.Result.stitch(ctx.Outgoing)
}

// Joiner synthesizes the geometry that connects two consecutive offset curves. It must append all of ctx.Outgoing to ctx.Result.
type Joiner interface {
	Join(ctx *JoinContext)
}

// join connects the incoming and outgoing offset curves using jr. Joins on the inner side of the turn always use a bevel.
func join(ctx *JoinContext, jr Joiner) {
	if ctx.Outgoing.Empty() {
		return
	} else if ctx.Result.Empty() {
		ctx.Result.stitch(ctx.Outgoing)
		return
	}

	start, end := ctx.start(), ctx.end()
	if start.Distance(end) < joinSnapDistance {
		// the points are close enough to not need a join
		if ctx.Result.lastCmd() != MoveToCmd && !start.Equals(end) {
			ctx.Result.setEnd(end)
		}
		ctx.finish()
		return
	}

	if ctx.InTangent.PerpDot(ctx.OutTangent)*sign(ctx.Width) <= 0.0 {
		jr = bevelJoiner{}
	}
	jr.Join(ctx)
}

////////////////////////////////////////////////////////////////

type bevelJoiner struct{}

// Join connects with a straight line.
func (bevelJoiner) Join(ctx *JoinContext) {
	ctx.finish()
}

type roundJoiner struct{}

// Join connects with a circular arc around the anchor with a radius of the half-width.
func (roundJoiner) Join(ctx *JoinContext) {
	end := ctx.end()
	w := ctx.Width
	ctx.Result.ArcTo(math.Abs(w), math.Abs(w), 0.0, false, 0.0 < w, end.X, end.Y)
	ctx.finish()
}

type miterJoiner struct {
	clip bool
}

// Join extends both tangents until they meet. When the tip lies further than the miter limit from the anchor it is either clipped at the limit or omitted.
func (j miterJoiner) Join(ctx *JoinContext) {
	start, end := ctx.start(), ctx.end()
	p, ok := intersectionLineLine(start, ctx.InTangent, end, ctx.OutTangent)
	if ok {
		anchor := ctx.anchor()
		if p.Distance(anchor) <= ctx.limit() {
			// extends a straight incoming curve
			ctx.Result.LineTo(p.X, p.Y)
		} else if j.clip {
			if p1, p2, ok := miterClip(start, ctx.InTangent, end, ctx.OutTangent, anchor, p, ctx.limit()); ok {
				ctx.Result.LineTo(p1.X, p1.Y)
				ctx.Result.LineTo(p2.X, p2.Y)
			}
		} else {
			Logger().Debug("miter join exceeds limit", "anchor", anchor, "tip", p)
		}
	}
	// a straight outgoing curve is merged with the line to its start
	ctx.finish()
}

// miterClip returns where the line perpendicular to the bisector at the limit distance from the anchor crosses the incoming and outgoing tangent lines.
func miterClip(start, inTangent, end, outTangent, anchor, tip Point, limit float64) (Point, Point, bool) {
	versor := tip.Sub(anchor).Norm(1.0)
	limitPoint := anchor.Add(versor.Mul(limit))
	p1, ok1 := intersectionLineLine(start, inTangent, limitPoint, versor.Rot90CW())
	p2, ok2 := intersectionLineLine(end, outTangent, limitPoint, versor.Rot90CW())
	return p1, p2, ok1 && ok2
}

////////////////////////////////////////////////////////////////

type extrapolateJoiner struct {
	variant int
}

// pickSolution returns the intersection that does not lie beyond end along the outgoing tangent, or the one nearest to end if both qualify.
func pickSolution(points []Point, tangent, end Point) (Point, bool) {
	found := false
	var sol Point
	for _, pt := range points {
		if 0.0 < tangent.Dot(pt.Sub(end)) {
			continue
		}
		if !found || pt.Distance(end) < sol.Distance(end) {
			sol = pt
			found = true
		}
	}
	return sol, found
}

// nearestPoint returns the point nearest to ref.
func nearestPoint(points []Point, ref Point) (Point, bool) {
	if len(points) == 0 {
		return Point{}, false
	}
	best := points[0]
	for _, pt := range points[1:] {
		if pt.Distance(ref) < best.Distance(ref) {
			best = pt
		}
	}
	return best, true
}

// expandCircle grows the circle through point with the given tangent, keeping its center on the same side, until it touches outer from the inside. It returns the touching point.
func expandCircle(inner *Circle, outer Circle, point, tangent Point) (Point, bool) {
	n := tangent.Rot90CCW()
	if n.Dot(inner.Center.Sub(point)) < 0.0 {
		n = n.Neg()
	}
	q := point.Sub(outer.Center)
	div := 2.0 * (q.Dot(n) + outer.Radius)
	if equal(div, 0.0) || outer.Radius <= q.Length() {
		return Point{}, false
	}
	r := (outer.Radius*outer.Radius - q.LengthSquared()) / div
	*inner = Circle{point.Add(n.Mul(r)), r}
	if inner.Center.Equals(outer.Center) {
		return Point{}, false
	}
	return outer.Center.Add(inner.Center.Sub(outer.Center).Norm(outer.Radius)), true
}

// adjustCircles changes the radius of both circles by the same amount in opposite directions so that they touch, while each still passes through its point with the same tangent. It returns the touching point, which lies on the line through both centers.
func adjustCircles(c1, c2 *Circle, point1, point2 Point) (Point, bool) {
	n1 := c1.Center.Sub(point1).Norm(1.0) // towards the center
	n2 := c2.Center.Sub(point2).Norm(1.0)
	sumN := n1.Add(n2)
	dr := c2.Radius - c1.Radius
	dc := c2.Center.Sub(c1.Center)

	a := 4.0 - sumN.LengthSquared()
	b := 4.0*dr - 2.0*dc.Dot(sumN)
	c := dr*dr - dc.LengthSquared()
	x1, x2 := solveQuadraticFormula(a, b, c)
	delta := x1
	if math.IsNaN(delta) || !math.IsNaN(x2) && math.Abs(x2) < math.Abs(x1) {
		delta = x2
	}
	if math.IsNaN(delta) || c1.Radius <= delta || c2.Radius+delta <= 0.0 {
		return Point{}, false
	}

	*c1 = Circle{c1.Center.Sub(n1.Mul(delta)), c1.Radius - delta}
	*c2 = Circle{c2.Center.Add(n2.Mul(delta)), c2.Radius + delta}
	big, small := *c1, *c2
	if big.Radius < small.Radius {
		big, small = small, big
	}
	if big.Center.Equals(small.Center) {
		return Point{}, false
	}
	return big.Center.Add(small.Center.Sub(big.Center).Norm(big.Radius)), true
}

// backwards returns true if the circle is smaller than the half-width and its center lies within the stroke at the anchor, where the offset curve runs backwards.
func backwards(c Circle, anchor Point, w float64) bool {
	return !c.IsInf() && c.Radius < math.Abs(w) && c.Center.Distance(anchor) < math.Abs(w)
}

// arcAround appends an arc over c from the current position to end, counter clockwise if sweep is set.
func arcAround(p *Path, c Circle, sweep bool, end Point) {
	start := p.Pos()
	theta := angleNorm(end.Sub(c.Center).Angle() - start.Sub(c.Center).Angle())
	if !sweep {
		theta = 2.0*math.Pi - theta
	}
	p.ArcTo(c.Radius, c.Radius, 0.0, math.Pi < theta, sweep, end.X, end.Y)
}

// Join extends the incoming and outgoing curves along their osculating circles until they meet, and clips the result at the miter limit measured along an arc.
func (j extrapolateJoiner) Join(ctx *JoinContext) {
	w := ctx.Width
	start, end := ctx.start(), ctx.end()
	tang1, tang2 := ctx.InTangent, ctx.OutTangent
	anchor := ctx.anchor()

	incoming, ok1 := ctx.Result.lastSegment()
	outgoing, ok2 := ctx.outgoingSegment()
	if !ok1 || !ok2 {
		miterJoiner{true}.Join(ctx)
		return
	}
	circle1 := TouchingCircleEnd(incoming)
	circle2 := TouchingCircleStart(outgoing)

	var points []Point
	incLine, outLine := circle1.IsInf(), circle2.IsInf()
	if incLine && outLine {
		miterJoiner{false}.Join(ctx)
		return
	} else if incLine {
		points = circle2.IntersectLine(start, start.Add(tang1))
	} else if outLine {
		points = circle1.IntersectLine(end, end.Add(tang2))
	} else {
		points = circle1.IntersectCircle(circle2)
		if len(points) == 0 {
			switch j.variant {
			case 1, 2:
				// extrapolating is meaningless when a circle is smaller than the stroke and lies within it
				if backwards(circle1, anchor, w) || backwards(circle2, anchor, w) {
					roundJoiner{}.Join(ctx)
					return
				}
				startInside, endInside := circle2.Contains(start), circle1.Contains(end)
				if startInside == endInside {
					miterJoiner{true}.Join(ctx)
					return
				}
				if j.variant == 2 {
					if pt, ok := adjustCircles(&circle1, &circle2, start, end); ok {
						points = []Point{pt}
					}
				} else if startInside {
					if pt, ok := expandCircle(&circle1, circle2, start, tang1); ok {
						points = []Point{pt}
					}
				} else if pt, ok := expandCircle(&circle2, circle1, end, tang2); ok {
					points = []Point{pt}
				}
			case 3:
				if 0.0 < tang1.PerpDot(circle1.Center.Sub(start)) {
					points = circle2.IntersectLine(start, start.Add(tang1))
					circle1 = infiniteCircle(tang1.Rot90CCW())
				} else {
					points = circle1.IntersectLine(end, end.Add(tang2))
					circle2 = infiniteCircle(tang2.Rot90CCW())
				}
			}
		}
	}

	sol, ok := pickSolution(points, tang2, end)
	if !ok || 0.0 < tang1.Dot(start.Sub(sol)) {
		Logger().Debug("extrapolate join has no solution", "variant", j.variant, "anchor", anchor)
		miterJoiner{false}.Join(ctx)
		return
	}

	// clip at the miter limit, measured along the arc through the anchor and the solution that is symmetric around the bisector
	p1, p2 := sol, sol
	clipped := false
	limit := ctx.limit()
	bisector := start.Sub(anchor).Norm(1.0).Add(end.Sub(anchor).Norm(1.0))
	if equal(bisector.Length(), 0.0) {
		bisector = tang1
	}
	bisector = bisector.Norm(1.0)
	chord := sol.Sub(anchor)
	if center, ok := intersectionLineLine(anchor.Add(sol).Mul(0.5), chord.Rot90CCW(), anchor, bisector.Rot90CCW()); ok && !equal(chord.Length(), 0.0) {
		radius := center.Distance(anchor)
		limitAngle := limit / radius
		v0, v1 := anchor.Sub(center), sol.Sub(center)
		if limitAngle < math.Abs(v0.AngleBetween(v1)) {
			clipped = true
			limitDir := v0.Rot(sign(v0.PerpDot(v1))*limitAngle, Point{})
			l0, l1 := center, center.Add(limitDir)
			p1, p2, clipped = clipPoints(circle1, circle2, start, tang1, end, tang2, l0, l1, center.Add(limitDir.Norm(radius)))
		}
	} else if limit < chord.Length() {
		limitPoint := anchor.Add(bisector.Mul(limit))
		l0, l1 := limitPoint, limitPoint.Add(bisector.Rot90CCW())
		p1, p2, clipped = clipPoints(circle1, circle2, start, tang1, end, tang2, l0, l1, limitPoint)
	}
	if !clipped {
		p1, p2 = sol, sol
	}

	res := ctx.Result
	if circle1.IsInf() {
		res.LineTo(p1.X, p1.Y)
	} else {
		// the circle is traversed counter clockwise when its center lies to the left
		arcAround(res, circle1, 0.0 < tang1.PerpDot(circle1.Center.Sub(start)), p1)
	}
	if clipped {
		res.LineTo(p2.X, p2.Y)
	}
	if circle2.IsInf() {
		res.LineTo(end.X, end.Y)
	} else {
		arcAround(res, circle2, 0.0 < tang2.PerpDot(circle2.Center.Sub(end)), end)
	}
	ctx.finish()
}

// clipPoints returns where the incoming and outgoing extrapolations cross the limit line through l0 and l1, picking the crossings nearest to ref.
func clipPoints(circle1, circle2 Circle, start, tang1, end, tang2, l0, l1, ref Point) (Point, Point, bool) {
	var p1, p2 Point
	var ok1, ok2 bool
	if circle1.IsInf() {
		p1, ok1 = intersectionLineLine(start, tang1, l0, l1.Sub(l0))
	} else {
		p1, ok1 = nearestPoint(circle1.IntersectLine(l0, l1), ref)
	}
	if circle2.IsInf() {
		p2, ok2 = intersectionLineLine(end, tang2, l0, l1.Sub(l0))
	} else {
		p2, ok2 = nearestPoint(circle2.IntersectLine(l0, l1), ref)
	}
	return p1, p2, ok1 && ok2
}
