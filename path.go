// Package outline converts stroked paths into filled outlines, offsets (insets and outsets) filled paths and combines paths with boolean operations.
package outline

import (
	"math"
)

// Command values as powers of 2 so that whether any command exists in the path can be tested using a bitmask.
const (
	MoveToCmd = 1.0
	LineToCmd = 2.0
	QuadToCmd = 4.0
	CubeToCmd = 8.0
	ArcToCmd  = 16.0
	CloseCmd  = 32.0
)

// cmdLen returns the number of values (float64s) the path command contains.
func cmdLen(cmd float64) int {
	switch cmd {
	case MoveToCmd, LineToCmd, CloseCmd:
		return 4
	case QuadToCmd:
		return 6
	case CubeToCmd, ArcToCmd:
		return 8
	}
	panic("unknown path command")
}

// toArcFlags converts to the largeArc and sweep boolean flags given its value in the path.
func toArcFlags(f float64) (bool, bool) {
	large := (f == 1.0 || f == 3.0)
	sweep := (f == 2.0 || f == 3.0)
	return large, sweep
}

// fromArcFlags converts the largeArc and sweep boolean flags to a value stored in the path.
func fromArcFlags(large, sweep bool) float64 {
	f := 0.0
	if large {
		f += 1.0
	}
	if sweep {
		f += 2.0
	}
	return f
}

// Path defines a vector path in 2D using a series of commands (MoveTo, LineTo, QuadTo, CubeTo, ArcTo and Close). Each command consists of a number of float64 values (depending on the command) that fully define the action. The first value is the command itself (as a float64). The last two values is the end point position of the pen after the action (x,y). QuadTo defined one control point (x,y) in between, CubeTo defines two control points, and ArcTo defines (rx,ry,phi,large+sweep) i.e. the radius in x and y, its rotation (in radians) and the large and sweep booleans in one float64.
// Only valid commands are appended, so that LineTo has a non-zero length, QuadTo's and CubeTo's control point(s) don't (both) overlap with the start and end point, and ArcTo has non-zero radii and has non-zero length. For ArcTo we also make sure the angle is in the range [0, 2*PI) and we scale the radii up if they appear too small to fit the arc.
type Path struct {
	d []float64
}

// Reset clears the path but retains the same memory. This can be used in loops where you append and process paths every iteration, and avoid new memory allocations.
func (p *Path) Reset() {
	p.d = p.d[:0]
}

// Equals returns true if p and q are equal within tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.d) != len(q.d) {
		return false
	}
	for i := 0; i < len(p.d); i++ {
		if !equal(p.d[i], q.d[i]) {
			return false
		}
	}
	return true
}

// Copy returns a copy of p.
func (p *Path) Copy() *Path {
	q := &Path{d: make([]float64, len(p.d))}
	copy(q.d, p.d)
	return q
}

// Empty returns true if p is an empty path or consists of only MoveTos and Closes.
func (p *Path) Empty() bool {
	return p == nil || len(p.d) <= cmdLen(MoveToCmd)
}

// Len returns the number of commands in the path.
func (p *Path) Len() int {
	n := 0
	for i := 0; i < len(p.d); {
		i += cmdLen(p.d[i])
		n++
	}
	return n
}

// Closed returns true if the last subpath of p is a closed path.
func (p *Path) Closed() bool {
	return 0 < len(p.d) && p.d[len(p.d)-1] == CloseCmd
}

// Pos returns the current position of the path, which is the end point of the last command.
func (p *Path) Pos() Point {
	if 0 < len(p.d) {
		return Point{p.d[len(p.d)-3], p.d[len(p.d)-2]}
	}
	return Point{}
}

// StartPos returns the start point of the current subpath, i.e. it returns the position of the last MoveTo command.
func (p *Path) StartPos() Point {
	for i := len(p.d); 0 < i; {
		cmd := p.d[i-1]
		if cmd == MoveToCmd {
			return Point{p.d[i-3], p.d[i-2]}
		}
		i -= cmdLen(cmd)
	}
	return Point{}
}

// Coords returns all the coordinates of the segment start/end points. It omits zero-length Closes.
func (p *Path) Coords() []Point {
	coords := []Point{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		i += cmdLen(cmd)
		if len(coords) == 0 || cmd != CloseCmd || !coords[len(coords)-1].Equals(Point{p.d[i-3], p.d[i-2]}) {
			coords = append(coords, Point{p.d[i-3], p.d[i-2]})
		}
	}
	return coords
}

// Append appends path q to p and returns the extended path p.
func (p *Path) Append(qs ...*Path) *Path {
	if p.Empty() {
		p = &Path{}
	}
	for _, q := range qs {
		if !q.Empty() {
			p.d = append(p.d, q.d...)
		}
	}
	return p
}

// Join joins path q to p and returns the extended path p (or q if p is empty). It's like executing the commands in q to p in sequence, where if the first MoveTo of q doesn't coincide with p, or if p ends in Close, it will fallback to appending the paths.
func (p *Path) Join(q *Path) *Path {
	if q.Empty() {
		return p
	} else if p.Empty() {
		return q
	}

	if p.d[len(p.d)-1] == CloseCmd || !equal(p.d[len(p.d)-3], q.d[1]) || !equal(p.d[len(p.d)-2], q.d[2]) {
		return &Path{append(p.d, q.d...)}
	}

	d := q.d[cmdLen(MoveToCmd):]

	// add the first command through the command functions to use the optimization features
	// q is not empty, so starts with a MoveTo followed by other commands
	cmd := d[0]
	switch cmd {
	case MoveToCmd:
		p.MoveTo(d[1], d[2])
	case LineToCmd:
		p.LineTo(d[1], d[2])
	case QuadToCmd:
		p.QuadTo(d[1], d[2], d[3], d[4])
	case CubeToCmd:
		p.CubeTo(d[1], d[2], d[3], d[4], d[5], d[6])
	case ArcToCmd:
		large, sweep := toArcFlags(d[4])
		p.ArcTo(d[1], d[2], d[3], large, sweep, d[5], d[6])
	case CloseCmd:
		p.Close()
	}

	i := len(p.d)
	end := p.StartPos()
	p = &Path{append(p.d, d[cmdLen(cmd):]...)}

	// repair close commands
	for i < len(p.d) {
		cmd := p.d[i]
		if cmd == MoveToCmd {
			break
		} else if cmd == CloseCmd {
			p.d[i+1] = end.X
			p.d[i+2] = end.Y
			break
		}
		i += cmdLen(cmd)
	}
	return p
}

////////////////////////////////////////////////////////////////

// MoveTo moves the path to (x,y) without connecting the path. It starts a new independent subpath. Multiple subpaths can be useful when negating parts of a previous path by overlapping it with a path in the opposite direction. The behaviour for overlapping paths depends on the FillRule.
func (p *Path) MoveTo(x, y float64) {
	if 0 < len(p.d) && p.d[len(p.d)-1] == MoveToCmd {
		p.d[len(p.d)-3] = x
		p.d[len(p.d)-2] = y
		return
	}
	p.d = append(p.d, MoveToCmd, x, y, MoveToCmd)
}

// LineTo adds a linear path to (x,y).
func (p *Path) LineTo(x, y float64) {
	start := p.Pos()
	end := Point{x, y}
	if start.Equals(end) {
		return
	} else if cmdLen(LineToCmd) <= len(p.d) && p.d[len(p.d)-1] == LineToCmd {
		prevStart := Point{}
		if cmdLen(LineToCmd) < len(p.d) {
			prevStart = Point{p.d[len(p.d)-cmdLen(LineToCmd)-3], p.d[len(p.d)-cmdLen(LineToCmd)-2]}
		}

		// divide by length^2 since otherwise the perpdot between very small segments may be
		// below Epsilon
		da := start.Sub(prevStart)
		db := end.Sub(start)
		div := da.PerpDot(db)
		if length := da.Length() * db.Length(); equal(div/length, 0.0) && 0.0 < da.Dot(db) {
			// lines are parallel and extend each other
			p.d[len(p.d)-3] = x
			p.d[len(p.d)-2] = y
			return
		}
	}

	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	} else if p.d[len(p.d)-1] == CloseCmd {
		p.MoveTo(p.d[len(p.d)-3], p.d[len(p.d)-2])
	}
	p.d = append(p.d, LineToCmd, end.X, end.Y, LineToCmd)
}

// QuadTo adds a quadratic Bézier path with control point (cpx,cpy) and end point (x,y).
func (p *Path) QuadTo(cpx, cpy, x, y float64) {
	start := p.Pos()
	cp := Point{cpx, cpy}
	end := Point{x, y}
	if start.Equals(end) && start.Equals(cp) {
		return
	} else if !start.Equals(end) && collinearControl(start, cp, end) {
		p.LineTo(end.X, end.Y)
		return
	}

	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	} else if p.d[len(p.d)-1] == CloseCmd {
		p.MoveTo(p.d[len(p.d)-3], p.d[len(p.d)-2])
	}
	p.d = append(p.d, QuadToCmd, cp.X, cp.Y, end.X, end.Y, QuadToCmd)
}

// CubeTo adds a cubic Bézier path with control points (cpx1,cpy1) and (cpx2,cpy2) and end point (x,y).
func (p *Path) CubeTo(cpx1, cpy1, cpx2, cpy2, x, y float64) {
	start := p.Pos()
	cp1 := Point{cpx1, cpy1}
	cp2 := Point{cpx2, cpy2}
	end := Point{x, y}
	if start.Equals(end) && start.Equals(cp1) && start.Equals(cp2) {
		return
	} else if !start.Equals(end) && collinearControl(start, cp1, end) && collinearControl(start, cp2, end) {
		p.LineTo(end.X, end.Y)
		return
	}

	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	} else if p.d[len(p.d)-1] == CloseCmd {
		p.MoveTo(p.d[len(p.d)-3], p.d[len(p.d)-2])
	}
	p.d = append(p.d, CubeToCmd, cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y, CubeToCmd)
}

// collinearControl returns true if the control point cp lies on the segment between start and end, so that the curve degenerates to a line.
func collinearControl(start, cp, end Point) bool {
	if start.Equals(cp) || end.Equals(cp) {
		return true
	}
	d := end.Sub(start)
	c := cp.Sub(start)
	return equal(d.PerpDot(c)/d.Length()/c.Length(), 0.0) && 0.0 <= d.Dot(c) && c.LengthSquared() <= d.LengthSquared()
}

// ArcTo adds an arc with radii rx and ry, with rot the counter clockwise rotation with respect to the coordinate system in radians, large and sweep booleans (see https://developer.mozilla.org/en-US/docs/Web/SVG/Tutorial/Paths#Arcs), and (x,y) the end position of the pen. The start position of the pen was given by a previous command's end point.
func (p *Path) ArcTo(rx, ry, rot float64, large, sweep bool, x, y float64) {
	start := p.Pos()
	end := Point{x, y}
	if start.Equals(end) {
		return
	}
	if equal(rx, 0.0) || math.IsInf(rx, 0) || equal(ry, 0.0) || math.IsInf(ry, 0) {
		p.LineTo(end.X, end.Y)
		return
	}

	rx = math.Abs(rx)
	ry = math.Abs(ry)
	if equal(rx, ry) {
		rot = 0.0 // circle
	} else if rx < ry {
		rx, ry = ry, rx
		rot += math.Pi / 2.0
	}

	phi := angleNorm(rot)
	if math.Pi <= phi { // phi is canonical within 0 <= phi < 180
		phi -= math.Pi
	}

	// scale ellipse if rx and ry are too small
	lambda := ellipseRadiiCorrection(start, rx, ry, phi, end)
	if lambda > 1.0 {
		rx *= lambda
		ry *= lambda
	}

	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	} else if p.d[len(p.d)-1] == CloseCmd {
		p.MoveTo(p.d[len(p.d)-3], p.d[len(p.d)-2])
	}
	p.d = append(p.d, ArcToCmd, rx, ry, phi, fromArcFlags(large, sweep), end.X, end.Y, ArcToCmd)
}

// Close closes a (sub)path with a LineTo to the start of the path (the most recent MoveTo command). It also signals the path closes as opposed to being just a LineTo command, which can be significant for stroking purposes for example.
func (p *Path) Close() {
	if len(p.d) == 0 || p.d[len(p.d)-1] == CloseCmd {
		// already closed or empty
		return
	} else if p.d[len(p.d)-1] == MoveToCmd {
		// remove MoveTo + Close
		p.d = p.d[:len(p.d)-cmdLen(MoveToCmd)]
		return
	}

	end := p.StartPos()
	if p.d[len(p.d)-1] == LineToCmd && equal(p.d[len(p.d)-3], end.X) && equal(p.d[len(p.d)-2], end.Y) {
		// replace LineTo by Close if equal
		p.d[len(p.d)-1] = CloseCmd
		p.d[len(p.d)-cmdLen(LineToCmd)] = CloseCmd
		return
	} else if p.d[len(p.d)-1] == LineToCmd {
		// replace LineTo by Close if equidirectional extension
		start := Point{p.d[len(p.d)-3], p.d[len(p.d)-2]}
		prevStart := Point{}
		if cmdLen(LineToCmd) < len(p.d) {
			prevStart = Point{p.d[len(p.d)-cmdLen(LineToCmd)-3], p.d[len(p.d)-cmdLen(LineToCmd)-2]}
		}
		if equal(end.Sub(start).AngleBetween(start.Sub(prevStart)), 0.0) {
			p.d[len(p.d)-cmdLen(LineToCmd)] = CloseCmd
			p.d[len(p.d)-3] = end.X
			p.d[len(p.d)-2] = end.Y
			p.d[len(p.d)-1] = CloseCmd
			return
		}
	}
	p.d = append(p.d, CloseCmd, end.X, end.Y, CloseCmd)
}

////////////////////////////////////////////////////////////////

// lastCmd returns the last command of the path, or zero when the path is empty.
func (p *Path) lastCmd() float64 {
	if len(p.d) == 0 {
		return 0.0
	}
	return p.d[len(p.d)-1]
}

// lastSegment returns the last drawing command of the path as a segment.
func (p *Path) lastSegment() (Segment, bool) {
	if len(p.d) <= cmdLen(MoveToCmd) || p.d[len(p.d)-1] == MoveToCmd {
		return Segment{}, false
	}
	i := len(p.d) - cmdLen(p.d[len(p.d)-1])
	start := Point{p.d[i-3], p.d[i-2]}
	return segmentAt(p.d, i, start), true
}

// setEnd moves the end point of the last command to end. Control points are left in place.
func (p *Path) setEnd(end Point) {
	if len(p.d) == 0 {
		return
	}
	p.d[len(p.d)-3] = end.X
	p.d[len(p.d)-2] = end.Y
}

// appendSegment adds a segment through the command functions.
func (p *Path) appendSegment(s Segment) {
	switch s.Cmd {
	case LineToCmd, CloseCmd:
		p.LineTo(s.End.X, s.End.Y)
	case QuadToCmd:
		p.QuadTo(s.CP1.X, s.CP1.Y, s.End.X, s.End.Y)
	case CubeToCmd:
		p.CubeTo(s.CP1.X, s.CP1.Y, s.CP2.X, s.CP2.Y, s.End.X, s.End.Y)
	case ArcToCmd:
		p.ArcTo(s.RX, s.RY, s.Phi, s.Large, s.Sweep, s.End.X, s.End.Y)
	}
}

// stitch appends the drawing commands of the first subpath of q to p. When q does not start at the current position of p, a line is inserted to connect them. Closes in q are replayed as lines.
func (p *Path) stitch(q *Path) {
	if q.Empty() {
		return
	}
	start := Point{q.d[1], q.d[2]}
	if len(p.d) == 0 {
		p.MoveTo(start.X, start.Y)
	} else if !p.Pos().Equals(start) {
		p.LineTo(start.X, start.Y)
	}
	for i := cmdLen(MoveToCmd); i < len(q.d); {
		cmd := q.d[i]
		if cmd == MoveToCmd {
			break
		}
		p.appendSegment(segmentAt(q.d, i, Point{q.d[i-3], q.d[i-2]}))
		i += cmdLen(cmd)
	}
}

////////////////////////////////////////////////////////////////

// Segments returns the drawing commands of the path as segments. Closes are returned as lines and are omitted when they have zero length.
func (p *Path) Segments() []Segment {
	segs := []Segment{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		if cmd != MoveToCmd {
			s := segmentAt(p.d, i, Point{p.d[i-3], p.d[i-2]})
			if cmd != CloseCmd || !s.Start.Equals(s.End) {
				segs = append(segs, s)
			}
		}
		i += cmdLen(cmd)
	}
	return segs
}

// segmentAt returns the command at index i as a segment with the given start point.
func segmentAt(d []float64, i int, start Point) Segment {
	cmd := d[i]
	s := Segment{Cmd: cmd, Start: start}
	switch cmd {
	case MoveToCmd, LineToCmd, CloseCmd:
		if cmd == CloseCmd {
			s.Cmd = LineToCmd
		}
		s.End = Point{d[i+1], d[i+2]}
	case QuadToCmd:
		s.CP1 = Point{d[i+1], d[i+2]}
		s.End = Point{d[i+3], d[i+4]}
	case CubeToCmd:
		s.CP1 = Point{d[i+1], d[i+2]}
		s.CP2 = Point{d[i+3], d[i+4]}
		s.End = Point{d[i+5], d[i+6]}
	case ArcToCmd:
		s.RX, s.RY, s.Phi = d[i+1], d[i+2], d[i+3]
		s.Large, s.Sweep = toArcFlags(d[i+4])
		s.End = Point{d[i+5], d[i+6]}
	}
	return s
}

// Split splits the path into its independent subpaths. The path is split before each MoveTo command.
func (p *Path) Split() []*Path {
	if p.Empty() {
		return nil
	}
	var i, j int
	ps := []*Path{}
	for j < len(p.d) {
		cmd := p.d[j]
		if i < j && cmd == MoveToCmd {
			if cmdLen(MoveToCmd) < j-i {
				ps = append(ps, &Path{p.d[i:j:j]})
			}
			i = j
		}
		j += cmdLen(cmd)
	}
	if cmdLen(MoveToCmd) < j-i {
		ps = append(ps, &Path{p.d[i:j:j]})
	}
	return ps
}

// Reverse returns a new path that is the same path as p but in the reverse direction.
func (p *Path) Reverse() *Path {
	q := &Path{}
	for _, pi := range p.Split() {
		closed := pi.Closed()
		start := pi.Pos()
		if closed {
			start = Point{pi.d[1], pi.d[2]}
		}

		q.MoveTo(start.X, start.Y)
		scanner := pi.ReverseScanner()
		for scanner.Scan() {
			if scanner.Cmd() != MoveToCmd {
				q.appendSegment(scanner.Segment().Reverse())
			}
		}
		if closed {
			q.Close()
		} else if q.lastCmd() == MoveToCmd {
			q.d = q.d[:len(q.d)-cmdLen(MoveToCmd)]
		}
	}
	return q
}

// ReplaceArcs replaces all elliptical arcs by cubic Béziers.
func (p *Path) ReplaceArcs() *Path {
	q := &Path{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		switch cmd {
		case MoveToCmd:
			q.MoveTo(p.d[i+1], p.d[i+2])
		case CloseCmd:
			q.Close()
		case ArcToCmd:
			s := segmentAt(p.d, i, Point{p.d[i-3], p.d[i-2]})
			for _, b := range ellipseToCubicBeziers(s.Start, s.RX, s.RY, s.Phi, s.Large, s.Sweep, s.End) {
				q.CubeTo(b[1].X, b[1].Y, b[2].X, b[2].Y, b[3].X, b[3].Y)
			}
		default:
			q.appendSegment(segmentAt(p.d, i, Point{p.d[i-3], p.d[i-2]}))
		}
		i += cmdLen(cmd)
	}
	return q
}

// Translate translates the path by (x,y).
func (p *Path) Translate(x, y float64) *Path {
	q := p.Copy()
	for i := 0; i < len(q.d); {
		cmd := q.d[i]
		switch cmd {
		case MoveToCmd, LineToCmd, CloseCmd:
			q.d[i+1] += x
			q.d[i+2] += y
		case QuadToCmd:
			q.d[i+1] += x
			q.d[i+2] += y
			q.d[i+3] += x
			q.d[i+4] += y
		case CubeToCmd:
			q.d[i+1] += x
			q.d[i+2] += y
			q.d[i+3] += x
			q.d[i+4] += y
			q.d[i+5] += x
			q.d[i+6] += y
		case ArcToCmd:
			q.d[i+5] += x
			q.d[i+6] += y
		}
		i += cmdLen(cmd)
	}
	return q
}

// Bounds returns the exact bounding box rectangle of the path.
func (p *Path) Bounds() Rect {
	if p.Empty() {
		return Rect{}
	}
	first := true
	r := Rect{}
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		if cmd == MoveToCmd {
			pos := Point{p.d[i+1], p.d[i+2]}
			if first {
				r = Rect{pos.X, pos.Y, 0.0, 0.0}
				first = false
			} else {
				r = r.AddPoint(pos)
			}
		} else {
			r = r.Add(segmentAt(p.d, i, Point{p.d[i-3], p.d[i-2]}).Bounds())
		}
		i += cmdLen(cmd)
	}
	return r
}

// Area returns the signed area of the path, every subpath is considered closed. Counter clockwise subpaths have a positive area.
func (p *Path) Area() float64 {
	a := 0.0
	q := p.ReplaceArcs()
	for _, pi := range q.Split() {
		start := Point{pi.d[1], pi.d[2]}
		end := start
		for i := cmdLen(MoveToCmd); i < len(pi.d); {
			s := segmentAt(pi.d, i, Point{pi.d[i-3], pi.d[i-2]})
			a += s.area()
			end = s.End
			i += cmdLen(pi.d[i])
		}
		if !end.Equals(start) {
			a += 0.5 * end.PerpDot(start)
		}
	}
	return a
}

// Length returns the length of the path using Gauss-Legendre quadrature per segment.
func (p *Path) Length() float64 {
	l := 0.0
	for _, s := range p.ReplaceArcs().Segments() {
		l += s.Length()
	}
	return l
}

////////////////////////////////////////////////////////////////

// Rectangle returns a rectangle of width w and height h with its bottom-left corner at the origin, drawn counter clockwise.
func Rectangle(w, h float64) *Path {
	if equal(w, 0.0) || equal(h, 0.0) {
		return &Path{}
	}
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(w, 0.0)
	p.LineTo(w, h)
	p.LineTo(0.0, h)
	p.Close()
	return p
}

// Ellipse returns an ellipse centered at the origin with radii rx and ry, drawn counter clockwise using two arcs.
func Ellipse(rx, ry float64) *Path {
	if equal(rx, 0.0) || equal(ry, 0.0) {
		return &Path{}
	}
	p := &Path{}
	p.MoveTo(rx, 0.0)
	p.ArcTo(rx, ry, 0.0, false, true, -rx, 0.0)
	p.ArcTo(rx, ry, 0.0, false, true, rx, 0.0)
	p.Close()
	return p
}
