package outline

import (
	"math"
)

// Segment is a single drawing command of a path together with its start point: a line, a quadratic or cubic Bézier, or an elliptical arc. It is parametrized over t in [0,1].
type Segment struct {
	Cmd        float64 // LineToCmd, QuadToCmd, CubeToCmd or ArcToCmd
	Start, End Point
	CP1, CP2   Point // control points for QuadToCmd (CP1) and CubeToCmd

	// arc parameters
	RX, RY, Phi  float64
	Large, Sweep bool
}

// Line returns a line segment from a to b.
func Line(a, b Point) Segment {
	return Segment{Cmd: LineToCmd, Start: a, End: b}
}

// Cube returns a cubic Bézier segment.
func Cube(p0, p1, p2, p3 Point) Segment {
	return Segment{Cmd: CubeToCmd, Start: p0, CP1: p1, CP2: p2, End: p3}
}

// IsLine returns true for line segments.
func (s Segment) IsLine() bool {
	return s.Cmd == LineToCmd || s.Cmd == CloseCmd
}

// IsDegenerate returns true if the segment has (nearly) zero length.
func (s Segment) IsDegenerate() bool {
	switch s.Cmd {
	case QuadToCmd:
		return s.Start.Equals(s.End) && s.Start.Equals(s.CP1)
	case CubeToCmd:
		return s.Start.Equals(s.End) && s.Start.Equals(s.CP1) && s.Start.Equals(s.CP2)
	}
	return s.Start.Equals(s.End)
}

func (s Segment) arcCenter() (Point, float64, float64) {
	cx, cy, theta0, theta1 := ellipseToCenter(s.Start.X, s.Start.Y, s.RX, s.RY, s.Phi, s.Large, s.Sweep, s.End.X, s.End.Y)
	return Point{cx, cy}, theta0, theta1
}

// PointAt returns the position at t.
func (s Segment) PointAt(t float64) Point {
	switch s.Cmd {
	case QuadToCmd:
		return quadraticBezierPos(s.Start, s.CP1, s.End, t)
	case CubeToCmd:
		return cubicBezierPos(s.Start, s.CP1, s.CP2, s.End, t)
	case ArcToCmd:
		if t == 0.0 {
			return s.Start
		} else if t == 1.0 {
			return s.End
		}
		c, theta0, theta1 := s.arcCenter()
		return ellipsePos(s.RX, s.RY, s.Phi, c.X, c.Y, theta0+t*(theta1-theta0))
	}
	return s.Start.Interpolate(s.End, t)
}

// Derivative returns the n-th derivative with respect to t at t, for n in [1,3].
func (s Segment) Derivative(t float64, n int) Point {
	switch s.Cmd {
	case QuadToCmd:
		if n == 1 {
			return quadraticBezierDeriv(s.Start, s.CP1, s.End, t)
		} else if n == 2 {
			return quadraticBezierDeriv2(s.Start, s.CP1, s.End)
		}
		return Point{}
	case CubeToCmd:
		if n == 1 {
			return cubicBezierDeriv(s.Start, s.CP1, s.CP2, s.End, t)
		} else if n == 2 {
			return cubicBezierDeriv2(s.Start, s.CP1, s.CP2, s.End, t)
		}
		return cubicBezierDeriv3(s.Start, s.CP1, s.CP2, s.End)
	case ArcToCmd:
		_, theta0, theta1 := s.arcCenter()
		dtheta := theta1 - theta0
		theta := theta0 + t*dtheta
		if n == 1 {
			return ellipseDeriv(s.RX, s.RY, s.Phi, theta).Mul(dtheta)
		} else if n == 2 {
			return ellipseDeriv2(s.RX, s.RY, s.Phi, theta).Mul(dtheta * dtheta)
		}
		return ellipseDeriv(s.RX, s.RY, s.Phi, theta).Mul(-dtheta * dtheta * dtheta)
	}
	if n == 1 {
		return s.End.Sub(s.Start)
	}
	return Point{}
}

// TangentAt returns the unit tangent in the direction of travel at t. When the first derivative vanishes, higher derivatives are used.
func (s Segment) TangentAt(t float64) Point {
	d := s.Derivative(t, 1)
	if d.Length() < Epsilon*1e3 {
		d = s.Derivative(t, 2)
		if 0.5 < t {
			// the curve approaches the end point from the opposite direction of the second derivative
			d = d.Neg()
		}
		if d.Length() < Epsilon*1e3 {
			d = s.Derivative(t, 3)
		}
		if d.Length() < Epsilon*1e3 {
			d = s.End.Sub(s.Start)
		}
	}
	return d.Norm(1.0)
}

// Split splits the segment at t into two segments.
func (s Segment) Split(t float64) (Segment, Segment) {
	switch s.Cmd {
	case QuadToCmd:
		q0, q1, q2, r0, r1, r2 := splitQuadraticBezier(s.Start, s.CP1, s.End, t)
		return Segment{Cmd: QuadToCmd, Start: q0, CP1: q1, End: q2}, Segment{Cmd: QuadToCmd, Start: r0, CP1: r1, End: r2}
	case CubeToCmd:
		q0, q1, q2, q3, r0, r1, r2, r3 := splitCubicBezier(s.Start, s.CP1, s.CP2, s.End, t)
		return Cube(q0, q1, q2, q3), Cube(r0, r1, r2, r3)
	case ArcToCmd:
		c, theta0, theta1 := s.arcCenter()
		theta := theta0 + t*(theta1-theta0)
		mid := ellipsePos(s.RX, s.RY, s.Phi, c.X, c.Y, theta)
		a, b := s, s
		a.End, b.Start = mid, mid
		a.Large = math.Pi < math.Abs(theta-theta0)
		b.Large = math.Pi < math.Abs(theta1-theta)
		return a, b
	}
	mid := s.Start.Interpolate(s.End, t)
	return Line(s.Start, mid), Line(mid, s.End)
}

// Reverse returns the segment in the opposite direction.
func (s Segment) Reverse() Segment {
	r := s
	r.Start, r.End = s.End, s.Start
	if s.Cmd == CubeToCmd {
		r.CP1, r.CP2 = s.CP2, s.CP1
	} else if s.Cmd == ArcToCmd {
		r.Sweep = !s.Sweep
	}
	return r
}

// ToCubics converts the segment to cubic Béziers, arcs may result in several cubic Béziers.
func (s Segment) ToCubics() []Segment {
	switch s.Cmd {
	case QuadToCmd:
		c1, c2 := quadraticToCubicBezier(s.Start, s.CP1, s.End)
		return []Segment{Cube(s.Start, c1, c2, s.End)}
	case CubeToCmd:
		return []Segment{s}
	case ArcToCmd:
		segs := []Segment{}
		for _, b := range ellipseToCubicBeziers(s.Start, s.RX, s.RY, s.Phi, s.Large, s.Sweep, s.End) {
			segs = append(segs, Cube(b[0], b[1], b[2], b[3]))
		}
		return segs
	}
	return []Segment{Cube(s.Start, s.Start.Interpolate(s.End, 1.0/3.0), s.Start.Interpolate(s.End, 2.0/3.0), s.End)}
}

// Bounds returns the exact bounding box of the segment.
func (s Segment) Bounds() Rect {
	r := Rect{s.Start.X, s.Start.Y, 0.0, 0.0}.AddPoint(s.End)
	switch s.Cmd {
	case QuadToCmd:
		c1, c2 := quadraticToCubicBezier(s.Start, s.CP1, s.End)
		return Cube(s.Start, c1, c2, s.End).Bounds()
	case CubeToCmd:
		ts := cubicBezierExtrema(s.Start.X, s.CP1.X, s.CP2.X, s.End.X)
		ts = append(ts, cubicBezierExtrema(s.Start.Y, s.CP1.Y, s.CP2.Y, s.End.Y)...)
		for _, t := range ts {
			r = r.AddPoint(s.PointAt(t))
		}
	case ArcToCmd:
		for _, c := range s.ToCubics() {
			r = r.Add(c.Bounds())
		}
	}
	return r
}

// Length returns the arc length of the segment.
func (s Segment) Length() float64 {
	if s.IsLine() {
		return s.End.Sub(s.Start).Length()
	}
	speed := func(t float64) float64 {
		return s.Derivative(t, 1).Length()
	}
	return gaussLegendre7(speed, 0.0, 0.5) + gaussLegendre7(speed, 0.5, 1.0)
}

// area returns the signed area between the segment and the origin, which summed over a closed path is the area it encloses.
func (s Segment) area() float64 {
	if s.IsLine() {
		return 0.5 * s.Start.PerpDot(s.End)
	} else if s.Cmd == ArcToCmd {
		a := 0.0
		for _, c := range s.ToCubics() {
			a += c.area()
		}
		return a
	}
	// the integrand is a polynomial of degree 5 or less, which three-point Gauss-Legendre integrates exactly
	return 0.5 * gaussLegendre3(func(t float64) float64 {
		return s.PointAt(t).PerpDot(s.Derivative(t, 1))
	}, 0.0, 1.0)
}

// Nearest returns the parameter of the point on the segment closest to p, and its distance to p.
func (s Segment) Nearest(p Point) (float64, float64) {
	if s.IsLine() {
		d := s.End.Sub(s.Start)
		l2 := d.LengthSquared()
		if l2 == 0.0 {
			return 0.0, p.Distance(s.Start)
		}
		t := math.Max(0.0, math.Min(1.0, p.Sub(s.Start).Dot(d)/l2))
		return t, p.Distance(s.PointAt(t))
	}

	const n = 32
	tBest, dBest := 0.0, math.Inf(1)
	for i := 0; i <= n; i++ {
		t := float64(i) / n
		if d := p.Distance(s.PointAt(t)); d < dBest {
			tBest, dBest = t, d
		}
	}

	// Newton iterations on (B(t)-p).B'(t) = 0
	t := tBest
	for i := 0; i < 8; i++ {
		q := s.PointAt(t).Sub(p)
		d1 := s.Derivative(t, 1)
		d2 := s.Derivative(t, 2)
		f := q.Dot(d1)
		df := d1.Dot(d1) + q.Dot(d2)
		if equal(df, 0.0) {
			break
		}
		tNext := math.Max(0.0, math.Min(1.0, t-f/df))
		if math.Abs(tNext-t) < 1e-12 {
			t = tNext
			break
		}
		t = tNext
	}
	if d := p.Distance(s.PointAt(t)); d < dBest {
		tBest, dBest = t, d
	}
	return tBest, dBest
}

// path returns the segment as a path.
func (s Segment) path() *Path {
	p := &Path{}
	p.MoveTo(s.Start.X, s.Start.Y)
	p.appendSegment(s)
	return p
}
