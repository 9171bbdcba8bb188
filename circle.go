package outline

import (
	"math"
)

// touchingTolerance is the squared derivative length below which a derivative is considered to vanish when estimating curvature.
const touchingTolerance = 0.01

// Circle is a circle with a center and a radius. A circle with an infinite radius represents a straight line, its center then lies at infinity.
type Circle struct {
	Center Point
	Radius float64
}

// infiniteCircle returns the circle of a straight curve, with its center at infinity in the direction of normal.
func infiniteCircle(normal Point) Circle {
	inf := func(f float64) float64 {
		if f == 0.0 {
			return 0.0
		}
		return math.Copysign(math.Inf(1), f)
	}
	return Circle{Point{inf(normal.X), inf(normal.Y)}, math.Inf(1)}
}

// IsInf returns true if the circle represents a straight line.
func (c Circle) IsInf() bool {
	return math.IsInf(c.Radius, 0) || math.IsNaN(c.Radius) || c.Center.IsInf()
}

// Contains returns true if p lies inside the circle.
func (c Circle) Contains(p Point) bool {
	if c.IsInf() {
		return false
	}
	return p.Distance(c.Center) < c.Radius
}

// IntersectCircle returns the intersections between both circles.
// see https://math.stackexchange.com/questions/256100/how-can-i-find-the-points-at-which-two-circles-intersect
func (c Circle) IntersectCircle(d Circle) []Point {
	if c.IsInf() || d.IsInf() {
		return nil
	}
	c0, r0, c1, r1 := c.Center, c.Radius, d.Center, d.Radius
	R := c0.Sub(c1).Length()
	if R < math.Abs(r0-r1) || r0+r1 < R || c0.Equals(c1) {
		return nil
	}
	R2 := R * R

	k := r0*r0 - r1*r1
	a := 0.5
	b := 0.5 * k / R2
	g := 0.5 * math.Sqrt(math.Max(0.0, 2.0*(r0*r0+r1*r1)/R2-k*k/(R2*R2)-1.0))

	i0 := c0.Add(c1).Mul(a)
	i1 := c1.Sub(c0).Mul(b)
	i2 := Point{c1.Y - c0.Y, c0.X - c1.X}.Mul(g)
	return []Point{i0.Add(i1).Add(i2), i0.Add(i1).Sub(i2)}
}

// IntersectLine returns the intersections between the circle and the infinite line through l0 and l1.
func (c Circle) IntersectLine(l0, l1 Point) []Point {
	if c.IsInf() || l0.Equals(l1) {
		return nil
	}
	d := l1.Sub(l0).Norm(1.0) // along line direction, anchored in l0, its length is 1
	D := l0.Sub(c.Center).PerpDot(d)
	discriminant := c.Radius*c.Radius - D*D
	if discriminant < 0.0 {
		return nil
	}
	discriminant = math.Sqrt(discriminant)

	foot := c.Center.Add(d.Rot90CW().Mul(D))
	return []Point{foot.Add(d.Mul(discriminant)), foot.Sub(d.Mul(discriminant))}
}

////////////////////////////////////////////////////////////////

// TouchingCircleStart returns the osculating circle at the start of the segment. For Béziers the curvature is taken from the control points directly.
func TouchingCircleStart(s Segment) Circle {
	switch s.Cmd {
	case QuadToCmd, CubeToCmd:
		c := s.ToCubics()[0]
		d0 := c.CP1.Sub(c.Start)
		d1 := c.CP2.Sub(c.CP1)
		l := d0.Length()
		if l < Epsilon*1e3 {
			return touchingCircleAt(s, 0.0)
		}
		k := 2.0 / 3.0 * d0.PerpDot(d1) / (l * l * l)
		return circleFromCurvature(c.Start, d0.Div(l), k)
	case ArcToCmd:
		return arcCircle(s, 0.0)
	}
	return infiniteCircle(s.TangentAt(0.0).Rot90CCW())
}

// TouchingCircleEnd returns the osculating circle at the end of the segment. For Béziers the curvature is taken from the control points directly.
func TouchingCircleEnd(s Segment) Circle {
	switch s.Cmd {
	case QuadToCmd, CubeToCmd:
		c := s.ToCubics()[0]
		d1 := c.CP2.Sub(c.CP1)
		d2 := c.End.Sub(c.CP2)
		l := d2.Length()
		if l < Epsilon*1e3 {
			return touchingCircleAt(s, 1.0)
		}
		k := 2.0 / 3.0 * d1.PerpDot(d2) / (l * l * l)
		return circleFromCurvature(c.End, d2.Div(l), k)
	case ArcToCmd:
		return arcCircle(s, 1.0)
	}
	return infiniteCircle(s.TangentAt(1.0).Rot90CCW())
}

// touchingCircleAt returns the osculating circle at t using the derivatives of the curve. When the first (or second) derivative vanishes, the next derivatives take their place.
func touchingCircleAt(s Segment, t float64) Circle {
	tangent := s.TangentAt(t)
	d1 := s.Derivative(t, 1)
	d2 := s.Derivative(t, 2)
	if d1.LengthSquared() < touchingTolerance {
		d3 := s.Derivative(t, 3)
		if d2.LengthSquared() < touchingTolerance {
			return infiniteCircle(tangent.Rot90CCW())
		}
		if 0.5 < t {
			d2 = d2.Neg()
		}
		d1, d2 = d2, d3
	}
	l := d1.Length()
	k := d1.PerpDot(d2) / (l * l * l)
	return circleFromCurvature(s.PointAt(t), tangent, k)
}

// circleFromCurvature returns the circle with signed curvature k touching a curve at p with unit tangent. Positive curvature turns counter clockwise.
func circleFromCurvature(p, tangent Point, k float64) Circle {
	normal := tangent.Rot90CCW()
	if equal(k, 0.0) || math.IsNaN(k) || math.IsInf(k, 0) {
		return infiniteCircle(normal)
	}
	return Circle{p.Add(normal.Div(k)), math.Abs(1.0 / k)}
}

// arcCircle returns the circle of a circular arc, or the osculating circle of an elliptical arc at t.
func arcCircle(s Segment, t float64) Circle {
	if equal(s.RX, s.RY) {
		c, _, _ := s.arcCenter()
		return Circle{c, s.RX}
	}
	return touchingCircleAt(s, t)
}
