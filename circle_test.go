package outline

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func containsPoint(ps []Point, p Point, eps float64) bool {
	for _, q := range ps {
		if approxPoint(p, q, eps) {
			return true
		}
	}
	return false
}

func TestCircleIntersectCircle(t *testing.T) {
	ps := Circle{Point{0, 0}, 1}.IntersectCircle(Circle{Point{1, 0}, 1})
	test.T(t, len(ps), 2)
	test.That(t, containsPoint(ps, Point{0.5, math.Sqrt(3) / 2.0}, 1e-12), ps)
	test.That(t, containsPoint(ps, Point{0.5, -math.Sqrt(3) / 2.0}, 1e-12), ps)

	test.T(t, len(Circle{Point{0, 0}, 1}.IntersectCircle(Circle{Point{5, 0}, 1})), 0)
	test.T(t, len(Circle{Point{0, 0}, 5}.IntersectCircle(Circle{Point{1, 0}, 1})), 0)
	test.T(t, len(Circle{Point{0, 0}, 1}.IntersectCircle(infiniteCircle(Point{0, 1}))), 0)
}

func TestCircleIntersectLine(t *testing.T) {
	ps := Circle{Point{0, 0}, 1}.IntersectLine(Point{-2, 0}, Point{2, 0})
	test.T(t, len(ps), 2)
	test.That(t, containsPoint(ps, Point{1, 0}, 1e-12), ps)
	test.That(t, containsPoint(ps, Point{-1, 0}, 1e-12), ps)

	ps = Circle{Point{0, 0}, 1}.IntersectLine(Point{0.5, -5}, Point{0.5, 5})
	test.T(t, len(ps), 2)
	test.That(t, containsPoint(ps, Point{0.5, math.Sqrt(3) / 2.0}, 1e-12), ps)

	test.T(t, len(Circle{Point{0, 0}, 1}.IntersectLine(Point{0, 2}, Point{1, 2})), 0)
}

func TestCircleContains(t *testing.T) {
	c := Circle{Point{1, 1}, 2}
	test.That(t, c.Contains(Point{2, 2}))
	test.That(t, !c.Contains(Point{4, 1}))
	test.That(t, !infiniteCircle(Point{1, 0}).Contains(Point{0, 0}))
	test.That(t, infiniteCircle(Point{1, 0}).IsInf())
	test.That(t, !c.IsInf())
}

func TestTouchingCircle(t *testing.T) {
	// a line has no curvature
	test.That(t, TouchingCircleStart(Line(Point{0, 0}, Point{10, 0})).IsInf())
	test.That(t, TouchingCircleEnd(Line(Point{0, 0}, Point{10, 0})).IsInf())

	// circular arcs return their own circle
	arc := MustParseSVGPath("M1 0A1 1 0 0 1 -1 0").Segments()[0]
	c := TouchingCircleStart(arc)
	test.That(t, approxPoint(c.Center, Point{0, 0}, 1e-12) && approx(c.Radius, 1.0, 1e-12), c)

	// quarter circle approximated by a cubic Bézier
	const kappa = 0.5522847498
	s := Cube(Point{1, 0}, Point{1, kappa}, Point{kappa, 1}, Point{0, 1})
	c0 := TouchingCircleStart(s)
	test.That(t, approx(c0.Radius, 1.022, 1e-3), c0.Radius)
	test.That(t, approx(c0.Center.Y, 0.0, 1e-12) && c0.Center.X < 0.0, c0.Center)

	c1 := TouchingCircleEnd(s)
	test.That(t, approx(c1.Radius, c0.Radius, 1e-9), c1.Radius)
	test.That(t, approx(c1.Center.X, 0.0, 1e-12) && c1.Center.Y < 0.0, c1.Center)

	// the control point formula agrees with the derivatives
	cd := touchingCircleAt(s, 0.0)
	test.That(t, approx(cd.Radius, c0.Radius, 1e-9) && approxPoint(cd.Center, c0.Center, 1e-9), cd)

	// a clockwise curve has its center on the right
	r := TouchingCircleStart(s.Reverse())
	test.That(t, approx(r.Radius, c0.Radius, 1e-9) && approx(r.Center.X, 0.0, 1e-12), r)
}
