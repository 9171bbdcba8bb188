package outline

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestAngleNorm(t *testing.T) {
	test.Float(t, angleNorm(0.0), 0.0)
	test.Float(t, angleNorm(1.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(2.0*math.Pi), 0.0)
	test.Float(t, angleNorm(3.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(-1.0*math.Pi), 1.0*math.Pi)
	test.Float(t, angleNorm(-2.0*math.Pi), 0.0)
}

func TestAngleBetween(t *testing.T) {
	test.T(t, angleBetween(0.0, 0.0, 1.0), false)
	test.T(t, angleBetween(1.0, 0.0, 1.0), false)
	test.T(t, angleBetween(0.5, 0.0, 1.0), true)
	test.T(t, angleBetween(0.5+2.0*math.Pi, 0.0, 1.0), true)
	test.T(t, angleBetween(0.5, 1.0+2.0*math.Pi, 0.0+2.0*math.Pi), true)
	test.T(t, angleBetween(0.5-2.0*math.Pi, 0.0, 1.0), true)
}

func TestPoint(t *testing.T) {
	p := Point{3, 4}
	test.T(t, p.Mul(2.0), Point{6, 8})
	test.T(t, p.Rot90CW(), Point{4, -3})
	test.T(t, p.Rot90CCW(), Point{-4, 3})
	test.Float(t, p.Dot(Point{3, 0}), 9.0)
	test.Float(t, p.PerpDot(Point{3, 0}), p.Rot90CCW().Dot(Point{3, 0}))
	test.Float(t, p.Length(), 5.0)
	test.T(t, p.Norm(0.0), Point{0.0, 0.0})
	test.T(t, Point{}.Norm(1.0), Point{0.0, 0.0})
	test.T(t, Point{}.Interpolate(p, 0.5), Point{1.5, 2.0})
	test.That(t, approxPoint(p.Norm(1.0), Point{0.6, 0.8}, 1e-12))
	test.That(t, approxPoint(p.Rot(math.Pi/2.0, Point{}), p.Rot90CCW(), 1e-12))
	test.That(t, Point{math.Inf(1), 0}.IsInf())
	test.String(t, p.String(), "(3,4)")
}

func TestRect(t *testing.T) {
	r := Rect{0, 0, 5, 5}
	test.T(t, r.Add(Rect{5, 5, 5, 5}), Rect{0, 0, 10, 10})
	test.T(t, Rect{}.Add(r), r)
	test.T(t, r.AddPoint(Point{-1, 7}), Rect{-1, 0, 6, 7})
	test.T(t, r.Expand(1.0), Rect{-1, -1, 7, 7})
	test.T(t, r.Expand(-3.0), Rect{3, 3, 0, 0})
	test.Float(t, Rect{0, 0, 2, 7}.MinorSide(), 2.0)
	test.Float(t, Rect{0, 0, 2, 7}.Area(), 14.0)
	test.String(t, r.String(), "(0,0)-(5,5)")
}

func TestIntersectionLineLine(t *testing.T) {
	p, ok := intersectionLineLine(Point{0, 0}, Point{1, 0}, Point{2, -1}, Point{0, 1})
	test.That(t, ok)
	test.T(t, p, Point{2, 0})

	_, ok = intersectionLineLine(Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{2, 0})
	test.That(t, !ok)
}

func TestSolveQuadraticFormula(t *testing.T) {
	x1, x2 := solveQuadraticFormula(1.0, -3.0, 2.0)
	test.Float(t, x1, 1.0)
	test.Float(t, x2, 2.0)

	x1, x2 = solveQuadraticFormula(0.0, 2.0, -4.0)
	test.Float(t, x1, 2.0)
	test.That(t, math.IsNaN(x2))

	x1, _ = solveQuadraticFormula(1.0, 0.0, 1.0)
	test.That(t, math.IsNaN(x1))
}
