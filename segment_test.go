package outline

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestSegmentPointAt(t *testing.T) {
	l := Line(Point{0, 0}, Point{10, 0})
	test.T(t, l.PointAt(0.3), Point{3, 0})

	c := Cube(Point{0, 0}, Point{1, 1}, Point{2, 1}, Point{3, 0})
	test.T(t, c.PointAt(0.0), Point{0, 0})
	test.T(t, c.PointAt(1.0), Point{3, 0})
	test.That(t, approxPoint(c.PointAt(0.5), Point{1.5, 0.75}, 1e-12))

	a := MustParseSVGPath("M1 0A1 1 0 0 1 -1 0").Segments()[0]
	test.T(t, a.Cmd, ArcToCmd)
	test.That(t, approxPoint(a.PointAt(0.5), Point{0, 1}, 1e-12), a.PointAt(0.5))
	test.T(t, a.PointAt(1.0), Point{-1, 0})
}

func TestSegmentTangent(t *testing.T) {
	test.T(t, Line(Point{0, 0}, Point{10, 0}).TangentAt(0.5), Point{1, 0})
	test.T(t, Line(Point{0, 0}, Point{10, 0}).Derivative(0.5, 1), Point{10, 0})

	c := Cube(Point{0, 0}, Point{0, 10}, Point{10, 10}, Point{10, 0})
	test.That(t, approxPoint(c.TangentAt(0.0), Point{0, 1}, 1e-12))
	test.That(t, approxPoint(c.TangentAt(1.0), Point{0, -1}, 1e-12))

	// vanishing first derivative at the start falls back to the second
	c = Cube(Point{0, 0}, Point{0, 0}, Point{10, 10}, Point{10, 0})
	test.That(t, approxPoint(c.TangentAt(0.0), Point{1, 1}.Norm(1.0), 1e-12))
}

func TestSegmentSplit(t *testing.T) {
	a, b := Line(Point{0, 0}, Point{10, 0}).Split(0.25)
	test.T(t, a, Line(Point{0, 0}, Point{2.5, 0}))
	test.T(t, b, Line(Point{2.5, 0}, Point{10, 0}))

	c := Cube(Point{0, 0}, Point{1, 1}, Point{2, 1}, Point{3, 0})
	c0, c1 := c.Split(0.5)
	test.That(t, approxPoint(c0.End, Point{1.5, 0.75}, 1e-12))
	test.T(t, c0.End, c1.Start)
	test.That(t, approxPoint(c1.PointAt(0.5), c.PointAt(0.75), 1e-12))

	arc := MustParseSVGPath("M1 0A1 1 0 0 1 -1 0").Segments()[0]
	a0, a1 := arc.Split(0.5)
	test.That(t, approxPoint(a0.End, Point{0, 1}, 1e-12))
	test.That(t, approxPoint(a1.PointAt(0.5), Point{-math.Sqrt2 / 2.0, math.Sqrt2 / 2.0}, 1e-9))
}

func TestSegmentReverse(t *testing.T) {
	c := Cube(Point{0, 0}, Point{1, 1}, Point{2, 1}, Point{3, 0})
	test.T(t, c.Reverse(), Cube(Point{3, 0}, Point{2, 1}, Point{1, 1}, Point{0, 0}))

	arc := MustParseSVGPath("M1 0A1 1 0 0 1 -1 0").Segments()[0]
	r := arc.Reverse()
	test.T(t, r.Start, Point{-1, 0})
	test.That(t, !r.Sweep)
	test.That(t, approxPoint(r.PointAt(0.5), Point{0, 1}, 1e-12))
}

func TestSegmentToCubics(t *testing.T) {
	test.T(t, len(MustParseSVGPath("M1 0A1 1 0 0 1 0 1").Segments()[0].ToCubics()), 1)
	test.T(t, len(MustParseSVGPath("M1 0A1 1 0 0 1 -1 0").Segments()[0].ToCubics()), 2)

	q := MustParseSVGPath("M0 0Q5 10 10 0").Segments()[0]
	c := q.ToCubics()[0]
	for _, tt := range []float64{0.1, 0.5, 0.8} {
		test.That(t, approxPoint(q.PointAt(tt), c.PointAt(tt), 1e-12))
	}
}

func TestSegmentBounds(t *testing.T) {
	test.T(t, Line(Point{5, 0}, Point{0, 5}).Bounds(), Rect{0, 0, 5, 5})

	b := Cube(Point{0, 0}, Point{1, 1}, Point{2, 1}, Point{3, 0}).Bounds()
	test.That(t, approx(b.W, 3.0, 1e-12) && approx(b.H, 0.75, 1e-12), b)
}

func TestSegmentLength(t *testing.T) {
	test.Float(t, Line(Point{0, 0}, Point{3, 4}).Length(), 5.0)
	test.That(t, approx(MustParseSVGPath("M1 0A1 1 0 0 1 0 1").Segments()[0].Length(), math.Pi/2.0, 1e-9))
	test.That(t, approx(Cube(Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{3, 0}).Length(), 3.0, 1e-9))
}

func TestSegmentNearest(t *testing.T) {
	tt, d := Line(Point{0, 0}, Point{10, 0}).Nearest(Point{3, 4})
	test.Float(t, tt, 0.3)
	test.Float(t, d, 4.0)

	tt, d = Line(Point{0, 0}, Point{10, 0}).Nearest(Point{-3, 4})
	test.Float(t, tt, 0.0)
	test.Float(t, d, 5.0)

	c := Cube(Point{0, 0}, Point{1, 1}, Point{2, 1}, Point{3, 0})
	p := c.PointAt(0.3).Add(c.TangentAt(0.3).Rot90CCW().Mul(0.1))
	tt, d = c.Nearest(p)
	test.That(t, approx(tt, 0.3, 1e-6), tt)
	test.That(t, approx(d, 0.1, 1e-9), d)
}

func TestSegmentDegenerate(t *testing.T) {
	test.That(t, Line(Point{1, 1}, Point{1, 1}).IsDegenerate())
	test.That(t, !Line(Point{1, 1}, Point{1, 2}).IsDegenerate())
	test.That(t, !Cube(Point{1, 1}, Point{2, 2}, Point{2, 2}, Point{1, 1}).IsDegenerate())
	test.That(t, Cube(Point{1, 1}, Point{1, 1}, Point{1, 1}, Point{1, 1}).IsDegenerate())
}
