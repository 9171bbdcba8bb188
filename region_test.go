package outline

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestRegion(t *testing.T) {
	r, err := NewRegion(Rectangle(10, 10), NonZero, 0.01)
	test.Error(t, err)
	test.That(t, !r.Empty())
	test.Float(t, r.Area(), 100.0)
	test.That(t, r.Contains(Point{5, 5}))
	test.That(t, !r.Contains(Point{15, 5}))
	test.T(t, len(r.ToNestedPaths()), 1)
	test.Float(t, r.ToPath().Area(), 100.0)

	r, err = NewRegion(Rectangle(10, 10).Reverse(), Positive, 0.01)
	test.Error(t, err)
	test.That(t, r.Empty())
	test.Float(t, r.Area(), 0.0)

	r, err = NewRegion(Rectangle(10, 10).Reverse(), Negative, 0.01)
	test.Error(t, err)
	test.Float(t, r.Area(), 100.0)
	test.Float(t, r.ToPath().Area(), 100.0)

	r, err = NewRegion(&Path{}, NonZero, 0.01)
	test.Error(t, err)
	test.That(t, r.Empty())
}

func TestRegionNested(t *testing.T) {
	p := Rectangle(10, 10).Append(Rectangle(2, 2).Translate(4, 4))
	r, err := NewRegion(p, EvenOdd, 0.01)
	test.Error(t, err)
	test.Float(t, r.Area(), 96.0)
	test.That(t, !r.Contains(Point{5, 5}))
	test.That(t, r.Contains(Point{2, 2}))

	ps := r.ToNestedPaths()
	test.T(t, len(ps), 1)
	test.T(t, len(ps[0].Split()), 2)
	test.Float(t, ps[0].Area(), 96.0)

	// an island inside the hole becomes its own polygon
	p = p.Append(Rectangle(1, 1).Translate(4.5, 4.5))
	r, err = NewRegion(p, EvenOdd, 0.01)
	test.Error(t, err)
	test.Float(t, r.Area(), 97.0)
	test.T(t, len(r.ToNestedPaths()), 2)

	r, err = NewRegion(Rectangle(10, 10).Append(Rectangle(2, 2).Translate(4, 4)), NonZero, 0.01)
	test.Error(t, err)
	test.Float(t, r.Area(), 100.0)
}

func TestRegionSelfIntersection(t *testing.T) {
	// a bowtie fills two triangles
	r, err := NewRegion(MustParseSVGPath("M0 0L10 10L10 0L0 10z"), NonZero, 0.01)
	test.Error(t, err)
	test.That(t, approx(r.Area(), 50.0, 1e-9), r.Area())
	test.T(t, len(r.ToNestedPaths()), 2)
	for _, p := range r.ToNestedPaths() {
		test.That(t, 0.0 < p.Area())
	}
}

func TestRegionCombine(t *testing.T) {
	a, err := NewRegion(Rectangle(2, 2), NonZero, 0.01)
	test.Error(t, err)
	b, err := NewRegion(Rectangle(2, 2).Translate(1, 1), NonZero, 0.01)
	test.Error(t, err)

	var tts = []struct {
		op   BooleanOp
		area float64
	}{
		{Union, 7.0},
		{Intersection, 1.0},
		{Difference, 3.0},
		{Xor, 6.0},
	}
	for _, tt := range tts {
		t.Run(tt.op.String(), func(t *testing.T) {
			r, err := a.Combine(b, tt.op)
			test.Error(t, err)
			test.That(t, approx(r.Area(), tt.area, 1e-9), r.Area())
		})
	}

	_, err = a.Combine(b, Cut)
	test.That(t, err != nil)
	_, err = a.Combine(b, Slice)
	test.That(t, err != nil)
}

func TestFlattenPaths(t *testing.T) {
	// disjoint subpaths keep their curves and are oriented by the fill rule
	ps, err := flattenPaths([]*Path{Ellipse(2, 2).Reverse()}, NonZero, 0.01)
	test.Error(t, err)
	test.T(t, len(ps), 1)
	test.T(t, ps[0].Segments()[0].Cmd, ArcToCmd)
	test.That(t, 0.0 < ps[0].Area())

	ps, err = flattenPaths([]*Path{Rectangle(10, 10).Reverse()}, Positive, 0.01)
	test.Error(t, err)
	test.T(t, len(ps), 0)

	// a hole of the same orientation is reversed under even-odd
	ps, err = flattenPaths([]*Path{Rectangle(10, 10), Rectangle(2, 2).Translate(4, 4)}, EvenOdd, 0.01)
	test.Error(t, err)
	test.T(t, len(ps), 2)
	test.Float(t, ps[0].Area(), 100.0)
	test.Float(t, ps[1].Area(), -4.0)

	// overlapping subpaths are merged into polygons
	ps, err = flattenPaths([]*Path{Rectangle(2, 2), Rectangle(2, 2).Translate(1, 1)}, NonZero, 0.01)
	test.Error(t, err)
	test.T(t, len(ps), 1)
	test.That(t, approx(ps[0].Area(), 7.0, 1e-9), ps[0].Area())

	ps, err = flattenPaths(nil, NonZero, 0.01)
	test.Error(t, err)
	test.T(t, len(ps), 0)
}
