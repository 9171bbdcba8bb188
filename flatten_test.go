package outline

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestFlatten(t *testing.T) {
	test.T(t, Rectangle(10, 10).Flatten(0.1), Rectangle(10, 10))

	p := Ellipse(10, 10).Flatten(0.1)
	test.That(t, p.Closed())
	for _, s := range p.Segments() {
		test.T(t, s.Cmd, LineToCmd)
		test.That(t, approx(s.Start.Length(), 10.0, 1e-9), s.Start)
		test.That(t, 9.9-1e-9 <= s.PointAt(0.5).Length(), s.PointAt(0.5))
	}

	q := MustParseSVGPath("M0 0C0 10 10 10 10 0").Flatten(0.01)
	test.That(t, !q.Closed())
	test.T(t, q.StartPos(), Point{0, 0})
	test.T(t, q.Pos(), Point{10, 0})
	test.That(t, 2 < len(q.Segments()))
	lo, _ := sampleDistance(MustParseSVGPath("M0 0C0 10 10 10 10 0"), q, 10)
	test.That(t, lo < 1e-9)
}

func TestFlattenSubpaths(t *testing.T) {
	fs := flattenSubpaths(MustParseSVGPath("M0 0L10 0L10 10zM20 0L30 0M40 0"), 0.1)
	test.T(t, len(fs), 2)
	test.That(t, fs[0].closed)
	test.T(t, len(fs[0].points), 3)
	test.T(t, fs[0].edges(), 3)
	a, b := fs[0].edge(2)
	test.T(t, a, Point{10, 10})
	test.T(t, b, Point{0, 0})

	test.That(t, !fs[1].closed)
	test.T(t, fs[1].edges(), 1)
	test.T(t, fs[1].refs, []segmentRef{{0, 0.0}, {0, 1.0}})

	// a subpath ending at its start is closed implicitly
	fs = flattenSubpaths(MustParseSVGPath("M0 0L10 0L10 10L0 0"), 0.1)
	test.That(t, fs[0].closed)
	test.T(t, len(fs[0].points), 3)
}

func TestIntersectionSegmentSegment(t *testing.T) {
	pos, ta, tb, ok := intersectionSegmentSegment(Point{0, 0}, Point{10, 0}, Point{5, -5}, Point{5, 5})
	test.That(t, ok)
	test.T(t, pos, Point{5, 0})
	test.Float(t, ta, 0.5)
	test.Float(t, tb, 0.5)

	_, _, _, ok = intersectionSegmentSegment(Point{0, 0}, Point{10, 0}, Point{0, 1}, Point{10, 1})
	test.That(t, !ok)

	_, _, _, ok = intersectionSegmentSegment(Point{0, 0}, Point{10, 0}, Point{5, 1}, Point{5, 5})
	test.That(t, !ok)
}

func TestFlatIntersect(t *testing.T) {
	test.That(t, flatIntersect(flattenSubpaths(MustParseSVGPath("M0 0L10 10L10 0L0 10z"), 0.1)))
	test.That(t, !flatIntersect(flattenSubpaths(Rectangle(10, 10), 0.1)))
	test.That(t, !flatIntersect(flattenSubpaths(Rectangle(10, 10).Append(Rectangle(2, 2).Translate(4, 4)), 0.1)))
	test.That(t, flatIntersect(flattenSubpaths(Rectangle(10, 10).Append(Rectangle(2, 2).Translate(9, 4)), 0.1)))

	// a spike doubling back on itself overlaps its neighbour
	test.That(t, flatIntersect(flattenSubpaths(MustParseSVGPath("M0 0L10 0L5 0L5 5z"), 0.1)))
}
