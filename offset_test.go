package outline

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestOffsetSegment(t *testing.T) {
	var tts = []struct {
		s        Segment
		w        float64
		expected string
	}{
		{Line(Point{0, 0}, Point{10, 0}), 1.0, "M0 -1L10 -1"},
		{Line(Point{0, 0}, Point{10, 0}), -1.0, "M0 1L10 1"},
		{Line(Point{0, 0}, Point{0, 10}), 2.0, "M2 0L2 10"},
		{Line(Point{0, 0}, Point{10, 0}), 0.0, "M0 0L10 0"},
		{Line(Point{5, 5}, Point{5, 5}), 1.0, ""},
	}
	for _, tt := range tts {
		t.Run(tt.expected, func(t *testing.T) {
			p := &Path{}
			offsetSegment(p, tt.s, tt.w, 0.01)
			test.T(t, p, MustParseSVGPath(tt.expected))
		})
	}
}

func TestOffsetCubic(t *testing.T) {
	const kappa = 0.5522847498
	s := Cube(Point{1, 0}, Point{1, kappa}, Point{kappa, 1}, Point{0, 1})
	orig := s.path()

	var tts = []struct {
		w          float64
		start, end Point
	}{
		{0.5, Point{1.5, 0}, Point{0, 1.5}},
		{-0.5, Point{0.5, 0}, Point{0, 0.5}},
		{0.1, Point{1.1, 0}, Point{0, 1.1}},
	}
	for _, tt := range tts {
		t.Run(Point{tt.w, 0}.String(), func(t *testing.T) {
			p := &Path{}
			offsetSegment(p, s, tt.w, 0.001)
			test.That(t, approxPoint(p.StartPos(), tt.start, 1e-9), p.StartPos())
			test.That(t, approxPoint(p.Pos(), tt.end, 1e-9), p.Pos())

			lo, hi := sampleDistance(p, orig, 16)
			test.That(t, math.Abs(tt.w)-0.005 < lo, lo)
			test.That(t, hi < math.Abs(tt.w)+0.005, hi)
		})
	}
}

func TestOffsetSubdivides(t *testing.T) {
	// an S-curve with strongly varying curvature needs several pieces
	s := Cube(Point{0, 0}, Point{10, 0}, Point{0, 10}, Point{10, 10})
	p := &Path{}
	offsetSegment(p, s, 1.0, 0.01)
	test.That(t, 1 < len(p.Segments()))
	test.T(t, len(p.Split()), 1)
	test.That(t, approxPoint(p.StartPos(), Point{0, -1}, 1e-9), p.StartPos())
	test.That(t, approxPoint(p.Pos(), Point{10, 9}, 1e-9), p.Pos())
}

func TestOffsetArc(t *testing.T) {
	p := &Path{}
	offsetSegment(p, MustParseSVGPath("M10 0A10 10 0 0 1 -10 0").Segments()[0], 1.0, 0.001)
	for _, pos := range p.Coords() {
		test.That(t, approx(pos.Length(), 11.0, 1e-3), pos)
	}
}

func TestAppendBridged(t *testing.T) {
	p := MustParseSVGPath("M0 0L1 0")
	appendBridged(p, Line(Point{1, 1}, Point{2, 1}))
	test.T(t, p, MustParseSVGPath("M0 0L1 0L1 1L2 1"))

	p = MustParseSVGPath("M0 0L1 0")
	appendSnapped(p, Line(Point{1, 1}, Point{2, 1}))
	test.T(t, p, MustParseSVGPath("M0 0L1 1L2 1"))

	p = &Path{}
	appendSnapped(p, Line(Point{1, 1}, Point{2, 1}))
	test.T(t, p, MustParseSVGPath("M1 1L2 1"))
}
