package outline

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestJoinType(t *testing.T) {
	for i, name := range []string{"bevel", "round", "miter", "miter-clip", "extrapolate", "extrapolate1", "extrapolate2", "extrapolate3"} {
		jt := JoinType(i)
		test.String(t, jt.String(), name)

		b, err := jt.MarshalText()
		test.Error(t, err)
		test.String(t, string(b), name)

		var jt2 JoinType
		test.Error(t, jt2.UnmarshalText([]byte(name)))
		test.T(t, jt2, jt)
	}
	test.String(t, JoinType(42).String(), "JoinType(42)")

	var jt JoinType
	test.That(t, jt.UnmarshalText([]byte("sharp")) != nil)
	_, err := JoinType(-1).MarshalText()
	test.That(t, err != nil)
}

func TestJoin(t *testing.T) {
	corner := MustParseSVGPath("M0 0L10 0L10 10")
	var tts = []struct {
		join       JoinType
		w          float64
		miterLimit float64
		expected   string
	}{
		{BevelJoin, 1.0, 4.0, "M0 -1L10 -1L11 0L11 10"},
		{RoundJoin, 1.0, 4.0, "M0 -1L10 -1A1 1 0 0 1 11 0L11 10"},
		{MiterJoin, 1.0, 4.0, "M0 -1L11 -1L11 10"},
		{MiterJoin, 1.0, 1.0, "M0 -1L10 -1L11 0L11 10"},
		{MiterClipJoin, 1.0, 4.0, "M0 -1L11 -1L11 10"},
		{MiterClipJoin, 1.0, 1.0, "M0 -1L10.41421 -1L11 -0.41421L11 10"},
		{ExtrapolateJoin, 1.0, 4.0, "M0 -1L11 -1L11 10"},

		// the inner side of a turn is always beveled
		{RoundJoin, -1.0, 4.0, "M0 1L10 1L9 0L9 10"},
		{MiterJoin, -1.0, 4.0, "M0 1L10 1L9 0L9 10"},
	}
	for _, tt := range tts {
		t.Run(tt.join.String(), func(t *testing.T) {
			p := HalfOutline(corner, tt.w, tt.miterLimit, tt.join, 0.01)
			test.T(t, roundPath(p, 5), MustParseSVGPath(tt.expected))
		})
	}
}

func TestJoinClosed(t *testing.T) {
	p := HalfOutline(Rectangle(10, 10), 1.0, 4.0, MiterJoin, 0.01)
	test.T(t, p, MustParseSVGPath("M11 -1L11 11L-1 11L-1 -1z"))

	p = HalfOutline(Rectangle(10, 10), 1.0, 4.0, RoundJoin, 0.01)
	test.That(t, p.Closed())
	test.That(t, approx(p.Area(), 140.0+math.Pi, 1e-2), p.Area())

	p = HalfOutline(Rectangle(10, 10), 1.0, 4.0, BevelJoin, 0.01)
	test.That(t, approx(p.Area(), 142.0, 1e-9), p.Area())
}

func TestJoinSmooth(t *testing.T) {
	// tangent continuous segments don't get a join
	p := HalfOutline(circlePath(5.0), 1.0, 4.0, RoundJoin, 0.01)
	for _, s := range p.Segments() {
		test.T(t, s.Cmd, CubeToCmd)
	}
	test.That(t, p.Closed())
}

func TestJoinMiterLimit(t *testing.T) {
	// the outgoing tangent is at 179 degrees from the incoming tangent
	theta := 179.0 * math.Pi / 180.0
	p := &Path{}
	p.MoveTo(0.0, 0.0)
	p.LineTo(10.0, 0.0)
	p.LineTo(10.0+10.0*math.Cos(theta), 10.0*math.Sin(theta))
	anchor := Point{10.0, 0.0}

	farthest := func(q *Path) float64 {
		d := 0.0
		for _, pos := range q.Coords() {
			if 10.0 < pos.X {
				d = math.Max(d, pos.Distance(anchor))
			}
		}
		return d
	}

	miter := HalfOutline(p, 1.0, 200.0, MiterJoin, 0.01)
	test.That(t, 100.0 < farthest(miter), farthest(miter))

	clipped := HalfOutline(p, 1.0, 1.0, MiterClipJoin, 0.01)
	// the clip line lies at the limit along the bisector, its ends are at most sqrt(2) away for a limit of 1
	test.That(t, 1.0 < farthest(clipped) && farthest(clipped) <= math.Sqrt2, farthest(clipped))
	test.That(t, clipped.Bounds().X+clipped.Bounds().W < 11.1, clipped.Bounds())

	beveled := HalfOutline(p, 1.0, 1.0, MiterJoin, 0.01)
	test.That(t, farthest(beveled) <= 1.0+1e-9, farthest(beveled))
}

func TestJoinExtrapolate(t *testing.T) {
	humps := MustParseSVGPath("M0 0Q5 5 10 0Q15 5 20 0")
	for _, jt := range []JoinType{ExtrapolateJoin, Extrapolate1Join, Extrapolate2Join, Extrapolate3Join} {
		t.Run(jt.String(), func(t *testing.T) {
			p := HalfOutline(humps, 1.0, 4.0, jt, 0.01)
			test.T(t, len(p.Split()), 1)
			test.That(t, approxPoint(p.StartPos(), Point{math.Sqrt2 / 2.0, -math.Sqrt2 / 2.0}, 1e-9), p.StartPos())
			test.That(t, approxPoint(p.Pos(), Point{20.0 - math.Sqrt2/2.0, -math.Sqrt2 / 2.0}, 1e-9), p.Pos())

			_, hi := sampleDistance(p, humps, 16)
			test.That(t, hi < 2.0, hi)
		})
	}
}

func TestJoinExtrapolateFallback(t *testing.T) {
	// the osculating circles at the valley don't intersect and neither contains the anchor of the other
	valley := MustParseSVGPath("M0 0C3 6 8 4 10 0C12 4 17 6 20 0")
	anchor := Point{10.0, 0.0}
	bevel := HalfOutline(valley, 1.0, 1.5, BevelJoin, 0.01)
	clip := HalfOutline(valley, 1.0, 1.5, MiterClipJoin, 0.01)
	test.That(t, !clip.Equals(bevel))

	// farthest returns the largest distance from the anchor of the join vertices below the offset curves
	farthest := func(q *Path) float64 {
		d := 0.0
		for _, pos := range q.Coords() {
			if pos.Y < -0.5 {
				d = math.Max(d, pos.Distance(anchor))
			}
		}
		return d
	}
	test.That(t, 1.0 < farthest(clip) && farthest(clip) <= 1.6, farthest(clip))

	var tts = []struct {
		join     JoinType
		expected *Path
	}{
		{ExtrapolateJoin, bevel}, // the miter exceeds the limit
		{Extrapolate1Join, clip},
		{Extrapolate2Join, clip},
	}
	for _, tt := range tts {
		t.Run(tt.join.String(), func(t *testing.T) {
			test.T(t, HalfOutline(valley, 1.0, 1.5, tt.join, 0.01), tt.expected)
		})
	}

	t.Run("extrapolate3", func(t *testing.T) {
		// the outgoing side is replaced by its tangent line and the connector is clipped
		p := HalfOutline(valley, 1.0, 1.5, Extrapolate3Join, 0.01)
		test.That(t, !p.Equals(bevel) && !p.Equals(clip))
		test.T(t, len(p.Split()), 1)
		test.That(t, 1.0 < farthest(p) && farthest(p) <= 1.6, farthest(p))
	})
}

func TestJoinExtrapolateBackwards(t *testing.T) {
	// joinArcs joins an incoming arc ending at (0,-1) to an outgoing arc starting at (1,0) around the anchor at the origin
	joinArcs := func(jr Joiner, in, out *Path) *Path {
		res := in.Copy()
		join(&JoinContext{
			Result:     res,
			Outgoing:   out,
			InTangent:  Point{1.0, 0.0},
			OutTangent: Point{0.0, 1.0},
			MiterLimit: 4.0,
			Width:      1.0,
		}, jr)
		return res
	}

	// the incoming circle is smaller than the half-width and lies within the stroke, the outgoing circle contains it
	in := MustParseSVGPath("M-0.5 -0.5A0.5 0.5 0 0 1 0 -1")
	out := MustParseSVGPath("M1 0A2 2 0 0 1 -1 2")
	round := joinArcs(roundJoiner{}, in, out)
	miter := joinArcs(miterJoiner{false}, in, out)
	test.That(t, !round.Equals(miter))
	test.T(t, joinArcs(extrapolateJoiner{0}, in, out), miter)
	test.T(t, joinArcs(extrapolateJoiner{1}, in, out), round)
	test.T(t, joinArcs(extrapolateJoiner{2}, in, out), round)

	// intersecting circles are extrapolated even if one of them is small
	in = MustParseSVGPath("M-0.2 -0.6A0.5 0.5 0 0 1 0 -1")
	out = MustParseSVGPath("M1 0A1.2 1.2 0 0 1 -0.2 1.2")
	round = joinArcs(roundJoiner{}, in, out)
	test.That(t, !joinArcs(extrapolateJoiner{0}, in, out).Equals(round))
	test.That(t, !joinArcs(extrapolateJoiner{3}, in, out).Equals(round))
}

func TestPickSolution(t *testing.T) {
	end := Point{0, 0}
	tangent := Point{1, 0}
	sol, ok := pickSolution([]Point{{-1, 0}, {-3, 0}, {2, 0}}, tangent, end)
	test.That(t, ok)
	test.T(t, sol, Point{-1, 0})

	_, ok = pickSolution([]Point{{2, 0}}, tangent, end)
	test.That(t, !ok)
	_, ok = pickSolution(nil, tangent, end)
	test.That(t, !ok)
}

func TestExpandCircle(t *testing.T) {
	// grow a circle touching the origin from above until it touches the circle around (0,2) from the inside
	inner := Circle{Point{0, 0.1}, 0.1}
	outer := Circle{Point{0, 2}, 3}
	pt, ok := expandCircle(&inner, outer, Point{0, 0}, Point{1, 0})
	test.That(t, ok)
	test.That(t, approx(inner.Center.Distance(outer.Center)+inner.Radius, outer.Radius, 1e-9), inner)
	test.That(t, approx(pt.Distance(outer.Center), outer.Radius, 1e-9), pt)
	test.That(t, approx(pt.Distance(inner.Center), inner.Radius, 1e-9), pt)
}

func TestAdjustCircles(t *testing.T) {
	c1 := Circle{Point{0, 1}, 1}
	c2 := Circle{Point{0, 4}, 5}
	pt, ok := adjustCircles(&c1, &c2, Point{0, 0}, Point{3, 0})
	test.That(t, ok)
	test.That(t, approx(c1.Radius, 2.525, 1e-3), c1)
	test.That(t, approx(c1.Radius+c2.Radius, 6.0, 1e-9), c1, c2)
	test.That(t, approx(c1.Center.Distance(c2.Center), math.Abs(c1.Radius-c2.Radius), 1e-9), c1, c2)
	test.That(t, approx(c1.Center.Distance(Point{0, 0}), c1.Radius, 1e-9), c1)
	test.That(t, approx(c2.Center.Distance(Point{3, 0}), c2.Radius, 1e-9), c2)
	test.That(t, approx(pt.Distance(c1.Center), c1.Radius, 1e-9), pt)
	test.That(t, approx(pt.Distance(c2.Center), c2.Radius, 1e-9), pt)
}
