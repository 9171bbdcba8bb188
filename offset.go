package outline

import (
	"math"
)

const (
	// offsetMaxLevels is the maximum number of times a cubic Bézier is subdivided when its offset is not within tolerance.
	offsetMaxLevels = 8

	// offsetMaxIterations bounds the search for the width correction of a single offset candidate.
	offsetMaxIterations = 100

	// discontinuityTolerance is the largest gap between consecutive offset pieces that is closed by moving end points, larger gaps are bridged by a line.
	discontinuityTolerance = 1e-6
)

var (
	// offsetResidualTimes are the parameters at which a candidate is compared to the true offset during the search.
	offsetResidualTimes = []float64{0.3, 0.4, 0.5, 0.6, 0.7}

	// offsetCheckTimes are the parameters at which the final candidate is verified.
	offsetCheckTimes = []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
)

// offsetSegment appends the offset of s at signed distance w to p. A positive w lies to the right of the direction of travel. Degenerate segments are skipped.
func offsetSegment(p *Path, s Segment, w, tolerance float64) {
	if s.IsDegenerate() {
		return
	} else if w == 0.0 {
		appendBridged(p, s)
		return
	}

	switch s.Cmd {
	case QuadToCmd, CubeToCmd, ArcToCmd:
		for _, c := range s.ToCubics() {
			offsetCubic(p, c, w, tolerance, offsetMaxLevels)
		}
	default:
		n := s.End.Sub(s.Start).Rot90CW().Norm(w)
		appendBridged(p, Line(s.Start.Add(n), s.End.Add(n)))
	}
}

// cubicEndData returns the length of the tangent and the signed radius of curvature of the cubic Bézier at t. The radius is positive when the curve turns counter clockwise.
func cubicEndData(s Segment, t float64) (float64, float64) {
	d1 := s.Derivative(t, 1)
	d2 := s.Derivative(t, 2)
	d3 := s.Derivative(t, 3)

	l := d1.Length()
	if l < 1e-4 {
		l = d2.Length() / 2.0
		if l < 1e-4 {
			l = d3.Length()
			if equal(l, 0.0) {
				// not a segment
				return 0.0, 0.0
			}
			return l, 1e8
		}
		return l, l * d2.Dot(d2) / d2.PerpDot(d3)
	}
	return l, l * d1.Dot(d1) / d1.PerpDot(d2)
}

// offsetCubic appends an approximation of the offset of the cubic Bézier s at signed distance w to p. The interior control points of the candidate are placed along the end tangents at distances scaled by the curvature at the ends and by a width correction that is searched for iteratively. If the candidate deviates more than tolerance from the true offset, s is subdivided at the worst position.
func offsetCubic(p *Path, s Segment, w, tolerance float64, levels int) {
	t0 := s.TangentAt(0.0)
	t1 := s.TangentAt(1.0)
	start := s.Start.Add(t0.Rot90CW().Mul(w))
	end := s.End.Add(t1.Rot90CW().Mul(w))
	len0, rad0 := cubicEndData(s, 0.0)
	len1, rad1 := cubicEndData(s, 1.0)

	candidate := func(correction float64) (Segment, float64) {
		off0, off1 := 1.0, 1.0
		if !equal(rad0, 0.0) {
			off0 += w / rad0
		}
		if !equal(rad1, 0.0) {
			off1 += w / rad1
		}
		if f := 1.0 + correction/w; 0.0 < f {
			off0 *= f
			off1 *= f
		}
		off0 *= len0
		off1 *= len1

		c := Cube(start, start.Add(t0.Mul(off0/3.0)), end.Sub(t1.Mul(off1/3.0)), end)
		return c, offsetResidual(s, c, w, offsetResidualTimes)
	}

	best, bestResidual := candidate(0.0)
	bestCorrection := 0.0
	stepsize := math.Abs(w) / 2.0
	stepsizeThreshold := 0.0
	seenSuccess := false
	for i := 0; i < offsetMaxIterations && stepsizeThreshold < stepsize; i++ {
		correction := bestCorrection - sign(bestResidual)*stepsize
		c, residual := candidate(correction)
		success := false
		if math.Abs(residual) < math.Abs(bestResidual) {
			best, bestResidual, bestCorrection = c, residual, correction
			success = true
			if math.Abs(bestResidual) < tolerance/4.0 {
				break
			}
		}

		if success {
			if !seenSuccess {
				seenSuccess = true
				stepsizeThreshold = stepsize / 1000.0
			}
		} else {
			stepsize /= 2.0
		}
	}

	if levels == 0 {
		Logger().Debug("offset reached maximum subdivision depth", "residual", bestResidual, "tolerance", tolerance)
		appendBridged(p, best)
		return
	}

	worstErr, worstT := math.Abs(bestResidual), 0.5
	for _, t := range offsetCheckTimes {
		if err := math.Abs(offsetDistance(s, best, t) - math.Abs(w)); worstErr < err {
			worstErr, worstT = err, t
		}
		if err := math.Abs(offsetDistance(best, s, t) - math.Abs(w)); worstErr < err {
			worstErr, worstT = err, t
		}
	}

	if worstErr < tolerance {
		appendSnapped(p, best)
		return
	}
	s0, s1 := s.Split(worstT)
	offsetCubic(p, s0, w, tolerance, levels-1)
	offsetCubic(p, s1, w, tolerance, levels-1)
}

// offsetDistance returns the distance from the point at t on a to the nearest point on b.
func offsetDistance(a, b Segment, t float64) float64 {
	_, d := b.Nearest(a.PointAt(t))
	return d
}

// offsetResidual returns the signed deviation with the largest magnitude between the distance of the curves and |w|, measured in both directions at the given parameters.
func offsetResidual(s, c Segment, w float64, ts []float64) float64 {
	worst := 0.0
	for _, t := range ts {
		if r := offsetDistance(s, c, t) - math.Abs(w); math.Abs(worst) < math.Abs(r) {
			worst = r
		}
		if r := offsetDistance(c, s, t) - math.Abs(w); math.Abs(worst) < math.Abs(r) {
			worst = r
		}
	}
	return worst
}

// appendBridged appends s to p, connecting with a line when s does not start at the end of p.
func appendBridged(p *Path, s Segment) {
	if len(p.d) == 0 {
		p.MoveTo(s.Start.X, s.Start.Y)
	} else if discontinuityTolerance < p.Pos().Distance(s.Start) {
		p.LineTo(s.Start.X, s.Start.Y)
	}
	p.appendSegment(s)
}

// appendSnapped appends s to p, moving the end point of p onto the start of s when they do not coincide.
func appendSnapped(p *Path, s Segment) {
	if len(p.d) == 0 {
		p.MoveTo(s.Start.X, s.Start.Y)
	} else if discontinuityTolerance < p.Pos().Distance(s.Start) {
		if p.lastCmd() == MoveToCmd || p.lastCmd() == CloseCmd {
			p.LineTo(s.Start.X, s.Start.Y)
		} else {
			p.setEnd(s.Start)
		}
	}
	p.appendSegment(s)
}
