package outline

import (
	"math"
)

// Gauss-Legendre quadrature integration from a to b with n=3, it is exact for polynomials up to degree 5
// see https://pomax.github.io/bezierinfo/legendre-gauss.html for more values
func gaussLegendre3(f func(float64) float64, a, b float64) float64 {
	c := (b - a) / 2.0
	d := (a + b) / 2.0
	Qd1 := f(-0.7745966692414834*c + d)
	Qd2 := f(d)
	Qd3 := f(0.7745966692414834*c + d)
	return c * ((5.0/9.0)*(Qd1+Qd3) + (8.0/9.0)*Qd2)
}

// Gauss-Legendre quadrature integration from a to b with n=7
func gaussLegendre7(f func(float64) float64, a, b float64) float64 {
	c := (b - a) / 2.0
	d := (a + b) / 2.0
	Qd1 := f(-0.9491079123427585*c + d)
	Qd2 := f(-0.7415311855993945*c + d)
	Qd3 := f(-0.4058451513773972*c + d)
	Qd4 := f(d)
	Qd5 := f(0.4058451513773972*c + d)
	Qd6 := f(0.7415311855993945*c + d)
	Qd7 := f(0.9491079123427585*c + d)
	return c * (0.1294849661688697*(Qd1+Qd7) + 0.2797053914892766*(Qd2+Qd6) + 0.3818300505051189*(Qd3+Qd5) + 0.4179591836734694*Qd4)
}

////////////////////////////////////////////////////////////////

func quadraticToCubicBezier(p0, p1, p2 Point) (Point, Point) {
	c1 := p0.Interpolate(p1, 2.0/3.0)
	c2 := c1.Add(p2.Sub(p0).Mul(1.0 / 3.0))
	return c1, c2
}

func quadraticBezierPos(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul(1.0 - 2.0*t + t*t)
	p1 = p1.Mul(2.0*t - 2.0*t*t)
	p2 = p2.Mul(t * t)
	return p0.Add(p1).Add(p2)
}

func quadraticBezierDeriv(p0, p1, p2 Point, t float64) Point {
	p0 = p0.Mul(-2.0 + 2.0*t)
	p1 = p1.Mul(2.0 - 4.0*t)
	p2 = p2.Mul(2.0 * t)
	return p0.Add(p1).Add(p2)
}

func quadraticBezierDeriv2(p0, p1, p2 Point) Point {
	p0 = p0.Mul(2.0)
	p1 = p1.Mul(-4.0)
	p2 = p2.Mul(2.0)
	return p0.Add(p1).Add(p2)
}

func cubicBezierPos(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(1.0 - 3.0*t + 3.0*t*t - t*t*t)
	p1 = p1.Mul(3.0*t - 6.0*t*t + 3.0*t*t*t)
	p2 = p2.Mul(3.0*t*t - 3.0*t*t*t)
	p3 = p3.Mul(t * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func cubicBezierDeriv(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(-3.0 + 6.0*t - 3.0*t*t)
	p1 = p1.Mul(3.0 - 12.0*t + 9.0*t*t)
	p2 = p2.Mul(6.0*t - 9.0*t*t)
	p3 = p3.Mul(3.0 * t * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func cubicBezierDeriv2(p0, p1, p2, p3 Point, t float64) Point {
	p0 = p0.Mul(6.0 - 6.0*t)
	p1 = p1.Mul(18.0*t - 12.0)
	p2 = p2.Mul(6.0 - 18.0*t)
	p3 = p3.Mul(6.0 * t)
	return p0.Add(p1).Add(p2).Add(p3)
}

func cubicBezierDeriv3(p0, p1, p2, p3 Point) Point {
	p0 = p0.Mul(-6.0)
	p1 = p1.Mul(18.0)
	p2 = p2.Mul(-18.0)
	p3 = p3.Mul(6.0)
	return p0.Add(p1).Add(p2).Add(p3)
}

func splitQuadraticBezier(p0, p1, p2 Point, t float64) (Point, Point, Point, Point, Point, Point) {
	q0 := p0
	q1 := p0.Interpolate(p1, t)

	r2 := p2
	r1 := p1.Interpolate(p2, t)

	r0 := q1.Interpolate(r1, t)
	q2 := r0
	return q0, q1, q2, r0, r1, r2
}

func splitCubicBezier(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}

// cubicBezierExtrema returns the parameters within (0,1) where the derivative of one coordinate of the cubic Bézier is zero.
func cubicBezierExtrema(p0, p1, p2, p3 float64) []float64 {
	a := -p0 + 3.0*p1 - 3.0*p2 + p3
	b := 2.0 * (p0 - 2.0*p1 + p2)
	c := p1 - p0
	ts := []float64{}
	t1, t2 := solveQuadraticFormula(a, b, c)
	for _, t := range []float64{t1, t2} {
		if !math.IsNaN(t) && 0.0 < t && t < 1.0 {
			ts = append(ts, t)
		}
	}
	return ts
}

// flatCubicBezier returns true if both control points lie within tolerance of the chord.
func flatCubicBezier(p0, p1, p2, p3 Point, tolerance float64) bool {
	chord := p3.Sub(p0)
	l := chord.Length()
	if equal(l, 0.0) {
		return p1.Sub(p0).Length() <= tolerance && p2.Sub(p0).Length() <= tolerance
	}
	d1 := math.Abs(chord.PerpDot(p1.Sub(p0))) / l
	d2 := math.Abs(chord.PerpDot(p2.Sub(p0))) / l
	// the curve deviates at most 3/4 of the control point distance from the chord
	return 0.75*math.Max(d1, d2) <= tolerance
}

// flattenCubicBezierTimes returns the parameters of a polyline approximation of the cubic Bézier within tolerance, including t=0 and t=1.
func flattenCubicBezierTimes(p0, p1, p2, p3 Point, tolerance float64) []float64 {
	ts := []float64{0.0}
	var rec func(p0, p1, p2, p3 Point, t0, t1 float64, depth int)
	rec = func(p0, p1, p2, p3 Point, t0, t1 float64, depth int) {
		if depth == 0 || flatCubicBezier(p0, p1, p2, p3, tolerance) {
			ts = append(ts, t1)
			return
		}
		q0, q1, q2, q3, r0, r1, r2, r3 := splitCubicBezier(p0, p1, p2, p3, 0.5)
		tm := (t0 + t1) / 2.0
		rec(q0, q1, q2, q3, t0, tm, depth-1)
		rec(r0, r1, r2, r3, tm, t1, depth-1)
	}
	rec(p0, p1, p2, p3, 0.0, 1.0, 16)
	return ts
}

////////////////////////////////////////////////////////////////

func ellipsePos(rx, ry, phi, cx, cy, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	x := cx + rx*costheta*cosphi - ry*sintheta*sinphi
	y := cy + rx*costheta*sinphi + ry*sintheta*cosphi
	return Point{x, y}
}

// ellipseDeriv returns the derivative of the ellipse position with respect to theta.
func ellipseDeriv(rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	dx := -rx*sintheta*cosphi - ry*costheta*sinphi
	dy := -rx*sintheta*sinphi + ry*costheta*cosphi
	return Point{dx, dy}
}

func ellipseDeriv2(rx, ry, phi, theta float64) Point {
	sintheta, costheta := math.Sincos(theta)
	sinphi, cosphi := math.Sincos(phi)
	ddx := -rx*costheta*cosphi + ry*sintheta*sinphi
	ddy := -rx*costheta*sinphi - ry*sintheta*cosphi
	return Point{ddx, ddy}
}

// ellipseRadiiCorrection returns the factor by which the radii need to be scaled so that the ellipse passes through both start and end.
func ellipseRadiiCorrection(start Point, rx, ry, phi float64, end Point) float64 {
	diff := start.Sub(end).Div(2.0)
	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*diff.X + sinphi*diff.Y
	y1p := -sinphi*diff.X + cosphi*diff.Y
	return math.Sqrt(x1p*x1p/rx/rx + y1p*y1p/ry/ry)
}

// ellipseToCenter changes between the SVG arc format to the center and angles format, angles are in radians and theta1 is reached from theta0 in the direction of sweep.
// see https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func ellipseToCenter(x1, y1, rx, ry, phi float64, large, sweep bool, x2, y2 float64) (float64, float64, float64, float64) {
	if x1 == x2 && y1 == y2 {
		return x1, y1, 0.0, 0.0
	}

	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*(x1-x2)/2.0 + sinphi*(y1-y2)/2.0
	y1p := -sinphi*(x1-x2)/2.0 + cosphi*(y1-y2)/2.0

	// reduce rouding errors
	radiiCheck := x1p*x1p/rx/rx + y1p*y1p/ry/ry
	if radiiCheck > 1.0 {
		rx *= math.Sqrt(radiiCheck)
		ry *= math.Sqrt(radiiCheck)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq < 0.0 {
		sq = 0.0
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	cx := cosphi*cxp - sinphi*cyp + (x1+x2)/2.0
	cy := sinphi*cxp + cosphi*cyp + (y1+y2)/2.0

	// specify U and V vectors; theta = arccos(U*V / sqrt(U*U + V*V))
	ux := (x1p - cxp) / rx
	uy := (y1p - cyp) / ry
	vx := -(x1p + cxp) / rx
	vy := -(y1p + cyp) / ry

	theta := math.Atan2(uy, ux)
	delta := math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
	if !sweep && delta > 0.0 {
		delta -= 2.0 * math.Pi
	} else if sweep && delta < 0.0 {
		delta += 2.0 * math.Pi
	}
	return cx, cy, theta, theta + delta
}

// ellipseToCubicBeziers converts an elliptic arc to a series of cubic Béziers that each span at most 90 degrees.
func ellipseToCubicBeziers(start Point, rx, ry, phi float64, large, sweep bool, end Point) [][4]Point {
	cx, cy, theta0, theta1 := ellipseToCenter(start.X, start.Y, rx, ry, phi, large, sweep, end.X, end.Y)
	lambda := ellipseRadiiCorrection(start, rx, ry, phi, end)
	if lambda > 1.0 {
		rx *= lambda
		ry *= lambda
	}

	n := int(math.Ceil(math.Abs(theta1-theta0)/(math.Pi/2.0) - 1e-6))
	if n < 1 {
		n = 1
	}
	dtheta := (theta1 - theta0) / float64(n)
	kappa := 4.0 / 3.0 * math.Tan(dtheta/4.0)

	beziers := make([][4]Point, 0, n)
	p0 := start
	for i := 0; i < n; i++ {
		t0 := theta0 + float64(i)*dtheta
		t1 := t0 + dtheta
		p3 := ellipsePos(rx, ry, phi, cx, cy, t1)
		if i == n-1 {
			p3 = end
		}
		p1 := p0.Add(ellipseDeriv(rx, ry, phi, t0).Mul(kappa))
		p2 := p3.Sub(ellipseDeriv(rx, ry, phi, t1).Mul(kappa))
		beziers = append(beziers, [4]Point{p0, p1, p2, p3})
		p0 = p3
	}
	return beziers
}
