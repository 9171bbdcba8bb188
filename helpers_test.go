package outline

import (
	"math"
)

// roundPath rounds all values of the path to the given number of decimals.
func roundPath(p *Path, decimals int) *Path {
	f := math.Pow(10.0, float64(decimals))
	q := p.Copy()
	for i := range q.d {
		q.d[i] = math.Round(q.d[i]*f) / f
	}
	return q
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func approxPoint(a, b Point, eps float64) bool {
	return a.Distance(b) <= eps
}

// sampleDistance returns the smallest and largest distance from points sampled on every segment of p to the nearest point of q.
func sampleDistance(p, q *Path, n int) (float64, float64) {
	qs := q.Segments()
	lo, hi := math.Inf(1), 0.0
	for _, s := range p.Segments() {
		for i := 0; i <= n; i++ {
			pos := s.PointAt(float64(i) / float64(n))
			d := math.Inf(1)
			for _, r := range qs {
				if _, di := r.Nearest(pos); di < d {
					d = di
				}
			}
			lo, hi = math.Min(lo, d), math.Max(hi, d)
		}
	}
	return lo, hi
}

// circlePath returns a closed counter clockwise circle of radius r around the origin made of four cubic Béziers.
func circlePath(r float64) *Path {
	const kappa = 0.5522847498
	k := kappa * r
	p := &Path{}
	p.MoveTo(r, 0.0)
	p.CubeTo(r, k, k, r, 0.0, r)
	p.CubeTo(-k, r, -r, k, -r, 0.0)
	p.CubeTo(-r, -k, -k, -r, 0.0, -r)
	p.CubeTo(k, -r, r, -k, r, 0.0)
	p.Close()
	return p
}
