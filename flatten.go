package outline

import (
	"math"
)

// segmentRef refers to the parameter t on segment seg of the subpath a flattened vertex was taken from.
type segmentRef struct {
	seg int
	t   float64
}

// flatSubpath is a subpath approximated by line segments. Each point refers back to its position on the original segments, which are those returned by Segments for the subpath. Closed subpaths don't repeat their first point.
type flatSubpath struct {
	segs   []Segment
	points []Point
	refs   []segmentRef
	closed bool
}

// flattenSegment returns the parameters at which the segment is sampled so that the line segments between them deviate at most tolerance from the curve. The first and last parameters are 0 and 1.
func flattenSegment(s Segment, tolerance float64) []float64 {
	switch s.Cmd {
	case QuadToCmd:
		c1, c2 := quadraticToCubicBezier(s.Start, s.CP1, s.End)
		return flattenCubicBezierTimes(s.Start, c1, c2, s.End, tolerance)
	case CubeToCmd:
		return flattenCubicBezierTimes(s.Start, s.CP1, s.CP2, s.End, tolerance)
	case ArcToCmd:
		_, theta0, theta1 := s.arcCenter()
		r := math.Max(s.RX, s.RY)
		dtheta := math.Pi / 2.0
		if tolerance < r {
			dtheta = 2.0 * math.Acos(1.0-tolerance/r)
		}
		n := int(math.Ceil(math.Abs(theta1-theta0) / dtheta))
		n = max(n, 1)
		ts := make([]float64, n+1)
		for i := range ts {
			ts[i] = float64(i) / float64(n)
		}
		return ts
	}
	return []float64{0.0, 1.0}
}

// flattenSubpaths flattens every subpath of p. Subpaths without drawing commands are skipped.
func flattenSubpaths(p *Path, tolerance float64) []flatSubpath {
	fs := []flatSubpath{}
	for _, pi := range p.Split() {
		segs := pi.Segments()
		if len(segs) == 0 {
			continue
		}
		f := flatSubpath{segs: segs, closed: pi.Closed()}
		f.points = append(f.points, segs[0].Start)
		f.refs = append(f.refs, segmentRef{0, 0.0})
		for i, s := range segs {
			ts := flattenSegment(s, tolerance)
			for _, t := range ts[1:] {
				pos := s.PointAt(t)
				if pos.Equals(f.points[len(f.points)-1]) {
					continue
				}
				f.points = append(f.points, pos)
				f.refs = append(f.refs, segmentRef{i, t})
			}
		}
		if 1 < len(f.points) && f.points[0].Equals(f.points[len(f.points)-1]) {
			f.points = f.points[:len(f.points)-1]
			f.refs = f.refs[:len(f.refs)-1]
			f.closed = true
		}
		fs = append(fs, f)
	}
	return fs
}

// polyline returns the flattened subpath as a polyline, which is closed if the subpath was.
func (f flatSubpath) polyline() *Polyline {
	poly := &Polyline{append([]Point{}, f.points...)}
	if f.closed {
		poly.Close()
	}
	return poly
}

// edge returns the i-th line segment, wrapping around for closed subpaths.
func (f flatSubpath) edge(i int) (Point, Point) {
	return f.points[i], f.points[(i+1)%len(f.points)]
}

// edges returns the number of line segments.
func (f flatSubpath) edges() int {
	if f.closed {
		return len(f.points)
	}
	return len(f.points) - 1
}

// Flatten flattens all Bézier and arc curves into linear segments, each deviating at most tolerance from the curve.
func (p *Path) Flatten(tolerance float64) *Path {
	q := &Path{}
	for _, f := range flattenSubpaths(p, tolerance) {
		q.MoveTo(f.points[0].X, f.points[0].Y)
		for _, pos := range f.points[1:] {
			q.LineTo(pos.X, pos.Y)
		}
		if f.closed {
			q.Close()
		}
	}
	return q
}

////////////////////////////////////////////////////////////////

// intersectionSegmentSegment returns the intersection of the line segments a0-a1 and b0-b1 and the parameters along both. Parallel segments don't intersect.
func intersectionSegmentSegment(a0, a1, b0, b1 Point) (Point, float64, float64, bool) {
	da, db := a1.Sub(a0), b1.Sub(b0)
	div := da.PerpDot(db)
	if equal(div, 0.0) {
		return Point{}, 0.0, 0.0, false
	}
	ta := b0.Sub(a0).PerpDot(db) / div
	tb := b0.Sub(a0).PerpDot(da) / div
	if ta < 0.0 || 1.0 < ta || tb < 0.0 || 1.0 < tb {
		return Point{}, 0.0, 0.0, false
	}
	return a0.Add(da.Mul(ta)), ta, tb, true
}

// flatIntersect returns true if any two edges of the flattened subpaths cross or touch, including edges of the same subpath. Adjacent edges sharing their common vertex are not counted.
func flatIntersect(fs []flatSubpath) bool {
	type edgeRef struct {
		sub, i int
		a, b   Point
		box    Rect
	}
	edges := []edgeRef{}
	for k, f := range fs {
		for i := 0; i < f.edges(); i++ {
			a, b := f.edge(i)
			edges = append(edges, edgeRef{k, i, a, b, Rect{a.X, a.Y, 0.0, 0.0}.AddPoint(b)})
		}
	}

	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			e, g := edges[i], edges[j]
			if e.box.X+e.box.W < g.box.X || g.box.X+g.box.W < e.box.X || e.box.Y+e.box.H < g.box.Y || g.box.Y+g.box.H < e.box.Y {
				continue
			}
			if e.sub == g.sub {
				n := fs[e.sub].edges()
				if g.i == e.i+1 || fs[e.sub].closed && e.i == 0 && g.i == n-1 {
					// adjacent edges share a vertex, they only intersect when overlapping
					if !equal(e.b.Sub(e.a).PerpDot(g.b.Sub(g.a)), 0.0) || e.b.Sub(e.a).Dot(g.b.Sub(g.a)) > 0.0 {
						continue
					}
					return true
				}
			}
			if _, _, _, ok := intersectionSegmentSegment(e.a, e.b, g.a, g.b); ok {
				return true
			}
		}
	}
	return false
}
