package outline

import (
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

const (
	// regionScale converts path coordinates to the integer coordinates of the arrangement engine.
	regionScale = 1e6

	// regionDecimateTolerance is the triangle area below which vertices of reconstructed contours are dropped as collinear.
	regionDecimateTolerance = 1e-9
)

// Region is a polygonal area without self-intersections, with outer contours counter clockwise and holes clockwise. Each polygon holds an outer contour followed by its direct holes. Regions are values and are never modified after creation.
type Region struct {
	mp orb.MultiPolygon
}

// NewRegion returns the region filled by p under the given fill rule. Curves are flattened within tolerance and open subpaths are closed implicitly.
func NewRegion(p *Path, fillRule FillRule, tolerance float64) (Region, error) {
	rings := [][]Point{}
	for _, f := range flattenSubpaths(p, tolerance) {
		rings = append(rings, f.points)
	}
	return regionFromRings(rings, fillRule)
}

// regionFromRings returns the region filled by the closed rings under the given fill rule.
func regionFromRings(rings [][]Point, fillRule FillRule) (Region, error) {
	return arrange(toClipperPaths(rings), nil, clipper.CtUnion, fillRule, fillRule)
}

// Empty returns true if the region has no area.
func (r Region) Empty() bool {
	return len(r.mp) == 0
}

// Area returns the area of the region.
func (r Region) Area() float64 {
	if r.Empty() {
		return 0.0
	}
	return planar.Area(r.mp)
}

// Contains returns true if the point lies inside the region.
func (r Region) Contains(p Point) bool {
	return planar.MultiPolygonContains(r.mp, orb.Point{p.X, p.Y})
}

// Combine returns the boolean combination of r and q, where Difference subtracts q from r. Only Union, Intersection, Difference and Xor are supported.
func (r Region) Combine(q Region, op BooleanOp) (Region, error) {
	var ct clipper.ClipType
	switch op {
	case Union:
		ct = clipper.CtUnion
	case Intersection:
		ct = clipper.CtIntersection
	case Difference:
		ct = clipper.CtDifference
	case Xor:
		ct = clipper.CtXor
	default:
		return Region{}, fmt.Errorf("%v is not a region operation", op)
	}
	return arrange(toClipperPaths(r.rings()), toClipperPaths(q.rings()), ct, NonZero, NonZero)
}

// ToPath returns the region as a path, with outer contours counter clockwise and holes clockwise.
func (r Region) ToPath() *Path {
	p := &Path{}
	for _, q := range r.ToNestedPaths() {
		p = p.Append(q)
	}
	return p
}

// ToNestedPaths returns a path for each outer contour of the region that includes its direct holes.
func (r Region) ToNestedPaths() []*Path {
	ps := []*Path{}
	for _, poly := range r.mp {
		p := &Path{}
		for _, ring := range poly {
			points := make([]Point, 0, len(ring))
			for _, pt := range ring[:len(ring)-1] {
				points = append(points, Point{pt[0], pt[1]})
			}
			points = decimate(points, true, regionDecimateTolerance)
			if len(points) < 3 {
				continue
			}
			p.MoveTo(points[0].X, points[0].Y)
			for _, pt := range points[1:] {
				p.LineTo(pt.X, pt.Y)
			}
			p.Close()
		}
		if !p.Empty() {
			ps = append(ps, p)
		}
	}
	return ps
}

// rings returns all contours of the region without the repeated closing point.
func (r Region) rings() [][]Point {
	rings := [][]Point{}
	for _, poly := range r.mp {
		for _, ring := range poly {
			points := make([]Point, 0, len(ring))
			for _, pt := range ring[:len(ring)-1] {
				points = append(points, Point{pt[0], pt[1]})
			}
			rings = append(rings, points)
		}
	}
	return rings
}

////////////////////////////////////////////////////////////////

func clipperFillType(fillRule FillRule) clipper.PolyFillType {
	switch fillRule {
	case EvenOdd:
		return clipper.PftEvenOdd
	case Positive:
		return clipper.PftPositive
	case Negative:
		return clipper.PftNegative
	}
	return clipper.PftNonZero
}

func toClipperPaths(rings [][]Point) clipper.Paths {
	paths := clipper.Paths{}
	for _, ring := range rings {
		path := make(clipper.Path, 0, len(ring))
		for _, pt := range ring {
			path = append(path, &clipper.IntPoint{X: clipper.Round(pt.X * regionScale), Y: clipper.Round(pt.Y * regionScale)})
		}
		if 3 <= len(path) {
			paths = append(paths, path)
		}
	}
	return paths
}

// toRing converts a contour of the engine to a closed ring, oriented counter clockwise for outer contours and clockwise for holes.
func toRing(path clipper.Path, hole bool) orb.Ring {
	ring := make(orb.Ring, 0, len(path)+1)
	for _, pt := range path {
		ring = append(ring, orb.Point{float64(pt.X) / regionScale, float64(pt.Y) / regionScale})
	}
	if (clipper.Area(path) < 0.0) != hole {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	return append(ring, ring[0])
}

// polyTreeToMultiPolygon walks the nesting reported by the engine: outer contours hold holes, which in turn hold islands.
func polyTreeToMultiPolygon(nodes []*clipper.PolyNode, mp orb.MultiPolygon) orb.MultiPolygon {
	for _, outer := range nodes {
		if outer.IsOpen || len(outer.Contour()) < 3 {
			continue
		}
		poly := orb.Polygon{toRing(outer.Contour(), false)}
		for _, hole := range outer.Childs() {
			if 3 <= len(hole.Contour()) {
				poly = append(poly, toRing(hole.Contour(), true))
			}
			mp = polyTreeToMultiPolygon(hole.Childs(), mp)
		}
		mp = append(mp, poly)
	}
	return mp
}

// arrange runs the engine on the subject and clip contours. Failures and panics of the engine are returned as ErrArrangement.
func arrange(subj, clip clipper.Paths, ct clipper.ClipType, subjFill, clipFill FillRule) (r Region, err error) {
	if !hasArea(subj) && !hasArea(clip) {
		// the engine fails without edges
		return Region{}, nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			Logger().Warn("arrangement engine panicked", "panic", rec)
			r, err = Region{}, fmt.Errorf("%w: %v", ErrArrangement, rec)
		}
	}()

	c := clipper.NewClipper(clipper.IoStrictlySimple)
	c.AddPaths(subj, clipper.PtSubject, true)
	c.AddPaths(clip, clipper.PtClip, true)
	tree, ok := c.Execute2(ct, clipperFillType(subjFill), clipperFillType(clipFill))
	if !ok || tree == nil {
		Logger().Warn("arrangement engine failed", "op", ct)
		return Region{}, ErrArrangement
	}
	return Region{polyTreeToMultiPolygon(tree.Childs(), nil)}, nil
}

func hasArea(paths clipper.Paths) bool {
	for _, path := range paths {
		if clipper.Area(path) != 0.0 {
			return true
		}
	}
	return false
}

////////////////////////////////////////////////////////////////

// flattenPaths normalizes the winding of the closed subpaths of ps so that filled contours are counter clockwise and holes clockwise, and removes self-intersections. When no two subpaths intersect, the curves are kept and subpaths are only reversed, or dropped when both or neither side is filled. Otherwise the subpaths are replaced by the polygonal contours of their region.
func flattenPaths(ps []*Path, fillRule FillRule, tolerance float64) ([]*Path, error) {
	subs, fs := []*Path{}, []flatSubpath{}
	for _, p := range ps {
		for _, pi := range p.Split() {
			if f := flattenSubpaths(pi, tolerance); len(f) == 1 {
				subs = append(subs, pi)
				fs = append(fs, f[0])
			}
		}
	}
	if len(fs) == 0 {
		return nil, nil
	}

	if flatIntersect(fs) {
		r, err := regionFromRings(ringsOf(fs), fillRule)
		if err != nil {
			return nil, err
		}
		return r.ToPath().Split(), nil
	}

	polys := make([]*Polyline, len(fs))
	for i, f := range fs {
		polys[i] = f.polyline()
	}
	res := []*Path{}
	for i, pi := range subs {
		left, right, ok := sideSamples(fs[i], tolerance)
		if !ok {
			continue
		}
		fillLeft := fillRule.Fills(fillCount(polys, left))
		fillRight := fillRule.Fills(fillCount(polys, right))
		if fillLeft && !fillRight {
			res = append(res, pi)
		} else if !fillLeft && fillRight {
			res = append(res, pi.Reverse())
		}
	}
	return res, nil
}

// sideSamples returns two points just to the left and right of the longest edge of the flattened subpath.
func sideSamples(f flatSubpath, tolerance float64) (Point, Point, bool) {
	best, bestLength := -1, 0.0
	for i := 0; i < f.edges(); i++ {
		a, b := f.edge(i)
		if l := a.Distance(b); bestLength < l {
			best, bestLength = i, l
		}
	}
	if best == -1 {
		return Point{}, Point{}, false
	}
	a, b := f.edge(best)
	mid := a.Interpolate(b, 0.5)
	d := math.Min(tolerance, bestLength/4.0) / 10.0
	n := b.Sub(a).Rot90CCW().Norm(d)
	return mid.Add(n), mid.Sub(n), true
}

func ringsOf(fs []flatSubpath) [][]Point {
	rings := make([][]Point, len(fs))
	for i, f := range fs {
		rings[i] = f.points
	}
	return rings
}
