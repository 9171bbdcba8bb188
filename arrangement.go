package outline

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// arrangement is a planar graph of directed edges between vertices on the integer grid of the region engine. Every face of the graph lies to the left of its boundary edges.
type arrangement struct {
	vertices []Point
	index    map[[2]int64]int
	out      [][]int // outgoing edges per vertex
	edges    [][2]int
	used     map[[2]int]bool
}

func newArrangement() *arrangement {
	return &arrangement{
		index: map[[2]int64]int{},
		used:  map[[2]int]bool{},
	}
}

// vertex returns the vertex at p, snapped to the grid.
func (g *arrangement) vertex(p Point) int {
	key := [2]int64{int64(math.Round(p.X * regionScale)), int64(math.Round(p.Y * regionScale))}
	if i, ok := g.index[key]; ok {
		return i
	}
	g.index[key] = len(g.vertices)
	g.vertices = append(g.vertices, Point{float64(key[0]) / regionScale, float64(key[1]) / regionScale})
	g.out = append(g.out, nil)
	return len(g.vertices) - 1
}

// addEdge adds the directed edge from vertex a to b, unless it exists or is degenerate.
func (g *arrangement) addEdge(a, b int) {
	if a == b || g.used[[2]int{a, b}] {
		return
	}
	g.used[[2]int{a, b}] = true
	g.out[a] = append(g.out[a], len(g.edges))
	g.edges = append(g.edges, [2]int{a, b})
}

// next returns the edge following e on the boundary of the face to its left, which is the first outgoing edge clockwise from the reverse of e.
func (g *arrangement) next(e int) int {
	u, v := g.edges[e][0], g.edges[e][1]
	back := g.vertices[u].Sub(g.vertices[v]).Angle()
	best, bestAngle := -1, math.Inf(1)
	for _, f := range g.out[v] {
		w := g.edges[f][1]
		angle := back - g.vertices[w].Sub(g.vertices[v]).Angle()
		if w == u {
			angle = 2.0 * math.Pi // going back is the last resort
		} else if angle <= 0.0 {
			angle += 2.0 * math.Pi
		}
		if angle < bestAngle {
			best, bestAngle = f, angle
		}
	}
	return best
}

// cycles traces the boundaries of all faces, each edge is visited once.
func (g *arrangement) cycles() [][]Point {
	visited := make([]bool, len(g.edges))
	cycles := [][]Point{}
	for e := range g.edges {
		if visited[e] {
			continue
		}
		cycle := []Point{}
		for f := e; f != -1 && !visited[f]; f = g.next(f) {
			visited[f] = true
			cycle = append(cycle, g.vertices[g.edges[f][0]])
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}

////////////////////////////////////////////////////////////////

// arrangementEdge is a line segment of a region contour or of a cutting path.
type arrangementEdge struct {
	a, b   Point
	box    Rect
	cutter bool
	ts     []float64
}

// cut divides the region along the cutting polylines. It returns one path per piece, holding its outer contour and its holes.
func cut(r Region, cutters []flatSubpath) []*Path {
	edges := []*arrangementEdge{}
	addEdge := func(a, b Point, cutter bool) {
		if !a.Equals(b) {
			edges = append(edges, &arrangementEdge{a, b, Rect{a.X, a.Y, 0.0, 0.0}.AddPoint(b), cutter, []float64{0.0, 1.0}})
		}
	}
	for _, ring := range r.rings() {
		for i := range ring {
			addEdge(ring[i], ring[(i+1)%len(ring)], false)
		}
	}
	for _, f := range cutters {
		for i := 0; i < f.edges(); i++ {
			a, b := f.edge(i)
			addEdge(a, b, true)
		}
	}

	for i, e := range edges {
		for _, f := range edges[i+1:] {
			if e.box.X+e.box.W < f.box.X || f.box.X+f.box.W < e.box.X || e.box.Y+e.box.H < f.box.Y || f.box.Y+f.box.H < e.box.Y {
				continue
			}
			if _, ta, tb, ok := intersectionSegmentSegment(e.a, e.b, f.a, f.b); ok {
				e.ts = append(e.ts, ta)
				f.ts = append(f.ts, tb)
			}
		}
	}

	g := newArrangement()
	for _, e := range edges {
		sort.Float64s(e.ts)
		for k := 1; k < len(e.ts); k++ {
			a := e.a.Interpolate(e.b, e.ts[k-1])
			b := e.a.Interpolate(e.b, e.ts[k])
			va, vb := g.vertex(a), g.vertex(b)
			if va == vb {
				continue
			}
			if !e.cutter {
				g.addEdge(va, vb)
			} else if mid := g.vertices[va].Interpolate(g.vertices[vb], 0.5); r.Contains(mid) {
				g.addEdge(va, vb)
				g.addEdge(vb, va)
			}
		}
	}

	type face struct {
		poly orb.Polygon
		area float64
	}
	faces := []*face{}
	holes := []orb.Ring{}
	for _, cycle := range g.cycles() {
		cycle = decimate(cycle, true, regionDecimateTolerance)
		if len(cycle) < 3 {
			continue
		}
		ring := make(orb.Ring, 0, len(cycle)+1)
		for _, p := range cycle {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		ring = append(ring, ring[0])
		if area := (&Polyline{cycle}).Area(); 0.0 < area {
			faces = append(faces, &face{orb.Polygon{ring}, area})
		} else if area < 0.0 {
			holes = append(holes, ring)
		}
	}

	// each hole belongs to the smallest face that contains it
	sort.Slice(faces, func(i, j int) bool { return faces[i].area < faces[j].area })
	for _, hole := range holes {
		for _, f := range faces {
			if planar.RingContains(f.poly[0], hole[0]) {
				f.poly = append(f.poly, hole)
				break
			}
		}
	}

	ps := make([]*Path, 0, len(faces))
	for _, f := range faces {
		p := &Path{}
		for _, ring := range f.poly {
			p.MoveTo(ring[0][0], ring[0][1])
			for _, pt := range ring[1 : len(ring)-1] {
				p.LineTo(pt[0], pt[1])
			}
			p.Close()
		}
		ps = append(ps, p)
	}
	return ps
}
