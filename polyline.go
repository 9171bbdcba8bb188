package outline

import (
	"fmt"
)

// FillRule is the rule that decides which parts of a (self-)overlapping path are filled, given the winding number of a point.
type FillRule int

// see FillRule
const (
	NonZero FillRule = iota
	EvenOdd
	Positive
	Negative
)

var fillRuleNames = []string{"nonzero", "evenodd", "positive", "negative"}

// Fills returns true if a point with the given winding number is filled.
func (fillRule FillRule) Fills(windings int) bool {
	switch fillRule {
	case EvenOdd:
		return windings%2 != 0
	case Positive:
		return 0 < windings
	case Negative:
		return windings < 0
	}
	return windings != 0
}

func (fillRule FillRule) String() string {
	if fillRule < 0 || int(fillRule) >= len(fillRuleNames) {
		return fmt.Sprintf("FillRule(%d)", int(fillRule))
	}
	return fillRuleNames[fillRule]
}

// MarshalText implements encoding.TextMarshaler.
func (fillRule FillRule) MarshalText() ([]byte, error) {
	if fillRule < 0 || int(fillRule) >= len(fillRuleNames) {
		return nil, fmt.Errorf("unknown fill rule %d", int(fillRule))
	}
	return []byte(fillRuleNames[fillRule]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (fillRule *FillRule) UnmarshalText(b []byte) error {
	for i, name := range fillRuleNames {
		if name == string(b) {
			*fillRule = FillRule(i)
			return nil
		}
	}
	return fmt.Errorf("unknown fill rule %q", string(b))
}

////////////////////////////////////////////////////////////////

// Polyline defines a list of points in 2D space that form a polyline. If the last coordinate equals the first coordinate, we assume the polyline to close itself.
type Polyline struct {
	coords []Point
}

// PolylineFromPath returns a polyline from the first subpath of p by approximating it by linear line segments, i.e. by flattening. The polyline is closed when the subpath is.
func PolylineFromPath(p *Path, tolerance float64) *Polyline {
	fs := flattenSubpaths(p, tolerance)
	if len(fs) == 0 {
		return &Polyline{}
	}
	return fs[0].polyline()
}

// Add adds a new point to the polyline.
func (p *Polyline) Add(x, y float64) *Polyline {
	p.coords = append(p.coords, Point{x, y})
	return p
}

// Close adds a new point equal to the first, closing the polyline.
func (p *Polyline) Close() *Polyline {
	if 0 < len(p.coords) {
		p.coords = append(p.coords, p.coords[0])
	}
	return p
}

// Closed returns true if the last point coincides with the first.
func (p *Polyline) Closed() bool {
	return 0 < len(p.coords) && p.coords[0].Equals(p.coords[len(p.coords)-1])
}

// Coords returns the list of coordinates of the polyline.
func (p *Polyline) Coords() []Point {
	return p.coords
}

// ToPath converts the polyline to a path. If the last coordinate equals the first one, we close the path.
func (p *Polyline) ToPath() *Path {
	if len(p.coords) < 2 {
		return &Path{}
	}

	q := &Path{}
	q.MoveTo(p.coords[0].X, p.coords[0].Y)
	for _, coord := range p.coords[1 : len(p.coords)-1] {
		q.LineTo(coord.X, coord.Y)
	}
	if p.Closed() {
		q.Close()
	} else {
		q.LineTo(p.coords[len(p.coords)-1].X, p.coords[len(p.coords)-1].Y)
	}
	return q
}

// FillCount returns the number of times the test point is enclosed by the polyline, which is implicitly closed. Counter clockwise enclosures are counted positively and clockwise enclosures negatively.
func (p *Polyline) FillCount(test Point) int {
	if len(p.coords) < 2 {
		return 0
	}
	count := 0
	prevCoord := p.coords[len(p.coords)-1]
	for _, coord := range p.coords {
		// see https://wrf.ecse.rpi.edu//Research/Short_Notes/pnpoly.html
		if (test.Y < coord.Y) != (test.Y < prevCoord.Y) &&
			test.X < (prevCoord.X-coord.X)*(test.Y-coord.Y)/(prevCoord.Y-coord.Y)+coord.X {
			if prevCoord.Y < coord.Y {
				count++
			} else {
				count--
			}
		}
		prevCoord = coord
	}
	return count
}

// Interior is true when the point is in the interior of the polyline, i.e. gets filled. This depends on the FillRule.
func (p *Polyline) Interior(test Point, fillRule FillRule) bool {
	return fillRule.Fills(p.FillCount(test))
}

// Area returns the polygon's signed area, which is positive for counter clockwise polygons.
func (p *Polyline) Area() float64 {
	n := len(p.coords)
	if p.Closed() {
		n--
	}
	a := 0.0
	for i := 0; i < n; i++ {
		a += p.coords[i].PerpDot(p.coords[(i+1)%n])
	}
	return a / 2.0
}

// Centroid returns the center point of the polygon.
func (p *Polyline) Centroid() Point {
	n := len(p.coords)
	if p.Closed() {
		n--
	}
	if n == 0 {
		return Point{}
	} else if n == 1 {
		return p.coords[0]
	} else if n == 2 {
		return p.coords[0].Interpolate(p.coords[1], 0.5)
	}

	area := p.Area()
	if equal(area, 0.0) {
		c := Point{}
		for _, coord := range p.coords[:n] {
			c = c.Add(coord)
		}
		return c.Div(float64(n))
	}

	c := Point{}
	for i := 0; i < n; i++ {
		f := p.coords[i].PerpDot(p.coords[(i+1)%n])
		c = c.Add(p.coords[i].Add(p.coords[(i+1)%n]).Mul(f))
	}
	return c.Div(6.0 * area)
}

// fillCount returns the winding number of test for a set of polylines.
func fillCount(polys []*Polyline, test Point) int {
	count := 0
	for _, poly := range polys {
		count += poly.FillCount(test)
	}
	return count
}
