package outline

import (
	"container/heap"
	"math"
)

// Decimate decimates the path using the Visvalingam-Whyatt algorithm, removing vertices whose triangle with their neighbours has an area smaller than tolerance, smallest first. The path is assumed to be flat, curves are treated as lines between their end points. Closed subpaths that end up with fewer than three vertices are removed.
func (p *Path) Decimate(tolerance float64) *Path {
	q := &Path{}
	for _, pi := range p.Split() {
		closed := pi.Closed()
		coords := pi.Coords()
		if closed && 1 < len(coords) && coords[0].Equals(coords[len(coords)-1]) {
			coords = coords[:len(coords)-1]
		}
		coords = decimate(coords, closed, tolerance)
		if len(coords) < 2 {
			continue
		}
		q.MoveTo(coords[0].X, coords[0].Y)
		for _, coord := range coords[1:] {
			q.LineTo(coord.X, coord.Y)
		}
		if closed {
			q.Close()
		}
	}
	return q
}

type decimateItem struct {
	i     int
	area  float64
	index int // in heap
}

type decimateHeap []*decimateItem

func (h decimateHeap) Len() int           { return len(h) }
func (h decimateHeap) Less(i, j int) bool { return h[i].area < h[j].area }
func (h decimateHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *decimateHeap) Push(x any) {
	item := x.(*decimateItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *decimateHeap) Pop() any {
	old := *h
	item := old[len(old)-1]
	*h = old[:len(old)-1]
	item.index = -1
	return item
}

// decimate returns the vertices that remain after Visvalingam-Whyatt decimation. For open polylines the end points are always kept, closed polygons that fall below three vertices return nil.
func decimate(coords []Point, closed bool, tolerance float64) []Point {
	n := len(coords)
	if n < 3 {
		if closed {
			return nil
		}
		return coords
	}

	prev := make([]int, n)
	next := make([]int, n)
	for i := range coords {
		prev[i] = (i - 1 + n) % n
		next[i] = (i + 1) % n
	}
	area := func(i int) float64 {
		a, b, c := coords[prev[i]], coords[i], coords[next[i]]
		return 0.5 * math.Abs(b.Sub(a).PerpDot(c.Sub(a)))
	}

	items := make([]*decimateItem, n)
	h := decimateHeap{}
	for i := range coords {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		items[i] = &decimateItem{i: i, area: area(i)}
		heap.Push(&h, items[i])
	}

	removed := make([]bool, n)
	count := n
	for 0 < len(h) {
		item := h[0]
		if tolerance <= item.area {
			break
		}
		heap.Pop(&h)
		i := item.i
		removed[i] = true
		count--
		if closed && count < 3 {
			return nil
		}

		p, q := prev[i], next[i]
		next[p], prev[q] = q, p
		for _, j := range []int{p, q} {
			if items[j] != nil && 0 <= items[j].index {
				// the area of a neighbour never drops below that of the removed vertex
				items[j].area = math.Max(area(j), item.area)
				heap.Fix(&h, items[j].index)
			}
		}
	}

	res := make([]Point, 0, count)
	for i, coord := range coords {
		if !removed[i] {
			res = append(res, coord)
		}
	}
	return res
}
