package outline

import (
	"math"
)

const (
	// insetGap widens the band that is removed from a filled path when insetting, so that the band's borders don't coincide with the input.
	insetGap = 0.01

	// outsetIslandFactor times the offset width is the bounding box side below which outset islands and holes are dropped.
	outsetIslandFactor = 2.0

	// nearlyClosedDistance is the distance below which the ends of an open subpath are considered to coincide when offsetting.
	nearlyClosedDistance = 1e-6
)

// defaultTolerance returns the offset tolerance used when none is given.
func defaultTolerance(w, tolerance float64) float64 {
	if 0.0 < tolerance {
		return tolerance
	} else if w == 0.0 {
		return 1e-4
	}
	return math.Abs(w) / 100.0
}

// HalfOutline returns the offset of every subpath of p at signed distance width, where a positive width lies to the right of the direction of travel. Consecutive offset segments are connected by the join, and closed subpaths result in closed offsets. A tolerance of zero or less selects a tolerance of |width|/100.
func HalfOutline(p *Path, width, miterLimit float64, join JoinType, tolerance float64) *Path {
	tolerance = defaultTolerance(width, tolerance)
	jr := join.Joiner()
	q := &Path{}
	for _, pi := range p.Split() {
		q = q.Append(halfOutline(pi, width, miterLimit, jr, tolerance))
	}
	return q
}

// halfOutline returns the offset of a single subpath.
func halfOutline(pi *Path, w, miterLimit float64, jr Joiner, tolerance float64) *Path {
	segs := []Segment{}
	for _, s := range pi.Segments() {
		if !s.IsDegenerate() {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return &Path{}
	}

	res := &Path{}
	for i, s := range segs {
		tmp := &Path{}
		offsetSegment(tmp, s, w, tolerance)
		if i == 0 {
			res.stitch(tmp)
			continue
		}
		join(&JoinContext{
			Result:     res,
			Outgoing:   tmp,
			InTangent:  segs[i-1].TangentAt(1.0),
			OutTangent: s.TangentAt(0.0),
			MiterLimit: miterLimit,
			Width:      w,
		}, jr)
	}
	if res.Empty() || !pi.Closed() {
		return res
	}

	// join the last offset segment to the first, and start the result after that join
	first := segmentAt(res.d, cmdLen(MoveToCmd), Point{res.d[1], res.d[2]})
	join(&JoinContext{
		Result:     res,
		Outgoing:   first.path(),
		InTangent:  segs[len(segs)-1].TangentAt(1.0),
		OutTangent: segs[0].TangentAt(0.0),
		MiterLimit: miterLimit,
		Width:      w,
	}, jr)
	trimFirstSegment(res)
	res.Close()
	return res
}

// trimFirstSegment removes the first drawing command of p, so that p starts at its end point.
func trimFirstSegment(p *Path) {
	i := cmdLen(MoveToCmd)
	if len(p.d) <= i || p.d[i] == MoveToCmd {
		return
	}
	n := cmdLen(p.d[i])
	start := Point{p.d[i+n-3], p.d[i+n-2]}
	d := append([]float64{MoveToCmd, start.X, start.Y, MoveToCmd}, p.d[i+n:]...)
	p.d = d
}

// Stroke converts a path into a path that is the stroked outline of the path, with width the full width of the stroke. Each subpath is outlined independently: open subpaths get their caps, closed subpaths are outlined by two closed contours. A tolerance of zero or less selects a tolerance of width/200.
func (p *Path) Stroke(width float64, join JoinType, cap CapType, miterLimit, tolerance float64) *Path {
	q := &Path{}
	halfWidth := math.Abs(width) / 2.0
	if halfWidth == 0.0 {
		return q
	}
	tolerance = defaultTolerance(halfWidth, tolerance)
	jr, cr := join.Joiner(), cap.Capper()

	for _, pi := range p.Split() {
		withDir := halfOutline(pi, halfWidth, miterLimit, jr, tolerance)
		if withDir.Empty() {
			continue
		}
		againstDir := halfOutline(pi.Reverse(), halfWidth, miterLimit, jr, tolerance)

		if pi.Closed() {
			q = q.Append(withDir, againstDir)
			continue
		}

		start, end := Point{pi.d[1], pi.d[2]}, pi.Pos()
		q.MoveTo(withDir.d[1], withDir.d[2])
		q.stitch(withDir)
		cr.Cap(q, halfWidth, end, q.Pos().Sub(end))
		q.stitch(againstDir)
		cr.Cap(q, halfWidth, start, q.Pos().Sub(start))
		q.Close()
	}
	return q
}

// Offset offsets the filled path by width, growing it for positive and shrinking it for negative widths. Closed subpaths are first normalized under fillRule so that filled contours are counter clockwise and holes clockwise. Open subpaths are replaced by their half-outline at width. A tolerance of zero or less selects a tolerance of |width|/100.
func (p *Path) Offset(width, tolerance, miterLimit float64, fillRule FillRule, join JoinType) *Path {
	return p.offset(width, tolerance, miterLimit, fillRule, join, Point{}, false)
}

// OffsetNear is like Offset, but offsets open subpaths to the side of the path nearest to ref.
func (p *Path) OffsetNear(width, tolerance, miterLimit float64, fillRule FillRule, join JoinType, ref Point) *Path {
	return p.offset(width, tolerance, miterLimit, fillRule, join, ref, true)
}

func (p *Path) offset(w, tolerance, miterLimit float64, fillRule FillRule, join JoinType, ref Point, hasRef bool) *Path {
	tolerance = defaultTolerance(w, tolerance)
	jr := join.Joiner()

	closed, open := []*Path{}, []*Path{}
	for _, pi := range p.ReplaceArcs().Split() {
		if len(pi.Segments()) == 0 {
			continue
		} else if pi.Closed() {
			closed = append(closed, pi)
		} else if pi.Pos().Distance(Point{pi.d[1], pi.d[2]}) < nearlyClosedDistance {
			pi = pi.Copy()
			pi.setEnd(Point{pi.d[1], pi.d[2]})
			pi.Close()
			closed = append(closed, pi)
		} else {
			open = append(open, pi)
		}
	}

	flat, err := flattenPaths(closed, fillRule, tolerance)
	if err != nil {
		Logger().Warn("offset: normalizing filled paths failed", "error", err)
		flat = nil
	}

	q := &Path{}
	if w == 0.0 {
		q = q.Append(flat...)
	} else if 0 < len(flat) {
		q = q.Append(offsetFilled(flat, w, miterLimit, jr, tolerance)...)
	}

	for _, pi := range open {
		withDir := halfOutline(pi, w, miterLimit, jr, tolerance)
		if hasRef {
			againstDir := halfOutline(pi.Reverse(), w, miterLimit, jr, tolerance)
			if distanceTo(againstDir, ref) < distanceTo(withDir, ref) {
				withDir = againstDir
			}
		}
		q = q.Append(withDir)
	}
	return q
}

// offsetFilled offsets normalized closed subpaths, with filled contours counter clockwise and holes clockwise.
func offsetFilled(flat []*Path, w, miterLimit float64, jr Joiner, tolerance float64) []*Path {
	if w < 0.0 {
		bounds := Rect{}
		for _, pi := range flat {
			bounds = bounds.Add(pi.Bounds())
		}
		if bounds.Expand(w/2.0).Area() == 0.0 {
			return nil
		}
	}

	band := []*Path{}
	for _, pi := range flat {
		if 0.0 < w {
			withDir := halfOutline(pi, w, miterLimit, jr, tolerance)
			if pi.Area() < 0.0 {
				// holes shrink, and disappear when too small
				if outsetIslandFactor*w < pi.Bounds().MinorSide() {
					band = append(band, withDir)
				}
				continue
			}
			pieces, err := flattenPaths([]*Path{withDir}, Positive, tolerance)
			if err != nil {
				Logger().Warn("offset: removing outset self-intersections failed", "error", err)
				band = append(band, withDir)
				continue
			}
			for _, piece := range pieces {
				if outsetIslandFactor*w < piece.Bounds().MinorSide() {
					band = append(band, piece)
				}
			}
		} else {
			band = append(band,
				halfOutline(pi, -w+insetGap, miterLimit, jr, tolerance),
				halfOutline(pi.Reverse(), -w+insetGap, miterLimit, jr, tolerance))
		}
	}

	if 0.0 < w {
		res, err := flattenPaths(band, Positive, tolerance)
		if err != nil {
			Logger().Warn("offset: merging outset contours failed", "error", err)
			return band
		}
		return res
	}

	input, err := NewRegion((&Path{}).Append(flat...), NonZero, tolerance)
	if err != nil {
		Logger().Warn("offset: inset input region failed", "error", err)
		return nil
	}
	removed, err := NewRegion((&Path{}).Append(band...), Positive, tolerance)
	if err != nil {
		Logger().Warn("offset: inset band region failed", "error", err)
		return nil
	}
	res, err := input.Combine(removed, Difference)
	if err != nil {
		Logger().Warn("offset: inset difference failed", "error", err)
		return nil
	}
	return []*Path{res.ToPath()}
}

// distanceTo returns the distance from ref to the nearest point of p.
func distanceTo(p *Path, ref Point) float64 {
	dist := math.Inf(1)
	for _, s := range p.Segments() {
		if _, d := s.Nearest(ref); d < dist {
			dist = d
		}
	}
	return dist
}
