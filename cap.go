package outline

import (
	"fmt"
)

// CapType selects the geometry that closes the ends of an open stroked path.
type CapType int

// see CapType
const (
	ButtCap CapType = iota
	RoundCap
	SquareCap
	PeakCap
)

var capNames = []string{"butt", "round", "square", "peak"}

func (ct CapType) String() string {
	if ct < 0 || int(ct) >= len(capNames) {
		return fmt.Sprintf("CapType(%d)", int(ct))
	}
	return capNames[ct]
}

// MarshalText implements encoding.TextMarshaler.
func (ct CapType) MarshalText() ([]byte, error) {
	if ct < 0 || int(ct) >= len(capNames) {
		return nil, fmt.Errorf("unknown cap type %d", int(ct))
	}
	return []byte(capNames[ct]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ct *CapType) UnmarshalText(b []byte) error {
	for i, name := range capNames {
		if name == string(b) {
			*ct = CapType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cap type %q", string(b))
}

// Capper returns the cap strategy for the cap type.
func (ct CapType) Capper() Capper {
	switch ct {
	case RoundCap:
		return RoundCapper
	case SquareCap:
		return SquareCapper
	case PeakCap:
		return PeakCapper
	}
	return ButtCapper
}

// Capper implements Cap, with p the path to append to, halfWidth the half width of the stroke, pivot the end point of the original path around which to construct a cap, and n0 the vector from pivot to the current position of p. The cap ends at pivot-n0.
type Capper interface {
	Cap(*Path, float64, Point, Point)
}

type CapperFunc func(*Path, float64, Point, Point)

func (f CapperFunc) Cap(p *Path, halfWidth float64, pivot, n0 Point) {
	f(p, halfWidth, pivot, n0)
}

// ButtCapper caps the start or end of a path by a butt cap.
var ButtCapper Capper = CapperFunc(buttCapper)

func buttCapper(p *Path, halfWidth float64, pivot, n0 Point) {
	end := pivot.Sub(n0)
	p.LineTo(end.X, end.Y)
}

// RoundCapper caps the start or end of a path by a half circle.
var RoundCapper Capper = CapperFunc(roundCapper)

func roundCapper(p *Path, halfWidth float64, pivot, n0 Point) {
	end := pivot.Sub(n0)
	p.ArcTo(halfWidth, halfWidth, 0.0, false, true, end.X, end.Y)
}

// SquareCapper caps the start or end of a path by a square cap that extends the path by halfWidth.
var SquareCapper Capper = CapperFunc(squareCapper)

func squareCapper(p *Path, halfWidth float64, pivot, n0 Point) {
	e := n0.Rot90CCW()
	corner1 := pivot.Add(e).Add(n0)
	corner2 := pivot.Add(e).Sub(n0)
	end := pivot.Sub(n0)
	p.LineTo(corner1.X, corner1.Y)
	p.LineTo(corner2.X, corner2.Y)
	p.LineTo(end.X, end.Y)
}

// PeakCapper caps the start or end of a path by a triangle with its apex halfWidth beyond the end of the path.
var PeakCapper Capper = CapperFunc(peakCapper)

func peakCapper(p *Path, halfWidth float64, pivot, n0 Point) {
	apex := pivot.Add(n0.Rot90CCW())
	end := pivot.Sub(n0)
	p.LineTo(apex.X, apex.Y)
	p.LineTo(end.X, end.Y)
}
