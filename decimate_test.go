package outline

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestDecimate(t *testing.T) {
	var tts = []struct {
		p         string
		tolerance float64
		expected  string
	}{
		{"M0 0L5 0.001L10 0", 0.1, "M0 0L10 0"},
		{"M0 0L5 1L10 0", 0.1, "M0 0L5 1L10 0"},
		{"M0 0L1 0L0 1z", 1.0, ""},
		{"M0 0L10 0L10 10L0 10z", 1.0, "M0 0L10 0L10 10L0 10z"},
		{"M0 0L10 0L10.001 5L10 10L0 10z", 0.1, "M0 0L10 0L10 10L0 10z"},
		{"M0 0L10 0M20 0L30 0", 1.0, "M0 0L10 0M20 0L30 0"},
	}
	for _, tt := range tts {
		t.Run(tt.p, func(t *testing.T) {
			test.T(t, MustParseSVGPath(tt.p).Decimate(tt.tolerance), MustParseSVGPath(tt.expected))
		})
	}
}

func TestDecimateOrder(t *testing.T) {
	// the smallest triangle goes first, after which its neighbour grows beyond the tolerance
	coords := []Point{{0, 0}, {1, 0.1}, {2, 0.3}, {3, 0}}
	test.T(t, decimate(coords, false, 0.2), []Point{{0, 0}, {2, 0.3}, {3, 0}})
	test.T(t, decimate(coords[:2], false, 1.0), coords[:2])
	test.T(t, len(decimate(coords[:2], true, 1.0)), 0)
}
