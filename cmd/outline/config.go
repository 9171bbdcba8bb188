package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/tdewolff/outline"
)

// Style holds the parameters of stroking and offsetting. Zero tolerances select the library's default.
type Style struct {
	Width      float64          `toml:"width"`
	Join       outline.JoinType `toml:"join"`
	Cap        outline.CapType  `toml:"cap"`
	FillRule   outline.FillRule `toml:"fill-rule"`
	MiterLimit float64          `toml:"miter-limit"`
	Tolerance  float64          `toml:"tolerance"`
}

var DefaultStyle = Style{
	Width:      1.0,
	Join:       outline.MiterJoin,
	Cap:        outline.ButtCap,
	FillRule:   outline.NonZero,
	MiterLimit: 4.0,
}

// LoadStyle returns the default style overridden by the values in the TOML file, if given.
func LoadStyle(filename string) (Style, error) {
	style := DefaultStyle
	if filename == "" {
		return style, nil
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return style, err
	}
	if err := toml.Unmarshal(b, &style); err != nil {
		return style, fmt.Errorf("%s: %w", filename, err)
	}
	return style, nil
}

// Set overrides the style by the values given on the command line, zero values and empty names are ignored.
func (style *Style) Set(width float64, join, cap, fillRule string, miterLimit, tolerance float64) error {
	if width != 0.0 {
		style.Width = width
	}
	if miterLimit != 0.0 {
		style.MiterLimit = miterLimit
	}
	if tolerance != 0.0 {
		style.Tolerance = tolerance
	}
	if join != "" {
		if err := style.Join.UnmarshalText([]byte(join)); err != nil {
			return err
		}
	}
	if cap != "" {
		if err := style.Cap.UnmarshalText([]byte(cap)); err != nil {
			return err
		}
	}
	if fillRule != "" {
		if err := style.FillRule.UnmarshalText([]byte(fillRule)); err != nil {
			return err
		}
	}
	return nil
}
