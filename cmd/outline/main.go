package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tdewolff/argp"
	"github.com/tdewolff/outline"
)

type Usage struct{}

type Stroke struct {
	Width      float64 `short:"w" desc:"Stroke width"`
	Join       string  `short:"j" desc:"Join type: bevel, round, miter, miter-clip, extrapolate, extrapolate1, extrapolate2 or extrapolate3"`
	Cap        string  `short:"c" desc:"Cap type: butt, round, square or peak"`
	MiterLimit float64 `short:"m" desc:"Miter limit as a multiple of the half width"`
	Tolerance  float64 `short:"t" desc:"Maximum deviation of offset curves"`
	Config     string  `desc:"TOML style file"`
	Verbose    bool    `short:"v" desc:"Log debug messages"`
	Output     string  `short:"o" desc:"Output PNG file, SVG path data is written to stdout otherwise"`
	Input      string  `short:"i" desc:"Input file with SVG path data"`
	Path       string  `index:"0" desc:"SVG path data"`
}

type Offset struct {
	Width      float64 `short:"w" desc:"Offset width, negative to inset"`
	Join       string  `short:"j" desc:"Join type"`
	FillRule   string  `short:"f" desc:"Fill rule: nonzero, evenodd, positive or negative"`
	MiterLimit float64 `short:"m" desc:"Miter limit as a multiple of the width"`
	Tolerance  float64 `short:"t" desc:"Maximum deviation of offset curves"`
	Near       string  `desc:"Reference point x,y selecting the side of open subpaths"`
	Config     string  `desc:"TOML style file"`
	Verbose    bool    `short:"v" desc:"Log debug messages"`
	Output     string  `short:"o" desc:"Output PNG file, SVG path data is written to stdout otherwise"`
	Input      string  `short:"i" desc:"Input file with SVG path data"`
	Path       string  `index:"0" desc:"SVG path data"`
}

type Bool struct {
	Op       string `default:"union" desc:"Operation: union, intersection, difference, xor, cut or slice"`
	FillRule string `short:"f" desc:"Fill rule of both operands"`
	Config   string `desc:"TOML style file"`
	Verbose  bool   `short:"v" desc:"Log debug messages"`
	Output   string `short:"o" desc:"Output PNG file, SVG path data is written to stdout otherwise"`
	A        string `index:"0" desc:"SVG path data of the first operand"`
	B        string `index:"1" desc:"SVG path data of the second operand"`
}

func main() {
	root := argp.NewCmd(&Usage{}, "Stroke, offset and combine paths given as SVG path data")
	root.AddCmd(&Stroke{}, "stroke", "Convert the stroke of a path to a filled outline")
	root.AddCmd(&Offset{}, "offset", "Inset or outset a filled path")
	root.AddCmd(&Bool{}, "bool", "Combine two paths by a boolean operation")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Usage) Run() error {
	return argp.ShowUsage
}

func (cmd *Stroke) Run() error {
	setVerbose(cmd.Verbose)
	style, err := LoadStyle(cmd.Config)
	if err != nil {
		return err
	}
	if err := style.Set(cmd.Width, cmd.Join, cmd.Cap, "", cmd.MiterLimit, cmd.Tolerance); err != nil {
		return err
	}

	p, err := readPath(cmd.Input, cmd.Path)
	if err != nil {
		return err
	} else if p == nil {
		return argp.ShowUsage
	}

	q := p.Stroke(style.Width, style.Join, style.Cap, style.MiterLimit, style.Tolerance)
	return writePath(cmd.Output, q)
}

func (cmd *Offset) Run() error {
	setVerbose(cmd.Verbose)
	style, err := LoadStyle(cmd.Config)
	if err != nil {
		return err
	}
	if err := style.Set(cmd.Width, cmd.Join, "", cmd.FillRule, cmd.MiterLimit, cmd.Tolerance); err != nil {
		return err
	}

	p, err := readPath(cmd.Input, cmd.Path)
	if err != nil {
		return err
	} else if p == nil {
		return argp.ShowUsage
	}

	var q *outline.Path
	if cmd.Near != "" {
		ref, err := parsePoint(cmd.Near)
		if err != nil {
			return err
		}
		q = p.OffsetNear(style.Width, style.Tolerance, style.MiterLimit, style.FillRule, style.Join, ref)
	} else {
		q = p.Offset(style.Width, style.Tolerance, style.MiterLimit, style.FillRule, style.Join)
	}
	return writePath(cmd.Output, q)
}

func (cmd *Bool) Run() error {
	setVerbose(cmd.Verbose)
	if cmd.A == "" || cmd.B == "" {
		return argp.ShowUsage
	}
	style, err := LoadStyle(cmd.Config)
	if err != nil {
		return err
	}
	if err := style.Set(0.0, "", "", cmd.FillRule, 0.0, 0.0); err != nil {
		return err
	}

	var op outline.BooleanOp
	if err := op.UnmarshalText([]byte(cmd.Op)); err != nil {
		return err
	}

	a, err := outline.ParseSVGPath(cmd.A)
	if err != nil {
		return fmt.Errorf("first operand: %w", err)
	}
	b, err := outline.ParseSVGPath(cmd.B)
	if err != nil {
		return fmt.Errorf("second operand: %w", err)
	}

	q, err := outline.Boolean(a, b, op, style.FillRule, style.FillRule)
	if err != nil {
		return err
	}
	return writePath(cmd.Output, q)
}

func setVerbose(verbose bool) {
	if verbose {
		outline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
}

// readPath reads the path from the file, or parses data when no file is given. It returns nil when neither is given.
func readPath(filename, data string) (*outline.Path, error) {
	if filename != "" {
		b, err := os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		data = string(b)
	} else if data == "" {
		return nil, nil
	}
	return outline.ParseSVGPath(strings.TrimSpace(data))
}

// writePath renders the path to a PNG file, or prints its SVG path data when no file is given.
func writePath(filename string, p *outline.Path) error {
	if filename == "" || filename == "-" {
		fmt.Println(p.ToSVG())
		return nil
	}
	return RenderPNG(filename, p, defaultResolution)
}

func parsePoint(s string) (outline.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return outline.Point{}, fmt.Errorf("bad point %q, expected x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return outline.Point{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return outline.Point{}, fmt.Errorf("bad point %q: %w", s, err)
	}
	return outline.Point{X: x, Y: y}, nil
}
