package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/tdewolff/outline"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// defaultResolution is the number of pixels per unit of the path.
const defaultResolution = 10.0

// RenderPNG fills the path in black on a white background with a margin of 10% and writes it as a PNG image. The y axis points up.
func RenderPNG(filename string, p *outline.Path, resolution float64) error {
	bounds := p.Bounds()
	margin := 0.1 * math.Max(bounds.W, bounds.H)
	if margin == 0.0 {
		margin = 1.0
	}
	bounds = bounds.Expand(margin)

	width := int(math.Ceil(bounds.W * resolution))
	height := int(math.Ceil(bounds.H * resolution))
	if 8192 < width || 8192 < height {
		return fmt.Errorf("image size %dx%d too large, lower the resolution", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	ras := vector.NewRasterizer(width, height)
	toRasterizer(ras, p, bounds, resolution)
	ras.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{})

	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// toRasterizer adds the path to the rasterizer, mapping the bounds to the image and flipping the y axis.
func toRasterizer(ras *vector.Rasterizer, p *outline.Path, bounds outline.Rect, resolution float64) {
	pt := func(q outline.Point) (float32, float32) {
		return float32((q.X - bounds.X) * resolution), float32((bounds.Y + bounds.H - q.Y) * resolution)
	}

	scanner := p.ReplaceArcs().Scanner()
	for scanner.Scan() {
		s := scanner.Segment()
		x, y := pt(scanner.End())
		switch scanner.Cmd() {
		case outline.MoveToCmd:
			ras.MoveTo(x, y)
		case outline.LineToCmd:
			ras.LineTo(x, y)
		case outline.QuadToCmd:
			cx, cy := pt(s.CP1)
			ras.QuadTo(cx, cy, x, y)
		case outline.CubeToCmd:
			cx1, cy1 := pt(s.CP1)
			cx2, cy2 := pt(s.CP2)
			ras.CubeTo(cx1, cy1, cx2, cy2, x, y)
		case outline.CloseCmd:
			ras.ClosePath()
		}
	}
}
