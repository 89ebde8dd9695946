package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/pocket"
	"golang.org/x/image/vector"
)

// PreviewOptions controls the raster preview.
type PreviewOptions struct {
	// Size is the length of the longer image side in pixels.
	Size int
	// CircleSegments is the polygon resolution of swept tool discs.
	CircleSegments int
}

// DefaultPreviewOptions returns a 512 pixel preview.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{Size: 512, CircleSegments: 48}
}

var (
	stockColor  = color.RGBA{R: 0xc8, G: 0xa8, B: 0x78, A: 0xff}
	cutColor    = color.RGBA{R: 0x40, G: 0x60, B: 0x90, A: 0xff}
	islandColor = color.RGBA{R: 0x90, G: 0x70, B: 0x48, A: 0xff}
)

// RenderPreview rasterizes the material the tool removes: the pocket is
// drawn as stock and every slice contributes the disc its tool sweeps.
// Uncovered stock inside the outline shows where the path leaves material.
func RenderPreview(job pocket.Job, res *pocket.Result, opts PreviewOptions) *image.RGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultPreviewOptions().Size
	}
	if opts.CircleSegments < 8 {
		opts.CircleSegments = DefaultPreviewOptions().CircleSegments
	}
	toolR := job.Options.ToolRadius()
	bounds := job.Outline.Bounds().Pad(toolR)
	scale := float64(opts.Size) / bounds.Size()
	w := max(1, int(math.Ceil(bounds.Width()*scale-1e-9)))
	h := max(1, int(math.Ceil(bounds.Height()*scale-1e-9)))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	toPx := func(p geom.Point) (float32, float32) {
		return float32((p.X - bounds.Min.X) * scale), float32((bounds.Max.Y - p.Y) * scale)
	}
	r := vector.NewRasterizer(w, h)
	fill := func(c color.Color, curves ...[]geom.Point) {
		r.Reset(w, h)
		for _, pts := range curves {
			if len(pts) < 3 {
				continue
			}
			r.MoveTo(toPx(pts[0]))
			for _, p := range pts[1:] {
				r.LineTo(toPx(p))
			}
			r.ClosePath()
		}
		r.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	fill(stockColor, job.Outline.Points)
	if res != nil {
		var discs [][]geom.Point
		for _, sl := range res.Slices {
			discs = append(discs, geom.RegularPolygon(sl.Center(), sl.Radius()+toolR, opts.CircleSegments).Points)
		}
		if len(discs) > 0 {
			fill(cutColor, discs...)
		}
	}
	for _, isl := range job.Islands {
		fill(islandColor, isl.Points)
	}
	return img
}

// WritePNG encodes the preview as PNG.
func WritePNG(w io.Writer, job pocket.Job, res *pocket.Result, opts PreviewOptions) error {
	if err := png.Encode(w, RenderPreview(job, res, opts)); err != nil {
		return fmt.Errorf("export: png: %w", err)
	}
	return nil
}
