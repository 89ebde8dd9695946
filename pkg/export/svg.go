package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/pocket"
	"github.com/chazu/trochomill/pkg/toolpath"
)

// SVGOptions controls SVG output.
type SVGOptions struct {
	// Scale is pixels per unit.
	Scale float64
	// Margin is the border around the pocket in units.
	Margin float64
	// Slices also draws every slice circle.
	Slices bool
	// Medial also draws the medial-axis tree.
	Medial bool
}

// DefaultSVGOptions returns options that draw the path only.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Scale: 10, Margin: 2}
}

// WriteSVG draws the pocket boundary and the tool path. The drawing uses
// pocket coordinates with Y pointing up.
func WriteSVG(w io.Writer, job pocket.Job, res *pocket.Result, opts SVGOptions) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	bounds := job.Boundary().Outline.Bounds().Pad(opts.Margin)
	if res != nil && !res.Empty() {
		bounds = bounds.Union(res.Path.Bounds())
	}
	if bounds.IsEmpty() {
		return fmt.Errorf("export: svg: pocket %q has no outline", job.Name)
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width := int(math.Ceil(bounds.Width() * opts.Scale))
	height := int(math.Ceil(bounds.Height() * opts.Scale))
	canvas.Start(width, height)
	canvas.Title(job.Name)
	canvas.Gtransform(fmt.Sprintf("scale(%g,%g) translate(%g,%g)",
		opts.Scale, -opts.Scale, -bounds.Min.X, -bounds.Max.Y))

	stroke := 1 / opts.Scale
	canvas.Gstyle(fmt.Sprintf("fill:none;stroke-width:%g", stroke))
	canvas.Path(curvePath(job.Outline), "stroke:black")
	for _, isl := range job.Islands {
		canvas.Path(curvePath(isl), "stroke:black;fill:#ddd")
	}
	if res != nil && !res.Empty() {
		if opts.Slices {
			for _, sl := range res.Slices {
				canvas.Path(arcPath(geom.FullCircle(sl.Center(), sl.Radius(), 0, geom.CCW), true), "stroke:#9cf")
			}
		}
		if opts.Medial && res.Tree != nil {
			for _, s := range res.Tree.Segments() {
				canvas.Path(fmt.Sprintf("M%g %g L%g %g", s.A.X, s.A.Y, s.B.X, s.B.Y), "stroke:green")
			}
		}
		canvas.Path(pathData(res.Path), "stroke:red")
	}
	canvas.Gend()
	canvas.Gend()
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("export: svg: %w", ew.err)
	}
	return nil
}

func curvePath(pl geom.Polyline) string {
	var b strings.Builder
	for i, p := range pl.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%g %g ", cmd, p.X, p.Y)
	}
	b.WriteString("Z")
	return b.String()
}

// pathData converts moves to SVG path data with native arc commands.
func pathData(p *toolpath.Path) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M%g %g", p.Start().X, p.Start().Y)
	for _, m := range p.Moves {
		switch m := m.(type) {
		case geom.Arc:
			b.WriteString(arcPath(m, false))
		default:
			fmt.Fprintf(&b, " L%g %g", m.Last().X, m.Last().Y)
		}
	}
	return b.String()
}

// arcPath returns "A" commands for a. SVG cannot draw a full circle in one
// arc command, so full circles become two halves.
func arcPath(a geom.Arc, move bool) string {
	var b strings.Builder
	if move {
		fmt.Fprintf(&b, "M%g %g", a.First().X, a.First().Y)
	}
	parts := []geom.Arc{a}
	if a.IsFull() {
		half := a.Sweep / 2
		parts = []geom.Arc{
			{Center: a.Center, R: a.R, Start: a.Start, Sweep: half},
			{Center: a.Center, R: a.R, Start: a.Start + half, Sweep: half},
		}
	}
	for _, p := range parts {
		large, sweep := 0, 0
		if math.Abs(p.Sweep) > math.Pi {
			large = 1
		}
		if p.Sweep > 0 {
			sweep = 1
		}
		end := p.Last()
		fmt.Fprintf(&b, " A%g %g 0 %d %d %g %g", p.R, p.R, large, sweep, end.X, end.Y)
	}
	return b.String()
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
