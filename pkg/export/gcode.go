// Package export writes pocket tool paths as G-code, SVG, DXF and PNG
// previews.
package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/toolpath"
)

// GCodeOptions controls G-code output. Coordinates are written in the path's
// own unit; Imperial only switches the unit word in the header.
type GCodeOptions struct {
	Feed       float64
	PlungeFeed float64
	SafeZ      float64
	Depth      float64
	SpindleRPM int
	Imperial   bool
	// Decimals is the number of digits after the point; 0 writes whole
	// numbers and a negative value selects 4.
	Decimals int
}

// DefaultGCodeOptions returns conservative metric settings.
func DefaultGCodeOptions() GCodeOptions {
	return GCodeOptions{
		Feed:       800,
		PlungeFeed: 200,
		SafeZ:      5,
		Depth:      1,
		SpindleRPM: 18000,
		Decimals:   4,
	}
}

// Program is one named tool path in a G-code file.
type Program struct {
	Name string
	Path *toolpath.Path
}

// gcodeWriter remembers the first write error so callers can check once.
type gcodeWriter struct {
	w    *bufio.Writer
	opts GCodeOptions
	err  error
}

func (g *gcodeWriter) printf(format string, args ...any) {
	if g.err != nil {
		return
	}
	_, g.err = fmt.Fprintf(g.w, format, args...)
}

func (g *gcodeWriter) num(v float64) string {
	s := fmt.Sprintf("%.*f", g.opts.Decimals, v)
	if s == fmt.Sprintf("-%.*f", g.opts.Decimals, 0.0) {
		return s[1:]
	}
	return s
}

// WriteGCode writes a complete program: header, one block per non-empty
// program, and footer. Arcs become G2 (clockwise) or G3
// (counter-clockwise) with I/J offsets from the start point to the center.
// Full circles are split into two half circles.
func WriteGCode(w io.Writer, opts GCodeOptions, programs ...Program) error {
	if opts.Decimals < 0 {
		opts.Decimals = 4
	}
	g := &gcodeWriter{w: bufio.NewWriter(w), opts: opts}

	g.printf("(trochoidal pocket)\n")
	if opts.Imperial {
		g.printf("G20\n")
	} else {
		g.printf("G21\n")
	}
	g.printf("G90\nG17\n")
	if opts.SpindleRPM > 0 {
		g.printf("M3 S%d\n", opts.SpindleRPM)
	}
	g.printf("G0 Z%s\n", g.num(opts.SafeZ))

	for _, p := range programs {
		if p.Path == nil || p.Path.Len() == 0 {
			g.printf("(%s: empty)\n", p.Name)
			continue
		}
		g.program(p)
	}

	g.printf("G0 Z%s\n", g.num(opts.SafeZ))
	if opts.SpindleRPM > 0 {
		g.printf("M5\n")
	}
	g.printf("M2\n")

	if g.err != nil {
		return fmt.Errorf("export: gcode: %w", g.err)
	}
	if err := g.w.Flush(); err != nil {
		return fmt.Errorf("export: gcode: %w", err)
	}
	return nil
}

func (g *gcodeWriter) program(p Program) {
	start := p.Path.Start()
	g.printf("(%s: %d moves, %s long)\n", p.Name, p.Path.Len(), g.num(p.Path.Length()))
	g.printf("G0 X%s Y%s\n", g.num(start.X), g.num(start.Y))
	g.printf("G1 Z%s F%s\n", g.num(-g.opts.Depth), g.num(g.opts.PlungeFeed))
	g.printf("F%s\n", g.num(g.opts.Feed))

	for _, m := range p.Path.Moves {
		switch m := m.(type) {
		case geom.Arc:
			g.arc(m)
		case geom.Segment:
			if m.Length() > 0 {
				g.printf("G1 X%s Y%s\n", g.num(m.B.X), g.num(m.B.Y))
			}
		}
	}
	g.printf("G0 Z%s\n", g.num(g.opts.SafeZ))
}

func (g *gcodeWriter) arc(a geom.Arc) {
	if a.Sweep == 0 || a.R == 0 {
		return
	}
	if math.Abs(a.Sweep) >= 2*math.Pi-1e-9 {
		half := a.Sweep / 2
		g.arc(geom.Arc{Center: a.Center, R: a.R, Start: a.Start, Sweep: half})
		g.arc(geom.Arc{Center: a.Center, R: a.R, Start: a.Start + half, Sweep: half})
		return
	}
	cmd := "G3"
	if a.Dir() == geom.CW {
		cmd = "G2"
	}
	from, to := a.First(), a.Last()
	off := a.Center.Sub(from)
	g.printf("%s X%s Y%s I%s J%s\n", cmd, g.num(to.X), g.num(to.Y), g.num(off.X), g.num(off.Y))
}
