// Package toolpath assembles the final tool-center path from slices.
package toolpath

import (
	"github.com/chazu/trochomill/pkg/geom"
)

// Primitive is one tool move: a straight line (geom.Segment) or a directed
// arc (geom.Arc).
type Primitive interface {
	First() geom.Point
	Last() geom.Point
	Length() float64
}

var (
	_ Primitive = geom.Segment{}
	_ Primitive = geom.Arc{}
)

// Path is an ordered, connected list of moves.
type Path struct {
	Moves []Primitive
}

// Append adds a move to the end of the path.
func (p *Path) Append(m Primitive) { p.Moves = append(p.Moves, m) }

func (p *Path) Len() int { return len(p.Moves) }

// Start returns the first point of the path, or the zero point when empty.
func (p *Path) Start() geom.Point {
	if len(p.Moves) == 0 {
		return geom.Point{}
	}
	return p.Moves[0].First()
}

// End returns the last point of the path, or the zero point when empty.
func (p *Path) End() geom.Point {
	if len(p.Moves) == 0 {
		return geom.Point{}
	}
	return p.Moves[len(p.Moves)-1].Last()
}

// Length sums the length of every move.
func (p *Path) Length() float64 {
	var total float64
	for _, m := range p.Moves {
		total += m.Length()
	}
	return total
}

// Arcs returns the arc moves in order.
func (p *Path) Arcs() []geom.Arc {
	var out []geom.Arc
	for _, m := range p.Moves {
		if a, ok := m.(geom.Arc); ok {
			out = append(out, a)
		}
	}
	return out
}

// Lines returns the straight moves in order.
func (p *Path) Lines() []geom.Segment {
	var out []geom.Segment
	for _, m := range p.Moves {
		if s, ok := m.(geom.Segment); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bounds returns a box around every move.
func (p *Path) Bounds() geom.Rect {
	r := geom.EmptyRect()
	for _, m := range p.Moves {
		switch m := m.(type) {
		case geom.Arc:
			r = r.Union(m.Bounds())
		case geom.Segment:
			r = r.Union(m.Bounds())
		}
	}
	return r
}

// Flatten approximates the path as a single polyline with arcs replaced by
// chords that deviate at most tol.
func (p *Path) Flatten(tol float64) []geom.Point {
	var out []geom.Point
	for _, m := range p.Moves {
		var pts []geom.Point
		switch m := m.(type) {
		case geom.Arc:
			pts = m.Flatten(tol)
		default:
			pts = []geom.Point{m.First(), m.Last()}
		}
		if len(out) > 0 && out[len(out)-1].Equal(pts[0], 1e-12) {
			pts = pts[1:]
		}
		out = append(out, pts...)
	}
	return out
}

// Gaps returns the moves whose start does not meet the previous move's
// end within tol, by index.
func (p *Path) Gaps(tol float64) []int {
	var out []int
	for i := 1; i < len(p.Moves); i++ {
		if !p.Moves[i].First().Equal(p.Moves[i-1].Last(), tol) {
			out = append(out, i)
		}
	}
	return out
}

func endTangent(m Primitive) (geom.Point, bool) {
	switch m := m.(type) {
	case geom.Arc:
		return m.EndTangent(), true
	case geom.Segment:
		if m.Length() == 0 {
			return geom.Point{}, false
		}
		return m.B.Sub(m.A).Unit(), true
	}
	return geom.Point{}, false
}
