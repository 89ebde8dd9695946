package toolpath

import (
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/slicer"
)

// Generator turns a slice sequence into moves. Calls are made in path
// order: the lead-in spiral, the root slice, every other slice, then the
// return to base.
type Generator interface {
	AppendSpiral(center, end geom.Point, pitch float64, dir geom.Direction)
	AppendRootSlice(s *slicer.Slice)
	AppendSlice(s *slicer.Slice)
	AppendReturnToBase(points []geom.Point)
	Path() *Path
}

// Minimal joins slice arcs with straight moves and nothing else.
type Minimal struct {
	tol  float64
	path Path
}

var _ Generator = (*Minimal)(nil)

// NewGenerator returns a minimal generator. Gaps shorter than tol are not
// bridged.
func NewGenerator(tol float64) *Minimal {
	return &Minimal{tol: tol}
}

func (g *Minimal) Path() *Path { return &g.path }

func (g *Minimal) AppendSpiral(center, end geom.Point, pitch float64, dir geom.Direction) {
	for _, a := range Spiral(center, end, pitch, dir) {
		g.path.Append(a)
	}
}

func (g *Minimal) AppendRootSlice(s *slicer.Slice) {
	g.lineTo(s.Start())
	for _, a := range s.Arcs {
		g.path.Append(a)
	}
}

func (g *Minimal) AppendSlice(s *slicer.Slice) {
	for _, p := range s.Guide {
		g.lineTo(p)
	}
	for _, a := range s.Arcs {
		g.lineTo(a.First())
		g.path.Append(a)
	}
}

func (g *Minimal) AppendReturnToBase(points []geom.Point) {
	for _, p := range points {
		g.lineTo(p)
	}
}

// lineTo moves straight from the current end to p. An empty path is not
// extended; its first move defines where it starts.
func (g *Minimal) lineTo(p geom.Point) {
	if g.path.Len() == 0 {
		return
	}
	cur := g.path.End()
	if cur.Equal(p, g.tol) {
		return
	}
	g.path.Append(geom.Seg(cur, p))
}
