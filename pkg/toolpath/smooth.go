package toolpath

import (
	"math"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/slicer"
)

// Smooth extends each cutting arc with short lead-in and lead-out arcs and
// bridges the gap between consecutive arcs with a tangent arc where one
// stays close to the straight chord.
type Smooth struct {
	Minimal

	maxDev  float64
	leadIn  float64
	leadOut float64
}

var _ Generator = (*Smooth)(nil)

// NewSmoothGenerator returns a smoothing generator. maxDev bounds the
// sagitta of bridging arcs; leadIn and leadOut are the extension angles in
// radians.
func NewSmoothGenerator(tol, maxDev, leadIn, leadOut float64) *Smooth {
	return &Smooth{
		Minimal: Minimal{tol: tol},
		maxDev:  maxDev,
		leadIn:  leadIn,
		leadOut: leadOut,
	}
}

func (g *Smooth) AppendSlice(s *slicer.Slice) {
	for _, p := range s.Guide {
		g.lineTo(p)
	}
	guided := len(s.Guide) > 0
	for _, a := range s.Arcs {
		a = a.Extend(g.leadIn, g.leadOut)
		if guided {
			g.lineTo(a.First())
			guided = false
		} else {
			g.bridge(a.First())
		}
		g.path.Append(a)
	}
}

// bridge joins the current end to p with an arc tangent to the last move,
// falling back to a straight line when the arc would bulge more than
// maxDev or sweep more than half a turn.
func (g *Smooth) bridge(p geom.Point) {
	if g.path.Len() == 0 {
		return
	}
	cur := g.path.End()
	if cur.Equal(p, g.tol) {
		return
	}
	t, ok := endTangent(g.path.Moves[g.path.Len()-1])
	if ok {
		if a, ok := TangentArc(cur, t, p); ok && a.Sagitta() <= g.maxDev && math.Abs(a.Sweep) <= math.Pi {
			g.path.Append(a)
			return
		}
	}
	g.path.Append(geom.Seg(cur, p))
}

// TangentArc returns the arc that leaves from with unit direction t and
// passes through to. ok is false when to lies on the tangent line.
func TangentArc(from, t, to geom.Point) (geom.Arc, bool) {
	n := t.Perp()
	d := to.Sub(from)
	k := d.Dot(n)
	if math.Abs(k) < 1e-12 {
		return geom.Arc{}, false
	}
	// Signed radius: positive puts the center to the left of t.
	r := d.Dot(d) / (2 * k)
	center := from.Add(n.Scale(r))
	dir := geom.CCW
	if r < 0 {
		dir = geom.CW
	}
	return geom.NewArc(center, from, to, dir), true
}
