package voronoi

import (
	"math"

	"github.com/chazu/trochomill/pkg/diag"
	"github.com/chazu/trochomill/pkg/geom"
)

// Edges returns the finite Voronoi edges of the triangulation: for every
// interior half-edge pair, the segment between the circumcenters of the two
// triangles. Order follows the half-edge list, so identical input gives
// identical output. Degenerate triangles contribute nothing.
func (tr *Triangulation) Edges() []geom.Segment {
	var out []geom.Segment
	for e, o := range tr.opposite {
		if o < e {
			continue
		}
		t, u := tr.Triangles[e/3], tr.Triangles[o/3]
		if t.Degenerate() || u.Degenerate() {
			continue
		}
		out = append(out, geom.Seg(t.Center, u.Center))
	}
	return out
}

// Diagram computes the Voronoi edges of sites with vertices welded within
// tol: circumcenters closer than tol collapse to the first one seen, edges
// that become shorter than tol are dropped and repeated edges are kept once.
// Sites without a triangulation give no edges.
func Diagram(sites []geom.Point, tol float64) []geom.Segment {
	tr, err := Triangulate(sites)
	if err != nil {
		diag.Logger().Debug("voronoi diagram skipped", "sites", len(sites), "err", err)
		return nil
	}
	raw := tr.Edges()
	w := newWelder(tol)
	seen := make(map[[2]int]bool, len(raw))
	out := make([]geom.Segment, 0, len(raw))
	for _, s := range raw {
		a, pa := w.weld(s.A)
		b, pb := w.weld(s.B)
		if a == b || pa.Dist(pb) <= tol {
			continue
		}
		key := [2]int{min(a, b), max(a, b)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, geom.Seg(pa, pb))
	}
	return out
}

type cell struct{ ix, iy int64 }

// welder snaps points to the first earlier point within tol, using a grid
// of tol-sized cells so each lookup inspects at most nine cells.
type welder struct {
	tol  float64
	pts  []geom.Point
	grid map[cell][]int
}

func newWelder(tol float64) *welder {
	if tol <= 0 {
		tol = 1e-9
	}
	return &welder{tol: tol, grid: make(map[cell][]int)}
}

func (w *welder) key(p geom.Point) cell {
	return cell{int64(math.Floor(p.X / w.tol)), int64(math.Floor(p.Y / w.tol))}
}

func (w *welder) weld(p geom.Point) (int, geom.Point) {
	k := w.key(p)
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, i := range w.grid[cell{k.ix + dx, k.iy + dy}] {
				if w.pts[i].Equal(p, w.tol) {
					return i, w.pts[i]
				}
			}
		}
	}
	i := len(w.pts)
	w.pts = append(w.pts, p)
	w.grid[k] = append(w.grid[k], i)
	return i, p
}
