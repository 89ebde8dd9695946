// Package voronoi computes the Voronoi diagram of a planar point set as the
// dual of its Delaunay triangulation.
package voronoi

import (
	"fmt"
	"math"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/fogleman/delaunay"
)

// VertexIndex refers to Triangulation.Sites.
type VertexIndex int

// Triangle is a counter-clockwise Delaunay triangle with its circumcircle.
type Triangle struct {
	V      [3]VertexIndex
	Center geom.Point
	r2     float64 // squared circumradius, +Inf when the vertices are collinear
}

// Degenerate reports whether the vertices are collinear.
func (t Triangle) Degenerate() bool { return math.IsInf(t.r2, 1) }

// Radius returns the circumradius.
func (t Triangle) Radius() float64 { return math.Sqrt(t.r2) }

// Triangulation is the Delaunay triangulation of a set of sites. Triangle i
// owns half-edges 3i, 3i+1 and 3i+2; opposite[e] is the half-edge on the
// neighbouring triangle, or -1 on the hull.
type Triangulation struct {
	Sites     []geom.Point
	Triangles []Triangle
	opposite  []int
}

// NumSites returns the number of sites.
func (t *Triangulation) NumSites() int { return len(t.Sites) }

// Triangulate builds the Delaunay triangulation of sites. Fewer than three
// sites, or sites that are all collinear, have no triangulation; the error
// says so and the returned Triangulation is empty.
func Triangulate(sites []geom.Point) (*Triangulation, error) {
	tr := &Triangulation{Sites: append([]geom.Point(nil), sites...)}
	if len(sites) < 3 {
		return tr, fmt.Errorf("voronoi: need at least 3 sites, got %d", len(sites))
	}

	pts := make([]delaunay.Point, len(sites))
	for i, p := range sites {
		pts[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	d, err := delaunay.Triangulate(pts)
	if err != nil {
		return tr, fmt.Errorf("voronoi: %w", err)
	}

	tr.Triangles = make([]Triangle, 0, len(d.Triangles)/3)
	for i := 0; i+2 < len(d.Triangles); i += 3 {
		tr.Triangles = append(tr.Triangles, tr.triangle(
			VertexIndex(d.Triangles[i]),
			VertexIndex(d.Triangles[i+1]),
			VertexIndex(d.Triangles[i+2]),
		))
	}
	tr.opposite = d.Halfedges
	return tr, nil
}

// triangle orients a, b, c counter-clockwise and computes the circumcircle.
func (tr *Triangulation) triangle(a, b, c VertexIndex) Triangle {
	pa, pb, pc := tr.Sites[a], tr.Sites[b], tr.Sites[c]
	det := pb.Sub(pa).Cross(pc.Sub(pa))
	if det < 0 {
		b, c = c, b
		pb, pc = pc, pb
		det = -det
	}
	t := Triangle{V: [3]VertexIndex{a, b, c}}

	scale := pb.Dist2(pa) + pc.Dist2(pa)
	if det <= 1e-14*scale {
		t.Center = pa.Add(pb).Add(pc).Scale(1.0 / 3)
		t.r2 = math.Inf(1)
		return t
	}
	bx, by := pb.X-pa.X, pb.Y-pa.Y
	cx, cy := pc.X-pa.X, pc.Y-pa.Y
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / (2 * det)
	uy := (bx*c2 - cx*b2) / (2 * det)
	t.Center = geom.Pt(pa.X+ux, pa.Y+uy)
	t.r2 = ux*ux + uy*uy
	return t
}
