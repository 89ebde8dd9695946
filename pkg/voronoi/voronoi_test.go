package voronoi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/chazu/trochomill/pkg/geom"
)

func TestTriangulateNoTriangulation(t *testing.T) {
	tests := []struct {
		name  string
		sites []geom.Point
	}{
		{"too few", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)}},
		{"collinear", []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(2, 2), geom.Pt(3, 3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := Triangulate(tt.sites)
			if err == nil {
				t.Fatal("expected an error")
			}
			if len(tr.Triangles) != 0 || len(tr.Edges()) != 0 {
				t.Errorf("expected an empty triangulation, got %d triangles", len(tr.Triangles))
			}
			if got := Diagram(tt.sites, 1e-6); got != nil {
				t.Errorf("Diagram = %v, want nil", got)
			}
		})
	}
}

func TestTriangulateTooFewSites(t *testing.T) {
	tr, _ := Triangulate([]geom.Point{geom.Pt(0, 0), geom.Pt(1, 0)})
	if len(tr.Triangles) != 0 {
		t.Errorf("expected no triangles, got %d", len(tr.Triangles))
	}
	if tr.NumSites() != 2 {
		t.Errorf("NumSites = %d, want 2", tr.NumSites())
	}
}

func TestTriangulateSquare(t *testing.T) {
	sites := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
	tr, err := Triangulate(sites)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(tr.Triangles) != 2 {
		t.Fatalf("square should give 2 triangles, got %d", len(tr.Triangles))
	}
	for _, tri := range tr.Triangles {
		if !tri.Center.Equal(geom.Pt(0.5, 0.5), 1e-9) {
			t.Errorf("circumcenter = %v, want (0.5, 0.5)", tri.Center)
		}
		if math.Abs(tri.Radius()-math.Sqrt2/2) > 1e-9 {
			t.Errorf("circumradius = %v", tri.Radius())
		}
	}
}

// No site may lie strictly inside the circumcircle of any triangle.
func TestTriangulateDelaunayProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sites := make([]geom.Point, 300)
	for i := range sites {
		sites[i] = geom.Pt(rng.Float64()*100, rng.Float64()*60)
	}
	tr, err := Triangulate(sites)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	if len(tr.Triangles) == 0 {
		t.Fatal("no triangles")
	}
	for i, tri := range tr.Triangles {
		if tri.Degenerate() {
			continue
		}
		for j, p := range sites {
			if j == int(tri.V[0]) || j == int(tri.V[1]) || j == int(tri.V[2]) {
				continue
			}
			if p.Dist(tri.Center) < tri.Radius()*(1-1e-9) {
				t.Fatalf("site %d lies inside circumcircle of triangle %d", j, i)
			}
		}
	}
	// Euler: a triangulation of n points in general position has at most
	// 2n - 5 triangles.
	if len(tr.Triangles) > 2*len(sites)-5 {
		t.Errorf("too many triangles: %d", len(tr.Triangles))
	}
}

func TestTriangulateCounterClockwise(t *testing.T) {
	sites := []geom.Point{geom.Pt(0, 0), geom.Pt(4, 1), geom.Pt(2, 3), geom.Pt(1, 5), geom.Pt(5, 4)}
	tr, err := Triangulate(sites)
	if err != nil {
		t.Fatalf("Triangulate: %v", err)
	}
	for _, tri := range tr.Triangles {
		a, b, c := tr.Sites[tri.V[0]], tr.Sites[tri.V[1]], tr.Sites[tri.V[2]]
		if b.Sub(a).Cross(c.Sub(a)) <= 0 {
			t.Errorf("triangle %v is not counter-clockwise", tri.V)
		}
	}
}

func TestDiagramRectangleMedial(t *testing.T) {
	// Samples along a 20x10 rectangle; the Voronoi vertices strictly inside
	// must lie on the rectangle's medial axis: the center line y=5 between
	// x=5 and x=15 plus the four corner bisectors.
	outline := geom.Rectangle(0, 0, 20, 10)
	sites := outline.Resample(0.5)
	edges := Diagram(sites, 1e-6)
	if len(edges) == 0 {
		t.Fatal("no Voronoi edges")
	}
	inner := 0
	for _, e := range edges {
		for _, p := range []geom.Point{e.A, e.B} {
			if p.X <= 0.5 || p.X >= 19.5 || p.Y <= 0.5 || p.Y >= 9.5 {
				continue
			}
			inner++
			wall := math.Min(math.Min(p.X, 20-p.X), math.Min(p.Y, 10-p.Y))
			onCenter := math.Abs(p.Y-5) < 0.4 && p.X >= 4.6 && p.X <= 15.4
			onBisector := math.Abs(math.Min(p.X, 20-p.X)-math.Min(p.Y, 10-p.Y)) < 0.4
			if !onCenter && !onBisector {
				t.Fatalf("vertex %v (wall distance %v) is off the medial axis", p, wall)
			}
		}
	}
	if inner == 0 {
		t.Fatal("no interior Voronoi vertices")
	}
}

func TestDiagramWeldsAndDedups(t *testing.T) {
	// Four cocircular sites give two triangles with the same circumcenter;
	// the shared edge collapses and must not be emitted.
	sites := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
	if got := Diagram(sites, 1e-6); len(got) != 0 {
		t.Errorf("expected no edges after welding, got %v", got)
	}
}

func TestDiagramDeterministic(t *testing.T) {
	sites := geom.RegularPolygon(geom.Pt(3, 3), 10, 40).Resample(0.7)
	a := Diagram(sites, 1e-6)
	b := Diagram(sites, 1e-6)
	if len(a) != len(b) {
		t.Fatalf("edge counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("edge %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
