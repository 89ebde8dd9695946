package medial

import (
	"math"
	"testing"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/chazu/trochomill/pkg/kernel/sdfx"
)

func rectRegion(t *testing.T, w, h float64, islands ...geom.Polyline) (kernel.Region, kernel.Boundary) {
	t.Helper()
	b := kernel.Boundary{Outline: geom.Rectangle(0, 0, w, h), Islands: islands}
	r, err := sdfx.New().Region(b)
	if err != nil {
		t.Fatalf("Region: %v", err)
	}
	return r, b
}

func TestFieldMic(t *testing.T) {
	r, _ := rectRegion(t, 20, 10)
	f := NewField(r, 1.5, 0.25)

	tests := []struct {
		name string
		p    geom.Point
		mic  float64
		rad  float64
	}{
		{"center", geom.Pt(10, 5), 5 - 1.75, 5 - 1.75},
		{"near wall", geom.Pt(10, 2), 2 - 1.75, 2 - 1.75},
		{"below threshold", geom.Pt(10, 1.8), 1.8 - 1.75, 0},
		{"tool does not fit", geom.Pt(10, 1), 1 - 1.75, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Mic(tt.p); math.Abs(got-tt.mic) > 1e-6 {
				t.Errorf("Mic = %v, want %v", got, tt.mic)
			}
			if got := f.Radius(tt.p); math.Abs(got-tt.rad) > 1e-6 {
				t.Errorf("Radius = %v, want %v", got, tt.rad)
			}
		})
	}
	if math.Abs(f.MinPassable-0.15) > 1e-12 {
		t.Errorf("MinPassable = %v, want 0.15", f.MinPassable)
	}
}

func TestFieldIslandIsWall(t *testing.T) {
	r, _ := rectRegion(t, 20, 20, geom.Rectangle(8, 8, 4, 4))
	f := NewField(r, 1, 0)
	// (10, 6) is 2 from the island and 6 from the outer wall.
	if got := f.WallDistance(geom.Pt(10, 6)); math.Abs(got-2) > 1e-6 {
		t.Errorf("WallDistance = %v, want 2", got)
	}
	if f.Passable(geom.Pt(10, 10)) {
		t.Error("point inside island must be impassable")
	}
}

func TestSampleOrderAndSpacing(t *testing.T) {
	b := kernel.Boundary{
		Outline: geom.Rectangle(0, 0, 10, 10),
		Islands: []geom.Polyline{geom.Rectangle(4, 4, 2, 2)},
	}
	// Perimeters 40 and 8 at a 0.5 step.
	pts := Sample(b, 0.5, 0.001)
	if len(pts) != 80+16 {
		t.Fatalf("got %d samples, want 96", len(pts))
	}
	if !pts[0].Equal(geom.Pt(0, 0), 1e-12) || !pts[80].Equal(geom.Pt(4, 4), 1e-12) {
		t.Errorf("outline samples must come first: %v, %v", pts[0], pts[80])
	}
	for i := 1; i < 80; i++ {
		if d := pts[i].Dist(pts[i-1]); math.Abs(d-0.5) > 1e-9 {
			t.Fatalf("sample spacing %d = %v", i, d)
		}
	}
}

func TestSampleDropsDuplicates(t *testing.T) {
	// An island sharing a vertex with the outline contributes that vertex
	// only once.
	b := kernel.Boundary{
		Outline: geom.Rectangle(0, 0, 4, 4),
		Islands: []geom.Polyline{geom.Polygon(geom.Pt(0, 0), geom.Pt(1, 0.0000001), geom.Pt(1, 1))},
	}
	pts := Sample(b, 1, 0.001)
	seen := 0
	for _, p := range pts {
		if p.Equal(geom.Pt(0, 0), 0.001) {
			seen++
		}
	}
	if seen != 1 {
		t.Errorf("origin sampled %d times, want 1", seen)
	}
}
