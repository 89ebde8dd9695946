package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
)

func islandBoundary() kernel.Boundary {
	return kernel.Boundary{
		Outline: geom.Rectangle(0, 0, 10, 10),
		Islands: []geom.Polyline{geom.Rectangle(4, 4, 2, 2)},
	}
}

func TestRegionDistance(t *testing.T) {
	r, err := New().Region(islandBoundary())
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	tests := []struct {
		name string
		p    geom.Point
		want float64
	}{
		{"near corner", geom.Pt(1, 1), -1},
		{"between wall and island", geom.Pt(5, 2), -2},
		{"next to island", geom.Pt(3, 5), -1},
		{"outside outline", geom.Pt(12, 5), 2},
		{"inside island", geom.Pt(5, 5), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Distance(tt.p)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Distance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRegionInside(t *testing.T) {
	r, err := New().Region(islandBoundary())
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	if !r.Inside(geom.Pt(2, 2)) {
		t.Error("point in pocket reported outside")
	}
	if r.Inside(geom.Pt(5, 5)) {
		t.Error("point in island reported inside")
	}
	if r.Inside(geom.Pt(-1, 5)) {
		t.Error("point beyond outline reported inside")
	}
	b := r.Bounds()
	if b.Width() != 10 || b.Height() != 10 {
		t.Errorf("Bounds = %v", b)
	}
}

func TestRegionClockwiseOutline(t *testing.T) {
	cw := geom.Polygon(geom.Pt(0, 0), geom.Pt(0, 4), geom.Pt(4, 4), geom.Pt(4, 0))
	r, err := New().Region(kernel.Boundary{Outline: cw})
	if err != nil {
		t.Fatalf("Region failed: %v", err)
	}
	if d := r.Distance(geom.Pt(2, 2)); math.Abs(d+2) > 1e-6 {
		t.Errorf("Distance(center) = %v, want -2 regardless of winding", d)
	}
}

func TestRegionRejectsDegenerate(t *testing.T) {
	_, err := New().Region(kernel.Boundary{Outline: geom.Polygon(geom.Pt(0, 0), geom.Pt(1, 1))})
	if err == nil {
		t.Fatal("expected error for a two-point outline")
	}
}
