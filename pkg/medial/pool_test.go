package medial

import (
	"testing"

	"github.com/chazu/trochomill/pkg/geom"
)

func TestPoolPullFollowers(t *testing.T) {
	p := NewPool(0.001)
	p.Add(geom.Seg(geom.Pt(0, 0), geom.Pt(1, 0)))
	p.Add(geom.Seg(geom.Pt(1, 0), geom.Pt(2, 0)))
	p.Add(geom.Seg(geom.Pt(1, 1), geom.Pt(1, 0)))

	got := p.PullFollowers(geom.Pt(1, 0))
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(2, 0), geom.Pt(1, 1)}
	if len(got) != len(want) {
		t.Fatalf("PullFollowers = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i], 1e-12) {
			t.Errorf("follower %d = %v, want %v", i, got[i], want[i])
		}
	}
	if p.Len() != 0 {
		t.Errorf("pool should be empty, has %d", p.Len())
	}
	if again := p.PullFollowers(geom.Pt(1, 0)); len(again) != 0 {
		t.Errorf("segments must be consumed once, got %v", again)
	}
}

func TestPoolToleranceAcrossCells(t *testing.T) {
	const tol = 0.001
	p := NewPool(tol)
	// The cell size is 4*tol; put the stored endpoint just below a cell
	// boundary and query from just above it.
	edge := 4 * tol * 250
	p.Add(geom.Seg(geom.Pt(edge-0.0003, 5), geom.Pt(edge+3, 5)))

	got := p.PullFollowers(geom.Pt(edge+0.0004, 5))
	if len(got) != 1 {
		t.Fatalf("expected the segment to be found across the cell boundary, got %v", got)
	}
	if !got[0].Equal(geom.Pt(edge+3, 5), 1e-12) {
		t.Errorf("far endpoint = %v", got[0])
	}
}

func TestPoolOutsideTolerance(t *testing.T) {
	p := NewPool(0.001)
	p.Add(geom.Seg(geom.Pt(0, 0), geom.Pt(1, 0)))
	if got := p.PullFollowers(geom.Pt(0.0015, 0)); len(got) != 0 {
		t.Errorf("point beyond tolerance must not match, got %v", got)
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
}

func TestPoolRemoveAndEndpoints(t *testing.T) {
	p := NewPool(0.01)
	a := p.Add(geom.Seg(geom.Pt(0, 0), geom.Pt(1, 0)))
	p.Add(geom.Seg(geom.Pt(5, 5), geom.Pt(6, 5)))
	p.Remove(a)
	p.Remove(a)
	if p.Len() != 1 {
		t.Fatalf("Len = %d, want 1", p.Len())
	}
	ends := p.Endpoints()
	if len(ends) != 2 || !ends[0].Equal(geom.Pt(5, 5), 1e-12) {
		t.Errorf("Endpoints = %v", ends)
	}
	if got := p.Near(geom.Pt(0, 0)); len(got) != 0 {
		t.Errorf("removed segment still found: %v", got)
	}
	if rem := p.Remaining(); len(rem) != 1 {
		t.Errorf("Remaining = %v", rem)
	}
}
