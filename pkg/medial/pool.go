package medial

import (
	"slices"

	"github.com/chazu/trochomill/pkg/geom"
)

// SegmentID identifies a segment in a Pool.
type SegmentID int

// Pool is a spatial hash of medial-axis segments supporting "pull every
// segment touching this point" queries. Endpoints are matched by distance
// within the tolerance, never by hash equality.
type Pool struct {
	tol   float64
	segs  []geom.Segment
	alive []bool
	live  int
	grid  *grid[SegmentID]
}

// NewPool returns an empty pool matching endpoints within tol.
func NewPool(tol float64) *Pool {
	if tol <= 0 {
		tol = 1e-9
	}
	return &Pool{tol: tol, grid: newGrid[SegmentID](4 * tol)}
}

// Add registers s under the cells around both endpoints.
func (p *Pool) Add(s geom.Segment) SegmentID {
	id := SegmentID(len(p.segs))
	p.segs = append(p.segs, s)
	p.alive = append(p.alive, true)
	p.live++
	p.grid.insert(s.A, p.tol, id)
	p.grid.insert(s.B, p.tol, id)
	return id
}

// Remove unregisters a segment. Removing twice is a no-op.
func (p *Pool) Remove(id SegmentID) {
	if !p.alive[id] {
		return
	}
	s := p.segs[id]
	p.grid.remove(s.A, p.tol, id)
	p.grid.remove(s.B, p.tol, id)
	p.alive[id] = false
	p.live--
}

// Len returns the number of segments still in the pool.
func (p *Pool) Len() int { return p.live }

// Near returns the live segments with an endpoint within tolerance of pt,
// in insertion order.
func (p *Pool) Near(pt geom.Point) []SegmentID {
	ids := p.grid.query(pt, p.tol)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	out := ids[:0]
	for _, id := range ids {
		s := p.segs[id]
		if p.alive[id] && (s.A.Equal(pt, p.tol) || s.B.Equal(pt, p.tol)) {
			out = append(out, id)
		}
	}
	return out
}

// PullFollowers removes every segment touching pt and returns the far
// endpoint of each, in insertion order. Each segment is returned at most
// once over the pool's lifetime.
func (p *Pool) PullFollowers(pt geom.Point) []geom.Point {
	ids := p.Near(pt)
	if len(ids) == 0 {
		return nil
	}
	out := make([]geom.Point, 0, len(ids))
	for _, id := range ids {
		far, _ := p.segs[id].Other(pt, p.tol)
		out = append(out, far)
		p.Remove(id)
	}
	return out
}

// Endpoints returns both endpoints of every live segment in insertion
// order.
func (p *Pool) Endpoints() []geom.Point {
	out := make([]geom.Point, 0, 2*p.live)
	for id, s := range p.segs {
		if p.alive[id] {
			out = append(out, s.A, s.B)
		}
	}
	return out
}

// Remaining returns the live segments in insertion order.
func (p *Pool) Remaining() []geom.Segment {
	out := make([]geom.Segment, 0, p.live)
	for id, s := range p.segs {
		if p.alive[id] {
			out = append(out, s)
		}
	}
	return out
}
