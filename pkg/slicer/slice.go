package slicer

import (
	"fmt"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/medial"
)

// Slice is one circular cut. Its disc is the area cleared by the tool
// center sweeping the circle; its arc is the part of the circle that cuts
// fresh material beyond the previous slice.
type Slice struct {
	Ball geom.Circle

	// Engagement is how far the slice advances into uncut material:
	// center distance to Prev plus the radius change. Zero for a seed.
	Engagement float64

	// Prev is the slice this one was computed against; nil for the root.
	Prev *Slice

	Branch medial.BranchID

	// Arcs holds the cutting move. A finalized slice has exactly one arc;
	// the root slice's arc is a full circle.
	Arcs []geom.Arc

	// Guide is the route of slice centers the tool follows to reach Prev
	// when Prev is not the slice emitted immediately before this one.
	Guide []geom.Point

	// Index is the position in the emission sequence.
	Index int
}

func newSlice(prev *Slice, center geom.Point, r float64, branch medial.BranchID) *Slice {
	s := &Slice{Ball: geom.Circle{Center: center, R: r}, Prev: prev, Branch: branch}
	if prev != nil {
		s.Engagement = center.Dist(prev.Ball.Center) + (r - prev.Ball.R)
	}
	return s
}

func (s *Slice) Center() geom.Point { return s.Ball.Center }
func (s *Slice) Radius() float64 { return s.Ball.R }
func (s *Slice) IsRoot() bool { return s.Prev == nil }

// Arc returns the cutting arc. It panics for a slice that was never
// finalized.
func (s *Slice) Arc() geom.Arc { return s.Arcs[0] }

// Start is where the cutting move begins.
func (s *Slice) Start() geom.Point { return s.Arcs[0].First() }

// End is where the cutting move finishes.
func (s *Slice) End() geom.Point { return s.Arcs[len(s.Arcs)-1].Last() }

func (s *Slice) String() string {
	return fmt.Sprintf("slice %d at %v r=%.4f engagement=%.4f", s.Index, s.Ball.Center, s.Ball.R, s.Engagement)
}

// finalize computes the cutting arc: the part of this slice's circle
// between its two intersections with the previous circle, oriented so the
// arc faces away from the previous center. With Mixed direction the
// rotation whose start is nearest to hint is used. It reports false when
// the circles do not intersect.
func (s *Slice) finalize(dir geom.Direction, hint geom.Point) bool {
	p1, p2, ok := s.Ball.Intersect(s.Prev.Ball)
	if !ok {
		return false
	}
	forward := s.Ball.Center.Sub(s.Prev.Ball.Center).Angle()
	build := func(d geom.Direction) geom.Arc {
		a := geom.NewArc(s.Ball.Center, p1, p2, d)
		if !a.ContainsAngle(forward) {
			a = geom.NewArc(s.Ball.Center, p2, p1, d)
		}
		a.R = s.Ball.R
		return a
	}

	var arc geom.Arc
	if dir == geom.Mixed {
		cw, ccw := build(geom.CW), build(geom.CCW)
		arc = cw
		if ccw.First().Dist2(hint) < cw.First().Dist2(hint) {
			arc = ccw
		}
	} else {
		arc = build(dir)
	}
	s.Arcs = []geom.Arc{arc}
	return true
}
