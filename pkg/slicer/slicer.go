// Package slicer rolls circular slices along the branches of a medial-axis
// tree so that each slice advances into uncut material by no more than the
// maximum engagement.
package slicer

import (
	"errors"
	"fmt"

	"github.com/chazu/trochomill/pkg/diag"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/medial"
)

var (
	// ErrEmptyTree is returned for a nil or branchless tree.
	ErrEmptyTree = errors.New("slicer: empty medial tree")

	// ErrImpassableStart is returned when the root point has no clearance.
	ErrImpassableStart = errors.New("slicer: root point is impassable")
)

// Options controls slicing.
type Options struct {
	// MaxEngagement bounds how far a slice may advance into uncut material.
	MaxEngagement float64

	// MinEngagement caps the resampling step when it is smaller than Step,
	// so candidates are never farther apart than the smallest useful cut.
	MinEngagement float64

	// Tolerance is the engagement below which a candidate is redundant and
	// the slack allowed above MaxEngagement.
	Tolerance float64

	// Step is the spacing used to resample branch curves.
	Step float64

	Direction geom.Direction
}

// Slicer turns a medial tree into an ordered sequence of slices.
type Slicer struct {
	field    medial.Clearance
	opts     Options
	tree     *medial.Tree
	seq      []*Slice
	byBranch [][]*Slice
	warnings []string
}

// New returns a slicer over the given clearance field.
func New(field medial.Clearance, opts Options) *Slicer {
	return &Slicer{field: field, opts: opts}
}

// Sequence returns every slice in emission order, root first.
func (s *Slicer) Sequence() []*Slice { return s.seq }

// Root returns the seed slice, or nil before Run.
func (s *Slicer) Root() *Slice {
	if len(s.seq) == 0 {
		return nil
	}
	return s.seq[0]
}

// BranchSlices returns the slices rolled along one branch.
func (s *Slicer) BranchSlices(id medial.BranchID) []*Slice {
	if int(id) >= len(s.byBranch) || id < 0 {
		return nil
	}
	return s.byBranch[id]
}

// Warnings lists branches that were truncated.
func (s *Slicer) Warnings() []string { return s.warnings }

// ReturnPath is the route of slice centers from the last slice back to the
// root center.
func (s *Slicer) ReturnPath() []geom.Point {
	if len(s.seq) == 0 {
		return nil
	}
	var pts []geom.Point
	for sl := s.seq[len(s.seq)-1]; sl != nil; sl = sl.Prev {
		pts = append(pts, sl.Center())
	}
	return pts
}

func (s *Slicer) step() float64 {
	step := s.opts.Step
	if s.opts.MinEngagement > 0 && s.opts.MinEngagement < step {
		step = s.opts.MinEngagement
	}
	return step
}

// Run slices every branch, parents before children and children in stored
// order.
func (s *Slicer) Run(tree *medial.Tree) error {
	if tree == nil || tree.Len() == 0 {
		return ErrEmptyTree
	}
	s.tree = tree
	s.seq = nil
	s.warnings = nil
	s.byBranch = make([][]*Slice, tree.Len())

	root := tree.Root()
	center := root.Start()
	r := s.field.Radius(center)
	if r <= 0 {
		return fmt.Errorf("%w: %v", ErrImpassableStart, center)
	}
	seed := newSlice(nil, center, r, root.ID)
	seed.Arcs = []geom.Arc{geom.FullCircle(center, r, 0, s.rootDirection())}
	s.append(seed)

	tree.Walk(s.roll)
	s.alignRoot()

	diag.Logger().Debug("slicing done", "slices", len(s.seq), "warnings", len(s.warnings))
	return nil
}

func (s *Slicer) rootDirection() geom.Direction {
	if s.opts.Direction == geom.Mixed {
		return geom.CCW
	}
	return s.opts.Direction
}

// alignRoot starts the root circle where the next slice begins so the tool
// leaves the circle without an extra move.
func (s *Slicer) alignRoot() {
	if len(s.seq) < 2 {
		return
	}
	root := s.seq[0]
	start := root.Ball.AngleOf(s.seq[1].Start())
	root.Arcs = []geom.Arc{geom.FullCircle(root.Center(), root.Radius(), start, s.rootDirection())}
}

// seed returns the slice a branch starts from: the last slice of its
// nearest ancestor that has any.
func (s *Slicer) seed(b *medial.Branch) *Slice {
	if b.Parent == medial.NoBranch {
		return s.seq[0]
	}
	for _, id := range s.tree.Ancestors(b.ID) {
		if sl := s.byBranch[id]; len(sl) > 0 {
			return sl[len(sl)-1]
		}
	}
	return s.seq[0]
}

type rollState int

const (
	stateSeed rollState = iota
	stateScan
	stateFlush
	stateDone
)

// roll runs the per-branch state machine. The scan keeps at most one
// pending candidate: the farthest point whose engagement still fits. When
// a point overshoots, the pending candidate is committed and the same
// point is tried again against it.
func (s *Slicer) roll(b *medial.Branch) {
	var (
		prev, pending *Slice
		pts           []geom.Point
		i             int
	)
	maxEng := s.opts.MaxEngagement + s.opts.Tolerance

	for state := stateSeed; state != stateDone; {
		switch state {
		case stateSeed:
			prev = s.seed(b)
			pts = geom.Resample(b.Curve, s.step(), false)
			state = stateScan

		case stateScan:
			if i >= len(pts) {
				state = stateFlush
				continue
			}
			pt := pts[i]
			r := s.field.Radius(pt)
			if r <= 0 {
				i++
				continue
			}
			cand := newSlice(prev, pt, r, b.ID)
			switch {
			case cand.Engagement < s.opts.Tolerance:
				i++
			case cand.Engagement <= maxEng:
				pending = cand
				i++
			case pending == nil:
				s.warn(b, pt, "engagement %.4f exceeds maximum with nothing to commit", cand.Engagement)
				state = stateDone
			default:
				if !s.commit(pending) {
					s.warn(b, pending.Center(), "slice does not intersect its predecessor")
					pending = nil
					state = stateDone
					continue
				}
				prev, pending = pending, nil
			}

		case stateFlush:
			if pending != nil && !s.commit(pending) {
				s.warn(b, pending.Center(), "slice does not intersect its predecessor")
			}
			state = stateDone
		}
	}
}

// commit finalizes sl against its previous slice and appends it.
func (s *Slicer) commit(sl *Slice) bool {
	hint := s.seq[len(s.seq)-1].End()
	if !sl.finalize(s.opts.Direction, hint) {
		return false
	}
	s.append(sl)
	return true
}

func (s *Slicer) append(sl *Slice) {
	sl.Index = len(s.seq)
	if n := len(s.seq); n > 0 && sl.Prev != nil && sl.Prev != s.seq[n-1] {
		sl.Guide = guide(s.seq[n-1], sl.Prev)
	}
	s.seq = append(s.seq, sl)
	s.byBranch[sl.Branch] = append(s.byBranch[sl.Branch], sl)
}

// guide walks Prev links from the last emitted slice back to target and
// returns the centers along the way, both ends included.
func guide(from, target *Slice) []geom.Point {
	var pts []geom.Point
	for sl := from; sl != nil; sl = sl.Prev {
		pts = append(pts, sl.Center())
		if sl == target {
			return pts
		}
	}
	return append(pts, target.Center())
}

func (s *Slicer) warn(b *medial.Branch, at geom.Point, format string, args ...any) {
	msg := fmt.Sprintf("branch %d truncated at %v: %s", b.ID, at, fmt.Sprintf(format, args...))
	s.warnings = append(s.warnings, msg)
	diag.Logger().Warn(msg)
}
