package medial

import (
	"errors"

	"github.com/chazu/trochomill/pkg/diag"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/samber/lo"
)

var (
	// ErrNoSegments is returned when the medial axis is empty, typically
	// because the tool does not fit anywhere in the pocket.
	ErrNoSegments = errors.New("medial: no medial-axis segments")

	// ErrNoStartPoint is returned when no segment endpoint is passable.
	ErrNoStartPoint = errors.New("medial: no passable start point")
)

// BuildOptions controls tree building.
type BuildOptions struct {
	Tolerance float64

	// Start, when set, selects the passable endpoint nearest to it as the
	// root instead of the point of maximum clearance.
	Start *geom.Point
}

type candidate struct {
	p geom.Point
	r float64
}

// Build stitches medial-axis segments into a branch tree. The root is a
// single point: the passable endpoint with the largest clearance (first one
// wins ties) or the passable endpoint nearest to opts.Start. From there
// segments are pulled out of a spatial pool: a single follower extends the
// current branch, several followers fork one child each, none ends the
// branch. Children are ordered by ascending deep distance.
func Build(segments []geom.Segment, field Clearance, opts BuildOptions) (*Tree, error) {
	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	pool := NewPool(opts.Tolerance)
	for _, s := range segments {
		pool.Add(s)
	}

	start, err := pickStart(pool.Endpoints(), field, opts.Start)
	if err != nil {
		return nil, err
	}

	t := &Tree{}
	root := t.add(NoBranch, []geom.Point{start})
	grow(t, pool, root.ID)

	t.orphans = pool.Remaining()
	log := diag.Logger()
	if len(t.orphans) > 0 {
		log.Debug("medial segments unreachable from start", "count", len(t.orphans))
	}
	log.Debug("medial tree built", "branches", t.Len(), "depth", t.Depth(), "start", start.String())
	return t, nil
}

func pickStart(endpoints []geom.Point, field Clearance, want *geom.Point) (geom.Point, error) {
	cands := lo.FilterMap(endpoints, func(p geom.Point, _ int) (candidate, bool) {
		r := field.Radius(p)
		return candidate{p: p, r: r}, r > 0
	})
	if len(cands) == 0 {
		return geom.Point{}, ErrNoStartPoint
	}
	if want != nil {
		best := lo.MinBy(cands, func(a, b candidate) bool {
			return a.p.Dist2(*want) < b.p.Dist2(*want)
		})
		return best.p, nil
	}
	best := lo.MaxBy(cands, func(a, b candidate) bool { return a.r > b.r })
	return best.p, nil
}

// grow extends branch id until it ends or forks, then builds each fork
// recursively and finalizes the branch.
func grow(t *Tree, pool *Pool, id BranchID) {
	b := t.Get(id)
	for {
		followers := pool.PullFollowers(b.End())
		if len(followers) == 1 {
			b.Curve = append(b.Curve, followers[0])
			continue
		}
		junction := b.End()
		for _, f := range followers {
			child := t.add(id, []geom.Point{junction, f})
			grow(t, pool, child.ID)
		}
		break
	}
	t.finalize(id)
}
