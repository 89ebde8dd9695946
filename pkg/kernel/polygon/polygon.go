// Package polygon implements kernel.Kernel directly on polyline edges,
// without an SDF library. Distance queries scan every edge, which is fine
// for the few hundred edges a typical pocket has.
package polygon

import (
	"math"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
)

var _ kernel.Kernel = (*Kernel)(nil)

type region struct {
	outline geom.Polyline
	islands []geom.Polyline
	edges   []geom.Segment
	bounds  geom.Rect
}

func (r *region) Inside(p geom.Point) bool {
	if !r.outline.Contains(p) {
		return false
	}
	for _, isl := range r.islands {
		if isl.Contains(p) {
			return false
		}
	}
	return true
}

func (r *region) Distance(p geom.Point) float64 {
	d := math.Inf(1)
	for _, e := range r.edges {
		d = math.Min(d, e.DistanceTo(p))
	}
	if r.Inside(p) {
		return -d
	}
	return d
}

func (r *region) Bounds() geom.Rect { return r.bounds }

// Kernel is the edge-scanning backend.
type Kernel struct{}

// New returns a new polygon Kernel.
func New() *Kernel {
	return &Kernel{}
}

func (k *Kernel) Region(b kernel.Boundary) (kernel.Region, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &region{
		outline: b.Outline,
		islands: b.Islands,
		edges:   b.Segments(),
		bounds:  b.Outline.Bounds(),
	}, nil
}
