// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"fmt"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// sdfxRegion wraps an sdf.SDF2 to implement kernel.Region.
type sdfxRegion struct {
	s      sdf.SDF2
	bounds geom.Rect
}

// Distance evaluates the SDF. Polygon SDFs are exact, so the value is the
// true distance to the nearest outline or island edge.
func (r *sdfxRegion) Distance(p geom.Point) float64 {
	return r.s.Evaluate(v2.Vec{X: p.X, Y: p.Y})
}

func (r *sdfxRegion) Inside(p geom.Point) bool {
	return r.Distance(p) < 0
}

func (r *sdfxRegion) Bounds() geom.Rect {
	return r.bounds
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// Region builds outline minus the union of all islands.
func (k *SdfxKernel) Region(b kernel.Boundary) (kernel.Region, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	outer, err := polygon(b.Outline)
	if err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	s := outer
	if len(b.Islands) > 0 {
		holes := make([]sdf.SDF2, 0, len(b.Islands))
		for i, isl := range b.Islands {
			h, err := polygon(isl)
			if err != nil {
				return nil, fmt.Errorf("island %d: %w", i, err)
			}
			holes = append(holes, h)
		}
		s = sdf.Difference2D(outer, sdf.Union2D(holes...))
	}
	return &sdfxRegion{s: s, bounds: b.Outline.Bounds()}, nil
}

// polygon converts a closed polyline to an sdf.SDF2.
func polygon(pl geom.Polyline) (sdf.SDF2, error) {
	verts := make([]v2.Vec, len(pl.Points))
	for i, p := range pl.Points {
		verts[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return s, nil
}
