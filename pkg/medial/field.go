package medial

import (
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
)

// MinPassableFactor is the smallest usable clearance radius as a fraction
// of the tool radius (5% of the tool diameter).
const MinPassableFactor = 0.1

// Clearance reports the usable tool-center radius at a point. Zero means
// the point is impassable.
type Clearance interface {
	Radius(p geom.Point) float64
}

// Field is the clearance field of a pocket region: how far the tool center
// may wander from p before the tool, plus margin, reaches a wall.
type Field struct {
	Region      kernel.Region
	ToolRadius  float64
	Margin      float64
	MinPassable float64
}

var _ Clearance = (*Field)(nil)

// NewField returns a field with the default passability threshold.
func NewField(r kernel.Region, toolRadius, margin float64) *Field {
	return &Field{
		Region:      r,
		ToolRadius:  toolRadius,
		Margin:      margin,
		MinPassable: MinPassableFactor * toolRadius,
	}
}

// WallDistance is the distance from p to the nearest outline or island
// curve, negative outside the region.
func (f *Field) WallDistance(p geom.Point) float64 {
	return -f.Region.Distance(p)
}

// Mic is the maximum inscribed circle radius left for the tool center:
// wall distance minus tool radius minus margin. It may be negative.
func (f *Field) Mic(p geom.Point) float64 {
	return f.WallDistance(p) - f.ToolRadius - f.Margin
}

// Radius is Mic clamped to zero below the passability threshold.
func (f *Field) Radius(p geom.Point) float64 {
	m := f.Mic(p)
	if m < f.MinPassable {
		return 0
	}
	return m
}

// Passable reports whether Radius(p) is non-zero.
func (f *Field) Passable(p geom.Point) bool {
	return f.Radius(p) > 0
}
