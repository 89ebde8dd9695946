// Package kernel defines the abstract geometry kernel interface.
// Implementations (sdfx, polygon) turn a pocket boundary into a Region that
// answers signed wall-distance and containment queries. The kernel
// abstraction allows swapping backends without changing the toolpath
// algorithms.
package kernel

import "github.com/chazu/trochomill/pkg/geom"

// Region is the material-free area of a pocket: inside the outline and
// outside every island.
type Region interface {
	// Distance returns the signed distance from p to the nearest boundary
	// curve. It is negative inside the region.
	Distance(p geom.Point) float64

	// Inside reports whether p lies strictly inside the region.
	Inside(p geom.Point) bool

	// Bounds returns the bounding box of the outline.
	Bounds() geom.Rect
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	Region(b Boundary) (Region, error)
}
