package kernel

import (
	"errors"
	"fmt"

	"github.com/chazu/trochomill/pkg/geom"
)

// ErrDegenerateCurve is returned for boundary curves with fewer than three
// distinct points or zero area.
var ErrDegenerateCurve = errors.New("degenerate boundary curve")

// Boundary is the closed outer curve of a pocket plus zero or more island
// curves that must not be cut.
type Boundary struct {
	Outline geom.Polyline   `json:"outline"`
	Islands []geom.Polyline `json:"islands"`
}

// Curves returns the outline followed by the islands in order.
func (b Boundary) Curves() []geom.Polyline {
	curves := make([]geom.Polyline, 0, 1+len(b.Islands))
	curves = append(curves, b.Outline)
	return append(curves, b.Islands...)
}

// Segments returns the edges of every curve.
func (b Boundary) Segments() []geom.Segment {
	var segs []geom.Segment
	for _, c := range b.Curves() {
		segs = append(segs, c.Segments()...)
	}
	return segs
}

// IsEmpty returns true if the outline has no points.
func (b Boundary) IsEmpty() bool {
	return b.Outline.Len() == 0
}

// Clean closes every curve and drops consecutive points closer than tol.
func (b Boundary) Clean(tol float64) Boundary {
	out := Boundary{Outline: closedCurve(b.Outline).Dedup(tol)}
	for _, isl := range b.Islands {
		out.Islands = append(out.Islands, closedCurve(isl).Dedup(tol))
	}
	return out
}

func closedCurve(pl geom.Polyline) geom.Polyline {
	pl.Closed = true
	return pl
}

// Validate checks that every curve encloses a non-zero area.
func (b Boundary) Validate() error {
	for i, c := range b.Curves() {
		name := "outline"
		if i > 0 {
			name = fmt.Sprintf("island %d", i-1)
		}
		if c.Len() < 3 {
			return fmt.Errorf("%s: %w: %d points", name, ErrDegenerateCurve, c.Len())
		}
		if c.Area() == 0 {
			return fmt.Errorf("%s: %w: zero area", name, ErrDegenerateCurve)
		}
	}
	return nil
}
