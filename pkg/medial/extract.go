package medial

import (
	"github.com/chazu/trochomill/pkg/diag"
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
	"github.com/chazu/trochomill/pkg/voronoi"
	"github.com/dhconnelly/rtreego"
)

// ExtractOptions controls medial-axis extraction.
type ExtractOptions struct {
	Tolerance float64

	// CheckCrossings also rejects edges that cross a boundary segment. Both
	// endpoints being inside the region is usually enough; the check only
	// matters for very coarse sampling of thin features.
	CheckCrossings bool
}

// Extract approximates the medial axis of the region by the Voronoi diagram
// of the boundary samples, keeping the edges whose endpoints both lie inside
// the region and that are longer than the tolerance.
func Extract(region kernel.Region, b kernel.Boundary, samples []geom.Point, opts ExtractOptions) []geom.Segment {
	edges := voronoi.Diagram(samples, opts.Tolerance)

	var idx *boundaryIndex
	if opts.CheckCrossings {
		idx = newBoundaryIndex(b.Segments(), opts.Tolerance)
	}

	out := make([]geom.Segment, 0, len(edges)/2)
	for _, e := range edges {
		if e.Length() <= opts.Tolerance {
			continue
		}
		if !region.Inside(e.A) || !region.Inside(e.B) {
			continue
		}
		if idx != nil && idx.crosses(e) {
			continue
		}
		out = append(out, e)
	}
	diag.Logger().Debug("medial axis extracted",
		"samples", len(samples), "voronoi_edges", len(edges), "kept", len(out))
	return out
}

// boundaryEdge is a boundary segment stored in the R-tree.
type boundaryEdge struct {
	seg  geom.Segment
	rect rtreego.Rect
}

func (e *boundaryEdge) Bounds() rtreego.Rect { return e.rect }

// boundaryIndex answers "does this segment cross the boundary" without
// testing every boundary edge.
type boundaryIndex struct {
	tree *rtreego.Rtree
	pad  float64
}

func newBoundaryIndex(segs []geom.Segment, pad float64) *boundaryIndex {
	objs := make([]rtreego.Spatial, 0, len(segs))
	for _, s := range segs {
		objs = append(objs, &boundaryEdge{seg: s, rect: toRect(s.Bounds(), pad)})
	}
	return &boundaryIndex{tree: rtreego.NewTree(2, 25, 50, objs...), pad: pad}
}

func (idx *boundaryIndex) crosses(s geom.Segment) bool {
	for _, obj := range idx.tree.SearchIntersect(toRect(s.Bounds(), idx.pad)) {
		if obj.(*boundaryEdge).seg.Crosses(s) {
			return true
		}
	}
	return false
}

// toRect converts a box to an rtreego.Rect, padded so that axis-aligned
// segments still have non-zero extent.
func toRect(r geom.Rect, pad float64) rtreego.Rect {
	pad = max(pad, 1e-9)
	rect, _ := rtreego.NewRectFromPoints(
		rtreego.Point{r.Min.X - pad, r.Min.Y - pad},
		rtreego.Point{r.Max.X + pad, r.Max.Y + pad},
	)
	return rect
}
