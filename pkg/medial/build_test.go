package medial

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/trochomill/pkg/geom"
)

// radiusFunc adapts a function to the Clearance interface.
type radiusFunc func(geom.Point) float64

func (f radiusFunc) Radius(p geom.Point) float64 { return f(p) }

// cone has its maximum at the origin.
var cone = radiusFunc(func(p geom.Point) float64 { return math.Max(0, 10-p.Norm()) })

// forkSegments is a stem from the origin to (2,0) that forks into a long arm
// and a short arm.
func forkSegments() []geom.Segment {
	return []geom.Segment{
		geom.Seg(geom.Pt(0, 0), geom.Pt(1, 0)),
		geom.Seg(geom.Pt(2, 0), geom.Pt(1, 0)),
		geom.Seg(geom.Pt(2, 0), geom.Pt(3, 1)),
		geom.Seg(geom.Pt(3, 1), geom.Pt(4, 2)),
		geom.Seg(geom.Pt(2, 0), geom.Pt(3, -1)),
	}
}

func TestBuildFork(t *testing.T) {
	tree, err := Build(forkSegments(), cone, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tree.Len())
	}
	if tree.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", tree.Depth())
	}

	root := tree.Root()
	if !root.Start().Equal(geom.Pt(0, 0), 1e-12) {
		t.Errorf("root starts at %v, want origin", root.Start())
	}
	if len(root.Curve) != 3 || !root.End().Equal(geom.Pt(2, 0), 1e-12) {
		t.Errorf("root curve = %v", root.Curve)
	}

	// Children in ascending deep distance: the short arm first.
	short, long := tree.Get(root.Children[0]), tree.Get(root.Children[1])
	if !short.End().Equal(geom.Pt(3, -1), 1e-12) {
		t.Errorf("first child ends at %v, want (3,-1)", short.End())
	}
	if !long.End().Equal(geom.Pt(4, 2), 1e-12) || len(long.Curve) != 3 {
		t.Errorf("second child curve = %v", long.Curve)
	}
	if tree.DeepDistance(short.ID) > tree.DeepDistance(long.ID) {
		t.Error("children are not ordered by deep distance")
	}
	want := 2 + math.Sqrt2 + 2*math.Sqrt2
	if got := tree.DeepDistance(root.ID); math.Abs(got-want) > 1e-9 {
		t.Errorf("root DeepDistance = %v, want %v", got, want)
	}

	for _, id := range root.Children {
		if !tree.Get(id).Start().Equal(root.End(), 1e-12) {
			t.Errorf("child %d does not start at the junction", id)
		}
		if tree.Get(id).Parent != root.ID {
			t.Errorf("child %d parent = %d", id, tree.Get(id).Parent)
		}
	}
}

func TestBuildConsumesEachSegmentOnce(t *testing.T) {
	segs := append(forkSegments(), geom.Seg(geom.Pt(20, 20), geom.Pt(21, 20)))
	tree, err := Build(segs, cone, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(tree.Segments()) + len(tree.Orphans()); got != len(segs) {
		t.Errorf("stitched %d + orphaned %d != %d input segments",
			len(tree.Segments()), len(tree.Orphans()), len(segs))
	}
	if len(tree.Orphans()) != 1 {
		t.Errorf("Orphans = %v, want the disconnected segment", tree.Orphans())
	}
}

func TestBuildWalkPreOrder(t *testing.T) {
	tree, err := Build(forkSegments(), cone, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var order []BranchID
	tree.Walk(func(b *Branch) { order = append(order, b.ID) })
	root := tree.Root()
	want := []BranchID{root.ID, root.Children[0], root.Children[1]}
	if len(order) != len(want) {
		t.Fatalf("Walk visited %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Walk order = %v, want %v", order, want)
			break
		}
	}
	if anc := tree.Ancestors(root.Children[1]); len(anc) != 1 || anc[0] != root.ID {
		t.Errorf("Ancestors = %v", anc)
	}
}

func TestBuildExplicitStart(t *testing.T) {
	want := geom.Pt(4.1, 2.1)
	tree, err := Build(forkSegments(), cone, BuildOptions{Tolerance: 0.001, Start: &want})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := tree.Root()
	if !root.Start().Equal(geom.Pt(4, 2), 1e-12) {
		t.Errorf("root starts at %v, want (4,2)", root.Start())
	}
	// (4,2) is a dead end, so the root runs back to the fork.
	if !root.End().Equal(geom.Pt(2, 0), 1e-12) {
		t.Errorf("root ends at %v, want the fork", root.End())
	}
	if len(root.Children) != 2 {
		t.Errorf("root has %d children, want 2", len(root.Children))
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(nil, cone, BuildOptions{Tolerance: 0.001}); !errors.Is(err, ErrNoSegments) {
		t.Errorf("empty input: err = %v, want ErrNoSegments", err)
	}
	none := radiusFunc(func(geom.Point) float64 { return 0 })
	if _, err := Build(forkSegments(), none, BuildOptions{Tolerance: 0.001}); !errors.Is(err, ErrNoStartPoint) {
		t.Errorf("impassable field: err = %v, want ErrNoStartPoint", err)
	}
}

func TestBuildStartTieFirstWins(t *testing.T) {
	flat := radiusFunc(func(geom.Point) float64 { return 1 })
	tree, err := Build(forkSegments(), flat, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !tree.Root().Start().Equal(geom.Pt(0, 0), 1e-12) {
		t.Errorf("tie must pick the first endpoint, got %v", tree.Root().Start())
	}
}

func TestDeepDistanceBeforeFinalizePanics(t *testing.T) {
	tree := &Tree{}
	b := tree.add(NoBranch, []geom.Point{geom.Pt(0, 0)})
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	tree.DeepDistance(b.ID)
}

// ---------------------------------------------------------------------------
// Pipeline on a real region
// ---------------------------------------------------------------------------

func TestExtractAndBuildRectangle(t *testing.T) {
	const toolR = 1.0
	region, b := rectRegion(t, 20, 10)
	field := NewField(region, toolR, 0)
	samples := Sample(b, SampleFactor*toolR, 0.001)
	segs := Extract(region, b, samples, ExtractOptions{Tolerance: 0.001})
	if len(segs) == 0 {
		t.Fatal("no medial segments")
	}
	for _, s := range segs {
		if !region.Inside(s.A) || !region.Inside(s.B) {
			t.Fatalf("segment %v leaves the region", s)
		}
	}

	tree, err := Build(segs, field, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	start := tree.Root().Start()
	if got := field.Mic(start); math.Abs(got-(5-toolR)) > 0.05 {
		t.Errorf("start %v has mic %v, want close to the maximum %v", start, got, 5-toolR)
	}
	if got := len(tree.Segments()) + len(tree.Orphans()); got != len(segs) {
		t.Errorf("stitched+orphans = %d, want %d", got, len(segs))
	}
	if tree.Depth() < 2 {
		t.Errorf("Depth = %d, expected corner branches", tree.Depth())
	}
}

func TestExtractCrossingCheckIsSubset(t *testing.T) {
	region, b := rectRegion(t, 12, 12, geom.Rectangle(5, 5, 2, 2))
	samples := Sample(b, 0.4, 0.001)
	plain := Extract(region, b, samples, ExtractOptions{Tolerance: 0.001})
	checked := Extract(region, b, samples, ExtractOptions{Tolerance: 0.001, CheckCrossings: true})
	if len(checked) > len(plain) || len(checked) == 0 {
		t.Errorf("crossing check kept %d of %d edges", len(checked), len(plain))
	}
	for _, s := range checked {
		for _, e := range b.Segments() {
			if s.Crosses(e) {
				t.Fatalf("edge %v crosses boundary %v", s, e)
			}
		}
	}
}

func TestBuildLeaves(t *testing.T) {
	tree, err := Build(forkSegments(), cone, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := tree.Root()
	if root.IsLeaf() {
		t.Error("forked root must not be a leaf")
	}
	for _, id := range root.Children {
		if !tree.Get(id).IsLeaf() {
			t.Errorf("arm %d should be a leaf", id)
		}
	}

	// A single chain is one leaf branch of depth 1.
	chain, err := Build(forkSegments()[:2], cone, BuildOptions{Tolerance: 0.001})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if chain.Len() != 1 || !chain.Root().IsLeaf() || chain.Depth() != 1 {
		t.Errorf("chain: Len %d, leaf %v, Depth %d", chain.Len(), chain.Root().IsLeaf(), chain.Depth())
	}
}
