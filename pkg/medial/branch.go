package medial

import (
	"fmt"
	"slices"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/samber/lo"
)

// BranchID indexes Tree's branch arena.
type BranchID int

// NoBranch is the parent of the root branch.
const NoBranch BranchID = -1

// Branch is one unforked run of the medial axis. A child's curve starts at
// the junction point where its parent's curve ends.
type Branch struct {
	ID       BranchID
	Parent   BranchID
	Children []BranchID
	Curve    []geom.Point

	deep      float64
	finalized bool
}

// Perimeter is the length of the branch's own curve.
func (b *Branch) Perimeter() float64 { return geom.PathLength(b.Curve) }

// IsLeaf reports whether the branch has no children.
func (b *Branch) IsLeaf() bool { return len(b.Children) == 0 }

// Start returns the first curve point.
func (b *Branch) Start() geom.Point { return b.Curve[0] }

// End returns the last curve point.
func (b *Branch) End() geom.Point { return b.Curve[len(b.Curve)-1] }

func (b *Branch) String() string {
	return fmt.Sprintf("branch %d (parent %d, %d points, %d children)", b.ID, b.Parent, len(b.Curve), len(b.Children))
}

// Tree is an arena of branches rooted at branch 0.
type Tree struct {
	branches []*Branch
	orphans  []geom.Segment
}

// Len returns the number of branches.
func (t *Tree) Len() int { return len(t.branches) }

// Root returns the root branch, or nil for an empty tree.
func (t *Tree) Root() *Branch {
	if len(t.branches) == 0 {
		return nil
	}
	return t.branches[0]
}

// Get returns the branch with the given ID, or nil.
func (t *Tree) Get(id BranchID) *Branch {
	if id < 0 || int(id) >= len(t.branches) {
		return nil
	}
	return t.branches[id]
}

// DeepDistance is the length of a branch's curve plus the deep distance of
// all its children. It is only defined once the branch's subtree has been
// built.
func (t *Tree) DeepDistance(id BranchID) float64 {
	b := t.branches[id]
	if !b.finalized {
		panic(fmt.Sprintf("medial: deep distance of %s read before its subtree was built", b))
	}
	return b.deep
}

// Walk visits branches in pre-order: a parent before its children, children
// in stored order.
func (t *Tree) Walk(fn func(b *Branch)) {
	if len(t.branches) == 0 {
		return
	}
	stack := []BranchID{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b := t.branches[id]
		fn(b)
		for i := len(b.Children) - 1; i >= 0; i-- {
			stack = append(stack, b.Children[i])
		}
	}
}

// Depth returns the number of branches on the longest root-to-leaf chain.
func (t *Tree) Depth() int {
	if len(t.branches) == 0 {
		return 0
	}
	depth := make([]int, len(t.branches))
	maxDepth := 0
	t.Walk(func(b *Branch) {
		d := 1
		if b.Parent != NoBranch {
			d = depth[b.Parent] + 1
		}
		depth[b.ID] = d
		if b.IsLeaf() {
			maxDepth = max(maxDepth, d)
		}
	})
	return maxDepth
}

// Ancestors returns the parent chain of id, nearest first.
func (t *Tree) Ancestors(id BranchID) []BranchID {
	var out []BranchID
	for p := t.branches[id].Parent; p != NoBranch; p = t.branches[p].Parent {
		out = append(out, p)
	}
	return out
}

// Segments returns every stitched medial edge, one per consecutive pair of
// curve points.
func (t *Tree) Segments() []geom.Segment {
	var out []geom.Segment
	for _, b := range t.branches {
		for i := 1; i < len(b.Curve); i++ {
			out = append(out, geom.Seg(b.Curve[i-1], b.Curve[i]))
		}
	}
	return out
}

// Orphans returns medial segments that were not reachable from the start
// point.
func (t *Tree) Orphans() []geom.Segment { return t.orphans }

func (t *Tree) add(parent BranchID, curve []geom.Point) *Branch {
	b := &Branch{ID: BranchID(len(t.branches)), Parent: parent, Curve: curve}
	t.branches = append(t.branches, b)
	if parent != NoBranch {
		p := t.branches[parent]
		p.Children = append(p.Children, b.ID)
	}
	return b
}

// finalize orders the children by ascending deep distance and fixes the
// branch's own deep distance. Every child must already be finalized.
func (t *Tree) finalize(id BranchID) {
	b := t.branches[id]
	slices.SortStableFunc(b.Children, func(x, y BranchID) int {
		dx, dy := t.DeepDistance(x), t.DeepDistance(y)
		switch {
		case dx < dy:
			return -1
		case dx > dy:
			return 1
		}
		return 0
	})
	b.deep = b.Perimeter() + lo.SumBy(b.Children, t.DeepDistance)
	b.finalized = true
}
