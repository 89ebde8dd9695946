package medial

import (
	"math"

	"github.com/chazu/trochomill/pkg/geom"
)

type cellKey struct{ ix, iy int64 }

// grid is a uniform spatial hash. Values are registered under every cell a
// point's ±r box touches, so a lookup with the same r finds points that
// quantize into a neighbouring cell. With r at most half the cell size the
// box touches at most four cells.
type grid[T comparable] struct {
	size  float64
	cells map[cellKey][]T
}

func newGrid[T comparable](size float64) *grid[T] {
	return &grid[T]{size: size, cells: make(map[cellKey][]T)}
}

func (g *grid[T]) keys(p geom.Point, r float64) []cellKey {
	x0 := int64(math.Floor((p.X - r) / g.size))
	x1 := int64(math.Floor((p.X + r) / g.size))
	y0 := int64(math.Floor((p.Y - r) / g.size))
	y1 := int64(math.Floor((p.Y + r) / g.size))
	keys := make([]cellKey, 0, 4)
	for ix := x0; ix <= x1; ix++ {
		for iy := y0; iy <= y1; iy++ {
			keys = append(keys, cellKey{ix, iy})
		}
	}
	return keys
}

func (g *grid[T]) insert(p geom.Point, r float64, v T) {
	for _, k := range g.keys(p, r) {
		bucket := g.cells[k]
		if len(bucket) > 0 && bucket[len(bucket)-1] == v {
			continue
		}
		g.cells[k] = append(bucket, v)
	}
}

func (g *grid[T]) remove(p geom.Point, r float64, v T) {
	for _, k := range g.keys(p, r) {
		bucket := g.cells[k]
		out := bucket[:0]
		for _, x := range bucket {
			if x != v {
				out = append(out, x)
			}
		}
		if len(out) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = out
	}
}

// query returns the values registered in the cells touched by p's ±r box.
// A value may appear more than once.
func (g *grid[T]) query(p geom.Point, r float64) []T {
	var out []T
	for _, k := range g.keys(p, r) {
		out = append(out, g.cells[k]...)
	}
	return out
}
