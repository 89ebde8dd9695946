package medial

import (
	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/kernel"
)

// SampleFactor is the boundary sampling distance as a fraction of the tool
// radius.
const SampleFactor = 0.1

// Sample resamples the outline and every island at a fixed arc-length step
// and concatenates the results, outline first. Points within tol of an
// earlier sample are dropped.
func Sample(b kernel.Boundary, step, tol float64) []geom.Point {
	if tol <= 0 {
		tol = 1e-9
	}
	seen := newGrid[int](4 * tol)
	var out []geom.Point
	for _, c := range b.Curves() {
		for _, p := range geom.Resample(c.Points, step, true) {
			dup := false
			for _, i := range seen.query(p, tol) {
				if out[i].Equal(p, tol) {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			seen.insert(p, tol, len(out))
			out = append(out, p)
		}
	}
	return out
}
