package toolpath

import (
	"math"

	"github.com/chazu/trochomill/pkg/geom"
)

// Spiral returns semicircles that wind out from center to end, growing the
// radius by pitch every full turn. Semicircles alternate between center and
// a second center half a pitch away, so consecutive arcs meet tangentially.
// The last semicircle lies on the circle through end, so the spiral leaves
// tangent to it. The pitch is shrunk so a whole number of turns reaches
// end. Mixed winds counter-clockwise.
func Spiral(center, end geom.Point, pitch float64, dir geom.Direction) []geom.Arc {
	r := end.Dist(center)
	if r == 0 || pitch <= 0 {
		return nil
	}
	if dir == geom.Mixed {
		dir = geom.CCW
	}
	turns := math.Ceil(r / pitch)
	p := r / turns
	sweep := math.Pi
	if dir == geom.CW {
		sweep = -sweep
	}

	w := center.Sub(end).Unit()
	phi := w.Angle()
	other := center.Add(w.Scale(p / 2))

	arcs := make([]geom.Arc, 0, 2*int(turns))
	for k := 1; k <= int(turns); k++ {
		arcs = append(arcs,
			geom.Arc{Center: other, R: (float64(k) - 0.5) * p, Start: phi + math.Pi, Sweep: sweep},
			geom.Arc{Center: center, R: float64(k) * p, Start: phi, Sweep: sweep},
		)
	}
	return arcs
}
