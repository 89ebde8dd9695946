package export

import (
	"fmt"

	"github.com/chazu/trochomill/pkg/geom"
	"github.com/chazu/trochomill/pkg/pocket"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// WriteDXF saves the pocket boundary and the tool path as DXF lines. Arcs
// are flattened so no chord deviates more than tol.
func WriteDXF(filename string, job pocket.Job, res *pocket.Result, tol float64) error {
	d := render.NewDXF(filename)
	lines := 0
	polyline := func(pts []geom.Point, closed bool) {
		for i := 1; i < len(pts); i++ {
			d.Line(&sdf.Line2{vec(pts[i-1]), vec(pts[i])})
			lines++
		}
		if closed && len(pts) > 2 {
			d.Line(&sdf.Line2{vec(pts[len(pts)-1]), vec(pts[0])})
			lines++
		}
	}

	for _, c := range job.Boundary().Curves() {
		polyline(c.Points, true)
	}
	if res != nil && !res.Empty() {
		polyline(res.Path.Flatten(tol), false)
	}
	if lines == 0 {
		return fmt.Errorf("export: dxf: pocket %q has nothing to draw", job.Name)
	}
	if err := d.Save(); err != nil {
		return fmt.Errorf("export: dxf: %w", err)
	}
	return nil
}

func vec(p geom.Point) v2.Vec { return v2.Vec{X: p.X, Y: p.Y} }
