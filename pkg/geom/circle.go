package geom

import "math"

// Circle is a disc boundary given by center and radius.
type Circle struct {
	Center Point
	R      float64
}

// PointAt returns the point on the circle at angle theta.
func (c Circle) PointAt(theta float64) Point {
	return c.Center.Add(Polar(c.R, theta))
}

// AngleOf returns the angle of p as seen from the center.
func (c Circle) AngleOf(p Point) float64 {
	return p.Sub(c.Center).Angle()
}

// Intersects reports whether the two circles cross at two distinct points:
// |r1 - r2| < d < r1 + r2.
func (c Circle) Intersects(o Circle) bool {
	d := c.Center.Dist(o.Center)
	return d < c.R+o.R && d > math.Abs(c.R-o.R)
}

// Intersect returns the two crossing points of c and o. p1 lies to the left
// of the line from c.Center to o.Center, p2 to the right. ok is false for
// separate, nested, concentric or tangent circles.
func (c Circle) Intersect(o Circle) (p1, p2 Point, ok bool) {
	if !c.Intersects(o) {
		return Point{}, Point{}, false
	}
	v := o.Center.Sub(c.Center)
	d := v.Norm()
	u := v.Scale(1 / d)
	a := (c.R*c.R - o.R*o.R + d*d) / (2 * d)
	h := math.Sqrt(math.Max(0, c.R*c.R-a*a))
	m := c.Center.Add(u.Scale(a))
	n := u.Perp().Scale(h)
	return m.Add(n), m.Sub(n), true
}
