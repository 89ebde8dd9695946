// Package geom holds the planar primitives shared by the toolpath pipeline:
// points, segments, circles, arcs and polylines. All comparisons take an
// explicit tolerance; nothing in the pipeline relies on exact float equality.
package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2-D coordinate.
type Point r2.Vec

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Polar returns the point at distance r and angle theta from the origin.
func Polar(r, theta float64) Point {
	return Point{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}


func (p Point) Add(q Point) Point { return Point(r2.Add(r2.Vec(p), r2.Vec(q))) }
func (p Point) Sub(q Point) Point { return Point(r2.Sub(r2.Vec(p), r2.Vec(q))) }
func (p Point) Scale(f float64) Point { return Point(r2.Scale(f, r2.Vec(p))) }
func (p Point) Dot(q Point) float64 { return r2.Dot(r2.Vec(p), r2.Vec(q)) }
func (p Point) Cross(q Point) float64 { return r2.Cross(r2.Vec(p), r2.Vec(q)) }
func (p Point) Norm() float64 { return r2.Norm(r2.Vec(p)) }
func (p Point) Dist(q Point) float64 { return r2.Norm(r2.Sub(r2.Vec(p), r2.Vec(q))) }
func (p Point) Dist2(q Point) float64 { return r2.Norm2(r2.Sub(r2.Vec(p), r2.Vec(q))) }
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }
func (p Point) Perp() Point { return Point{X: -p.Y, Y: p.X} }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Unit returns p scaled to length 1. The zero vector is returned unchanged.
func (p Point) Unit() Point {
	if p.X == 0 && p.Y == 0 {
		return p
	}
	return Point(r2.Unit(r2.Vec(p)))
}

// Equal reports whether q lies within tol of p.
func (p Point) Equal(q Point, tol float64) bool {
	return p.Dist2(q) <= tol*tol
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

// Near reports whether a and b differ by at most tol.
func Near(a, b, tol float64) bool {
	return scalar.EqualWithinAbs(a, b, tol)
}

// NormAngle maps theta into [0, 2π).
func NormAngle(theta float64) float64 {
	theta = math.Mod(theta, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
