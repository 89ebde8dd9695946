package geom

import "math"

// Arc is a directed circular arc. Sweep is signed: positive runs
// counter-clockwise from Start, negative clockwise. A full circle has
// |Sweep| == 2π.
type Arc struct {
	Center Point
	R      float64
	Start  float64
	Sweep  float64
}

// NewArc builds the arc on the circle around center that runs from `from`
// to `to` in rotation dir. The radius is taken from `from`. Mixed is treated
// as CCW.
func NewArc(center, from, to Point, dir Direction) Arc {
	a0 := from.Sub(center).Angle()
	a1 := to.Sub(center).Angle()
	var sweep float64
	if dir == CW {
		sweep = -NormAngle(a0 - a1)
	} else {
		sweep = NormAngle(a1 - a0)
	}
	return Arc{Center: center, R: from.Dist(center), Start: a0, Sweep: sweep}
}

// FullCircle returns a closed arc starting at angle start.
func FullCircle(center Point, r, start float64, dir Direction) Arc {
	sweep := 2 * math.Pi
	if dir == CW {
		sweep = -sweep
	}
	return Arc{Center: center, R: r, Start: start, Sweep: sweep}
}

func (a Arc) First() Point { return a.Center.Add(Polar(a.R, a.Start)) }
func (a Arc) Last() Point { return a.Center.Add(Polar(a.R, a.End())) }
func (a Arc) Length() float64 { return math.Abs(a.Sweep) * a.R }
func (a Arc) IsFull() bool { return math.Abs(a.Sweep) >= 2*math.Pi-1e-12 }
func (a Arc) Reverse() Arc { return Arc{Center: a.Center, R: a.R, Start: a.End(), Sweep: -a.Sweep} }

// Dir returns CCW for a positive sweep and CW otherwise.
func (a Arc) Dir() Direction {
	if a.Sweep > 0 {
		return CCW
	}
	return CW
}

// PointAt returns the point at fraction t ∈ [0, 1] along the arc.
func (a Arc) PointAt(t float64) Point {
	return a.Center.Add(Polar(a.R, a.Start+a.Sweep*t))
}

// ContainsAngle reports whether the ray at angle theta from the center
// passes through the arc.
func (a Arc) ContainsAngle(theta float64) bool {
	if a.IsFull() {
		return true
	}
	off := theta - a.Start
	if a.Sweep < 0 {
		off = -off
	}
	return NormAngle(off) <= math.Abs(a.Sweep)
}

// StartTangent is the unit direction of travel at the first point.
func (a Arc) StartTangent() Point {
	return tangent(a.Start, a.Sweep)
}

// EndTangent is the unit direction of travel at the last point.
func (a Arc) EndTangent() Point {
	return tangent(a.End(), a.Sweep)
}

func tangent(theta, sweep float64) Point {
	t := Polar(1, theta).Perp()
	if sweep < 0 {
		return t.Scale(-1)
	}
	return t
}

// Extend grows the arc by `before` radians ahead of its start and `after`
// radians past its end, in the direction of travel. The total sweep never
// exceeds a full turn.
func (a Arc) Extend(before, after float64) Arc {
	s := 1.0
	if a.Sweep < 0 {
		s = -1
	}
	total := math.Min(math.Abs(a.Sweep)+before+after, 2*math.Pi)
	grow := total - math.Abs(a.Sweep)
	if grow < before {
		before = grow
	}
	return Arc{Center: a.Center, R: a.R, Start: a.Start - s*before, Sweep: s * total}
}

// Sagitta is the largest distance between the arc and its chord, measured
// for the minor arc.
func (a Arc) Sagitta() float64 {
	half := math.Min(math.Abs(a.Sweep), 2*math.Pi) / 2
	return a.R * (1 - math.Cos(half))
}

// Flatten approximates the arc by a polyline whose chords deviate from the
// arc by at most tol. The first and last points are exact.
func (a Arc) Flatten(tol float64) []Point {
	n := 1
	if a.R > tol && tol > 0 {
		step := 2 * math.Acos(1-tol/a.R)
		n = int(math.Ceil(math.Abs(a.Sweep) / step))
	} else if tol <= 0 {
		n = 64
	}
	n = max(n, 1)
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, a.PointAt(float64(i)/float64(n)))
	}
	return pts
}

// Bounds returns a box that contains the arc. It uses the full circle,
// which is adequate for viewport and index purposes.
func (a Arc) Bounds() Rect {
	return Rect{
		Min: Pt(a.Center.X-a.R, a.Center.Y-a.R),
		Max: Pt(a.Center.X+a.R, a.Center.Y+a.R),
	}
}
