package geom

import "math"

// Rect is an axis-aligned box.
type Rect struct {
	Min, Max Point
}

// EmptyRect returns a box that any Extend call replaces.
func EmptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Pt(inf, inf), Max: Pt(-inf, -inf)}
}

func (r Rect) IsEmpty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Center() Point { return r.Min.Lerp(r.Max, 0.5) }
func (r Rect) Size() float64 { return math.Max(r.Width(), r.Height()) }

// Extend returns the smallest box containing r and p.
func (r Rect) Extend(p Point) Rect {
	return Rect{
		Min: Pt(math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)),
		Max: Pt(math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)),
	}
}

// Union returns the smallest box containing both boxes.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	return r.Extend(o.Min).Extend(o.Max)
}

// Pad grows the box by d on every side.
func (r Rect) Pad(d float64) Rect {
	return Rect{Min: Pt(r.Min.X-d, r.Min.Y-d), Max: Pt(r.Max.X+d, r.Max.Y+d)}
}

// Contains reports whether p lies inside or on the box.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
