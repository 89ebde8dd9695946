package geom

import "math"

// Segment is a straight line between two points. In the medial axis it is
// undirected; as a path primitive it runs from A to B.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{A: a, B: b}.
func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

func (s Segment) First() Point { return s.A }
func (s Segment) Last() Point { return s.B }
func (s Segment) Length() float64 { return s.A.Dist(s.B) }
func (s Segment) Reverse() Segment { return Segment{A: s.B, B: s.A} }

// Bounds returns the axis-aligned bounding box.
func (s Segment) Bounds() Rect {
	return EmptyRect().Extend(s.A).Extend(s.B)
}

// Other returns the endpoint opposite to p. ok is false when p is not
// within tol of either endpoint.
func (s Segment) Other(p Point, tol float64) (q Point, ok bool) {
	switch {
	case s.A.Equal(p, tol):
		return s.B, true
	case s.B.Equal(p, tol):
		return s.A, true
	}
	return Point{}, false
}

// DistanceTo returns the distance from p to the closest point of s.
func (s Segment) DistanceTo(p Point) float64 {
	d := s.B.Sub(s.A)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Dist(s.A)
	}
	t := math.Max(0, math.Min(1, p.Sub(s.A).Dot(d)/l2))
	return p.Dist(s.A.Add(d.Scale(t)))
}

// Crosses reports whether s and o intersect at a single point interior to
// both. Touching at endpoints and collinear overlap do not count.
func (s Segment) Crosses(o Segment) bool {
	d1 := orient(o.A, o.B, s.A)
	d2 := orient(o.A, o.B, s.B)
	d3 := orient(s.A, s.B, o.A)
	d4 := orient(s.A, s.B, o.B)
	return d1*d2 < 0 && d3*d4 < 0
}

func orient(a, b, c Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}
