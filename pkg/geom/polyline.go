package geom

import "math"

// Polyline is an ordered list of points. A closed polyline has an implied
// edge from the last point back to the first; the first point is not
// repeated at the end.
type Polyline struct {
	Points []Point
	Closed bool
}

// Polygon returns a closed polyline through pts.
func Polygon(pts ...Point) Polyline {
	return Polyline{Points: pts, Closed: true}
}

// Rectangle returns the closed counter-clockwise rectangle with its minimum
// corner at (x, y).
func Rectangle(x, y, w, h float64) Polyline {
	return Polygon(Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h))
}

// RegularPolygon approximates a circle by n vertices, counter-clockwise.
func RegularPolygon(center Point, r float64, n int) Polyline {
	n = max(n, 3)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = center.Add(Polar(r, 2*math.Pi*float64(i)/float64(n)))
	}
	return Polygon(pts...)
}

func (pl Polyline) Len() int { return len(pl.Points) }

// Segments returns the edges, including the closing edge of a closed
// polyline.
func (pl Polyline) Segments() []Segment {
	n := len(pl.Points)
	if n < 2 {
		return nil
	}
	segs := make([]Segment, 0, n)
	for i := 1; i < n; i++ {
		segs = append(segs, Segment{A: pl.Points[i-1], B: pl.Points[i]})
	}
	if pl.Closed {
		segs = append(segs, Segment{A: pl.Points[n-1], B: pl.Points[0]})
	}
	return segs
}

// Perimeter returns the total edge length.
func (pl Polyline) Perimeter() float64 {
	total := PathLength(pl.Points)
	if pl.Closed && len(pl.Points) > 1 {
		total += pl.Points[len(pl.Points)-1].Dist(pl.Points[0])
	}
	return total
}

// Area returns the signed area; positive for counter-clockwise winding.
func (pl Polyline) Area() float64 {
	var a float64
	n := len(pl.Points)
	for i := range n {
		p, q := pl.Points[i], pl.Points[(i+1)%n]
		a += p.Cross(q)
	}
	return a / 2
}

// Bounds returns the bounding box of all points.
func (pl Polyline) Bounds() Rect {
	r := EmptyRect()
	for _, p := range pl.Points {
		r = r.Extend(p)
	}
	return r
}

// Contains reports whether p lies inside the closed polyline (even-odd rule).
func (pl Polyline) Contains(p Point) bool {
	inside := false
	n := len(pl.Points)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pl.Points[i], pl.Points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Dedup removes consecutive points closer than tol, including a closing
// point that duplicates the first.
func (pl Polyline) Dedup(tol float64) Polyline {
	out := make([]Point, 0, len(pl.Points))
	for _, p := range pl.Points {
		if len(out) > 0 && out[len(out)-1].Equal(p, tol) {
			continue
		}
		out = append(out, p)
	}
	if pl.Closed && len(out) > 1 && out[len(out)-1].Equal(out[0], tol) {
		out = out[:len(out)-1]
	}
	return Polyline{Points: out, Closed: pl.Closed}
}

// Resample returns points spaced step apart along the polyline.
func (pl Polyline) Resample(step float64) []Point {
	return Resample(pl.Points, step, pl.Closed)
}

// PathLength returns the length of the open path through pts.
func PathLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i-1].Dist(pts[i])
	}
	return total
}

// Resample walks the path through pts and emits a point every step units of
// arc length. The first point is always kept. An open path also keeps its
// last point; a closed path never repeats its start.
func Resample(pts []Point, step float64, closed bool) []Point {
	if len(pts) == 0 {
		return nil
	}
	if step <= 0 || len(pts) == 1 {
		return append([]Point(nil), pts...)
	}
	path := pts
	if closed {
		path = append(append(make([]Point, 0, len(pts)+1), pts...), pts[0])
	}
	eps := step * 1e-6

	out := []Point{path[0]}
	carry := 0.0 // distance walked since the last emitted point
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		l := a.Dist(b)
		if l == 0 {
			continue
		}
		pos := step - carry
		for pos <= l+eps {
			out = append(out, a.Lerp(b, math.Min(pos/l, 1)))
			pos += step
		}
		carry = l - (pos - step)
	}

	last := path[len(path)-1]
	if closed {
		if len(out) > 1 && out[len(out)-1].Equal(out[0], eps) {
			out = out[:len(out)-1]
		}
	} else if !out[len(out)-1].Equal(last, eps) {
		out = append(out, last)
	}
	return out
}
