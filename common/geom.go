package common

import "math"

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

// RotateAround rotates p by deg degrees (clockwise on screen, y down) about c.
func (p Point) RotateAround(c Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx := p.X - c.X
	dy := p.Y - c.Y
	return Point{
		X: c.X + dx*cos - dy*sin,
		Y: c.Y + dx*sin + dy*cos,
	}
}

type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains is half-open on the right and bottom edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// RotatedBounds returns the axis-aligned bounds of r rotated by deg about its
// centre.
func (r Rect) RotatedBounds(deg float64) Rect {
	if deg == 0 {
		return r
	}
	c := r.Center()
	corners := [4]Point{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X, r.Y + r.Height},
		{r.X + r.Width, r.Y + r.Height},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		q := p.RotateAround(c, deg)
		minX = math.Min(minX, q.X)
		minY = math.Min(minY, q.Y)
		maxX = math.Max(maxX, q.X)
		maxY = math.Max(maxY, q.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// FitContain scales a (w,h) source into r preserving aspect ratio, centred.
func FitContain(r Rect, w, h float64) Rect {
	if w <= 0 || h <= 0 {
		return Rect{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
	}
	s := math.Min(r.Width/w, r.Height/h)
	fw, fh := w*s, h*s
	return Rect{X: r.X + (r.Width-fw)/2, Y: r.Y + (r.Height-fh)/2, Width: fw, Height: fh}
}

// FitCover scales a (w,h) source to cover r preserving aspect ratio, centred;
// the result overflows r on one axis.
func FitCover(r Rect, w, h float64) Rect {
	if w <= 0 || h <= 0 {
		return r
	}
	s := math.Max(r.Width/w, r.Height/h)
	fw, fh := w*s, h*s
	return Rect{X: r.X + (r.Width-fw)/2, Y: r.Y + (r.Height-fh)/2, Width: fw, Height: fh}
}
