package common

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestRotateAround(t *testing.T) {
	c := Point{X: 50, Y: 50}
	cases := []struct {
		name string
		deg  float64
		in   Point
		want Point
	}{
		{"zero", 0, Point{60, 50}, Point{60, 50}},
		{"quarter", 90, Point{60, 50}, Point{50, 60}},
		{"half", 180, Point{60, 50}, Point{40, 50}},
		{"full", 360, Point{60, 50}, Point{60, 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.RotateAround(c, tc.deg)
			if !near(got.X, tc.want.X) || !near(got.Y, tc.want.Y) {
				t.Fatalf("got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestRectContainsAndIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if !r.Contains(Point{0, 0}) || r.Contains(Point{10, 5}) {
		t.Fatalf("Contains should be half-open")
	}
	if !r.Intersects(Rect{X: 9, Y: 9, Width: 5, Height: 5}) {
		t.Fatalf("expected overlap")
	}
	if r.Intersects(Rect{X: 10, Y: 0, Width: 5, Height: 5}) {
		t.Fatalf("touching edges should not intersect")
	}
}

func TestFitContainAndCover(t *testing.T) {
	box := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	in := FitContain(box, 200, 100)
	if in.Width != 100 || in.Height != 50 || in.Y != 25 {
		t.Fatalf("contain: got %+v", in)
	}

	out := FitCover(box, 200, 100)
	if out.Width != 200 || out.Height != 100 || out.X != -50 {
		t.Fatalf("cover: got %+v", out)
	}
}

func TestRotatedBounds(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := r.RotatedBounds(45)
	d := 10 * math.Sqrt2
	if !near(b.Width, d) || !near(b.Height, d) {
		t.Fatalf("expected diagonal %v, got %+v", d, b)
	}
}
