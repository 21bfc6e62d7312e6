package geom

import (
	"math"
	"testing"
)

func TestRotate(t *testing.T) {
	v := V(1, 0).Rotate(math.Pi / 2)
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("Expected (0,1), got (%v,%v)", v.X, v.Y)
	}

	// Rotating back must restore the original vertex
	back := v.Rotate(-math.Pi / 2)
	if math.Abs(back.X-1) > 1e-9 || math.Abs(back.Y) > 1e-9 {
		t.Errorf("Expected (1,0), got (%v,%v)", back.X, back.Y)
	}
}

func TestIsLeftOf(t *testing.T) {
	line := L(V(0, 0), V(10, 0))

	if !V(5, 3).IsLeftOf(line) {
		t.Errorf("Expected (5,3) to be left of the x axis line")
	}
	if V(5, -3).IsLeftOf(line) {
		t.Errorf("Expected (5,-3) to not be left of the x axis line")
	}

	// A vertex exactly on the line is classified as not-left, so a viewpoint
	// on a partition line still gets a deterministic side.
	if V(5, 0).IsLeftOf(line) {
		t.Errorf("Expected on-line vertex to be classified not-left")
	}
}

func TestIntersection(t *testing.T) {
	a := L(V(0, 0), V(10, 10))
	b := L(V(0, 10), V(10, 0))

	p, ok := a.Intersection(b)
	if !ok {
		t.Fatalf("Expected intersection for crossing lines")
	}
	if math.Abs(p.X-5) > 1e-9 || math.Abs(p.Y-5) > 1e-9 {
		t.Errorf("Expected intersection (5,5), got (%v,%v)", p.X, p.Y)
	}

	// Parallel lines have no intersection
	c := L(V(0, 1), V(10, 11))
	if _, ok := a.Intersection(c); ok {
		t.Errorf("Expected no intersection for parallel lines")
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(300, 0, 255); got != 255 {
		t.Errorf("Expected 255, got %d", got)
	}
	if got := Clamp(-5, 0, 255); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := Clamp(1.5, 0.0, 2.0); got != 1.5 {
		t.Errorf("Expected 1.5, got %v", got)
	}
}
