package geom

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Vertex is a 2D position in map coordinates. Map geometry vertices are
// immutable after load; Vertex values are also used for transient viewport
// coordinates during rendering.
type Vertex struct {
	X, Y float64
}

func V(x, y float64) Vertex {
	return Vertex{X: x, Y: y}
}

// Sub returns v - o.
func (v Vertex) Sub(o Vertex) Vertex {
	return Vertex{X: v.X - o.X, Y: v.Y - o.Y}
}

// Add returns v + o.
func (v Vertex) Add(o Vertex) Vertex {
	return Vertex{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rotate rotates the vertex around the origin by angle radians.
func (v Vertex) Rotate(angle float64) Vertex {
	sin, cos := math.Sincos(angle)
	return Vertex{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// DistanceTo returns the Euclidean distance between two vertices.
func (v Vertex) DistanceTo(o Vertex) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Line is a directed line segment between two vertices.
type Line struct {
	Start, End Vertex
}

func L(start, end Vertex) Line {
	return Line{Start: start, End: end}
}

// Length returns the length of the segment.
func (l Line) Length() float64 {
	return l.Start.DistanceTo(l.End)
}

// IsLeftOf reports whether the vertex lies strictly on the left side of the
// directed line, using the sign of the 2D cross product. A vertex exactly on
// the line counts as not-left, so callers classifying a viewpoint on a BSP
// partition line get a consistent (right side) answer instead of an error.
func (v Vertex) IsLeftOf(l Line) bool {
	dx := l.End.X - l.Start.X
	dy := l.End.Y - l.Start.Y
	return dx*(v.Y-l.Start.Y)-dy*(v.X-l.Start.X) > 0
}

// Intersection returns the intersection point of the two infinite lines
// through l and o. The second return value is false for (near) parallel
// lines.
func (l Line) Intersection(o Line) (Vertex, bool) {
	x1, y1 := l.Start.X, l.Start.Y
	x2, y2 := l.End.X, l.End.Y
	x3, y3 := o.Start.X, o.Start.Y
	x4, y4 := o.End.X, o.End.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < 1e-9 {
		return Vertex{}, false
	}

	det1 := x1*y2 - y1*x2
	det2 := x3*y4 - y3*x4

	return Vertex{
		X: (det1*(x3-x4) - (x1-x2)*det2) / denom,
		Y: (det1*(y3-y4) - (y1-y2)*det2) / denom,
	}, true
}

// NormalizeAngle maps an angle to the range [0, 2*pi).
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
