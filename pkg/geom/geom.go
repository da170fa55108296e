// Package geom provides the small 2-D vector types shared by the stroke,
// pattern and particle packages.
package geom

import "math"

// Point is a location on the canvas in points.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector is a displacement between two points.
type Vector struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Size is a canvas extent.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance to other.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(other.X-p.X, other.Y-p.Y)
}

// Angle returns the heading from p to other in radians.
func (p Point) Angle(other Point) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// Sub returns the vector pointing from other to p.
func (p Point) Sub(other Point) Vector {
	return Vector{DX: p.X - other.X, DY: p.Y - other.Y}
}

// Add translates p by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Lerp interpolates linearly from p towards target.
func (p Point) Lerp(target Point, t float64) Point {
	return Point{
		X: p.X + (target.X-p.X)*t,
		Y: p.Y + (target.Y-p.Y)*t,
	}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// Magnitude returns the vector length.
func (v Vector) Magnitude() float64 {
	return math.Hypot(v.DX, v.DY)
}

// Normalized returns the unit vector, or the zero vector for zero length.
func (v Vector) Normalized() Vector {
	m := v.Magnitude()
	if m == 0 {
		return Vector{}
	}
	return Vector{DX: v.DX / m, DY: v.DY / m}
}

// Scale multiplies both components by k.
func (v Vector) Scale(k float64) Vector {
	return Vector{DX: v.DX * k, DY: v.DY * k}
}

// Add returns the component-wise sum.
func (v Vector) Add(other Vector) Vector {
	return Vector{DX: v.DX + other.DX, DY: v.DY + other.DY}
}

// Dot returns the dot product.
func (v Vector) Dot(other Vector) float64 {
	return v.DX*other.DX + v.DY*other.DY
}

// Cross returns the z component of the 3-D cross product.
func (v Vector) Cross(other Vector) float64 {
	return v.DX*other.DY - v.DY*other.DX
}

// Area returns width × height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Center returns the midpoint of the canvas.
func (s Size) Center() Point {
	return Point{X: s.Width / 2, Y: s.Height / 2}
}

// MinSide returns the shorter side.
func (s Size) MinSide() float64 {
	return math.Min(s.Width, s.Height)
}

// Nearest returns the anchor closest to p by linear scan.
// It returns p itself when anchors is empty.
func Nearest(p Point, anchors []Point) Point {
	if len(anchors) == 0 {
		return p
	}
	best := anchors[0]
	bestD := p.Distance(best)
	for _, a := range anchors[1:] {
		if d := p.Distance(a); d < bestD {
			best, bestD = a, d
		}
	}
	return best
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
