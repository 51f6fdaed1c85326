// Package core provides fundamental types and utilities for the rocket game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned box in whole screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// RectF is an axis-aligned bounding box in world units. One unit is one cell,
// but positions keep sub-cell precision so moving bodies glide smoothly.
type RectF struct {
	X, Y float64 // Top-left corner
	W, H float64
}

// NewRectF creates a world-space rectangle.
func NewRectF(x, y, w, h float64) RectF {
	return RectF{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r RectF) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r RectF) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r RectF) Center() Vec3 {
	return Vec3{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translate returns the rectangle moved by the XY part of v.
func (r RectF) Translate(v Vec3) RectF {
	return RectF{X: r.X + v.X, Y: r.Y + v.Y, W: r.W, H: r.H}
}

// At returns the rectangle with its top-left corner placed at the XY part of v.
func (r RectF) At(v Vec3) RectF {
	return RectF{X: v.X, Y: v.Y, W: r.W, H: r.H}
}

// Inflate grows the rectangle by d on every side.
func (r RectF) Inflate(d float64) RectF {
	return RectF{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r RectF) Intersects(other RectF) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point lies inside the rectangle.
func (r RectF) Contains(p Vec3) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Penetration returns how far r must move to stop overlapping other, along the
// single axis needing the smallest push. The zero vector means no overlap.
func (r RectF) Penetration(other RectF) Vec3 {
	if !r.Intersects(other) {
		return Vec3{}
	}

	pushLeft := other.X - r.Right()  // negative
	pushRight := other.Right() - r.X // positive
	pushUp := other.Y - r.Bottom()   // negative
	pushDown := other.Bottom() - r.Y // positive

	dx := pushRight
	if -pushLeft < pushRight {
		dx = pushLeft
	}
	dy := pushDown
	if -pushUp < pushDown {
		dy = pushUp
	}

	if math.Abs(dx) < math.Abs(dy) {
		return Vec3{X: dx}
	}
	return Vec3{Y: dy}
}

// Cells converts the rectangle to the screen cells it covers.
func (r RectF) Cells() Rect {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.Right()))
	y1 := int(math.Ceil(r.Bottom()))
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
