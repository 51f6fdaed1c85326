package core

import "math"

// Vec3 is a point or displacement in world space.
// The terminal world lives in the XY plane with Y growing downward; Z is the
// screen normal and is the only axis rockets rotate around.
type Vec3 struct{ X, Y, Z float64 }

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// RotateZ rotates the XY part of v counter-clockwise (as seen on screen) by
// the given angle in degrees.
func (v Vec3) RotateZ(degrees float64) Vec3 {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	// Screen Y points down, so a visual counter-clockwise turn flips the sign
	// of the usual sine terms.
	return Vec3{
		X: v.X*cos + v.Y*sin,
		Y: -v.X*sin + v.Y*cos,
		Z: v.Z,
	}
}

// ApproxEqual reports whether v and o differ by at most eps on every axis.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}

// Common direction vectors in world space.
var (
	VecZero    = Vec3{}
	VecUp      = Vec3{Y: -1}
	VecForward = Vec3{Z: 1}
)
