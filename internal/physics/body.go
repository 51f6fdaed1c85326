// Package physics is the small rigid-body substrate the rocket flies on.
//
// World space is the terminal grid: one unit per cell, Y grows downward and
// rotation happens around Z only. Forces passed to AddRelativeForce are
// impulses; callers scale them by the tick duration themselves.
package physics

import (
	"math"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Body is a point mass with a heading.
type Body struct {
	Position        core.Vec3
	Velocity        core.Vec3
	Angle           float64   // Heading in degrees, counter-clockwise, 0 = nose up
	AngularVelocity core.Vec3 // Degrees per second; only Z is used
	Mass            float64
	Drag            float64 // Fraction of velocity lost per second

	impulse core.Vec3
}

// NewBody creates a body at rest at pos with the given mass.
func NewBody(pos core.Vec3, mass float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{Position: pos, Mass: mass}
}

// Up returns the world-space direction the nose points in.
func (b *Body) Up() core.Vec3 {
	return core.VecUp.RotateZ(b.Angle)
}

// AddRelativeForce queues an impulse given in the body's own frame, where
// (0, -1, 0) is forward along the nose. It is applied on the next Integrate.
func (b *Body) AddRelativeForce(local core.Vec3) {
	b.impulse = b.impulse.Add(local.RotateZ(b.Angle))
}

// AddForce queues a world-space impulse.
func (b *Body) AddForce(world core.Vec3) {
	b.impulse = b.impulse.Add(world)
}

// SetAngularVelocity replaces the body's spin.
func (b *Body) SetAngularVelocity(v core.Vec3) {
	b.AngularVelocity = v
}

// Rotate turns the body by Euler angles in degrees. Only Z has an effect in
// the plane.
func (b *Body) Rotate(euler core.Vec3) {
	b.Angle = normalizeAngle(b.Angle + euler.Z)
}

// Integrate advances the body by dt seconds under the given gravity.
func (b *Body) Integrate(dt float64, gravity core.Vec3) {
	b.Velocity = b.Velocity.Add(gravity.Scale(dt))
	b.Velocity = b.Velocity.Add(b.impulse.Scale(1 / b.Mass))
	b.impulse = core.Vec3{}

	if b.Drag > 0 {
		keep := math.Max(0, 1-b.Drag*dt)
		b.Velocity = b.Velocity.Scale(keep)
	}

	b.Angle = normalizeAngle(b.Angle + b.AngularVelocity.Z*dt)
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// Resolve pushes the body's hitbox out of obstacle along the axis of least
// penetration and removes the velocity component along that axis. hitbox is
// the body's bounding box relative to its position. Returns true if the body
// was touching the obstacle.
func Resolve(b *Body, hitbox, obstacle core.RectF) bool {
	box := hitbox.Translate(b.Position)
	push := box.Penetration(obstacle)
	if push.IsZero() {
		return false
	}

	// Snap to the obstacle edge instead of adding push so resting bodies do
	// not accumulate rounding error and re-trigger contact.
	switch {
	case push.Y < 0:
		b.Position.Y = obstacle.Y - hitbox.Bottom()
		b.Velocity.Y = 0
	case push.Y > 0:
		b.Position.Y = obstacle.Bottom() - hitbox.Y
		b.Velocity.Y = 0
	case push.X < 0:
		b.Position.X = obstacle.X - hitbox.Right()
		b.Velocity.X = 0
	case push.X > 0:
		b.Position.X = obstacle.Right() - hitbox.X
		b.Velocity.X = 0
	}
	return true
}

// normalizeAngle folds degrees into (-180, 180].
func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
