package physics

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

func TestRelativeForceFollowsHeading(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		want  core.Vec3
	}{
		{"nose up", 0, core.V3(0, -2, 0)},
		{"tilted left", 90, core.V3(-2, 0, 0)},
		{"tilted right", -90, core.V3(2, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBody(core.Vec3{}, 1)
			b.Angle = tc.angle
			b.AddRelativeForce(core.VecUp.Scale(2))
			b.Integrate(1, core.Vec3{})

			if !b.Velocity.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("velocity = %+v, expected %+v", b.Velocity, tc.want)
			}
		})
	}
}

func TestIntegrateGravityAndMass(t *testing.T) {
	b := NewBody(core.V3(5, 5, 0), 2)
	b.AddForce(core.V3(4, 0, 0))
	b.Integrate(0.5, core.V3(0, 10, 0))

	// gravity: 10*0.5 = 5 down; impulse: 4/2 = 2 right
	if !b.Velocity.ApproxEqual(core.V3(2, 5, 0), 1e-9) {
		t.Errorf("velocity = %+v", b.Velocity)
	}
	if !b.Position.ApproxEqual(core.V3(6, 7.5, 0), 1e-9) {
		t.Errorf("position = %+v", b.Position)
	}

	// Impulses are consumed by Integrate.
	b.Integrate(0.5, core.Vec3{})
	if !b.Velocity.ApproxEqual(core.V3(2, 5, 0), 1e-9) {
		t.Errorf("impulse applied twice, velocity = %+v", b.Velocity)
	}
}

func TestRotateAndSpin(t *testing.T) {
	b := NewBody(core.Vec3{}, 1)
	b.Rotate(core.V3(0, 0, 170))
	b.Rotate(core.V3(0, 0, 20))
	if math.Abs(b.Angle-(-170)) > 1e-9 {
		t.Errorf("angle should wrap to -170, got %v", b.Angle)
	}

	b.SetAngularVelocity(core.V3(0, 0, 90))
	b.Integrate(1, core.Vec3{})
	if math.Abs(b.Angle-(-80)) > 1e-9 {
		t.Errorf("angular velocity not applied, angle = %v", b.Angle)
	}
}

func TestDragSlowsBody(t *testing.T) {
	b := NewBody(core.Vec3{}, 1)
	b.Drag = 0.5
	b.Velocity = core.V3(10, 0, 0)
	b.Integrate(1, core.Vec3{})

	if math.Abs(b.Velocity.X-5) > 1e-9 {
		t.Errorf("velocity after drag = %v, expected 5", b.Velocity.X)
	}
}

func TestResolveLandsOnPad(t *testing.T) {
	hitbox := core.NewRectF(0, 0, 1, 1)
	pad := core.NewRectF(0, 10, 8, 1)

	b := NewBody(core.V3(3, 9.4, 0), 1)
	b.Velocity = core.V3(1, 6, 0)

	if !Resolve(b, hitbox, pad) {
		t.Fatal("expected contact")
	}
	if math.Abs(b.Position.Y-9) > 1e-9 {
		t.Errorf("body should rest on the pad, y = %v", b.Position.Y)
	}
	if b.Velocity.Y != 0 || b.Velocity.X != 1 {
		t.Errorf("only the vertical velocity should be cancelled, got %+v", b.Velocity)
	}

	if Resolve(b, hitbox, pad) {
		t.Error("resting body should no longer overlap")
	}
}
