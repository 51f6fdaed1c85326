// Package oscillator moves an object back and forth along a fixed vector.
//
// Each tick the position is a pure function of elapsed time:
//
//	factor   = (sin(elapsed/period * 2π) + 1) / 2   // 0..1
//	position = origin + movement*factor
package oscillator

import (
	"math"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Epsilon is the smallest period treated as non-zero. It matches the
// smallest positive single-precision float.
const Epsilon = math.SmallestNonzeroFloat32

const tau = 2 * math.Pi

// Factor returns how far along its movement vector an oscillating object is
// at the given time: 0 for not moved, 1 for fully moved.
// The caller must guard against a zero period.
func Factor(elapsed, period float64) float64 {
	cycles := elapsed / period
	rawSin := math.Sin(cycles * tau)
	return rawSin/2 + 0.5
}

// Oscillator is the per-object state: a fixed origin captured on the first
// update plus the configured movement vector and period (seconds).
type Oscillator struct {
	Movement core.Vec3
	Period   float64

	origin  core.Vec3
	started bool
}

// New creates an oscillator with the given movement vector and period.
func New(movement core.Vec3, period float64) *Oscillator {
	return &Oscillator{Movement: movement, Period: period}
}

// Start records the origin. Only the first call has any effect.
func (o *Oscillator) Start(pos core.Vec3) {
	if o.started {
		return
	}
	o.origin = pos
	o.started = true
}

// Started reports whether the origin has been fixed.
func (o *Oscillator) Started() bool {
	return o.started
}

// Origin returns the fixed start position.
func (o *Oscillator) Origin() core.Vec3 {
	return o.origin
}

// Update returns the position for the given elapsed time. current is the
// object's present position; it becomes the origin if Start was never called.
// With a period of (almost) zero nothing moves and current is returned with
// false.
func (o *Oscillator) Update(elapsed float64, current core.Vec3) (core.Vec3, bool) {
	o.Start(current)

	if o.Period <= Epsilon {
		return current, false
	}

	factor := Factor(elapsed, o.Period)
	return o.origin.Add(o.Movement.Scale(factor)), true
}
