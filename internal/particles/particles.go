// Package particles implements the rocket's terminal particle effects:
// engine exhaust, the landing sparkle and the crash explosion.
package particles

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

// Preset describes how an emitter looks and behaves.
type Preset struct {
	Name       string
	Continuous bool          // Emit while playing (true) or one burst per Play (false)
	Rate       float64       // Particles per second for continuous emitters
	Burst      int           // Particles per Play for burst emitters
	Lifetime   time.Duration // How long each particle lives
	Speed      float64       // Initial speed in cells per second
	Spread     float64       // Half-angle of the emission cone in degrees
	Gravity    float64       // Downward acceleration applied to particles
	Glyphs     []rune        // Drawn from young to old
	Color      core.Color
}

// Built-in presets for the three effect channels.
var (
	Exhaust = Preset{
		Name:       "exhaust",
		Continuous: true,
		Rate:       40,
		Lifetime:   350 * time.Millisecond,
		Speed:      14,
		Spread:     20,
		Glyphs:     []rune{'*', '+', '.'},
		Color:      core.ColorOrange,
	}
	Success = Preset{
		Name:     "success",
		Burst:    30,
		Lifetime: 1200 * time.Millisecond,
		Speed:    8,
		Spread:   70,
		Gravity:  6,
		Glyphs:   []rune{'✦', '*', '·'},
		Color:    core.ColorBrightGreen,
	}
	Explosion = Preset{
		Name:     "explosion",
		Burst:    45,
		Lifetime: 900 * time.Millisecond,
		Speed:    16,
		Spread:   180,
		Gravity:  12,
		Glyphs:   []rune{'@', '#', '%', '.'},
		Color:    core.ColorBrightRed,
	}
)

// Particle is one live spark.
type Particle struct {
	Pos  core.Vec3
	Vel  core.Vec3
	Age  time.Duration
	Life time.Duration
}

// Emitter is one particle system attached to the rocket.
type Emitter struct {
	preset    Preset
	rng       *rand.Rand
	origin    core.Vec3
	direction core.Vec3
	emitting  bool
	carry     float64 // fractional particles owed by a continuous emitter
	particles []Particle
}

// NewEmitter creates a stopped emitter.
func NewEmitter(p Preset, seed int64) *Emitter {
	return &Emitter{
		preset:    p,
		rng:       rand.New(rand.NewSource(seed)),
		direction: core.VecUp,
		particles: make([]Particle, 0, 64),
	}
}

// Preset returns the emitter configuration.
func (e *Emitter) Preset() Preset {
	return e.preset
}

// SetOrigin moves the emitter. dir is the emission direction.
func (e *Emitter) SetOrigin(pos, dir core.Vec3) {
	e.origin = pos
	if !dir.IsZero() {
		e.direction = dir
	}
}

// Play starts emission. A burst emitter spawns its burst immediately; a
// continuous emitter starts streaming on the next Update.
func (e *Emitter) Play() {
	e.emitting = e.preset.Continuous
	if !e.preset.Continuous {
		for i := 0; i < e.preset.Burst; i++ {
			e.spawn()
		}
	}
}

// Stop halts emission. Live particles run out their lifetime.
func (e *Emitter) Stop() {
	e.emitting = false
	e.carry = 0
}

// IsPlaying reports whether the effect is active: emitting, or for a burst
// still showing particles.
func (e *Emitter) IsPlaying() bool {
	if e.emitting {
		return true
	}
	return !e.preset.Continuous && len(e.particles) > 0
}

// Clear stops the emitter and removes every particle.
func (e *Emitter) Clear() {
	e.Stop()
	e.particles = e.particles[:0]
}

// Particles returns the live particles.
func (e *Emitter) Particles() []Particle {
	return e.particles
}

// Update ages and moves particles and spawns new ones for continuous emitters.
func (e *Emitter) Update(dt time.Duration) {
	secs := dt.Seconds()

	alive := e.particles[:0]
	for _, p := range e.particles {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.Vel.Y += e.preset.Gravity * secs
		p.Pos = p.Pos.Add(p.Vel.Scale(secs))
		alive = append(alive, p)
	}
	e.particles = alive

	if e.emitting && e.preset.Rate > 0 {
		e.carry += e.preset.Rate * secs
		for e.carry >= 1 {
			e.spawn()
			e.carry--
		}
	}
}

func (e *Emitter) spawn() {
	spread := (e.rng.Float64()*2 - 1) * e.preset.Spread
	speed := e.preset.Speed * (0.5 + e.rng.Float64()*0.5)
	dir := e.direction.RotateZ(spread)

	life := e.preset.Lifetime
	if life > 0 {
		jitter := time.Duration(e.rng.Int63n(int64(life)/4 + 1))
		life = life - life/8 + jitter
	}

	e.particles = append(e.particles, Particle{
		Pos:  e.origin,
		Vel:  dir.Scale(speed),
		Life: life,
	})
}

// Render draws live particles. offsetX/offsetY translate world cells to
// screen cells.
func (e *Emitter) Render(dst *core.Screen, offsetX, offsetY int) {
	glyphs := e.preset.Glyphs
	if len(glyphs) == 0 {
		glyphs = []rune{'.'}
	}

	for _, p := range e.particles {
		idx := 0
		if p.Life > 0 {
			idx = int(float64(len(glyphs)) * float64(p.Age) / float64(p.Life))
		}
		idx = core.Clamp(idx, 0, len(glyphs)-1)

		x := int(math.Floor(p.Pos.X)) + offsetX
		y := int(math.Floor(p.Pos.Y)) + offsetY
		dst.SetCell(x, y, glyphs[idx], e.preset.Color)
	}
}
