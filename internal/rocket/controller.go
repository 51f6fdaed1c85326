// Package rocket holds the player rocket's control loop: thrust and rotation
// input, collision handling and the delayed scene changes that follow a
// landing or a crash.
//
// The controller talks to the world only through the small interfaces below,
// so the game wires in the real body, audio, particles and level manager and
// tests wire in fakes.
package rocket

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rocket/internal/audio"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/schedule"
)

// Collision tags.
const (
	TagFriendly = "Friendly"
	TagFinish   = "Finish"
)

// Body is the physics body the rocket steers.
type Body interface {
	AddRelativeForce(local core.Vec3)
	SetAngularVelocity(v core.Vec3)
	Rotate(euler core.Vec3)
}

// AudioSource is the single channel the rocket plays its sounds on.
type AudioSource interface {
	PlayOneShot(clip audio.Clip)
	Stop()
	IsPlaying() bool
}

// Effect is a particle system.
type Effect interface {
	Play()
	Stop()
	IsPlaying() bool
}

// SceneLoader switches scenes by index.
type SceneLoader interface {
	ActiveIndex() int
	Count() int
	Load(index int)
}

// Scheduler runs a callback after a delay on the game clock.
type Scheduler interface {
	After(delay time.Duration, fn func()) *schedule.Timer
}

// Config is the rocket's tuning.
type Config struct {
	RCSThrust      float64 // Rotation, degrees per second
	MainThrust     float64 // Engine impulse per second
	LevelLoadDelay time.Duration

	MainEngine  audio.Clip
	DeathSound  audio.Clip
	FinishSound audio.Clip
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		RCSThrust:      100,
		MainThrust:     100,
		LevelLoadDelay: 2 * time.Second,
		MainEngine:     audio.EngineClip,
		DeathSound:     audio.DeathClip,
		FinishSound:    audio.FinishClip,
	}
}

// Controls is one tick of input. Thrust and the rotations are held keys,
// the debug actions are key presses.
type Controls struct {
	Thrust      bool
	RotateLeft  bool
	RotateRight bool

	NextScene        bool
	ToggleCollisions bool
}

// Parts are the collaborators a controller drives.
type Parts struct {
	Body      Body
	Audio     AudioSource
	Main      Effect // exhaust
	Success   Effect
	Explosion Effect
	Scenes    SceneLoader
	Scheduler Scheduler
}

// Option configures a Controller.
type Option func(*Controller)

// WithDebug enables the debug keys.
func WithDebug(debug bool) Option {
	return func(c *Controller) { c.debug = debug }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransitionHook registers a callback for every state change.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(c *Controller) { c.onTransition = fn }
}

// Controller drives one rocket.
type Controller struct {
	cfg   Config
	parts Parts

	state              State
	collisionsDisabled bool
	pending            *schedule.Timer

	debug        bool
	logger       *log.Logger
	onTransition func(from, to State)
}

// New creates an alive rocket controller.
func New(cfg Config, parts Parts, opts ...Option) *Controller {
	c := &Controller{
		cfg:    cfg,
		parts:  parts,
		state:  StateAlive,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// CollisionsDisabled reports whether the debug toggle is on.
func (c *Controller) CollisionsDisabled() bool {
	return c.collisionsDisabled
}

// Debug reports whether the debug keys are honored.
func (c *Controller) Debug() bool {
	return c.debug
}

// Pending returns the scheduled scene change, or nil.
func (c *Controller) Pending() *schedule.Timer {
	return c.pending
}

// Update processes one tick of input. dt is the tick duration in seconds.
func (c *Controller) Update(in Controls, dt float64) {
	if c.state == StateAlive {
		c.respondToThrust(in, dt)
		c.respondToRotate(in, dt)
	}
	if c.debug {
		c.respondToDebug(in)
	}
}

func (c *Controller) respondToThrust(in Controls, dt float64) {
	if !in.Thrust {
		c.parts.Audio.Stop()
		c.parts.Main.Stop()
		return
	}

	c.parts.Body.AddRelativeForce(core.VecUp.Scale(c.cfg.MainThrust * dt))
	if !c.parts.Audio.IsPlaying() {
		c.parts.Audio.PlayOneShot(c.cfg.MainEngine)
	}
	if !c.parts.Main.IsPlaying() {
		c.parts.Main.Play()
	}
}

func (c *Controller) respondToRotate(in Controls, dt float64) {
	// Spin picked up from collisions is dropped every tick.
	c.parts.Body.SetAngularVelocity(core.VecZero)

	step := c.cfg.RCSThrust * dt
	switch {
	case in.RotateLeft:
		c.parts.Body.Rotate(core.VecForward.Scale(step))
	case in.RotateRight:
		c.parts.Body.Rotate(core.VecForward.Scale(-step))
	}
}

func (c *Controller) respondToDebug(in Controls) {
	switch {
	case in.NextScene:
		c.LoadNextScene()
	case in.ToggleCollisions:
		c.collisionsDisabled = !c.collisionsDisabled
		c.logger.Debug("collisions toggled", "disabled", c.collisionsDisabled)
	}
}

// OnCollision handles the rocket touching an object with the given tag.
func (c *Controller) OnCollision(tag string) {
	if c.state != StateAlive || c.collisionsDisabled {
		return
	}

	switch tag {
	case TagFriendly:
	case TagFinish:
		c.startSuccess()
	default:
		c.startDying(tag)
	}
}

func (c *Controller) startSuccess() {
	c.transition(StateAscending)
	c.parts.Audio.Stop()
	c.parts.Audio.PlayOneShot(c.cfg.FinishSound)
	c.parts.Success.Play()
	c.pending = c.parts.Scheduler.After(c.cfg.LevelLoadDelay, c.LoadNextScene)
}

func (c *Controller) startDying(tag string) {
	c.logger.Debug("rocket hit hazard", "tag", tag)
	c.transition(StateDying)
	c.parts.Audio.Stop()
	c.parts.Audio.PlayOneShot(c.cfg.DeathSound)
	c.parts.Explosion.Play()
	c.pending = c.parts.Scheduler.After(c.cfg.LevelLoadDelay, c.LoadFirstScene)
}

func (c *Controller) transition(to State) {
	from := c.state
	if !from.CanTransition(to) {
		return
	}
	c.state = to
	c.logger.Info("rocket state changed", "from", from, "to", to)
	if c.onTransition != nil {
		c.onTransition(from, to)
	}
}

// LoadNextScene requests the scene after the active one, wrapping to the
// first scene after the last.
func (c *Controller) LoadNextScene() {
	next := NextSceneIndex(c.parts.Scenes.ActiveIndex(), c.parts.Scenes.Count())
	c.logger.Debug("loading next scene", "index", next)
	c.parts.Scenes.Load(next)
}

// LoadFirstScene requests scene 0.
func (c *Controller) LoadFirstScene() {
	c.logger.Debug("loading first scene")
	c.parts.Scenes.Load(0)
}

// NextSceneIndex returns current+1, or 0 when that runs past the last scene.
func NextSceneIndex(current, count int) int {
	next := current + 1
	if count <= 0 || next >= count || next < 0 {
		return 0
	}
	return next
}
