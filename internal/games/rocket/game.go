// Package rocket implements Rocket Boost: fly from the launch pad to the
// landing pad of each level without touching anything else.
package rocket

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-rocket/internal/audio"
	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/level"
	"github.com/vovakirdan/tui-rocket/internal/particles"
	"github.com/vovakirdan/tui-rocket/internal/physics"
	"github.com/vovakirdan/tui-rocket/internal/registry"
	ctl "github.com/vovakirdan/tui-rocket/internal/rocket"
	"github.com/vovakirdan/tui-rocket/internal/schedule"
)

// ID is the registry identifier.
const ID = "rocket"

// BoundaryTag is reported when the rocket leaves the level area.
const BoundaryTag = "Boundary"

// contactSkin keeps a resting rocket in contact with the pad below it.
const contactSkin = 0.05

// Options are the per-game settings chosen by the platform.
type Options struct {
	ConfigPath string
	Difficulty string
	LevelsDir  string
	StartLevel int
	Audio      bool          // Play through the speaker; false keeps audio silent
	Levels     []level.Level // Overrides LevelsDir when set
	Logger     *log.Logger
}

var defaults Options

// SetConfigPath sets the config file path used by registry-created games.
func SetConfigPath(path string) {
	defaults.ConfigPath = path
}

// SetDifficultyPreset sets the difficulty preset used by registry-created games.
func SetDifficultyPreset(preset string) {
	defaults.Difficulty = preset
}

// SetLevelsDir sets the directory levels are loaded from. Empty means the
// built-in levels.
func SetLevelsDir(dir string) {
	defaults.LevelsDir = dir
}

// SetStartLevel sets the scene index a run starts at.
func SetStartLevel(index int) {
	defaults.StartLevel = index
}

// SetAudio enables speaker output for registry-created games.
func SetAudio(enabled bool) {
	defaults.Audio = enabled
}

// SetLogger sets the logger used by registry-created games.
func SetLogger(l *log.Logger) {
	defaults.Logger = l
}

// Game implements the Rocket Boost game logic.
type Game struct {
	opts    Options
	cfg     config.RocketConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	difficulty *config.DifficultyManager
	scenes     *level.Manager
	sched      *schedule.Scheduler
	sound      *audio.Source

	exhaust   *particles.Emitter
	success   *particles.Emitter
	explosion *particles.Emitter

	body    *physics.Body
	hitbox  core.RectF // relative to body position
	gravity float64
	ctrl    *ctl.Controller
	movers  []mover
	touched map[int]bool // obstacle indices in contact last tick, -1 = boundary

	runID      string
	score      int     // landings in the current run
	elapsed    float64 // seconds since Reset; drives the platforms
	tickCount  int
	levelTicks int
	paused     bool
	newRun     bool // the pending scene load restarts the run

	events []core.Event
}

// New creates a game using the package defaults.
func New() *Game {
	return NewWithOptions(defaults)
}

// NewWithOptions creates a game with explicit options.
func NewWithOptions(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{opts: opts, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Rocket Boost"
}

// StartAt selects the scene the next Reset starts from.
func (g *Game) StartAt(index int) {
	g.opts.StartLevel = index
}

// Reset loads configuration and levels and starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc

	cfg, err := config.LoadRocket(g.opts.ConfigPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
	}
	if preset, ok := config.ParsePreset(g.opts.Difficulty); ok {
		config.ApplyRocketPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.scenes = g.loadLevels()
	g.sched = schedule.New()
	g.openAudio()

	exhaust, success, explosion := cfg.Presets()
	g.exhaust = particles.NewEmitter(exhaust, rc.Seed)
	g.success = particles.NewEmitter(success, rc.Seed+1)
	g.explosion = particles.NewEmitter(explosion, rc.Seed+2)

	w, h := cfg.Physics.HitboxW, cfg.Physics.HitboxH
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	g.hitbox = core.NewRectF(-w/2, -h/2, w, h)

	g.elapsed = 0
	g.tickCount = 0
	g.paused = false
	g.events = nil
	g.startRun()

	start := g.opts.StartLevel
	if start == 0 {
		start = cfg.Rocket.StartLevel
	}
	if start < 0 || start >= g.scenes.Count() {
		g.logger.Warn("start level out of range", "index", start, "count", g.scenes.Count())
		start = 0
	}
	g.loadScene(start)
}

func (g *Game) loadLevels() *level.Manager {
	levels := g.opts.Levels
	if len(levels) == 0 {
		var err error
		levels, err = level.Load(g.opts.LevelsDir)
		if err != nil {
			g.logger.Error("cannot load levels, using built-in set", "dir", g.opts.LevelsDir, "err", err)
			levels, err = level.LoadEmbedded()
			if err != nil || len(levels) == 0 {
				levels = []level.Level{fallbackLevel()}
			}
		}
	}

	m, err := level.NewManager(levels, g.logger)
	if err != nil {
		m, _ = level.NewManager([]level.Level{fallbackLevel()}, g.logger)
	}
	return m
}

func (g *Game) openAudio() {
	if g.sound != nil {
		g.sound.Close()
	}
	if !g.opts.Audio {
		g.sound = audio.NewSource(g.cfg.Audio)
		return
	}
	src, err := audio.Open(g.cfg.Audio)
	if err != nil {
		g.logger.Warn("audio disabled", "err", err)
	}
	g.sound = src
}

// Close releases the audio device.
func (g *Game) Close() {
	if g.sound != nil {
		g.sound.Close()
	}
}

func (g *Game) startRun() {
	g.runID = uuid.NewString()
	g.score = 0
	g.logger.Info("run started", "run", g.runID)
}

// loadScene tears down the active scene and builds scene i in its place.
func (g *Game) loadScene(i int) {
	if err := g.scenes.Activate(i); err != nil {
		g.logger.Error("cannot activate scene", "index", i, "err", err)
		return
	}
	lvl := g.scenes.Active()

	// Everything owned by the previous rocket goes with it.
	g.sched.Reset()
	g.sound.Stop()
	g.exhaust.Clear()
	g.success.Clear()
	g.explosion.Clear()

	g.body = physics.NewBody(lvl.Spawn, g.cfg.Physics.Mass)
	g.body.Drag = g.cfg.Physics.Drag
	g.gravity = g.difficulty.Gravity(g.cfg.Physics.Gravity, g.score, g.tickCount)

	g.movers = g.movers[:0]
	for _, o := range lvl.Obstacles {
		period := g.difficulty.PlatformPeriod(o.Period, g.score, g.tickCount)
		g.movers = append(g.movers, newMover(o, period))
	}
	g.touched = make(map[int]bool)

	engine, death, finish := g.cfg.Clips()
	g.ctrl = ctl.New(ctl.Config{
		RCSThrust:      g.cfg.Rocket.RCSThrust,
		MainThrust:     g.cfg.Rocket.MainThrust,
		LevelLoadDelay: g.cfg.Rocket.LevelLoadDelay,
		MainEngine:     engine,
		DeathSound:     death,
		FinishSound:    finish,
	}, ctl.Parts{
		Body:      g.body,
		Audio:     g.sound,
		Main:      g.exhaust,
		Success:   g.success,
		Explosion: g.explosion,
		Scenes:    g.scenes,
		Scheduler: g.sched,
	},
		ctl.WithDebug(g.runtime.Debug),
		ctl.WithLogger(g.logger.With("level", lvl.ID)),
		ctl.WithTransitionHook(g.onTransition),
	)

	g.levelTicks = 0
	g.logger.Info("scene loaded", "index", i, "level", lvl.ID)
	g.emit(core.EventSceneLoaded)
}

func (g *Game) onTransition(_, to ctl.State) {
	switch to {
	case ctl.StateAscending:
		g.score++
		g.emit(core.EventLanded)
	case ctl.StateDying:
		g.emit(core.EventCrashed)
		g.emit(core.EventRunEnded)
		g.newRun = true
	}
}

func (g *Game) emit(kind core.EventKind) {
	lvlID := ""
	if g.scenes != nil {
		lvlID = g.scenes.Active().ID
	}
	g.events = append(g.events, core.Event{
		Kind:    kind,
		LevelID: lvlID,
		Score:   g.score,
		Ticks:   g.levelTicks,
		RunID:   g.runID,
	})
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Scene requests from the previous tick take effect first.
	if i, ok := g.scenes.TakePending(); ok {
		if g.newRun {
			g.newRun = false
			g.startRun()
		}
		g.loadScene(i)
	}

	dt := g.runtime.TickDuration()
	step := time.Duration(dt * float64(time.Second))
	g.tickCount++
	g.levelTicks++

	controls := controlsFrom(in)
	if controls.NextScene && g.ctrl.Debug() && g.ctrl.State() == ctl.StateAlive {
		g.emit(core.EventSkipped)
	}
	g.ctrl.Update(controls, dt)
	g.body.Integrate(dt, core.V3(0, g.gravity, 0))
	g.limitSpeed()

	g.elapsed += dt
	g.moveObstacles()
	g.collide()

	nose := g.body.Up()
	tail := g.body.Position.Sub(nose.Scale(g.hitbox.H / 2))
	g.exhaust.SetOrigin(tail, nose.Scale(-1))
	g.success.SetOrigin(g.body.Position, nose)
	g.explosion.SetOrigin(g.body.Position, nose)
	g.exhaust.Update(step)
	g.success.Update(step)
	g.explosion.Update(step)

	g.sched.Advance(step)

	return core.StepResult{State: g.State(), Events: g.events}
}

func controlsFrom(in core.InputFrame) ctl.Controls {
	return ctl.Controls{
		Thrust:           in.IsHeld(core.ActionThrust),
		RotateLeft:       in.IsHeld(core.ActionRotateLeft),
		RotateRight:      in.IsHeld(core.ActionRotateRight),
		NextScene:        in.Has(core.ActionNextScene),
		ToggleCollisions: in.Has(core.ActionToggleCollisions),
	}
}

func (g *Game) limitSpeed() {
	limit := g.cfg.Physics.MaxSpeed
	if limit <= 0 {
		return
	}
	if speed := g.body.Velocity.Len(); speed > limit {
		g.body.Velocity = g.body.Velocity.Scale(limit / speed)
	}
}

func (g *Game) moveObstacles() {
	for i := range g.movers {
		g.movers[i].update(g.elapsed)
	}
}

// collide pushes the rocket out of everything it overlaps and reports each
// contact to the controller once, when it begins.
func (g *Game) collide() {
	touching := make(map[int]bool)

	for i, m := range g.movers {
		box := g.hitbox.Translate(g.body.Position)
		if !box.Inflate(contactSkin).Intersects(m.rect) {
			continue
		}
		touching[i] = true
		physics.Resolve(g.body, g.hitbox, m.rect)
		if !g.touched[i] {
			g.ctrl.OnCollision(m.obstacle.Tag)
		}
	}

	if g.keepInBounds() {
		touching[-1] = true
		if !g.touched[-1] {
			g.ctrl.OnCollision(BoundaryTag)
		}
	}

	g.touched = touching
}

// keepInBounds clamps the rocket to the level area and reports whether it
// reached an edge.
func (g *Game) keepInBounds() bool {
	lvl := g.scenes.Active()
	box := g.hitbox.Translate(g.body.Position)
	hit := false

	if box.X < 0 {
		g.body.Position.X = -g.hitbox.X
		g.body.Velocity.X = 0
		hit = true
	} else if box.Right() > float64(lvl.Width) {
		g.body.Position.X = float64(lvl.Width) - g.hitbox.Right()
		g.body.Velocity.X = 0
		hit = true
	}
	if box.Y < 0 {
		g.body.Position.Y = -g.hitbox.Y
		g.body.Velocity.Y = 0
		hit = true
	} else if box.Bottom() > float64(lvl.Height) {
		g.body.Position.Y = float64(lvl.Height) - g.hitbox.Bottom()
		g.body.Velocity.Y = 0
		hit = true
	}
	return hit
}

// State returns the current game state. A run restarts rather than ending,
// so GameOver stays false.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Paused: g.paused,
	}
}

// Snapshot accessors used by the platform and tests.

// RunID identifies the current run.
func (g *Game) RunID() string { return g.runID }

// Level returns the active level.
func (g *Game) Level() level.Level { return g.scenes.Active() }

// SceneIndex returns the active scene index.
func (g *Game) SceneIndex() int { return g.scenes.ActiveIndex() }

// RocketState returns the controller state.
func (g *Game) RocketState() ctl.State { return g.ctrl.State() }

// Body returns the rocket body.
func (g *Game) Body() *physics.Body { return g.body }

// fallbackLevel is used only when no level set can be loaded at all.
func fallbackLevel() level.Level {
	return level.Level{
		ID:     "00",
		Name:   "Fallback",
		Width:  40,
		Height: 12,
		Spawn:  core.V3(4.5, 9.5, 0),
		Obstacles: []level.Obstacle{
			{Name: "ground", Tag: "Ground", Rect: core.NewRectF(0, 11, 40, 1)},
			{Name: "launch pad", Tag: ctl.TagFriendly, Rect: core.NewRectF(2, 10, 6, 1)},
			{Name: "landing pad", Tag: ctl.TagFinish, Rect: core.NewRectF(32, 10, 6, 1)},
		},
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
