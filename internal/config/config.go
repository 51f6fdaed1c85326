// Package config provides YAML-based game configuration loading and
// difficulty management for the rocket game.
package config

import (
	"time"

	"github.com/vovakirdan/tui-rocket/internal/audio"
)

// RocketConfig contains all configuration for the rocket game.
type RocketConfig struct {
	Rocket     RocketTuning     `yaml:"rocket"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Audio      audio.Config     `yaml:"audio"`
	Particles  ParticlesConfig  `yaml:"particles"`
	Input      InputConfig      `yaml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RocketTuning defines the controller parameters.
type RocketTuning struct {
	RCSThrust      float64       `yaml:"rcs_thrust"`  // Degrees per second
	MainThrust     float64       `yaml:"main_thrust"` // Impulse per second
	LevelLoadDelay time.Duration `yaml:"level_load_delay"`
	EngineClip     string        `yaml:"engine_clip"`
	DeathClip      string        `yaml:"death_clip"`
	FinishClip     string        `yaml:"finish_clip"`
	StartLevel     int           `yaml:"start_level"`
}

// PhysicsConfig defines the body and world parameters.
type PhysicsConfig struct {
	Gravity  float64 `yaml:"gravity"` // Cells per second squared, downward
	Mass     float64 `yaml:"mass"`
	Drag     float64 `yaml:"drag"`
	MaxSpeed float64 `yaml:"max_speed"`
	HitboxW  float64 `yaml:"hitbox_w"`
	HitboxH  float64 `yaml:"hitbox_h"`
}

// ParticlesConfig overrides the built-in effect presets.
type ParticlesConfig struct {
	Exhaust   EffectConfig `yaml:"exhaust"`
	Success   EffectConfig `yaml:"success"`
	Explosion EffectConfig `yaml:"explosion"`
}

// EffectConfig holds per-effect overrides. Zero values keep the preset.
type EffectConfig struct {
	Rate     float64       `yaml:"rate,omitempty"`
	Burst    int           `yaml:"burst,omitempty"`
	Lifetime time.Duration `yaml:"lifetime,omitempty"`
	Speed    float64       `yaml:"speed,omitempty"`
	Color    string        `yaml:"color,omitempty"`
}

// InputConfig defines how key presses become held keys.
type InputConfig struct {
	// Hold is how long a thrust or rotate key stays down after its last
	// press. Terminals only send repeats, never releases.
	Hold time.Duration `yaml:"hold"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Landings/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	PlatformSpeed float64 `yaml:"platform_speed"` // Multiplier added to platform speed at max difficulty
	Gravity       float64 `yaml:"gravity"`        // Multiplier added to gravity at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
