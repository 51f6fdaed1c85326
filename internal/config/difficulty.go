package config

import "math"

// DifficultyManager calculates dynamic game parameters based on progress
// through a run.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) from the number of
// landings in the run and the ticks played.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// PlatformPeriod returns the oscillation period for a moving platform.
// Platforms speed up, so the period shrinks as difficulty rises.
func (d *DifficultyManager) PlatformPeriod(basePeriod float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return basePeriod / (1.0 + level*d.cfg.Scaling.PlatformSpeed)
}

// Gravity returns the gravity for the current difficulty.
func (d *DifficultyManager) Gravity(baseGravity float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return baseGravity * (1.0 + level*d.cfg.Scaling.Gravity)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
