package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-rocket/internal/audio"
)

//go:embed defaults/rocket.yaml
var defaultRocketYAML []byte

// DefaultRocketConfig returns the default rocket configuration.
func DefaultRocketConfig() RocketConfig {
	return RocketConfig{
		Rocket: RocketTuning{
			RCSThrust:      160,
			MainThrust:     34,
			LevelLoadDelay: 2 * time.Second,
			EngineClip:     audio.EngineClip.Name,
			DeathClip:      audio.DeathClip.Name,
			FinishClip:     audio.FinishClip.Name,
		},
		Physics: PhysicsConfig{
			Gravity:  9,
			Mass:     1,
			Drag:     0.15,
			MaxSpeed: 30,
			HitboxW:  1,
			HitboxH:  1,
		},
		Audio: audio.DefaultConfig(),
		Input: InputConfig{
			Hold: 120 * time.Millisecond,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				PlatformSpeed: 1.0,
				Gravity:       0.3,
			},
		},
	}
}
