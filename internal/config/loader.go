package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rocket/internal/audio"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/particles"
)

// AppDir is the per-user directory name under $HOME.
const AppDir = ".rocket"

// LoadRocket loads the rocket configuration.
// Search order: customPath -> ~/.rocket/configs/rocket.yaml -> ./configs/rocket.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadRocket(customPath string) (RocketConfig, error) {
	cfg := DefaultRocketConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultRocketConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{UserConfigPath("rocket.yaml"), filepath.Join("configs", "rocket.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultRocketConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultRocketYAML, &cfg); err != nil {
		return DefaultRocketConfig(), nil
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyRocketPreset modifies the config based on a difficulty preset.
func ApplyRocketPreset(cfg *RocketConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust handling based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Physics.Gravity *= 0.8
		cfg.Rocket.MainThrust *= 1.1
		cfg.Rocket.RCSThrust *= 1.2
	case DifficultyHard:
		cfg.Physics.Gravity *= 1.15
		cfg.Rocket.RCSThrust *= 0.85
	}
}

// Clips resolves the configured clip names. Unknown names fall back to the
// built-in clip for that slot.
func (c RocketConfig) Clips() (engine, death, finish audio.Clip) {
	pick := func(name string, fallback audio.Clip) audio.Clip {
		if clip, ok := audio.ClipByName(name); ok {
			return clip
		}
		return fallback
	}
	return pick(c.Rocket.EngineClip, audio.EngineClip),
		pick(c.Rocket.DeathClip, audio.DeathClip),
		pick(c.Rocket.FinishClip, audio.FinishClip)
}

// Presets returns the particle presets with config overrides applied.
func (c RocketConfig) Presets() (exhaust, success, explosion particles.Preset) {
	return c.Particles.Exhaust.apply(particles.Exhaust),
		c.Particles.Success.apply(particles.Success),
		c.Particles.Explosion.apply(particles.Explosion)
}

func (e EffectConfig) apply(p particles.Preset) particles.Preset {
	if e.Rate > 0 {
		p.Rate = e.Rate
	}
	if e.Burst > 0 {
		p.Burst = e.Burst
	}
	if e.Lifetime > 0 {
		p.Lifetime = e.Lifetime
	}
	if e.Speed > 0 {
		p.Speed = e.Speed
	}
	if color, ok := core.ParseColor(e.Color); ok && e.Color != "" {
		p.Color = color
	}
	return p
}
