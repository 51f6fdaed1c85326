package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rocket/internal/audio"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/particles"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg RocketConfig
	if err := yaml.Unmarshal(defaultRocketYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	want := DefaultRocketConfig()
	if cfg.Rocket != want.Rocket {
		t.Errorf("rocket tuning = %+v, expected %+v", cfg.Rocket, want.Rocket)
	}
	if cfg.Physics != want.Physics {
		t.Errorf("physics = %+v, expected %+v", cfg.Physics, want.Physics)
	}
	if cfg.Audio != want.Audio {
		t.Errorf("audio = %+v, expected %+v", cfg.Audio, want.Audio)
	}
	if cfg.Input.Hold != 120*time.Millisecond {
		t.Errorf("input hold = %v", cfg.Input.Hold)
	}
}

func TestLoadRocketCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rocket.yaml")
	body := "rocket:\n  main_thrust: 50\n  level_load_delay: 500ms\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRocket(path)
	if err != nil {
		t.Fatalf("LoadRocket failed: %v", err)
	}
	if cfg.Rocket.MainThrust != 50 {
		t.Errorf("main thrust = %f, expected 50", cfg.Rocket.MainThrust)
	}
	if cfg.Rocket.LevelLoadDelay != 500*time.Millisecond {
		t.Errorf("delay = %v, expected 500ms", cfg.Rocket.LevelLoadDelay)
	}
	if cfg.Physics.Gravity != DefaultRocketConfig().Physics.Gravity {
		t.Error("unset keys should keep their defaults")
	}
}

func TestLoadRocketMissingCustomPath(t *testing.T) {
	if _, err := LoadRocket(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestApplyRocketPreset(t *testing.T) {
	base := DefaultRocketConfig()

	easy := DefaultRocketConfig()
	ApplyRocketPreset(&easy, DifficultyEasy)
	if easy.Physics.Gravity >= base.Physics.Gravity {
		t.Error("easy should lower gravity")
	}

	hard := DefaultRocketConfig()
	ApplyRocketPreset(&hard, DifficultyHard)
	if hard.Difficulty.InitialLevel != 0.7 || !hard.Difficulty.Enabled {
		t.Errorf("hard difficulty = %+v", hard.Difficulty)
	}

	fixed := DefaultRocketConfig()
	ApplyRocketPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed should disable progression")
	}

	if _, ok := ParsePreset("insane"); ok {
		t.Error("unknown preset should not parse")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultRocketConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{4, 0.5},
		{8, 1},
		{20, 1},
	}
	for _, tt := range tests {
		if got := dm.Level(tt.score, 0); got != tt.want {
			t.Errorf("Level(%d) = %f, expected %f", tt.score, got, tt.want)
		}
	}

	if got := dm.PlatformPeriod(4, 8, 0); got != 2 {
		t.Errorf("PlatformPeriod at max = %f, expected 2", got)
	}
	if got := dm.Gravity(10, 8, 0); got != 13 {
		t.Errorf("Gravity at max = %f, expected 13", got)
	}

	cfg.Enabled = false
	fixed := NewDifficultyManager(cfg)
	if fixed.IsEnabled() || fixed.Level(100, 100) != 0 {
		t.Error("disabled manager should stay at the initial level")
	}
}

func TestClipsAndPresets(t *testing.T) {
	cfg := DefaultRocketConfig()
	cfg.Rocket.DeathClip = "nope"
	cfg.Particles.Explosion = EffectConfig{Burst: 5, Color: "cyan"}

	engine, death, finish := cfg.Clips()
	if engine.Name != audio.EngineClip.Name || death.Name != audio.DeathClip.Name || finish.Name != audio.FinishClip.Name {
		t.Errorf("clips = %s/%s/%s", engine.Name, death.Name, finish.Name)
	}

	exhaust, _, explosion := cfg.Presets()
	if exhaust.Rate != particles.Exhaust.Rate {
		t.Error("exhaust should keep its preset rate")
	}
	if explosion.Burst != 5 || explosion.Color != core.ColorCyan {
		t.Errorf("explosion override = burst %d color %d", explosion.Burst, explosion.Color)
	}
}
