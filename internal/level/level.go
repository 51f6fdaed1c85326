// Package level loads the scenes the rocket flies through and tracks which
// one is active.
package level

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

var (
	// ErrNoLevels is returned when a level set is empty.
	ErrNoLevels = errors.New("level: no levels")
	// ErrLevelIndex is returned for a scene index outside the level set.
	ErrLevelIndex = errors.New("level: index out of range")
	// ErrInvalid is returned by Validate for an unplayable level.
	ErrInvalid = errors.New("level: invalid level")
)

const finishTag = "Finish"

// Level is one scene.
type Level struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Spawn     core.Vec3
	Obstacles []Obstacle
	FilePath  string
}

// Obstacle is a tagged rectangle. A non-zero Move with a positive Period
// makes it oscillate.
type Obstacle struct {
	Name   string
	Tag    string
	Rect   core.RectF
	Move   core.Vec3
	Period float64
}

// Moving reports whether the obstacle oscillates.
func (o Obstacle) Moving() bool {
	return !o.Move.IsZero() && o.Period > 0
}

// Bounds returns the level area.
func (l Level) Bounds() core.RectF {
	return core.NewRectF(0, 0, float64(l.Width), float64(l.Height))
}

// Validate checks that the level can be played.
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalid)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: %s: size %dx%d", ErrInvalid, l.ID, l.Width, l.Height)
	}
	if !l.Bounds().Contains(l.Spawn) {
		return fmt.Errorf("%w: %s: spawn (%.1f, %.1f) outside level", ErrInvalid, l.ID, l.Spawn.X, l.Spawn.Y)
	}

	finish := false
	for _, o := range l.Obstacles {
		if o.Rect.W <= 0 || o.Rect.H <= 0 {
			return fmt.Errorf("%w: %s: obstacle %q has empty rect", ErrInvalid, l.ID, o.Name)
		}
		if o.Period < 0 {
			return fmt.Errorf("%w: %s: obstacle %q has negative period", ErrInvalid, l.ID, o.Name)
		}
		if o.Tag == finishTag {
			finish = true
		}
	}
	if !finish {
		return fmt.Errorf("%w: %s: no Finish pad", ErrInvalid, l.ID)
	}
	return nil
}

type yamlLevel struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Size      yamlSize       `yaml:"size"`
	Spawn     yamlPoint      `yaml:"spawn"`
	Obstacles []yamlObstacle `yaml:"obstacles"`
}

type yamlSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z,omitempty"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlObstacle struct {
	Name   string    `yaml:"name"`
	Tag    string    `yaml:"tag"`
	Rect   yamlRect  `yaml:"rect"`
	Move   yamlPoint `yaml:"move,omitempty"`
	Period float64   `yaml:"period,omitempty"`
}

// Parse decodes a YAML level. Obstacles without a tag are hazards.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	lvl := Level{
		ID:     yl.ID,
		Name:   yl.Name,
		Width:  yl.Size.W,
		Height: yl.Size.H,
		Spawn:  core.V3(yl.Spawn.X, yl.Spawn.Y, 0),
	}
	if lvl.Name == "" {
		lvl.Name = lvl.ID
	}

	for _, o := range yl.Obstacles {
		tag := o.Tag
		if tag == "" {
			tag = "Untagged"
		}
		lvl.Obstacles = append(lvl.Obstacles, Obstacle{
			Name:   o.Name,
			Tag:    tag,
			Rect:   core.NewRectF(o.Rect.X, o.Rect.Y, o.Rect.W, o.Rect.H),
			Move:   core.V3(o.Move.X, o.Move.Y, o.Move.Z),
			Period: o.Period,
		})
	}
	return lvl, nil
}
