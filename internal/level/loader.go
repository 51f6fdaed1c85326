package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed levels/*.yaml
var embedded embed.FS

// Loader reads level files from a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll loads every valid level under Root, sorted by ID.
// Files that fail to parse or validate are skipped.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(path) {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortByID(levels)
	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if err := lvl.Validate(); err != nil {
		return Level{}, fmt.Errorf("file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
}

// LoadEmbedded returns the built-in levels, sorted by ID.
func LoadEmbedded() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(embedded, "levels", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isLevelFile(path) {
			return nil
		}

		data, err := embedded.ReadFile(path)
		if err != nil {
			return err
		}
		lvl, err := Parse(data)
		if err != nil {
			return fmt.Errorf("parsing embedded %s: %w", path, err)
		}
		if err := lvl.Validate(); err != nil {
			return fmt.Errorf("embedded %s: %w", path, err)
		}
		lvl.FilePath = path
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortByID(levels)
	return levels, nil
}

// Load returns the levels from dir, or the built-in levels when dir is empty.
func Load(dir string) ([]Level, error) {
	var (
		levels []Level
		err    error
	)
	if dir == "" {
		levels, err = LoadEmbedded()
	} else {
		levels, err = NewLoader(dir).LoadAll()
	}
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	return levels, nil
}

func isLevelFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortByID(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
