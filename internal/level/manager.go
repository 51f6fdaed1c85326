package level

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Manager owns the level set and the active scene index. Scene loads are
// requested during a tick and applied by the game at the start of the next
// one, the way an engine finishes the current frame before switching scenes.
type Manager struct {
	levels []Level
	active int

	pending    int
	hasPending bool

	logger *log.Logger
}

// NewManager creates a manager with scene 0 active.
func NewManager(levels []Level, logger *log.Logger) (*Manager, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{levels: levels, logger: logger}, nil
}

// ActiveIndex returns the index of the active scene.
func (m *Manager) ActiveIndex() int {
	return m.active
}

// Count returns the number of scenes.
func (m *Manager) Count() int {
	return len(m.levels)
}

// Active returns the active level.
func (m *Manager) Active() Level {
	return m.levels[m.active]
}

// Levels returns all levels in scene order.
func (m *Manager) Levels() []Level {
	return m.levels
}

// Load requests scene i. An out-of-range index is logged and dropped.
func (m *Manager) Load(i int) {
	if err := m.LoadChecked(i); err != nil {
		m.logger.Warn("scene load rejected", "index", i, "count", len(m.levels), "err", err)
	}
}

// LoadChecked requests scene i. The last request in a tick wins.
func (m *Manager) LoadChecked(i int) error {
	if i < 0 || i >= len(m.levels) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrLevelIndex, i, len(m.levels))
	}
	m.pending = i
	m.hasPending = true
	m.logger.Debug("scene load requested", "index", i, "level", m.levels[i].ID)
	return nil
}

// TakePending returns and clears the requested scene, if any.
func (m *Manager) TakePending() (int, bool) {
	if !m.hasPending {
		return 0, false
	}
	m.hasPending = false
	return m.pending, true
}

// Activate makes scene i active immediately.
func (m *Manager) Activate(i int) error {
	if i < 0 || i >= len(m.levels) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrLevelIndex, i, len(m.levels))
	}
	m.active = i
	m.hasPending = false
	return nil
}
