package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rocket/internal/config"
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/registry"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	inMenu     bool // back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool

	run      string // run the latest event belonged to
	runScore int
	runSaved bool // the run's score is already stored
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithHold sets how long thrust and rotate keys stay held after a press.
func WithHold(d time.Duration) ModelOption {
	return func(m *Model) { m.keys = NewKeyMapperWithHold(d) }
}

// WithLogger sets the logger for persistence failures.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// withMenu makes back (while paused) return to the calling menu.
func withMenu() ModelOption {
	return func(m *Model) { m.inMenu = true }
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		logger:     log.New(io.Discard),
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game draws relative to the screen, so a resize keeps the flight going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && m.gameState.Paused {
		m.finish()
		if m.inMenu {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	m.keys.ApplyHeld(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	if result.State.Paused && !m.gameState.Paused {
		m.keys.Release()
	}
	m.gameState = result.State
	m.record(result.Events)

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// record persists the flights and finished runs reported by the game.
func (m *Model) record(events []core.Event) {
	for _, e := range events {
		if e.RunID != m.run {
			m.run = e.RunID
			m.runSaved = false
		}
		m.runScore = e.Score

		switch e.Kind {
		case core.EventLanded:
			m.recordFlight(e, storage.OutcomeLanded)
		case core.EventCrashed:
			m.recordFlight(e, storage.OutcomeCrashed)
		case core.EventSkipped:
			m.recordFlight(e, storage.OutcomeSkipped)
		case core.EventRunEnded:
			m.saveRun()
		}
	}
}

func (m *Model) recordFlight(e core.Event, outcome string) {
	if m.store == nil {
		return
	}
	_, err := m.store.RecordFlight(storage.Flight{
		RunID:   e.RunID,
		LevelID: e.LevelID,
		Outcome: outcome,
		Ticks:   e.Ticks,
	})
	if err != nil {
		m.logger.Warn("cannot record flight", "level", e.LevelID, "err", err)
	}
}

// saveRun stores the current run's score once.
func (m *Model) saveRun() {
	if m.runSaved || m.runScore <= 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.runScore); err != nil {
		m.logger.Warn("cannot save score", "score", m.runScore, "err", err)
	}
}

// finish ends the session with the game: an unfinished run still counts.
func (m *Model) finish() {
	m.saveRun()
	m.keys.Release()
	registry.Release(m.game)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() error {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("tui: cannot find home directory: %w", err)
	}
	dir := filepath.Join(home, config.AppDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	m.logger.Info("screenshot saved", "path", path)
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
