package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/registry"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

const scriptedID = "scripted"

// scriptedGame replays a fixed list of event batches, one per step.
type scriptedGame struct {
	script [][]core.Event
	steps  int
	paused bool
	held   []core.InputFrame
	start  int
	closed bool
}

var lastScripted *scriptedGame

func init() {
	registry.Register(scriptedID, func() registry.Game {
		lastScripted = &scriptedGame{}
		return lastScripted
	})
}

func (g *scriptedGame) ID() string { return scriptedID }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.steps = 0 }
func (g *scriptedGame) Render(dst *core.Screen) { dst.Clear(); dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) StartAt(index int) { g.start = index }
func (g *scriptedGame) Close() { g.closed = true }
func (g *scriptedGame) State() core.GameState { return core.GameState{Paused: g.paused} }
func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	g.held = append(g.held, in.Clone())

	var events []core.Event
	if g.steps < len(g.script) {
		events = g.script[g.steps]
	}
	g.steps++
	return core.StepResult{State: g.State(), Events: events}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func tick(t *testing.T, m Model) Model {
	return update(t, m, TickMsg{})
}

func TestModelRecordsFlightsAndScore(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{script: [][]core.Event{
		{{Kind: core.EventSceneLoaded, RunID: "r1", LevelID: "a"}},
		{{Kind: core.EventLanded, RunID: "r1", LevelID: "a", Score: 1, Ticks: 40}},
		{{Kind: core.EventSkipped, RunID: "r1", LevelID: "b", Score: 1, Ticks: 3}},
		{
			{Kind: core.EventCrashed, RunID: "r1", LevelID: "c", Score: 1, Ticks: 90},
			{Kind: core.EventRunEnded, RunID: "r1", LevelID: "c", Score: 1, Ticks: 90},
		},
	}}

	m := NewModel(game, store, core.DefaultConfig())
	m.Init()
	for range 4 {
		m = tick(t, m)
	}

	flights, err := store.RunFlights("r1")
	if err != nil {
		t.Fatalf("RunFlights: %v", err)
	}
	want := []string{storage.OutcomeLanded, storage.OutcomeSkipped, storage.OutcomeCrashed}
	if len(flights) != len(want) {
		t.Fatalf("got %d flights, want %d", len(flights), len(want))
	}
	for i, f := range flights {
		if f.Outcome != want[i] {
			t.Errorf("flight %d outcome = %q, want %q", i, f.Outcome, want[i])
		}
	}
	if flights[0].Ticks != 40 || flights[0].LevelID != "a" {
		t.Errorf("first flight = %+v", flights[0])
	}

	scores, err := store.TopScores(scriptedID, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 1 {
		t.Fatalf("scores = %+v, want one run of 1", scores)
	}

	// Quitting after the run was stored must not store it twice.
	m = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	scores, _ = store.TopScores(scriptedID, 10)
	if len(scores) != 1 {
		t.Errorf("run stored %d times", len(scores))
	}
}

func TestModelQuitSavesUnfinishedRun(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{script: [][]core.Event{
		{{Kind: core.EventLanded, RunID: "r2", LevelID: "a", Score: 1}},
		{{Kind: core.EventLanded, RunID: "r2", LevelID: "b", Score: 2}},
	}}

	m := NewModel(game, store, core.DefaultConfig())
	m = tick(t, m)
	m = tick(t, m)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !game.closed {
		t.Error("quitting should release the game")
	}
	best, err := store.HighScore(scriptedID)
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if best != 2 {
		t.Errorf("high score = %d, want 2", best)
	}
}

func TestModelWithoutStore(t *testing.T) {
	game := &scriptedGame{script: [][]core.Event{
		{{Kind: core.EventRunEnded, RunID: "r", Score: 3}},
	}}
	m := NewModel(game, nil, core.DefaultConfig())
	m = tick(t, m)
	m = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestModelHoldsKeysAcrossTicks(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, nil, core.DefaultConfig())

	m = update(t, m, runeKey("w"))
	m = tick(t, m)
	m = tick(t, m)

	if len(game.held) != 2 {
		t.Fatalf("got %d steps", len(game.held))
	}
	if !game.held[0].Has(core.ActionThrust) {
		t.Error("first tick should see the press")
	}
	if game.held[1].Has(core.ActionThrust) {
		t.Error("the press edge must not repeat")
	}
	if !game.held[1].IsHeld(core.ActionThrust) {
		t.Error("thrust should stay held right after the press")
	}
}

func TestModelBackWhilePaused(t *testing.T) {
	t.Run("standalone quits", func(t *testing.T) {
		game := &scriptedGame{}
		m := NewModel(game, nil, core.DefaultConfig())

		m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		m = tick(t, m)
		if m.IsQuitting() {
			t.Fatal("back only leaves a paused game")
		}

		m = update(t, m, runeKey("p"))
		m = tick(t, m)
		m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		if !m.IsQuitting() || m.BackToMenu() {
			t.Error("standalone back should quit")
		}
	})

	t.Run("menu returns", func(t *testing.T) {
		game := &scriptedGame{}
		m := NewModel(game, nil, core.DefaultConfig(), withMenu())

		m = update(t, m, runeKey("p"))
		m = tick(t, m)
		m = update(t, m, runeKey("b"))
		if !m.BackToMenu() || m.IsQuitting() {
			t.Error("back should return to the menu")
		}
		if !game.closed {
			t.Error("leaving should release the game")
		}
	})
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &scriptedGame{}
	m := NewModel(game, nil, core.DefaultConfig())
	m = tick(t, m)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = tick(t, m)

	if game.steps != 2 {
		t.Errorf("resize should not reset the game, steps = %d", game.steps)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
}
