package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/level"
	"github.com/vovakirdan/tui-rocket/internal/storage"
)

func menuLevels() []level.Level {
	return []level.Level{
		{ID: "01", Name: "Lift Off"},
		{ID: "02", Name: "Pendulum"},
		{ID: "03", Name: "Crossing"},
	}
}

func send(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestLevelMenuNavigation(t *testing.T) {
	var m tea.Model = NewLevelMenuModel(menuLevels(), nil, core.DefaultConfig())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	menu := m.(LevelMenuModel)
	idx, chosen := menu.Selected()
	if !chosen || idx != 2 {
		t.Errorf("Selected() = %d, %v; want 2, true", idx, chosen)
	}
}

func TestLevelMenuScoreboardAndQuit(t *testing.T) {
	m := send(t, NewLevelMenuModel(menuLevels(), nil, core.DefaultConfig()), tea.KeyMsg{Type: tea.KeyTab})
	if !m.(LevelMenuModel).WantsScoreboard() {
		t.Error("tab should ask for the scoreboard")
	}

	m = send(t, NewLevelMenuModel(menuLevels(), nil, core.DefaultConfig()), runeKey("q"))
	if !m.(LevelMenuModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func TestLevelMenuShowsStats(t *testing.T) {
	store := openStore(t)
	for _, outcome := range []string{storage.OutcomeCrashed, storage.OutcomeLanded} {
		if _, err := store.RecordFlight(storage.Flight{RunID: "r", LevelID: "02", Outcome: outcome, Ticks: 60}); err != nil {
			t.Fatalf("RecordFlight: %v", err)
		}
	}

	SetTheme(MonochromeTheme())
	defer SetTheme(DefaultTheme())

	view := NewLevelMenuModel(menuLevels(), store, core.DefaultConfig()).View()
	if !strings.Contains(view, "Pendulum") {
		t.Error("menu should list level names")
	}
	if !strings.Contains(view, "1/2 landed") || !strings.Contains(view, "best 1.0s") {
		t.Errorf("menu should show flight stats, got:\n%s", view)
	}
}

func TestScoreboardPages(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("rocket", 3); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}
	if _, err := store.RecordFlight(storage.Flight{RunID: "r", LevelID: "gone", Outcome: storage.OutcomeCrashed}); err != nil {
		t.Fatalf("RecordFlight: %v", err)
	}

	m := NewScoreboardModel("rocket", menuLevels(), store, core.DefaultConfig())
	if rows := m.table.Rows(); len(rows) != 1 || rows[0][1] != "3" {
		t.Fatalf("runs page rows = %v", rows)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	rows := m.table.Rows()
	if len(rows) != 4 {
		t.Fatalf("levels page should list 3 levels and 1 retired, got %d rows", len(rows))
	}
	if rows[0][0] != "Lift Off" || rows[0][1] != "0" || rows[0][4] != "never" {
		t.Errorf("unflown level row = %v", rows[0])
	}
	if rows[3][0] != "gone" || rows[3][1] != "1" {
		t.Errorf("retired level row = %v", rows[3])
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func newTestSession(t *testing.T) SessionModel {
	t.Helper()
	srv := DefaultSSHServerConfig()
	srv.GameID = scriptedID
	srv.Levels = menuLevels()
	return NewSessionModel(srv, nil, core.DefaultConfig(), nil)
}

func TestSessionFlow(t *testing.T) {
	var m tea.Model = newTestSession(t)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sess := m.(SessionModel)
	if sess.current != screenGame {
		t.Fatalf("enter should start the game, screen = %v", sess.current)
	}
	if lastScripted == nil || lastScripted.start != 1 {
		t.Fatal("the game should start at the chosen level")
	}
	if !strings.Contains(sess.View(), "scripted") {
		t.Error("session should show the game")
	}

	m = send(t, m, runeKey("p"))
	m = send(t, m, TickMsg{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).current != screenMenu {
		t.Fatal("back from a paused game should return to the menu")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).current != screenScores {
		t.Fatal("tab should open the scoreboard")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).current != screenMenu {
		t.Fatal("esc should leave the scoreboard")
	}

	m = send(t, m, runeKey("q"))
	if !m.(SessionModel).quitting {
		t.Error("q should end the session")
	}
}
