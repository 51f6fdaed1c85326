package level

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

const validYAML = `
id: "t1"
name: Test
size: { w: 40, h: 10 }
spawn: { x: 3.5, y: 8.5 }
obstacles:
  - name: pad
    tag: Finish
    rect: { x: 30, y: 9, w: 5, h: 1 }
  - name: crusher
    rect: { x: 10, y: 0, w: 2, h: 2 }
    move: { x: 0, y: 6 }
    period: 2
`

func TestParse(t *testing.T) {
	lvl, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if lvl.ID != "t1" || lvl.Name != "Test" {
		t.Errorf("id/name = %q/%q", lvl.ID, lvl.Name)
	}
	if lvl.Width != 40 || lvl.Height != 10 {
		t.Errorf("size = %dx%d, expected 40x10", lvl.Width, lvl.Height)
	}
	if lvl.Spawn != core.V3(3.5, 8.5, 0) {
		t.Errorf("spawn = %+v", lvl.Spawn)
	}
	if len(lvl.Obstacles) != 2 {
		t.Fatalf("expected 2 obstacles, got %d", len(lvl.Obstacles))
	}

	crusher := lvl.Obstacles[1]
	if crusher.Tag != "Untagged" {
		t.Errorf("missing tag should default to Untagged, got %q", crusher.Tag)
	}
	if !crusher.Moving() || crusher.Move.Y != 6 || crusher.Period != 2 {
		t.Errorf("crusher movement = %+v period %f", crusher.Move, crusher.Period)
	}
	if lvl.Obstacles[0].Moving() {
		t.Error("pad without movement should be static")
	}

	if err := lvl.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() Level {
		lvl, _ := Parse([]byte(validYAML))
		return lvl
	}

	tests := []struct {
		name   string
		mutate func(*Level)
	}{
		{"no id", func(l *Level) { l.ID = "" }},
		{"zero size", func(l *Level) { l.Width = 0 }},
		{"spawn outside", func(l *Level) { l.Spawn = core.V3(50, 5, 0) }},
		{"no finish", func(l *Level) { l.Obstacles = l.Obstacles[1:] }},
		{"empty rect", func(l *Level) { l.Obstacles[1].Rect.W = 0 }},
		{"negative period", func(l *Level) { l.Obstacles[1].Period = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl := base()
			tt.mutate(&lvl)
			if err := lvl.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadEmbedded(t *testing.T) {
	levels, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("LoadEmbedded failed: %v", err)
	}
	if len(levels) < 2 {
		t.Fatalf("expected at least 2 built-in levels, got %d", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i-1].ID >= levels[i].ID {
			t.Errorf("levels not sorted: %s >= %s", levels[i-1].ID, levels[i].ID)
		}
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.yaml", validYAML)
	write("a.yaml", "id: broken\nsize: { w: 0, h: 0 }\n")
	write("notes.txt", "not a level")

	levels, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) != 1 || levels[0].ID != "t1" {
		t.Fatalf("expected only t1, got %+v", levels)
	}
	if levels[0].FilePath != filepath.Join(dir, "b.yaml") {
		t.Errorf("FilePath = %q", levels[0].FilePath)
	}

	if _, err := NewLoader(dir).LoadByID("t1"); err != nil {
		t.Errorf("LoadByID failed: %v", err)
	}
	if _, err := NewLoader(dir).LoadByID("nope"); err == nil {
		t.Error("LoadByID should fail for unknown id")
	}
}

func TestLoadEmptyDir(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrNoLevels) {
		t.Errorf("expected ErrNoLevels, got %v", err)
	}
}

func testLevels(n int) []Level {
	levels := make([]Level, n)
	for i := range levels {
		levels[i] = Level{ID: string(rune('a' + i)), Width: 10, Height: 10}
	}
	return levels
}

func TestManagerRequests(t *testing.T) {
	m, err := NewManager(testLevels(3), nil)
	if err != nil {
		t.Fatal(err)
	}

	if m.ActiveIndex() != 0 || m.Count() != 3 {
		t.Fatalf("active=%d count=%d", m.ActiveIndex(), m.Count())
	}
	if _, ok := m.TakePending(); ok {
		t.Error("no request expected on a new manager")
	}

	m.Load(1)
	m.Load(2)
	i, ok := m.TakePending()
	if !ok || i != 2 {
		t.Errorf("TakePending = %d, %v; expected last request 2", i, ok)
	}
	if _, ok := m.TakePending(); ok {
		t.Error("TakePending should clear the request")
	}
	if m.ActiveIndex() != 0 {
		t.Error("a request must not change the active scene")
	}

	if err := m.Activate(2); err != nil {
		t.Fatal(err)
	}
	if m.Active().ID != "c" {
		t.Errorf("active level = %q, expected c", m.Active().ID)
	}
}

func TestManagerRejectsOutOfRange(t *testing.T) {
	m, _ := NewManager(testLevels(2), nil)

	for _, i := range []int{-1, 2, 10} {
		if err := m.LoadChecked(i); !errors.Is(err, ErrLevelIndex) {
			t.Errorf("LoadChecked(%d) = %v, expected ErrLevelIndex", i, err)
		}
		m.Load(i)
	}
	if _, ok := m.TakePending(); ok {
		t.Error("rejected loads must not leave a request")
	}
	if err := m.Activate(5); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("Activate(5) = %v", err)
	}

	if _, err := NewManager(nil, nil); !errors.Is(err, ErrNoLevels) {
		t.Errorf("NewManager(nil) = %v, expected ErrNoLevels", err)
	}
}
