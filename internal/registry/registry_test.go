package registry

import (
	"testing"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

type stubGame struct {
	id     string
	closed bool
}

func (g *stubGame) ID() string                          { return g.id }
func (g *stubGame) Title() string                       { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)            {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                 {}
func (g *stubGame) State() core.GameState               { return core.GameState{} }
func (g *stubGame) Close()                              { g.closed = true }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("created %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" && info.Title == "Stub zz-stub" {
			found = true
		}
	}
	if !found {
		t.Error("List should include the stub with its title")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create should fail for unknown IDs")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz-dup", func() Game { return &stubGame{id: "zz-dup"} })
}

func TestRelease(t *testing.T) {
	g := &stubGame{id: "x"}
	Release(g)
	if !g.closed {
		t.Error("Release should close games that implement Closer")
	}
}
