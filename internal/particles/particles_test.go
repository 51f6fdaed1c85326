package particles

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

const tick = time.Second / 60

func TestContinuousEmitterStreamsWhilePlaying(t *testing.T) {
	e := NewEmitter(Exhaust, 1)
	if e.IsPlaying() {
		t.Fatal("new emitter should be stopped")
	}

	e.Play()
	if !e.IsPlaying() {
		t.Fatal("Play should start a continuous emitter")
	}

	for i := 0; i < 30; i++ {
		e.Update(tick)
	}
	if len(e.Particles()) == 0 {
		t.Fatal("expected particles after half a second of emission")
	}

	e.Stop()
	if e.IsPlaying() {
		t.Error("Stop should end a continuous emitter")
	}

	// Existing particles burn out after their lifetime.
	for i := 0; i < 60; i++ {
		e.Update(tick)
	}
	if n := len(e.Particles()); n != 0 {
		t.Errorf("expected particles to expire, %d left", n)
	}
}

func TestBurstEmitterPlaysUntilParticlesDie(t *testing.T) {
	e := NewEmitter(Explosion, 7)
	e.Play()

	if got := len(e.Particles()); got != Explosion.Burst {
		t.Fatalf("burst spawned %d particles, expected %d", got, Explosion.Burst)
	}
	if !e.IsPlaying() {
		t.Fatal("burst emitter should be playing while particles live")
	}

	// Bursts never keep emitting.
	e.Update(tick)
	if len(e.Particles()) > Explosion.Burst {
		t.Error("burst emitter spawned particles after Play")
	}

	for i := 0; i < 120; i++ {
		e.Update(tick)
	}
	if e.IsPlaying() {
		t.Error("burst emitter should stop once every particle expired")
	}
}

func TestEmissionFollowsDirection(t *testing.T) {
	p := Exhaust
	p.Spread = 0
	e := NewEmitter(p, 3)
	e.SetOrigin(core.V3(10, 10, 0), core.V3(0, 1, 0))
	e.Play()
	e.Update(tick * 6)

	if len(e.Particles()) == 0 {
		t.Fatal("expected particles")
	}
	for _, part := range e.Particles() {
		if part.Vel.Y <= 0 || part.Vel.X > 1e-9 || part.Vel.X < -1e-9 {
			t.Errorf("particle velocity %+v should point straight down", part.Vel)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := NewEmitter(Explosion, 42)
	b := NewEmitter(Explosion, 42)
	a.Play()
	b.Play()
	a.Update(tick)
	b.Update(tick)

	pa, pb := a.Particles(), b.Particles()
	if len(pa) != len(pb) {
		t.Fatalf("particle counts differ: %d vs %d", len(pa), len(pb))
	}
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, pa[i], pb[i])
		}
	}
}

func TestRenderDrawsGlyphs(t *testing.T) {
	p := Success
	p.Speed = 0
	p.Gravity = 0
	e := NewEmitter(p, 1)
	e.SetOrigin(core.V3(2, 1, 0), core.VecUp)
	e.Play()

	screen := core.NewScreen(10, 5)
	e.Render(screen, 1, 1)

	cell := screen.GetCell(3, 2)
	if cell.Rune != Success.Glyphs[0] || cell.Color != Success.Color {
		t.Errorf("expected a fresh success glyph at (3, 2), got %+v", cell)
	}
}

func TestClearRemovesParticles(t *testing.T) {
	e := NewEmitter(Explosion, 1)
	e.Play()
	e.Clear()
	if e.IsPlaying() || len(e.Particles()) != 0 {
		t.Error("Clear should remove all particles and stop the emitter")
	}
}
