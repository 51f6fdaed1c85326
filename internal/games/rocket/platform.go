package rocket

import (
	"github.com/vovakirdan/tui-rocket/internal/core"
	"github.com/vovakirdan/tui-rocket/internal/level"
	"github.com/vovakirdan/tui-rocket/internal/oscillator"
)

// mover is an obstacle in the active scene. Moving obstacles carry an
// oscillator anchored at their authored position.
type mover struct {
	obstacle level.Obstacle
	rect     core.RectF
	osc      *oscillator.Oscillator
}

func newMover(o level.Obstacle, period float64) mover {
	m := mover{obstacle: o, rect: o.Rect}
	if o.Moving() {
		m.osc = oscillator.New(o.Move, period)
		m.osc.Start(core.V3(o.Rect.X, o.Rect.Y, 0))
	}
	return m
}

// update places the obstacle for the given global time.
func (m *mover) update(elapsed float64) {
	if m.osc == nil {
		return
	}
	if pos, moved := m.osc.Update(elapsed, core.V3(m.rect.X, m.rect.Y, 0)); moved {
		m.rect = m.rect.At(pos)
	}
}
