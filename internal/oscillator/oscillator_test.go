package oscillator

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-rocket/internal/core"
)

const tolerance = 1e-9

func TestFactorCheckpoints(t *testing.T) {
	periods := []float64{2, 0.5, 7.25}

	for _, p := range periods {
		tests := []struct {
			name    string
			elapsed float64
			want    float64
		}{
			{"start", 0, 0.5},
			{"quarter", p / 4, 1.0},
			{"half", p / 2, 0.5},
			{"three quarters", 3 * p / 4, 0.0},
			{"full cycle", p, 0.5},
		}

		for _, tc := range tests {
			got := Factor(tc.elapsed, p)
			if math.Abs(got-tc.want) > tolerance {
				t.Errorf("period %v %s: Factor(%v) = %v, expected %v", p, tc.name, tc.elapsed, got, tc.want)
			}
		}
	}
}

func TestFactorRangeAndPeriodicity(t *testing.T) {
	const period = 3.0

	for i := 0; i < 1000; i++ {
		elapsed := float64(i) * 0.0137
		f := Factor(elapsed, period)
		if f < 0 || f > 1 {
			t.Fatalf("Factor(%v) = %v out of [0, 1]", elapsed, f)
		}

		next := Factor(elapsed+period, period)
		if math.Abs(f-next) > 1e-6 {
			t.Fatalf("Factor not periodic at %v: %v vs %v", elapsed, f, next)
		}
	}
}

func TestUpdateMovesAlongVector(t *testing.T) {
	start := core.V3(10, 5, 0)
	o := New(core.V3(0, 8, 0), 2)

	pos, moved := o.Update(0, start)
	if !moved {
		t.Fatal("expected movement with a positive period")
	}
	if !pos.ApproxEqual(core.V3(10, 9, 0), tolerance) {
		t.Errorf("at t=0 expected half way, got %+v", pos)
	}

	// Later calls pass the moved position as current, the origin must not drift.
	pos, _ = o.Update(0.5, pos)
	if !pos.ApproxEqual(core.V3(10, 13, 0), tolerance) {
		t.Errorf("at quarter period expected fully moved, got %+v", pos)
	}

	pos, _ = o.Update(1.5, pos)
	if !pos.ApproxEqual(start, tolerance) {
		t.Errorf("at three quarters expected origin, got %+v", pos)
	}

	if o.Origin() != start {
		t.Errorf("origin drifted to %+v", o.Origin())
	}
}

func TestUpdateZeroPeriodNeverMoves(t *testing.T) {
	start := core.V3(3, 4, 0)

	for _, period := range []float64{0, Epsilon, -1} {
		o := New(core.V3(50, 50, 0), period)
		for _, elapsed := range []float64{0, 0.25, 1, 100} {
			pos, moved := o.Update(elapsed, start)
			if moved {
				t.Errorf("period %v: expected no movement", period)
			}
			if pos != start {
				t.Errorf("period %v: position changed to %+v", period, pos)
			}
		}
	}
}

func TestStartOnlyOnce(t *testing.T) {
	o := New(core.V3(1, 0, 0), 1)
	o.Start(core.V3(2, 2, 0))
	o.Start(core.V3(9, 9, 0))

	if !o.Started() {
		t.Fatal("Started() should be true after Start")
	}
	if o.Origin() != core.V3(2, 2, 0) {
		t.Errorf("second Start should be ignored, origin = %+v", o.Origin())
	}
}
