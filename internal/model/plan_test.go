package model

import "testing"

func TestPlanDiffAgainst(t *testing.T) {
	old := Plan{Version: 1, FrequencyPerWeek: 5, MinMinutes: 30, TimeWindow: WindowEvening}

	t.Run("no changes", func(t *testing.T) {
		next := old
		next.Version = 2
		if diff := next.DiffAgainst(old); len(diff) != 0 {
			t.Errorf("expected empty diff, got %v", diff)
		}
	})

	t.Run("frequency and duration", func(t *testing.T) {
		next := Plan{Version: 2, FrequencyPerWeek: 3, MinMinutes: 10, TimeWindow: WindowEvening}
		diff := next.DiffAgainst(old)
		if len(diff) != 2 {
			t.Fatalf("expected 2 changes, got %d: %v", len(diff), diff)
		}
		if diff[0].Field != "frequency" || diff[0].From != "5×/week" || diff[0].To != "3×/week" {
			t.Errorf("unexpected frequency change: %+v", diff[0])
		}
		if diff[1].Field != "duration" || diff[1].From != "30 min" || diff[1].To != "10 min" {
			t.Errorf("unexpected duration change: %+v", diff[1])
		}
	})

	t.Run("time window swap", func(t *testing.T) {
		next := Plan{Version: 2, FrequencyPerWeek: 5, MinMinutes: 30, TimeWindow: WindowMorning}
		diff := next.DiffAgainst(old)
		if len(diff) != 1 {
			t.Fatalf("expected 1 change, got %d", len(diff))
		}
		if diff[0].From != WindowEvening || diff[0].To != WindowMorning {
			t.Errorf("unexpected window change: %+v", diff[0])
		}
	})

	t.Run("both windows empty is not a change", func(t *testing.T) {
		a := Plan{Version: 1, FrequencyPerWeek: 3, MinMinutes: 15}
		b := Plan{Version: 2, FrequencyPerWeek: 3, MinMinutes: 15}
		if diff := b.DiffAgainst(a); len(diff) != 0 {
			t.Errorf("expected empty diff, got %v", diff)
		}
	})
}

func TestPlanIsRevised(t *testing.T) {
	if (Plan{Version: 1}).IsRevised() {
		t.Error("version 1 should not read as revised")
	}
	if !(Plan{Version: 2}).IsRevised() {
		t.Error("version 2 should read as revised")
	}
	// Reverting appends a new version carrying the original values, so a
	// reverted plan still reads as revised.
	if !(Plan{Version: 3}).IsRevised() {
		t.Error("version 3 should read as revised")
	}
}
