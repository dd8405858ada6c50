package core

import "testing"

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from    Phase
		to      Phase
		allowed bool
	}{
		{PhaseIdle, PhaseSwapping, true},
		{PhaseIdle, PhaseClearing, true},
		{PhaseIdle, PhaseFalling, false},
		{PhaseSwapping, PhaseClearing, true},
		{PhaseSwapping, PhaseIdle, true},
		{PhaseSwapping, PhaseFalling, false},
		{PhaseClearing, PhaseFalling, true},
		{PhaseClearing, PhaseIdle, false},
		{PhaseFalling, PhaseCascadeCheck, true},
		{PhaseFalling, PhaseClearing, false},
		{PhaseCascadeCheck, PhaseClearing, true},
		{PhaseCascadeCheck, PhaseIdle, true},
		{PhaseCascadeCheck, PhaseSwapping, false},
		{PhaseIdle, PhaseIdle, false},
	}

	for _, tc := range tests {
		if got := tc.from.CanTransition(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s = %v, expected %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestPhaseAcceptsInput(t *testing.T) {
	for _, p := range []Phase{PhaseSwapping, PhaseClearing, PhaseFalling, PhaseCascadeCheck} {
		if p.AcceptsInput() {
			t.Errorf("%s should reject input", p)
		}
	}
	if !PhaseIdle.AcceptsInput() {
		t.Error("Idle should accept input")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseCascadeCheck.String() != "CascadeCheck" {
		t.Errorf("got %q", PhaseCascadeCheck.String())
	}
	if Phase(99).String() != "Unknown" {
		t.Errorf("got %q", Phase(99).String())
	}
}
