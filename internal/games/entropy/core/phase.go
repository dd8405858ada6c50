package core

// Phase is the board interaction state machine. It is the authoritative
// gate against double-processing input: player actions are accepted only
// in PhaseIdle, because cascade steps span multiple presentation frames
// and are not atomic from the caller's perspective.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSwapping
	PhaseClearing
	PhaseFalling
	PhaseCascadeCheck
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSwapping:
		return "Swapping"
	case PhaseClearing:
		return "Clearing"
	case PhaseFalling:
		return "Falling"
	case PhaseCascadeCheck:
		return "CascadeCheck"
	default:
		return "Unknown"
	}
}

// transitions is the legal edge set:
// Idle -> Swapping or Clearing (direct clear), Swapping -> Clearing on a
// match or back to Idle on a reverted swap, then
// Clearing -> Falling -> CascadeCheck, which loops to Clearing for the
// next chain level or returns to Idle when the chain ends.
var transitions = map[Phase][]Phase{
	PhaseIdle:         {PhaseSwapping, PhaseClearing},
	PhaseSwapping:     {PhaseClearing, PhaseIdle},
	PhaseClearing:     {PhaseFalling},
	PhaseFalling:      {PhaseCascadeCheck},
	PhaseCascadeCheck: {PhaseClearing, PhaseIdle},
}

// CanTransition reports whether moving from p to next is a legal edge.
func (p Phase) CanTransition(next Phase) bool {
	for _, t := range transitions[p] {
		if t == next {
			return true
		}
	}
	return false
}

// AcceptsInput reports whether player actions may be processed in this
// phase. Actions arriving mid-resolution are rejected, not queued.
func (p Phase) AcceptsInput() bool {
	return p == PhaseIdle
}
