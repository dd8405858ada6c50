package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// Event is a discrete signal emitted by a game step. The platform may
// surface these as flashes, status lines or (externally) audio cues;
// games never act on them themselves.
type Event int

const (
	EventNone         Event = iota
	EventClear              // A group of tiles was cleared
	EventBigClear           // A group of 5+ tiles was cleared
	EventCritical           // A clear rolled a critical bonus
	EventChain              // A gravity-triggered chain clear
	EventNoMoves            // No valid moves remained; a shuffle follows
	EventShuffled           // The board was reshuffled
	EventLevelCleared       // The level goal was reached
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventClear:
		return "Clear"
	case EventBigClear:
		return "BigClear"
	case EventCritical:
		return "Critical"
	case EventChain:
		return "Chain"
	case EventNoMoves:
		return "NoMoves"
	case EventShuffled:
		return "Shuffled"
	case EventLevelCleared:
		return "LevelCleared"
	default:
		return "None"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
