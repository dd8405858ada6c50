package entropy

import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/vovakirdan/entropy-reduction/internal/games/entropy/core"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and
// replay. The board is folded into a hash so snapshots stay comparable
// with ==.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Level        int // Current level (1-indexed for display), 0 in free play
	Score        int
	TilesCleared int
	MaxChain     int
	MaxCombo     int
	Phase        string
	BoardHash    uint64
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	level := 0
	if g.level != nil {
		level = g.levelIndex + 1
	}

	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Level:        level,
		Score:        g.score,
		TilesCleared: g.stats.TilesCleared,
		MaxChain:     g.stats.MaxChain,
		MaxCombo:     g.stats.MaxCombo,
		Phase:        g.phase.String(),
		BoardHash:    g.boardHash(),
		State:        state,
	}
}

// boardHash folds the tile set into an order-independent fingerprint:
// tiles are serialized in id order before hashing.
func (g *Game) boardHash() uint64 {
	tiles := append([]core.Tile(nil), g.tiles...)
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].ID < tiles[j].ID })

	h := fnv.New64a()
	for _, t := range tiles {
		fmt.Fprintf(h, "%d:%d,%d:%d;", t.ID, t.X, t.Y, t.Type)
	}
	return h.Sum64()
}
