package core

import "math/rand"

// SwapCandidate is a pair of adjacent tiles whose swap would produce a
// match.
type SwapCandidate struct {
	A Tile
	B Tile
}

// MinTilesForDeadlock is the smallest board population for which a "no
// valid moves" verdict is meaningful. Below it, transient near-empty
// boards would raise false stuck signals mid-resolution.
const MinTilesForDeadlock = 8

// DefaultShuffleRetries bounds shuffle attempts before accepting a
// best-effort board.
const DefaultShuffleRetries = 32

// FindValidMoves enumerates every adjacent swap that would produce a
// match. Each tile is only tested against its right and bottom neighbor,
// so no pair is reported twice. The check swaps on a hypothetical board
// and seeds the single-origin detector at both swapped positions; real
// board state is never touched.
func FindValidMoves(tiles []Tile, gridSize int) []SwapCandidate {
	lookup := byCoord(tiles)
	var moves []SwapCandidate

	for i := range tiles {
		a := tiles[i]
		for _, d := range [2]Coord{{1, 0}, {0, 1}} {
			b := lookup[C(a.X+d.X, a.Y+d.Y)]
			if b == nil || b.Type == a.Type {
				// Swapping equal types cannot create a new match
				continue
			}
			if swapProducesMatch(tiles, a.ID, b.ID, gridSize) {
				moves = append(moves, SwapCandidate{A: a, B: *b})
			}
		}
	}

	return moves
}

// swapProducesMatch builds the post-swap board and tests both swapped
// tiles for a group of MinMatchSize+.
func swapProducesMatch(tiles []Tile, idA, idB, gridSize int) bool {
	swapped := SwapTiles(tiles, idA, idB)
	return FindMatchingGroup(swapped, idA, gridSize) != nil ||
		FindMatchingGroup(swapped, idB, gridSize) != nil
}

// SwapTiles returns a copy of the tile set with the coordinates of the two
// tiles exchanged. Unknown ids leave the board unchanged.
func SwapTiles(tiles []Tile, idA, idB int) []Tile {
	out := cloneTiles(tiles)

	var a, b *Tile
	for i := range out {
		switch out[i].ID {
		case idA:
			a = &out[i]
		case idB:
			b = &out[i]
		}
	}
	if a == nil || b == nil {
		return out
	}

	a.X, b.X = b.X, a.X
	a.Y, b.Y = b.Y, a.Y
	return out
}

// HasNoMoves reports a true deadlock: no swap produces a match, nothing is
// already clearable, and the board is populated enough for the verdict to
// mean anything.
func HasNoMoves(tiles []Tile, gridSize int) bool {
	if len(tiles) < MinTilesForDeadlock {
		return false
	}
	if len(FindClearableTiles(tiles, gridSize)) > 0 {
		return false
	}
	return len(FindValidMoves(tiles, gridSize)) == 0
}

// ShuffleResult carries the reshuffled board and whether it satisfies both
// shuffle invariants. OK is false only when the retry budget ran out and
// the best-effort board may still be degenerate; callers must surface
// that instead of retrying forever.
type ShuffleResult struct {
	Tiles []Tile
	OK    bool
}

// ShuffleTiles randomly redistributes tile types across the existing
// positions (ids and coordinates are untouched) until the board has zero
// pre-existing matches and at least one valid move. Retries are bounded;
// on exhaustion the last permutation is returned with OK=false.
func ShuffleTiles(tiles []Tile, gridSize int, rng *rand.Rand) ShuffleResult {
	return shuffleWithRetries(tiles, gridSize, rng, DefaultShuffleRetries)
}

func shuffleWithRetries(tiles []Tile, gridSize int, rng *rand.Rand, retries int) ShuffleResult {
	types := make([]TileType, len(tiles))
	for i, t := range tiles {
		types[i] = t.Type
	}

	out := cloneTiles(tiles)
	for attempt := 0; attempt < retries; attempt++ {
		rng.Shuffle(len(types), func(i, j int) {
			types[i], types[j] = types[j], types[i]
		})
		for i := range out {
			out[i].Type = types[i]
		}

		if len(FindAllMatches(out, gridSize)) == 0 && len(FindValidMoves(out, gridSize)) > 0 {
			return ShuffleResult{Tiles: out, OK: true}
		}
	}

	return ShuffleResult{Tiles: out, OK: false}
}

// Hint returns one valid move, or nil when none exists. Used to answer
// player hint requests without exposing the full candidate list.
func Hint(tiles []Tile, gridSize int) *SwapCandidate {
	moves := FindValidMoves(tiles, gridSize)
	if len(moves) == 0 {
		return nil
	}
	return &moves[0]
}
