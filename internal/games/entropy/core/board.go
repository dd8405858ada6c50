package core

import "math/rand"

// DefaultGridSize is the standard board dimension.
const DefaultGridSize = 6

// NewBoard fills a gridSize x gridSize board with random tiles such that
// no connected same-type group of 3+ exists at the start. Types are
// rerolled at placement against the already-placed cells; if the
// resulting board has no valid move it is reshuffled. The shuffle's
// best-effort flag is propagated so pathological boards surface instead
// of looping.
func NewBoard(gridSize int, rng *rand.Rand, gen IDGenerator) ShuffleResult {
	if gen == nil {
		gen = NewSequence(0)
	}

	tiles := make([]Tile, 0, gridSize*gridSize)
	lookup := make(map[Coord]TileType, gridSize*gridSize)

	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			tt := randomType(rng)
			// Only the left and up neighbors are placed and adjacent, so
			// at most 2 of the 4 types can be blocked.
			for completesMatch(lookup, x, y, tt) {
				tt = TileType((int(tt) + 1) % NumTileTypes)
			}
			lookup[C(x, y)] = tt
			tiles = append(tiles, Tile{ID: gen.Next(), X: x, Y: y, Type: tt})
		}
	}

	if len(FindValidMoves(tiles, gridSize)) == 0 {
		return ShuffleTiles(tiles, gridSize, rng)
	}
	return ShuffleResult{Tiles: tiles, OK: true}
}

// completesMatch reports whether placing tt at (x,y) would form a
// connected same-type group of MinMatchSize or more with already-placed
// cells. Matches are 4-connected components, so a bent group counts the
// same as a straight run.
func completesMatch(lookup map[Coord]TileType, x, y int, tt TileType) bool {
	start := C(x, y)
	seen := map[Coord]struct{}{start: {}}
	queue := []Coord{start}
	size := 1

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, n := range []Coord{c.Add(-1, 0), c.Add(1, 0), c.Add(0, -1), c.Add(0, 1)} {
			if _, done := seen[n]; done {
				continue
			}
			if placed, ok := lookup[n]; !ok || placed != tt {
				continue
			}
			seen[n] = struct{}{}
			size++
			if size >= MinMatchSize {
				return true
			}
			queue = append(queue, n)
		}
	}
	return false
}
