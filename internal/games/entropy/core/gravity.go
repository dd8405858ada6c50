package core

import (
	"math/rand"
	"sort"
)

// GravityResult holds the resettled board and the tiles spawned at the top
// during refill, so the caller can flag them as "new" for animation.
type GravityResult struct {
	Tiles   []Tile
	Spawned []Tile
}

// ApplyGravity resettles every column downward and refills the empty cells
// above with freshly generated tiles. Per column the surviving tiles keep
// their relative vertical order (a tile above another before gravity stays
// above after); the remaining cells are filled with random types and fresh
// ids from gen. Passing a nil generator falls back to a monotonic counter
// starting past the highest live id. The input slice is never mutated.
func ApplyGravity(tiles []Tile, gridSize int, rng *rand.Rand, gen IDGenerator) GravityResult {
	if gen == nil {
		gen = SequenceAfter(tiles)
	}

	columns := make([][]Tile, gridSize)
	for _, t := range tiles {
		if t.X < 0 || t.X >= gridSize {
			continue
		}
		columns[t.X] = append(columns[t.X], t)
	}

	result := GravityResult{
		Tiles: make([]Tile, 0, gridSize*gridSize),
	}

	for x := 0; x < gridSize; x++ {
		col := columns[x]
		// Pack survivors toward the bottom, highest y first. The sort is
		// on y alone, so relative order within the column is preserved.
		sort.Slice(col, func(i, j int) bool { return col[i].Y > col[j].Y })

		y := gridSize - 1
		for _, t := range col {
			t.Y = y
			result.Tiles = append(result.Tiles, t)
			y--
		}

		// Fill the gap above the packed tiles bottom-up.
		for ; y >= 0; y-- {
			spawned := Tile{
				ID:   gen.Next(),
				X:    x,
				Y:    y,
				Type: randomType(rng),
			}
			result.Tiles = append(result.Tiles, spawned)
			result.Spawned = append(result.Spawned, spawned)
		}
	}

	return result
}

// SettleColumns resettles every column downward without refilling, for
// modes that deplete the board instead of replenishing it. Relative
// vertical order within each column is preserved; the input is never
// mutated.
func SettleColumns(tiles []Tile, gridSize int) []Tile {
	columns := make([][]Tile, gridSize)
	for _, t := range tiles {
		if t.X < 0 || t.X >= gridSize {
			continue
		}
		columns[t.X] = append(columns[t.X], t)
	}

	out := make([]Tile, 0, len(tiles))
	for x := 0; x < gridSize; x++ {
		col := columns[x]
		sort.Slice(col, func(i, j int) bool { return col[i].Y > col[j].Y })

		y := gridSize - 1
		for _, t := range col {
			t.Y = y
			out = append(out, t)
			y--
		}
	}
	return out
}

// RemoveTiles returns the tile set minus the given ids, without mutating
// the input.
func RemoveTiles(tiles []Tile, ids []int) []Tile {
	doomed := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	out := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if _, gone := doomed[t.ID]; !gone {
			out = append(out, t)
		}
	}
	return out
}
