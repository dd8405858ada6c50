// Package core provides the board logic for the Entropy Reduction game:
// match detection, gravity, cascade resolution, move validation and
// reward calculation. This package is UI-agnostic and deterministic.
package core

import (
	"fmt"
	"math/rand"
)

// TileType identifies one of the symbolic tile kinds ("colors").
type TileType uint8

const (
	TileEmber TileType = iota
	TileDrop
	TileLeaf
	TileBolt
)

// NumTileTypes is the number of distinct tile kinds.
const NumTileTypes = 4

// String returns the string representation of a tile type.
func (t TileType) String() string {
	switch t {
	case TileEmber:
		return "Ember"
	case TileDrop:
		return "Drop"
	case TileLeaf:
		return "Leaf"
	case TileBolt:
		return "Bolt"
	default:
		return "Unknown"
	}
}

// Tile is the atomic board entity. IDs are opaque, unique per session and
// never reused while the tile is alive.
type Tile struct {
	ID   int
	X    int
	Y    int
	Type TileType
}

// Coord represents a 2D board coordinate.
// X increases to the right, Y increases downward (screen coordinates).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// neighbors4 is the 4-directional adjacency used for match connectivity.
// Diagonal adjacency never connects tiles.
var neighbors4 = [4]Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// IDGenerator mints unique tile identities. Implementations must return a
// fresh id on every call; ids are threaded through gravity and board
// construction explicitly so no hidden global counter exists.
type IDGenerator interface {
	Next() int
}

// Sequence is a monotonic counter implementing IDGenerator.
type Sequence struct {
	next int
}

// NewSequence creates a Sequence that starts at the given id.
func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

// Next returns the next id in the sequence.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// SequenceAfter returns a Sequence starting just past the highest id in
// the tile set. Used as the fallback generator when a caller supplies none.
func SequenceAfter(tiles []Tile) *Sequence {
	maxID := -1
	for _, t := range tiles {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return NewSequence(maxID + 1)
}

// byCoord builds a coordinate lookup for the tile set.
func byCoord(tiles []Tile) map[Coord]*Tile {
	m := make(map[Coord]*Tile, len(tiles))
	for i := range tiles {
		m[C(tiles[i].X, tiles[i].Y)] = &tiles[i]
	}
	return m
}

// byID builds an id lookup for the tile set.
func byID(tiles []Tile) map[int]*Tile {
	m := make(map[int]*Tile, len(tiles))
	for i := range tiles {
		m[tiles[i].ID] = &tiles[i]
	}
	return m
}

// ValidateTiles checks the structural board invariants: coordinates in
// bounds, no duplicate ids, at most one live tile per cell. Violations are
// programming-contract errors, so callers should treat a non-nil result as
// a bug rather than a recoverable condition.
func ValidateTiles(tiles []Tile, gridSize int) error {
	if gridSize <= 0 {
		return fmt.Errorf("board: grid size must be positive, got %d", gridSize)
	}

	seenID := make(map[int]struct{}, len(tiles))
	seenCell := make(map[Coord]int, len(tiles))

	for _, t := range tiles {
		if t.X < 0 || t.X >= gridSize || t.Y < 0 || t.Y >= gridSize {
			return fmt.Errorf("board: tile %d out of bounds at (%d,%d)", t.ID, t.X, t.Y)
		}
		if _, dup := seenID[t.ID]; dup {
			return fmt.Errorf("board: duplicate tile id %d", t.ID)
		}
		seenID[t.ID] = struct{}{}

		cell := C(t.X, t.Y)
		if other, occupied := seenCell[cell]; occupied {
			return fmt.Errorf("board: tiles %d and %d both occupy %s", other, t.ID, cell)
		}
		seenCell[cell] = t.ID
	}

	return nil
}

// Entropy returns the fraction of occupied board cells in [0,1].
// Used as a difficulty/pressure metric by level goals.
func Entropy(tiles []Tile, gridSize int) float64 {
	if gridSize <= 0 {
		return 0
	}
	return float64(len(tiles)) / float64(gridSize*gridSize)
}

// cloneTiles returns a copy of the tile slice. Core functions never mutate
// their input; the board is replaced wholesale on each transition.
func cloneTiles(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	return out
}

// randomType picks a uniformly random tile type.
func randomType(rng *rand.Rand) TileType {
	return TileType(rng.Intn(NumTileTypes))
}
