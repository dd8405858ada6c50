package core

import (
	"math/rand"
	"testing"
)

// deadlockBoard is a 3x3 latin square with no pre-existing match where no
// adjacent swap produces one. Verified exhaustively by hand.
func deadlockBoard() []Tile {
	return tilesFromRows(
		"EDL",
		"DLE",
		"LED",
	)
}

// centerMoveBoard has exactly 4 valid moves, each one swapping a drop into
// the leaf at the center.
func centerMoveBoard() []Tile {
	return tilesFromRows(
		"EDE",
		"DLD",
		"EDL",
	)
}

func TestFindValidMovesDeadlock(t *testing.T) {
	if moves := FindValidMoves(deadlockBoard(), 3); len(moves) != 0 {
		t.Errorf("deadlock board reported %d moves: %+v", len(moves), moves)
	}
}

func TestFindValidMovesCenterBoard(t *testing.T) {
	tiles := centerMoveBoard()
	moves := FindValidMoves(tiles, 3)
	if len(moves) != 4 {
		t.Fatalf("expected 4 valid moves, got %d: %+v", len(moves), moves)
	}

	// Every candidate involves the center leaf
	center := tileIDAt(tiles, 1, 1)
	for _, m := range moves {
		if m.A.ID != center && m.B.ID != center {
			t.Errorf("move %+v does not involve the center tile", m)
		}
	}

	// The top-to-center swap must be among them
	top := tileIDAt(tiles, 1, 0)
	found := false
	for _, m := range moves {
		if (m.A.ID == top && m.B.ID == center) || (m.A.ID == center && m.B.ID == top) {
			found = true
		}
	}
	if !found {
		t.Error("expected the (1,0)-(1,1) swap among valid moves")
	}
}

func TestFindValidMovesReportsPairsOnce(t *testing.T) {
	tiles := centerMoveBoard()
	moves := FindValidMoves(tiles, 3)

	type pair struct{ a, b int }
	seen := make(map[pair]struct{})
	for _, m := range moves {
		p := pair{m.A.ID, m.B.ID}
		if p.a > p.b {
			p.a, p.b = p.b, p.a
		}
		if _, dup := seen[p]; dup {
			t.Errorf("pair (%d,%d) reported twice", p.a, p.b)
		}
		seen[p] = struct{}{}
	}
}

func TestSwapTiles(t *testing.T) {
	tiles := tilesFromRows("ED")
	a, b := tileIDAt(tiles, 0, 0), tileIDAt(tiles, 1, 0)

	out := SwapTiles(tiles, a, b)

	if tileIDAt(out, 0, 0) != b || tileIDAt(out, 1, 0) != a {
		t.Error("swap did not exchange coordinates")
	}
	if tileIDAt(tiles, 0, 0) != a {
		t.Error("SwapTiles mutated its input")
	}
}

func TestSwapTilesUnknownID(t *testing.T) {
	tiles := tilesFromRows("ED")
	out := SwapTiles(tiles, tiles[0].ID, 999)

	for i := range tiles {
		if out[i] != tiles[i] {
			t.Errorf("swap with unknown id changed tile %d", tiles[i].ID)
		}
	}
}

func TestHasNoMoves(t *testing.T) {
	if !HasNoMoves(deadlockBoard(), 3) {
		t.Error("deadlock board should report no moves")
	}
	if HasNoMoves(centerMoveBoard(), 3) {
		t.Error("board with valid moves should not report deadlock")
	}
}

func TestHasNoMovesSparseBoard(t *testing.T) {
	// 7 tiles is below the deadlock threshold; transient boards
	// mid-resolution must never raise the stuck signal
	tiles := tilesFromRows(
		"EDL.",
		"DLE.",
		"L...",
	)
	if len(tiles) >= MinTilesForDeadlock {
		t.Fatalf("fixture has %d tiles, threshold is %d", len(tiles), MinTilesForDeadlock)
	}
	if HasNoMoves(tiles, 4) {
		t.Error("sparse board should not report deadlock")
	}
}

func TestHasNoMovesWithClearableRun(t *testing.T) {
	// An existing run means the board is not stuck even with no swap moves
	tiles := tilesFromRows(
		"EEE",
		"DLD",
		"LDL",
	)
	if HasNoMoves(tiles, 3) {
		t.Error("board with a clearable run should not report deadlock")
	}
}

func TestShuffleTilesInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	tiles := tilesFromRows(
		"EDLB",
		"DLBE",
		"LBED",
		"BEDL",
	)

	res := ShuffleTiles(tiles, 4, rng)
	if !res.OK {
		t.Fatal("shuffle of a mixed 4x4 board should succeed within the retry budget")
	}

	// Ids and positions are untouched; only types move
	if len(res.Tiles) != len(tiles) {
		t.Fatalf("tile count changed: %d -> %d", len(tiles), len(res.Tiles))
	}
	for i := range tiles {
		if res.Tiles[i].ID != tiles[i].ID || res.Tiles[i].X != tiles[i].X || res.Tiles[i].Y != tiles[i].Y {
			t.Errorf("tile %d moved or changed identity", tiles[i].ID)
		}
	}

	// Type multiset is preserved
	count := func(ts []Tile) map[TileType]int {
		m := make(map[TileType]int)
		for _, tile := range ts {
			m[tile.Type]++
		}
		return m
	}
	before, after := count(tiles), count(res.Tiles)
	for tt, n := range before {
		if after[tt] != n {
			t.Errorf("type %s count changed: %d -> %d", tt, n, after[tt])
		}
	}

	if got := FindAllMatches(res.Tiles, 4); len(got) != 0 {
		t.Errorf("shuffled board has %d pre-existing matches", len(got))
	}
	if got := FindValidMoves(res.Tiles, 4); len(got) == 0 {
		t.Error("shuffled board has no valid move")
	}
}

func TestShuffleTilesExhaustion(t *testing.T) {
	rng := rand.New(rand.NewSource(10))

	// A uniform board cannot be fixed by any type permutation
	tiles := tilesFromRows(
		"EEE",
		"EEE",
		"EEE",
	)
	res := ShuffleTiles(tiles, 3, rng)
	if res.OK {
		t.Error("uniform board shuffle should report best-effort")
	}
	if len(res.Tiles) != 9 {
		t.Errorf("best-effort result lost tiles: %d", len(res.Tiles))
	}
}

func TestHint(t *testing.T) {
	if h := Hint(deadlockBoard(), 3); h != nil {
		t.Errorf("deadlock board should yield no hint, got %+v", h)
	}

	tiles := centerMoveBoard()
	h := Hint(tiles, 3)
	if h == nil {
		t.Fatal("expected a hint on a board with moves")
	}
	dx, dy := h.A.X-h.B.X, h.A.Y-h.B.Y
	if dx*dx+dy*dy != 1 {
		t.Errorf("hint pair is not adjacent: %+v", h)
	}
	if !swapProducesMatch(tiles, h.A.ID, h.B.ID, 3) {
		t.Errorf("hint pair does not produce a match: %+v", h)
	}
}
