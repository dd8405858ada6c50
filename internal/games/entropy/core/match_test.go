package core

import "testing"

func TestFindAllMatchesEmptyBoard(t *testing.T) {
	if got := FindAllMatches(nil, 6); len(got) != 0 {
		t.Errorf("expected no matches on empty board, got %d", len(got))
	}
}

func TestFindAllMatchesSingleTile(t *testing.T) {
	tiles := []Tile{{ID: 0, X: 2, Y: 2, Type: TileEmber}}
	if got := FindAllMatches(tiles, 6); len(got) != 0 {
		t.Errorf("single tile should never match, got %d matches", len(got))
	}
}

func TestFindAllMatchesDiagonalDoesNotConnect(t *testing.T) {
	// Three embers connected only diagonally
	tiles := tilesFromRows(
		"E..",
		".E.",
		"..E",
	)
	if got := FindAllMatches(tiles, 3); len(got) != 0 {
		t.Errorf("diagonal adjacency should not connect, got %d matches", len(got))
	}
}

func TestFindAllMatchesSquare(t *testing.T) {
	tiles := tilesFromRows(
		"EE..",
		"EE..",
	)
	matches := FindAllMatches(tiles, 4)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Pattern.Shape != ShapeSquare {
		t.Errorf("shape = %q, expected square", m.Pattern.Shape)
	}
	if m.Pattern.Size != 4 || len(m.IDs) != 4 {
		t.Errorf("size = %d (%d ids), expected 4", m.Pattern.Size, len(m.IDs))
	}
}

func TestFindAllMatchesHorizontalLine(t *testing.T) {
	// Run of exactly 5 embers; surrounding tiles differ
	tiles := tilesFromRows(
		"EEEEE.",
		"DLDLD.",
	)
	matches := FindAllMatches(tiles, 6)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Pattern.Shape != ShapeLine {
		t.Errorf("shape = %q, expected line", m.Pattern.Shape)
	}
	if m.Pattern.Orientation != OrientationHorizontal {
		t.Errorf("orientation = %q, expected horizontal", m.Pattern.Orientation)
	}
	if m.Pattern.Size != 5 {
		t.Errorf("size = %d, expected 5", m.Pattern.Size)
	}
}

func TestFindAllMatchesVerticalLine(t *testing.T) {
	tiles := tilesFromRows(
		"D.",
		"D.",
		"D.",
	)
	matches := FindAllMatches(tiles, 3)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matches))
	}
	if matches[0].Pattern.Shape != ShapeLine || matches[0].Pattern.Orientation != OrientationVertical {
		t.Errorf("got %+v, expected vertical line", matches[0].Pattern)
	}
}

func TestFindAllMatchesLShape(t *testing.T) {
	tiles := tilesFromRows(
		"E..",
		"E..",
		"EEE",
	)
	matches := FindAllMatches(tiles, 3)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matches))
	}
	if matches[0].Pattern.Shape != ShapeL {
		t.Errorf("shape = %q, expected L", matches[0].Pattern.Shape)
	}
	if matches[0].Pattern.Size != 5 {
		t.Errorf("size = %d, expected 5", matches[0].Pattern.Size)
	}
}

func TestFindAllMatchesTShapeIsCluster(t *testing.T) {
	// A T has its bend mid-arm, not at an endpoint, so it must not be an L
	tiles := tilesFromRows(
		"EEE",
		".E.",
		".E.",
	)
	matches := FindAllMatches(tiles, 3)
	if len(matches) != 1 {
		t.Fatalf("expected exactly 1 match, got %d", len(matches))
	}
	if matches[0].Pattern.Shape != ShapeCluster {
		t.Errorf("shape = %q, expected cluster for T", matches[0].Pattern.Shape)
	}
}

func TestFindAllMatchesDisjointPartition(t *testing.T) {
	// Two separate groups plus noise; no id may appear in two matches
	tiles := tilesFromRows(
		"EEE.D",
		"L.B.D",
		"L.B.D",
		"L.B..",
	)
	matches := FindAllMatches(tiles, 5)
	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(matches))
	}

	seen := make(map[int]struct{})
	for _, m := range matches {
		for _, id := range m.IDs {
			if _, dup := seen[id]; dup {
				t.Fatalf("tile id %d appears in two matches", id)
			}
			seen[id] = struct{}{}
		}
	}
}

func TestFindMatchingGroupSeeded(t *testing.T) {
	tiles := tilesFromRows(
		"EEED",
		"DLBL",
	)
	seed := tileIDAt(tiles, 1, 0)

	m := FindMatchingGroup(tiles, seed, 4)
	if m == nil {
		t.Fatal("expected a match seeded from the run")
	}
	if len(m.IDs) != 3 || !containsID(m.IDs, seed) {
		t.Errorf("group ids = %v, expected the 3-run including seed %d", m.IDs, seed)
	}

	// Seeding from an isolated tile yields nil
	lone := tileIDAt(tiles, 3, 0)
	if got := FindMatchingGroup(tiles, lone, 4); got != nil {
		t.Errorf("expected nil for isolated tile, got %+v", got)
	}

	// Unknown id yields nil
	if got := FindMatchingGroup(tiles, 999, 4); got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestFindClearableTilesLinesOnly(t *testing.T) {
	// A square is clearable to the flood detector but not to the legacy
	// line detector
	square := tilesFromRows(
		"EE",
		"EE",
	)
	if got := FindClearableTiles(square, 4); len(got) != 0 {
		t.Errorf("line detector should ignore squares, got %d clearable", len(got))
	}

	run := tilesFromRows(
		"DDD.",
		"ELBE",
	)
	clearable := FindClearableTiles(run, 4)
	if len(clearable) != 3 {
		t.Fatalf("expected 3 clearable tiles, got %d", len(clearable))
	}
	for x := 0; x < 3; x++ {
		if _, ok := clearable[tileIDAt(run, x, 0)]; !ok {
			t.Errorf("tile at (%d,0) should be clearable", x)
		}
	}
}

func TestFindClearableTilesCrossCountedOnce(t *testing.T) {
	// A plus shape: both runs are clearable, the center only reported once
	tiles := tilesFromRows(
		".E.",
		"EEE",
		".E.",
	)
	clearable := FindClearableTiles(tiles, 3)
	if len(clearable) != 5 {
		t.Errorf("expected all 5 tiles clearable, got %d", len(clearable))
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		rows  []string
		shape Shape
	}{
		{"square beats cluster", []string{"EE", "EE"}, ShapeSquare},
		{"line of three", []string{"EEE"}, ShapeLine},
		{"L beats line", []string{"E..", "E..", "EEE"}, ShapeL},
		{"plus is cluster", []string{".E.", "EEE", ".E."}, ShapeCluster},
		{"long snake is cluster", []string{"EE.", ".EE"}, ShapeCluster},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			matches := FindAllMatches(tilesFromRows(tc.rows...), 4)
			if len(matches) != 1 {
				t.Fatalf("expected 1 match, got %d", len(matches))
			}
			if matches[0].Pattern.Shape != tc.shape {
				t.Errorf("shape = %q, expected %q", matches[0].Pattern.Shape, tc.shape)
			}
		})
	}
}
