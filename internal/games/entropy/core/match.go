package core

import "sort"

// Shape classifies the geometry of a matched group.
type Shape string

const (
	ShapeSquare  Shape = "square"  // 2x2 block of 4
	ShapeL       Shape = "L"       // Five-cell right-angle bend
	ShapeLine    Shape = "line"    // Straight run of 3+
	ShapeCluster Shape = "cluster" // Any other connectivity of 3+
)

// Orientation distinguishes horizontal from vertical lines.
type Orientation string

const (
	OrientationNone       Orientation = ""
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Pattern is the geometric metadata of a match, used for scoring and UX.
type Pattern struct {
	Shape       Shape
	Orientation Orientation
	Size        int
}

// Match is a transient detection result: the ids of one connected group of
// 3+ same-type tiles plus its shape classification. Matches are produced
// fresh on every detection pass and never persisted.
type Match struct {
	IDs     []int
	Pattern Pattern
}

// MinMatchSize is the smallest connected group that counts as a match.
const MinMatchSize = 3

// FindAllMatches finds all connected groups of 3+ same-type tiles using
// 4-directional flood fill. Each tile belongs to at most one returned
// match: the visited set partitions matched tiles disjointly, which a
// naive per-line scan would not (tiles at line intersections would be
// reported twice). Side-effect free.
func FindAllMatches(tiles []Tile, gridSize int) []Match {
	lookup := byCoord(tiles)
	visited := make(map[int]struct{}, len(tiles))

	var matches []Match
	for i := range tiles {
		if _, done := visited[tiles[i].ID]; done {
			continue
		}
		group := floodFill(&tiles[i], lookup, visited)
		if len(group) >= MinMatchSize {
			matches = append(matches, newMatch(group))
		}
	}
	return matches
}

// FindMatchingGroup runs the same flood fill seeded from a single tile,
// for reacting to a specific swapped or tapped tile without rescanning the
// whole board. Returns nil if the tile is unknown or its connected group
// is smaller than MinMatchSize.
func FindMatchingGroup(tiles []Tile, tileID, gridSize int) *Match {
	ids := byID(tiles)
	seed, ok := ids[tileID]
	if !ok {
		return nil
	}

	lookup := byCoord(tiles)
	visited := make(map[int]struct{})
	group := floodFill(seed, lookup, visited)
	if len(group) < MinMatchSize {
		return nil
	}

	m := newMatch(group)
	return &m
}

// FindClearableTiles is the legacy straight-line detector used by
// tap-to-clear modes: any tile that sits in a horizontal or vertical run
// of 3+ same-type tiles is clearable. It intentionally ignores square/L
// connectivity for a more permissive "anything in a row" rule and is not
// interchangeable with FindAllMatches.
func FindClearableTiles(tiles []Tile, gridSize int) map[int]struct{} {
	lookup := byCoord(tiles)
	clearable := make(map[int]struct{})

	mark := func(run []*Tile) {
		if len(run) >= MinMatchSize {
			for _, t := range run {
				clearable[t.ID] = struct{}{}
			}
		}
	}

	// Horizontal runs
	for y := 0; y < gridSize; y++ {
		var run []*Tile
		for x := 0; x < gridSize; x++ {
			t := lookup[C(x, y)]
			if t != nil && len(run) > 0 && run[len(run)-1].Type == t.Type {
				run = append(run, t)
				continue
			}
			mark(run)
			run = run[:0]
			if t != nil {
				run = append(run, t)
			}
		}
		mark(run)
	}

	// Vertical runs
	for x := 0; x < gridSize; x++ {
		var run []*Tile
		for y := 0; y < gridSize; y++ {
			t := lookup[C(x, y)]
			if t != nil && len(run) > 0 && run[len(run)-1].Type == t.Type {
				run = append(run, t)
				continue
			}
			mark(run)
			run = run[:0]
			if t != nil {
				run = append(run, t)
			}
		}
		mark(run)
	}

	return clearable
}

// floodFill collects the 4-connected same-type component containing seed,
// marking every visited tile so callers never double-count.
func floodFill(seed *Tile, lookup map[Coord]*Tile, visited map[int]struct{}) []*Tile {
	stack := []*Tile{seed}
	visited[seed.ID] = struct{}{}
	group := []*Tile{seed}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, d := range neighbors4 {
			n := lookup[C(t.X+d.X, t.Y+d.Y)]
			if n == nil || n.Type != t.Type {
				continue
			}
			if _, seen := visited[n.ID]; seen {
				continue
			}
			visited[n.ID] = struct{}{}
			stack = append(stack, n)
			group = append(group, n)
		}
	}

	return group
}

// newMatch builds a Match with sorted ids and a shape classification.
func newMatch(group []*Tile) Match {
	ids := make([]int, len(group))
	coords := make([]Coord, len(group))
	for i, t := range group {
		ids[i] = t.ID
		coords[i] = C(t.X, t.Y)
	}
	sort.Ints(ids)

	return Match{
		IDs:     ids,
		Pattern: classify(coords),
	}
}

// classify resolves the group's shape in fixed priority order
// square -> L -> line -> cluster, so a group matching several shape
// definitions always gets the same, highest-priority label.
func classify(cells []Coord) Pattern {
	if isSquare(cells) {
		return Pattern{Shape: ShapeSquare, Size: len(cells)}
	}
	if isL(cells) {
		return Pattern{Shape: ShapeL, Size: len(cells)}
	}
	if orient, ok := lineOrientation(cells); ok {
		return Pattern{Shape: ShapeLine, Orientation: orient, Size: len(cells)}
	}
	return Pattern{Shape: ShapeCluster, Size: len(cells)}
}

// isSquare reports whether the cells form exactly a 2x2 block.
func isSquare(cells []Coord) bool {
	if len(cells) != 4 {
		return false
	}
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}

	occupied := make(map[Coord]struct{}, 4)
	for _, c := range cells {
		occupied[c] = struct{}{}
	}
	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			if _, ok := occupied[C(minX+dx, minY+dy)]; !ok {
				return false
			}
		}
	}
	return true
}

// isL reports whether five cells form a right-angle bend: a horizontal arm
// and a vertical arm of 3 cells each sharing one corner cell. The corner
// must be an endpoint of both arms, which rules out T and plus shapes.
func isL(cells []Coord) bool {
	if len(cells) != 5 {
		return false
	}

	occupied := make(map[Coord]struct{}, 5)
	for _, c := range cells {
		occupied[c] = struct{}{}
	}

	for _, corner := range cells {
		for _, dx := range [2]int{1, -1} {
			for _, dy := range [2]int{1, -1} {
				if hasArm(occupied, corner, dx, 0) && hasArm(occupied, corner, 0, dy) {
					return true
				}
			}
		}
	}
	return false
}

// hasArm reports whether corner plus two further steps in (dx,dy) are all
// part of the group.
func hasArm(occupied map[Coord]struct{}, corner Coord, dx, dy int) bool {
	for i := 1; i <= 2; i++ {
		if _, ok := occupied[corner.Add(dx*i, dy*i)]; !ok {
			return false
		}
	}
	return true
}

// lineOrientation reports whether all cells share a row or a column.
// Connectivity is already guaranteed by the flood fill, so a shared axis
// means a contiguous straight run.
func lineOrientation(cells []Coord) (Orientation, bool) {
	sameRow, sameCol := true, true
	for _, c := range cells[1:] {
		if c.Y != cells[0].Y {
			sameRow = false
		}
		if c.X != cells[0].X {
			sameCol = false
		}
	}
	switch {
	case sameRow:
		return OrientationHorizontal, true
	case sameCol:
		return OrientationVertical, true
	default:
		return OrientationNone, false
	}
}
