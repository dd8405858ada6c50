package core

// Test helpers shared across the core test files.

// typeForRune maps the compact board notation used in tests to tile types.
// '.' marks an empty cell.
var typeForRune = map[rune]TileType{
	'E': TileEmber,
	'D': TileDrop,
	'L': TileLeaf,
	'B': TileBolt,
}

// tilesFromRows builds a tile set from row strings, assigning sequential
// ids in reading order.
func tilesFromRows(rows ...string) []Tile {
	var tiles []Tile
	id := 0
	for y, row := range rows {
		for x, r := range row {
			if r == '.' {
				continue
			}
			tiles = append(tiles, Tile{ID: id, X: x, Y: y, Type: typeForRune[r]})
			id++
		}
	}
	return tiles
}

// tileIDAt returns the id of the tile at (x,y), or -1 if the cell is empty.
func tileIDAt(tiles []Tile, x, y int) int {
	for _, t := range tiles {
		if t.X == x && t.Y == y {
			return t.ID
		}
	}
	return -1
}

// containsID reports whether ids contains id.
func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
