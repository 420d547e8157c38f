package grid

import "fmt"

// Snapshot is the flat serialized form of a grid: dimensions plus the tiles
// as a row-major 2D array.
type Snapshot struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Tiles  [][]Tile `json:"tiles"`
}

// Snapshot returns a deep copy of the grid's contents in serialized shape.
func (g *Grid) Snapshot() Snapshot {
	tiles := make([][]Tile, g.height)
	for y := range tiles {
		row := make([]Tile, g.width)
		copy(row, g.tiles[y])
		tiles[y] = row
	}
	return Snapshot{Width: g.width, Height: g.height, Tiles: tiles}
}

// FromSnapshot reconstructs a grid whose tile contents equal the snapshot
// field for field. Snapshots whose tile array does not match the declared
// dimensions are rejected.
func FromSnapshot(s Snapshot) (*Grid, error) {
	g, err := New(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	if len(s.Tiles) != s.Height {
		return nil, fmt.Errorf("snapshot declares height %d but has %d rows", s.Height, len(s.Tiles))
	}
	for y, row := range s.Tiles {
		if len(row) != s.Width {
			return nil, fmt.Errorf("snapshot row %d has %d tiles, want %d", y, len(row), s.Width)
		}
		copy(g.tiles[y], row)
	}
	return g, nil
}
