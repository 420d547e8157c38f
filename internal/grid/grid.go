package grid

import "fmt"

// TileType identifies the terrain of a tile. The set is open-ended:
// data-driven terrain tables may introduce further types.
type TileType string

const (
	Grass    TileType = "grass"
	Path     TileType = "path"
	Water    TileType = "water"
	Building TileType = "building"
)

// Position is a tile coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a rectangle footprint in tiles.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Tile is one cell of the grid. OccupiedBy holds the id of the entity
// claiming the cell; empty means unoccupied. It is a plain identifier with
// no implied ownership — dereferences go through the entity store and must
// tolerate the id no longer resolving.
type Tile struct {
	Type       TileType `json:"type"`
	OccupiedBy string   `json:"occupiedBy,omitempty"`
	Walkable   bool     `json:"walkable"`
	Buildable  bool     `json:"buildable"`
}

// Patch is a partial tile update. Nil fields leave the tile's field untouched.
type Patch struct {
	Type       *TileType
	OccupiedBy *string
	Walkable   *bool
	Buildable  *bool
}

// Grid is a fixed-size 2D tile array. Dimensions are set at construction;
// every coordinate argument is bounds-checked before tile access.
type Grid struct {
	width  int
	height int
	tiles  [][]Tile // [y][x]
}

// New returns a grid of the given dimensions with every tile initialized to
// walkable, buildable grass.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		row := make([]Tile, width)
		for x := range row {
			row[x] = Tile{Type: Grass, Walkable: true, Buildable: true}
		}
		tiles[y] = row
	}
	return &Grid{width: width, height: height, tiles: tiles}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// InBounds reports whether the position lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Tile returns a copy of the tile at p, or false if out of bounds.
func (g *Grid) Tile(p Position) (Tile, bool) {
	if !g.InBounds(p) {
		return Tile{}, false
	}
	return g.tiles[p.Y][p.X], true
}

// SetTile merges the patch into the tile at p. Returns false if out of
// bounds, true otherwise.
func (g *Grid) SetTile(p Position, patch Patch) bool {
	if !g.InBounds(p) {
		return false
	}
	t := &g.tiles[p.Y][p.X]
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.OccupiedBy != nil {
		t.OccupiedBy = *patch.OccupiedBy
	}
	if patch.Walkable != nil {
		t.Walkable = *patch.Walkable
	}
	if patch.Buildable != nil {
		t.Buildable = *patch.Buildable
	}
	return true
}

// IsWalkable reports the tile's walkable flag; out of bounds reads as false,
// not as an error — spatial queries routinely probe boundary cells.
func (g *Grid) IsWalkable(p Position) bool {
	t, ok := g.Tile(p)
	return ok && t.Walkable
}

// IsBuildable reports whether the tile can take a placement: buildable flag
// set and no occupant. Out of bounds reads as false.
func (g *Grid) IsBuildable(p Position) bool {
	t, ok := g.Tile(p)
	return ok && t.Buildable && t.OccupiedBy == ""
}

// IsAreaAvailable reports whether every tile of the size.Width×size.Height
// rectangle anchored at pos is in bounds and buildable.
func (g *Grid) IsAreaAvailable(pos Position, size Size) bool {
	for y := pos.Y; y < pos.Y+size.Height; y++ {
		for x := pos.X; x < pos.X+size.Width; x++ {
			if !g.IsBuildable(Position{X: x, Y: y}) {
				return false
			}
		}
	}
	return true
}

// OccupyArea claims every tile of the rectangle for entityID. The commit is
// all-or-nothing: if any tile is unavailable, no tile changes and the call
// returns false.
func (g *Grid) OccupyArea(pos Position, size Size, entityID string) bool {
	if !g.IsAreaAvailable(pos, size) {
		return false
	}
	for y := pos.Y; y < pos.Y+size.Height; y++ {
		for x := pos.X; x < pos.X+size.Width; x++ {
			g.tiles[y][x].OccupiedBy = entityID
		}
	}
	return true
}

// FreeArea clears the occupant of every in-bounds tile of the rectangle.
// Out-of-bounds cells are skipped silently; freeing is idempotent.
func (g *Grid) FreeArea(pos Position, size Size) {
	for y := pos.Y; y < pos.Y+size.Height; y++ {
		for x := pos.X; x < pos.X+size.Width; x++ {
			if p := (Position{X: x, Y: y}); g.InBounds(p) {
				g.tiles[y][x].OccupiedBy = ""
			}
		}
	}
}

// TilesInArea returns copies of the in-bounds tiles of the rectangle, row by
// row.
func (g *Grid) TilesInArea(pos Position, size Size) []Tile {
	var out []Tile
	for y := pos.Y; y < pos.Y+size.Height; y++ {
		for x := pos.X; x < pos.X+size.Width; x++ {
			if t, ok := g.Tile(Position{X: x, Y: y}); ok {
				out = append(out, t)
			}
		}
	}
	return out
}

// 4-directional neighbor offsets, N/E/S/W order.
var neighborOffsets = [4]Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// NeighborPositions returns the in-bounds 4-directional neighbors of p in
// N/E/S/W order, silently omitting out-of-bounds cells.
func (g *Grid) NeighborPositions(p Position) []Position {
	out := make([]Position, 0, 4)
	for _, d := range neighborOffsets {
		n := Position{X: p.X + d.X, Y: p.Y + d.Y}
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Neighbors returns copies of the in-bounds 4-directional neighbor tiles of
// p in N/E/S/W order.
func (g *Grid) Neighbors(p Position) []Tile {
	positions := g.NeighborPositions(p)
	out := make([]Tile, 0, len(positions))
	for _, n := range positions {
		out = append(out, g.tiles[n.Y][n.X])
	}
	return out
}

// FindByType scans the whole grid for tiles of the given type, row-major.
// Grids are bounded and this is not a hot path.
func (g *Grid) FindByType(t TileType) []Position {
	var out []Position
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y][x].Type == t {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// FindByEntity scans the whole grid for tiles occupied by the entity,
// row-major.
func (g *Grid) FindByEntity(entityID string) []Position {
	var out []Position
	if entityID == "" {
		return out
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y][x].OccupiedBy == entityID {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([][]Tile, g.height)
	for y := range tiles {
		row := make([]Tile, g.width)
		copy(row, g.tiles[y])
		tiles[y] = row
	}
	return &Grid{width: g.width, height: g.height, tiles: tiles}
}
