package event

import "github.com/parksim/server/internal/grid"

// PlacementCommitted fires after a footprint is validated and its tiles are
// claimed for the entity.
type PlacementCommitted struct {
	EntityID string
	Pos      grid.Position
	Size     grid.Size
}

// EntityRemoved fires after a queued removal is flushed and the entity is
// gone from the store.
type EntityRemoved struct {
	EntityID string
}

// TileChanged fires when terrain or flags of a tile change outside of
// placement (scenario edits, demolition).
type TileChanged struct {
	Pos grid.Position
}
