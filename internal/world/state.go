package world

import (
	"github.com/parksim/server/internal/component"
	"github.com/parksim/server/internal/core/ecs"
	"github.com/parksim/server/internal/core/event"
	"github.com/parksim/server/internal/grid"
)

// State is the single mutable simulation session: the entity store, the
// spatial grid, the event bus, and the tick counter. Constructed once per
// session (or restored wholesale from a snapshot) and accessed only from the
// loop goroutine — no locks.
type State struct {
	Entities *ecs.Store
	Grid     *grid.Grid
	Bus      *event.Bus
	Tick     uint64

	removeQueue []string
}

func NewState(width, height int) (*State, error) {
	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	return &State{
		Entities:    ecs.NewStore(),
		Grid:        g,
		Bus:         event.NewBus(),
		removeQueue: make([]string, 0, 16),
	}, nil
}

// PlaceBuilding validates the footprint, creates the building entity, and
// claims the tiles for it as one step. Returns false with no mutation when
// the placement is rejected.
func (s *State) PlaceBuilding(template string, pos grid.Position, size grid.Size) (*ecs.Entity, bool) {
	if !grid.IsPlacementValid(s.Grid, pos, size) {
		return nil, false
	}
	e := s.Entities.Create()
	// The entity was just created, so these cannot fail.
	_ = s.Entities.AddComponent(e.ID, &component.Position{X: pos.X, Y: pos.Y})
	_ = s.Entities.AddComponent(e.ID, &component.Building{Template: template, Width: size.Width, Height: size.Height})
	s.Grid.OccupyArea(pos, size, e.ID)
	event.Emit(s.Bus, event.PlacementCommitted{EntityID: e.ID, Pos: pos, Size: size})
	return e, true
}

// SpawnAnimal creates an animal entity at the position. Animals stand on
// tiles, they do not occupy them.
func (s *State) SpawnAnimal(species string, pos grid.Position) (*ecs.Entity, bool) {
	if !s.Grid.InBounds(pos) {
		return nil, false
	}
	e := s.Entities.Create()
	_ = s.Entities.AddComponent(e.ID, &component.Position{X: pos.X, Y: pos.Y})
	_ = s.Entities.AddComponent(e.ID, &component.Animal{Species: species})
	return e, true
}

// SpawnVisitor creates a visitor entity at the position.
func (s *State) SpawnVisitor(pos grid.Position) (*ecs.Entity, bool) {
	if !s.Grid.InBounds(pos) {
		return nil, false
	}
	e := s.Entities.Create()
	_ = s.Entities.AddComponent(e.ID, &component.Position{X: pos.X, Y: pos.Y})
	_ = s.Entities.AddComponent(e.ID, &component.Visitor{Happiness: 50, Money: 100})
	return e, true
}

// Demolish frees every tile the entity occupies and queues the entity for
// removal at end of tick. Returns false if the id is unknown.
func (s *State) Demolish(id string) bool {
	if _, ok := s.Entities.Get(id); !ok {
		return false
	}
	s.freeTilesOf(id)
	s.MarkForRemoval(id)
	return true
}

// MarkForRemoval queues an entity for end-of-tick removal. Queuing an id
// twice, or an id that disappears before the flush, is harmless.
func (s *State) MarkForRemoval(id string) {
	s.removeQueue = append(s.removeQueue, id)
}

// FlushRemovals removes all queued entities and clears any tiles still
// naming them. Called by CleanupSystem at the end of each tick. Returns the
// number of entities actually removed.
func (s *State) FlushRemovals() int {
	n := 0
	for _, id := range s.removeQueue {
		s.freeTilesOf(id)
		if s.Entities.Remove(id) {
			n++
			event.Emit(s.Bus, event.EntityRemoved{EntityID: id})
		}
	}
	s.removeQueue = s.removeQueue[:0]
	return n
}

func (s *State) freeTilesOf(id string) {
	for _, p := range s.Grid.FindByEntity(id) {
		s.Grid.FreeArea(p, grid.Size{Width: 1, Height: 1})
	}
}
