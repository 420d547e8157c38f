package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID means a caller supplied an id that already exists.
	ErrDuplicateID = errors.New("entity id already exists")
	// ErrEntityNotFound means a mutation referenced an unknown entity.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrInactiveEntity means a mutation used a handle past its lifetime.
	// This is a caller logic bug, not a recoverable runtime condition.
	ErrInactiveEntity = errors.New("entity is inactive")
)

// Store owns the full set of entities and the component index. Single
// goroutine access only (loop thread) — no internal locking.
type Store struct {
	entities map[string]*Entity
	index    *Index
}

func NewStore() *Store {
	return &Store{
		entities: make(map[string]*Entity, 256),
		index:    NewIndex(),
	}
}

// Create mints a new active entity with a generated id and an empty
// component map. The index is untouched.
func (s *Store) Create() *Entity {
	id := GenerateID()
	for s.entities[id] != nil {
		id = GenerateID()
	}
	e := newEntity(id)
	s.entities[id] = e
	return e
}

// CreateWithID creates an entity under a caller-supplied id. Supplying an id
// already present is a caller error.
func (s *Store) CreateWithID(id string) (*Entity, error) {
	if _, ok := s.entities[id]; ok {
		return nil, fmt.Errorf("create entity %q: %w", id, ErrDuplicateID)
	}
	e := newEntity(id)
	s.entities[id] = e
	return e, nil
}

// Get returns the entity for id. Does not filter by active state.
func (s *Store) Get(id string) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// All returns every entity, or only the active ones.
func (s *Store) All(includeInactive bool) []*Entity {
	out := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if includeInactive || e.Active {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entities held, active or not.
func (s *Store) Len() int {
	return len(s.entities)
}

// Remove unregisters every component type the entity holds, deactivates it,
// and evicts it from the store as one logical step. Returns false if the id
// is unknown.
func (s *Store) Remove(id string) bool {
	e, ok := s.entities[id]
	if !ok {
		return false
	}
	for tag := range e.Components {
		s.index.Unregister(id, tag)
	}
	e.Active = false
	delete(s.entities, id)
	return true
}

// AddComponent inserts the component into the entity, replacing any existing
// component of the same type, and registers it in the index.
func (s *Store) AddComponent(id string, c Component) error {
	e, ok := s.entities[id]
	if !ok {
		return fmt.Errorf("add %s to %q: %w", c.Type(), id, ErrEntityNotFound)
	}
	if !e.Active {
		return fmt.Errorf("add %s to %q: %w", c.Type(), id, ErrInactiveEntity)
	}
	e.Components[c.Type()] = c
	s.index.Register(id, c.Type())
	return nil
}

// RemoveComponent removes the component of the given type from the entity
// and unregisters it. Returns false if the entity is unknown, inactive, or
// lacks the component.
func (s *Store) RemoveComponent(id, tag string) bool {
	e, ok := s.entities[id]
	if !ok || !e.Active || !e.Has(tag) {
		return false
	}
	delete(e.Components, tag)
	s.index.Unregister(id, tag)
	return true
}

// Clear deactivates every entity, then empties the store and the index.
func (s *Store) Clear() {
	for _, e := range s.entities {
		e.Active = false
	}
	s.entities = make(map[string]*Entity, 256)
	s.index = NewIndex()
}

// Index exposes the low-level component index.
func (s *Store) Index() *Index {
	return s.index
}
