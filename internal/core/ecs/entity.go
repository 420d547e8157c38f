package ecs

import (
	"crypto/rand"
	"encoding/hex"
)

// Entity is an identifier plus an exclusively-owned set of components keyed
// by type tag. Entities are created and evicted only through a Store; holding
// a pointer past Store.Remove leaves a deactivated husk the Store no longer
// knows about.
type Entity struct {
	ID         string
	Components map[string]Component
	Active     bool
}

func newEntity(id string) *Entity {
	return &Entity{
		ID:         id,
		Components: make(map[string]Component, 4),
		Active:     true,
	}
}

// Has reports whether the entity holds a component of the given type.
func (e *Entity) Has(tag string) bool {
	_, ok := e.Components[tag]
	return ok
}

// Get returns the component stored under tag, or nil.
func (e *Entity) Get(tag string) Component {
	return e.Components[tag]
}

func (e *Entity) hasAll(tags []string) bool {
	for _, t := range tags {
		if !e.Has(t) {
			return false
		}
	}
	return true
}

func (e *Entity) hasAny(tags []string) bool {
	for _, t := range tags {
		if e.Has(t) {
			return true
		}
	}
	return false
}

// GenerateID returns a random 16-character hex id. Collision resistance is
// the only contract; callers may supply their own ids via CreateWithID.
func GenerateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
