package world

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/parksim/server/internal/core/ecs"
	"github.com/parksim/server/internal/core/event"
	"github.com/parksim/server/internal/grid"
)

// snapshotFile is the flat serialized session: tick counter, the grid in its
// serialized shape, and every entity as {id, components, active}.
type snapshotFile struct {
	Tick     uint64         `json:"tick"`
	Grid     grid.Snapshot  `json:"grid"`
	Entities []entityRecord `json:"entities"`
}

type entityRecord struct {
	ID         string                     `json:"id"`
	Components map[string]json.RawMessage `json:"components"`
	Active     bool                       `json:"active"`
}

// Snapshot serializes the whole session. Entities are ordered by id so the
// same state always yields the same bytes.
func (s *State) Snapshot() ([]byte, error) {
	snap := snapshotFile{
		Tick: s.Tick,
		Grid: s.Grid.Snapshot(),
	}
	entities := s.Entities.All(true)
	sort.Slice(entities, func(i, j int) bool { return entities[i].ID < entities[j].ID })
	for _, e := range entities {
		rec := entityRecord{
			ID:         e.ID,
			Active:     e.Active,
			Components: make(map[string]json.RawMessage, len(e.Components)),
		}
		for tag, c := range e.Components {
			raw, err := json.Marshal(c)
			if err != nil {
				return nil, fmt.Errorf("marshal %s component of entity %s: %w", tag, e.ID, err)
			}
			rec.Components[tag] = raw
		}
		snap.Entities = append(snap.Entities, rec)
	}
	return json.Marshal(snap)
}

// Restore rebuilds a session from snapshot bytes. Component payloads decode
// through the registered component factories; an unknown tag is an error
// rather than silent data loss.
func Restore(data []byte) (*State, error) {
	var snap snapshotFile
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	g, err := grid.FromSnapshot(snap.Grid)
	if err != nil {
		return nil, fmt.Errorf("restore grid: %w", err)
	}
	st := &State{
		Entities:    ecs.NewStore(),
		Grid:        g,
		Bus:         event.NewBus(),
		Tick:        snap.Tick,
		removeQueue: make([]string, 0, 16),
	}
	for _, rec := range snap.Entities {
		e, err := st.Entities.CreateWithID(rec.ID)
		if err != nil {
			return nil, fmt.Errorf("restore entity: %w", err)
		}
		for tag, raw := range rec.Components {
			c := ecs.NewByTag(tag)
			if c == nil {
				return nil, fmt.Errorf("entity %s: unknown component type %q", rec.ID, tag)
			}
			if err := json.Unmarshal(raw, c); err != nil {
				return nil, fmt.Errorf("entity %s: decode %s component: %w", rec.ID, tag, err)
			}
			if err := st.Entities.AddComponent(rec.ID, c); err != nil {
				return nil, fmt.Errorf("restore entity %s: %w", rec.ID, err)
			}
		}
		e.Active = rec.Active
	}
	// Deactivated entities were indexed during AddComponent; rebuild once so
	// the index only names active entities.
	st.Entities.RebuildIndex()
	return st, nil
}
