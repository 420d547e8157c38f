package ecs

// Filter is a composite membership query. Absent clauses impose no filter;
// an entirely empty filter matches every active entity. Clauses apply in
// order all → any → none.
type Filter struct {
	All  []string
	Any  []string
	None []string
}

// Violation describes one index inconsistency found by ValidateIndex.
type Violation struct {
	Tag      string
	EntityID string
	Reason   string
}

// With returns all active entities registered under the tag. Unknown tags
// yield an empty result, not an error.
func (s *Store) With(tag string) []*Entity {
	set := s.index.byType[tag]
	out := make([]*Entity, 0, len(set))
	for id := range set {
		if e, ok := s.entities[id]; ok && e.Active {
			out = append(out, e)
		}
	}
	return out
}

// WithAll returns active entities holding every given type. With zero types
// it returns every active entity. Candidates are seeded from the
// smallest-cardinality type set; the result is the same whichever set seeds
// the scan, only the traversal cost differs.
func (s *Store) WithAll(tags ...string) []*Entity {
	if len(tags) == 0 {
		return s.All(false)
	}
	seed := tags[0]
	for _, t := range tags[1:] {
		if len(s.index.byType[t]) < len(s.index.byType[seed]) {
			seed = t
		}
	}
	var out []*Entity
	for id := range s.index.byType[seed] {
		e, ok := s.entities[id]
		if ok && e.Active && e.hasAll(tags) {
			out = append(out, e)
		}
	}
	return out
}

// WithAny returns active entities holding at least one of the given types.
func (s *Store) WithAny(tags ...string) []*Entity {
	seen := make(map[string]struct{}, 16)
	var out []*Entity
	for _, tag := range tags {
		for id := range s.index.byType[tag] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if e, ok := s.entities[id]; ok && e.Active {
				out = append(out, e)
			}
		}
	}
	return out
}

// WithNone returns active entities holding none of the given types.
func (s *Store) WithNone(tags ...string) []*Entity {
	var out []*Entity
	for _, e := range s.entities {
		if e.Active && !e.hasAny(tags) {
			out = append(out, e)
		}
	}
	return out
}

// Query applies a composite filter.
func (s *Store) Query(f Filter) []*Entity {
	candidates := s.WithAll(f.All...)
	var out []*Entity
	for _, e := range candidates {
		if len(f.Any) > 0 && !e.hasAny(f.Any) {
			continue
		}
		if len(f.None) > 0 && e.hasAny(f.None) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// RebuildIndex discards the index and repopulates it from every active
// entity's component set. Used to recover from detected inconsistency.
func (s *Store) RebuildIndex() {
	ix := NewIndex()
	for id, e := range s.entities {
		if !e.Active {
			continue
		}
		for tag := range e.Components {
			ix.Register(id, tag)
		}
	}
	s.index = ix
}

// ValidateIndex checks the index against entity state in both directions and
// reports every violation found — it never stops at the first.
func (s *Store) ValidateIndex() (bool, []Violation) {
	var out []Violation

	// Every indexed id must name an active entity holding the component.
	for tag, set := range s.index.byType {
		for id := range set {
			e, ok := s.entities[id]
			switch {
			case !ok:
				out = append(out, Violation{Tag: tag, EntityID: id, Reason: "indexed entity does not exist"})
			case !e.Active:
				out = append(out, Violation{Tag: tag, EntityID: id, Reason: "indexed entity is inactive"})
			case !e.Has(tag):
				out = append(out, Violation{Tag: tag, EntityID: id, Reason: "indexed entity lacks the component"})
			}
		}
	}

	// Every component of every active entity must be indexed under its tag,
	// and stored under the tag its Type() reports.
	for id, e := range s.entities {
		if !e.Active {
			continue
		}
		for tag, c := range e.Components {
			if c.Type() != tag {
				out = append(out, Violation{Tag: tag, EntityID: id, Reason: "component type " + c.Type() + " stored under wrong key"})
			}
			if !s.index.Contains(id, tag) {
				out = append(out, Violation{Tag: tag, EntityID: id, Reason: "component not indexed"})
			}
		}
	}

	return len(out) == 0, out
}
