package ecs

// Index is the derived mapping from component type tag to the set of entity
// ids holding that type. Store mutations keep it in sync automatically; the
// low-level Register/Unregister primitives are public so callers can maintain
// it by hand, at the cost of transient inconsistency repairable via
// Store.RebuildIndex and detectable via Store.ValidateIndex.
type Index struct {
	byType map[string]map[string]struct{}
}

func NewIndex() *Index {
	return &Index{
		byType: make(map[string]map[string]struct{}, 16),
	}
}

// Register records that entity id holds a component of the given type.
func (ix *Index) Register(id, tag string) {
	set := ix.byType[tag]
	if set == nil {
		set = make(map[string]struct{}, 8)
		ix.byType[tag] = set
	}
	set[id] = struct{}{}
}

// Unregister removes the entity from the type's set. The tag key is dropped
// entirely once its set becomes empty; the index never retains empty sets.
func (ix *Index) Unregister(id, tag string) {
	set := ix.byType[tag]
	if set == nil {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(ix.byType, tag)
	}
}

// Contains reports whether the entity is registered under the tag.
func (ix *Index) Contains(id, tag string) bool {
	_, ok := ix.byType[tag][id]
	return ok
}

// IDs returns the ids registered under the tag. Unknown tags yield an empty
// slice, not an error. Order is unspecified.
func (ix *Index) IDs(tag string) []string {
	set := ix.byType[tag]
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// Count returns the number of ids registered under the tag.
func (ix *Index) Count(tag string) int {
	return len(ix.byType[tag])
}
