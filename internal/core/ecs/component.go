package ecs

// Component is a tagged payload record attached to an entity. Type returns
// the tag that determines the component's shape; it must equal the key the
// component is stored under in its owning entity's map — the index relies
// on that.
type Component interface {
	Type() string
}

// decoders maps a type tag to a factory producing an empty component of that
// shape, used when restoring entities from a snapshot. Concrete component
// packages register themselves in init(), same idea as gob.Register.
var decoders = map[string]func() Component{}

// RegisterComponent makes a component type decodable by tag.
func RegisterComponent(tag string, fn func() Component) {
	decoders[tag] = fn
}

// NewByTag returns an empty component for the tag, or nil if no component
// type was registered under it.
func NewByTag(tag string) Component {
	fn := decoders[tag]
	if fn == nil {
		return nil
	}
	return fn()
}
