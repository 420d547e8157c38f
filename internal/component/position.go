// Package component holds the concrete component types of the simulation.
// Each is a closed struct behind the ecs.Component interface; the type-erased
// map[tag]Component container exists only at the store boundary.
package component

// Type tags. A component's Type() must equal the key it is stored under in
// its entity's component map.
const (
	TagPosition = "position"
	TagBuilding = "building"
	TagAnimal   = "animal"
	TagVisitor  = "visitor"
	TagName     = "name"
)

// Position anchors an entity to a tile. For multi-tile buildings this is the
// top-left corner of the footprint.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (Position) Type() string { return TagPosition }
