package component

import "github.com/parksim/server/internal/core/ecs"

// Snapshot decoding needs a factory per tag; see ecs.NewByTag.
func init() {
	ecs.RegisterComponent(TagPosition, func() ecs.Component { return &Position{} })
	ecs.RegisterComponent(TagBuilding, func() ecs.Component { return &Building{} })
	ecs.RegisterComponent(TagAnimal, func() ecs.Component { return &Animal{} })
	ecs.RegisterComponent(TagVisitor, func() ecs.Component { return &Visitor{} })
	ecs.RegisterComponent(TagName, func() ecs.Component { return &Name{} })
}
