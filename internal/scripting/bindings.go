package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/parksim/server/internal/core/event"
	"github.com/parksim/server/internal/data"
	"github.com/parksim/server/internal/grid"
	"github.com/parksim/server/internal/world"
)

// Bind registers the world-building API on the VM:
//
//	set_tile(x, y, type) -> bool
//	fill(x, y, w, h, type) -> count
//	place_building(template, x, y) -> entity id | nil
//	spawn_animal(species, x, y) -> entity id | nil
//	spawn_visitor(x, y) -> entity id | nil
//	log(msg)
//
// Tile edits look the terrain type up in the terrain table and apply its
// walkable/buildable defaults; unknown types change only the type field.
func (e *Engine) Bind(st *world.State, terrain *data.TerrainTable, buildings *data.BuildingTable) {
	reg := func(name string, fn lua.LGFunction) {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}

	setTile := func(x, y int, typ string) bool {
		tt := grid.TileType(typ)
		patch := grid.Patch{Type: &tt}
		if def, ok := terrain.Get(typ); ok {
			patch.Walkable = &def.Walkable
			patch.Buildable = &def.Buildable
		}
		p := grid.Position{X: x, Y: y}
		if !st.Grid.SetTile(p, patch) {
			return false
		}
		event.Emit(st.Bus, event.TileChanged{Pos: p})
		return true
	}

	reg("set_tile", func(L *lua.LState) int {
		x, y := L.CheckInt(1), L.CheckInt(2)
		typ := L.CheckString(3)
		L.Push(lua.LBool(setTile(x, y, typ)))
		return 1
	})

	reg("fill", func(L *lua.LState) int {
		x, y := L.CheckInt(1), L.CheckInt(2)
		w, h := L.CheckInt(3), L.CheckInt(4)
		typ := L.CheckString(5)
		n := 0
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				if setTile(x+dx, y+dy, typ) {
					n++
				}
			}
		}
		L.Push(lua.LNumber(n))
		return 1
	})

	reg("place_building", func(L *lua.LState) int {
		template := L.CheckString(1)
		x, y := L.CheckInt(2), L.CheckInt(3)
		def, ok := buildings.Get(template)
		if !ok {
			e.log.Warn("scenario: unknown building template", zap.String("template", template))
			L.Push(lua.LNil)
			return 1
		}
		ent, ok := st.PlaceBuilding(def.ID, grid.Position{X: x, Y: y}, grid.Size{Width: def.Width, Height: def.Height})
		if !ok {
			e.log.Warn("scenario: placement rejected",
				zap.String("template", template),
				zap.Int("x", x), zap.Int("y", y))
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(ent.ID))
		return 1
	})

	reg("spawn_animal", func(L *lua.LState) int {
		species := L.CheckString(1)
		x, y := L.CheckInt(2), L.CheckInt(3)
		ent, ok := st.SpawnAnimal(species, grid.Position{X: x, Y: y})
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(ent.ID))
		return 1
	})

	reg("spawn_visitor", func(L *lua.LState) int {
		x, y := L.CheckInt(1), L.CheckInt(2)
		ent, ok := st.SpawnVisitor(grid.Position{X: x, Y: y})
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LString(ent.ID))
		return 1
	})

	reg("log", func(L *lua.LState) int {
		e.log.Info("scenario: " + L.CheckString(1))
		return 0
	})
}
