package scripting

import (
	"testing"

	"github.com/parksim/server/internal/component"
	"github.com/parksim/server/internal/data"
	"github.com/parksim/server/internal/grid"
	"github.com/parksim/server/internal/world"
	"go.uber.org/zap"
)

func newBoundEngine(t *testing.T) (*Engine, *world.State) {
	t.Helper()
	st, err := world.NewState(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	terrain := terrainTable(t)
	buildings := buildingTable(t)

	e := NewEngine(zap.NewNop())
	t.Cleanup(e.Close)
	e.Bind(st, terrain, buildings)
	return e, st
}

func terrainTable(t *testing.T) *data.TerrainTable {
	t.Helper()
	table, err := data.LoadTerrainTable("../../data/yaml/terrain_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func buildingTable(t *testing.T) *data.BuildingTable {
	t.Helper()
	table, err := data.LoadBuildingTable("../../data/yaml/building_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func TestSetTileAppliesTerrainDefaults(t *testing.T) {
	e, st := newBoundEngine(t)

	if err := e.RunString(`assert(set_tile(3, 4, "water"))`); err != nil {
		t.Fatal(err)
	}
	tile, _ := st.Grid.Tile(grid.Position{X: 3, Y: 4})
	if tile.Type != grid.Water || tile.Walkable || tile.Buildable {
		t.Fatalf("water tile = %+v", tile)
	}

	// Unknown terrain changes only the type.
	if err := e.RunString(`assert(set_tile(5, 5, "lava"))`); err != nil {
		t.Fatal(err)
	}
	tile, _ = st.Grid.Tile(grid.Position{X: 5, Y: 5})
	if tile.Type != "lava" || !tile.Walkable || !tile.Buildable {
		t.Fatalf("lava tile = %+v", tile)
	}

	if err := e.RunString(`assert(set_tile(99, 99, "water") == false)`); err != nil {
		t.Fatal(err)
	}
}

func TestFillCountsInBoundsEdits(t *testing.T) {
	e, st := newBoundEngine(t)

	// 4 wide starting at x=30 on a 32-wide grid: only 2 columns land.
	if err := e.RunString(`assert(fill(30, 0, 4, 3, "path") == 6)`); err != nil {
		t.Fatal(err)
	}
	if got := len(st.Grid.FindByType(grid.Path)); got != 6 {
		t.Fatalf("%d path tiles, want 6", got)
	}
}

func TestScenarioBuildsWorld(t *testing.T) {
	e, st := newBoundEngine(t)

	err := e.RunString(`
		fill(0, 10, 32, 2, "path")
		local booth = place_building("ticket_booth", 4, 4)
		assert(booth ~= nil)
		assert(place_building("ticket_booth", 4, 4) == nil)   -- overlap
		assert(place_building("monorail", 0, 0) == nil)       -- unknown template
		assert(spawn_animal("capuchin", 8, 8) ~= nil)
		assert(spawn_animal("capuchin", -1, 8) == nil)
		assert(spawn_visitor(9, 9) ~= nil)
		log("scenario done")
	`)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(st.Entities.With(component.TagBuilding)); got != 1 {
		t.Fatalf("%d buildings, want 1", got)
	}
	if got := len(st.Entities.With(component.TagAnimal)); got != 1 {
		t.Fatalf("%d animals, want 1", got)
	}
	if got := len(st.Entities.With(component.TagVisitor)); got != 1 {
		t.Fatalf("%d visitors, want 1", got)
	}

	// ticket_booth is 1x2; its tiles are claimed.
	booths := st.Entities.With(component.TagBuilding)
	if claimed := st.Grid.FindByEntity(booths[0].ID); len(claimed) != 2 {
		t.Fatalf("booth claims %d tiles, want 2", len(claimed))
	}

	if ok, violations := st.Entities.ValidateIndex(); !ok {
		t.Fatalf("index invalid after scenario: %v", violations)
	}
}

func TestShippedScenarioRuns(t *testing.T) {
	st, err := world.NewState(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(zap.NewNop())
	defer e.Close()
	e.Bind(st, terrainTable(t), buildingTable(t))

	if err := e.RunScenario("../../scripts/scenario/default.lua"); err != nil {
		t.Fatal(err)
	}
	if got := len(st.Entities.With(component.TagBuilding)); got != 4 {
		t.Fatalf("%d buildings, want 4", got)
	}
	if got := len(st.Entities.With(component.TagAnimal)); got != 2 {
		t.Fatalf("%d animals, want 2", got)
	}
	if got := len(st.Entities.With(component.TagVisitor)); got != 2 {
		t.Fatalf("%d visitors, want 2", got)
	}
}

func TestRunScenarioMissingFile(t *testing.T) {
	e := NewEngine(zap.NewNop())
	defer e.Close()
	if err := e.RunScenario("no/such/scenario.lua"); err == nil {
		t.Fatal("missing scenario file accepted")
	}
}
