package world

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/parksim/server/internal/component"
	"github.com/parksim/server/internal/grid"
)

func TestSnapshotRoundTrip(t *testing.T) {
	st := newTestState(t)
	st.Tick = 42

	water := grid.Water
	no := false
	st.Grid.SetTile(grid.Position{X: 7, Y: 7}, grid.Patch{Type: &water, Walkable: &no, Buildable: &no})
	b, _ := st.PlaceBuilding("enclosure_small", grid.Position{X: 2, Y: 2}, grid.Size{Width: 3, Height: 2})
	st.SpawnAnimal("capuchin", grid.Position{X: 3, Y: 3})
	st.SpawnVisitor(grid.Position{X: 5, Y: 5})

	data, err := st.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Restore(data)
	if err != nil {
		t.Fatal(err)
	}

	if restored.Tick != 42 {
		t.Fatalf("tick = %d, want 42", restored.Tick)
	}
	if w, h := restored.Grid.Size(); w != 16 || h != 16 {
		t.Fatalf("grid %dx%d", w, h)
	}
	tile, _ := restored.Grid.Tile(grid.Position{X: 7, Y: 7})
	if tile.Type != grid.Water || tile.Walkable || tile.Buildable {
		t.Fatalf("water tile lost: %+v", tile)
	}
	if claimed := restored.Grid.FindByEntity(b.ID); len(claimed) != 6 {
		t.Fatalf("building claims %d tiles after restore", len(claimed))
	}

	if restored.Entities.Len() != st.Entities.Len() {
		t.Fatalf("entity count %d, want %d", restored.Entities.Len(), st.Entities.Len())
	}
	for _, orig := range st.Entities.All(true) {
		got, ok := restored.Entities.Get(orig.ID)
		if !ok {
			t.Fatalf("entity %s missing after restore", orig.ID)
		}
		if got.Active != orig.Active {
			t.Fatalf("entity %s active = %v", orig.ID, got.Active)
		}
		if !reflect.DeepEqual(got.Components, orig.Components) {
			t.Fatalf("entity %s components %+v, want %+v", orig.ID, got.Components, orig.Components)
		}
	}

	if ok, violations := restored.Entities.ValidateIndex(); !ok {
		t.Fatalf("restored index invalid: %v", violations)
	}
}

func TestSnapshotIsDeterministic(t *testing.T) {
	st := newTestState(t)
	st.PlaceBuilding("a", grid.Position{X: 1, Y: 1}, grid.Size{Width: 2, Height: 2})
	st.SpawnAnimal("capuchin", grid.Position{X: 5, Y: 5})

	first, err := st.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical state produced different snapshot bytes")
	}
}

func TestRestoreSkipsInactiveFromIndex(t *testing.T) {
	st := newTestState(t)
	a, _ := st.SpawnAnimal("capuchin", grid.Position{X: 1, Y: 1})
	st.SpawnAnimal("flamingo", grid.Position{X: 2, Y: 2})
	a.Active = false

	data, err := st.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	restored, err := Restore(data)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := restored.Entities.Get(a.ID)
	if !ok {
		t.Fatal("inactive entity dropped from snapshot")
	}
	if got.Active {
		t.Fatal("inactive entity restored as active")
	}
	for _, e := range restored.Entities.With(component.TagAnimal) {
		if e.ID == a.ID {
			t.Fatal("inactive entity present in index")
		}
	}
}

func TestRestoreRejectsUnknownComponent(t *testing.T) {
	raw := []byte(`{
		"tick": 0,
		"grid": {"width": 1, "height": 1, "tiles": [[{"type": "grass", "walkable": true, "buildable": true}]]},
		"entities": [{"id": "e1", "active": true, "components": {"warpdrive": {}}}]
	}`)
	if _, err := Restore(raw); err == nil {
		t.Fatal("unknown component tag accepted")
	}

	if _, err := Restore([]byte("not json")); err == nil {
		t.Fatal("malformed snapshot accepted")
	}
}
