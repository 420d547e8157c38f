package system

import (
	"context"
	"errors"
	"testing"

	"github.com/parksim/server/internal/grid"
	"github.com/parksim/server/internal/world"
	"go.uber.org/zap"
)

type fakeSink struct {
	saves []string // slot per call
	data  []byte
	err   error
}

func (f *fakeSink) Save(_ context.Context, slot string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, slot)
	f.data = data
	return nil
}

func newWorld(t *testing.T) *world.State {
	t.Helper()
	st, err := world.NewState(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestAutosaveOnlyWhenDirty(t *testing.T) {
	st := newWorld(t)
	sink := &fakeSink{}
	events := NewEventSystem(st.Bus)
	autosave := NewAutosaveSystem(st, sink, "slot-a", 3, zap.NewNop())

	tick := func() {
		events.Update(0)
		autosave.Update(0)
	}

	// Nothing changed; the interval elapses without a save.
	for i := 0; i < 6; i++ {
		tick()
	}
	if len(sink.saves) != 0 {
		t.Fatalf("clean session saved %d times", len(sink.saves))
	}

	// A placement dirties the session on the next tick's dispatch.
	st.PlaceBuilding("a", grid.Position{X: 1, Y: 1}, grid.Size{Width: 2, Height: 2})
	for i := 0; i < 3; i++ {
		tick()
	}
	if len(sink.saves) != 1 || sink.saves[0] != "slot-a" {
		t.Fatalf("saves = %v, want one to slot-a", sink.saves)
	}
	if len(sink.data) == 0 {
		t.Fatal("saved snapshot is empty")
	}

	// The save cleared the dirty flag; further intervals stay quiet.
	for i := 0; i < 3; i++ {
		tick()
	}
	if len(sink.saves) != 1 {
		t.Fatalf("clean interval saved again: %v", sink.saves)
	}
}

func TestAutosaveRetriesAfterSinkError(t *testing.T) {
	st := newWorld(t)
	sink := &fakeSink{err: errors.New("connection refused")}
	events := NewEventSystem(st.Bus)
	autosave := NewAutosaveSystem(st, sink, "slot-a", 1, zap.NewNop())

	st.PlaceBuilding("a", grid.Position{X: 1, Y: 1}, grid.Size{Width: 1, Height: 1})
	events.Update(0)
	autosave.Update(0)
	if len(sink.saves) != 0 {
		t.Fatal("failed save recorded")
	}

	// The dirty flag survives the failure, so the next interval tries again.
	sink.err = nil
	autosave.Update(0)
	if len(sink.saves) != 1 {
		t.Fatalf("saves after recovery = %v", sink.saves)
	}
}

func TestAutosaveDisabled(t *testing.T) {
	st := newWorld(t)
	sink := &fakeSink{}

	disabled := NewAutosaveSystem(st, sink, "s", 0, zap.NewNop())
	nilSink := NewAutosaveSystem(st, nil, "s", 1, zap.NewNop())

	st.PlaceBuilding("a", grid.Position{X: 1, Y: 1}, grid.Size{Width: 1, Height: 1})
	NewEventSystem(st.Bus).Update(0)
	for i := 0; i < 5; i++ {
		disabled.Update(0)
		nilSink.Update(0)
	}
	if len(sink.saves) != 0 {
		t.Fatalf("disabled system saved %d times", len(sink.saves))
	}
}

func TestAuditRepairsDrift(t *testing.T) {
	st := newWorld(t)
	st.SpawnAnimal("capuchin", grid.Position{X: 1, Y: 1})
	audit := NewAuditSystem(st, 2, zap.NewNop())

	st.Entities.Index().Register("ghost", "animal")

	// First tick is below the interval; drift persists.
	audit.Update(0)
	if ok, _ := st.Entities.ValidateIndex(); ok {
		t.Fatal("drift vanished before the audit ran")
	}

	audit.Update(0)
	if ok, violations := st.Entities.ValidateIndex(); !ok {
		t.Fatalf("audit left violations: %v", violations)
	}
}

func TestCleanupDrainsQueue(t *testing.T) {
	st := newWorld(t)
	e, _ := st.SpawnAnimal("capuchin", grid.Position{X: 1, Y: 1})
	st.MarkForRemoval(e.ID)

	NewCleanupSystem(st).Update(0)

	if _, ok := st.Entities.Get(e.ID); ok {
		t.Fatal("queued entity survived cleanup")
	}
}

func TestPhases(t *testing.T) {
	st := newWorld(t)

	if NewEventSystem(st.Bus).Phase() >= NewAuditSystem(st, 1, zap.NewNop()).Phase() {
		t.Fatal("events must run before the audit")
	}
	if NewAuditSystem(st, 1, zap.NewNop()).Phase() >= NewAutosaveSystem(st, nil, "s", 1, zap.NewNop()).Phase() {
		t.Fatal("audit must run before autosave")
	}
	if NewAutosaveSystem(st, nil, "s", 1, zap.NewNop()).Phase() >= NewCleanupSystem(st).Phase() {
		t.Fatal("autosave must run before cleanup")
	}
}
