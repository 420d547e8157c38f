package system

import (
	"context"
	"time"

	coresys "github.com/parksim/server/internal/core/system"
	"github.com/parksim/server/internal/core/event"
	"github.com/parksim/server/internal/world"
	"go.uber.org/zap"
)

// SnapshotSink persists serialized session snapshots under a named slot.
// Implemented by persist.SnapshotRepo.
type SnapshotSink interface {
	Save(ctx context.Context, slot string, data []byte) error
}

// AutosaveSystem writes a session snapshot every interval ticks, but only
// when something changed since the last save.
type AutosaveSystem struct {
	state    *world.State
	sink     SnapshotSink
	slot     string
	log      *zap.Logger
	interval int
	ticks    int
	dirty    bool
}

// NewAutosaveSystem saves every interval ticks. A nil sink or interval <= 0
// disables autosaving.
func NewAutosaveSystem(st *world.State, sink SnapshotSink, slot string, interval int, log *zap.Logger) *AutosaveSystem {
	s := &AutosaveSystem{state: st, sink: sink, slot: slot, log: log, interval: interval}
	event.Subscribe(st.Bus, func(event.PlacementCommitted) { s.dirty = true })
	event.Subscribe(st.Bus, func(event.EntityRemoved) { s.dirty = true })
	event.Subscribe(st.Bus, func(event.TileChanged) { s.dirty = true })
	return s
}

func (s *AutosaveSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *AutosaveSystem) Update(_ time.Duration) {
	if s.sink == nil || s.interval <= 0 {
		return
	}
	s.ticks++
	if s.ticks < s.interval {
		return
	}
	s.ticks = 0
	if !s.dirty {
		return
	}

	data, err := s.state.Snapshot()
	if err != nil {
		s.log.Error("autosave: snapshot failed", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.sink.Save(ctx, s.slot, data); err != nil {
		s.log.Error("autosave: save failed", zap.String("slot", s.slot), zap.Error(err))
		return
	}
	s.dirty = false
	s.log.Debug("autosave complete",
		zap.String("slot", s.slot),
		zap.Uint64("tick", s.state.Tick),
		zap.Int("bytes", len(data)))
}
