package system

import (
	"time"

	coresys "github.com/parksim/server/internal/core/system"
	"github.com/parksim/server/internal/world"
)

// CleanupSystem drains the deferred removal queue at the end of each tick.
type CleanupSystem struct {
	state *world.State
}

func NewCleanupSystem(st *world.State) *CleanupSystem {
	return &CleanupSystem{state: st}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.state.FlushRemovals()
}
