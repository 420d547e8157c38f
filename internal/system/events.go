package system

import (
	"time"

	coresys "github.com/parksim/server/internal/core/system"
	"github.com/parksim/server/internal/core/event"
)

// EventSystem rotates the bus buffers and delivers last tick's events.
// Registered first (PreUpdate) so every other system sees a stable front
// buffer for the whole tick.
type EventSystem struct {
	bus *event.Bus
}

func NewEventSystem(bus *event.Bus) *EventSystem {
	return &EventSystem{bus: bus}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
