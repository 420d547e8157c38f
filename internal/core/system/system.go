package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: deliver last tick's events
	PhaseUpdate                  // 1: simulation logic
	PhasePostUpdate              // 2: audits, derived state
	PhasePersist                 // 3: snapshot writes
	PhaseCleanup                 // 4: drain removal queues
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
