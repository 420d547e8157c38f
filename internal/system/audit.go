package system

import (
	"time"

	coresys "github.com/parksim/server/internal/core/system"
	"github.com/parksim/server/internal/world"
	"go.uber.org/zap"
)

// AuditSystem periodically validates the component index against entity
// state. Drift can only come from manual use of the low-level index
// primitives; when found, every violation is logged and the index is
// rebuilt.
type AuditSystem struct {
	state    *world.State
	log      *zap.Logger
	interval int
	ticks    int
}

// NewAuditSystem audits every interval ticks. interval <= 0 disables the
// audit.
func NewAuditSystem(st *world.State, interval int, log *zap.Logger) *AuditSystem {
	return &AuditSystem{state: st, log: log, interval: interval}
}

func (s *AuditSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *AuditSystem) Update(_ time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.ticks++
	if s.ticks < s.interval {
		return
	}
	s.ticks = 0

	ok, violations := s.state.Entities.ValidateIndex()
	if ok {
		return
	}
	s.log.Warn("component index drift detected", zap.Int("violations", len(violations)))
	for _, v := range violations {
		s.log.Warn("index violation",
			zap.String("type", v.Tag),
			zap.String("entity", v.EntityID),
			zap.String("reason", v.Reason))
	}
	s.state.Entities.RebuildIndex()
	s.log.Info("component index rebuilt")
}
