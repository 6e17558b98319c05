package timelog

import (
	"time"

	"github.com/google/uuid"
)

// Outcome records how a timer run ended.
type Outcome string

const (
	OutcomeStopped  Outcome = "stopped"
	OutcomeExpired  Outcome = "expired"
	OutcomeReplaced Outcome = "replaced"
)

// Run represents one timer run, from start until it was stopped, expired or
// started again.
type Run struct {
	ID          uuid.UUID
	StartedAt   time.Time
	EndedAt     time.Time
	StartFrames int
	EndFrames   int
	CountUp     bool
	Outcome     Outcome
}

func (r Run) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
