// Package frame drives the per-frame update from a clock.
package frame

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"truetimer/internal/timer"
)

// Interval is the length of one frame.
const Interval = time.Second / timer.FramesPerSecond

type Loop struct {
	clock    clockwork.Clock
	interval time.Duration
}

func NewLoop(clock clockwork.Clock) *Loop {
	return &Loop{
		clock:    clock,
		interval: Interval,
	}
}

// Run calls tick once per frame until ctx is done. Frames missed while tick
// is busy are dropped, not replayed.
func (l *Loop) Run(ctx context.Context, tick func()) {
	ticker := l.clock.NewTicker(l.interval)
	defer ticker.Stop()

	log.Debug().Dur("interval", l.interval).Msg("frame loop started")
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("frame loop stopped")
			return
		case <-ticker.Chan():
			tick()
		}
	}
}
