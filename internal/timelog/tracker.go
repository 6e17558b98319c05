package timelog

import (
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"truetimer/internal/timer"
)

// Sink receives finished runs.
type Sink interface {
	CreateRun(run *Run) error
}

// Tracker turns timer events into Runs.
type Tracker struct {
	mu      sync.Mutex
	sink    Sink
	clock   clockwork.Clock
	timer   *timer.Timer
	current *Run
	// frames seen in the most recent event
	lastFrames int
	onRun      []func(Run)
}

func NewTracker(sink Sink, clock clockwork.Clock) *Tracker {
	return &Tracker{sink: sink, clock: clock}
}

// Attach registers the tracker on t.
func (tr *Tracker) Attach(t *timer.Timer) {
	tr.timer = t
	t.OnExpire(tr.expired)
	t.Observe(tr.Handle)
}

// OnRun registers fn to be called with every run after it is stored.
func (tr *Tracker) OnRun(fn func(Run)) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.onRun = append(tr.onRun, fn)
}

// Current returns the open run, if any.
func (tr *Tracker) Current() (Run, bool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.current == nil {
		return Run{}, false
	}
	return *tr.current, true
}

func (tr *Tracker) Handle(ev timer.Event) {
	tr.mu.Lock()
	prevFrames := tr.lastFrames
	tr.lastFrames = ev.Frames
	tr.mu.Unlock()

	switch ev.Op {
	case timer.OpStart:
		countUp := false
		if tr.timer != nil {
			countUp = tr.timer.IsCountUp()
		}
		tr.mu.Lock()
		prev := tr.current
		tr.current = &Run{
			ID:          uuid.New(),
			StartedAt:   tr.clock.Now(),
			StartFrames: ev.Frames,
			CountUp:     countUp,
		}
		tr.mu.Unlock()
		if prev != nil {
			tr.finish(prev, OutcomeReplaced, prevFrames)
		}
	case timer.OpStop:
		tr.close(OutcomeStopped, ev.Frames)
	}
}

func (tr *Tracker) expired() {
	tr.close(OutcomeExpired, 0)
}

func (tr *Tracker) close(outcome Outcome, frames int) {
	tr.mu.Lock()
	run := tr.current
	tr.current = nil
	tr.mu.Unlock()
	if run != nil {
		tr.finish(run, outcome, frames)
	}
}

func (tr *Tracker) finish(run *Run, outcome Outcome, frames int) {
	run.EndedAt = tr.clock.Now()
	run.EndFrames = frames
	run.Outcome = outcome

	if err := tr.sink.CreateRun(run); err != nil {
		log.Error().Err(err).Str("run_id", run.ID.String()).Msg("failed to store timer run")
		return
	}
	log.Info().
		Str("run_id", run.ID.String()).
		Str("outcome", string(run.Outcome)).
		Int("start_frames", run.StartFrames).
		Int("end_frames", run.EndFrames).
		Dur("duration", run.Duration()).
		Msg("timer run finished")

	tr.mu.Lock()
	hooks := tr.onRun
	tr.mu.Unlock()
	for _, fn := range hooks {
		fn(*run)
	}
}
