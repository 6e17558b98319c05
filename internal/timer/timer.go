package timer

import (
	"math"
	"sync"
)

// FramesPerSecond is the host frame rate the frame counter is measured in.
const FramesPerSecond = 60

// Op identifies the operation that produced an Event.
type Op int

const (
	OpStart Op = iota
	OpStop
	OpPause
	OpRestart
	OpAdd
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpStart:
		return "start"
	case OpStop:
		return "stop"
	case OpPause:
		return "pause"
	case OpRestart:
		return "restart"
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	}
	return "unknown"
}

// Event is passed to observers after a mutating operation has completed.
type Event struct {
	Op          Op
	SceneActive bool // only meaningful for OpUpdate
	Working     bool
	Frames      int
	Expired     bool
}

// Timer is the frame-counting game timer. The zero value is not usable; call New.
type Timer struct {
	mu             sync.RWMutex
	frames         int
	working        bool
	pausing        bool
	countUp        bool
	visibleForcing bool
	visible        bool

	expireHandlers []func()
	observers      []func(Event)
}

func New() *Timer {
	return &Timer{}
}

// OnExpire registers fn to run whenever a countdown reaches zero.
// With no handlers registered, expiry is a no-op.
func (t *Timer) OnExpire(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expireHandlers = append(t.expireHandlers, fn)
}

// Observe registers fn to run after every mutating operation.
func (t *Timer) Observe(fn func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}

func (t *Timer) Start(frames int) {
	t.mu.Lock()
	t.frames = max(frames, 0)
	t.working = true
	t.pausing = false
	t.commit(OpStart, false, false)
}

// Stop deactivates the timer. The frame count is kept.
func (t *Timer) Stop() {
	t.mu.Lock()
	t.working = false
	t.commit(OpStop, false, false)
}

func (t *Timer) Pause() {
	t.mu.Lock()
	t.pausing = true
	t.commit(OpPause, false, false)
}

// Restart clears the pause flag. It does not start a stopped timer.
func (t *Timer) Restart() {
	t.mu.Lock()
	t.pausing = false
	t.commit(OpRestart, false, false)
}

// Add shifts the frame count by delta, clamping at zero and saturating at
// math.MaxInt.
func (t *Timer) Add(delta int) {
	t.mu.Lock()
	lastFrames := t.frames
	if delta > 0 && t.frames > math.MaxInt-delta {
		t.frames = math.MaxInt
	} else {
		// frames >= 0, so frames+delta cannot underflow
		t.frames = max(t.frames+delta, 0)
	}
	expired := t.working && lastFrames > 0 && t.frames == 0
	t.commit(OpAdd, false, expired)
}

// Update advances the timer by one frame.
func (t *Timer) Update(sceneActive bool) {
	t.mu.Lock()
	expired := false
	switch {
	case t.pausing:
	case t.countUp && sceneActive && t.working:
		if t.frames < math.MaxInt {
			t.frames++
		}
	case sceneActive && t.working && t.frames > 0:
		t.frames--
		expired = t.frames == 0
	}
	t.commit(OpUpdate, sceneActive, expired)
}

// commit must be called with t.mu held. It releases the lock and then runs
// expiry handlers followed by observers.
func (t *Timer) commit(op Op, sceneActive, expired bool) {
	ev := Event{
		Op:          op,
		SceneActive: sceneActive,
		Working:     t.working,
		Frames:      t.frames,
		Expired:     expired,
	}
	var handlers []func()
	if expired {
		handlers = t.expireHandlers
	}
	observers := t.observers
	t.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
	for _, fn := range observers {
		fn(ev)
	}
}

func (t *Timer) SetCountUp(countUp bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.countUp = countUp
}

func (t *Timer) SetVisibleForcing(forcing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visibleForcing = forcing
}

func (t *Timer) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = true
}

func (t *Timer) Hide() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = false
}

func (t *Timer) Frames() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frames
}

// Seconds is the frame count in whole seconds, rounded down.
func (t *Timer) Seconds() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frames / FramesPerSecond
}

func (t *Timer) IsWorking() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.working
}

func (t *Timer) IsPausing() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pausing
}

func (t *Timer) IsCountUp() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.countUp
}

func (t *Timer) IsVisibleForcing() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleForcing
}

func (t *Timer) IsVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visible
}

func (t *Timer) State() State {
	return t.Snapshot().State()
}

func (t *Timer) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Frames:         t.frames,
		Working:        t.working,
		Pausing:        t.pausing,
		CountUp:        t.countUp,
		VisibleForcing: t.visibleForcing,
		Visible:        t.visible,
	}
}
