package timer

import (
	"math"
	"testing"
)

func newCounted() (*Timer, *int) {
	t := New()
	n := 0
	t.OnExpire(func() { n++ })
	return t, &n
}

func TestStartThenAdd(t *testing.T) {
	tests := []struct {
		start, delta, want int
	}{
		{120, 60, 180},
		{120, -60, 60},
		{120, -120, 0},
		{120, -500, 0},
		{0, -10, 0},
		{0, 30, 30},
	}

	for _, tt := range tests {
		tm := New()
		tm.Start(tt.start)
		tm.Add(tt.delta)
		if got := tm.Frames(); got != tt.want {
			t.Errorf("start(%d) add(%d): expected %d frames, got %d", tt.start, tt.delta, tt.want, got)
		}
	}
}

func TestAddExpiresOnZeroCrossing(t *testing.T) {
	tm, expired := newCounted()
	tm.Start(300)
	tm.Add(-300)

	if *expired != 1 {
		t.Fatalf("expected 1 expiry, got %d", *expired)
	}

	// Already at zero: no second expiry.
	tm.Add(-60)
	if *expired != 1 {
		t.Errorf("expected expiry to stay at 1, got %d", *expired)
	}
}

func TestAddFromZeroDoesNotExpire(t *testing.T) {
	tm, expired := newCounted()
	tm.Start(0)
	tm.Add(-10)

	if tm.Frames() != 0 {
		t.Errorf("expected 0 frames, got %d", tm.Frames())
	}
	if *expired != 0 {
		t.Errorf("expected no expiry, got %d", *expired)
	}
}

func TestAddWhileStoppedDoesNotExpire(t *testing.T) {
	tm, expired := newCounted()
	tm.Start(120)
	tm.Stop()
	tm.Add(-120)

	if tm.Frames() != 0 {
		t.Errorf("expected 0 frames, got %d", tm.Frames())
	}
	if *expired != 0 {
		t.Errorf("expected no expiry on a stopped timer, got %d", *expired)
	}
}

func TestCountdownScenario(t *testing.T) {
	tm, expired := newCounted()
	tm.Start(120)

	for i := 0; i < 60; i++ {
		tm.Update(true)
	}
	if tm.Frames() != 60 || tm.Seconds() != 1 {
		t.Fatalf("after 60 updates: expected 60 frames / 1s, got %d / %ds", tm.Frames(), tm.Seconds())
	}
	if *expired != 0 {
		t.Fatalf("expected no expiry yet, got %d", *expired)
	}

	for i := 0; i < 60; i++ {
		tm.Update(true)
	}
	if tm.Frames() != 0 || tm.Seconds() != 0 {
		t.Fatalf("after 120 updates: expected 0 frames, got %d", tm.Frames())
	}
	if *expired != 1 {
		t.Fatalf("expected exactly 1 expiry, got %d", *expired)
	}

	// The timer keeps working at zero but never expires again.
	for i := 0; i < 10; i++ {
		tm.Update(true)
	}
	if *expired != 1 {
		t.Errorf("expected expiry to stay at 1, got %d", *expired)
	}
	if !tm.IsWorking() {
		t.Errorf("expected timer to still be working after expiry")
	}
}

func TestUpdateInactiveScene(t *testing.T) {
	tm := New()
	tm.Start(120)
	tm.Update(false)

	if tm.Frames() != 120 {
		t.Errorf("expected inactive scene to freeze frames, got %d", tm.Frames())
	}
}

func TestPauseFreezesAndRestartResumes(t *testing.T) {
	tm := New()
	tm.Start(600)
	tm.Pause()

	for i := 0; i < 100; i++ {
		tm.Update(true)
	}
	if tm.Frames() != 600 {
		t.Fatalf("expected paused timer to stay at 600, got %d", tm.Frames())
	}
	if tm.State() != Paused {
		t.Fatalf("expected Paused, got %s", tm.State())
	}

	tm.Restart()
	tm.Update(true)
	if tm.Frames() != 599 {
		t.Errorf("expected 599 after restart, got %d", tm.Frames())
	}
	if tm.State() != Running {
		t.Errorf("expected Running, got %s", tm.State())
	}
}

func TestPauseFreezesCountUp(t *testing.T) {
	tm := New()
	tm.SetCountUp(true)
	tm.Start(0)
	tm.Pause()
	tm.Update(true)

	if tm.Frames() != 0 {
		t.Errorf("expected paused count-up to stay at 0, got %d", tm.Frames())
	}
}

func TestRestartDoesNotStartStoppedTimer(t *testing.T) {
	tm := New()
	tm.Start(60)
	tm.Pause()
	tm.Stop()
	tm.Restart()

	if tm.IsWorking() {
		t.Fatalf("expected restart to leave a stopped timer stopped")
	}
	if tm.IsPausing() {
		t.Errorf("expected restart to clear the pause flag")
	}
	tm.Update(true)
	if tm.Frames() != 60 {
		t.Errorf("expected frames to stay at 60, got %d", tm.Frames())
	}
}

func TestStartClearsPause(t *testing.T) {
	tm := New()
	tm.Pause()
	tm.Start(60)

	if tm.IsPausing() {
		t.Errorf("expected start to clear the pause flag")
	}
}

func TestCountUpNeverExpires(t *testing.T) {
	tm, expired := newCounted()
	tm.SetCountUp(true)
	tm.Start(0)

	for i := 1; i <= 200; i++ {
		tm.Update(true)
		if tm.Frames() != i {
			t.Fatalf("update %d: expected %d frames, got %d", i, i, tm.Frames())
		}
	}
	if *expired != 0 {
		t.Errorf("expected no expiry in count-up mode, got %d", *expired)
	}
}

func TestCountUpStoppedDoesNotAdvance(t *testing.T) {
	tm := New()
	tm.SetCountUp(true)
	tm.Update(true)

	if tm.Frames() != 0 {
		t.Errorf("expected stopped count-up timer to stay at 0, got %d", tm.Frames())
	}
}

func TestStopKeepsFrames(t *testing.T) {
	tm := New()
	tm.Start(300)
	tm.Update(true)
	tm.Stop()

	if tm.Frames() != 299 {
		t.Fatalf("expected stop to keep 299 frames, got %d", tm.Frames())
	}
	tm.Update(true)
	if tm.Frames() != 299 {
		t.Errorf("expected update after stop to be a no-op, got %d", tm.Frames())
	}
	if tm.State() != Stopped {
		t.Errorf("expected Stopped, got %s", tm.State())
	}
}

func TestStartClampsNegative(t *testing.T) {
	tm := New()
	tm.Start(-5)

	if tm.Frames() != 0 {
		t.Errorf("expected 0 frames, got %d", tm.Frames())
	}
}

func TestVisibilityFlags(t *testing.T) {
	tm := New()
	if tm.IsVisibleForcing() || tm.IsVisible() {
		t.Fatalf("expected visibility flags to start false")
	}

	tm.SetVisibleForcing(true)
	tm.Show()
	if !tm.IsVisibleForcing() || !tm.IsVisible() {
		t.Errorf("expected forcing and visible")
	}
	if tm.IsWorking() {
		t.Errorf("expected show to leave the timer stopped")
	}

	tm.Hide()
	if tm.IsVisible() {
		t.Errorf("expected hidden")
	}
}

func TestObserversSeeCompletedState(t *testing.T) {
	tm := New()
	var events []Event
	tm.Observe(func(ev Event) {
		// Reading back from the timer must not deadlock.
		if ev.Frames != tm.Frames() {
			t.Errorf("%s: event frames %d, timer frames %d", ev.Op, ev.Frames, tm.Frames())
		}
		events = append(events, ev)
	})

	tm.Start(61)
	tm.Update(true)
	tm.Add(-60)
	tm.Stop()

	wantOps := []Op{OpStart, OpUpdate, OpAdd, OpStop}
	if len(events) != len(wantOps) {
		t.Fatalf("expected %d events, got %d", len(wantOps), len(events))
	}
	for i, op := range wantOps {
		if events[i].Op != op {
			t.Errorf("event %d: expected %s, got %s", i, op, events[i].Op)
		}
	}
	if !events[2].Expired || events[2].Frames != 0 {
		t.Errorf("expected add event to report expiry at 0 frames, got %+v", events[2])
	}
	if !events[1].SceneActive {
		t.Errorf("expected update event to carry sceneActive")
	}
	if events[3].Working {
		t.Errorf("expected stop event to report not working")
	}
}

func TestExpiryRunsBeforeObservers(t *testing.T) {
	tm := New()
	var order []string
	tm.OnExpire(func() { order = append(order, "expire") })
	tm.Observe(func(ev Event) { order = append(order, "observe:"+ev.Op.String()) })

	tm.Start(1)
	tm.Update(true)

	want := []string{"observe:start", "expire", "observe:update"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestAddSaturatesInsteadOfWrapping(t *testing.T) {
	tm, expired := newCounted()
	tm.Start(600)
	tm.Add(math.MaxInt)

	if tm.Frames() != math.MaxInt {
		t.Fatalf("expected frames to saturate at MaxInt, got %d", tm.Frames())
	}
	if *expired != 0 {
		t.Errorf("expected no expiry from a large increase, got %d", *expired)
	}

	tm.Add(math.MinInt)
	if tm.Frames() != 0 {
		t.Errorf("expected large decrease to clamp at 0, got %d", tm.Frames())
	}
	if *expired != 1 {
		t.Errorf("expected 1 expiry, got %d", *expired)
	}
}

func TestCountUpSaturates(t *testing.T) {
	tm := New()
	tm.SetCountUp(true)
	tm.Start(math.MaxInt)
	tm.Update(true)

	if tm.Frames() != math.MaxInt {
		t.Errorf("expected count-up to stop at MaxInt, got %d", tm.Frames())
	}
}
