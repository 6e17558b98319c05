package display

import (
	"testing"

	"truetimer/internal/timer"
)

func TestVisible(t *testing.T) {
	tests := []struct {
		name string
		snap timer.Snapshot
		want bool
	}{
		{"stopped", timer.Snapshot{}, false},
		{"running", timer.Snapshot{Working: true}, true},
		{"paused", timer.Snapshot{Working: true, Pausing: true}, true},
		{"forced shown while stopped", timer.Snapshot{VisibleForcing: true, Visible: true}, true},
		{"forced hidden while running", timer.Snapshot{Working: true, VisibleForcing: true}, false},
		{"visible flag without forcing", timer.Snapshot{Visible: true}, false},
	}

	for _, tt := range tests {
		if got := Visible(tt.snap); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestVisibleReadsTimer(t *testing.T) {
	tm := timer.New()
	tm.Start(60)
	if !Visible(tm) {
		t.Errorf("expected running timer to be visible")
	}

	tm.SetVisibleForcing(true)
	tm.Hide()
	if Visible(tm) {
		t.Errorf("expected forced-hidden timer to be invisible")
	}
}
