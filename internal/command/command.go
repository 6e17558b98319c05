// Package command turns authored timer commands into typed values and applies
// them to a timer.
//
// Two input forms are accepted: named-argument commands (startTimer with
// min/sec arguments, and so on) and the older positional form
// "TrueTimer start 1 30".
package command

import (
	"errors"
	"fmt"
	"math"

	"truetimer/internal/timer"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Kind int

const (
	Start Kind = iota
	Change
	Stop
	Pause
	Restart
	CountUp
	Transparency
)

func (k Kind) String() string {
	switch k {
	case Start:
		return "start"
	case Change:
		return "change"
	case Stop:
		return "stop"
	case Pause:
		return "pause"
	case Restart:
		return "restart"
	case CountUp:
		return "countUp"
	case Transparency:
		return "transparency"
	}
	return "unknown"
}

type Direction int

const (
	Increase Direction = iota
	Decrease
)

// Visibility is the transparency setting. TransparencyOn hides the timer.
type Visibility int

const (
	TransparencyOn Visibility = iota
	TransparencyOff
	TransparencyAuto
)

func (v Visibility) String() string {
	switch v {
	case TransparencyOn:
		return "on"
	case TransparencyOff:
		return "off"
	}
	return "auto"
}

// Command is one parsed timer command. Only the fields relevant to Kind are set.
type Command struct {
	Kind         Kind
	Minutes      int
	Seconds      int
	Direction    Direction
	CountUp      bool
	Transparency Visibility
}

// MaxTimeArg bounds each of Minutes and Seconds so that Frames cannot
// overflow an int.
const MaxTimeArg = math.MaxInt / (2 * 60 * timer.FramesPerSecond)

// Frames converts the time arguments to frames. Signs are ignored and each
// argument is capped at MaxTimeArg.
func (c Command) Frames() int {
	m := min(abs(c.Minutes), MaxTimeArg)
	s := min(abs(c.Seconds), MaxTimeArg)
	return (m*60 + s) * timer.FramesPerSecond
}

// Delta is the signed frame change of a Change command.
func (c Command) Delta() int {
	if c.Direction == Decrease {
		return -c.Frames()
	}
	return c.Frames()
}

func (c Command) String() string {
	switch c.Kind {
	case Start:
		return fmt.Sprintf("start %d:%02d", abs(c.Minutes), abs(c.Seconds))
	case Change:
		sign := "+"
		if c.Direction == Decrease {
			sign = "-"
		}
		return fmt.Sprintf("change %s%d:%02d", sign, abs(c.Minutes), abs(c.Seconds))
	case CountUp:
		return fmt.Sprintf("countUp %t", c.CountUp)
	case Transparency:
		return "transparency " + c.Transparency.String()
	}
	return c.Kind.String()
}

// Target is the set of timer operations commands drive.
type Target interface {
	Start(frames int)
	Add(delta int)
	Stop()
	Pause()
	Restart()
	SetCountUp(countUp bool)
	SetVisibleForcing(forcing bool)
	Show()
	Hide()
}

// Apply runs c against t.
func Apply(t Target, c Command) {
	switch c.Kind {
	case Start:
		t.Start(c.Frames())
	case Change:
		t.Add(c.Delta())
	case Stop:
		t.Stop()
	case Pause:
		t.Pause()
	case Restart:
		t.Restart()
	case CountUp:
		t.SetCountUp(c.CountUp)
	case Transparency:
		switch c.Transparency {
		case TransparencyOn:
			t.SetVisibleForcing(true)
			t.Hide()
		case TransparencyOff:
			t.SetVisibleForcing(true)
			t.Show()
		default:
			t.SetVisibleForcing(false)
		}
	}
}

func abs(n int) int {
	if n == math.MinInt {
		return math.MaxInt
	}
	if n < 0 {
		return -n
	}
	return n
}
