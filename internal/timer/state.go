package timer

// State is the coarse timer state derived from the working and pausing flags.
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	}
	return "Stopped"
}

// Snapshot is a copy of the timer fields taken under one lock.
type Snapshot struct {
	Frames         int
	Working        bool
	Pausing        bool
	CountUp        bool
	VisibleForcing bool
	Visible        bool
}

func (s Snapshot) State() State {
	switch {
	case !s.Working:
		return Stopped
	case s.Pausing:
		return Paused
	}
	return Running
}

func (s Snapshot) Seconds() int {
	return s.Frames / FramesPerSecond
}

func (s Snapshot) IsWorking() bool        { return s.Working }
func (s Snapshot) IsVisibleForcing() bool { return s.VisibleForcing }
func (s Snapshot) IsVisible() bool        { return s.Visible }
