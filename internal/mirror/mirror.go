// Package mirror copies the timer's seconds into a game variable whenever the
// value changes.
package mirror

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"truetimer/internal/timer"
)

var ErrUnknownFormat = errors.New("unknown value format")

// Format selects how seconds are written to the variable.
type Format int

const (
	// FormatRaw writes the seconds unchanged: 12:02 is stored as 722.
	FormatRaw Format = iota
	// FormatMinutesSeconds packs minutes into the digits above the last two:
	// 12:02 is stored as 1202.
	FormatMinutesSeconds
)

func (f Format) String() string {
	if f == FormatMinutesSeconds {
		return "mmss"
	}
	return "raw"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "raw":
		return FormatRaw, nil
	case "mmss", "minutes_seconds":
		return FormatMinutesSeconds, nil
	}
	return FormatRaw, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Value converts seconds to the stored representation.
func (f Format) Value(seconds int) int {
	if f != FormatMinutesSeconds {
		return seconds
	}
	return Pack(seconds)
}

// Pack returns minutes*100 + seconds%60.
func Pack(seconds int) int {
	return seconds/60*100 + seconds%60
}

// Unpack reverses Pack. The packed value is base 100, not base 60.
func Unpack(packed int) int {
	return packed/100*60 + packed%100
}

// Store is the variable store the mirror writes into.
type Store interface {
	SetValue(id int, value int) error
}

// Source exposes the timer's current seconds.
type Source interface {
	Seconds() int
}

type Mirror struct {
	mu          sync.Mutex
	source      Source
	store       Store
	variableID  int
	format      Format
	lastSeconds int
}

// New returns a mirror writing to variableID. A variableID of zero or less
// disables the mirror.
func New(source Source, store Store, variableID int, format Format) *Mirror {
	return &Mirror{
		source:     source,
		store:      store,
		variableID: variableID,
		format:     format,
	}
}

func (m *Mirror) Enabled() bool {
	return m.variableID > 0 && m.store != nil
}

func (m *Mirror) VariableID() int {
	return m.variableID
}

func (m *Mirror) Format() Format {
	return m.format
}

// Refresh writes the current seconds to the store if they differ from the
// last value written. On a store error the last value is kept so the next
// refresh retries.
func (m *Mirror) Refresh() error {
	if !m.Enabled() {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	seconds := m.source.Seconds()
	if seconds == m.lastSeconds {
		return nil
	}
	if err := m.store.SetValue(m.variableID, m.format.Value(seconds)); err != nil {
		return fmt.Errorf("failed to set variable %d: %w", m.variableID, err)
	}
	m.lastSeconds = seconds
	return nil
}

// Handle is a timer observer. It refreshes after start and add, and after
// updates on an active scene with a working timer.
func (m *Mirror) Handle(ev timer.Event) {
	switch ev.Op {
	case timer.OpStart, timer.OpAdd:
	case timer.OpUpdate:
		if !ev.SceneActive || !ev.Working {
			return
		}
	default:
		return
	}

	if err := m.Refresh(); err != nil {
		log.Error().Err(err).Str("op", ev.Op.String()).Msg("variable mirror refresh failed")
	}
}

// Attach registers the mirror on t. A disabled mirror is not registered.
func Attach(t *timer.Timer, m *Mirror) {
	if !m.Enabled() {
		log.Debug().Msg("variable mirror disabled")
		return
	}
	t.Observe(m.Handle)
	log.Debug().
		Int("variable_id", m.variableID).
		Str("format", m.format.String()).
		Msg("variable mirror attached")
}
