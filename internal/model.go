package internal

import (
	"errors"
	"fmt"
	"strings"

	"truetimer/internal/command"
	"truetimer/internal/config"
	"truetimer/internal/mirror"
	"truetimer/internal/storage"
	"truetimer/internal/timelog"
	"truetimer/internal/timer"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const recentRuns = 5

type MsgTick struct{}

// Encounter stands in for the battle that an expiring timer may abort.
type Encounter struct {
	Active  bool
	Aborted int
}

type Model struct {
	Timer       *timer.Timer
	Mirror      *mirror.Mirror
	SceneActive bool
	Encounter   Encounter
	Expiries    int

	// Command line input
	Input  string
	Notice string
	Err    error

	// Last value written to the mirrored variable
	VariableValue int

	Runs []timelog.Run

	cfg     *config.Config
	repo    *storage.Repository
	tracker *timelog.Tracker
}

func NewModel(cfg *config.Config, clock clockwork.Clock) (*Model, error) {
	format, err := mirror.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	repo, err := storage.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	runs, err := repo.RecentRuns(recentRuns)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	m := &Model{
		Timer:       timer.New(),
		SceneActive: true,
		Runs:        runs,
		cfg:         cfg,
		repo:        repo,
	}

	if cfg.VariableID > 0 {
		if m.VariableValue, err = repo.Value(cfg.VariableID); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to read variable %d: %w", cfg.VariableID, err)
		}
	}

	m.Timer.OnExpire(m.expired)
	m.tracker = timelog.NewTracker(repo, clock)
	m.tracker.Attach(m.Timer)
	m.tracker.OnRun(m.addRun)

	m.Mirror = mirror.New(m.Timer, m, cfg.VariableID, format)
	mirror.Attach(m.Timer, m.Mirror)

	return m, nil
}

// SetValue writes through to the repository and keeps the value for display.
func (m *Model) SetValue(id int, value int) error {
	if err := m.repo.SetValue(id, value); err != nil {
		return err
	}
	m.VariableValue = value
	return nil
}

func (m *Model) expired() {
	m.Expiries++
	log.Info().Int("expiries", m.Expiries).Msg("timer expired")
	if m.cfg.AbortOnExpire {
		m.abortEncounter()
	}
}

func (m *Model) abortEncounter() {
	if !m.Encounter.Active {
		return
	}
	m.Encounter.Active = false
	m.Encounter.Aborted++
	m.Notice = "Encounter aborted"
	log.Info().Int("aborted", m.Encounter.Aborted).Msg("encounter aborted by timer")
}

func (m *Model) addRun(run timelog.Run) {
	m.Runs = append([]timelog.Run{run}, m.Runs...)
	if len(m.Runs) > recentRuns {
		m.Runs = m.Runs[:recentRuns]
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		m.Timer.Update(m.SceneActive)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	return m.mainView()
}

// RunCommand parses line and applies it to the timer. Named commands take
// only key=value arguments ("changeTimer sec=30 ope=decrease"); anything else is
// read as a positional command, with or without the TrueTimer prefix.
func (m *Model) RunCommand(line string) error {
	cmd, err := parseInput(line)
	if err != nil {
		return err
	}
	command.Apply(m.Timer, cmd)
	log.Info().Str("command", cmd.String()).Int("frames", m.Timer.Frames()).Msg("command applied")
	return nil
}

func parseInput(line string) (command.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command.Command{}, fmt.Errorf("%w: empty input", command.ErrUnknownCommand)
	}

	args := make(map[string]string)
	var positional []string
	for _, f := range fields[1:] {
		if k, v, ok := strings.Cut(f, "="); ok {
			args[k] = v
		} else {
			positional = append(positional, f)
		}
	}
	cmd, err := command.Parse(fields[0], args)
	if err == nil || !errors.Is(err, command.ErrUnknownCommand) {
		// named commands only take key=value arguments
		if err == nil && len(positional) > 0 {
			return command.Command{}, fmt.Errorf("%w: positional argument %q after %s", command.ErrInvalidArgument, positional[0], fields[0])
		}
		return cmd, err
	}

	if fields[0] != command.PluginName {
		line = command.PluginName + " " + line
	}
	return command.ParseLegacy(line)
}

func (m *Model) Close() error {
	if m.Timer.IsWorking() {
		// closes the open run in the log
		m.Timer.Stop()
	}
	return m.repo.Close()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		m.SceneActive = !m.SceneActive
	case "ctrl+b":
		m.Encounter.Active = !m.Encounter.Active
	case "enter":
		if strings.TrimSpace(m.Input) == "" {
			break
		}
		m.Notice = m.Input
		m.Err = nil
		if err := m.RunCommand(m.Input); err != nil {
			m.Err = err
			m.Notice = ""
			log.Warn().Err(err).Str("input", m.Input).Msg("command rejected")
		}
		m.Input = ""
	case "esc":
		m.Input = ""
		m.Err = nil
	case "backspace":
		if len(m.Input) > 0 {
			runes := []rune(m.Input)
			m.Input = string(runes[:len(runes)-1])
		}
	default:
		runes := []rune(msg.String())
		if len(runes) == 1 {
			m.Input += string(runes[0])
		}
	}
	return m, nil
}
