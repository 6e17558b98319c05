package internal

import (
	"fmt"
	"strings"
	"time"

	"truetimer/internal/display"
	"truetimer/internal/mirror"
	"truetimer/internal/timelog"
	"truetimer/internal/timer"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)
)

func formatFrames(frames int) string {
	total := frames / timer.FramesPerSecond
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func formatDuration(d time.Duration) string {
	return formatFrames(int(d.Seconds()) * timer.FramesPerSecond)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(72).Render("TrueTimer"))
	sb.WriteString("\n\n")

	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.timerView(),
		"  ",
		m.statusView(),
	)
	sb.WriteString(boxes)
	sb.WriteString("\n\n")
	sb.WriteString(m.inputView())
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Enter: Run command | Esc: Clear | Ctrl+S: Scene | Ctrl+B: Encounter | Ctrl+C: Quit"))

	return sb.String()
}

func (m *Model) timerView() string {
	snap := m.Timer.Snapshot()

	var readout string
	switch {
	case !display.Visible(snap):
		readout = inactiveStyle.Render("(hidden)")
	case snap.State() == timer.Running:
		readout = timerRunningStyle.Render(formatFrames(snap.Frames))
	default:
		readout = timerDisplayStyle.Render(formatFrames(snap.Frames))
	}

	status := snap.State().String()
	statusStyle := inactiveStyle
	if snap.State() == timer.Running {
		statusStyle = runningStyle
	}

	mode := "Count down"
	if snap.CountUp {
		mode = "Count up"
	}
	visibility := "auto"
	if snap.VisibleForcing {
		visibility = "forced hidden"
		if snap.Visible {
			visibility = "forced shown"
		}
	}

	var sb strings.Builder
	sb.WriteString(readout)
	sb.WriteString(fmt.Sprintf("\n\n%s\n", statusStyle.Render(status)))
	sb.WriteString(fmt.Sprintf("Mode: %s\n", mode))
	sb.WriteString(fmt.Sprintf("Frames: %d\n", snap.Frames))
	sb.WriteString(fmt.Sprintf("Visibility: %s\n", visibility))

	return boxStyle.Width(30).Height(12).Render(sb.String())
}

func (m *Model) statusView() string {
	var sb strings.Builder

	scene := "active"
	if !m.SceneActive {
		scene = "inactive"
	}
	sb.WriteString(fmt.Sprintf("Scene: %s\n", scene))

	if m.Mirror.Enabled() {
		value := fmt.Sprintf("%d", m.VariableValue)
		if m.Mirror.Format() == mirror.FormatMinutesSeconds {
			value = fmt.Sprintf("%04d", m.VariableValue)
		}
		sb.WriteString(fmt.Sprintf("Variable #%d: %s (%s)\n", m.Mirror.VariableID(), value, m.Mirror.Format()))
	} else {
		sb.WriteString(inactiveStyle.Render("Variable: disabled"))
		sb.WriteString("\n")
	}

	encounter := "none"
	if m.Encounter.Active {
		encounter = "in progress"
	}
	sb.WriteString(fmt.Sprintf("Encounter: %s (aborted %d)\n", encounter, m.Encounter.Aborted))
	sb.WriteString(fmt.Sprintf("Expired: %d\n", m.Expiries))

	if len(m.Runs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Recent Runs"))
		sb.WriteString("\n")
		for _, r := range m.Runs {
			sb.WriteString(m.formatRun(r))
			sb.WriteString("\n")
		}
	}

	return boxStyle.Width(40).Height(12).Render(sb.String())
}

func (m *Model) inputView() string {
	line := inputStyle.Render("→ " + m.Input + "█")
	switch {
	case m.Err != nil:
		line += "\n" + errorStyle.Render(m.Err.Error())
	case m.Notice != "":
		line += "\n" + helpStyle.Render(m.Notice)
	}
	return line
}

func (m *Model) formatRun(r timelog.Run) string {
	timeStr := logTimeStyle.Render(r.EndedAt.Local().Format("Jan 02 15:04"))
	span := fmt.Sprintf("%s→%s", formatFrames(r.StartFrames), formatFrames(r.EndFrames))
	return fmt.Sprintf("%s %s %s %s", timeStr, span, formatDuration(r.Duration()), logTagStyle.Render("["+string(r.Outcome)+"]"))
}
