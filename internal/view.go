package internal

import (
	"fmt"
	"strings"

	"chrono_tui/internal/session"
	"chrono_tui/internal/timer"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	menuItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	menuKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	timerDisplayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("69")).
				Bold(true)

	timerRunningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")).
				Bold(true)

	timerFinishedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("203")).
				Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logKindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func (m *Model) frame(title, body string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Width(44).Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(body)

	if notice := m.Notice; notice != "" {
		sb.WriteString("\n\n")
		sb.WriteString(noticeStyle.Render(notice))
	}
	if errText := m.errorText(); errText != "" {
		sb.WriteString("\n\n")
		sb.WriteString(errorStyle.Render("Error: " + errText))
	}

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			boxStyle.Width(50).Render(sb.String()),
			m.help.View(m.keys.help(m.Panel)),
		),
	)
}

func (m *Model) menuView() string {
	items := []struct {
		key, label string
	}{
		{"s", "Stopwatch"},
		{"t", "Timer"},
	}
	if m.HistoryEnabled() {
		items = append(items, struct{ key, label string }{"l", "History"})
	}

	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(menuItemStyle.Render(menuKeyStyle.Render(item.key) + "  " + item.label))
		sb.WriteString("\n")
	}
	return m.frame("Chrono", strings.TrimSuffix(sb.String(), "\n"))
}

func (m *Model) stopwatchView() string {
	state := m.Stopwatch.State()
	display := timer.Format(m.StopwatchValue)

	var body strings.Builder
	body.WriteString(styleFor(state).Render(display))
	body.WriteString("\n\n")
	body.WriteString(stateLabel(state))
	return m.frame("Stopwatch", body.String())
}

func (m *Model) setupView() string {
	digits := m.Keypad.Digits()
	entry := fmt.Sprintf("%s:%s:%s", digits[0:2], digits[2:4], digits[4:6])

	var body strings.Builder
	body.WriteString(inputStyle.Render(entry + "█"))
	body.WriteString("\n\n")
	body.WriteString(inactiveStyle.Render("Type digits; they fill in from the right."))
	return m.frame("Set Timer", body.String())
}

func (m *Model) countdownView() string {
	state := m.Countdown.State()
	display := timer.Format(m.CountdownValue)

	var body strings.Builder
	body.WriteString(styleFor(state).Render(display))
	body.WriteString("\n\n")
	body.WriteString(stateLabel(state))
	body.WriteString("\n")
	body.WriteString(inactiveStyle.Render("Set: " + timer.ToFields(m.Countdown.Initial()).Clock()))
	return m.frame("Timer", body.String())
}

func (m *Model) historyView() string {
	var sb strings.Builder
	sb.WriteString(logHeaderStyle.Render("Recent Sessions"))
	sb.WriteString("\n")

	if len(m.Sessions) == 0 {
		sb.WriteString(inactiveStyle.Render("Nothing recorded yet."))
	}
	for _, s := range m.Sessions {
		sb.WriteString("\n")
		sb.WriteString(formatSession(s))
	}
	return m.frame("History", sb.String())
}

func formatSession(s session.Session) string {
	timeStr := logTimeStyle.Render(s.StoppedAt.Local().Format("Jan 02 15:04"))
	kind := logKindStyle.Render(fmt.Sprintf("%-9s", s.Kind))
	return fmt.Sprintf("  %s  %s  %s", timeStr, kind, timer.Format(s.Duration))
}

func styleFor(state timer.State) lipgloss.Style {
	switch state {
	case timer.StateRunning:
		return timerRunningStyle
	case timer.StateFinished:
		return timerFinishedStyle
	default:
		return timerDisplayStyle
	}
}

func stateLabel(state timer.State) string {
	switch state {
	case timer.StateRunning:
		return timerRunningStyle.Render("Running")
	case timer.StatePaused:
		return inactiveStyle.Render("Paused")
	case timer.StateFinished:
		return timerFinishedStyle.Render("Finished")
	default:
		return inactiveStyle.Render("Ready")
	}
}
