package internal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"chrono_tui/internal/clock"
	"chrono_tui/internal/keypad"
	"chrono_tui/internal/session"
	"chrono_tui/internal/ticker"
	"chrono_tui/internal/timer"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Panel is the screen currently shown.
type Panel int

const (
	PanelMenu Panel = iota
	PanelStopwatch
	PanelSetup
	PanelCountdown
	PanelHistory
)

func (p Panel) String() string {
	switch p {
	case PanelMenu:
		return "menu"
	case PanelStopwatch:
		return "stopwatch"
	case PanelSetup:
		return "setup"
	case PanelCountdown:
		return "countdown"
	case PanelHistory:
		return "history"
	default:
		return "unknown"
	}
}

// History records completed sessions. *session.Repository implements it.
type History interface {
	Create(s *session.Session) error
	Recent(limit int) ([]session.Session, error)
	Clear() error
}

type Options struct {
	Clock     clock.Clock
	Scheduler ticker.Scheduler
	Interval  time.Duration

	// History is optional; nil disables recording and the history panel.
	History      History
	HistoryLimit int

	Logger *slog.Logger
}

// Model is the application object. It owns both engines and the keypad
// and translates key presses into engine operations. Engines report
// back only through the observer callbacks wired here.
type Model struct {
	Panel Panel

	Stopwatch *timer.Stopwatch
	Countdown *timer.Countdown
	Keypad    *keypad.Buffer

	// Latest values pushed by the observers.
	StopwatchValue time.Duration
	CountdownValue time.Duration
	KeypadValue    time.Duration

	Notice   string
	Sessions []session.Session
	Err      error

	keys         KeyMap
	help         help.Model
	clock        clock.Clock
	history      History
	historyLimit int
	logger       *slog.Logger
	width        int
	height       int

	// Start of the run that a finished session will be recorded with.
	stopwatchStarted time.Time
	countdownStarted time.Time
}

func NewModel(opts Options) (*Model, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Model{
		Panel:        PanelMenu,
		keys:         DefaultKeyMap,
		help:         help.New(),
		clock:        opts.Clock,
		history:      opts.History,
		historyLimit: opts.HistoryLimit,
		logger:       opts.Logger,
		width:        80,
		height:       24,
	}

	deps := timer.Deps{
		Clock:     opts.Clock,
		Scheduler: opts.Scheduler,
		Interval:  opts.Interval,
		Logger:    opts.Logger,
	}

	var err error
	m.Stopwatch, err = timer.NewStopwatch(deps, func(d time.Duration) { m.StopwatchValue = d })
	if err != nil {
		return nil, fmt.Errorf("failed to create stopwatch: %w", err)
	}
	m.Countdown, err = timer.NewCountdown(deps, func(d time.Duration) { m.CountdownValue = d }, m.countdownFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to create countdown: %w", err)
	}
	m.Keypad, err = keypad.NewBuffer(func(d time.Duration) { m.KeypadValue = d }, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create keypad: %w", err)
	}

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		if msg.fire != nil {
			msg.fire()
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.Panel {
	case PanelStopwatch:
		return m.stopwatchView()
	case PanelSetup:
		return m.setupView()
	case PanelCountdown:
		return m.countdownView()
	case PanelHistory:
		return m.historyView()
	default:
		return m.menuView()
	}
}

// HistoryEnabled reports whether completed sessions are recorded.
func (m *Model) HistoryEnabled() bool { return m.history != nil }

// Close stops both engines, recording a stopwatch run still on the
// clock. It does not close the history store.
func (m *Model) Close() {
	m.clearStopwatch()
	m.Countdown.Reset()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.Close()
		return m, tea.Quit
	}

	switch m.Panel {
	case PanelStopwatch:
		m.handleStopwatchInput(msg)
	case PanelSetup:
		m.handleSetupInput(msg)
	case PanelCountdown:
		m.handleCountdownInput(msg)
	case PanelHistory:
		m.handleHistoryInput(msg)
	default:
		m.handleMenuInput(msg)
	}
	return m, nil
}

func (m *Model) handleMenuInput(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Stopwatch):
		m.show(PanelStopwatch)
	case key.Matches(msg, m.keys.Timer):
		m.show(PanelSetup)
	case key.Matches(msg, m.keys.History):
		if !m.HistoryEnabled() {
			m.Notice = "History is disabled"
			return
		}
		m.loadHistory()
		m.show(PanelHistory)
	}
}

func (m *Model) handleStopwatchInput(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		if m.Stopwatch.State() == timer.StateRunning {
			m.Stopwatch.Pause()
			return
		}
		if m.Stopwatch.State() == timer.StateIdle {
			m.stopwatchStarted = m.clock.Now()
		}
		m.Stopwatch.Start()
	case key.Matches(msg, m.keys.Clear):
		m.clearStopwatch()
	case key.Matches(msg, m.keys.Back):
		m.clearStopwatch()
		m.show(PanelMenu)
	}
}

func (m *Model) handleSetupInput(msg tea.KeyMsg) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		if r := msg.Runes[0]; r >= '0' && r <= '9' {
			m.Notice = ""
			if err := m.Keypad.PressDigit(int(r - '0')); err != nil {
				m.logger.Warn("keypad press failed", "error", err)
			}
			return
		}
	}

	switch {
	case key.Matches(msg, m.keys.Set):
		d, ok := m.Keypad.Commit()
		if !ok {
			m.Notice = "Enter a duration first"
			return
		}
		if err := m.Countdown.SetInitial(d); err != nil {
			m.Err = err
			m.logger.Warn("countdown rejected keypad entry", "error", err)
			return
		}
		m.Notice = ""
		m.show(PanelCountdown)
	case key.Matches(msg, m.keys.Erase):
		m.Keypad.Clear()
	case key.Matches(msg, m.keys.Back):
		m.Keypad.Clear()
		m.Countdown.Reset()
		m.show(PanelMenu)
	}
}

func (m *Model) handleCountdownInput(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		switch m.Countdown.State() {
		case timer.StateRunning:
			m.Countdown.Pause()
		case timer.StatePaused:
			m.Countdown.Continue()
		case timer.StateIdle:
			m.countdownStarted = m.clock.Now()
			m.Notice = ""
			m.Countdown.Start()
		case timer.StateFinished:
			m.Notice = "Press c to run it again"
		}
	case key.Matches(msg, m.keys.Clear):
		m.Notice = ""
		m.Countdown.Clear()
	case key.Matches(msg, m.keys.Edit):
		m.Notice = ""
		m.Countdown.Reset()
		m.show(PanelSetup)
	case key.Matches(msg, m.keys.Back):
		m.Notice = ""
		m.Countdown.Reset()
		m.Keypad.Clear()
		m.show(PanelMenu)
	}
}

func (m *Model) handleHistoryInput(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Wipe):
		if err := m.history.Clear(); err != nil {
			m.Err = err
			m.logger.Warn("failed to clear history", "error", err)
			return
		}
		m.Sessions = nil
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History):
		m.Sessions = nil
		m.show(PanelMenu)
	}
}

func (m *Model) show(p Panel) {
	if p != m.Panel {
		m.logger.Debug("panel change", "from", m.Panel.String(), "to", p.String())
	}
	if p == PanelMenu {
		m.Err = nil
	}
	m.Panel = p
}

// clearStopwatch records the run, if any, and zeroes the stopwatch.
func (m *Model) clearStopwatch() {
	if m.Stopwatch.State() == timer.StateRunning {
		m.Stopwatch.Pause()
	}
	if elapsed := m.Stopwatch.Elapsed(); elapsed > 0 {
		m.record(session.KindStopwatch, m.stopwatchStarted, elapsed)
	}
	m.Stopwatch.Clear()
	m.stopwatchStarted = time.Time{}
}

func (m *Model) countdownFinished() {
	m.Notice = "Time's up!"
	m.record(session.KindCountdown, m.countdownStarted, m.Countdown.Initial())
}

func (m *Model) record(kind session.Kind, startedAt time.Time, d time.Duration) {
	if m.history == nil {
		return
	}
	now := m.clock.Now()
	if startedAt.IsZero() {
		startedAt = now.Add(-d)
	}
	s := &session.Session{
		Kind:      kind,
		StartedAt: startedAt,
		StoppedAt: now,
		Duration:  d,
	}
	if err := m.history.Create(s); err != nil {
		m.Err = err
		m.logger.Warn("failed to record session", "kind", string(kind), "error", err)
		return
	}
	m.logger.Info("session recorded", "kind", string(kind), "duration", d)
}

func (m *Model) loadHistory() {
	sessions, err := m.history.Recent(m.historyLimit)
	if err != nil {
		m.Err = fmt.Errorf("failed to load history: %w", err)
		m.logger.Warn("failed to load history", "error", err)
		m.Sessions = nil
		return
	}
	m.Sessions = sessions
}

// errorText renders Err for the status line.
func (m *Model) errorText() string {
	if m.Err == nil {
		return ""
	}
	if errors.Is(m.Err, timer.ErrInvalidDuration) {
		return "That duration is out of range"
	}
	return m.Err.Error()
}
