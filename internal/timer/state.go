// Package timer holds the stopwatch and countdown engines. Both engines
// are single-threaded state machines: every method and every tick
// callback must run on the same goroutine (the UI event loop). They
// never accumulate tick intervals; the current value is always
// recomputed from absolute instants taken from the injected clock.
package timer

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"chrono_tui/internal/clock"
	"chrono_tui/internal/ticker"
)

// MaxCountdown is the longest duration a countdown accepts (23:59:59.999).
const MaxCountdown = 24*time.Hour - time.Millisecond

var (
	ErrInvalidDuration  = errors.New("invalid countdown duration")
	ErrMissingObserver  = errors.New("timer: observer is required")
	ErrMissingClock     = errors.New("timer: clock is required")
	ErrMissingScheduler = errors.New("timer: scheduler is required")
)

// State is the lifecycle position of an engine.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	// StateFinished is reached only by a countdown hitting zero.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StatePaused:
		return "PAUSED"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// Deps are the collaborators an engine needs.
type Deps struct {
	Clock     clock.Clock
	Scheduler ticker.Scheduler
	// Interval is the refresh cadence; zero means ticker.DefaultInterval.
	Interval time.Duration
	// Logger receives rejected operations at debug level. Optional.
	Logger *slog.Logger
}

func (d Deps) validate() (Deps, error) {
	if d.Clock == nil {
		return d, ErrMissingClock
	}
	if d.Scheduler == nil {
		return d, ErrMissingScheduler
	}
	if d.Interval <= 0 {
		d.Interval = ticker.DefaultInterval
	}
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return d, nil
}

// ticking is the scheduler registration shared by both engines. It
// keeps at most one handle alive.
type ticking struct {
	scheduler ticker.Scheduler
	interval  time.Duration
	handle    ticker.Handle
}

func (t *ticking) start(onTick func()) {
	t.stop()
	t.handle = t.scheduler.Start(t.interval, onTick)
}

func (t *ticking) stop() {
	if t.handle != 0 {
		t.scheduler.Stop(t.handle)
		t.handle = 0
	}
}

func (t *ticking) active() bool { return t.handle != 0 }

// ceilMillis rounds a positive duration up to a whole millisecond so a
// countdown never reports 0 while time is still left.
func ceilMillis(d time.Duration) time.Duration {
	if r := d % time.Millisecond; r != 0 {
		d += time.Millisecond - r
	}
	return d
}
