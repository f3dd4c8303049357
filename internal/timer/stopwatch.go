package timer

import (
	"time"
)

// Stopwatch counts elapsed time forward from Start, across pauses,
// until Clear.
type Stopwatch struct {
	deps    Deps
	onTick  func(time.Duration)
	tick    ticking
	state   State
	elapsed time.Duration
	anchor  time.Time
}

// NewStopwatch returns an idle stopwatch. onTick receives the elapsed
// value on every tick, on Pause and on Clear.
func NewStopwatch(deps Deps, onTick func(time.Duration)) (*Stopwatch, error) {
	if onTick == nil {
		return nil, ErrMissingObserver
	}
	deps, err := deps.validate()
	if err != nil {
		return nil, err
	}
	return &Stopwatch{
		deps:   deps,
		onTick: onTick,
		tick:   ticking{scheduler: deps.Scheduler, interval: deps.Interval},
	}, nil
}

func (s *Stopwatch) Start() {
	if s.state == StateRunning {
		s.reject("start", "already running")
		return
	}

	// Anchoring at now-elapsed makes a resume continue from the paused value.
	s.anchor = s.deps.Clock.Now().Add(-s.elapsed)
	s.state = StateRunning
	s.tick.start(s.onSchedulerTick)
}

func (s *Stopwatch) Pause() {
	if s.state != StateRunning {
		s.reject("pause", "not running")
		return
	}

	s.elapsed = s.since()
	s.tick.stop()
	s.state = StatePaused
	s.anchor = time.Time{}
	s.onTick(s.Elapsed())
}

func (s *Stopwatch) Clear() {
	s.tick.stop()
	s.state = StateIdle
	s.elapsed = 0
	s.anchor = time.Time{}
	s.onTick(0)
}

func (s *Stopwatch) State() State { return s.state }

// Elapsed returns the last computed elapsed time in whole milliseconds.
func (s *Stopwatch) Elapsed() time.Duration {
	return s.elapsed.Truncate(time.Millisecond)
}

// Ticking reports whether a scheduler registration is held.
func (s *Stopwatch) Ticking() bool { return s.tick.active() }

func (s *Stopwatch) onSchedulerTick() {
	if s.state != StateRunning {
		return
	}
	s.elapsed = s.since()
	s.onTick(s.Elapsed())
}

func (s *Stopwatch) since() time.Duration {
	d := s.deps.Clock.Now().Sub(s.anchor)
	if d < 0 {
		return 0
	}
	return d
}

func (s *Stopwatch) reject(op, reason string) {
	s.deps.Logger.Debug("rejected operation",
		"engine", "stopwatch",
		"op", op,
		"reason", reason,
		"state", s.state.String(),
	)
}
