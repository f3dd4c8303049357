package timer

import (
	"fmt"
	"time"
)

// Countdown counts down from a configured duration to zero and stops
// itself there.
type Countdown struct {
	deps      Deps
	onTick    func(time.Duration)
	onFinish  func()
	tick      ticking
	state     State
	initial   time.Duration
	remaining time.Duration
	deadline  time.Time
}

// NewCountdown returns an idle countdown with nothing configured.
// onTick receives the remaining value on every tick and on every
// operation that changes it. onFinish, if set, runs once each time the
// countdown reaches zero, after the final zero has been emitted.
func NewCountdown(deps Deps, onTick func(time.Duration), onFinish func()) (*Countdown, error) {
	if onTick == nil {
		return nil, ErrMissingObserver
	}
	deps, err := deps.validate()
	if err != nil {
		return nil, err
	}
	if onFinish == nil {
		onFinish = func() {}
	}
	return &Countdown{
		deps:     deps,
		onTick:   onTick,
		onFinish: onFinish,
		tick:     ticking{scheduler: deps.Scheduler, interval: deps.Interval},
	}, nil
}

// SetInitial configures the duration to count down from and returns the
// countdown to idle. d must be in (0, MaxCountdown]; otherwise the
// countdown is left untouched.
func (c *Countdown) SetInitial(d time.Duration) error {
	if d <= 0 || d > MaxCountdown {
		return fmt.Errorf("%w: %v not in (0, %v]", ErrInvalidDuration, d, MaxCountdown)
	}

	c.tick.stop()
	c.state = StateIdle
	c.initial = d
	c.remaining = d
	c.deadline = time.Time{}
	c.onTick(c.remaining)
	return nil
}

func (c *Countdown) Start() {
	switch {
	case c.state == StateRunning:
		c.reject("start", "already running")
		return
	case c.remaining <= 0:
		c.reject("start", "nothing remaining")
		return
	}

	c.deadline = c.deps.Clock.Now().Add(c.remaining)
	c.state = StateRunning
	c.tick.start(c.onSchedulerTick)
}

// Continue resumes a paused countdown.
func (c *Countdown) Continue() {
	if c.state != StatePaused {
		c.reject("continue", "not paused")
		return
	}
	c.Start()
}

func (c *Countdown) Pause() {
	if c.state != StateRunning {
		c.reject("pause", "not running")
		return
	}

	// Recompute at the pause instant rather than reuse the last tick.
	left := c.deadline.Sub(c.deps.Clock.Now())
	if left <= 0 {
		c.finish()
		return
	}

	c.tick.stop()
	c.remaining = ceilMillis(left)
	c.state = StatePaused
	c.deadline = time.Time{}
	c.onTick(c.remaining)
}

// Clear stops the countdown and restores the configured duration.
func (c *Countdown) Clear() {
	c.tick.stop()
	c.state = StateIdle
	c.remaining = c.initial
	c.deadline = time.Time{}
	c.onTick(c.remaining)
}

// Reset forgets the configured duration entirely.
func (c *Countdown) Reset() {
	c.tick.stop()
	c.state = StateIdle
	c.initial = 0
	c.remaining = 0
	c.deadline = time.Time{}
	c.onTick(0)
}

func (c *Countdown) State() State { return c.state }

// Remaining returns the last computed remaining time.
func (c *Countdown) Remaining() time.Duration { return c.remaining }

func (c *Countdown) Initial() time.Duration { return c.initial }

// Ticking reports whether a scheduler registration is held.
func (c *Countdown) Ticking() bool { return c.tick.active() }

func (c *Countdown) onSchedulerTick() {
	if c.state != StateRunning {
		return
	}

	left := c.deadline.Sub(c.deps.Clock.Now())
	if left <= 0 {
		c.finish()
		return
	}
	c.remaining = ceilMillis(left)
	c.onTick(c.remaining)
}

func (c *Countdown) finish() {
	c.tick.stop()
	c.state = StateFinished
	c.remaining = 0
	c.deadline = time.Time{}
	c.onTick(0)
	c.deps.Logger.Debug("countdown finished", "initial", c.initial)
	c.onFinish()
}

func (c *Countdown) reject(op, reason string) {
	c.deps.Logger.Debug("rejected operation",
		"engine", "countdown",
		"op", op,
		"reason", reason,
		"state", c.state.String(),
	)
}
