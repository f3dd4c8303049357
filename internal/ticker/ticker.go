// Package ticker provides the periodic callback source the timing
// engines refresh their displayed value from.
package ticker

import (
	"sync"
	"time"

	"chrono_tui/internal/clock"
)

// DefaultInterval is the refresh cadence used when none is configured.
const DefaultInterval = 10 * time.Millisecond

// Handle identifies one active registration. The zero Handle is never
// issued and stands for "not registered".
type Handle uint64

// Scheduler fires onTick roughly every interval until Stop is called.
// Stop on the zero Handle or an already stopped Handle does nothing.
type Scheduler interface {
	Start(interval time.Duration, onTick func()) Handle
	Stop(h Handle)
}

// Loop is a Scheduler driven by clock tickers. Each registration runs
// one goroutine that hands ticks to dispatch, which decides where the
// callback executes. The UI passes a dispatch that posts into the
// bubbletea program so callbacks run on the event loop.
type Loop struct {
	clock    clock.Clock
	dispatch func(func())

	mu     sync.Mutex
	next   Handle
	active map[Handle]chan struct{}
}

// NewLoop returns a Loop reading ticks from clk. A nil dispatch runs
// callbacks directly on the ticker goroutine.
func NewLoop(clk clock.Clock, dispatch func(func())) *Loop {
	if dispatch == nil {
		dispatch = func(f func()) { f() }
	}
	return &Loop{
		clock:    clk,
		dispatch: dispatch,
		active:   make(map[Handle]chan struct{}),
	}
}

func (l *Loop) Start(interval time.Duration, onTick func()) Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}

	l.mu.Lock()
	l.next++
	h := l.next
	done := make(chan struct{})
	l.active[h] = done
	l.mu.Unlock()

	t := l.clock.NewTicker(interval)
	fire := func() {
		// A tick queued before Stop must not reach the engine.
		if l.isActive(h) {
			onTick()
		}
	}

	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				l.dispatch(fire)
			}
		}
	}()

	return h
}

func (l *Loop) Stop(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if done, ok := l.active[h]; ok {
		close(done)
		delete(l.active, h)
	}
}

// Close stops every registration.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for h, done := range l.active {
		close(done)
		delete(l.active, h)
	}
}

// Active reports the number of live registrations.
func (l *Loop) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.active)
}

func (l *Loop) isActive(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.active[h]
	return ok
}
