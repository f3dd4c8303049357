package ticker

import (
	"sort"
	"time"
)

// Manual is a Scheduler whose ticks are fired explicitly with Fire.
// It is meant for tests paired with clock.Fake; it is not safe for
// concurrent use.
type Manual struct {
	next      Handle
	callbacks map[Handle]func()
	intervals map[Handle]time.Duration
	started   int
}

func NewManual() *Manual {
	return &Manual{
		callbacks: make(map[Handle]func()),
		intervals: make(map[Handle]time.Duration),
	}
}

func (m *Manual) Start(interval time.Duration, onTick func()) Handle {
	m.next++
	m.started++
	m.callbacks[m.next] = onTick
	m.intervals[m.next] = interval
	return m.next
}

func (m *Manual) Stop(h Handle) {
	delete(m.callbacks, h)
	delete(m.intervals, h)
}

// Fire invokes every active callback once, oldest registration first.
// Callbacks that stop their own handle are honored for later handles.
func (m *Manual) Fire() {
	handles := make([]Handle, 0, len(m.callbacks))
	for h := range m.callbacks {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	for _, h := range handles {
		if onTick, ok := m.callbacks[h]; ok {
			onTick()
		}
	}
}

// Active reports the number of live registrations.
func (m *Manual) Active() int { return len(m.callbacks) }

// Started reports how many registrations were ever made.
func (m *Manual) Started() int { return m.started }

// Interval returns the interval h was started with.
func (m *Manual) Interval(h Handle) time.Duration { return m.intervals[h] }
