// Package clock provides an injectable time source so timing code can be
// driven by a fake clock in tests.
package clock

import "time"

// Clock abstracts the parts of package time the timers depend on.
type Clock interface {
	// Now returns the current instant. Real clocks include a monotonic
	// reading, so Sub between two instants is immune to wall-clock jumps.
	Now() time.Time

	// NewTicker returns a Ticker that delivers ticks on C at interval d.
	// Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks. C has capacity 1; ticks are dropped
// when the reader falls behind, as with time.Ticker.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. Stop does not close C.
func (t *Ticker) Stop() { t.stopFunc() }

// Real returns a Clock backed by package time.
func Real() Clock { return realClock{} }

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) *Ticker {
	ticker := time.NewTicker(d)
	return &Ticker{C: ticker.C, stopFunc: ticker.Stop}
}
