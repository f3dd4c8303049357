package session

import "time"

// Kind names the mode a session was recorded from.
type Kind string

const (
	KindStopwatch Kind = "stopwatch"
	KindCountdown Kind = "countdown"
)

// Session is one completed run: a countdown that reached zero, or a
// stopwatch that was cleared with time on it.
type Session struct {
	ID        int64
	Kind      Kind
	StartedAt time.Time
	StoppedAt time.Time
	Duration  time.Duration
}
