package timer

import (
	"fmt"
	"time"
)

// Fields is a duration split into display units.
type Fields struct {
	Hours   int64
	Minutes int64
	Seconds int64
	Millis  int64
}

// ToFields splits d into hours, minutes, seconds and milliseconds.
// Hours are unbounded. Negative input is clamped to zero.
func ToFields(d time.Duration) Fields {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return Fields{
		Hours:   ms / 3_600_000,
		Minutes: (ms % 3_600_000) / 60_000,
		Seconds: (ms % 60_000) / 1000,
		Millis:  ms % 1000,
	}
}

// Clock renders HH:MM:SS.
func (f Fields) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", f.Hours, f.Minutes, f.Seconds)
}

// Format renders d as HH:MM:SS.cc with centiseconds.
func Format(d time.Duration) string {
	f := ToFields(d)
	return fmt.Sprintf("%s.%02d", f.Clock(), f.Millis/10)
}
