// Package keypad accumulates keypad digits into a countdown duration.
package keypad

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

var (
	ErrInvalidDigit    = errors.New("keypad: digit must be 0-9")
	ErrMissingObserver = errors.New("keypad: observer is required")
)

// registerSize is the number of decimal digits held (HHMMSS).
const registerSize = 6

// Buffer is a six digit HHMMSS shift register. Each press drops the
// leftmost digit and appends the new one on the right. A press whose
// result is not a valid time of day is rejected as a whole, so Value
// never exceeds 23:59:59.
type Buffer struct {
	register int
	onChange func(time.Duration)
	logger   *slog.Logger
}

// NewBuffer returns an empty buffer. onChange runs after every accepted
// press and every Clear with the new value.
func NewBuffer(onChange func(time.Duration), logger *slog.Logger) (*Buffer, error) {
	if onChange == nil {
		return nil, ErrMissingObserver
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Buffer{onChange: onChange, logger: logger}, nil
}

// PressDigit shifts d into the register. Only a digit outside 0-9 is an
// error; an unrepresentable time is silently rejected.
func (b *Buffer) PressDigit(d int) error {
	if d < 0 || d > 9 {
		return fmt.Errorf("%w: got %d", ErrInvalidDigit, d)
	}

	next := (b.register%100_000)*10 + d
	if !valid(next) {
		b.logger.Debug("rejected operation",
			"engine", "keypad",
			"op", "press",
			"digit", d,
			"reason", fmt.Sprintf("%06d is not a valid time", next),
		)
		return nil
	}

	b.register = next
	b.onChange(b.Value())
	return nil
}

func (b *Buffer) Clear() {
	b.register = 0
	b.onChange(0)
}

// Value returns the buffered duration.
func (b *Buffer) Value() time.Duration {
	h, m, s := split(b.register)
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

// Digits returns the register as six zero-padded digits.
func (b *Buffer) Digits() string {
	return fmt.Sprintf("%0*d", registerSize, b.register)
}

// Commit returns the buffered duration for handing to a countdown. An
// empty buffer is rejected and reports false.
func (b *Buffer) Commit() (time.Duration, bool) {
	if b.register == 0 {
		b.logger.Debug("rejected operation",
			"engine", "keypad",
			"op", "commit",
			"reason", "empty entry",
		)
		return 0, false
	}
	return b.Value(), true
}

func split(register int) (h, m, s int) {
	return register / 10_000, (register / 100) % 100, register % 100
}

func valid(register int) bool {
	h, m, s := split(register)
	return h <= 23 && m <= 59 && s <= 59
}
