package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countdownRig struct {
	*rig
	finished int
}

func newCountdown(t *testing.T) (*Countdown, *countdownRig) {
	t.Helper()
	r := &countdownRig{rig: newRig()}
	cd, err := NewCountdown(r.deps(), r.observe, func() { r.finished++ })
	require.NoError(t, err)
	return cd, r
}

func TestCountdownSetInitialBounds(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		wantErr bool
	}{
		{"Zero", 0, true},
		{"Negative", -time.Second, true},
		{"OneMillisecond", time.Millisecond, false},
		{"Max", 86_399_999 * time.Millisecond, false},
		{"TwentyFourHours", 86_400_000 * time.Millisecond, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd, r := newCountdown(t)
			err := cd.SetInitial(tt.d)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDuration)
				assert.Zero(t, cd.Initial())
				assert.Zero(t, cd.Remaining())
				assert.Empty(t, r.values)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.d, cd.Initial())
			assert.Equal(t, tt.d, cd.Remaining())
			assert.Equal(t, tt.d, r.last())
			assert.Equal(t, StateIdle, cd.State())
		})
	}
}

func TestCountdownRejectedSetInitialKeepsRunning(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Minute))
	cd.Start()
	r.step(time.Second)

	require.Error(t, cd.SetInitial(0))
	assert.Equal(t, StateRunning, cd.State())
	assert.Equal(t, time.Minute, cd.Initial())
	assert.True(t, cd.Ticking())
}

func TestCountdownRunsToZero(t *testing.T) {
	durations := []time.Duration{
		time.Millisecond,
		7 * time.Millisecond,
		time.Second,
		(12*3600 + 34*60 + 56) * time.Second,
		MaxCountdown,
	}

	for _, d := range durations {
		t.Run(d.String(), func(t *testing.T) {
			cd, r := newCountdown(t)
			require.NoError(t, cd.SetInitial(d))
			cd.Start()

			r.step(d)
			assert.Equal(t, StateFinished, cd.State())
			assert.Equal(t, time.Duration(0), r.last())
			assert.Zero(t, cd.Remaining())
			assert.Zero(t, r.scheduler.Active())
			assert.Equal(t, 1, r.finished)

			count := len(r.values)
			r.step(time.Second)
			assert.Len(t, r.values, count, "no ticks after finishing")
			assert.Equal(t, 1, r.finished)
		})
	}
}

func TestCountdownTicksDownFromDeadline(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))
	cd.Start()

	r.step(10 * time.Millisecond)
	assert.Equal(t, 990*time.Millisecond, r.last())

	r.step(300 * time.Millisecond)
	assert.Equal(t, 690*time.Millisecond, r.last())

	// Overshooting the deadline still ends on exactly one zero.
	r.step(time.Hour)
	assert.Equal(t, []time.Duration{time.Second, 990 * time.Millisecond, 690 * time.Millisecond, 0}, r.values)
}

func TestCountdownSubMillisecondRemainderIsNotZero(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))
	cd.Start()

	r.step(time.Second - time.Microsecond)
	assert.Equal(t, StateRunning, cd.State())
	assert.Equal(t, time.Millisecond, r.last())
}

func TestCountdownStartRequiresRemaining(t *testing.T) {
	cd, r := newCountdown(t)

	cd.Start()
	assert.Equal(t, StateIdle, cd.State())
	assert.Zero(t, r.scheduler.Started())
}

func TestCountdownStartIsIdempotent(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))

	cd.Start()
	r.clock.Advance(100 * time.Millisecond)
	cd.Start()

	assert.Equal(t, 1, r.scheduler.Started())
	r.step(100 * time.Millisecond)
	assert.Equal(t, 800*time.Millisecond, cd.Remaining())
}

func TestCountdownPauseAndContinue(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))
	cd.Start()

	r.step(10 * time.Millisecond)
	r.clock.Advance(5 * time.Millisecond)
	cd.Pause()
	assert.Equal(t, StatePaused, cd.State())
	assert.Equal(t, 985*time.Millisecond, cd.Remaining(), "pause recomputes between ticks")
	assert.Equal(t, 985*time.Millisecond, r.last())
	assert.Zero(t, r.scheduler.Active())

	r.clock.Advance(time.Hour)
	cd.Continue()
	assert.Equal(t, StateRunning, cd.State())

	r.step(985 * time.Millisecond)
	assert.Equal(t, StateFinished, cd.State())
	assert.Equal(t, 1, r.finished)
}

func TestCountdownStartResumesFromPause(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))
	cd.Start()
	r.step(400 * time.Millisecond)
	cd.Pause()

	cd.Start()
	r.step(100 * time.Millisecond)
	assert.Equal(t, 500*time.Millisecond, cd.Remaining())
}

func TestCountdownPauseAfterDeadlineFinishes(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))
	cd.Start()

	r.clock.Advance(2 * time.Second)
	cd.Pause()
	assert.Equal(t, StateFinished, cd.State())
	assert.Equal(t, time.Duration(0), r.last())
	assert.Equal(t, 1, r.finished)
}

func TestCountdownContinueRejected(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))

	cd.Continue()
	assert.Equal(t, StateIdle, cd.State(), "continue requires a pause")

	cd.Start()
	r.step(time.Second)
	cd.Continue()
	assert.Equal(t, StateFinished, cd.State())
	cd.Start()
	assert.Equal(t, StateFinished, cd.State())
	assert.Zero(t, r.scheduler.Active())
}

func TestCountdownPauseWhenNotRunning(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Second))
	count := len(r.values)

	cd.Pause()
	assert.Equal(t, StateIdle, cd.State())
	assert.Len(t, r.values, count)
}

func TestCountdownClearRestoresInitial(t *testing.T) {
	tests := []struct {
		name  string
		setup func(cd *Countdown, r *countdownRig)
	}{
		{"Idle", func(*Countdown, *countdownRig) {}},
		{"Running", func(cd *Countdown, r *countdownRig) {
			cd.Start()
			r.step(300 * time.Millisecond)
		}},
		{"Paused", func(cd *Countdown, r *countdownRig) {
			cd.Start()
			r.step(300 * time.Millisecond)
			cd.Pause()
		}},
		{"Finished", func(cd *Countdown, r *countdownRig) {
			cd.Start()
			r.step(time.Minute)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cd, r := newCountdown(t)
			require.NoError(t, cd.SetInitial(time.Second))
			tt.setup(cd, r)

			cd.Clear()
			assert.Equal(t, StateIdle, cd.State())
			assert.Equal(t, time.Second, cd.Remaining())
			assert.Equal(t, time.Second, cd.Initial())
			assert.Equal(t, time.Second, r.last())
			assert.Zero(t, r.scheduler.Active())

			// The restored duration can run again.
			cd.Start()
			r.step(time.Second)
			assert.Equal(t, StateFinished, cd.State())
		})
	}
}

func TestCountdownReset(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Minute))
	cd.Start()
	r.step(time.Second)

	cd.Reset()
	assert.Equal(t, StateIdle, cd.State())
	assert.Zero(t, cd.Initial())
	assert.Zero(t, cd.Remaining())
	assert.Equal(t, time.Duration(0), r.last())
	assert.Zero(t, r.scheduler.Active())

	cd.Start()
	assert.Equal(t, StateIdle, cd.State())
}

func TestCountdownSetInitialWhileRunningStopsTicking(t *testing.T) {
	cd, r := newCountdown(t)
	require.NoError(t, cd.SetInitial(time.Minute))
	cd.Start()

	require.NoError(t, cd.SetInitial(time.Second))
	assert.Equal(t, StateIdle, cd.State())
	assert.Zero(t, r.scheduler.Active())
	assert.Equal(t, time.Second, cd.Remaining())
}

func TestCountdownOptionalFinishCallback(t *testing.T) {
	r := newRig()
	cd, err := NewCountdown(r.deps(), r.observe, nil)
	require.NoError(t, err)

	require.NoError(t, cd.SetInitial(time.Millisecond))
	cd.Start()
	r.step(time.Millisecond)
	assert.Equal(t, StateFinished, cd.State())
}
