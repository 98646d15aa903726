package ratelimit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(maxCalls int, window time.Duration) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	l := New(maxCalls, window)
	l.now = clock.Now
	return l, clock
}

func TestRemainingTracksWindowCount(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	assert.Equal(t, 3, l.Remaining())
	for i := 1; i <= 3; i++ {
		require.NoError(t, l.Record())
		assert.Equal(t, 3-i, l.Remaining())
	}
	assert.Equal(t, 0, l.Remaining())
}

func TestRecordFailsAtCapacity(t *testing.T) {
	l, _ := newTestLimiter(2, time.Minute)

	require.NoError(t, l.Record())
	require.NoError(t, l.Record())

	err := l.Record()
	require.Error(t, err)

	var rlErr *Error
	require.True(t, errors.As(err, &rlErr))
	assert.Greater(t, rlErr.WaitSeconds, 0)
	assert.False(t, l.CanProceed())
}

func TestRecordRecoversAfterOldestExpires(t *testing.T) {
	l, clock := newTestLimiter(2, time.Minute)

	require.NoError(t, l.Record())
	clock.Advance(20 * time.Second)
	require.NoError(t, l.Record())
	require.Error(t, l.Record())

	// First call exits the window 60s after it was recorded.
	clock.Advance(41 * time.Second)
	assert.True(t, l.CanProceed())
	assert.Equal(t, 1, l.Remaining())
	require.NoError(t, l.Record())

	// Now the second original call is still in-window: full again.
	require.Error(t, l.Record())
}

func TestTimeUntilNextSlot(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	assert.Equal(t, time.Duration(0), l.TimeUntilNextSlot())

	require.NoError(t, l.Record())
	assert.Equal(t, time.Minute, l.TimeUntilNextSlot())

	clock.Advance(45 * time.Second)
	assert.Equal(t, 15*time.Second, l.TimeUntilNextSlot())

	clock.Advance(15 * time.Second)
	assert.Equal(t, time.Duration(0), l.TimeUntilNextSlot())
}

func TestWaitSecondsRoundsUp(t *testing.T) {
	l, clock := newTestLimiter(1, time.Minute)

	require.NoError(t, l.Record())
	clock.Advance(59*time.Second + 500*time.Millisecond)

	err := l.Record()
	var rlErr *Error
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 1, rlErr.WaitSeconds)
}

func TestDefaultsApplied(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, DefaultMaxCalls, l.maxCalls)
	assert.Equal(t, DefaultWindow, l.window)
}
