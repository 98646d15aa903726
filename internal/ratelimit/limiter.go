// Package ratelimit bounds outbound generation calls to at most N per
// rolling window. One instance is shared by the worker and any direct
// callers, so every mutating operation holds the same mutex.
package ratelimit

import (
	"fmt"
	"math"
	"sync"
	"time"
)

const (
	DefaultMaxCalls = 10
	DefaultWindow   = 60 * time.Second
)

// Error is returned by Record when the limiter is at capacity.
type Error struct {
	WaitSeconds int
}

func (e *Error) Error() string {
	return fmt.Sprintf("rate limit reached, next slot in %ds", e.WaitSeconds)
}

// Limiter is a sliding-window counter. Stale timestamps are purged lazily
// on every call rather than by a background timer; at this call volume the
// O(n) purge is irrelevant.
type Limiter struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	calls    []time.Time
	now      func() time.Time
}

func New(maxCalls int, window time.Duration) *Limiter {
	if maxCalls <= 0 {
		maxCalls = DefaultMaxCalls
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		maxCalls: maxCalls,
		window:   window,
		now:      time.Now,
	}
}

// purge drops timestamps older than the window. Caller must hold mu.
func (l *Limiter) purge() {
	cutoff := l.now().Add(-l.window)
	i := 0
	for ; i < len(l.calls); i++ {
		if l.calls[i].After(cutoff) {
			break
		}
	}
	l.calls = l.calls[i:]
}

// CanProceed reports whether a call would currently be admitted. It has no
// side effect beyond purging stale timestamps.
func (l *Limiter) CanProceed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purge()
	return len(l.calls) < l.maxCalls
}

// Record registers one call. At capacity it returns an *Error carrying the
// seconds until the oldest recorded call exits the window.
func (l *Limiter) Record() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purge()
	if len(l.calls) >= l.maxCalls {
		return &Error{WaitSeconds: l.waitSeconds()}
	}
	l.calls = append(l.calls, l.now())
	return nil
}

// Remaining returns how many calls are still admissible in the current
// window, floored at zero.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purge()
	r := l.maxCalls - len(l.calls)
	if r < 0 {
		r = 0
	}
	return r
}

// TimeUntilNextSlot is zero while under capacity, otherwise the time until
// the oldest in-window call expires.
func (l *Limiter) TimeUntilNextSlot() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purge()
	if len(l.calls) < l.maxCalls {
		return 0
	}
	return l.calls[0].Add(l.window).Sub(l.now())
}

// waitSeconds rounds the wait up to whole seconds. Caller must hold mu and
// have purged already.
func (l *Limiter) waitSeconds() int {
	if len(l.calls) == 0 {
		return 0
	}
	wait := l.calls[0].Add(l.window).Sub(l.now())
	if wait < 0 {
		return 0
	}
	return int(math.Ceil(wait.Seconds()))
}
