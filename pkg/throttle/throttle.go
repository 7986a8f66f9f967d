// Package throttle limits how often a callback runs.
package throttle

import (
	"sync"
	"time"
)

// Throttler delays a callback and drops calls made while a delayed call is pending.
// Arguments of dropped calls are discarded, they are not queued or merged.
type Throttler[T any] struct {
	callee  func(args ...T)
	timeout time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func New[T any](callee func(args ...T), timeout time.Duration) *Throttler[T] {
	return &Throttler[T]{
		callee:  callee,
		timeout: timeout,
	}
}

// Func returns a throttled version of callee.
func Func[T any](callee func(args ...T), timeout time.Duration) func(args ...T) {
	return New(callee, timeout).Do
}

// Do schedules the callee to run with args after the timeout, unless a call is already pending.
func (t *Throttler[T]) Do(args ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(t.timeout, func() {
		t.callee(args...)

		t.mu.Lock()
		defer t.mu.Unlock()
		if t.timer == timer {
			t.timer = nil
		}
	})
	t.timer = timer
}

// Pending reports whether a call is waiting to run or still running.
func (t *Throttler[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Stop cancels the pending call, if any. It reports whether a call was canceled.
// A callee that already started keeps running, and Do drops calls until it returns.
func (t *Throttler[T]) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil || !t.timer.Stop() {
		return false
	}
	t.timer = nil
	return true
}
