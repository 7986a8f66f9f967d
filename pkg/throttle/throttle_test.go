package throttle

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]int
	done  chan struct{}
}

func newRecorder() *recorder {
	return &recorder{done: make(chan struct{}, 16)}
}

func (r *recorder) callee(args ...int) {
	r.mu.Lock()
	r.calls = append(r.calls, args)
	r.mu.Unlock()
	r.done <- struct{}{}
}

func (r *recorder) Calls() [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]int{}, r.calls...)
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(time.Second):
		require.FailNow(t, "callee was not called")
	}
}

func TestThrottle(t *testing.T) {
	rec := newRecorder()
	throttler := New(rec.callee, 100*time.Millisecond)

	throttler.Do(1, 2)
	throttler.Do(3)
	assert.True(t, throttler.Pending())
	assert.Empty(t, rec.Calls(), "callee must wait for the timeout")

	rec.wait(t)
	assert.Equal(t, [][]int{{1, 2}}, rec.Calls())
	assert.Eventually(t, func() bool { return !throttler.Pending() }, time.Second, 5*time.Millisecond)

	// next window accepts a new call
	throttler.Do(4)
	rec.wait(t)
	assert.Equal(t, [][]int{{1, 2}, {4}}, rec.Calls())
}

func TestThrottleStop(t *testing.T) {
	rec := newRecorder()
	throttler := New(rec.callee, 50*time.Millisecond)

	assert.False(t, throttler.Stop())
	throttler.Do(1)
	assert.True(t, throttler.Stop())
	assert.False(t, throttler.Pending())

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.Calls())
}

func TestThrottleStopWhileRunning(t *testing.T) {
	var (
		started = make(chan struct{})
		release = make(chan struct{})
		calls   atomic.Int32
	)
	throttler := New(func(...int) {
		calls.Add(1)
		started <- struct{}{}
		<-release
	}, 10*time.Millisecond)

	throttler.Do(1)
	select {
	case <-started:
	case <-time.After(time.Second):
		require.FailNow(t, "callee was not called")
	}

	assert.False(t, throttler.Stop(), "a running callee can't be canceled")
	assert.True(t, throttler.Pending())
	throttler.Do(2)

	close(release)
	assert.Eventually(t, func() bool { return !throttler.Pending() }, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFunc(t *testing.T) {
	rec := newRecorder()
	fn := Func(rec.callee, 200*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(i)
		}()
	}
	wg.Wait()

	rec.wait(t)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, rec.Calls(), 1)
}
