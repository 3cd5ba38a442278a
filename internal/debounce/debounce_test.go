package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const quiet = 30 * time.Millisecond

// TestTrigger_FiresOnceAfterQuietPeriod ensures a single trigger runs once.
func TestTrigger_FiresOnceAfterQuietPeriod(t *testing.T) {
	d := New(quiet)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	assert.True(t, d.Pending())
	assert.Equal(t, int32(0), calls.Load(), "must not fire before the quiet period")

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * quiet)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, d.Pending())
}

// TestTrigger_BurstCollapsesToLast ensures rapid triggers produce exactly one
// call carrying the last value.
func TestTrigger_BurstCollapsesToLast(t *testing.T) {
	d := New(quiet)
	var calls atomic.Int32
	var last atomic.Int32

	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Trigger(func() {
			calls.Add(1)
			last.Store(v)
		})
		time.Sleep(quiet / 5)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * quiet)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, int32(5), last.Load())
}

// TestStop_CancelsPending ensures teardown prevents a pending callback.
func TestStop_CancelsPending(t *testing.T) {
	d := New(quiet)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Stop()
	d.Stop() // idempotent

	time.Sleep(3 * quiet)
	assert.Equal(t, int32(0), calls.Load())
	assert.False(t, d.Trigger(func() { calls.Add(1) }), "trigger after stop must be refused")
	time.Sleep(3 * quiet)
	assert.Equal(t, int32(0), calls.Load())
}

// TestCancel_KeepsDebouncerUsable ensures Cancel drops only the pending call.
func TestCancel_KeepsDebouncerUsable(t *testing.T) {
	d := New(quiet)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(100) })
	d.Cancel()
	d.Trigger(func() { calls.Add(1) })

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestNew_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, New(0).Delay())
	assert.Equal(t, 1500*time.Millisecond, DefaultDelay)
}
