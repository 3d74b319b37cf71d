package cityagg

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestManualSchedulerAdvance(t *testing.T) {
	s := NewManualScheduler()

	var fired []string
	s.Schedule(2*time.Second, func() { fired = append(fired, "two") })
	s.Schedule(3*time.Second, func() { fired = append(fired, "three") })

	s.Advance(time.Second)
	assert.Empty(t, fired)

	s.Advance(5 * time.Second)
	// t=2 two, t=3 three, t=4 two, t=6 two and three in registration order
	assert.Equal(t, []string{"two", "three", "two", "two", "three"}, fired)
	assert.Equal(t, 6*time.Second, s.Now())
}

func TestManualSchedulerCancelInsideCallback(t *testing.T) {
	s := NewManualScheduler()

	calls := 0
	var h Handle
	h = s.Schedule(time.Second, func() {
		calls++
		if calls == 3 {
			h.Cancel()
		}
	})

	s.Advance(10 * time.Second)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, s.Active())

	h.Cancel()
	assert.Equal(t, 0, s.Active())
}

func TestManualSchedulerFire(t *testing.T) {
	s := NewManualScheduler()

	calls := 0
	h := s.Schedule(time.Hour, func() { calls++ })

	s.Fire()
	assert.Equal(t, 1, calls)
	assert.Equal(t, time.Duration(0), s.Now())

	h.Cancel()
	s.Fire()
	assert.Equal(t, 1, calls)

	// cancelled callbacks stay reachable
	callbacks := s.Callbacks()
	require.Len(t, callbacks, 1)
	callbacks[0]()
	assert.Equal(t, 2, calls)
}

func TestTickerSchedulerFires(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewTickerScheduler()

	var calls atomic.Int32
	fired := make(chan struct{}, 1)
	s.Schedule(time.Millisecond, func() {
		if calls.Add(1) == 3 {
			fired <- struct{}{}
		}
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("ticker did not fire")
	}
	s.Close()
}

func TestTickerSchedulerCancelStopsCallbacks(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewTickerScheduler()

	var calls atomic.Int32
	handles := make(chan Handle, 1)
	h := s.Schedule(time.Millisecond, func() {
		calls.Add(1)
		(<-handles).Cancel()
	})
	handles <- h

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, time.Second, time.Millisecond)
	s.Close()

	assert.Equal(t, int32(1), calls.Load())
	h.Cancel()
}

func TestTickerSchedulerCloseWithoutSchedules(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewTickerScheduler()
	s.Close()
	s.Close()
}
