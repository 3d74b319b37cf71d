package cityagg

import (
	"sync"
	"time"
)

// Handle identifies a scheduled callback. Cancel is idempotent.
type Handle interface {
	Cancel()
}

type Scheduler interface {
	// Schedule calls callback every interval until the returned Handle is
	// cancelled. The first call happens one interval after scheduling.
	Schedule(interval time.Duration, callback func()) Handle
}

// -------------------------------

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{
		routineGroup: sync.WaitGroup{},
		handles:      map[*tickerHandle]struct{}{},
	}
}

// TickerScheduler runs each scheduled callback on its own goroutine driven
// by a time.Ticker.
type TickerScheduler struct {
	mu           sync.Mutex
	routineGroup sync.WaitGroup
	handles      map[*tickerHandle]struct{}
}

var _ Scheduler = &TickerScheduler{}

func (s *TickerScheduler) Schedule(interval time.Duration, callback func()) Handle {
	h := &tickerHandle{done: make(chan struct{})}

	s.mu.Lock()
	s.handles[h] = struct{}{}
	s.mu.Unlock()

	s.routineGroup.Add(1)
	go func() {
		defer func() {
			s.remove(h)
			s.routineGroup.Done()
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// a tick racing with Cancel must not run the callback
				select {
				case <-h.done:
					return
				default:
				}
				callback()
			case <-h.done:
				return
			}
		}
	}()

	return h
}

// Close cancels every live handle and waits for their goroutines to exit.
// It must not be called from inside a scheduled callback.
func (s *TickerScheduler) Close() {
	s.mu.Lock()
	handles := make([]*tickerHandle, 0, len(s.handles))
	for h := range s.handles {
		handles = append(handles, h)
	}
	s.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
	s.routineGroup.Wait()
}

func (s *TickerScheduler) remove(h *tickerHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.handles, h)
}

type tickerHandle struct {
	once sync.Once
	done chan struct{}
}

func (h *tickerHandle) Cancel() {
	h.once.Do(func() {
		close(h.done)
	})
}

// -------------------------------

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ManualScheduler is a Scheduler driven by an explicit clock. Nothing fires
// until Advance or Fire is called, and callbacks run on the caller's
// goroutine.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	entries []*manualEntry
}

var _ Scheduler = &ManualScheduler{}

type manualEntry struct {
	s         *ManualScheduler
	interval  time.Duration
	next      time.Duration
	callback  func()
	cancelled bool
}

func (e *manualEntry) Cancel() {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()

	e.cancelled = true
}

func (s *ManualScheduler) Schedule(interval time.Duration, callback func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &manualEntry{
		s:        s,
		interval: interval,
		next:     s.now + interval,
		callback: callback,
	}
	s.entries = append(s.entries, e)
	return e
}

// Advance moves the clock forward by d, firing due callbacks in time order.
// Callbacks due at the same instant fire in registration order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var due *manualEntry
		for _, e := range s.entries {
			if e.cancelled || e.interval <= 0 || e.next > target {
				continue
			}
			if due == nil || e.next < due.next {
				due = e
			}
		}
		if due == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = due.next
		due.next += due.interval
		callback := due.callback
		s.mu.Unlock()

		callback()
	}
}

// Fire calls every live callback once without moving the clock.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()
	callbacks := make([]func(), 0, len(s.entries))
	for _, e := range s.entries {
		if !e.cancelled {
			callbacks = append(callbacks, e.callback)
		}
	}
	s.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// Callbacks returns every callback ever scheduled, cancelled or not, in
// registration order.
func (s *ManualScheduler) Callbacks() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	callbacks := make([]func(), len(s.entries))
	for i, e := range s.entries {
		callbacks[i] = e.callback
	}
	return callbacks
}

// Active returns the number of callbacks that are still scheduled.
func (s *ManualScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, e := range s.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}
