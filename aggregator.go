package cityagg

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrStopped           = errors.New("aggregator is stopped")
	ErrAlreadyStarted    = errors.New("aggregator is already started")
	ErrInvalidInterval   = errors.New("interval must be positive")
	ErrRotationExhausted = errors.New("rotation exhausted")
)

// State is a snapshot of the repetition guard.
type State struct {
	Count   int
	Stopped bool
}

func (s State) String() string {
	if s.Stopped {
		return "Stopped"
	}
	return fmt.Sprintf("Active(%d)", s.Count)
}

// Aggregator grows a city list once per tick for a bounded number of ticks.
//
// Each tick combines the current list with the fixed appendices, pairs the
// result with the rotating city for that tick, appends the rotating city to
// the list and forwards the pair to the sinks. Once the tick numbered
// ceiling completes, the trigger is cancelled and the aggregator stops.
type Aggregator struct {
	mu sync.Mutex

	cities   []string
	rotation []string
	ceiling  int
	count    int

	started bool
	stopped bool
	handle  Handle
	done    chan struct{}

	scheduler Scheduler
	process   Processor[tickInput]
	logger    *slog.Logger
}

func New(opts ...Option) *Aggregator {
	o := newOptions(opts...)

	return &Aggregator{
		cities:    Concat(o.seed),
		rotation:  o.rotation,
		ceiling:   o.ceiling,
		done:      make(chan struct{}),
		scheduler: o.scheduler,
		process:   newTickPipeline(o.appendices, o.sinks),
		logger:    o.logger,
	}
}

// Start schedules a tick every interval.
func (a *Aggregator) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return ErrStopped
	}
	if a.started {
		return ErrAlreadyStarted
	}
	a.started = true
	a.handle = a.scheduler.Schedule(interval, a.tick)

	a.logger.Info("aggregator started", "interval", interval, "ceiling", a.ceiling)
	return nil
}

// tick is the scheduled callback. A tick arriving after the aggregator
// stopped is dropped silently.
func (a *Aggregator) tick() {
	err := a.OnTick()
	if err != nil && !errors.Is(err, ErrStopped) {
		a.logger.Error("tick failed", "err", err)
	}
}

// OnTick runs one tick. It returns ErrStopped once the aggregator has
// stopped, and an error wrapping ErrRotationExhausted if the rotation has no
// entry for the current count; the latter also stops the aggregator.
func (a *Aggregator) OnTick() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return ErrStopped
	}

	idx := a.count
	if idx >= len(a.rotation) {
		a.stopLocked()
		return fmt.Errorf("%w: tick %d, rotation has %d entries", ErrRotationExhausted, idx, len(a.rotation))
	}

	in := tickInput{
		tick:   idx,
		cities: a.cities,
		city:   a.rotation[idx],
	}
	a.cities = append(a.cities, in.city)
	a.process(in)

	a.logger.Debug("tick done", "tick", idx, "city", in.city, "cities", len(a.cities))

	if a.count < a.ceiling {
		a.count++
	} else {
		a.stopLocked()
	}
	return nil
}

// Stop cancels the trigger. It is safe to call more than once.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
}

func (a *Aggregator) stopLocked() {
	if a.stopped {
		return
	}
	a.stopped = true
	if a.handle != nil {
		a.handle.Cancel()
	}
	close(a.done)

	a.logger.Info("aggregator stopped", "count", a.count, "cities", len(a.cities))
}

// Done is closed when the aggregator stops.
func (a *Aggregator) Done() <-chan struct{} {
	return a.done
}

// Cities returns a copy of the accumulated city list.
func (a *Aggregator) Cities() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Concat(a.cities)
}

func (a *Aggregator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return State{
		Count:   a.count,
		Stopped: a.stopped,
	}
}
