package cityagg

import (
	"log/slog"
	"sync"

	"github.com/KumKeeHyun/cityagg/options/sink"
	"github.com/KumKeeHyun/cityagg/state"
)

// Sink receives every emission. Write is called while the aggregator holds
// its tick lock, so implementations must not call back into the Aggregator.
type Sink interface {
	Write(e Emission)
}

type SinkFunc func(e Emission)

func (f SinkFunc) Write(e Emission) {
	f(e)
}

// -------------------------------

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

type LogSink struct {
	logger *slog.Logger
}

var _ Sink = &LogSink{}

func (s *LogSink) Write(e Emission) {
	s.logger.Info("emit", "tick", e.Tick, "cities", e.Cities, "city", e.City)
}

// -------------------------------

// NewChanSink returns a sink that forwards emissions to a channel. By
// default the channel is unbuffered and an emission nobody is ready to
// receive is dropped.
func NewChanSink(logger *slog.Logger, opts ...sink.Option) *ChanSink {
	if logger == nil {
		logger = slog.Default()
	}
	opt := newSinkOption(opts...)
	p := opt.BuildPipe()

	return &ChanSink{
		pipe:    p,
		process: newSinkSupplier[Emission](p, opt.timeout, logger).Processor(),
	}
}

type ChanSink struct {
	pipe    chan Emission
	process Processor[Emission]
	once    sync.Once
}

var _ Sink = &ChanSink{}

func (s *ChanSink) Write(e Emission) {
	s.process(e)
}

func (s *ChanSink) C() <-chan Emission {
	return s.pipe
}

// Close closes the channel. Writing after Close panics.
func (s *ChanSink) Close() {
	s.once.Do(func() {
		close(s.pipe)
	})
}

// -------------------------------

// NewStoreSink records emissions in store keyed by tick.
func NewStoreSink(store state.KeyValueStore[int, Emission], logger *slog.Logger) *StoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreSink{
		store:  store,
		logger: logger,
	}
}

type StoreSink struct {
	store  state.KeyValueStore[int, Emission]
	logger *slog.Logger
}

var _ Sink = &StoreSink{}

func (s *StoreSink) Write(e Emission) {
	if err := s.store.Put(e.Tick, e); err != nil {
		s.logger.Warn("failed to record emission", "tick", e.Tick, "err", err)
	}
}
