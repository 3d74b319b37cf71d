package cityagg

import (
	"log/slog"
	"time"
)

type Processor[T any] func(v T)

type ProcessorSupplier[T, TR any] interface {
	Processor(forwards ...Processor[TR]) Processor[T]
}

// -------------------------------

func newFallThroughSupplier[T any]() *fallThroughSupplier[T] {
	return &fallThroughSupplier[T]{}
}

type fallThroughSupplier[T any] struct{}

var _ ProcessorSupplier[any, any] = &fallThroughSupplier[any]{}

func (p *fallThroughSupplier[T]) Processor(forwards ...Processor[T]) Processor[T] {
	return func(v T) {
		for _, forward := range forwards {
			forward(v)
		}
	}
}

// -------------------------------

func newForeachSupplier[T any](foreacher func(T)) *foreachSupplier[T] {
	return &foreachSupplier[T]{
		foreacher: foreacher,
	}
}

type foreachSupplier[T any] struct {
	foreacher func(T)
}

var _ ProcessorSupplier[any, any] = &foreachSupplier[any]{}

func (p *foreachSupplier[T]) Processor(_ ...Processor[T]) Processor[T] {
	return func(v T) {
		p.foreacher(v)
	}
}

// -------------------------------

func newMapSupplier[T, TR any](mapper func(T) TR) *mapSupplier[T, TR] {
	return &mapSupplier[T, TR]{
		mapper: mapper,
	}
}

type mapSupplier[T, TR any] struct {
	mapper func(T) TR
}

var _ ProcessorSupplier[any, any] = &mapSupplier[any, any]{}

func (p *mapSupplier[T, TR]) Processor(forwards ...Processor[TR]) Processor[T] {
	return func(v T) {
		vr := p.mapper(v)
		for _, forward := range forwards {
			forward(vr)
		}
	}
}

// -------------------------------

// newSinkSupplier delivers values to output. A negative timeout blocks until
// the value is received, zero drops it when output is not ready, and a
// positive timeout waits that long before dropping.
func newSinkSupplier[T any](output chan<- T, timeout time.Duration, logger *slog.Logger) *sinkSupplier[T] {
	return &sinkSupplier[T]{
		output:  output,
		timeout: timeout,
		logger:  logger,
	}
}

type sinkSupplier[T any] struct {
	output  chan<- T
	timeout time.Duration
	logger  *slog.Logger
}

var _ ProcessorSupplier[any, any] = &sinkSupplier[any]{}

func (p *sinkSupplier[T]) Processor(_ ...Processor[T]) Processor[T] {
	switch {
	case p.timeout < 0:
		return func(v T) {
			p.output <- v
		}
	case p.timeout == 0:
		return func(v T) {
			select {
			case p.output <- v:
			default:
				p.logger.Warn("output channel is busy, drop value", "value", v)
			}
		}
	default:
		return func(v T) {
			timer := time.NewTimer(p.timeout)
			defer timer.Stop()

			select {
			case p.output <- v:
			case <-timer.C:
				p.logger.Warn("output channel is busy, drop value", "value", v, "timeout", p.timeout)
			}
		}
	}
}
