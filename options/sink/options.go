package sink

import (
	"time"
)

type options interface {
	SetBufferedChan(cap int)
	SetTimeout(t time.Duration)
}

type Option func(options)

func WithBufferedChan(cap int) Option {
	return func(o options) {
		o.SetBufferedChan(cap)
	}
}

// WithTimeout sets how long a write waits for the channel before the
// emission is dropped. A negative timeout waits forever.
func WithTimeout(timeout time.Duration) Option {
	return func(o options) {
		o.SetTimeout(timeout)
	}
}
