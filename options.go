package cityagg

import (
	"log/slog"
	"time"

	"github.com/KumKeeHyun/cityagg/options/sink"
)

type options struct {
	seed       []string
	rotation   []string
	appendices [][]string
	ceiling    int
	scheduler  Scheduler
	sinks      []Sink
	logger     *slog.Logger
}

type Option func(*options)

func newOptions(opts ...Option) *options {
	// defaults reproduce the sample: seven seed cities, five rotating
	// cities, ticks 0..4
	o := &options{
		seed:       DefaultSeed(),
		rotation:   DefaultRotation(),
		appendices: singletons(DefaultAppendices()),
		ceiling:    DefaultCeiling,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.scheduler == nil {
		o.scheduler = NewTickerScheduler()
	}
	if o.sinks == nil {
		o.sinks = []Sink{NewLogSink(o.logger)}
	}
	return o
}

func WithSeed(cities ...string) Option {
	return func(o *options) {
		o.seed = Concat(cities)
	}
}

func WithRotation(cities ...string) Option {
	return func(o *options) {
		o.rotation = Concat(cities)
	}
}

// WithAppendices sets the constant cities combined into every emission, in
// the order given.
func WithAppendices(cities ...string) Option {
	return func(o *options) {
		o.appendices = singletons(cities)
	}
}

func WithCeiling(ceiling int) Option {
	return func(o *options) {
		o.ceiling = ceiling
	}
}

func WithScheduler(scheduler Scheduler) Option {
	return func(o *options) {
		o.scheduler = scheduler
	}
}

// WithSinks replaces the default log sink.
func WithSinks(sinks ...Sink) Option {
	return func(o *options) {
		o.sinks = append(make([]Sink, 0, len(sinks)), sinks...)
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func singletons(values []string) [][]string {
	res := make([][]string, len(values))
	for i, v := range values {
		res[i] = []string{v}
	}
	return res
}

// -------------------------------

type sinkOption struct {
	isBuffer bool
	buffer   int
	timeout  time.Duration
}

var _ interface {
	SetBufferedChan(cap int)
	SetTimeout(t time.Duration)
} = &sinkOption{}

func (o *sinkOption) SetBufferedChan(cap int) {
	o.isBuffer = true
	o.buffer = cap
}

func (o *sinkOption) SetTimeout(t time.Duration) {
	o.timeout = t
}

func (o *sinkOption) BuildPipe() chan Emission {
	if o.isBuffer {
		return make(chan Emission, o.buffer)
	}
	return make(chan Emission)
}

func newSinkOption(opts ...sink.Option) *sinkOption {
	sinkOpt := &sinkOption{
		isBuffer: false,
		timeout:  0,
	}
	for _, opt := range opts {
		opt(sinkOpt)
	}
	return sinkOpt
}
