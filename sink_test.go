package cityagg

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KumKeeHyun/cityagg/options/sink"
	"github.com/KumKeeHyun/cityagg/state"
)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	NewLogSink(logger).Write(Emission{Tick: 2, Cities: []string{"A"}, City: "New Orleans"})

	out := buf.String()
	assert.Contains(t, out, "msg=emit")
	assert.Contains(t, out, "tick=2")
	assert.Contains(t, out, `city="New Orleans"`)
}

func TestChanSinkBuffered(t *testing.T) {
	s := NewChanSink(discardLogger, sink.WithBufferedChan(2))

	s.Write(Emission{Tick: 0, City: "Honolulu"})
	s.Write(Emission{Tick: 1, City: "San Diego"})
	s.Write(Emission{Tick: 2, City: "dropped"})
	s.Close()

	var got []string
	for e := range s.C() {
		got = append(got, e.City)
	}
	assert.Equal(t, []string{"Honolulu", "San Diego"}, got)
}

func TestChanSinkDropsWithoutReceiver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s := NewChanSink(logger, sink.WithTimeout(time.Millisecond))

	s.Write(Emission{City: "Honolulu"})
	assert.Contains(t, buf.String(), "output channel is busy")
	s.Close()
	s.Close()
}

func TestChanSinkWithAggregator(t *testing.T) {
	s := NewChanSink(discardLogger, sink.WithBufferedChan(DefaultCeiling+1))
	agg := New(WithScheduler(NewManualScheduler()), WithSinks(s), WithLogger(discardLogger))

	for i := 0; i <= DefaultCeiling; i++ {
		require.NoError(t, agg.OnTick())
	}
	s.Close()

	var got []string
	for e := range s.C() {
		got = append(got, e.City)
	}
	assert.Equal(t, DefaultRotation(), got)
}

func TestStoreSink(t *testing.T) {
	opts, err := state.NewOptions(state.WithKeySerde[int, Emission](state.IntSerde))
	require.NoError(t, err)
	store, err := state.NewKeyValueStore(opts)
	require.NoError(t, err)
	defer store.Close()

	sched := NewManualScheduler()
	agg := New(WithScheduler(sched), WithSinks(NewStoreSink(store, discardLogger)), WithLogger(discardLogger))
	require.NoError(t, agg.Start(time.Second))
	sched.Advance(time.Minute)

	var ticks []int
	var cities []string
	require.NoError(t, store.Range(func(tick int, e Emission) bool {
		ticks = append(ticks, tick)
		cities = append(cities, e.City)
		return true
	}))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ticks)
	assert.Equal(t, DefaultRotation(), cities)

	last, err := store.Get(4)
	require.NoError(t, err)
	assert.Len(t, last.Cities, 11+3)
}
