package cityagg

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockProcessorSupplier[V, VR any] struct{}

var _ ProcessorSupplier[any, any] = &mockProcessorSupplier[any, any]{}

func (*mockProcessorSupplier[V, VR]) Processor(_ ...Processor[VR]) Processor[V] {
	return func(v V) {}
}

func newMockProcessorNode[V, VR any]() *graphNode[V, VR] {
	return newProcessorNode[V, VR](&mockProcessorSupplier[V, VR]{})
}

func assertEqualPointer(t *testing.T, expected, actual any) {
	assert.Equal(t, reflect.ValueOf(expected).Pointer(), reflect.ValueOf(actual).Pointer())
}

func TestAddChildStraight(t *testing.T) {
	first := newMockProcessorNode[int, string]()
	second := newMockProcessorNode[string, int]()
	third := newMockProcessorNode[int, float64]()

	addChild(first, second)
	addChild(second, third)

	ffs := first.forwards()
	assert.Equal(t, 1, len(ffs))
	assertEqualPointer(t, second.processor, ffs[0])

	sfs := second.forwards()
	assert.Equal(t, 1, len(sfs))
	assertEqualPointer(t, third.processor, sfs[0])

	assert.Equal(t, 0, len(third.forwards()))
}

func TestAddChildSplit(t *testing.T) {
	first := newMockProcessorNode[int, string]()
	second := newMockProcessorNode[string, int]()
	third := newMockProcessorNode[string, float64]()

	addChild(first, second)
	addChild(first, third)

	ffs := first.forwards()
	assert.Equal(t, 2, len(ffs))
	assertEqualPointer(t, second.processor, ffs[0])
	assertEqualPointer(t, third.processor, ffs[1])
}

func TestAddChildMerge(t *testing.T) {
	first := newMockProcessorNode[int, string]()
	second := newMockProcessorNode[int, string]()
	third := newMockProcessorNode[string, float64]()

	addChild(first, third)
	addChild(second, third)

	ffs := first.forwards()
	sfs := second.forwards()
	assert.Equal(t, 1, len(ffs))
	assert.Equal(t, 1, len(sfs))
	assertEqualPointer(t, ffs[0], sfs[0])
}

func TestTickPipelineFansOutInSinkOrder(t *testing.T) {
	var order []string
	var got []Emission
	sinks := []Sink{
		SinkFunc(func(e Emission) {
			order = append(order, "first")
			got = append(got, e)
		}),
		SinkFunc(func(e Emission) {
			order = append(order, "second")
		}),
	}

	p := newTickPipeline([][]string{{"X"}, {"Y"}}, sinks)
	p(tickInput{tick: 2, cities: []string{"A"}, city: "Z"})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, []Emission{{Tick: 2, Cities: []string{"A", "X", "Y"}, City: "Z"}}, got)
}

func TestTickPipelineWithoutSinks(t *testing.T) {
	p := newTickPipeline(nil, nil)
	assert.NotPanics(t, func() {
		p(tickInput{cities: []string{"A"}, city: "B"})
	})
}
