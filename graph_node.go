package cityagg

type graphNode[T, TR any] struct {
	processor Processor[T]
	supplier  ProcessorSupplier[T, TR]
	forwards  func() []Processor[TR]
}

func newProcessorNode[T, TR any](supplier ProcessorSupplier[T, TR]) *graphNode[T, TR] {
	return &graphNode[T, TR]{
		supplier: supplier,
		forwards: func() []Processor[TR] { return make([]Processor[TR], 0) },
	}
}

func newFallThroughNode[T any]() *graphNode[T, T] {
	return newProcessorNode[T, T](newFallThroughSupplier[T]())
}

func addChild[T, TR, TRR any](parent *graphNode[T, TR], child *graphNode[TR, TRR]) {
	current := parent.forwards
	parent.forwards = func() []Processor[TR] {
		return append(current(), build(child))
	}
}

// build composes n with all of its descendants. A node reached through more
// than one parent is built once and shared.
func build[T, TR any](n *graphNode[T, TR]) Processor[T] {
	if n.processor == nil {
		n.processor = n.supplier.Processor(n.forwards()...)
	}
	return n.processor
}

// newTickPipeline wires the per-tick flow:
//
//	tickInput -> combine -> fan out -> sink, sink, ...
//
// Every processor runs synchronously on the caller's goroutine.
func newTickPipeline(appendices [][]string, sinks []Sink) Processor[tickInput] {
	combineNode := newProcessorNode[tickInput, Emission](newMapSupplier(func(in tickInput) Emission {
		return Emission{
			Tick:   in.tick,
			Cities: Concat(in.cities, appendices...),
			City:   in.city,
		}
	}))

	fanOutNode := newFallThroughNode[Emission]()
	addChild(combineNode, fanOutNode)
	for _, s := range sinks {
		sinkNode := newProcessorNode[Emission, Emission](newForeachSupplier(s.Write))
		addChild(fanOutNode, sinkNode)
	}

	return build(combineNode)
}
