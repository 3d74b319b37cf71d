package cityagg

import "fmt"

type Pair[T1, T2 any] struct {
	First  T1
	Second T2
}

func NewPair[T1, T2 any](first T1, second T2) Pair[T1, T2] {
	return Pair[T1, T2]{
		First:  first,
		Second: second,
	}
}

// Emission is the value produced by one tick: the combined city list paired
// with the rotating city selected for that tick.
type Emission struct {
	Tick   int      `json:"tick"`
	Cities []string `json:"cities"`
	City   string   `json:"city"`
}

func (e Emission) Pair() Pair[[]string, string] {
	return NewPair(e.Cities, e.City)
}

func (e Emission) String() string {
	return fmt.Sprintf("(%q, %q)", e.Cities, e.City)
}

type tickInput struct {
	tick   int
	cities []string
	city   string
}
