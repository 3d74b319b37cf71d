package cityagg

// Concat returns base followed by every appendix, in argument order.
// The result never shares memory with base.
func Concat[T any](base []T, appendices ...[]T) []T {
	n := len(base)
	for _, a := range appendices {
		n += len(a)
	}

	res := make([]T, 0, n)
	res = append(res, base...)
	for _, a := range appendices {
		res = append(res, a...)
	}
	return res
}

func Append[T any](seq []T, v T) []T {
	return Concat(seq, []T{v})
}

func Contains[T comparable](seq []T, q T) bool {
	for _, v := range seq {
		if v == q {
			return true
		}
	}
	return false
}

// AppendAndContains reports whether q is an element of seq ++ [v].
// Elements are compared with ==, so strings must match exactly.
func AppendAndContains[T comparable](seq []T, v, q T) bool {
	return Contains(Append(seq, v), q)
}

// Zip pairs a and b index by index, stopping at the shorter input.
func Zip[T1, T2 any](a []T1, b []T2) []Pair[T1, T2] {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	res := make([]Pair[T1, T2], n)
	for i := 0; i < n; i++ {
		res[i] = NewPair(a[i], b[i])
	}
	return res
}
