package state

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

type Serde[T any] interface {
	Serialize(T) ([]byte, error)
	Deserialize([]byte) (T, error)
}

var (
	IntSerde Serde[int]    = &intSerde{}
	StrSerde Serde[string] = &stringSerde{}
)

func JSONSerde[T any]() Serde[T] {
	return &jsonSerde[T]{}
}

type jsonSerde[T any] struct{}

var _ Serde[any] = &jsonSerde[any]{}

func (*jsonSerde[T]) Serialize(o T) ([]byte, error) {
	return json.Marshal(o)
}

func (*jsonSerde[T]) Deserialize(b []byte) (T, error) {
	var res T
	err := json.Unmarshal(b, &res)
	return res, err
}

// intSerde encodes big-endian so that BoltDB iterates non-negative keys in
// numeric order.
type intSerde struct{}

var _ Serde[int] = &intSerde{}

func (*intSerde) Serialize(i int) ([]byte, error) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(i))
	return b, nil
}

func (*intSerde) Deserialize(b []byte) (int, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("int key must be 8 bytes, got %d", len(b))
	}
	return int(binary.BigEndian.Uint64(b)), nil
}

type stringSerde struct{}

var _ Serde[string] = &stringSerde{}

func (*stringSerde) Serialize(s string) ([]byte, error) {
	return []byte(s), nil
}

func (*stringSerde) Deserialize(b []byte) (string, error) {
	return string(b), nil
}
