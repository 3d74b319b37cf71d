package state

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("cannot find value")

type ReadOnlyKeyValueStore[K, V any] interface {
	Get(key K) (V, error)
	// Range calls fn for every record in serialized key order until fn
	// returns false.
	Range(fn func(K, V) bool) error
}

type KeyValueStore[K, V any] interface {
	ReadOnlyKeyValueStore[K, V]

	Put(key K, value V) error
	Delete(key K) error
	Close() error
}

func NewKeyValueStore[K, V any](opts Options[K, V]) (KeyValueStore[K, V], error) {
	switch opts.StoreType() {
	case InMemory:
		return newMemKeyValueStore[K, V](opts), nil
	case BoltDB:
		return newBoltDBKeyValueStore[K, V](opts)
	default:
		return nil, fmt.Errorf("unsupported store type %d", opts.StoreType())
	}
}
