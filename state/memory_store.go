package state

import (
	"fmt"
	"sort"
	"sync"
)

func newMemKeyValueStore[K, V any](opts Options[K, V]) KeyValueStore[K, V] {
	return &memKeyValueStore[K, V]{
		store:    make(map[string]V, 16),
		keySerde: opts.KeySerde(),
		mu:       sync.Mutex{},
	}
}

type memKeyValueStore[K, V any] struct {
	store    map[string]V
	keySerde Serde[K]
	mu       sync.Mutex
}

var _ KeyValueStore[any, any] = &memKeyValueStore[any, any]{}

func (kvs *memKeyValueStore[K, V]) Get(key K) (v V, err error) {
	keySer, err := kvs.keySerde.Serialize(key)
	if err != nil {
		return v, fmt.Errorf("serialize key: %w", err)
	}

	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	v, exists := kvs.store[string(keySer)]
	if !exists {
		return v, ErrNotFound
	}
	return v, nil
}

func (kvs *memKeyValueStore[K, V]) Put(key K, value V) error {
	keySer, err := kvs.keySerde.Serialize(key)
	if err != nil {
		return fmt.Errorf("serialize key: %w", err)
	}

	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	kvs.store[string(keySer)] = value
	return nil
}

func (kvs *memKeyValueStore[K, V]) Delete(key K) error {
	keySer, err := kvs.keySerde.Serialize(key)
	if err != nil {
		return fmt.Errorf("serialize key: %w", err)
	}

	kvs.mu.Lock()
	defer kvs.mu.Unlock()

	delete(kvs.store, string(keySer))
	return nil
}

func (kvs *memKeyValueStore[K, V]) Range(fn func(K, V) bool) error {
	kvs.mu.Lock()
	keys := make([]string, 0, len(kvs.store))
	for k := range kvs.store {
		keys = append(keys, k)
	}
	values := make(map[string]V, len(kvs.store))
	for k, v := range kvs.store {
		values[k] = v
	}
	kvs.mu.Unlock()

	sort.Strings(keys)
	for _, k := range keys {
		key, err := kvs.keySerde.Deserialize([]byte(k))
		if err != nil {
			return fmt.Errorf("deserialize key: %w", err)
		}
		if !fn(key, values[k]) {
			return nil
		}
	}
	return nil
}

func (kvs *memKeyValueStore[K, V]) Close() error {
	return nil
}
