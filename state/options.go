package state

import "errors"

type StoreType int

const (
	InMemory StoreType = iota
	BoltDB
)

func (t StoreType) String() string {
	switch t {
	case InMemory:
		return "memory"
	case BoltDB:
		return "boltdb"
	default:
		return "unknown"
	}
}

type Options[K, V any] interface {
	KeySerde() Serde[K]
	ValueSerde() Serde[V]
	StoreType() StoreType
	Name() string
	DirPath() string
}

func NewOptions[K, V any](opts ...Option[K, V]) (Options[K, V], error) {
	// default options
	// key, value will be serialized/deserialized by json
	// records will be stored in memory
	o := &options[K, V]{
		keySerde:   &jsonSerde[K]{},
		valueSerde: &jsonSerde[V]{},
		storeType:  InMemory,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

type options[K, V any] struct {
	keySerde   Serde[K]
	valueSerde Serde[V]
	storeType  StoreType
	name       string
	dirPath    string
}

var _ Options[any, any] = &options[any, any]{}

func (o *options[K, V]) KeySerde() Serde[K] {
	return o.keySerde
}

func (o *options[K, V]) ValueSerde() Serde[V] {
	return o.valueSerde
}

func (o *options[K, V]) StoreType() StoreType {
	return o.storeType
}

func (o *options[K, V]) Name() string {
	return o.name
}

func (o *options[K, V]) DirPath() string {
	return o.dirPath
}

type Option[K, V any] func(*options[K, V]) error

func WithKeySerde[K, V any](keySerde Serde[K]) Option[K, V] {
	return func(o *options[K, V]) error {
		if keySerde == nil {
			return errors.New("keySerde must not be nil")
		}
		o.keySerde = keySerde
		return nil
	}
}

func WithValueSerde[K, V any](valueSerde Serde[V]) Option[K, V] {
	return func(o *options[K, V]) error {
		if valueSerde == nil {
			return errors.New("valueSerde must not be nil")
		}
		o.valueSerde = valueSerde
		return nil
	}
}

func WithInMemory[K, V any]() Option[K, V] {
	return func(o *options[K, V]) error {
		o.storeType = InMemory
		return nil
	}
}

// WithBoltDB stores records in the bucket name of a BoltDB file under the
// directory set by WithDirPath.
func WithBoltDB[K, V any](name string) Option[K, V] {
	return func(o *options[K, V]) error {
		if name == "" {
			return errors.New("bucket name must not be empty")
		}
		o.storeType = BoltDB
		o.name = name
		return nil
	}
}

func WithDirPath[K, V any](dirPath string) Option[K, V] {
	return func(o *options[K, V]) error {
		o.dirPath = dirPath
		return nil
	}
}
