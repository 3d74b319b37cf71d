package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	dbFile = "cityagg.db"
)

// Stores opened on the same file share one *bolt.DB, since BoltDB holds an
// exclusive file lock. The handle is closed with its last store.
var (
	dbs     = map[string]*sharedDB{}
	dbslock = sync.Mutex{}
)

type sharedDB struct {
	db   *bolt.DB
	refs int
}

func acquireBoltDB(path string) (*bolt.DB, error) {
	dbslock.Lock()
	defer dbslock.Unlock()

	if shared, exists := dbs[path]; exists {
		shared.refs++
		return shared.db, nil
	}

	bopts := &bolt.Options{}
	bopts.Timeout = time.Second

	db, err := bolt.Open(path, 0600, bopts)
	if err != nil {
		return nil, fmt.Errorf("open boltdb %s: %w", path, err)
	}
	dbs[path] = &sharedDB{db: db, refs: 1}
	return db, nil
}

func releaseBoltDB(path string) error {
	dbslock.Lock()
	defer dbslock.Unlock()

	shared, exists := dbs[path]
	if !exists {
		return nil
	}
	shared.refs--
	if shared.refs > 0 {
		return nil
	}
	delete(dbs, path)
	return shared.db.Close()
}

func newBoltDBKeyValueStore[K, V any](opts Options[K, V]) (KeyValueStore[K, V], error) {
	if dir := opts.DirPath(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	dbPath := filepath.Join(opts.DirPath(), dbFile)
	db, err := acquireBoltDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create new bucket with Options.Name().
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(opts.Name()))
		return err
	})
	if err != nil {
		_ = releaseBoltDB(dbPath)
		return nil, fmt.Errorf("create bucket %q: %w", opts.Name(), err)
	}

	return &boltDBKeyValueStore[K, V]{
		path:     dbPath,
		db:       db,
		bucket:   []byte(opts.Name()),
		keySerde: opts.KeySerde(),
		valSerde: opts.ValueSerde(),
	}, nil
}

type boltDBKeyValueStore[K, V any] struct {
	path     string
	db       *bolt.DB
	bucket   []byte
	keySerde Serde[K]
	valSerde Serde[V]

	closeOnce sync.Once
	closeErr  error
}

var _ KeyValueStore[any, any] = &boltDBKeyValueStore[any, any]{}

func (kvs *boltDBKeyValueStore[K, V]) Get(key K) (v V, err error) {
	keySer, err := kvs.keySerde.Serialize(key)
	if err != nil {
		return v, fmt.Errorf("serialize key: %w", err)
	}

	err = kvs.db.View(func(tx *bolt.Tx) error {
		bv := tx.Bucket(kvs.bucket).Get(keySer)
		if bv == nil {
			return ErrNotFound
		}
		v, err = kvs.valSerde.Deserialize(bv)
		return err
	})
	return v, err
}

func (kvs *boltDBKeyValueStore[K, V]) Put(key K, value V) error {
	keySer, err := kvs.keySerde.Serialize(key)
	if err != nil {
		return fmt.Errorf("serialize key: %w", err)
	}
	valSer, err := kvs.valSerde.Serialize(value)
	if err != nil {
		return fmt.Errorf("serialize value: %w", err)
	}

	return kvs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(kvs.bucket).Put(keySer, valSer)
	})
}

func (kvs *boltDBKeyValueStore[K, V]) Delete(key K) error {
	keySer, err := kvs.keySerde.Serialize(key)
	if err != nil {
		return fmt.Errorf("serialize key: %w", err)
	}

	return kvs.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(kvs.bucket).Delete(keySer)
	})
}

var errStopRange = errors.New("stop range")

func (kvs *boltDBKeyValueStore[K, V]) Range(fn func(K, V) bool) error {
	err := kvs.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(kvs.bucket).ForEach(func(bk, bv []byte) error {
			k, err := kvs.keySerde.Deserialize(bk)
			if err != nil {
				return fmt.Errorf("deserialize key: %w", err)
			}
			v, err := kvs.valSerde.Deserialize(bv)
			if err != nil {
				return fmt.Errorf("deserialize value: %w", err)
			}
			if !fn(k, v) {
				return errStopRange
			}
			return nil
		})
	})
	if errors.Is(err, errStopRange) {
		return nil
	}
	return err
}

func (kvs *boltDBKeyValueStore[K, V]) Close() error {
	kvs.closeOnce.Do(func() {
		kvs.closeErr = releaseBoltDB(kvs.path)
	})
	return kvs.closeErr
}
