package storage

import (
	"bytes"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const DefaultBucketName = "taskflow"

type BoltKeyValueStoreOptions struct {
	BucketName string
	// MaxBytes caps the sum of key and value lengths held in the bucket. Zero means unlimited.
	MaxBytes int64
	Logger   *zap.Logger
}

type BoltKeyValueStore struct {
	db         *bolt.DB
	BucketName string
	maxBytes   int64
	logger     *zap.Logger
}

var _ KeyValueStore = (*BoltKeyValueStore)(nil)

// OpenBolt opens (creating if needed) the database file used by the stores.
func OpenBolt(file string) (*bolt.DB, error) {
	return bolt.Open(file, 0600, &bolt.Options{Timeout: 1 * time.Second})
}

// NewBoltKeyValueStore creates a store that keeps every key in a single bucket of db.
func NewBoltKeyValueStore(db *bolt.DB, opts BoltKeyValueStoreOptions) (*BoltKeyValueStore, error) {
	if opts.BucketName == "" {
		opts.BucketName = DefaultBucketName
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	st := &BoltKeyValueStore{
		db:         db,
		BucketName: opts.BucketName,
		maxBytes:   opts.MaxBytes,
		logger:     opts.Logger.Named("Storage"),
	}

	er := db.Update(func(tx *bolt.Tx) error {
		_, er := tx.CreateBucketIfNotExists([]byte(st.BucketName))
		return er
	})
	if er != nil {
		return nil, er
	}

	return st, nil
}

func (st *BoltKeyValueStore) Put(key string, value []byte) error {
	return st.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(st.BucketName))
		if b == nil {
			return ErrBucketNotFound
		}

		if st.maxBytes > 0 {
			used := int64(0)
			_ = b.ForEach(func(k, v []byte) error {
				if string(k) != key {
					used += int64(len(k) + len(v))
				}
				return nil
			})
			if used+entrySize(key, value) > st.maxBytes {
				st.logger.Warn("quota exceeded",
					zap.String("key", key),
					zap.Int64("used", used),
					zap.Int64("max", st.maxBytes))
				return ErrQuotaExceeded
			}
		}

		return b.Put([]byte(key), value)
	})
}

func (st *BoltKeyValueStore) Get(key string) (ret []byte, ok bool, er error) {
	er = st.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(st.BucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		value := b.Get([]byte(key))
		if value == nil {
			return nil
		}
		ok = true
		ret = make([]byte, len(value))
		copy(ret, value)
		return nil
	})
	return
}

func (st *BoltKeyValueStore) Keys(prefix string) ([]string, error) {
	keys := make([]string, 0)
	er := st.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(st.BucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		p := []byte(prefix)
		c := b.Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	return keys, er
}

func (st *BoltKeyValueStore) Delete(key string) error {
	return st.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(st.BucketName))
		if b == nil {
			return ErrBucketNotFound
		}
		return b.Delete([]byte(key))
	})
}
