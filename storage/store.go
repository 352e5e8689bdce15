package storage

//go:generate mockgen -source=store.go -destination=store_mock.go -package=storage

// KeyValueStore is a synchronous, process-local textual key/value store.
type KeyValueStore interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, bool, error)
	// Keys returns every key starting with prefix, in byte order.
	Keys(prefix string) ([]string, error)
	Delete(key string) error
}

func entrySize(key string, value []byte) int64 {
	return int64(len(key) + len(value))
}
