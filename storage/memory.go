package storage

import (
	"sort"
	"strings"
	"sync"
)

type MemoryKeyValueStore struct {
	data     *sync.Map
	mtx      sync.Mutex
	maxBytes int64
}

var _ KeyValueStore = (*MemoryKeyValueStore)(nil)

// NewMemoryKeyValueStore creates a store kept in process memory. A positive maxBytes
// limits the sum of key and value lengths it holds.
func NewMemoryKeyValueStore(maxBytes int64) *MemoryKeyValueStore {
	return &MemoryKeyValueStore{
		data:     &sync.Map{},
		maxBytes: maxBytes,
	}
}

func (m *MemoryKeyValueStore) Put(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	if m.maxBytes <= 0 {
		m.data.Store(key, v)
		return nil
	}

	// the quota check and the write must not interleave with another Put
	m.mtx.Lock()
	defer m.mtx.Unlock()

	used := int64(0)
	m.data.Range(func(k, val any) bool {
		if k.(string) != key {
			used += entrySize(k.(string), val.([]byte))
		}
		return true
	})
	if used+entrySize(key, v) > m.maxBytes {
		return ErrQuotaExceeded
	}
	m.data.Store(key, v)
	return nil
}

func (m *MemoryKeyValueStore) Get(key string) ([]byte, bool, error) {
	r, found := m.data.Load(key)
	if !found {
		return nil, false, nil
	}
	value := r.([]byte)
	ret := make([]byte, len(value))
	copy(ret, value)
	return ret, true, nil
}

func (m *MemoryKeyValueStore) Keys(prefix string) ([]string, error) {
	keys := make([]string, 0)
	m.data.Range(func(k, _ any) bool {
		if key := k.(string); strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return true
	})
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryKeyValueStore) Delete(key string) error {
	m.data.Delete(key)
	return nil
}
