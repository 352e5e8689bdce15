package cache

import (
	"encoding/json"
	"time"
)

// entry is the stored envelope. Timestamp is unix milliseconds, TTL whole seconds.
type entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp *int64          `json:"timestamp"`
	TTL       *int64          `json:"ttl"`
}

func newEntry(value []byte, storedAt time.Time, ttl time.Duration) entry {
	ts := storedAt.UnixMilli()
	secs := int64(ttl / time.Second)
	return entry{
		Value:     value,
		Timestamp: &ts,
		TTL:       &secs,
	}
}

func parseEntry(data []byte) (entry, error) {
	var e entry
	if er := json.Unmarshal(data, &e); er != nil {
		return e, er
	}
	if e.Timestamp == nil || e.TTL == nil || e.Value == nil {
		return e, ErrMalformedEntry
	}
	return e, nil
}

func (e entry) IsExpired(now time.Time) bool {
	return now.UnixMilli()-*e.Timestamp > *e.TTL*1000
}
