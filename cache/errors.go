package cache

import "errors"

var (
	ErrMalformedEntry = errors.New("malformed cache entry")
	ErrNilStore       = errors.New("nil key value store")
)
