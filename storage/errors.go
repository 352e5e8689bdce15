package storage

import "errors"

var (
	ErrQuotaExceeded     = errors.New("storage quota exceeded")
	ErrInvalidBucketName = errors.New("invalid bucket name")
	ErrBucketNotFound    = errors.New("bucket not found")
)
