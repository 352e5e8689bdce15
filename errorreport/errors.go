package errorreport

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrNoFallback       = errors.New("no fallback store configured")
)
