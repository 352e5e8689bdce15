package rest

import "errors"

var (
	ErrMissingDependency = errors.New("board and caches are required")
	ErrUnknownForm       = errors.New("unknown form")
	ErrInvalidSeverity   = errors.New("invalid severity")
	ErrInvalidBody       = errors.New("invalid request body")
	ErrValidation        = errors.New("validation failed")
)
