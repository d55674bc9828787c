package api

import (
	"errors"
)

// Sentinel kinds for request validation failures.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrEmptyQuery   = errors.New("missing query text")
	ErrLimitTooHigh = errors.New("limit exceeds maximum")
)
