package livescore

import (
	"errors"
)

// Sentinel kinds for live score errors.
var (
	ErrFetchFailed = errors.New("live score fetch failed")
	ErrNoMatches   = errors.New("no live matches found")
)
