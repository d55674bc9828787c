package artifact

import (
	"errors"
)

// Sentinel kinds for artifact errors. These allow errors.Is/As from callers.
var (
	ErrNoBundle      = errors.New("no model bundle")
	ErrCorruptBundle = errors.New("corrupt model bundle")
)
