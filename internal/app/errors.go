package service

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrNotReady        = errors.New("service not ready")
	ErrRetrainInFlight = errors.New("retrain already in progress")
)
