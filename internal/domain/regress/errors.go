package regress

import (
	"errors"
)

// Sentinel kinds for regression errors.
var (
	ErrNoTrainingData = errors.New("no training data")
)
