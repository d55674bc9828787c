// Package features reduces a player's point history to the fixed-size
// numeric summary fed to the regression model.
package features

import (
	"gonum.org/v1/gonum/stat"

	"github.com/wicketml/gully/internal/domain/model"
)

// Window is the number of most recent point events summarized.
const Window = 10

// Vector is the 2-dimensional numeric summary of a recent point history.
type Vector struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Extract computes the mean and population standard deviation of the last
// min(Window, len(history)) point values. An empty window yields the zero
// vector. Pure, O(window size).
func Extract(history []model.PointEvent) Vector {
	if len(history) == 0 {
		return Vector{}
	}

	start := 0
	if len(history) > Window {
		start = len(history) - Window
	}

	points := make([]float64, 0, len(history)-start)
	for _, e := range history[start:] {
		points = append(points, e.Points)
	}

	mean, std := stat.PopMeanStdDev(points, nil)
	return Vector{Mean: mean, Std: std}
}

// Label is the training target for a player: the arithmetic mean of the
// full, unwindowed point history.
func Label(history []model.PointEvent) float64 {
	if len(history) == 0 {
		return 0
	}
	points := make([]float64, 0, len(history))
	for _, e := range history {
		points = append(points, e.Points)
	}
	return stat.Mean(points, nil)
}
