// Package regress fits the regression model mapping feature vectors to
// expected fantasy points.
package regress

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wicketml/gully/internal/domain/features"
)

// terms is the design width: intercept plus the two feature dimensions.
const terms = 3

// Model is an ordinary least-squares fit over the 2-dimensional feature
// vector. Fields are exported for artifact serialization; predictions on
// the same vector are exactly repeatable.
type Model struct {
	Intercept  float64 `json:"intercept"`
	MeanWeight float64 `json:"mean_weight"`
	StdWeight  float64 `json:"std_weight"`
}

// Predict returns the expected score for a feature vector.
func (m Model) Predict(v features.Vector) float64 {
	return m.Intercept + m.MeanWeight*v.Mean + m.StdWeight*v.Std
}

// Fit solves the least-squares problem over (vector, label) pairs via QR
// decomposition. Degenerate designs (too few samples, collinear columns)
// fall back to a mean-only model so that training never fails on small or
// uniform corpora.
func Fit(xs []features.Vector, ys []float64) (Model, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return Model{}, ErrNoTrainingData
	}

	if len(xs) < terms {
		return meanModel(ys), nil
	}

	design := mat.NewDense(len(xs), terms, nil)
	for i, v := range xs {
		design.Set(i, 0, 1)
		design.Set(i, 1, v.Mean)
		design.Set(i, 2, v.Std)
	}
	labels := mat.NewDense(len(ys), 1, ys)

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, labels); err != nil {
		// Rank-deficient design, e.g. every player has the same
		// history. The mean label is the best constant predictor.
		return meanModel(ys), nil
	}

	return Model{
		Intercept:  beta.At(0, 0),
		MeanWeight: beta.At(1, 0),
		StdWeight:  beta.At(2, 0),
	}, nil
}

func meanModel(ys []float64) Model {
	return Model{Intercept: stat.Mean(ys, nil)}
}
