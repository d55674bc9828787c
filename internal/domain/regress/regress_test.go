package regress_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wicketml/gully/internal/domain/features"
	"github.com/wicketml/gully/internal/domain/regress"
)

func TestFit(t *testing.T) {
	Convey("Given a linear relationship between features and labels", t, func() {
		// y = 2 + 3*mean + 0.5*std, exactly.
		xs := []features.Vector{
			{Mean: 1, Std: 0},
			{Mean: 2, Std: 1},
			{Mean: 3, Std: 4},
			{Mean: 5, Std: 2},
			{Mean: 8, Std: 3},
		}
		ys := make([]float64, len(xs))
		for i, v := range xs {
			ys[i] = 2 + 3*v.Mean + 0.5*v.Std
		}

		m, err := regress.Fit(xs, ys)

		Convey("Then the fit recovers the coefficients", func() {
			So(err, ShouldBeNil)
			So(m.Intercept, ShouldAlmostEqual, 2, 1e-8)
			So(m.MeanWeight, ShouldAlmostEqual, 3, 1e-8)
			So(m.StdWeight, ShouldAlmostEqual, 0.5, 1e-8)
		})

		Convey("And refitting identical inputs is deterministic", func() {
			again, err2 := regress.Fit(xs, ys)
			So(err2, ShouldBeNil)
			So(again, ShouldResemble, m)

			probe := features.Vector{Mean: 4.2, Std: 1.3}
			So(again.Predict(probe), ShouldEqual, m.Predict(probe))
		})
	})

	Convey("Given fewer samples than design terms", t, func() {
		m, err := regress.Fit([]features.Vector{{Mean: 6, Std: 1}}, []float64{12})

		Convey("Then the mean-only fallback is used", func() {
			So(err, ShouldBeNil)
			So(m.Intercept, ShouldEqual, 12)
			So(m.MeanWeight, ShouldEqual, 0)
			So(m.Predict(features.Vector{Mean: 100, Std: 100}), ShouldEqual, 12)
		})
	})

	Convey("Given a degenerate design with identical vectors", t, func() {
		xs := []features.Vector{{Mean: 5, Std: 0}, {Mean: 5, Std: 0}, {Mean: 5, Std: 0}, {Mean: 5, Std: 0}}
		ys := []float64{4, 6, 5, 5}

		m, err := regress.Fit(xs, ys)

		Convey("Then fitting still succeeds with a constant predictor", func() {
			So(err, ShouldBeNil)
			So(m.Predict(features.Vector{Mean: 5, Std: 0}), ShouldAlmostEqual, 5, 1e-8)
		})
	})

	Convey("Given no training data", t, func() {
		_, err := regress.Fit(nil, nil)

		Convey("Then ErrNoTrainingData is returned", func() {
			So(err, ShouldEqual, regress.ErrNoTrainingData)
		})
	})
}
