package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveScatter renders an actual-vs-predicted scatter of the training
// labels. Callers treat failures as best-effort diagnostics; training
// success never depends on this chart.
func SaveScatter(path string, actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return fmt.Errorf("mismatched series: %d actual vs %d predicted", len(actual), len(predicted))
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	pts := make(plotter.XYs, 0, len(actual))
	for i := range actual {
		pts = append(pts, plotter.XY{X: actual[i], Y: predicted[i]})
	}

	p := plot.New()
	p.Title.Text = "Model Prediction Performance"
	p.X.Label.Text = "Actual Avg Points"
	p.Y.Label.Text = "Predicted Avg Points"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
