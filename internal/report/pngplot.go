package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/kinematics.report/keypoints"
)

// WritePNG renders a two-panel-equivalent PNG of one bodypart's x series
// over frames, raw and smoothed overlaid. PNG output suits reports and
// terminals where an HTML chart is inconvenient.
func WritePNG(path string, raw, smoothed *keypoints.Table, bodypart string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectory - %s", bodypart)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Position"

	for _, series := range []struct {
		table *keypoints.Table
		coord string
		label string
		color color.RGBA
	}{
		{raw, keypoints.CoordX, "raw x", color.RGBA{R: 180, G: 180, B: 180, A: 255}},
		{smoothed, keypoints.CoordX, "smoothed x", color.RGBA{R: 220, G: 60, B: 60, A: 255}},
		{raw, keypoints.CoordY, "raw y", color.RGBA{R: 140, G: 140, B: 200, A: 255}},
		{smoothed, keypoints.CoordY, "smoothed y", color.RGBA{R: 40, G: 80, B: 200, A: 255}},
	} {
		vals, err := columnValues(series.table, bodypart, series.coord)
		if err != nil {
			return err
		}
		pts := make(plotter.XYs, len(vals))
		for i, v := range vals {
			pts[i] = plotter.XY{X: float64(i), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("build %s line: %w", series.label, err)
		}
		line.Color = series.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(series.label, line)
	}

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
