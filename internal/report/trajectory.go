// Package report renders raw-versus-smoothed trajectory charts for visual
// inspection of filter settings.
package report

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/kinematics.report/keypoints"
)

// WriteHTML renders an HTML page with one line chart per spatial
// coordinate of bodypart, overlaying the raw and smoothed series frame by
// frame.
func WriteHTML(path string, raw, smoothed *keypoints.Table, bodypart string) error {
	page := components.NewPage()
	for _, coord := range []string{keypoints.CoordX, keypoints.CoordY} {
		line, err := coordChart(raw, smoothed, bodypart, coord)
		if err != nil {
			return err
		}
		page.AddCharts(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", path, err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render chart %s: %w", path, err)
	}
	return nil
}

// coordChart builds the line chart for one coordinate of one bodypart.
func coordChart(raw, smoothed *keypoints.Table, bodypart, coord string) (*charts.Line, error) {
	rawVals, err := columnValues(raw, bodypart, coord)
	if err != nil {
		return nil, err
	}
	smoothVals, err := columnValues(smoothed, bodypart, coord)
	if err != nil {
		return nil, err
	}
	if len(rawVals) != len(smoothVals) {
		return nil, fmt.Errorf("frame count mismatch for %s/%s: raw %d, smoothed %d",
			bodypart, coord, len(rawVals), len(smoothVals))
	}

	frames := make([]string, len(rawVals))
	rawData := make([]opts.LineData, len(rawVals))
	smoothData := make([]opts.LineData, len(smoothVals))
	for i := range rawVals {
		frames[i] = strconv.Itoa(i)
		rawData[i] = opts.LineData{Value: rawVals[i]}
		smoothData[i] = opts.LineData{Value: smoothVals[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s / %s", bodypart, coord),
			Subtitle: fmt.Sprintf("%d frames", len(rawVals)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: coord}),
	)
	line.SetXAxis(frames).
		AddSeries("raw", rawData).
		AddSeries("smoothed", smoothData)
	return line, nil
}

// columnValues fetches one column's series from a table.
func columnValues(t *keypoints.Table, bodypart, coord string) ([]float64, error) {
	idx := t.ColumnIndex(bodypart, coord)
	if idx < 0 {
		return nil, fmt.Errorf("%w: no column for bodypart %q coord %q", keypoints.ErrBadFormat, bodypart, coord)
	}
	return t.Values[idx], nil
}
