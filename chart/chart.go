// Package chart renders the forecast comparison and the metrics comparison as PNG images
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	forecaster "github.com/aouyang1/go-demandcast"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	ForecastFile = "forecast_comparison.png"
	MetricsFile  = "metrics_comparison.png"
)

var ErrNoData = errors.New("no data to plot")

var (
	colorTruth     = color.RGBA{A: 255}
	colorPrimary   = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	colorSecondary = color.RGBA{R: 255, G: 127, B: 80, A: 255}
)

// ForecastPlot plots the truth and both forecasts against the test month index
func ForecastPlot(res *forecaster.Results) (*plot.Plot, error) {
	if res.Len() == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Demand forecast: comparison with baseline"
	if res.Label != "" {
		p.Title.Text = fmt.Sprintf("Demand forecast: %s comparison with baseline", res.Label)
	}
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Month (test window)"
	p.Y.Label.Text = "Sales volume"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	series := []struct {
		name   string
		y      []float64
		color  color.Color
		dashed bool
		shape  draw.GlyphDrawer
	}{
		{name: "Truth", y: res.Truth, color: colorTruth, shape: draw.CircleGlyph{}},
		{name: forecaster.MetricNamePrimary, y: res.Primary, color: colorPrimary, dashed: true, shape: draw.BoxGlyph{}},
		{name: forecaster.MetricNameSecondary, y: res.Secondary, color: colorSecondary, dashed: true, shape: draw.TriangleGlyph{}},
	}
	for _, s := range series {
		line, points, err := plotter.NewLinePoints(indexXYs(s.y))
		if err != nil {
			return nil, fmt.Errorf("unable to plot %s, %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1.5)
		if s.dashed {
			line.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		points.Color = s.color
		points.Shape = s.shape
		points.Radius = vg.Points(2.5)

		p.Add(line, points)
		p.Legend.Add(s.name, line, points)
	}
	return p, nil
}

func indexXYs(y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(y))
	for i, v := range y {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	return xys
}

// MetricsPlot plots a grouped bar chart of MAPE and SMAPE per forecaster
func MetricsPlot(m forecaster.MetricReport) (*plot.Plot, error) {
	if len(m) == 0 {
		return nil, ErrNoData
	}

	names := m.Names()
	mape := make(plotter.Values, len(names))
	smape := make(plotter.Values, len(names))
	for i, name := range names {
		mape[i] = m[name].MAPE
		smape[i] = m[name].SMAPE
	}

	p := plot.New()
	p.Title.Text = "Metrics comparison"
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.Text = "%"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	width := vg.Points(30)
	mapeBars, err := plotter.NewBarChart(mape, width)
	if err != nil {
		return nil, fmt.Errorf("unable to plot MAPE, %w", err)
	}
	mapeBars.Color = colorPrimary
	mapeBars.LineStyle.Width = vg.Length(0)
	mapeBars.Offset = -width / 2

	smapeBars, err := plotter.NewBarChart(smape, width)
	if err != nil {
		return nil, fmt.Errorf("unable to plot SMAPE, %w", err)
	}
	smapeBars.Color = colorSecondary
	smapeBars.LineStyle.Width = vg.Length(0)
	smapeBars.Offset = width / 2

	p.Add(mapeBars, smapeBars)
	p.Legend.Add("MAPE (%)", mapeBars)
	p.Legend.Add("SMAPE (%)", smapeBars)
	p.NominalX(names...)
	return p, nil
}

// WritePNG encodes the plot as a PNG of the given size
func WritePNG(w io.Writer, p *plot.Plot, width, height vg.Length) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("unable to create png writer, %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write png, %w", err)
	}
	return nil
}

// SaveAll writes the forecast and metrics PNGs into dir and returns their paths. The metrics chart
// is skipped when the results have not been scored.
func SaveAll(dir string, res *forecaster.Results) ([]string, error) {
	fp, err := ForecastPlot(res)
	if err != nil {
		return nil, fmt.Errorf("unable to build forecast chart, %w", err)
	}
	forecastPath := filepath.Join(dir, ForecastFile)
	if err := fp.Save(12*vg.Inch, 5*vg.Inch, forecastPath); err != nil {
		return nil, fmt.Errorf("unable to save forecast chart, %w", err)
	}
	paths := []string{forecastPath}

	if len(res.Metrics) == 0 {
		return paths, nil
	}
	mp, err := MetricsPlot(res.Metrics)
	if err != nil {
		return paths, fmt.Errorf("unable to build metrics chart, %w", err)
	}
	metricsPath := filepath.Join(dir, MetricsFile)
	if err := mp.Save(8*vg.Inch, 5*vg.Inch, metricsPath); err != nil {
		return paths, fmt.Errorf("unable to save metrics chart, %w", err)
	}
	return append(paths, metricsPath), nil
}
