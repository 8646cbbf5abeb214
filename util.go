package forecaster

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. The input
// y is a slice of series that must have the same length as the input time slice. Points where the
// first series is NaN are dropped from every series.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)

	keep := make([]bool, len(t))
	filteredT := make([]string, 0, len(t))
	for j := range t {
		if len(y) > 0 && j < len(y[0]) && math.IsNaN(y[0][j]) {
			continue
		}
		keep[j] = true
		filteredT = append(filteredT, t[j].Format("2006-01"))
	}

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]) && j < len(t); j++ {
			if !keep[j] {
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(filteredT)
	for i, series := range seriesName {
		if i >= len(lineData) {
			break
		}
		line = line.AddSeries(series, lineData[i])
	}

	return line
}

// BarMetrics generates an echart grouped bar chart of the MAPE and SMAPE of every forecaster
func BarMetrics(title string, m MetricReport) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)

	names := m.Names()
	mapeData := make([]opts.BarData, 0, len(names))
	smapeData := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		mapeData = append(mapeData, opts.BarData{Value: m[name].MAPE})
		smapeData = append(smapeData, opts.BarData{Value: m[name].SMAPE})
	}

	bar.SetXAxis(names).
		AddSeries("MAPE (%)", mapeData).
		AddSeries("SMAPE (%)", smapeData)
	return bar
}

// PlotComparison renders an html page with the forecast comparison line chart followed by the
// metrics bar chart when the results have been scored.
func PlotComparison(w io.Writer, res *Results) error {
	title := "Forecast Comparison"
	if res.Label != "" {
		title = fmt.Sprintf("Forecast Comparison: %s", res.Label)
	}

	page := components.NewPage()
	page.AddCharts(
		LineTSeries(
			title,
			[]string{"Truth", MetricNamePrimary, MetricNameSecondary},
			res.T,
			[][]float64{res.Truth, res.Primary, res.Secondary},
		),
	)
	if len(res.Metrics) > 0 {
		page.AddCharts(BarMetrics("Forecast Metrics", res.Metrics))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("unable to render comparison page, %w", err)
	}
	return nil
}
