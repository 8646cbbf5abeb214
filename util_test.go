package forecaster

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTSeries(t *testing.T) {
	ts := []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	y := [][]float64{
		{1, math.NaN(), 3},
		{4, 5, 6},
	}

	line := LineTSeries("test", []string{"a", "b"}, ts, y)
	require.Len(t, line.MultiSeries, 2)

	// x axis data is copied onto the axis options when the chart is validated
	line.Validate()
	assert.Equal(t, []string{"2024-01", "2024-03"}, line.XAxisList[0].Data)
	assert.Len(t, line.MultiSeries[0].Data, 2)
	assert.Len(t, line.MultiSeries[1].Data, 2)
}

func TestPlotComparison(t *testing.T) {
	res := testResults()
	_, err := res.Score()
	require.Nil(t, err)

	var buf bytes.Buffer
	require.Nil(t, PlotComparison(&buf, res))
	assert.Contains(t, buf.String(), "Forecast Comparison: wheat")
	assert.Contains(t, buf.String(), "SMAPE (%)")
}
