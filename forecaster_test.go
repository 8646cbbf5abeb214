package forecaster

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/aouyang1/go-demandcast/primary"
	"github.com/aouyang1/go-demandcast/secondary"
	"github.com/aouyang1/go-demandcast/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnd = time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// seasonalSeries is a deterministic linear trend with yearly seasonality
func seasonalSeries(t *testing.T, n int) *timedataset.TimeDataset {
	t.Helper()

	y := make([]float64, n)
	for i := range y {
		y[i] = 100 + 0.2*float64(i) + 18*math.Sin(2*math.Pi*float64(i)/12)
	}
	td, err := timedataset.NewUnivariateDataset(timedataset.GenerateMonthlyT(n, testEnd), y)
	require.Nil(t, err)
	return td
}

type constTier struct {
	val float64
}

func (c constTier) Name() string {
	return "constant"
}

func (c constTier) Forecast(_ context.Context, _ []float64, horizon int) ([]float64, error) {
	pred := make([]float64, horizon)
	for i := range pred {
		pred[i] = c.val
	}
	return pred, nil
}

// stubPredictor holds out the last testSize points and returns at most maxLen predictions
type stubPredictor struct {
	val     float64
	maxLen  int
	calls   []int
	lengths []int
}

func (s *stubPredictor) Name() string {
	return "stub"
}

func (s *stubPredictor) Predict(_ context.Context, td *timedataset.TimeDataset, testSize int) secondary.Result {
	s.calls = append(s.calls, testSize)
	s.lengths = append(s.lengths, td.Len())

	n := td.Len()
	testSize = min(testSize, n-1)
	if testSize <= 0 {
		return secondary.Result{Model: s.Name()}
	}
	length := min(testSize, s.maxLen)
	pred := make([]float64, length)
	for i := range pred {
		pred[i] = s.val
	}
	start := n - testSize
	return secondary.Result{
		T:         td.T[start : start+length],
		Predicted: pred,
		Actual:    td.Y[start : start+length],
		Model:     s.Name(),
	}
}

func stubOptions() *Options {
	opt := NewDefaultOptions()
	opt.Logger = discardLogger()
	opt.PrimaryOptions.Logger = opt.Logger
	opt.SecondaryOptions.Logger = opt.Logger
	return opt
}

func stubComparison(opt *Options, sp *stubPredictor) *Comparison {
	p := primary.New(opt.PrimaryOptions, primary.WithTiers(constTier{val: 1}))
	return New(opt, WithPrimary(p), WithSecondary(sp, secondary.CapabilityUnavailable))
}

func TestPhaseOne(t *testing.T) {
	testData := map[string]struct {
		length       int
		expRequested int
		expN1        int
	}{
		"sixty points": {
			length:       60,
			expRequested: 12,
			expN1:        12,
		},
		"long series capped at test months": {
			length:       200,
			expRequested: 24,
			expN1:        24,
		},
		"test window shorter than requested": {
			length:       24,
			expRequested: 4,
			expN1:        4,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			series := seasonalSeries(t, td.length)
			sp := &stubPredictor{val: 2, maxLen: 1000}
			c := stubComparison(stubOptions(), sp)

			p1 := c.PhaseOne(context.Background(), series)
			assert.Equal(t, td.expRequested, p1.Requested)
			assert.Equal(t, td.expN1, p1.N1)
			assert.Len(t, p1.Primary.Predicted, td.expN1)
			assert.Len(t, p1.Primary.Actual, td.expN1)
			assert.Len(t, p1.Primary.T, td.expN1)
			assert.Equal(t, []int{td.expRequested}, sp.calls)
		})
	}
}

func TestPhaseTwo(t *testing.T) {
	testData := map[string]struct {
		length    int
		maxLen    int
		expLen    int
		expWindow int
		err       error
	}{
		"aligned": {
			length:    60,
			maxLen:    1000,
			expLen:    12,
			expWindow: 60,
		},
		"secondary shorter": {
			length:    60,
			maxLen:    5,
			expLen:    5,
			expWindow: 60,
		},
		"test window longer than n1": {
			length:    61,
			maxLen:    1000,
			expLen:    12,
			expWindow: 60,
		},
		"empty secondary": {
			length: 60,
			maxLen: 0,
			err:    ErrInsufficientData,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			series := seasonalSeries(t, td.length)
			sp := &stubPredictor{val: 2, maxLen: td.maxLen}
			c := stubComparison(stubOptions(), sp)

			p1 := c.PhaseOne(context.Background(), series)
			res, err := c.PhaseTwo(context.Background(), series, p1)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			assert.Equal(t, td.expLen, res.Len())
			assert.Len(t, res.T, td.expLen)
			assert.Len(t, res.Primary, td.expLen)
			assert.Len(t, res.Secondary, td.expLen)
			assert.True(t, res.Aligned)
			trainSize := timedataset.TrainSize(td.length, timedataset.DefaultTrainFraction)
			assert.Equal(t, series.T[trainSize:trainSize+td.expLen], res.T)
			assert.Equal(t, series.Y[trainSize:trainSize+td.expLen], res.Truth)
			assert.Equal(t, "constant", res.PrimaryTier)
			assert.Equal(t, "stub", res.SecondaryModel)
			assert.Equal(t, secondary.CapabilityUnavailable, res.Capability)
			assert.Equal(t, []int{p1.Requested, p1.N1}, sp.calls)
			assert.Equal(t, []int{td.length, td.expWindow}, sp.lengths)
		})
	}
}

func TestRunAlignsSecondaryWithTruth(t *testing.T) {
	testData := map[string]struct {
		length     int
		expTrainSz int
	}{
		"whole test window":      {length: 120, expTrainSz: 96},
		"one extra test point":   {length: 121, expTrainSz: 96},
		"four extra test points": {length: 124, expTrainSz: 99},
		"two extra test points":  {length: 130, expTrainSz: 104},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt := stubOptions()
			p := primary.New(opt.PrimaryOptions, primary.WithTiers(constTier{val: 1}))
			c := New(opt, WithPrimary(p), WithSecondary(secondary.NewSeasonalNaive(opt.SecondaryOptions), secondary.CapabilityUnavailable))

			series := seasonalSeries(t, td.length)
			res, err := c.Run(context.Background(), "aligned", series)
			require.Nil(t, err)

			require.Equal(t, 24, res.Len())
			assert.True(t, res.Aligned)
			assert.Equal(t, series.T[td.expTrainSz:td.expTrainSz+24], res.T)
			assert.Equal(t, series.Y[td.expTrainSz:td.expTrainSz+24], res.Truth)

			window, err := series.Slice(0, td.expTrainSz+24)
			require.Nil(t, err)
			expected := secondary.NewSeasonalNaive(opt.SecondaryOptions).Predict(context.Background(), window, 24)
			assert.Equal(t, expected.Predicted, res.Secondary)
		})
	}
}

func TestRunInsufficientData(t *testing.T) {
	testData := map[string]struct {
		length int
	}{
		"ten points":       {length: 10},
		"one short of min": {length: DefaultMinSeriesLength - 1},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			sp := &stubPredictor{val: 2, maxLen: 1000}
			c := stubComparison(stubOptions(), sp)

			res, err := c.Run(context.Background(), "short", seasonalSeries(t, td.length))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrInsufficientData)
			assert.True(t, errors.Is(err, timedataset.ErrInsufficientData))
			assert.Empty(t, sp.calls)
		})
	}
}

func TestRunEndToEnd(t *testing.T) {
	opt := stubOptions()
	c := New(opt, WithSecondary(secondary.NewTrendSeasonal(opt.SecondaryOptions, opt.ForecastOptions), secondary.CapabilityFull))

	series := seasonalSeries(t, 120)
	res, err := c.Run(context.Background(), "seasonal", series)
	require.Nil(t, err)

	assert.Equal(t, "seasonal", res.Label)
	assert.Equal(t, 24, res.Len())
	assert.Len(t, res.Primary, 24)
	assert.Len(t, res.Secondary, 24)
	assert.True(t, res.Aligned)
	assert.Equal(t, "SARIMA(2,1,2)(1,1,1,12)", res.PrimaryTier)
	assert.Equal(t, secondary.ModelTrendSeasonal, res.SecondaryModel)
	require.NotNil(t, res.SecondaryFit)
	assert.Len(t, res.SecondaryFit.Trend, 24)
	assert.Len(t, res.SecondaryFit.Seasonality, 24)
	assert.Equal(t, series.Y[96:], res.Truth)
	assert.Equal(t, series.T[96:], res.T)

	for i, v := range res.Primary {
		assert.InDelta(t, res.Truth[i], v, 1e-3, "primary step %d", i)
	}

	m, err := res.Score()
	require.Nil(t, err)
	for _, name := range []string{MetricNamePrimary, MetricNameSecondary} {
		s, exists := m[name]
		require.True(t, exists, name)
		assert.GreaterOrEqual(t, s.MAPE, 0.0)
		assert.GreaterOrEqual(t, s.SMAPE, 0.0)
		assert.LessOrEqual(t, s.SMAPE, 200.0)
	}
	assert.Less(t, m[MetricNamePrimary].MAPE, 0.01)
}
