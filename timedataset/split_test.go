package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinearDataset(t *testing.T, n int) *TimeDataset {
	t.Helper()
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(i)
	}
	td, err := NewUnivariateDataset(GenerateMonthlyT(n, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)), y)
	require.NoError(t, err)
	return td
}

func TestNewSplit(t *testing.T) {
	testData := map[string]struct {
		n         int
		fraction  float64
		trainSize int
		testSize  int
		err       error
	}{
		"120 points":        {n: 120, fraction: 0.8, trainSize: 96, testSize: 24},
		"floor of fraction": {n: 11, fraction: 0.8, trainSize: 8, testSize: 3},
		"two points":        {n: 2, fraction: 0.8, trainSize: 1, testSize: 1},
		"single point":      {n: 1, fraction: 0.8, err: ErrInsufficientData},
		"zero fraction":     {n: 10, fraction: 0, err: ErrInvalidFraction},
		"unit fraction":     {n: 10, fraction: 1, err: ErrInvalidFraction},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds := newLinearDataset(t, td.n)
			s, err := NewSplit(ds, td.fraction)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.Train, td.trainSize)
			assert.Len(t, s.TrainT, td.trainSize)
			assert.Len(t, s.Test, td.testSize)
			assert.Len(t, s.TestT, td.testSize)
			assert.Equal(t, td.n, len(s.Train)+len(s.Test))

			// chronological, no shuffling
			assert.Equal(t, ds.Y[:td.trainSize], s.Train)
			assert.Equal(t, ds.Y[td.trainSize:], s.Test)
		})
	}
}

func TestRequestedHorizon(t *testing.T) {
	testData := map[string]struct {
		testMonths int
		n          int
		expected   int
	}{
		"bounded by test months": {testMonths: 24, n: 200, expected: 24},
		"bounded by fifth":       {testMonths: 24, n: 120, expected: 24},
		"short series":           {testMonths: 24, n: 60, expected: 12},
		"tiny series":            {testMonths: 24, n: 4, expected: 0},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, RequestedHorizon(td.testMonths, td.n))
		})
	}
}
