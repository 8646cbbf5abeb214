package primary

import (
	"context"
	"math"
)

const TierNaive = "naive"

// NaiveTier repeats the last training value for every step
type NaiveTier struct{}

func (NaiveTier) Name() string {
	return TierNaive
}

// Forecast never fails. An empty training window forecasts NaN.
func (NaiveTier) Forecast(_ context.Context, train []float64, horizon int) ([]float64, error) {
	last := math.NaN()
	if len(train) > 0 {
		last = train[len(train)-1]
	}
	pred := make([]float64, max(horizon, 0))
	for i := range pred {
		pred[i] = last
	}
	return pred, nil
}
