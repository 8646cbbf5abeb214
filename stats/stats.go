// Package stats holds the deterministic estimators behind the seasonal-profile forecast: a
// per-slot seasonal profile and a least squares trend line over position indexes.
package stats

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptySeries   = errors.New("series has no values")
	ErrInvalidPeriod = errors.New("period must be positive")
	ErrTooFewPoints  = errors.New("need at least 2 points to fit a trend line")
)

// Mean returns the arithmetic mean of y
func Mean(y []float64) (float64, error) {
	if len(y) == 0 {
		return 0, ErrEmptySeries
	}
	return stat.Mean(y, nil), nil
}

// SeasonalProfile computes an additive profile of length period where slot k is the mean of
// y[k], y[k+period], y[k+2*period], ... minus the mean of all of y. Slots are assigned by position
// within y, not by calendar. A slot with no observations is 0.
func SeasonalProfile(y []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	overall, err := Mean(y)
	if err != nil {
		return nil, err
	}

	profile := make([]float64, period)
	for k := 0; k < period; k++ {
		var sum float64
		var cnt int
		for i := k; i < len(y); i += period {
			sum += y[i]
			cnt++
		}
		if cnt == 0 {
			continue
		}
		profile[k] = sum/float64(cnt) - overall
	}
	return profile, nil
}

// Line is a fitted y = Intercept + Slope*x
type Line struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// At evaluates the line at x
func (l Line) At(x float64) float64 {
	return l.Intercept + l.Slope*x
}

// LinearTrend fits a degree one least squares line to y indexed by 0..len(y)-1
func LinearTrend(y []float64) (Line, error) {
	if len(y) < 2 {
		return Line{}, ErrTooFewPoints
	}
	x := make([]float64, len(y))
	floats.Span(x, 0, float64(len(y)-1))

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Line{Intercept: alpha, Slope: beta}, nil
}
