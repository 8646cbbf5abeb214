package forecaster

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
)

const (
	MetricNamePrimary   = "ARIMA (baseline)"
	MetricNameSecondary = "Trend/Seasonality"
)

const metricEps = 1e-8

var (
	ErrResLenMismatch = errors.New("predicted and actual have different lengths")
	ErrNoScores       = errors.New("no points to score")
)

type Scores struct {
	MAPE  float64 `json:"mape"`  // mean absolute percent error
	SMAPE float64 `json:"smape"` // symmetric mean absolute percent error
}

func NewScores(predicted, actual []float64) (*Scores, error) {
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	smape, err := SMAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute symmetric mean absolute percent error, %w", err)
	}
	return &Scores{
		MAPE:  mape,
		SMAPE: smape,
	}, nil
}

// MAPE is mean(|a-p| / (|a|+eps)) as a percentage
func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}
	if len(actual) == 0 {
		return 0, ErrNoScores
	}

	mape := 0.0
	for i := 0; i < len(actual); i++ {
		mape += math.Abs(actual[i]-predicted[i]) / (math.Abs(actual[i]) + metricEps)
	}
	mape /= float64(len(actual))
	return mape * 100.0, nil
}

// SMAPE is mean(|a-p| / ((|a|+|p|)/2+eps)) as a percentage, bounded by 200
func SMAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, ErrResLenMismatch
	}
	if len(actual) == 0 {
		return 0, ErrNoScores
	}

	smape := 0.0
	for i := 0; i < len(actual); i++ {
		denom := (math.Abs(actual[i])+math.Abs(predicted[i]))/2.0 + metricEps
		smape += math.Abs(actual[i]-predicted[i]) / denom
	}
	smape /= float64(len(actual))
	return smape * 100.0, nil
}

// MetricReport maps a forecaster display name to its scores
type MetricReport map[string]Scores

// Names returns the report names with the primary and secondary first
func (m MetricReport) Names() []string {
	names := make([]string, 0, len(m))
	for _, name := range []string{MetricNamePrimary, MetricNameSecondary} {
		if _, exists := m[name]; exists {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range m {
		if name != MetricNamePrimary && name != MetricNameSecondary {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// WriteSummary prints one line per forecaster in the form "  name: MAPE=x.xx%, SMAPE=y.yy%"
func (m MetricReport) WriteSummary(w io.Writer) error {
	for _, name := range m.Names() {
		s := m[name]
		if _, err := fmt.Fprintf(w, "  %s: MAPE=%.2f%%, SMAPE=%.2f%%\n", name, s.MAPE, s.SMAPE); err != nil {
			return err
		}
	}
	return nil
}
