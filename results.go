package forecaster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/aouyang1/go-demandcast/secondary"
	"github.com/goccy/go-json"
)

// Results is the reconciled comparison of both forecasts over a common window of held out truth
type Results struct {
	Label          string               `json:"label"`
	T              []time.Time          `json:"ds"`
	Truth          []float64            `json:"truth"`
	Primary        []float64            `json:"primary"`
	Secondary      []float64            `json:"secondary"`
	PrimaryTier    string               `json:"primary_tier"`
	SecondaryModel string               `json:"secondary_model"`
	Capability     secondary.Capability `json:"capability"`

	// SecondaryFit describes the trend and seasonality fit when that model produced the secondary
	SecondaryFit *secondary.FitSummary `json:"secondary_fit,omitempty"`

	// Aligned reports whether the secondary holdout observed exactly the primary truth
	Aligned bool `json:"aligned"`

	// InitialSecondary is the secondary forecast at the requested horizon before reconciliation
	InitialSecondary secondary.Result `json:"initial_secondary"`

	Metrics MetricReport `json:"metrics,omitempty"`
}

// Len returns the reconciled length
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Truth)
}

// Score computes the metrics of both forecasts against the truth and stores them on the results
func (r *Results) Score() (MetricReport, error) {
	primaryScores, err := NewScores(r.Primary, r.Truth)
	if err != nil {
		return nil, fmt.Errorf("unable to score primary forecast, %w", err)
	}
	secondaryScores, err := NewScores(r.Secondary, r.Truth)
	if err != nil {
		return nil, fmt.Errorf("unable to score secondary forecast, %w", err)
	}
	r.Metrics = MetricReport{
		MetricNamePrimary:   *primaryScores,
		MetricNameSecondary: *secondaryScores,
	}
	return r.Metrics, nil
}

// WriteJSON encodes the results as indented json
func (r *Results) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("unable to encode results, %w", err)
	}
	return nil
}

// WriteCSV writes one row per reconciled point with the columns ds, truth, primary and secondary
func (r *Results) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ds", "truth", "primary", "secondary"}); err != nil {
		return err
	}
	for i := 0; i < r.Len(); i++ {
		ds := ""
		if i < len(r.T) {
			ds = r.T[i].Format("2006-01-02")
		}
		row := []string{
			ds,
			strconv.FormatFloat(r.Truth[i], 'f', -1, 64),
			strconv.FormatFloat(r.Primary[i], 'f', -1, 64),
			strconv.FormatFloat(r.Secondary[i], 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
