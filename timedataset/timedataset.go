// Package timedataset holds the validated monthly series consumed by the forecasters along with
// the chronological train/test splitter and the data sources that produce a series.
package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoData             = errors.New("no data in time dataset")
	ErrNonMonotonic       = errors.New("time feature is not strictly increasing")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrOutOfRange         = errors.New("slice bounds out of range")
)

// TimeDataset represents a time series storing a slice of time points and values.
// Both must be of the same length and time points must be strictly increasing.
type TimeDataset struct {
	T []time.Time `json:"ds"`
	Y []float64   `json:"y"`
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice. The
// inputs are copied so later changes by the caller do not leak into the dataset.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMonotonic)
		}
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	td := &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}

	return td, nil
}

// Len returns the number of points in the dataset
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.Y)
}

// Slice returns a copy of the points in [start, end)
func (td *TimeDataset) Slice(start, end int) (*TimeDataset, error) {
	if start < 0 || end > td.Len() || start > end {
		return nil, fmt.Errorf("[%d:%d] of %d points, %w", start, end, td.Len(), ErrOutOfRange)
	}
	tSeries := make([]time.Time, end-start)
	ySeries := make([]float64, end-start)
	copy(tSeries, td.T[start:end])
	copy(ySeries, td.Y[start:end])
	return &TimeDataset{T: tSeries, Y: ySeries}, nil
}
