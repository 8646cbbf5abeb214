package timedataset

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultTrainFraction is the share of a series used for training
const DefaultTrainFraction = 0.8

var (
	ErrInsufficientData = errors.New("insufficient data to split into train and test")
	ErrInvalidFraction  = errors.New("train fraction must be in (0, 1)")
)

// Split is a chronological partition of a dataset into a leading train window and a trailing
// test window.
type Split struct {
	TrainT []time.Time
	Train  []float64
	TestT  []time.Time
	Test   []float64
}

// TrainSize returns floor(fraction*n)
func TrainSize(n int, fraction float64) int {
	return int(math.Floor(fraction * float64(n)))
}

// RequestedHorizon bounds the requested number of test months by a fifth of the series length
func RequestedHorizon(testMonths, n int) int {
	return min(testMonths, n/5)
}

// NewSplit partitions the dataset so the first floor(fraction*len) points are used for training and
// the remaining points are held out for testing.
func NewSplit(td *TimeDataset, fraction float64) (*Split, error) {
	if fraction <= 0 || fraction >= 1 || math.IsNaN(fraction) {
		return nil, fmt.Errorf("got %.3f, %w", fraction, ErrInvalidFraction)
	}
	n := td.Len()
	if n < 2 {
		return nil, fmt.Errorf("series has %d points, %w", n, ErrInsufficientData)
	}

	trainSize := TrainSize(n, fraction)
	s := &Split{
		TrainT: make([]time.Time, trainSize),
		Train:  make([]float64, trainSize),
		TestT:  make([]time.Time, n-trainSize),
		Test:   make([]float64, n-trainSize),
	}
	copy(s.TrainT, td.T[:trainSize])
	copy(s.Train, td.Y[:trainSize])
	copy(s.TestT, td.T[trainSize:])
	copy(s.Test, td.Y[trainSize:])
	return s, nil
}
