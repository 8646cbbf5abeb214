package feature

import (
	"fmt"
	"time"
)

type Time struct {
	Name string `json:"name"`
}

func NewTime(name string) *Time {
	return &Time{name}
}

func (t Time) String() string {
	return fmt.Sprintf("tfeat_%s", t.Name)
}

func (t Time) Type() FeatureType {
	return FeatureTypeTime
}

// Generate returns the unix epoch in seconds of each time point
func (t Time) Generate(ts []time.Time) []float64 {
	res := make([]float64, len(ts))
	for i, tPnt := range ts {
		res[i] = float64(tPnt.UnixNano()) / 1e9
	}
	return res
}
