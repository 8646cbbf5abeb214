package feature

import (
	"sort"

	mat_ "github.com/aouyang1/go-demandcast/mat"
	"gonum.org/v1/gonum/mat"
)

// Data pairs a feature with its generated values
type Data struct {
	F    Feature
	Data []float64
}

// Set represents a mapping to each feature data keyed by the string representation
// of the feature.
type Set map[string]Data

func NewSet() Set {
	return make(Set)
}

// Add stores the feature data overwriting any feature with the same label
func (s Set) Add(f Feature, data []float64) {
	s[f.String()] = Data{F: f, Data: data}
}

// Filter returns the subset of features of the given type
func (s Set) Filter(ft FeatureType) Set {
	res := NewSet()
	for label, d := range s {
		if d.F.Type() == ft {
			res[label] = d
		}
	}
	return res
}

// Labels returns the sorted slice of all tracked features in the Set
func (s Set) Labels() *Labels {
	if s == nil {
		return nil
	}

	labels := make([]Feature, 0, len(s))
	for _, feat := range s {
		labels = append(labels, feat.F)
	}
	sort.Slice(
		labels,
		func(i, j int) bool {
			return labels[i].String() < labels[j].String()
		},
	)
	return NewLabels(labels)
}

// Matrix returns the Set as a matrix with one row per observation and one column per feature in
// label order.
func (s Set) Matrix() (*mat.Dense, error) {
	if len(s) == 0 {
		return nil, mat.ErrZeroLength
	}

	featureLabels := s.Labels()
	cols := make([][]float64, 0, featureLabels.Len())
	for _, label := range featureLabels.Labels() {
		cols = append(cols, s[label.String()].Data)
	}
	return mat_.NewDenseFromColumns(cols)
}
