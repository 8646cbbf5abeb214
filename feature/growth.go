package feature

import (
	"errors"
	"fmt"
)

const (
	GrowthIntercept = "intercept"
	GrowthLinear    = "linear"
)

var ErrUnknownGrowth = errors.New("unknown growth type")

type Growth struct {
	Name string `json:"name"`
}

func NewGrowth(name string) *Growth {
	return &Growth{name}
}

func Intercept() *Growth {
	return NewGrowth(GrowthIntercept)
}

func Linear() *Growth {
	return NewGrowth(GrowthLinear)
}

// String returns the string representation of the growth feature
func (g Growth) String() string {
	return fmt.Sprintf("growth_%s", g.Name)
}

// Type returns the type of this feature
func (g Growth) Type() FeatureType {
	return FeatureTypeGrowth
}

// Generate computes the growth feature over epoch seconds. The linear feature is scaled so the
// training window spans [0, 1] which keeps the coefficient in units of the series per window.
func (g Growth) Generate(epoch []float64, trainStart, trainEnd float64) ([]float64, error) {
	res := make([]float64, len(epoch))
	switch g.Name {
	case GrowthIntercept:
		for i := range res {
			res[i] = 1.0
		}
	case GrowthLinear:
		span := trainEnd - trainStart
		if span <= 0 {
			return nil, fmt.Errorf("training window of %.0f seconds, %w", span, ErrInvalidWindow)
		}
		for i, e := range epoch {
			res[i] = (e - trainStart) / span
		}
	default:
		return nil, fmt.Errorf("%q, %w", g.Name, ErrUnknownGrowth)
	}
	return res, nil
}
