package feature

import (
	"errors"
	"fmt"
	"math"
)

type FourierComp string

const (
	FourierCompSin FourierComp = "sin"
	FourierCompCos FourierComp = "cos"
)

var (
	ErrInvalidWindow      = errors.New("window must be positive")
	ErrUnknownFourierComp = errors.New("unknown fourier component")
)

type Seasonality struct {
	Name        string      `json:"name"`
	FourierComp FourierComp `json:"fourier_component"`
	Order       int         `json:"order"`
}

func NewSeasonality(name string, fcomp FourierComp, order int) *Seasonality {
	return &Seasonality{name, fcomp, order}
}

func (s Seasonality) String() string {
	return fmt.Sprintf("seas_%s_%02d_%s", s.Name, s.Order, s.FourierComp)
}

func (s Seasonality) Type() FeatureType {
	return FeatureTypeSeasonality
}

// Generate computes the Fourier term of this order for a seasonal period in seconds
func (s Seasonality) Generate(epoch []float64, period float64) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period of %.0f seconds, %w", period, ErrInvalidWindow)
	}

	var fn func(float64) float64
	switch s.FourierComp {
	case FourierCompSin:
		fn = math.Sin
	case FourierCompCos:
		fn = math.Cos
	default:
		return nil, fmt.Errorf("%q, %w", s.FourierComp, ErrUnknownFourierComp)
	}

	omega := 2.0 * math.Pi * float64(s.Order) / period
	res := make([]float64, len(epoch))
	for i, e := range epoch {
		res[i] = fn(omega * e)
	}
	return res, nil
}
