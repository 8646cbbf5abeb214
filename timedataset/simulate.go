package timedataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	ProductWheat = "wheat"
	ProductMilk  = "milk"

	DefaultYears = 10
)

var ErrInvalidLength = errors.New("series length must be positive")

// GenerateMonthlyT returns n month-end timestamps where the last one is the latest month end
// that is not after end.
func GenerateMonthlyT(n int, end time.Time) []time.Time {
	last := MonthEnd(end.Year(), end.Month(), end.Location())
	if last.After(end) {
		last = MonthEnd(end.Year(), end.Month()-1, end.Location())
	}

	t := make([]time.Time, 0, n)
	for i := n - 1; i >= 0; i-- {
		t = append(t, MonthEnd(last.Year(), last.Month()-time.Month(i), last.Location()))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// Clip bounds every value to [lower, upper]
func (s Series) Clip(lower, upper float64) Series {
	for i, v := range s {
		s[i] = math.Min(math.Max(v, lower), upper)
	}
	return s
}

// GenerateTrendY returns bias + slope*i + curve*i^2 for each position i
func GenerateTrendY(n int, bias, slope, curve float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		y = append(y, bias+slope*x+curve*x*x)
	}
	return Series(y)
}

// GenerateWaveY returns amp*sin(2*pi*i/period + phase) for each position i
func GenerateWaveY(n int, amp, period, phase float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, amp*math.Sin(2.0*math.Pi*float64(i)/period+phase))
	}
	return Series(y)
}

// GenerateNoise returns gaussian noise with the given standard deviation
func GenerateNoise(rng *rand.Rand, n int, scale float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*scale)
	}
	return Series(y)
}

// NewSeededRand returns a deterministic random source for the synthetic series
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// FAOSTATSynthetic generates a wheat-like monthly sales series with a quadratic trend, yearly and
// half-yearly seasonality and noise, bounded to [50, 200].
func FAOSTATSynthetic(years int, end time.Time) (*TimeDataset, error) {
	n := years * 12
	if n <= 0 {
		return nil, fmt.Errorf("%d years, %w", years, ErrInvalidLength)
	}
	rng := NewSeededRand(42)

	y := GenerateTrendY(n, 100, 2, 0.01).
		Add(GenerateWaveY(n, 15, 12, 0)).
		Add(GenerateWaveY(n, 5, 6, 0)).
		Add(GenerateNoise(rng, n, 3)).
		Clip(50, 200)

	return NewUnivariateDataset(GenerateMonthlyT(n, end), y)
}

// USDASynthetic generates a milk-like monthly sales series with a linear trend, a phase shifted
// yearly seasonality and noise, bounded to [40, 150].
func USDASynthetic(years int, end time.Time) (*TimeDataset, error) {
	n := years * 12
	if n <= 0 {
		return nil, fmt.Errorf("%d years, %w", years, ErrInvalidLength)
	}
	rng := NewSeededRand(43)

	y := GenerateTrendY(n, 80, 1.5, 0).
		Add(GenerateWaveY(n, 12, 12, -math.Pi/4)).
		Add(GenerateNoise(rng, n, 2)).
		Clip(40, 150)

	return NewUnivariateDataset(GenerateMonthlyT(n, end), y)
}

// LoadProduct returns the synthetic series for a product. Unknown products use the wheat shape.
func LoadProduct(product string, years int, end time.Time) (*TimeDataset, error) {
	switch strings.ToLower(product) {
	case ProductMilk, "молоко":
		return USDASynthetic(years, end)
	default:
		return FAOSTATSynthetic(years, end)
	}
}
