// Package primary forecasts a series with an ordered cascade of models. Each tier is attempted
// under its own fit budget and any failure moves on to the next tier, ending with a naive
// persistence forecast that cannot fail.
package primary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aouyang1/go-demandcast/arima"
	"github.com/aouyang1/go-demandcast/timedataset"
)

const DefaultFitBudget = 30 * time.Second

var ErrHorizonMismatch = errors.New("forecast length does not match horizon")

// Tier is a single model in the cascade
type Tier interface {
	Name() string
	Forecast(ctx context.Context, train []float64, horizon int) ([]float64, error)
}

// Result is the forecast of the test window along with the observed test values
type Result struct {
	T         []time.Time `json:"ds"`
	Predicted []float64   `json:"predicted"`
	Actual    []float64   `json:"actual"`
	Tier      string      `json:"tier"`
}

// Options configures the default cascade
type Options struct {
	Order         arima.Order
	SeasonalOrder arima.SeasonalOrder
	TrainFraction float64

	// FitBudget bounds every individual tier attempt
	FitBudget time.Duration

	Logger *slog.Logger
}

func NewDefaultOptions() *Options {
	return &Options{
		Order:         arima.DefaultOrder(),
		SeasonalOrder: arima.DefaultSeasonalOrder(),
		TrainFraction: timedataset.DefaultTrainFraction,
		FitBudget:     DefaultFitBudget,
		Logger:        slog.Default(),
	}
}

// Forecaster runs the tier cascade
type Forecaster struct {
	opt   *Options
	tiers []Tier
	naive NaiveTier
}

type Option func(*Forecaster)

// WithTiers replaces the model tiers attempted before the naive forecast
func WithTiers(tiers ...Tier) Option {
	return func(f *Forecaster) {
		f.tiers = tiers
	}
}

// New returns a forecaster with the SARIMA then ARIMA tiers built from the options
func New(opt *Options, fopts ...Option) *Forecaster {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	o := *opt
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.FitBudget <= 0 {
		o.FitBudget = DefaultFitBudget
	}
	if o.TrainFraction <= 0 || o.TrainFraction >= 1 {
		o.TrainFraction = timedataset.DefaultTrainFraction
	}

	f := &Forecaster{
		opt: &o,
		tiers: []Tier{
			arima.NewSeasonalTier(o.Order, o.SeasonalOrder),
			arima.NewTier(o.Order),
		},
	}
	for _, fopt := range fopts {
		fopt(f)
	}
	return f
}

// Tiers returns the names of the cascade in attempt order
func (f *Forecaster) Tiers() []string {
	names := make([]string, 0, len(f.tiers)+1)
	for _, t := range f.tiers {
		names = append(names, t.Name())
	}
	return append(names, f.naive.Name())
}

// TrainFraction returns the fraction of the series used for training by Forecast
func (f *Forecaster) TrainFraction() float64 {
	return f.opt.TrainFraction
}

// FitAndForecast returns the forecast of the first tier that succeeds along with its name
func (f *Forecaster) FitAndForecast(ctx context.Context, train []float64, horizon int) ([]float64, string) {
	if horizon <= 0 {
		return []float64{}, f.naive.Name()
	}

	for _, tier := range f.tiers {
		start := time.Now()
		pred, err := f.attempt(ctx, tier, train, horizon)
		if err != nil {
			f.opt.Logger.Warn("unable to forecast with tier, trying next",
				"tier", tier.Name(),
				"train_size", len(train),
				"horizon", horizon,
				"elapsed", time.Since(start),
				"error", err.Error(),
			)
			continue
		}
		f.opt.Logger.Debug("forecast tier succeeded", "tier", tier.Name(), "elapsed", time.Since(start))
		return pred, tier.Name()
	}

	pred, _ := f.naive.Forecast(ctx, train, horizon)
	return pred, f.naive.Name()
}

func (f *Forecaster) attempt(ctx context.Context, tier Tier, train []float64, horizon int) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opt.FitBudget)
	defer cancel()

	pred, err := tier.Forecast(ctx, train, horizon)
	if err != nil {
		return nil, err
	}
	if len(pred) != horizon {
		return nil, fmt.Errorf("got %d points for horizon %d, %w", len(pred), horizon, ErrHorizonMismatch)
	}
	for i, v := range pred {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("step %d is %f, %w", i, v, arima.ErrNonFinite)
		}
	}
	return pred, nil
}

// Forecast splits the series chronologically and forecasts the test window. The horizon is the
// requested horizon bounded by the test window length. A series that cannot be split yields an
// empty result.
func (f *Forecaster) Forecast(ctx context.Context, td *timedataset.TimeDataset, requestedHorizon int) Result {
	split, err := timedataset.NewSplit(td, f.opt.TrainFraction)
	if err != nil {
		f.opt.Logger.Warn("unable to split series", "length", td.Len(), "error", err.Error())
		return Result{
			T:         []time.Time{},
			Predicted: []float64{},
			Actual:    []float64{},
			Tier:      f.naive.Name(),
		}
	}

	horizon := max(min(requestedHorizon, len(split.Test)), 0)
	pred, tier := f.FitAndForecast(ctx, split.Train, horizon)

	return Result{
		T:         split.TestT[:horizon],
		Predicted: pred,
		Actual:    split.Test[:horizon],
		Tier:      tier,
	}
}
