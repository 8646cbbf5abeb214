package forecaster

import (
	"log/slog"

	"github.com/aouyang1/go-demandcast/forecast/options"
	"github.com/aouyang1/go-demandcast/primary"
	"github.com/aouyang1/go-demandcast/secondary"
)

const (
	DefaultTestMonths      = 24
	DefaultMinSeriesLength = 24
)

// Options configures both forecasters of a comparison
type Options struct {
	PrimaryOptions   *primary.Options
	SecondaryOptions *secondary.Options
	ForecastOptions  *options.Options

	// TestMonths is the requested number of held out months before it is bounded by a fifth of
	// the series length
	TestMonths int

	// MinSeriesLength rejects shorter series before any model is fit
	MinSeriesLength int

	// DisableFullModel forces the seasonal profile estimator for the secondary forecast
	DisableFullModel bool

	Logger *slog.Logger
}

func NewDefaultOptions() *Options {
	return &Options{
		PrimaryOptions:   primary.NewDefaultOptions(),
		SecondaryOptions: secondary.NewDefaultOptions(),
		ForecastOptions:  options.NewDefaultOptions(),
		TestMonths:       DefaultTestMonths,
		MinSeriesLength:  DefaultMinSeriesLength,
		Logger:           slog.Default(),
	}
}
