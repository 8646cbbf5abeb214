// Package forecaster compares a SARIMA cascade against a trend and seasonality model on the tail
// of a monthly demand series. The comparison reconciles both forecasts onto a common window of
// held out truth so they can be scored side by side.
package forecaster

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aouyang1/go-demandcast/primary"
	"github.com/aouyang1/go-demandcast/secondary"
	"github.com/aouyang1/go-demandcast/timedataset"
	"gonum.org/v1/gonum/floats"
)

var ErrInsufficientData = fmt.Errorf("insufficient data for comparison, %w", timedataset.ErrInsufficientData)

// Comparison runs the primary and secondary forecasters and reconciles their lengths
type Comparison struct {
	opt        *Options
	primary    *primary.Forecaster
	secondary  secondary.Predictor
	capability secondary.Capability
}

type Option func(*Comparison)

// WithPrimary replaces the primary forecaster
func WithPrimary(p *primary.Forecaster) Option {
	return func(c *Comparison) {
		c.primary = p
	}
}

// WithSecondary replaces the secondary predictor and the capability reported with the results
func WithSecondary(p secondary.Predictor, capability secondary.Capability) Option {
	return func(c *Comparison) {
		c.secondary = p
		c.capability = capability
	}
}

// New creates a comparison. The secondary predictor is chosen from the process wide capability
// unless one is provided.
func New(opt *Options, copts ...Option) *Comparison {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	o := *opt
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.TestMonths <= 0 {
		o.TestMonths = DefaultTestMonths
	}
	if o.MinSeriesLength <= 0 {
		o.MinSeriesLength = DefaultMinSeriesLength
	}

	c := &Comparison{opt: &o}
	for _, copt := range copts {
		copt(c)
	}
	if c.primary == nil {
		c.primary = primary.New(o.PrimaryOptions)
	}
	if c.secondary == nil {
		c.capability = secondary.ResolveCapability(o.DisableFullModel, o.Logger)
		c.secondary = secondary.New(c.capability, o.SecondaryOptions, o.ForecastOptions)
	}
	return c
}

// PhaseOneResult holds both forecasts at the requested horizon with the primary truncated to n1
type PhaseOneResult struct {
	Requested int
	N1        int
	Primary   primary.Result
	Secondary secondary.Result
}

// PhaseOne forecasts min(TestMonths, len/5) points with both forecasters concurrently and bounds
// the primary forecast to n1 = min(len(predicted), len(actual), requested).
func (c *Comparison) PhaseOne(ctx context.Context, td *timedataset.TimeDataset) *PhaseOneResult {
	requested := timedataset.RequestedHorizon(c.opt.TestMonths, td.Len())

	var wg sync.WaitGroup
	var p primary.Result
	var s secondary.Result
	wg.Add(2)
	go func() {
		defer wg.Done()
		p = c.primary.Forecast(ctx, td, requested)
	}()
	go func() {
		defer wg.Done()
		s = c.secondary.Predict(ctx, td, requested)
	}()
	wg.Wait()

	n1 := max(min(len(p.Predicted), len(p.Actual), requested), 0)
	p.Predicted = p.Predicted[:n1]
	p.Actual = p.Actual[:n1]
	p.T = p.T[:min(n1, len(p.T))]

	return &PhaseOneResult{
		Requested: requested,
		N1:        n1,
		Primary:   p,
		Secondary: s,
	}
}

// PhaseTwo re-runs the secondary forecaster on the series truncated at the end of the primary truth
// window, holding out exactly the n1 truth points, and truncates the truth, the primary and the
// secondary forecasts to n = min(n1, len(secondary)).
func (c *Comparison) PhaseTwo(ctx context.Context, td *timedataset.TimeDataset, p1 *PhaseOneResult) (*Results, error) {
	if p1.N1 <= 0 {
		return nil, fmt.Errorf("reconciled length is %d, %w", p1.N1, ErrInsufficientData)
	}

	end := min(timedataset.TrainSize(td.Len(), c.primary.TrainFraction())+p1.N1, td.Len())
	window, err := td.Slice(0, end)
	if err != nil {
		return nil, fmt.Errorf("unable to truncate series to the truth window, %w", err)
	}
	s := c.secondary.Predict(ctx, window, p1.N1)

	n := min(p1.N1, len(s.Predicted), len(p1.Primary.Actual), len(p1.Primary.Predicted))
	if n <= 0 {
		return nil, fmt.Errorf("reconciled length is %d, %w", n, ErrInsufficientData)
	}

	res := &Results{
		T:                p1.Primary.T[:min(n, len(p1.Primary.T))],
		Truth:            p1.Primary.Actual[:n],
		Primary:          p1.Primary.Predicted[:n],
		Secondary:        s.Predicted[:n],
		PrimaryTier:      p1.Primary.Tier,
		SecondaryModel:   s.Model,
		SecondaryFit:     truncateFit(s.Fit, n),
		Capability:       c.capability,
		InitialSecondary: p1.Secondary,
	}

	res.Aligned = len(s.Actual) >= n && floats.Equal(s.Actual[:n], res.Truth)
	if !res.Aligned {
		c.opt.Logger.Warn("secondary forecast window differs from primary truth",
			"n", n,
			"series_length", td.Len(),
		)
	}
	return res, nil
}

func truncateFit(fit *secondary.FitSummary, n int) *secondary.FitSummary {
	if fit == nil {
		return nil
	}
	res := *fit
	res.Trend = res.Trend[:min(n, len(res.Trend))]
	res.Seasonality = res.Seasonality[:min(n, len(res.Seasonality))]
	return &res
}

// Run validates the series length and runs both phases
func (c *Comparison) Run(ctx context.Context, label string, td *timedataset.TimeDataset) (*Results, error) {
	if td.Len() < c.opt.MinSeriesLength {
		return nil, fmt.Errorf("series has %d points but needs %d, %w", td.Len(), c.opt.MinSeriesLength, ErrInsufficientData)
	}

	p1 := c.PhaseOne(ctx, td)
	c.opt.Logger.Info("phase one complete",
		"label", label,
		"requested", p1.Requested,
		"n1", p1.N1,
		"primary_tier", p1.Primary.Tier,
		"secondary_model", p1.Secondary.Model,
	)

	res, err := c.PhaseTwo(ctx, td, p1)
	if err != nil {
		return nil, err
	}
	res.Label = label
	return res, nil
}
