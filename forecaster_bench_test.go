package forecaster

import (
	"context"
	"testing"
	"time"

	"github.com/aouyang1/go-demandcast/secondary"
	"github.com/aouyang1/go-demandcast/timedataset"
	"github.com/pkg/profile"
)

var benchRunRes *Results

func BenchmarkComparisonRun(b *testing.B) {
	td, err := timedataset.LoadProduct(timedataset.ProductMilk, timedataset.DefaultYears, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}

	opt := NewDefaultOptions()
	opt.Logger = discardLogger()
	opt.PrimaryOptions.Logger = opt.Logger
	opt.SecondaryOptions.Logger = opt.Logger
	c := New(opt, WithSecondary(secondary.NewTrendSeasonal(opt.SecondaryOptions, opt.ForecastOptions), secondary.CapabilityFull))

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	for b.Loop() {
		benchRunRes, err = c.Run(context.Background(), timedataset.ProductMilk, td)
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkSecondaryPredict(b *testing.B) {
	td, err := timedataset.LoadProduct(timedataset.ProductWheat, timedataset.DefaultYears, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		panic(err)
	}
	opt := NewDefaultOptions()
	opt.SecondaryOptions.Logger = discardLogger()
	p := secondary.NewTrendSeasonal(opt.SecondaryOptions, opt.ForecastOptions)

	b.ResetTimer()
	for b.Loop() {
		p.Predict(context.Background(), td, 24)
	}
}
