// Package options contains the forecast options for a linear trend and seasonality fit of a
// univariate monthly series
package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/aouyang1/go-demandcast/feature"
)

const (
	LabelTimeEpoch = "epoch"

	LabelSeasYearly = "yearly"

	// YearDuration is the average length of a calendar year
	YearDuration = time.Duration(365.25 * 24 * float64(time.Hour))

	DefaultYearlyOrders = 3
)

var ErrUnknownTimeFeature = errors.New("unknown time feature")

// Options configures a forecast by specifying the growth type and the seasonal components to
// fit for.
type Options struct {
	GrowthType         string             `json:"growth_type"`
	SeasonalityOptions SeasonalityOptions `json:"seasonality_options"`
}

// NewDefaultOptions returns a linear growth with yearly seasonality
func NewDefaultOptions() *Options {
	return &Options{
		GrowthType:         feature.GrowthLinear,
		SeasonalityOptions: NewDefaultSeasonalityOptions(),
	}
}

// GenerateTimeFeatures returns the epoch time feature along with any growth feature. Growth is
// scaled against the training window so predictions past the window extrapolate the same line.
func (o *Options) GenerateTimeFeatures(t []time.Time, trainStartTime, trainEndTime time.Time) (feature.Set, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	tFeat := feature.NewSet()

	epochFeat := feature.NewTime(LabelTimeEpoch)
	epoch := epochFeat.Generate(t)
	tFeat.Add(epochFeat, epoch)

	switch o.GrowthType {
	case "", feature.GrowthIntercept:
		return tFeat, nil
	case feature.GrowthLinear:
		linearFeat := feature.Linear()
		start := float64(trainStartTime.UnixNano()) / 1e9
		end := float64(trainEndTime.UnixNano()) / 1e9
		data, err := linearFeat.Generate(epoch, start, end)
		if err != nil {
			return nil, fmt.Errorf("unable to generate linear growth, %w", err)
		}
		tFeat.Add(linearFeat, data)
	default:
		return nil, fmt.Errorf("%q, %w", o.GrowthType, feature.ErrUnknownGrowth)
	}
	return tFeat, nil
}

// GenerateFourierFeatures builds the sine and cosine terms of every seasonality config from the
// epoch feature of the input set
func (o *Options) GenerateFourierFeatures(tFeat feature.Set) (feature.Set, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	epoch, exists := tFeat[feature.NewTime(LabelTimeEpoch).String()]
	if !exists {
		return nil, ErrUnknownTimeFeature
	}

	o.SeasonalityOptions.removeDuplicates()

	x := feature.NewSet()
	for _, seasCfg := range o.SeasonalityOptions.SeasonalityConfigs {
		period := seasCfg.Period.Seconds()
		for order := 1; order <= seasCfg.Orders; order++ {
			for _, fcomp := range []feature.FourierComp{feature.FourierCompSin, feature.FourierCompCos} {
				feat := feature.NewSeasonality(LabelTimeEpoch+"_"+seasCfg.Name, fcomp, order)
				data, err := feat.Generate(epoch.Data, period)
				if err != nil {
					return nil, fmt.Errorf("unable to generate seasonality features for %q, %w", seasCfg.Name, err)
				}
				x.Add(feat, data)
			}
		}
	}
	return x, nil
}
