package secondary

import (
	"context"

	"github.com/aouyang1/go-demandcast/stats"
	"github.com/aouyang1/go-demandcast/timedataset"
)

const ModelSeasonalNaive = "seasonal_naive"

// SeasonalNaive forecasts with a least squares trend line plus a seasonal profile where slots
// are assigned by position in the training window rather than by calendar month.
type SeasonalNaive struct {
	opt *Options
}

func NewSeasonalNaive(opt *Options) *SeasonalNaive {
	return &SeasonalNaive{opt: opt.validate()}
}

func (s *SeasonalNaive) Name() string {
	return ModelSeasonalNaive
}

func (s *SeasonalNaive) Predict(ctx context.Context, td *timedataset.TimeDataset, testSize int) Result {
	h, ok := splitHoldout(td, testSize)
	if !ok {
		return emptyResult(s.Name())
	}
	return newResult(s.Name(), h, s.forecast(h.train, len(h.test)))
}

// forecast extends train by horizon points. Step j uses profile slot j mod period.
func (s *SeasonalNaive) forecast(train []float64, horizon int) []float64 {
	pred := make([]float64, horizon)

	mean, err := stats.Mean(train)
	if err != nil {
		s.opt.Logger.Warn("unable to compute training mean", "error", err.Error())
		return pred
	}

	if len(train) < s.opt.MinTrainLength {
		for j := range pred {
			pred[j] = mean
		}
		return pred
	}

	profile, err := stats.SeasonalProfile(train, s.opt.Period)
	if err != nil {
		s.opt.Logger.Warn("unable to compute seasonal profile", "error", err.Error())
		profile = make([]float64, s.opt.Period)
	}
	line, err := stats.LinearTrend(train)
	if err != nil {
		s.opt.Logger.Warn("unable to fit trend line", "error", err.Error())
		line = stats.Line{Intercept: mean}
	}

	n := len(train)
	for j := range pred {
		pred[j] = line.At(float64(n+j)) + profile[j%s.opt.Period]
	}
	return pred
}
