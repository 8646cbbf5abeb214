package secondary

import (
	"context"

	"github.com/aouyang1/go-demandcast/forecast"
	"github.com/aouyang1/go-demandcast/forecast/options"
	"github.com/aouyang1/go-demandcast/timedataset"
)

const ModelTrendSeasonal = "trend_seasonal"

// TrendSeasonal fits a linear growth with yearly Fourier seasonality on the training window and
// predicts the held out timestamps. A failed fit degrades to the seasonal profile estimator.
type TrendSeasonal struct {
	opt         *Options
	forecastOpt *options.Options
	fallback    *SeasonalNaive
}

func NewTrendSeasonal(opt *Options, forecastOpt *options.Options) *TrendSeasonal {
	opt = opt.validate()
	if forecastOpt == nil {
		forecastOpt = options.NewDefaultOptions()
	}
	return &TrendSeasonal{
		opt:         opt,
		forecastOpt: forecastOpt,
		fallback:    NewSeasonalNaive(opt),
	}
}

func (t *TrendSeasonal) Name() string {
	return ModelTrendSeasonal
}

func (t *TrendSeasonal) Predict(ctx context.Context, td *timedataset.TimeDataset, testSize int) Result {
	h, ok := splitHoldout(td, testSize)
	if !ok {
		return emptyResult(t.Name())
	}

	predicted, fit, err := t.fitPredict(h)
	if err != nil {
		t.opt.Logger.Warn("unable to fit trend and seasonality model, falling back",
			"fallback", t.fallback.Name(),
			"train_size", len(h.train),
			"error", err.Error(),
		)
		return newResult(t.fallback.Name(), h, t.fallback.forecast(h.train, len(h.test)))
	}
	res := newResult(t.Name(), h, predicted)
	res.Fit = fit
	return res
}

func (t *TrendSeasonal) fitPredict(h holdout) ([]float64, *FitSummary, error) {
	f, err := forecast.New(t.forecastOpt)
	if err != nil {
		return nil, nil, err
	}
	if err := f.Fit(h.trainT, h.train); err != nil {
		return nil, nil, err
	}
	predicted, comp, err := f.Predict(h.testT)
	if err != nil {
		return nil, nil, err
	}

	eq, err := f.ModelEq()
	if err != nil {
		return nil, nil, err
	}
	scores := f.Scores()
	fit := &FitSummary{
		Equation:    eq,
		MSE:         scores.MSE,
		MAPE:        scores.MAPE,
		R2:          scores.R2,
		Trend:       comp.Trend,
		Seasonality: comp.Seasonality,
	}
	return predicted, fit, nil
}
