// Package secondary holds the trend and seasonality forecasters that run alongside the ARIMA
// cascade. Every Predictor holds out the last testSize points of a series and forecasts them
// without ever failing.
package secondary

import (
	"context"
	"log/slog"
	"time"

	"github.com/aouyang1/go-demandcast/timedataset"
)

const (
	DefaultPeriod         = 12
	DefaultMinTrainLength = 24
)

// Result is the forecast of the held out points along with their observed values
type Result struct {
	T         []time.Time `json:"ds"`
	Predicted []float64   `json:"predicted"`
	Actual    []float64   `json:"actual"`
	Model     string      `json:"model"`

	// Fit is set only when the trend and seasonality model produced the forecast
	Fit *FitSummary `json:"fit,omitempty"`
}

// FitSummary describes the trend and seasonality model behind a forecast. The scores are
// in-sample over the training window and the components cover the held out points.
type FitSummary struct {
	Equation    string    `json:"equation"`
	MSE         float64   `json:"mse"`
	MAPE        float64   `json:"mape"`
	R2          float64   `json:"r2"`
	Trend       []float64 `json:"trend"`
	Seasonality []float64 `json:"seasonality"`
}

// Predictor forecasts the last testSize points of a series from the points before them
type Predictor interface {
	Name() string
	Predict(ctx context.Context, td *timedataset.TimeDataset, testSize int) Result
}

// Options configures the seasonal profile estimator shared by every predictor
type Options struct {
	// Period is the number of positions in one seasonal cycle
	Period int

	// MinTrainLength is the shortest training window that gets a seasonal profile. Shorter
	// windows are forecast with their mean.
	MinTrainLength int

	Logger *slog.Logger
}

func NewDefaultOptions() *Options {
	return &Options{
		Period:         DefaultPeriod,
		MinTrainLength: DefaultMinTrainLength,
		Logger:         slog.Default(),
	}
}

func (o *Options) validate() *Options {
	if o == nil {
		return NewDefaultOptions()
	}
	res := *o
	if res.Period <= 0 {
		res.Period = DefaultPeriod
	}
	if res.MinTrainLength <= 0 {
		res.MinTrainLength = DefaultMinTrainLength
	}
	if res.Logger == nil {
		res.Logger = slog.Default()
	}
	return &res
}

// holdout is a series partitioned into a training window and its trailing test points
type holdout struct {
	trainT []time.Time
	train  []float64
	testT  []time.Time
	test   []float64
}

// splitHoldout clamps testSize so at least one training point remains. A non-positive testSize
// returns false.
func splitHoldout(td *timedataset.TimeDataset, testSize int) (holdout, bool) {
	n := td.Len()
	testSize = min(testSize, n-1)
	if testSize <= 0 {
		return holdout{}, false
	}
	trainSize := n - testSize
	return holdout{
		trainT: td.T[:trainSize],
		train:  td.Y[:trainSize],
		testT:  td.T[trainSize:],
		test:   td.Y[trainSize:],
	}, true
}

func emptyResult(model string) Result {
	return Result{
		T:         []time.Time{},
		Predicted: []float64{},
		Actual:    []float64{},
		Model:     model,
	}
}

func newResult(model string, h holdout, predicted []float64) Result {
	res := Result{
		T:         make([]time.Time, len(h.testT)),
		Predicted: predicted,
		Actual:    make([]float64, len(h.test)),
		Model:     model,
	}
	copy(res.T, h.testT)
	copy(res.Actual, h.test)
	return res
}
