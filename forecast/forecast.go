// Package forecast fits a linear growth with Fourier seasonality to a univariate time series
// using ordinary least squares and predicts the series at arbitrary time points.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aouyang1/go-demandcast/feature"
	"github.com/aouyang1/go-demandcast/forecast/options"
	"github.com/aouyang1/go-demandcast/linearmodel"
	"github.com/aouyang1/go-demandcast/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUninitializedForecast    = errors.New("uninitialized forecast")
	ErrInsufficientTrainingData = errors.New("insufficient training data after removing NaNs")
	ErrNoModelCoefficients      = errors.New("no model coefficients from fit")
	ErrUntrainedForecast        = errors.New("forecast has not been trained yet")
	ErrNonFinitePrediction      = errors.New("prediction contains non-finite values")
)

// Forecast represents a single forecast model of a time series. This is a linear model fit with
// ordinary least squares that decomposes the series into an intercept, a growth trend and
// seasonal components.
type Forecast struct {
	opt    *options.Options
	scores *Scores // score calculations after training

	// model coefficients
	fLabels *feature.Labels

	trainStartTime time.Time
	trainEndTime   time.Time

	coef      []float64
	intercept float64
	trained   bool
}

// New creates a new forecast instance with the given options. If none are provided, a default
// is used
func New(opt *options.Options) (*Forecast, error) {
	if opt == nil {
		opt = options.NewDefaultOptions()
	}

	return &Forecast{opt: opt}, nil
}

func (f *Forecast) generateFeatures(t []time.Time) (feature.Set, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}

	tFeat, err := f.opt.GenerateTimeFeatures(t, f.trainStartTime, f.trainEndTime)
	if err != nil {
		return nil, err
	}

	x, err := f.opt.GenerateFourierFeatures(tFeat)
	if err != nil {
		return nil, err
	}

	for label, d := range tFeat.Filter(feature.FeatureTypeGrowth) {
		x[label] = d
	}
	return x, nil
}

// Fit takes the input training data and fits a forecast model for the growth, seasonal
// components and intercept
func (f *Forecast) Fit(t []time.Time, y []float64) error {
	if f == nil {
		return ErrUninitializedForecast
	}

	trainingData, err := timedataset.NewUnivariateDataset(t, y)
	if err != nil {
		return err
	}

	// drop out nans
	trainingT := make([]time.Time, 0, len(trainingData.T))
	trainingY := make([]float64, 0, len(trainingData.Y))
	for i := 0; i < len(trainingData.T); i++ {
		if math.IsNaN(trainingData.Y[i]) {
			continue
		}
		trainingT = append(trainingT, trainingData.T[i])
		trainingY = append(trainingY, trainingData.Y[i])
	}

	if len(trainingT) <= 1 {
		return ErrInsufficientTrainingData
	}

	f.trained = false
	f.trainStartTime = trainingT[0]
	f.trainEndTime = trainingT[len(trainingT)-1]

	x, err := f.generateFeatures(trainingT)
	if err != nil {
		return err
	}
	f.fLabels = x.Labels()

	if len(trainingT) <= f.fLabels.Len()+1 {
		return fmt.Errorf("%d points for %d features, %w", len(trainingT), f.fLabels.Len()+1, ErrInsufficientTrainingData)
	}

	features, err := x.Matrix()
	if err != nil {
		return fmt.Errorf("unable to build design matrix, %w", err)
	}
	observations := mat.NewDense(len(trainingY), 1, trainingY)

	model, err := linearmodel.NewOLSRegression(linearmodel.NewDefaultOLSOptions())
	if err != nil {
		return err
	}
	if err := model.Fit(features, observations); err != nil {
		return fmt.Errorf("unable to fit trend and seasonality, %w", err)
	}
	f.intercept = model.Intercept()
	f.coef = model.Coef()
	f.trained = true

	// use input training to include NaNs
	predicted, _, err := f.Predict(trainingData.T)
	if err != nil {
		return err
	}

	scores, err := NewScores(predicted, trainingData.Y)
	if err != nil {
		return err
	}
	f.scores = scores
	return nil
}

// Predict takes a slice of times in any order and produces the predicted value for those
// times given a pre-trained model.
func (f *Forecast) Predict(t []time.Time) ([]float64, Components, error) {
	if f == nil {
		return nil, Components{}, ErrUninitializedForecast
	}

	if !f.trained {
		return nil, Components{}, ErrUntrainedForecast
	}

	if len(t) == 0 {
		return []float64{}, Components{}, nil
	}

	x, err := f.generateFeatures(t)
	if err != nil {
		return nil, Components{}, err
	}

	trend, err := f.runInference(x.Filter(feature.FeatureTypeGrowth), len(t), true)
	if err != nil {
		return nil, Components{}, err
	}
	seasonality, err := f.runInference(x.Filter(feature.FeatureTypeSeasonality), len(t), false)
	if err != nil {
		return nil, Components{}, err
	}
	comp := Components{
		Trend:       trend,
		Seasonality: seasonality,
	}

	res, err := f.runInference(x, len(t), true)
	if err != nil {
		return nil, Components{}, err
	}
	for _, v := range res {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, Components{}, ErrNonFinitePrediction
		}
	}
	return res, comp, nil
}

// runInference computes the weighted sum of the input features using the trained coefficient of
// each feature label. Features unknown to the model are ignored.
func (f *Forecast) runInference(x feature.Set, m int, withIntercept bool) ([]float64, error) {
	res := make([]float64, m)
	if withIntercept {
		floats.AddConst(f.intercept, res)
	}

	sub := feature.NewSet()
	weights := make([]float64, 0, len(x))
	for _, xFeat := range x.Labels().Labels() {
		wIdx, exists := f.fLabels.Index(xFeat)
		if !exists {
			continue
		}
		sub[xFeat.String()] = x[xFeat.String()]
		weights = append(weights, f.coef[wIdx])
	}
	if len(sub) == 0 {
		return res, nil
	}

	featMx, err := sub.Matrix()
	if err != nil {
		return nil, err
	}

	var resVec mat.VecDense
	resVec.MulVec(featMx, mat.NewVecDense(len(weights), weights))
	floats.Add(res, resVec.RawVector().Data)
	return res, nil
}

// Coefficients returns a forecast model map of coefficients keyed by the string
// representation of each feature label
func (f *Forecast) Coefficients() (map[string]float64, error) {
	if f == nil {
		return nil, ErrUninitializedForecast
	}

	labels := f.fLabels.Labels()
	if len(labels) == 0 || len(f.coef) == 0 {
		return nil, ErrNoModelCoefficients
	}
	coef := make(map[string]float64)
	for i := 0; i < len(f.coef); i++ {
		coef[labels[i].String()] = f.coef[i]
	}
	return coef, nil
}

// Intercept returns the intercept of the forecast model
func (f *Forecast) Intercept() float64 {
	if f == nil {
		return 0
	}
	return f.intercept
}

// ModelEq returns a string representation of the model linear equation in the format of
// y ~ b + m1x1 + m2x2 + ...
func (f *Forecast) ModelEq() (string, error) {
	if f == nil {
		return "", ErrUninitializedForecast
	}

	coef, err := f.Coefficients()
	if err != nil {
		return "", err
	}

	eq := fmt.Sprintf("y ~ %.2f", f.Intercept())
	for _, label := range f.fLabels.Labels() {
		w := coef[label.String()]
		if w == 0 {
			continue
		}
		eq += fmt.Sprintf("+%.2f*%s", w, label)
	}
	return eq, nil
}

// Scores returns the fit scores for evaluating how well the resulting model
// fit the training data
func (f *Forecast) Scores() Scores {
	if f == nil || f.scores == nil {
		return Scores{}
	}
	return *f.scores
}
