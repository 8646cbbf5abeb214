package arima

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

const maxFuncEvaluations = 20000

var (
	ErrInsufficientData = errors.New("insufficient data points for the model order")
	ErrNonFinite        = errors.New("non-finite value encountered")
	ErrFitBudget        = errors.New("fit budget exceeded")
	ErrNotFitted        = errors.New("model has not been fitted")
)

// Params are the estimated polynomial coefficients of the model
type Params struct {
	AR  []float64 `json:"ar"`
	MA  []float64 `json:"ma"`
	SAR []float64 `json:"sar"`
	SMA []float64 `json:"sma"`
}

// Model is a SARIMA model. A zero SeasonalOrder reduces it to a plain ARIMA model.
type Model struct {
	Order     Order         `json:"order"`
	Seasonal  SeasonalOrder `json:"seasonal_order"`
	Params    Params        `json:"params"`
	Intercept float64       `json:"intercept"`
	Sigma2    float64       `json:"sigma2"`
	AIC       float64       `json:"aic"`

	fitted bool

	// stages holds the series before each differencing step along with the lag of that step
	stages [][]float64
	lags   []int

	w     []float64
	resid []float64
	ar    []float64
	ma    []float64
}

// New returns an unfitted model for the given orders
func New(order Order, seasonal SeasonalOrder) (*Model, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := seasonal.Validate(); err != nil {
		return nil, err
	}
	if seasonal.IsZero() {
		seasonal.Period = 0
	}
	return &Model{Order: order, Seasonal: seasonal}, nil
}

func (m *Model) numParams() int {
	return m.Order.P + m.Order.Q + m.Seasonal.P + m.Seasonal.Q
}

// decode maps unconstrained optimizer values onto coefficients bounded to (-1, 1)
func (m *Model) decode(u []float64) Params {
	next := func(n int) []float64 {
		c := make([]float64, n)
		for i := range c {
			c[i] = math.Tanh(u[0])
			u = u[1:]
		}
		return c
	}
	return Params{
		AR:  next(m.Order.P),
		MA:  next(m.Order.Q),
		SAR: next(m.Seasonal.P),
		SMA: next(m.Seasonal.Q),
	}
}

func (m *Model) expand(p Params) ([]float64, []float64) {
	return expandAR(p.AR, p.SAR, m.Seasonal.Period), expandMA(p.MA, p.SMA, m.Seasonal.Period)
}

// residuals computes the conditional residuals of the differenced series. Residuals before the
// largest AR lag are conditioned to zero and not counted.
func residuals(w []float64, mu float64, ar, ma []float64) ([]float64, float64, int) {
	start := len(ar) - 1
	e := make([]float64, len(w))
	var sse float64
	for t := start; t < len(w); t++ {
		pred := mu
		for k := 1; k < len(ar); k++ {
			pred += ar[k] * (w[t-k] - mu)
		}
		for k := 1; k < len(ma) && t-k >= 0; k++ {
			pred += ma[k] * e[t-k]
		}
		e[t] = w[t] - pred
		sse += e[t] * e[t]
	}
	return e, sse, len(w) - start
}

// Fit estimates the model on y by minimizing the conditional sum of squares with Nelder-Mead. The
// context deadline bounds the optimizer runtime.
func (m *Model) Fit(ctx context.Context, y []float64) error {
	if m == nil {
		return ErrNotFitted
	}
	m.fitted = false

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w, %w", ErrFitBudget, err)
	}

	minLen := MinLength(m.Order, m.Seasonal)
	if len(y) < minLen {
		return fmt.Errorf("need %d points but got %d, %w", minLen, len(y), ErrInsufficientData)
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("observation %d is %f, %w", i, v, ErrNonFinite)
		}
	}

	m.stages = m.stages[:0]
	m.lags = m.lags[:0]
	x := y
	for i := 0; i < m.Order.D; i++ {
		m.stages = append(m.stages, x)
		m.lags = append(m.lags, 1)
		x = difference(x, 1)
	}
	for i := 0; i < m.Seasonal.D; i++ {
		m.stages = append(m.stages, x)
		m.lags = append(m.lags, m.Seasonal.Period)
		x = difference(x, m.Seasonal.Period)
	}
	maxLag := m.Order.P + m.Seasonal.P*m.Seasonal.Period
	if len(x) <= maxLag+1 {
		return fmt.Errorf("%d points after differencing, %w", len(x), ErrInsufficientData)
	}
	m.w = x

	m.Intercept = 0
	if m.Order.D+m.Seasonal.D == 0 {
		m.Intercept = stat.Mean(x, nil)
	}

	objective := func(u []float64) float64 {
		ar, ma := m.expand(m.decode(u))
		_, sse, cnt := residuals(m.w, m.Intercept, ar, ma)
		val := sse / float64(cnt)
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return math.Inf(1)
		}
		return val
	}

	u := make([]float64, m.numParams())
	if init := objective(u); math.IsInf(init, 1) {
		return fmt.Errorf("initial objective is not finite, %w", ErrNonFinite)
	}

	if len(u) > 0 {
		settings := &optimize.Settings{
			Converger: &optimize.FunctionConverge{
				Absolute:   1e-10,
				Iterations: 100,
			},
			FuncEvaluations: maxFuncEvaluations,
		}
		if deadline, ok := ctx.Deadline(); ok {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return ErrFitBudget
			}
			settings.Runtime = remaining
		}

		res, err := optimize.Minimize(optimize.Problem{Func: objective}, u, settings, &optimize.NelderMead{})
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w, %w", ErrFitBudget, ctxErr)
		}
		if res != nil && res.Status == optimize.RuntimeLimit {
			return ErrFitBudget
		}
		if err != nil {
			return fmt.Errorf("unable to minimize conditional sum of squares, %w", err)
		}
		u = res.X
	}

	m.Params = m.decode(u)
	m.ar, m.ma = m.expand(m.Params)

	resid, sse, cnt := residuals(m.w, m.Intercept, m.ar, m.ma)
	m.resid = resid
	m.Sigma2 = sse / float64(cnt)
	if math.IsNaN(m.Sigma2) || math.IsInf(m.Sigma2, 0) {
		return fmt.Errorf("residual variance is %f, %w", m.Sigma2, ErrNonFinite)
	}
	m.AIC = float64(cnt)*math.Log(m.Sigma2) + 2*float64(m.numParams()+1)

	m.fitted = true
	return nil
}

// Forecast returns the h step ahead point forecast on the scale of the fitted series
func (m *Model) Forecast(h int) ([]float64, error) {
	if m == nil || !m.fitted {
		return nil, ErrNotFitted
	}
	if h <= 0 {
		return []float64{}, nil
	}

	n := len(m.w)
	ext := make([]float64, n+h)
	copy(ext, m.w)
	mu := m.Intercept
	for t := n; t < n+h; t++ {
		pred := mu
		for k := 1; k < len(m.ar); k++ {
			pred += m.ar[k] * (ext[t-k] - mu)
		}
		// future shocks are zero in expectation
		for k := 1; k < len(m.ma) && t-k >= 0; k++ {
			if t-k < n {
				pred += m.ma[k] * m.resid[t-k]
			}
		}
		ext[t] = pred
	}

	f := ext[n:]
	for s := len(m.stages) - 1; s >= 0; s-- {
		f = integrate(m.stages[s], f, m.lags[s])
	}

	if floats.HasNaN(f) {
		return nil, fmt.Errorf("forecast contains NaN, %w", ErrNonFinite)
	}
	for i, v := range f {
		if math.IsInf(v, 0) {
			return nil, fmt.Errorf("forecast step %d is %f, %w", i, v, ErrNonFinite)
		}
	}
	return f, nil
}
