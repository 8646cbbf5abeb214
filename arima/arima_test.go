package arima

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seasonalSeries(n int) []float64 {
	y := make([]float64, n)
	for i := range y {
		y[i] = 100 + 0.2*float64(i) + 18*math.Sin(2*math.Pi*float64(i)/12)
	}
	return y
}

func TestNew(t *testing.T) {
	testData := map[string]struct {
		order    Order
		seasonal SeasonalOrder
		err      error
	}{
		"defaults":          {order: DefaultOrder(), seasonal: DefaultSeasonalOrder()},
		"non seasonal":      {order: DefaultOrder()},
		"negative order":    {order: Order{P: -1}, err: ErrInvalidOrder},
		"negative seasonal": {seasonal: SeasonalOrder{Q: -1, Period: 12}, err: ErrInvalidOrder},
		"missing period":    {seasonal: SeasonalOrder{P: 1, Period: 1}, err: ErrInvalidOrder},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m, err := New(td.order, td.seasonal)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.order, m.Order)
		})
	}
}

func TestFitErrors(t *testing.T) {
	expired, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	nanSeries := seasonalSeries(120)
	nanSeries[50] = math.NaN()

	testData := map[string]struct {
		ctx context.Context
		y   []float64
		err error
	}{
		"insufficient data": {
			ctx: context.Background(),
			y:   seasonalSeries(MinLength(DefaultOrder(), DefaultSeasonalOrder()) - 1),
			err: ErrInsufficientData,
		},
		"non finite": {
			ctx: context.Background(),
			y:   nanSeries,
			err: ErrNonFinite,
		},
		"budget exceeded": {
			ctx: expired,
			y:   seasonalSeries(120),
			err: ErrFitBudget,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			m, err := New(DefaultOrder(), DefaultSeasonalOrder())
			require.NoError(t, err)

			err = m.Fit(td.ctx, td.y)
			require.ErrorIs(t, err, td.err)

			_, err = m.Forecast(3)
			require.ErrorIs(t, err, ErrNotFitted)
		})
	}
}

func TestMinLength(t *testing.T) {
	assert.Equal(t, 61, MinLength(DefaultOrder(), DefaultSeasonalOrder()))
	assert.Equal(t, 25, MinLength(DefaultOrder(), SeasonalOrder{}))
}

func TestFitRecoversAR1(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	n := 500
	y := make([]float64, n)
	for i := 1; i < n; i++ {
		y[i] = 0.6*y[i-1] + rng.NormFloat64()
	}

	m, err := New(Order{P: 1}, SeasonalOrder{})
	require.NoError(t, err)
	require.NoError(t, m.Fit(context.Background(), y))

	require.Len(t, m.Params.AR, 1)
	assert.InDelta(t, 0.6, m.Params.AR[0], 0.1)
	assert.InDelta(t, 1.0, m.Sigma2, 0.2)

	f, err := m.Forecast(50)
	require.NoError(t, err)
	require.Len(t, f, 50)

	// stationary forecasts decay towards the mean
	assert.InDelta(t, m.Intercept, f[49], 0.01)
}

func TestSeasonalForecastContinuesPattern(t *testing.T) {
	y := seasonalSeries(120)
	train, test := y[:96], y[96:]

	m, err := New(DefaultOrder(), DefaultSeasonalOrder())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, m.Fit(ctx, train))

	f, err := m.Forecast(len(test))
	require.NoError(t, err)
	assert.InDeltaSlice(t, test, f, 1e-6)
}

func TestForecastZeroHorizon(t *testing.T) {
	m, err := New(Order{D: 1}, SeasonalOrder{})
	require.NoError(t, err)
	require.NoError(t, m.Fit(context.Background(), seasonalSeries(40)))

	f, err := m.Forecast(0)
	require.NoError(t, err)
	assert.Empty(t, f)

	// a random walk forecast repeats the last value
	f, err = m.Forecast(2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{seasonalSeries(40)[39], seasonalSeries(40)[39]}, f, 1e-9)
}

func TestTiers(t *testing.T) {
	y := seasonalSeries(120)[:96]

	testData := map[string]struct {
		tier interface {
			Name() string
			Forecast(context.Context, []float64, int) ([]float64, error)
		}
		name string
		err  error
		data []float64
	}{
		"seasonal": {
			tier: NewSeasonalTier(DefaultOrder(), DefaultSeasonalOrder()),
			name: "SARIMA(2,1,2)(1,1,1,12)",
			data: y,
		},
		"non seasonal": {
			tier: NewTier(DefaultOrder()),
			name: "ARIMA(2,1,2)",
			data: y,
		},
		"seasonal too short": {
			tier: NewSeasonalTier(DefaultOrder(), DefaultSeasonalOrder()),
			name: "SARIMA(2,1,2)(1,1,1,12)",
			data: y[:30],
			err:  ErrInsufficientData,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.name, td.tier.Name())

			f, err := td.tier.Forecast(context.Background(), td.data, 24)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, f, 24)
		})
	}
}
