package arima

import (
	"context"
	"fmt"
)

// SeasonalTier fits a SARIMA model and forecasts from the end of the training series
type SeasonalTier struct {
	Order    Order
	Seasonal SeasonalOrder
}

func NewSeasonalTier(order Order, seasonal SeasonalOrder) *SeasonalTier {
	return &SeasonalTier{Order: order, Seasonal: seasonal}
}

func (t *SeasonalTier) Name() string {
	return "SARIMA" + t.Order.String() + t.Seasonal.String()
}

func (t *SeasonalTier) Forecast(ctx context.Context, train []float64, horizon int) ([]float64, error) {
	return fitForecast(ctx, t.Order, t.Seasonal, train, horizon)
}

// Tier fits a non-seasonal ARIMA model and forecasts from the end of the training series
type Tier struct {
	Order Order
}

func NewTier(order Order) *Tier {
	return &Tier{Order: order}
}

func (t *Tier) Name() string {
	return "ARIMA" + t.Order.String()
}

func (t *Tier) Forecast(ctx context.Context, train []float64, horizon int) ([]float64, error) {
	return fitForecast(ctx, t.Order, SeasonalOrder{}, train, horizon)
}

func fitForecast(ctx context.Context, order Order, seasonal SeasonalOrder, train []float64, horizon int) ([]float64, error) {
	m, err := New(order, seasonal)
	if err != nil {
		return nil, err
	}
	if err := m.Fit(ctx, train); err != nil {
		return nil, fmt.Errorf("unable to fit model, %w", err)
	}
	f, err := m.Forecast(horizon)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast, %w", err)
	}
	return f, nil
}
