package forecast

// Components is the additive decomposition of a prediction
type Components struct {
	Trend       []float64 `json:"trend"`
	Seasonality []float64 `json:"seasonality"`
}
