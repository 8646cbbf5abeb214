package arima

import (
	"errors"
	"fmt"
)

const (
	DefaultP = 2
	DefaultD = 1
	DefaultQ = 2

	DefaultSeasonalP = 1
	DefaultSeasonalD = 1
	DefaultSeasonalQ = 1
	DefaultPeriod    = 12

	// minExtraPoints is the number of points required beyond the lag structure of the model
	minExtraPoints = 20
)

var ErrInvalidOrder = errors.New("invalid model order")

// Order is the non-seasonal (p, d, q) order of the model
type Order struct {
	P int `json:"p" yaml:"p"`
	D int `json:"d" yaml:"d"`
	Q int `json:"q" yaml:"q"`
}

func DefaultOrder() Order {
	return Order{P: DefaultP, D: DefaultD, Q: DefaultQ}
}

func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

func (o Order) Validate() error {
	if o.P < 0 || o.D < 0 || o.Q < 0 {
		return fmt.Errorf("order %s has a negative term, %w", o, ErrInvalidOrder)
	}
	return nil
}

// SeasonalOrder is the seasonal (P, D, Q, m) order of the model. The zero value describes a model
// without a seasonal component.
type SeasonalOrder struct {
	P      int `json:"p" yaml:"p"`
	D      int `json:"d" yaml:"d"`
	Q      int `json:"q" yaml:"q"`
	Period int `json:"period" yaml:"period"`
}

func DefaultSeasonalOrder() SeasonalOrder {
	return SeasonalOrder{
		P:      DefaultSeasonalP,
		D:      DefaultSeasonalD,
		Q:      DefaultSeasonalQ,
		Period: DefaultPeriod,
	}
}

func (s SeasonalOrder) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", s.P, s.D, s.Q, s.Period)
}

// IsZero reports if the order has no seasonal terms
func (s SeasonalOrder) IsZero() bool {
	return s.P == 0 && s.D == 0 && s.Q == 0
}

func (s SeasonalOrder) Validate() error {
	if s.P < 0 || s.D < 0 || s.Q < 0 || s.Period < 0 {
		return fmt.Errorf("seasonal order %s has a negative term, %w", s, ErrInvalidOrder)
	}
	if !s.IsZero() && s.Period < 2 {
		return fmt.Errorf("seasonal order %s needs a period of at least 2, %w", s, ErrInvalidOrder)
	}
	return nil
}

// MinLength returns the minimum number of observations needed to fit the given orders
func MinLength(order Order, seasonal SeasonalOrder) int {
	return order.P + order.Q + order.D +
		(seasonal.P+seasonal.D+seasonal.Q)*seasonal.Period +
		minExtraPoints
}
