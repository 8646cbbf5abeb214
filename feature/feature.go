// Package feature generates the named regressors of the trend and seasonality model
package feature

type FeatureType int

const (
	FeatureTypeGrowth FeatureType = iota
	FeatureTypeSeasonality
	FeatureTypeTime
)

func (f FeatureType) String() string {
	switch f {
	case FeatureTypeGrowth:
		return "growth"
	case FeatureTypeSeasonality:
		return "seasonality"
	case FeatureTypeTime:
		return "time"
	}
	return "unknown"
}

type Feature interface {
	String() string
	Type() FeatureType
}
