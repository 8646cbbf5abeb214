package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicates(t *testing.T) {
	testData := map[string]struct {
		opt      *SeasonalityOptions
		expected *SeasonalityOptions
	}{
		"no configs": {
			opt:      &SeasonalityOptions{},
			expected: &SeasonalityOptions{},
		},
		"period ordering": {
			opt: &SeasonalityOptions{
				SeasonalityConfigs: []SeasonalityConfig{
					{Name: "bar", Orders: 2, Period: 2 * time.Hour},
					{Name: "foo", Orders: 2, Period: 1 * time.Hour},
					{Name: "baz", Orders: 2, Period: 3 * time.Hour},
				},
			},
			expected: &SeasonalityOptions{
				SeasonalityConfigs: []SeasonalityConfig{
					{Name: "foo", Orders: 2, Period: 1 * time.Hour},
					{Name: "bar", Orders: 2, Period: 2 * time.Hour},
					{Name: "baz", Orders: 2, Period: 3 * time.Hour},
				},
			},
		},
		"orders ordering": {
			opt: &SeasonalityOptions{
				SeasonalityConfigs: []SeasonalityConfig{
					{Name: "bar", Orders: 2, Period: 2 * time.Hour},
					{Name: "foo", Orders: 1, Period: 2 * time.Hour},
					{Name: "baz", Orders: 3, Period: 2 * time.Hour},
				},
			},
			expected: &SeasonalityOptions{
				SeasonalityConfigs: []SeasonalityConfig{
					{Name: "baz", Orders: 3, Period: 2 * time.Hour},
				},
			},
		},
		"name ordering": {
			opt: &SeasonalityOptions{
				SeasonalityConfigs: []SeasonalityConfig{
					{Name: "bar", Orders: 1, Period: 1 * time.Hour},
					{Name: "foo", Orders: 1, Period: 1 * time.Hour},
					{Name: "baz", Orders: 1, Period: 1 * time.Hour},
				},
			},
			expected: &SeasonalityOptions{
				SeasonalityConfigs: []SeasonalityConfig{
					{Name: "bar", Orders: 1, Period: 1 * time.Hour},
				},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			td.opt.removeDuplicates()
			assert.Equal(t, td.expected, td.opt)
		})
	}
}

func TestYearlySeasonalityConfig(t *testing.T) {
	cfg := NewYearlySeasonalityConfig(-1)
	assert.Equal(t, 0, cfg.Orders)
	assert.Equal(t, LabelSeasYearly, cfg.Name)
	assert.Equal(t, 8766*time.Hour, cfg.Period)

	opt := NewDefaultSeasonalityOptions()
	assert.Equal(t, []SeasonalityConfig{NewYearlySeasonalityConfig(DefaultYearlyOrders)}, opt.SeasonalityConfigs)
}
