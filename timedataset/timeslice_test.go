package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthEnd(t *testing.T) {
	testData := map[string]struct {
		year     int
		month    time.Month
		expected time.Time
	}{
		"january":        {year: 2024, month: time.January, expected: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		"leap february":  {year: 2024, month: time.February, expected: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		"february":       {year: 2023, month: time.February, expected: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		"month overflow": {year: 2023, month: 13, expected: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		"month zero":     {year: 2024, month: 0, expected: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, MonthEnd(td.year, td.month, nil))
		})
	}
}

func TestMonthlyGaps(t *testing.T) {
	testData := map[string]struct {
		t        TimeSlice
		expected int
		err      error
	}{
		"single point": {
			t:   TimeSlice{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
			err: ErrCannotInferFreq,
		},
		"contiguous month ends": {
			t: TimeSlice(GenerateMonthlyT(14, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))),
		},
		"contiguous month starts": {
			t: TimeSlice{
				time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		"missing month": {
			t: TimeSlice{
				time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
			},
			expected: 1,
		},
		"daily": {
			t: TimeSlice{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			},
			expected: 2,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			gaps, err := td.t.MonthlyGaps()
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, gaps)
		})
	}
}

func TestStartEndTime(t *testing.T) {
	var empty TimeSlice
	assert.True(t, empty.StartTime().IsZero())
	assert.True(t, empty.EndTime().IsZero())

	ts := TimeSlice(GenerateMonthlyT(3, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), ts.StartTime())
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), ts.EndTime())
}
