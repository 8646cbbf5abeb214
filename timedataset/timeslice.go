package timedataset

import (
	"errors"
	"time"
)

var ErrCannotInferFreq = errors.New("cannot infer frequency with fewer than 2 points")

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// MonthlyGaps returns the number of consecutive pairs that are not exactly one calendar month
// apart. Month-end and month-start series are both handled since only the year and month of each
// point are compared.
func (t TimeSlice) MonthlyGaps() (int, error) {
	if len(t) < 2 {
		return 0, ErrCannotInferFreq
	}

	var gaps int
	for i := 1; i < len(t); i++ {
		prev := t[i-1].Year()*12 + int(t[i-1].Month())
		curr := t[i].Year()*12 + int(t[i].Month())
		if curr-prev != 1 {
			gaps++
		}
	}
	return gaps, nil
}

// MonthEnd returns midnight of the last day of the given month. Months outside 1-12 are
// normalized the same way time.Date does.
func MonthEnd(year int, month time.Month, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc)
}
