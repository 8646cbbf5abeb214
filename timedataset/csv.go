package timedataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrParseTime     = errors.New("unable to parse timestamp")
)

var timeLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
}

// LoadCSV reads a dataset from a CSV file with a header containing the ds and y columns
func LoadCSV(path string) (*TimeDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV reads a dataset from CSV with a header containing the ds and y columns. Other
// columns are ignored.
func ReadCSV(r io.Reader) (*TimeDataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read csv header, %w", err)
	}

	dsIdx, yIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "ds":
			dsIdx = i
		case "y":
			yIdx = i
		}
	}
	if dsIdx < 0 {
		return nil, fmt.Errorf("%q, %w", "ds", ErrMissingColumn)
	}
	if yIdx < 0 {
		return nil, fmt.Errorf("%q, %w", "y", ErrMissingColumn)
	}

	var t []time.Time
	var y []float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read csv line %d, %w", line, err)
		}

		ts, err := parseTime(strings.TrimSpace(record[dsIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d, %w", line, err)
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(record[yIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse value at line %d, %w", line, err)
		}
		t = append(t, ts)
		y = append(y, val)
	}

	return NewUnivariateDataset(t, y)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q, %w", s, ErrParseTime)
}
