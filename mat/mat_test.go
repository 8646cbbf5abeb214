package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDenseFromColumns(t *testing.T) {
	testData := map[string]struct {
		err      error
		cols     [][]float64
		expected [][]float64
	}{
		"no columns": {
			err: mat.ErrZeroLength,
		},
		"empty column": {
			err:  mat.ErrZeroLength,
			cols: [][]float64{{}},
		},
		"mismatched rows": {
			err:  ErrRowMismatch,
			cols: [][]float64{{1, 2}, {3}},
		},
		"intercept and index": {
			cols:     [][]float64{{1, 1, 1}, {0, 1, 2}},
			expected: [][]float64{{1, 0}, {1, 1}, {1, 2}},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := NewDenseFromColumns(td.cols)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)

			for i, row := range td.expected {
				assert.Equal(t, row, res.RawRowView(i))
			}
		})
	}
}
