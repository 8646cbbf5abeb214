// Package mat holds small constructors around gonum dense matrices used to build design matrices
// for the trend and seasonality regressions.
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrRowMismatch = errors.New("row size mismatch")

// NewDenseFromColumns builds an m x n matrix where each input slice is one of the n columns,
// e.g. one feature per column with one observation per row.
func NewDenseFromColumns(cols [][]float64) (*mat.Dense, error) {
	n := len(cols)
	if n == 0 {
		return nil, mat.ErrZeroLength
	}

	m := len(cols[0])
	for j, col := range cols {
		if len(col) != m {
			return nil, fmt.Errorf("at column %d, %w", j, ErrRowMismatch)
		}
	}
	if m == 0 {
		return nil, mat.ErrZeroLength
	}

	d := mat.NewDense(m, n, nil)
	for j, col := range cols {
		d.SetCol(j, col)
	}
	return d, nil
}
