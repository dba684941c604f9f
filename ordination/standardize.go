// Package ordination implements the two dimensionality reductions applied to
// a field campaign's data: principal component analysis of the standardized
// environmental matrix, and principal coordinates analysis of Bray-Curtis
// dissimilarities between phenotypic fingerprints.
package ordination

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Standardize returns a derived matrix whose columns have zero mean and unit
// sample variance. A zero-variance column is an error: it carries no
// ordination information and would divide by zero.
func Standardize(m mat.Matrix) (*mat.Dense, error) {
	r, c := m.Dims()
	if r < 2 {
		return nil, fmt.Errorf("Standardization needs at least 2 rows, got %d", r)
	}

	out := mat.DenseCopyOf(m)

	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, out)

		mean, sd := stat.MeanStdDev(col, nil)
		if sd == 0 {
			return nil, fmt.Errorf("Column %d has zero variance", j)
		}

		for i := 0; i < r; i++ {
			out.Set(i, j, (out.At(i, j)-mean)/sd)
		}
	}

	return out, nil
}
