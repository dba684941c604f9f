package ordination

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BrayCurtis builds the pairwise Bray-Curtis dissimilarity matrix for a set
// of non-negative compositional vectors:
//
//	d(x, y) = sum |x_i - y_i| / sum (x_i + y_i)
//
// The result is symmetric with a zero diagonal and every entry in [0, 1].
// Vectors must share one length; a pair summing to zero has no defined
// dissimilarity and is an error.
func BrayCurtis(rows [][]float64) (*mat.SymDense, error) {
	n := len(rows)
	if n < 2 {
		return nil, fmt.Errorf("Bray-Curtis needs at least 2 vectors, got %d", n)
	}

	width := len(rows[0])
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("Vector %d has length %d, want %d", i, len(row), width)
		}

		for j, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("Vector %d has negative value %f at position %d", i, v, j)
			}
		}
	}

	d := mat.NewSymDense(n, nil)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			num, den := 0.0, 0.0
			for k := 0; k < width; k++ {
				num += math.Abs(rows[i][k] - rows[j][k])
				den += rows[i][k] + rows[j][k]
			}

			if den == 0 {
				return nil, fmt.Errorf("Vectors %d and %d are both all-zero", i, j)
			}

			d.SetSym(i, j, num/den)
		}
	}

	return d, nil
}
