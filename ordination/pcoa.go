package ordination

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// PCoAResult is a classical (metric) multidimensional scaling of a
// dissimilarity matrix.
type PCoAResult struct {
	// Coordinates has one row per sample; columns are ordination axes,
	// ordered by decreasing eigenvalue. Only axes with positive eigenvalues
	// become coordinates.
	Coordinates *mat.Dense

	// Eigenvalues are the positive eigenvalues behind the retained axes,
	// descending.
	Eigenvalues []float64

	// ExplainedVar is each retained axis's share of the positive eigenvalue
	// total.
	ExplainedVar []float64

	// NegativeAxes counts eigenvalues below -tolerance. Bray-Curtis is not
	// Euclidean-embeddable in general, so a few are expected; they are
	// dropped from the coordinates but reported here.
	NegativeAxes int

	// MostNegative is the most negative eigenvalue seen (0 when none were
	// negative), as a magnitude check on what was discarded.
	MostNegative float64
}

// PCoA runs classical scaling on a symmetric dissimilarity matrix: the
// squared dissimilarities are double-centered and eigendecomposed, and each
// positive axis is scaled by the square root of its eigenvalue.
func PCoA(d *mat.SymDense) (*PCoAResult, error) {
	n := d.Symmetric()
	if n < 2 {
		return nil, fmt.Errorf("PCoA needs at least 2 samples, got %d", n)
	}

	for i := 0; i < n; i++ {
		if d.At(i, i) != 0 {
			return nil, fmt.Errorf("Dissimilarity matrix has nonzero diagonal at %d", i)
		}
		for j := i + 1; j < n; j++ {
			if d.At(i, j) < 0 {
				return nil, fmt.Errorf("Negative dissimilarity %f at (%d, %d)", d.At(i, j), i, j)
			}
		}
	}

	b := gowerCenter(d)

	var eig mat.EigenSym
	if ok := eig.Factorize(b, true); !ok {
		return nil, fmt.Errorf("Eigendecomposition of the centered matrix failed")
	}

	vals := eig.Values(nil)

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// Eigenvalues come back ascending; order axes by decreasing eigenvalue.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return vals[order[i]] > vals[order[j]] })

	// Anything within tol of zero is noise, not signal.
	tol := 1e-8 * vals[order[0]]
	if tol < 1e-12 {
		tol = 1e-12
	}

	out := &PCoAResult{}

	total := 0.0
	var kept []int
	for _, idx := range order {
		v := vals[idx]

		if v > tol {
			kept = append(kept, idx)
			out.Eigenvalues = append(out.Eigenvalues, v)
			total += v
		}

		if v < -tol {
			out.NegativeAxes++
		}

		if v < out.MostNegative {
			out.MostNegative = v
		}
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf("No positive eigenvalues; the dissimilarities carry no metric structure")
	}

	out.ExplainedVar = make([]float64, len(kept))
	for i, v := range out.Eigenvalues {
		out.ExplainedVar[i] = v / total
	}

	out.Coordinates = mat.NewDense(n, len(kept), nil)
	for axis, idx := range kept {
		scale := math.Sqrt(vals[idx])
		for i := 0; i < n; i++ {
			out.Coordinates.Set(i, axis, vecs.At(i, idx)*scale)
		}
	}

	return out, nil
}

// gowerCenter maps dissimilarities to the centered inner-product matrix
// B = -1/2 J D^2 J with J = I - 11'/n.
func gowerCenter(d *mat.SymDense) *mat.SymDense {
	n := d.Symmetric()

	sq := make([][]float64, n)
	rowMean := make([]float64, n)
	grand := 0.0

	for i := 0; i < n; i++ {
		sq[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := d.At(i, j)
			sq[i][j] = v * v
			rowMean[i] += sq[i][j]
		}
		rowMean[i] /= float64(n)
		grand += rowMean[i]
	}
	grand /= float64(n)

	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.SetSym(i, j, -0.5*(sq[i][j]-rowMean[i]-rowMean[j]+grand))
		}
	}

	return b
}
