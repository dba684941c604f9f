package ordination

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCAResult holds the eigendecomposition of a covariance matrix plus the
// per-sample projections onto the principal axes.
type PCAResult struct {
	// Eigenvalues are the variances along each principal axis, descending.
	Eigenvalues []float64

	// ExplainedVar is each axis's fraction of total variance; sums to 1.
	ExplainedVar []float64

	// Retained flags the axes kept under the Kaiser-Guttman rule: an axis is
	// retained when its eigenvalue exceeds the mean eigenvalue.
	Retained []bool

	// Loadings has one column of variable weights per principal axis.
	Loadings *mat.Dense

	// Scores has one row of projected coordinates per sample.
	Scores *mat.Dense
}

// PCA eigendecomposes the covariance matrix of m and projects the samples.
// Pass a standardized matrix to analyze correlations instead of covariances.
// Tiny negative eigenvalues from floating-point roundoff are clamped to zero.
func PCA(m *mat.Dense) (*PCAResult, error) {
	r, c := m.Dims()
	if r <= c {
		return nil, fmt.Errorf("PCA needs more samples than variables, got %d samples and %d variables", r, c)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, fmt.Errorf("Principal component decomposition failed")
	}

	out := &PCAResult{
		Eigenvalues: pc.VarsTo(nil),
		Loadings:    &mat.Dense{},
	}
	pc.VectorsTo(out.Loadings)

	total := 0.0
	for i, v := range out.Eigenvalues {
		if v < 0 {
			out.Eigenvalues[i] = 0
			v = 0
		}
		total += v
	}

	if total == 0 {
		return nil, fmt.Errorf("All eigenvalues are zero")
	}

	meanEigen := total / float64(len(out.Eigenvalues))

	out.ExplainedVar = make([]float64, len(out.Eigenvalues))
	out.Retained = make([]bool, len(out.Eigenvalues))
	for i, v := range out.Eigenvalues {
		out.ExplainedVar[i] = v / total
		out.Retained[i] = v > meanEigen
	}

	out.Scores = &mat.Dense{}
	out.Scores.Mul(m, out.Loadings)

	return out, nil
}
