package ordination

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func standardizedRandom(t *testing.T, seed int64, rows, cols int) *mat.Dense {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))

	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}

	out, err := Standardize(m)
	if err != nil {
		t.Fatal(err)
	}

	return out
}

func TestPCAEigenvalues(t *testing.T) {
	const rows, cols = 60, 5

	m := standardizedRandom(t, 1, rows, cols)

	res, err := PCA(m)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Eigenvalues) != cols {
		t.Fatalf("Got %d eigenvalues, want %d", len(res.Eigenvalues), cols)
	}

	total := 0.0
	for i, v := range res.Eigenvalues {
		if v < 0 {
			t.Fatalf("Eigenvalue %d is negative: %g", i, v)
		}

		if i > 0 && v > res.Eigenvalues[i-1] {
			t.Fatalf("Eigenvalues not descending at %d", i)
		}

		total += v
	}

	// For a standardized matrix, total variance equals the column count.
	if math.Abs(total-cols) > 1e-8 {
		t.Fatalf("Eigenvalues sum to %f, want %d", total, cols)
	}

	explained := 0.0
	for _, v := range res.ExplainedVar {
		explained += v
	}
	if math.Abs(explained-1) > 1e-10 {
		t.Fatalf("Explained variance sums to %f, want 1", explained)
	}
}

func TestPCAPerfectCorrelation(t *testing.T) {
	// Two perfectly correlated variables: one axis carries everything.
	const rows = 20

	raw := mat.NewDense(rows, 2, nil)
	for i := 0; i < rows; i++ {
		v := float64(i)
		raw.Set(i, 0, v)
		raw.Set(i, 1, 3*v+1)
	}

	m, err := Standardize(raw)
	if err != nil {
		t.Fatal(err)
	}

	res, err := PCA(m)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(res.Eigenvalues[0]-2) > 1e-8 {
		t.Fatalf("First eigenvalue = %f, want 2", res.Eigenvalues[0])
	}

	if res.Eigenvalues[1] > 1e-8 {
		t.Fatalf("Second eigenvalue = %g, want ~0", res.Eigenvalues[1])
	}

	if !res.Retained[0] || res.Retained[1] {
		t.Fatalf("Kaiser-Guttman retention = %v, want [true false]", res.Retained)
	}
}

func TestPCAScoresMatchEigenvalues(t *testing.T) {
	const rows, cols = 80, 3

	m := standardizedRandom(t, 2, rows, cols)

	res, err := PCA(m)
	if err != nil {
		t.Fatal(err)
	}

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, res.Scores)

		if v := stat.Variance(col, nil); math.Abs(v-res.Eigenvalues[j]) > 1e-8 {
			t.Fatalf("Score variance on axis %d = %f, eigenvalue = %f", j, v, res.Eigenvalues[j])
		}
	}
}

func TestPCATooFewSamples(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 10})

	if _, err := PCA(m); err == nil {
		t.Fatal("Expected an error when samples do not exceed variables")
	}
}
