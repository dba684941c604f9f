package fingerprint

import (
	"fmt"
	"math"
)

// NormalizeFunc rescales a fingerprint before downstream use. Identity leaves
// density units alone; Relative converts to relative abundances summing to 1.
type NormalizeFunc func([]float64) []float64

// Identity returns the fingerprint unchanged.
func Identity(v []float64) []float64 {
	return v
}

// Relative divides each cell by the vector total. A zero vector comes back
// unchanged.
func Relative(v []float64) []float64 {
	total := 0.0
	for _, x := range v {
		total += x
	}

	if total == 0 {
		return v
	}

	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / total
	}

	return out
}

// Diversity holds the Hill numbers of order 0, 1, and 2 for one fingerprint.
// D0 counts occupied cells, D1 is the exponential of Shannon entropy, and D2
// is the inverse Simpson index. D0 >= D1 >= D2 always.
type Diversity struct {
	D0 float64
	D1 float64
	D2 float64
}

// HillNumbers computes alpha diversity from a fingerprint. The vector is
// converted to relative abundances internally, so callers may pass raw
// density values.
func HillNumbers(v []float64) (Diversity, error) {
	total := 0.0
	for i, x := range v {
		if x < 0 {
			return Diversity{}, fmt.Errorf("Negative fingerprint value %f at cell %d", x, i)
		}
		total += x
	}

	if total == 0 {
		return Diversity{}, fmt.Errorf("Cannot compute diversity of an all-zero fingerprint")
	}

	var d Diversity
	shannon := 0.0
	simpson := 0.0

	for _, x := range v {
		if x == 0 {
			continue
		}

		p := x / total
		d.D0++
		shannon -= p * math.Log(p)
		simpson += p * p
	}

	d.D1 = math.Exp(shannon)
	d.D2 = 1 / simpson

	return d, nil
}
