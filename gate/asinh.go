// Package gate implements the cytometry preprocessing steps that run between
// ingestion and fingerprinting: the arcsinh intensity transform, polygon
// gating in a two-channel plane, and per-sample rescaling.
package gate

import (
	"fmt"
	"math"

	"github.com/msevi/FC-ordination/fctable"
)

// Asinh returns a derived table with every channel transformed by
// x -> asinh(x/cofactor). The transform is near-linear around zero and
// logarithmic for large intensities, which keeps dim and negative-baseline
// events usable.
func Asinh(t *fctable.EventTable, cofactor float64) (*fctable.EventTable, error) {
	if cofactor <= 0 {
		return nil, fmt.Errorf("Asinh cofactor must be positive, got %f", cofactor)
	}

	out := t.Clone()
	for _, row := range out.Values {
		for i := range row {
			row[i] = math.Asinh(row[i] / cofactor)
		}
	}

	return out, nil
}
