// Package fingerprint turns a gated, rescaled event table into a fixed-length
// phenotypic fingerprint: a concatenation of binned two-dimensional Gaussian
// kernel density estimates, one grid per channel pair. Because every sample is
// evaluated on the same grid with the same bandwidth, fingerprints are
// directly comparable across samples.
package fingerprint

import (
	"fmt"
	"math"

	"github.com/msevi/FC-ordination/fctable"
)

// Basis fixes everything that must be shared across samples: the channel
// subset, the grid, and the kernel bandwidth.
type Basis struct {
	// Channels is the ordered channel subset; densities are estimated for
	// every unordered pair, in lexical order of (i, j) indices.
	Channels []string

	// Bins is the number of grid cells per axis.
	Bins int

	// Bandwidth is the Gaussian kernel sigma, in the same units as the
	// rescaled intensities.
	Bandwidth float64

	// Min and Max bound the grid on every axis. After rescaling, events live
	// in roughly [0, 1], so the defaults cover that.
	Min, Max float64
}

// DefaultBasis mirrors the standard fingerprinting setup: all pairwise
// combinations of the given channels on a 128x128 grid over [0, 1] with a
// bandwidth of 0.01.
func DefaultBasis(channels []string) Basis {
	return Basis{
		Channels:  channels,
		Bins:      128,
		Bandwidth: 0.01,
		Min:       0,
		Max:       1,
	}
}

// Pairs lists the channel pairs, each of which contributes one grid to the
// fingerprint.
func (b Basis) Pairs() [][2]string {
	var out [][2]string

	for i := 0; i < len(b.Channels); i++ {
		for j := i + 1; j < len(b.Channels); j++ {
			out = append(out, [2]string{b.Channels[i], b.Channels[j]})
		}
	}

	return out
}

// Len is the fingerprint vector length this basis produces.
func (b Basis) Len() int {
	return len(b.Pairs()) * b.Bins * b.Bins
}

func (b Basis) validate() error {
	if len(b.Channels) < 2 {
		return fmt.Errorf("Basis needs at least 2 channels, got %d", len(b.Channels))
	}

	if b.Bins < 2 {
		return fmt.Errorf("Basis needs at least 2 bins per axis, got %d", b.Bins)
	}

	if b.Bandwidth <= 0 {
		return fmt.Errorf("Basis bandwidth must be positive, got %f", b.Bandwidth)
	}

	if b.Max <= b.Min {
		return fmt.Errorf("Basis grid range [%f, %f] is empty", b.Min, b.Max)
	}

	return nil
}

// Fingerprint estimates the density of t's events at every grid cell of every
// channel pair and returns the concatenated, row-major vector. Grid cells are
// evaluated at their centers.
func (b Basis) Fingerprint(t *fctable.EventTable) ([]float64, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	out := make([]float64, 0, b.Len())

	for _, pair := range b.Pairs() {
		xs, err := t.Column(pair[0])
		if err != nil {
			return nil, err
		}

		ys, err := t.Column(pair[1])
		if err != nil {
			return nil, err
		}

		out = append(out, b.kde2d(xs, ys)...)
	}

	return out, nil
}

// kde2d evaluates a product-Gaussian kernel density estimate on the basis
// grid. Density units are probability per unit area, so summing the grid
// times the cell area approximates 1 when the data sit well inside the grid.
func (b Basis) kde2d(xs, ys []float64) []float64 {
	n := len(xs)
	width := (b.Max - b.Min) / float64(b.Bins)

	centers := make([]float64, b.Bins)
	for i := range centers {
		centers[i] = b.Min + (float64(i)+0.5)*width
	}

	// Precompute per-event kernel columns along each axis; the product
	// structure of the Gaussian means the full grid is an outer product sum.
	kx := kernelWeights(xs, centers, b.Bandwidth)
	ky := kernelWeights(ys, centers, b.Bandwidth)

	norm := 1.0 / (float64(n) * 2 * math.Pi * b.Bandwidth * b.Bandwidth)

	grid := make([]float64, b.Bins*b.Bins)
	for e := 0; e < n; e++ {
		kxe := kx[e]
		kye := ky[e]
		for i := 0; i < b.Bins; i++ {
			if kxe[i] == 0 {
				continue
			}
			row := grid[i*b.Bins : (i+1)*b.Bins]
			for j := 0; j < b.Bins; j++ {
				row[j] += kxe[i] * kye[j]
			}
		}
	}

	for i := range grid {
		grid[i] *= norm
	}

	return grid
}

// kernelWeights returns, for each event, the unnormalized Gaussian weight at
// each grid center along one axis. Contributions beyond 6 sigma are clipped
// to zero; they are below 1e-8 relative weight.
func kernelWeights(vals, centers []float64, bandwidth float64) [][]float64 {
	out := make([][]float64, len(vals))
	inv2h2 := 1.0 / (2 * bandwidth * bandwidth)
	cutoff := 6 * bandwidth

	for e, v := range vals {
		w := make([]float64, len(centers))
		for i, c := range centers {
			d := c - v
			if d > cutoff || d < -cutoff {
				continue
			}
			w[i] = math.Exp(-d * d * inv2h2)
		}
		out[e] = w
	}

	return out
}
