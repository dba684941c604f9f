package gate

import (
	"fmt"

	"github.com/grd/histogram"
	"github.com/montanaflynn/stats"
	"github.com/msevi/FC-ordination/fctable"
)

// ChannelCounts bins one channel's values into nBins equal-width bins
// spanning the observed range, for quick distribution checks after gating.
// Returns the per-bin counts and the low edge plus width of the binning.
func ChannelCounts(t *fctable.EventTable, channel string, nBins int) (counts []int, low, width float64, err error) {
	if nBins < 1 {
		return nil, 0, 0, fmt.Errorf("Need at least 1 bin, got %d", nBins)
	}

	vals, err := t.Column(channel)
	if err != nil {
		return nil, 0, 0, err
	}

	min, err := stats.Min(vals)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("Sample %s: %v", t.Key, err)
	}

	max, err := stats.Max(vals)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("Sample %s: %v", t.Key, err)
	}

	if max == min {
		// Degenerate but legal: everything lands in bin 0.
		max = min + 1
	}

	width = (max - min) / float64(nBins)

	hg, err := histogram.NewHistogram(histogram.Range(min, uint(nBins), width))
	if err != nil {
		return nil, 0, 0, err
	}

	for _, v := range vals {
		// The top edge is exclusive in the underlying histogram; fold the
		// single max value into the last bin.
		if v == max {
			v = max - width/2
		}
		hg.Add(v)
	}

	counts = make([]int, nBins)
	for i := 0; i < nBins; i++ {
		counts[i] = hg.Get(i)
	}

	return counts, min, width, nil
}

// RetainedFraction is the share of a sample's events that survived gating.
func RetainedFraction(raw, gated *fctable.EventTable) float64 {
	if raw.NumEvents() == 0 {
		return 0
	}

	return float64(gated.NumEvents()) / float64(raw.NumEvents())
}
