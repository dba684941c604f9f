package gate

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"github.com/msevi/FC-ordination/fctable"
)

// Rescale divides every channel by the maximum observed value of the
// reference channel, so that all of a sample's intensities land on a shared
// [0, 1]-anchored scale before density estimation.
func Rescale(t *fctable.EventTable, refChannel string) (*fctable.EventTable, error) {
	ref, err := t.Column(refChannel)
	if err != nil {
		return nil, err
	}

	max, err := stats.Max(ref)
	if err != nil {
		return nil, fmt.Errorf("Sample %s: %v", t.Key, err)
	}

	if max <= 0 {
		return nil, fmt.Errorf("Sample %s: reference channel %s max is %f, cannot rescale", t.Key, refChannel, max)
	}

	out := t.Clone()
	for _, row := range out.Values {
		for i := range row {
			row[i] /= max
		}
	}

	return out, nil
}
