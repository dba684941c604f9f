package gate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msevi/FC-ordination/fctable"
)

// Polygon is a closed region in a two-channel plane, given as an ordered
// vertex list. The closing edge from the last vertex back to the first is
// implicit.
type Polygon struct {
	X []float64
	Y []float64
}

// ParsePolygon reads a vertex list in the form "x1,y1;x2,y2;...". At least
// three vertices are required.
func ParsePolygon(s string) (Polygon, error) {
	var p Polygon

	for _, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return Polygon{}, fmt.Errorf("Polygon vertex %q is not an x,y pair", pair)
		}

		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return Polygon{}, fmt.Errorf("Polygon vertex %q: %v", pair, err)
		}

		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return Polygon{}, fmt.Errorf("Polygon vertex %q: %v", pair, err)
		}

		p.X = append(p.X, x)
		p.Y = append(p.Y, y)
	}

	if len(p.X) < 3 {
		return Polygon{}, fmt.Errorf("Polygon needs at least 3 vertices, got %d", len(p.X))
	}

	return p, nil
}

// Contains reports whether the point lies within the polygon. Points exactly
// on an edge or vertex count as inside; the boundary policy is inclusive and
// must stay that way so that reruns of the same gate reproduce the same mask.
func (p Polygon) Contains(x, y float64) bool {
	n := len(p.X)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if onSegment(p.X[i], p.Y[i], p.X[j], p.Y[j], x, y) {
			return true
		}
	}

	// Standard even-odd ray cast toward +x.
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if (p.Y[i] > y) != (p.Y[j] > y) {
			xCross := p.X[i] + (y-p.Y[i])*(p.X[j]-p.X[i])/(p.Y[j]-p.Y[i])
			if x < xCross {
				inside = !inside
			}
		}
	}

	return inside
}

func onSegment(x1, y1, x2, y2, px, py float64) bool {
	cross := (x2-x1)*(py-y1) - (y2-y1)*(px-x1)
	if cross != 0 {
		return false
	}

	dot := (px-x1)*(x2-x1) + (py-y1)*(y2-y1)
	if dot < 0 {
		return false
	}

	lenSq := (x2-x1)*(x2-x1) + (y2-y1)*(y2-y1)

	return dot <= lenSq
}

// Apply keeps only the events inside the polygon, tested in the chanX/chanY
// plane, and returns the derived table together with the per-event mask.
func (p Polygon) Apply(t *fctable.EventTable, chanX, chanY string) (*fctable.EventTable, []bool, error) {
	cx, err := t.ChannelIndex(chanX)
	if err != nil {
		return nil, nil, err
	}

	cy, err := t.ChannelIndex(chanY)
	if err != nil {
		return nil, nil, err
	}

	out := &fctable.EventTable{
		Key:      t.Key,
		Channels: append([]string{}, t.Channels...),
	}

	mask := make([]bool, len(t.Values))
	for i, row := range t.Values {
		if p.Contains(row[cx], row[cy]) {
			mask[i] = true
			out.Values = append(out.Values, append([]float64{}, row...))
		}
	}

	if len(out.Values) == 0 {
		return nil, nil, fmt.Errorf("Sample %s: no events inside the gate", t.Key)
	}

	return out, mask, nil
}
