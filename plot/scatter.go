// Package plot renders ordination scatterplots to PNG.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
)

// Point is one sample positioned on two ordination axes. Points sharing a
// Group render as one colored series.
type Point struct {
	ID    string
	Group string
	X     float64
	Y     float64
}

// Scatter draws the points grouped by their Group label, with a legend, and
// writes the PNG to w. Axis labels should carry the explained-variance
// percentages, e.g. "PCoA 1 (41.2%)".
func Scatter(title, xLabel, yLabel string, points []Point, w io.Writer) error {
	if len(points) == 0 {
		return fmt.Errorf("Nothing to plot")
	}

	byGroup := make(map[string][]Point)
	for _, p := range points {
		byGroup[p.Group] = append(byGroup[p.Group], p)
	}

	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	series := make([]chart.Series, 0, len(groups))
	for i, g := range groups {
		pts := byGroup[g]

		xs := make([]float64, len(pts))
		ys := make([]float64, len(pts))
		for k, p := range pts {
			xs[k] = p.X
			ys[k] = p.Y
		}

		series = append(series, chart.ContinuousSeries{
			Name: g,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    chart.GetDefaultColor(i),
			},
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1024,
		Height: 768,
		XAxis: chart.XAxis{
			Name: xLabel,
		},
		YAxis: chart.YAxis{
			Name: yLabel,
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	// Render to a byte buffer
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	_, err := buffer.WriteTo(w)

	return err
}

// ScatterFile is Scatter straight to a file path.
func ScatterFile(title, xLabel, yLabel string, points []Point, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return Scatter(title, xLabel, yLabel, points, f)
}
