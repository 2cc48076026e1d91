package viz

import (
	"errors"
	"math"
	"sort"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odestep/internal/ode"
)

const (
	PlotWidth  = 80
	PlotHeight = 12
)

var ErrNothingToPlot = errors.New("viz: no finite samples to plot")

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Magenta,
	asciigraph.Red,
}

// Plot draws x against sample index with the given caption.
func Plot(x ode.Trajectory, caption string) (string, error) {
	data := finite(x)
	if len(data) == 0 {
		return "", ErrNothingToPlot
	}
	return asciigraph.Plot(data,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
	), nil
}

// PlotMany overlays several named trajectories. Series are drawn in name
// order so colors are stable across calls.
func PlotMany(series map[string]ode.Trajectory, caption string) (string, []string, error) {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	data := make([][]float64, 0, len(names))
	colors := make([]asciigraph.AnsiColor, 0, len(names))
	kept := make([]string, 0, len(names))
	for i, name := range names {
		d := finite(series[name])
		if len(d) == 0 {
			continue
		}
		data = append(data, d)
		colors = append(colors, seriesColors[i%len(seriesColors)])
		kept = append(kept, name)
	}
	if len(data) == 0 {
		return "", nil, ErrNothingToPlot
	}

	graph := asciigraph.PlotMany(data,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
	return graph, kept, nil
}

// finite returns the leading run of finite samples.
func finite(x ode.Trajectory) []float64 {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return x[:i]
		}
	}
	return x
}
