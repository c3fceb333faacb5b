package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// ErrNoBars is returned when a chart without any values is drawn.
var ErrNoBars = errors.New("chart has no values to draw")

// PNGRenderer draws bar chart specs as PNG images.
type PNGRenderer struct {
	Width  int
	Height int
}

// NewPNGRenderer creates a PNGRenderer producing images of the given size.
func NewPNGRenderer(width, height int) *PNGRenderer {
	return &PNGRenderer{Width: width, Height: height}
}

// Draw writes the first series of spec as a PNG bar chart to w.
func (r *PNGRenderer) Draw(w io.Writer, spec Spec) error {
	if len(spec.Data.Datasets) == 0 || len(spec.Data.Datasets[0].Data) == 0 {
		return ErrNoBars
	}
	series := spec.Data.Datasets[0]

	bars := make([]gochart.Value, 0, len(series.Data))
	for i, v := range series.Data {
		label := ""
		if i < len(spec.Data.Labels) {
			label = spec.Data.Labels[i]
		}
		bars = append(bars, gochart.Value{Label: label, Value: v})
	}

	// go-chart has no x-axis name on bar charts, so the x title goes into the chart title.
	title := series.Label
	if xTitle := spec.Options.Scales.X.Title; xTitle.Display && xTitle.Text != "" {
		title = fmt.Sprintf("%s / %s", series.Label, xTitle.Text)
	}

	bw := barWidth(r.Width, len(bars))
	graph := gochart.BarChart{
		Title:      title,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   bw,
		BarSpacing: bw,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Name:  spec.Options.Scales.Y.Title.Text,
			Range: valueRange(series.Data, spec.Options.Scales.Y.BeginAtZero),
		},
		Bars: bars,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render bar chart: %w", err)
	}

	return nil
}

// valueRange spans all values with some headroom. Zero is only included when the axis
// is asked to begin at zero.
func valueRange(values []float64, beginAtZero *bool) *gochart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if beginAtZero != nil && *beginAtZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}

	return &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

func barWidth(width, bars int) int {
	w := width / (bars * 2)
	switch {
	case w < 4:
		return 4
	case w > 60:
		return 60
	}
	return w
}
