// Package chart describes bar charts in the shape the Chart.js library consumes and draws
// them as PNG images.
package chart

import "github.com/katiamach/temperature-chart/internal/model"

// KindBar is the bar chart kind.
const KindBar = "bar"

// Spec is a complete chart description: kind, data and display options.
type Spec struct {
	Type    string  `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

// Data holds the x-axis labels and the data series.
type Data struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Series is one named sequence of values.
type Series struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type Options struct {
	Responsive bool   `json:"responsive"`
	Scales     Scales `json:"scales"`
}

type Scales struct {
	Y Axis `json:"y"`
	X Axis `json:"x"`
}

type Axis struct {
	BeginAtZero *bool     `json:"beginAtZero,omitempty"`
	Title       AxisTitle `json:"title"`
}

type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// NewBarSpec builds the temperature bar chart for input, labelled with texts.
func NewBarSpec(input model.ChartInput, texts Texts) Spec {
	beginAtZero := false

	return Spec{
		Type: KindBar,
		Data: Data{
			Labels: input.Labels,
			Datasets: []Series{
				{Label: texts.SeriesLabel, Data: input.Values},
			},
		},
		Options: Options{
			Responsive: true,
			Scales: Scales{
				Y: Axis{
					BeginAtZero: &beginAtZero,
					Title:       AxisTitle{Display: true, Text: texts.YAxisTitle},
				},
				X: Axis{
					Title: AxisTitle{Display: true, Text: texts.XAxisTitle},
				},
			},
		},
	}
}
