package views

import (
	"bytes"
	"context"
	"fmt"

	"github.com/katiamach/temperature-chart/internal/chart"
	"github.com/katiamach/temperature-chart/internal/chartloader"
)

// Image is a rendering host that draws the chart as a PNG image.
type Image struct {
	Target string
	Buffer bytes.Buffer

	renderer     *chart.PNGRenderer
	AlertMessage string
}

// NewImage creates an image host for target drawing with renderer.
func NewImage(target string, renderer *chart.PNGRenderer) *Image {
	return &Image{Target: target, renderer: renderer}
}

// Render draws spec into the image buffer, replacing any earlier drawing.
func (i *Image) Render(_ context.Context, target string, spec chart.Spec) error {
	if target != i.Target {
		return fmt.Errorf("%w: %s", chartloader.ErrTargetNotFound, target)
	}

	i.Buffer.Reset()
	return i.renderer.Draw(&i.Buffer, spec)
}

// Alert records the failure message of the load.
func (i *Image) Alert(message string) {
	i.AlertMessage = message
}
