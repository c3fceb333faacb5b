// Package views renders the temperature chart page. A Page is the rendering host of one
// chart load: it owns the canvas the chart is drawn on and collects the alert shown when
// loading fails.
package views

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/katiamach/temperature-chart/internal/chart"
	"github.com/katiamach/temperature-chart/internal/chartloader"
)

// DefaultChartJSURL is the Chart.js build the page loads.
const DefaultChartJSURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.6/dist/chart.umd.min.js"

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(loadTemplates(templatesFS, "templates"))

func loadTemplates(fsys fs.FS, dir string) (*template.Template, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, err
	}
	return template.ParseFS(sub, "*.html")
}

// Page is the view model of the chart page.
type Page struct {
	Lang       string
	Title      string
	ChartJSURL string
	Target     string

	Spec         *chart.Spec
	AlertMessage string
	alerts       int
}

// NewPage creates a page with a single drawing surface identified by target.
func NewPage(lang, title, target string) *Page {
	return &Page{
		Lang:       lang,
		Title:      title,
		ChartJSURL: DefaultChartJSURL,
		Target:     target,
	}
}

// Render attaches spec to the page's drawing surface. A later call replaces the chart.
func (p *Page) Render(_ context.Context, target string, spec chart.Spec) error {
	if target != p.Target {
		return fmt.Errorf("%w: %s", chartloader.ErrTargetNotFound, target)
	}
	p.Spec = &spec
	return nil
}

// Alert records the message shown to the user when the page loads.
func (p *Page) Alert(message string) {
	p.AlertMessage = message
	p.alerts++
}

// Alerts returns how many alerts were raised on the page.
func (p *Page) Alerts() int {
	return p.alerts
}

// RenderPage writes the page as HTML to w.
func RenderPage(w io.Writer, p *Page) error {
	if p == nil {
		return errors.New("no page to render")
	}
	return pageTmpl.ExecuteTemplate(w, "page.html", p)
}
