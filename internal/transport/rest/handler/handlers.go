package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/katiamach/temperature-chart/internal/chart"
	"github.com/katiamach/temperature-chart/internal/chartloader"
	"github.com/katiamach/temperature-chart/internal/logger"
	"github.com/katiamach/temperature-chart/internal/model"
	"github.com/katiamach/temperature-chart/internal/service"
	"github.com/katiamach/temperature-chart/internal/views"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go TemperatureService,ChartLoader

// TemperatureService provides temperature service methods.
type TemperatureService interface {
	GetDailyAverages(ctx context.Context, req *model.AveragesRequest) (model.Dataset, error)
}

// ChartLoader loads the temperature chart onto a rendering host.
type ChartLoader interface {
	LoadAndRender(ctx context.Context, host chartloader.Host) error
}

// PageSettings describe the chart page every request renders.
type PageSettings struct {
	Lang   string
	Title  string
	Target string
}

// TemperatureServer is a server for temperature chart requests.
type TemperatureServer struct {
	service  TemperatureService
	loader   ChartLoader
	renderer *chart.PNGRenderer
	page     PageSettings
}

// NewTemperatureServer creates new TemperatureServer.
func NewTemperatureServer(service TemperatureService, loader ChartLoader, renderer *chart.PNGRenderer, page PageSettings) *TemperatureServer {
	return &TemperatureServer{
		service:  service,
		loader:   loader,
		renderer: renderer,
		page:     page,
	}
}

// ChartPageHandler renders the chart page. A failed load still serves the page, with the
// alert in place of the chart.
func (s *TemperatureServer) ChartPageHandler(w http.ResponseWriter, r *http.Request) {
	page := views.NewPage(s.page.Lang, s.page.Title, s.page.Target)

	// the loader already logged and alerted
	_ = s.loader.LoadAndRender(r.Context(), page)

	var buf bytes.Buffer
	if err := views.RenderPage(&buf, page); err != nil {
		logger.Error(fmt.Errorf("failed to render page: %w", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("failed to write page: %w", err))
	}
}

// ChartImageHandler renders the chart as a PNG image.
func (s *TemperatureServer) ChartImageHandler(w http.ResponseWriter, r *http.Request) {
	img := views.NewImage(s.page.Target, s.renderer)

	if err := s.loader.LoadAndRender(r.Context(), img); err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(img.AlertMessage)); err != nil {
			logger.Error(fmt.Errorf("failed to write alert: %w", err))
		}
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(img.Buffer.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := img.Buffer.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("failed to write image: %w", err))
	}
}

// GetDailyAveragesHandler handles GetDailyAverages request.
func (s *TemperatureServer) GetDailyAveragesHandler(w http.ResponseWriter, r *http.Request) {
	req, err := validateQueryParams(r.URL.Query())
	if err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	averages, err := s.service.GetDailyAverages(r.Context(), req)
	if errors.Is(err, service.ErrNoAverages) {
		respondErr(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to get daily averages: %w", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	respond(w, http.StatusOK, averages)
}

// HealthHandler reports that the server is up.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validateQueryParams(params url.Values) (*model.AveragesRequest, error) {
	daysStr := params.Get("days")
	if daysStr == "" {
		return &model.AveragesRequest{}, nil
	}

	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return nil, fmt.Errorf("days parameter is not a number: %w", err)
	}
	if days < 1 {
		return nil, errors.New("days parameter must be positive")
	}

	return &model.AveragesRequest{Days: days}, nil
}
