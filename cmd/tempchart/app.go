package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/katiamach/temperature-chart/internal/chart"
	"github.com/katiamach/temperature-chart/internal/chartloader"
	"github.com/katiamach/temperature-chart/internal/config"
	"github.com/katiamach/temperature-chart/internal/httpclient"
	"github.com/katiamach/temperature-chart/internal/logger"
	"github.com/katiamach/temperature-chart/internal/metno"
	"github.com/katiamach/temperature-chart/internal/metrics"
	"github.com/katiamach/temperature-chart/internal/model"
	"github.com/katiamach/temperature-chart/internal/repository"
	"github.com/katiamach/temperature-chart/internal/service"
	"github.com/katiamach/temperature-chart/internal/source"
)

const metricsNamespace = "tempchart"

// app holds the components the commands are built from.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	metrics *metrics.Collector
	texts   chart.Texts

	repo    *repository.Repository
	service *service.TemperatureService
}

func newApp(ctx context.Context, confPath string) (*app, error) {
	cfg, err := config.Load(confPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.Configure(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector(metricsNamespace),
		texts:   chart.TextsFor(cfg.Locale),
	}

	client := httpclient.New(log, cfg.Loader.Timeout).WithUserAgent(cfg.Forecast.UserAgent)
	forecast := metno.New(client, cfg.Forecast.URL, cfg.Location.MaxGridDistanceKm, log)

	opts := []service.Option{service.WithMetrics(a.metrics)}
	if cfg.Data.Encoding == config.EncodingLatin9 {
		opts = append(opts, service.WithLatin9())
	}
	if cfg.Mongo.URI != "" {
		a.repo, err = repository.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithRepository(a.repo))
	}

	a.service = service.New(forecast, a.location(), service.Paths{
		Hourly: cfg.HourlyPath(),
		Dummy:  cfg.DummyPath(),
		Output: cfg.OutputPath(),
	}, log, opts...)

	return a, nil
}

func (a *app) location() model.Location {
	return model.Location{
		Name:      a.cfg.Location.Name,
		Latitude:  a.cfg.Location.Latitude,
		Longitude: a.cfg.Location.Longitude,
	}
}

// newLoader creates the chart loader reading from the configured source.
func (a *app) newLoader() (*chartloader.Loader, error) {
	var fetcher chartloader.Fetcher
	switch a.cfg.Loader.Source {
	case config.SourceHTTP:
		client := httpclient.New(a.log, a.cfg.Loader.Timeout)
		f, err := source.NewHTTPFetcher(client, a.cfg.Loader.BaseURL)
		if err != nil {
			return nil, err
		}
		fetcher = f
	default:
		fetcher = source.NewDirFetcher(os.DirFS(a.cfg.Data.Dir), config.DataPrefix)
	}

	return chartloader.New(fetcher, a.log,
		chartloader.WithLocations(a.cfg.Loader.Primary, a.cfg.Loader.Fallback),
		chartloader.WithTarget(a.cfg.Loader.Target),
		chartloader.WithTexts(a.texts),
		chartloader.WithMetrics(a.metrics),
	), nil
}

func (a *app) renderer() *chart.PNGRenderer {
	return chart.NewPNGRenderer(a.cfg.Chart.Width, a.cfg.Chart.Height)
}

func (a *app) pageTitle() string {
	return fmt.Sprintf("%s: %s", a.cfg.Location.Name, a.texts.SeriesLabel)
}

func (a *app) close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		a.log.WithError(err).Error("failed to close repository")
	}
}
