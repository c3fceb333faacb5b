// Package chartloader loads the daily temperature averages, falling back to the dummy
// dataset when the current one is missing, and hands them to a host for drawing.
package chartloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katiamach/temperature-chart/internal/chart"
	"github.com/katiamach/temperature-chart/internal/metrics"
	"github.com/katiamach/temperature-chart/internal/model"
	"github.com/katiamach/temperature-chart/internal/source"
)

//go:generate mockgen -source=loader.go -destination=mock/mock.go Fetcher Host

// Well-known resource locations and rendering target.
const (
	PrimaryLocation  = "/data/data.json"
	FallbackLocation = "/data/dummy.json"
	TargetID         = "tempChart"
)

// Loader errors.
var (
	ErrDataUnavailable = errors.New("temperature data unavailable")
	ErrDecode          = errors.New("failed to decode dataset")
	ErrTargetNotFound  = errors.New("rendering target not found")
)

// State is a step of a single load.
type State string

const (
	StateIdle             State = "idle"
	StateFetchingPrimary  State = "fetching_primary"
	StateFetchingFallback State = "fetching_fallback"
	StateRendered         State = "rendered"
	StateFailed           State = "failed"
)

// Fetcher opens a data resource. A resource answering with a failing status is reported
// as a *source.StatusError; any other error is a transport failure.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (io.ReadCloser, error)
}

// Host owns the rendering target and the user-facing alert.
type Host interface {
	// Render draws spec on the target with the given id, or returns ErrTargetNotFound.
	Render(ctx context.Context, target string, spec chart.Spec) error
	// Alert shows a blocking message to the user.
	Alert(message string)
}

// Loader fetches the dataset and delegates drawing to a Host. It keeps no state between
// loads and may be shared.
type Loader struct {
	fetcher  Fetcher
	logger   logrus.FieldLogger
	metrics  *metrics.Collector
	texts    chart.Texts
	primary  string
	fallback string
	target   string
}

// Option configures a Loader.
type Option func(*Loader)

// WithLocations overrides the primary and fallback resource locations.
func WithLocations(primary, fallback string) Option {
	return func(l *Loader) {
		l.primary = primary
		l.fallback = fallback
	}
}

// WithTarget overrides the rendering target id.
func WithTarget(target string) Option {
	return func(l *Loader) {
		l.target = target
	}
}

// WithTexts sets the chart and alert texts.
func WithTexts(texts chart.Texts) Option {
	return func(l *Loader) {
		l.texts = texts
	}
}

// WithMetrics records loads on the given collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// New creates a Loader reading resources through fetcher.
func New(fetcher Fetcher, logger logrus.FieldLogger, opts ...Option) *Loader {
	l := &Loader{
		fetcher:  fetcher,
		logger:   logger,
		texts:    chart.TextsFor("en"),
		primary:  PrimaryLocation,
		fallback: FallbackLocation,
		target:   TargetID,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadAndRender acquires the dataset and has host draw it as a bar chart. Any failure is
// logged and shown to the user as a single alert; it is also returned so the host can
// report it further.
func (l *Loader) LoadAndRender(ctx context.Context, host Host) error {
	err := l.loadAndRender(ctx, host)
	if err != nil {
		l.logger.WithError(err).WithField("state", StateFailed).Error("failed to load temperature chart")
		host.Alert(l.texts.Alert)
		l.metrics.RecordChartLoad(string(StateFailed))
		return err
	}

	l.logger.WithField("state", StateRendered).Debug("temperature chart rendered")
	l.metrics.RecordChartLoad(string(StateRendered))
	return nil
}

func (l *Loader) loadAndRender(ctx context.Context, host Host) error {
	ds, err := l.AcquireDataset(ctx)
	if err != nil {
		return err
	}

	spec := chart.NewBarSpec(model.Project(ds), l.texts)
	if err = host.Render(ctx, l.target, spec); err != nil {
		return fmt.Errorf("failed to render chart on %s: %w", l.target, err)
	}

	return nil
}

// AcquireDataset fetches and decodes the primary dataset, or the fallback dataset when
// the primary resource answers with a failing status. All failures match
// ErrDataUnavailable.
func (l *Loader) AcquireDataset(ctx context.Context) (model.Dataset, error) {
	l.logger.WithField("state", StateFetchingPrimary).Debug("fetching temperature data")
	body, err := l.fetch(ctx, l.primary)
	if source.IsStatusError(err) {
		l.logger.WithError(err).WithField("state", StateFetchingFallback).
			Warnf("%s not found, trying %s", l.primary, l.fallback)
		l.metrics.RecordFallback()

		body, err = l.fetch(ctx, l.fallback)
		if source.IsStatusError(err) {
			return nil, fmt.Errorf("%w: could not fetch %s or %s: %v", ErrDataUnavailable, l.primary, l.fallback, err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			l.logger.WithError(err).Error("failed to close data resource")
		}
	}()

	ds, err := decodeDataset(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrDataUnavailable, ErrDecode, err)
	}

	return ds, nil
}

// decodeDataset decodes the whole body as one JSON array. Trailing data and null are
// rejected.
func decodeDataset(r io.Reader) (model.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, errors.New("body is not an array")
	}

	return ds, nil
}

func (l *Loader) fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	start := time.Now()
	defer func() { l.metrics.RecordFetch(location, time.Since(start)) }()

	return l.fetcher.Fetch(ctx, location)
}
