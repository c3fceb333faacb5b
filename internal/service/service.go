// Package service implements the temperature pipeline: collecting forecasts, aggregating
// daily averages and serving them.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/katiamach/temperature-chart/internal/metrics"
	"github.com/katiamach/temperature-chart/internal/model"
	"github.com/katiamach/temperature-chart/internal/repository"
)

//go:generate mockgen -source=service.go -destination=mock/mock.go Repository,ForecastClient

var (
	ErrNoAverages   = errors.New("unfortunately, there are no daily averages available for this location")
	ErrNoHourlyData = errors.New("no hourly temperature rows found")
)

// Pipeline steps.
const (
	StepCollect   = "collect"
	StepAggregate = "aggregate"
)

// Repository provides necessary repo methods.
type Repository interface {
	UpsertDailyAverages(ctx context.Context, location string, ds model.Dataset) error
	GetDailyAverages(ctx context.Context, location string, days int) (model.Dataset, error)
	CheckIfAveragesExist(ctx context.Context, location string) (bool, error)
}

// ForecastClient provides hourly forecast temperatures.
type ForecastClient interface {
	HourlyTemperatures(ctx context.Context, loc model.Location) ([]model.HourlyTemperature, error)
}

// Paths are the files the pipeline reads and writes.
type Paths struct {
	Hourly string
	Dummy  string
	Output string
}

// TemperatureService provides temperature pipeline functionality.
type TemperatureService struct {
	forecast ForecastClient
	location model.Location
	paths    Paths
	logger   logrus.FieldLogger

	repo    Repository
	latin9  bool
	metrics *metrics.Collector

	// guards the files written by the pipeline
	mu sync.Mutex
}

// Option configures a TemperatureService.
type Option func(*TemperatureService)

// WithRepository stores aggregated averages in repo and serves them from there.
func WithRepository(repo Repository) Option {
	return func(s *TemperatureService) {
		s.repo = repo
	}
}

// WithLatin9 decodes the hourly CSV files as ISO-8859-15.
func WithLatin9() Option {
	return func(s *TemperatureService) {
		s.latin9 = true
	}
}

// WithMetrics records pipeline runs in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *TemperatureService) {
		s.metrics = m
	}
}

// New creates new TemperatureService.
func New(forecast ForecastClient, location model.Location, paths Paths, logger logrus.FieldLogger, opts ...Option) *TemperatureService {
	s := &TemperatureService{
		forecast: forecast,
		location: location,
		paths:    paths,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Refresh collects a new forecast and aggregates it into daily averages.
func (s *TemperatureService) Refresh(ctx context.Context) (model.Dataset, error) {
	if _, err := s.Collect(ctx); err != nil {
		return nil, err
	}

	return s.Aggregate(ctx)
}

// GetDailyAverages implements retrieving the last req.Days daily averages.
func (s *TemperatureService) GetDailyAverages(ctx context.Context, req *model.AveragesRequest) (model.Dataset, error) {
	if s.repo == nil {
		ds, err := s.readOutput()
		if err != nil {
			return nil, err
		}
		return ds.Last(req.Days), nil
	}

	exists, err := s.repo.CheckIfAveragesExist(ctx, s.location.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check if averages exist: %w", err)
	}

	if !exists {
		if _, err := s.Aggregate(ctx); err != nil {
			return nil, err
		}
	}

	ds, err := s.repo.GetDailyAverages(ctx, s.location.Name, req.Days)
	if errors.Is(err, repository.ErrNoAveragesForLocation) {
		return nil, ErrNoAverages
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get daily averages: %w", err)
	}

	return ds, nil
}

// ReadOutput reads the aggregated JSON file.
func (s *TemperatureService) readOutput() (model.Dataset, error) {
	data, err := os.ReadFile(s.paths.Output)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoAverages
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.paths.Output, err)
	}

	var ds model.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.paths.Output, err)
	}
	if len(ds) == 0 {
		return nil, ErrNoAverages
	}

	return ds, nil
}
