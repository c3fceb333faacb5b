// Package metrics provides the Prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector provides application metrics collection. All methods are safe to call on a
// nil Collector.
type Collector struct {
	registry *prometheus.Registry

	// Chart loader metrics
	ChartLoadsTotal     *prometheus.CounterVec
	ChartFallbacksTotal prometheus.Counter
	FetchDuration       *prometheus.HistogramVec

	// Pipeline metrics
	PipelineRunsTotal  *prometheus.CounterVec
	CollectedRowsTotal prometheus.Counter
	AggregatedDays     prometheus.Gauge

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewCollector creates a new metrics collector registered on its own registry.
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		ChartLoadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chart_loads_total",
				Help:      "Total number of chart loads by terminal state",
			},
			[]string{"state"},
		),

		ChartFallbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chart_fallbacks_total",
				Help:      "Total number of chart loads that fell back to the dummy dataset",
			},
		),

		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "chart_fetch_duration_seconds",
				Help:      "Duration of data resource fetches in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"location"},
		),

		PipelineRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of collect and aggregate runs by step and result",
			},
			[]string{"step", "result"},
		),

		CollectedRowsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collected_rows_total",
				Help:      "Total number of hourly temperature rows collected",
			},
		),

		AggregatedDays: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "aggregated_days",
				Help:      "Number of days in the last aggregated dataset",
			},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// Handler exposes the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordChartLoad counts a chart load ending in state.
func (c *Collector) RecordChartLoad(state string) {
	if c == nil {
		return
	}
	c.ChartLoadsTotal.WithLabelValues(state).Inc()
}

// RecordFallback counts a fallback to the dummy dataset.
func (c *Collector) RecordFallback() {
	if c == nil {
		return
	}
	c.ChartFallbacksTotal.Inc()
}

// RecordFetch records the duration of a fetch of location.
func (c *Collector) RecordFetch(location string, d time.Duration) {
	if c == nil {
		return
	}
	c.FetchDuration.WithLabelValues(location).Observe(d.Seconds())
}

// RecordPipelineRun counts a pipeline step outcome.
func (c *Collector) RecordPipelineRun(step string, err error) {
	if c == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	c.PipelineRunsTotal.WithLabelValues(step, result).Inc()
}

// RecordCollected counts collected hourly rows.
func (c *Collector) RecordCollected(rows int) {
	if c == nil {
		return
	}
	c.CollectedRowsTotal.Add(float64(rows))
}

// RecordAggregated sets the number of aggregated days.
func (c *Collector) RecordAggregated(days int) {
	if c == nil {
		return
	}
	c.AggregatedDays.Set(float64(days))
}

// RecordRequest records a served HTTP request.
func (c *Collector) RecordRequest(route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.HTTPRequestDuration.WithLabelValues(route).Observe(d.Seconds())
}
