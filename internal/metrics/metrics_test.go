package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/tj/assert"
)

func TestCollector(t *testing.T) {
	c := NewCollector("tempchart")

	c.RecordChartLoad("rendered")
	c.RecordChartLoad("rendered")
	c.RecordChartLoad("failed")
	c.RecordFallback()
	c.RecordFetch("/data/data.json", 5*time.Millisecond)
	c.RecordPipelineRun("collect", nil)
	c.RecordPipelineRun("collect", errors.New("boom"))
	c.RecordCollected(216)
	c.RecordAggregated(9)
	c.RecordRequest("/", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.ChartLoadsTotal.WithLabelValues("rendered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChartLoadsTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ChartFallbacksTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PipelineRunsTotal.WithLabelValues("collect", "error")))
	assert.Equal(t, 216.0, testutil.ToFloat64(c.CollectedRowsTotal))
	assert.Equal(t, 9.0, testutil.ToFloat64(c.AggregatedDays))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequestsTotal.WithLabelValues("/", "200")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("tempchart")
	c.RecordFallback()

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(w.Result().Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "tempchart_chart_fallbacks_total 1")
}

func TestNilCollector(t *testing.T) {
	var c *Collector

	c.RecordChartLoad("rendered")
	c.RecordFallback()
	c.RecordFetch("/data/data.json", time.Second)
	c.RecordPipelineRun("aggregate", nil)
	c.RecordCollected(1)
	c.RecordAggregated(1)
	c.RecordRequest("/", http.StatusOK, time.Second)
}
