package handler

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/golang/mock/gomock"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/tj/assert"
	"golang.org/x/net/html"

	"github.com/katiamach/temperature-chart/internal/chart"
	"github.com/katiamach/temperature-chart/internal/chartloader"
	"github.com/katiamach/temperature-chart/internal/model"
	"github.com/katiamach/temperature-chart/internal/service"
	"github.com/katiamach/temperature-chart/internal/source"
	mock "github.com/katiamach/temperature-chart/internal/transport/rest/handler/mock"
)

var errTest = errors.New("test error")

const englishAlert = "Could not load temperature data. Check that the data file exists."

var testPage = PageSettings{Lang: "en", Title: "Daily temperature", Target: chartloader.TargetID}

// pageScripts returns the canvas ids and inline script bodies of the page.
func pageScripts(t *testing.T, body string) ([]string, []string) {
	t.Helper()

	root, err := html.Parse(strings.NewReader(body))
	assert.NoError(t, err)

	var canvases, scripts []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "canvas" {
			for _, a := range n.Attr {
				if a.Key == "id" {
					canvases = append(canvases, a.Val)
				}
			}
		}
		if n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil {
			scripts = append(scripts, n.FirstChild.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return canvases, scripts
}

func countContaining(items []string, sub string) int {
	n := 0
	for _, s := range items {
		if strings.Contains(s, sub) {
			n++
		}
	}
	return n
}

// newRealServer wires the page handler to a loader reading files.
func newRealServer(files fstest.MapFS) *TemperatureServer {
	log, _ := test.NewNullLogger()
	loader := chartloader.New(source.NewDirFetcher(files, "/data/"), log)

	return NewTemperatureServer(nil, loader, chart.NewPNGRenderer(640, 320), testPage)
}

func TestChartPageHandler(t *testing.T) {
	t.Run("primary data is charted", func(t *testing.T) {
		s := newRealServer(fstest.MapFS{
			"data.json": {Data: []byte(`[{"dato":"2025-11-01","gjennomsnitt":3.4},{"dato":"2025-11-02","gjennomsnitt":1.1}]`)},
		})

		w := httptest.NewRecorder()
		s.ChartPageHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

		canvases, scripts := pageScripts(t, w.Body.String())
		assert.Equal(t, []string{"tempChart"}, canvases)
		assert.Equal(t, 1, countContaining(scripts, "new Chart("))
		assert.Equal(t, 0, countContaining(scripts, "alert("))
		assert.Equal(t, 1, countContaining(scripts, `"labels":["2025-11-01","2025-11-02"]`))
		assert.Equal(t, 1, countContaining(scripts, `"data":[3.4,1.1]`))
	})

	t.Run("dummy data when primary is missing", func(t *testing.T) {
		s := newRealServer(fstest.MapFS{
			"dummy.json": {Data: []byte(`[{"dato":"2024-01-01","gjennomsnitt":-5}]`)},
		})

		w := httptest.NewRecorder()
		s.ChartPageHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		_, scripts := pageScripts(t, w.Body.String())
		assert.Equal(t, 1, countContaining(scripts, `"labels":["2024-01-01"]`))
		assert.Equal(t, 1, countContaining(scripts, `"data":[-5]`))
		assert.Equal(t, 0, countContaining(scripts, "alert("))
	})

	t.Run("single alert when both are missing", func(t *testing.T) {
		s := newRealServer(fstest.MapFS{})

		w := httptest.NewRecorder()
		s.ChartPageHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		canvases, scripts := pageScripts(t, w.Body.String())
		assert.Equal(t, []string{"tempChart"}, canvases)
		assert.Equal(t, 0, countContaining(scripts, "new Chart("))
		assert.Equal(t, 1, countContaining(scripts, "alert("))
		assert.Equal(t, 1, countContaining(scripts, "Check that the data file exists."))
	})

	t.Run("invalid json alerts", func(t *testing.T) {
		s := newRealServer(fstest.MapFS{
			"data.json": {Data: []byte(`{not json`)},
		})

		w := httptest.NewRecorder()
		s.ChartPageHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, scripts := pageScripts(t, w.Body.String())
		assert.Equal(t, 0, countContaining(scripts, "new Chart("))
		assert.Equal(t, 1, countContaining(scripts, "alert("))
	})

	t.Run("every request gets its own page", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		loader := mock.NewMockChartLoader(ctrl)
		s := NewTemperatureServer(nil, loader, nil, testPage)

		var hosts []chartloader.Host
		loader.EXPECT().LoadAndRender(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, host chartloader.Host) error {
				hosts = append(hosts, host)
				host.Alert(englishAlert)
				return chartloader.ErrDataUnavailable
			}).Times(2)

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			s.ChartPageHandler(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		assert.Len(t, hosts, 2)
		assert.True(t, hosts[0] != hosts[1])
	})
}

func TestChartImageHandler(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		s := newRealServer(fstest.MapFS{
			"data.json": {Data: []byte(`[{"dato":"2025-11-01","gjennomsnitt":3.4},{"dato":"2025-11-02","gjennomsnitt":-1.1}]`)},
		})

		w := httptest.NewRecorder()
		s.ChartImageHandler(w, httptest.NewRequest(http.MethodGet, "/chart.png", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

		img, err := png.Decode(w.Body)
		assert.NoError(t, err)
		assert.Equal(t, 640, img.Bounds().Dx())
		assert.Equal(t, 320, img.Bounds().Dy())
	})

	t.Run("unavailable data", func(t *testing.T) {
		s := newRealServer(fstest.MapFS{})

		w := httptest.NewRecorder()
		s.ChartImageHandler(w, httptest.NewRequest(http.MethodGet, "/chart.png", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, englishAlert, w.Body.String())
	})
}

func TestGetDailyAveragesHandler(t *testing.T) {
	averages := model.Dataset{{Date: "2025-11-01", Average: 3.4}}

	cases := []struct {
		name           string
		query          string
		request        *model.AveragesRequest
		result         model.Dataset
		serviceError   error
		expectedStatus int
		isMockCalled   bool
	}{
		{
			name:           "ok",
			query:          "?days=7",
			request:        &model.AveragesRequest{Days: 7},
			result:         averages,
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
		{
			name:           "all days",
			request:        &model.AveragesRequest{},
			result:         averages,
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
		{
			name:           "days not a number",
			query:          "?days=week",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "days not positive",
			query:          "?days=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no averages",
			query:          "?days=7",
			request:        &model.AveragesRequest{Days: 7},
			serviceError:   service.ErrNoAverages,
			expectedStatus: http.StatusNotFound,
			isMockCalled:   true,
		},
		{
			name:           "service error",
			query:          "?days=7",
			request:        &model.AveragesRequest{Days: 7},
			serviceError:   errTest,
			expectedStatus: http.StatusInternalServerError,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockService := mock.NewMockTemperatureService(ctrl)
			s := NewTemperatureServer(mockService, nil, nil, testPage)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/averages"+tc.query, nil)

			if tc.isMockCalled {
				mockService.EXPECT().
					GetDailyAverages(gomock.Any(), tc.request).
					Return(tc.result, tc.serviceError)
			}

			s.GetDailyAveragesHandler(w, r)

			res := w.Result()
			defer func() {
				err := res.Body.Close()
				assert.Nil(t, err)
			}()
			assert.Equal(t, tc.expectedStatus, res.StatusCode)

			if tc.expectedStatus != http.StatusOK {
				var resBody errorResponse
				err := json.NewDecoder(res.Body).Decode(&resBody)
				assert.Nil(t, err)
				assert.Equal(t, tc.expectedStatus, resBody.Code)
				return
			}

			var ds model.Dataset
			err := json.NewDecoder(res.Body).Decode(&ds)
			assert.Nil(t, err)
			assert.Equal(t, tc.result, ds)
		})
	}
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	HealthHandler(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`, w.Body.String())
}
