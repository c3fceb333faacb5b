// Package metno fetches hourly air temperature forecasts from the MET Norway
// Locationforecast API.
package metno

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/umahmood/haversine"

	"github.com/katiamach/temperature-chart/internal/httpclient"
	"github.com/katiamach/temperature-chart/internal/model"
)

// DefaultURL is the compact Locationforecast 2.0 endpoint.
const DefaultURL = "https://api.met.no/weatherapi/locationforecast/2.0/compact"

// ErrNoTimeseries is returned when a forecast contains no usable temperatures.
var ErrNoTimeseries = errors.New("forecast contains no air temperatures")

type forecast struct {
	Geometry struct {
		// longitude, latitude, altitude
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		Timeseries []struct {
			Time time.Time `json:"time"`
			Data struct {
				Instant struct {
					Details struct {
						AirTemperature *float64 `json:"air_temperature"`
					} `json:"details"`
				} `json:"instant"`
			} `json:"data"`
		} `json:"timeseries"`
	} `json:"properties"`
}

// Client is a Locationforecast API client.
type Client struct {
	http          *httpclient.Client
	endpoint      string
	maxDistanceKm float64
	logger        logrus.FieldLogger
}

// New creates a Client. A forecast grid point farther than maxDistanceKm from the
// requested location is logged as a warning; zero disables the check.
func New(client *httpclient.Client, endpoint string, maxDistanceKm float64, logger logrus.FieldLogger) *Client {
	if endpoint == "" {
		endpoint = DefaultURL
	}
	return &Client{
		http:          client,
		endpoint:      endpoint,
		maxDistanceKm: maxDistanceKm,
		logger:        logger,
	}
}

// HourlyTemperatures returns the forecast air temperatures for loc, skipping hours
// without a temperature.
func (c *Client) HourlyTemperatures(ctx context.Context, loc model.Location) ([]model.HourlyTemperature, error) {
	query := url.Values{}
	// the API rejects coordinates with more than four decimals
	query.Set("lat", strconv.FormatFloat(loc.Latitude, 'f', 4, 64))
	query.Set("lon", strconv.FormatFloat(loc.Longitude, 'f', 4, 64))

	c.logger.WithFields(logrus.Fields{"url": c.endpoint, "location": loc.Name}).Info("fetching forecast")

	var fc forecast
	if err := c.http.GetJSON(ctx, c.endpoint, query, &fc); err != nil {
		return nil, fmt.Errorf("failed to get forecast for %s: %w", loc.Name, err)
	}

	c.checkGridDistance(loc, fc)

	temps := make([]model.HourlyTemperature, 0, len(fc.Properties.Timeseries))
	for _, point := range fc.Properties.Timeseries {
		t := point.Data.Instant.Details.AirTemperature
		if t == nil {
			continue
		}
		temps = append(temps, model.HourlyTemperature{Time: point.Time, Temperature: *t})
	}

	if len(temps) == 0 {
		return nil, ErrNoTimeseries
	}

	return temps, nil
}

func (c *Client) checkGridDistance(loc model.Location, fc forecast) {
	if c.maxDistanceKm <= 0 || len(fc.Geometry.Coordinates) < 2 {
		return
	}

	requested := haversine.Coord{Lat: loc.Latitude, Lon: loc.Longitude}
	grid := haversine.Coord{Lat: fc.Geometry.Coordinates[1], Lon: fc.Geometry.Coordinates[0]}

	_, km := haversine.Distance(requested, grid)
	if km > c.maxDistanceKm {
		c.logger.WithFields(logrus.Fields{
			"location":    loc.Name,
			"distance_km": km,
			"max_km":      c.maxDistanceKm,
		}).Warn("forecast grid point is far from the requested location")
	}
}
