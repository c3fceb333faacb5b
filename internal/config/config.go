// Package config loads the service configuration from an optional file and the environment.
package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/kkyr/fig"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

const configEnv = "TEMPCHART"

// Loader sources.
const (
	SourceFile = "file"
	SourceHTTP = "http"
)

// DataPrefix is the URL path the data directory is served under.
const DataPrefix = "/data/"

// Hourly CSV encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin9 = "iso-8859-15"
)

// Config represents the application's configuration structure.
type Config struct {
	LogLevel string `fig:"log_level" default:"info"`
	// Language of the chart and alert texts, e.g. en or nb
	Locale string `fig:"locale" default:"en"`

	HTTP struct {
		Addr         string        `fig:"addr" default:":8080"`
		Origin       string        `fig:"origin"`
		ReadTimeout  time.Duration `fig:"read_timeout" default:"10s"`
		WriteTimeout time.Duration `fig:"write_timeout" default:"30s"`
	} `fig:"http"`

	Data struct {
		Dir        string `fig:"dir" default:"data"`
		HourlyFile string `fig:"hourly_file" default:"data.csv"`
		DummyFile  string `fig:"dummy_file" default:"dummy.csv"`
		OutputFile string `fig:"output_file" default:"data.json"`
		// Allowed values: utf-8, iso-8859-15
		Encoding string `fig:"encoding" default:"utf-8"`
	} `fig:"data"`

	Loader struct {
		// Allowed values: file, http
		Source   string        `fig:"source" default:"file"`
		BaseURL  string        `fig:"base_url"`
		Primary  string        `fig:"primary" default:"/data/data.json"`
		Fallback string        `fig:"fallback" default:"/data/dummy.json"`
		Target   string        `fig:"target" default:"tempChart"`
		Timeout  time.Duration `fig:"timeout" default:"10s"`
	} `fig:"loader"`

	Chart struct {
		Width  int `fig:"width" default:"1024"`
		Height int `fig:"height" default:"512"`
	} `fig:"chart"`

	Location struct {
		Name              string  `fig:"name" default:"Mysen"`
		Latitude          float64 `fig:"latitude" default:"59.55"`
		Longitude         float64 `fig:"longitude" default:"11.33"`
		MaxGridDistanceKm float64 `fig:"max_grid_distance_km" default:"10"`
	} `fig:"location"`

	Forecast struct {
		URL       string `fig:"url" default:"https://api.met.no/weatherapi/locationforecast/2.0/compact"`
		UserAgent string `fig:"user_agent"`
	} `fig:"forecast"`

	Mongo struct {
		URI      string `fig:"uri"`
		Database string `fig:"database" default:"tempchart"`
	} `fig:"mongo"`

	Schedule struct {
		// Zero disables the periodic refresh
		Refresh time.Duration `fig:"refresh"`
	} `fig:"schedule"`
}

// NewFromFile loads the configuration from file in path, overlaid with the environment.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// New loads the configuration from defaults and the environment.
func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// Load reads the config file at confPath, or only defaults and environment when it is empty.
func Load(confPath string) (*Config, error) {
	if confPath == "" {
		return New()
	}
	return NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
}

func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale: %s", c.Locale)
	}

	c.Data.Encoding = strings.ToLower(c.Data.Encoding)
	if c.Data.Encoding != EncodingUTF8 && c.Data.Encoding != EncodingLatin9 {
		return fmt.Errorf("invalid data encoding: %s", c.Data.Encoding)
	}

	switch c.Loader.Source {
	case SourceFile:
		for _, loc := range []string{c.Loader.Primary, c.Loader.Fallback} {
			if !strings.HasPrefix(path.Clean("/"+loc), DataPrefix) {
				return fmt.Errorf("loader source %s requires locations below %s: %s", SourceFile, DataPrefix, loc)
			}
		}
	case SourceHTTP:
		if c.Loader.BaseURL == "" {
			return fmt.Errorf("loader source %s requires a base url", SourceHTTP)
		}
	default:
		return fmt.Errorf("invalid loader source: %s", c.Loader.Source)
	}
	if c.Loader.Target == "" {
		return fmt.Errorf("loader target must not be empty")
	}

	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("invalid chart size: %dx%d", c.Chart.Width, c.Chart.Height)
	}

	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("invalid latitude: %f", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("invalid longitude: %f", c.Location.Longitude)
	}

	if c.Schedule.Refresh < 0 {
		return fmt.Errorf("invalid refresh interval: %s", c.Schedule.Refresh)
	}

	return nil
}

// HourlyPath returns the path of the collected hourly CSV file.
func (c *Config) HourlyPath() string {
	return filepath.Join(c.Data.Dir, c.Data.HourlyFile)
}

// DummyPath returns the path of the fallback hourly CSV file.
func (c *Config) DummyPath() string {
	return filepath.Join(c.Data.Dir, c.Data.DummyFile)
}

// OutputPath returns the path the daily averages are written to.
func (c *Config) OutputPath() string {
	return filepath.Join(c.Data.Dir, c.Data.OutputFile)
}
