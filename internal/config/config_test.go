package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tj/assert"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf, err := New()
		assert.NoError(t, err)

		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "en", conf.Locale)
		assert.Equal(t, ":8080", conf.HTTP.Addr)
		assert.Equal(t, SourceFile, conf.Loader.Source)
		assert.Equal(t, "/data/data.json", conf.Loader.Primary)
		assert.Equal(t, "/data/dummy.json", conf.Loader.Fallback)
		assert.Equal(t, "tempChart", conf.Loader.Target)
		assert.Equal(t, 59.55, conf.Location.Latitude)
		assert.Equal(t, 11.33, conf.Location.Longitude)
		assert.Equal(t, filepath.Join("data", "data.json"), conf.OutputPath())
		assert.Equal(t, filepath.Join("data", "data.csv"), conf.HourlyPath())
		assert.Equal(t, filepath.Join("data", "dummy.csv"), conf.DummyPath())
		assert.Equal(t, time.Duration(0), conf.Schedule.Refresh)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("TEMPCHART_LOCALE", "nb")
		t.Setenv("TEMPCHART_LOADER_SOURCE", "http")
		t.Setenv("TEMPCHART_LOADER_BASE_URL", "http://localhost:9000")

		conf, err := New()
		assert.NoError(t, err)
		assert.Equal(t, "nb", conf.Locale)
		assert.Equal(t, SourceHTTP, conf.Loader.Source)
		assert.Equal(t, "http://localhost:9000", conf.Loader.BaseURL)
	})

	t.Run("http source without base url fails", func(t *testing.T) {
		t.Setenv("TEMPCHART_LOADER_SOURCE", "http")

		_, err := New()
		assert.Error(t, err)
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("loading a config file", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte("log_level: debug\nlocation:\n  name: Oslo\n  latitude: 59.91\n  longitude: 10.75\n" +
			"schedule:\n  refresh: 1h\n")
		err := os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600)
		assert.NoError(t, err)

		conf, err := NewFromFile(dir, "config.yaml")
		assert.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "Oslo", conf.Location.Name)
		assert.Equal(t, 59.91, conf.Location.Latitude)
		assert.Equal(t, time.Hour, conf.Schedule.Refresh)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := NewFromFile(t.TempDir(), "config.yaml")
		assert.Error(t, err)
	})

	t.Run("load picks the file from a path", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		err := os.WriteFile(path, []byte("locale = \"nb\"\n"), 0o600)
		assert.NoError(t, err)

		conf, err := Load(path)
		assert.NoError(t, err)
		assert.Equal(t, "nb", conf.Locale)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		conf, err := New()
		assert.NoError(t, err)
		return conf
	}

	cases := []struct {
		name   string
		modify func(c *Config)
	}{
		{"invalid log level", func(c *Config) { c.LogLevel = "loud" }},
		{"invalid locale", func(c *Config) { c.Locale = "!!" }},
		{"invalid encoding", func(c *Config) { c.Data.Encoding = "utf-16" }},
		{"invalid loader source", func(c *Config) { c.Loader.Source = "ftp" }},
		{"empty target", func(c *Config) { c.Loader.Target = "" }},
		{"file primary outside data", func(c *Config) { c.Loader.Primary = "/static/data.json" }},
		{"file fallback outside data", func(c *Config) { c.Loader.Fallback = "/dummy.json" }},
		{"file primary escaping data", func(c *Config) { c.Loader.Primary = "/data/../data.json" }},
		{"file location is the data dir", func(c *Config) { c.Loader.Primary = "/data" }},
		{"invalid chart size", func(c *Config) { c.Chart.Width = 0 }},
		{"invalid latitude", func(c *Config) { c.Location.Latitude = 91 }},
		{"invalid longitude", func(c *Config) { c.Location.Longitude = -181 }},
		{"negative refresh", func(c *Config) { c.Schedule.Refresh = -time.Second }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conf := valid(t)
			tc.modify(conf)
			assert.Error(t, conf.Validate())
		})
	}

	t.Run("file locations below data", func(t *testing.T) {
		conf := valid(t)
		conf.Loader.Primary = "data/data.json"
		conf.Loader.Fallback = "/data/old/dummy.json"
		assert.NoError(t, conf.Validate())
	})

	t.Run("http locations are not restricted", func(t *testing.T) {
		conf := valid(t)
		conf.Loader.Source = SourceHTTP
		conf.Loader.BaseURL = "https://example.com"
		conf.Loader.Primary = "/static/data.json"
		assert.NoError(t, conf.Validate())
	})

	t.Run("encoding is case insensitive", func(t *testing.T) {
		conf := valid(t)
		conf.Data.Encoding = "ISO-8859-15"
		assert.NoError(t, conf.Validate())
		assert.Equal(t, EncodingLatin9, conf.Data.Encoding)
	})
}
