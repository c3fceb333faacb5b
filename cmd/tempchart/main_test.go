package main

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tj/assert"
)

const hourlyCSV = "tid,temperatur\n2025-11-01T00:00:00Z,2\n2025-11-01T12:00:00Z,4\n2025-11-02T00:00:00Z,-1\n"

// setup writes a config file pointing at a fresh data directory.
func setup(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	assert.NoError(t, os.MkdirAll(dataDir, 0o755))

	conf := fmt.Sprintf("log_level: error\ndata:\n  dir: %s\nchart:\n  width: 400\n  height: 200\n", dataDir)
	confPath := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(confPath, []byte(conf), 0o644))

	return confPath, dataDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAggregateAndRender(t *testing.T) {
	confPath, dataDir := setup(t)
	assert.NoError(t, os.WriteFile(filepath.Join(dataDir, "data.csv"), []byte(hourlyCSV), 0o644))

	out, err := run(t, "aggregate", "--config", confPath)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(out, "Wrote 2 days"))

	data, err := os.ReadFile(filepath.Join(dataDir, "data.json"))
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"dato": "2025-11-01"`))
	assert.True(t, strings.Contains(string(data), `"gjennomsnitt": 3`))

	chartPath := filepath.Join(t.TempDir(), "chart.png")
	_, err = run(t, "render", "--config", confPath, "--out", chartPath)
	assert.NoError(t, err)

	f, err := os.Open(chartPath)
	assert.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	assert.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestRender_fallback(t *testing.T) {
	confPath, dataDir := setup(t)
	assert.NoError(t, os.WriteFile(filepath.Join(dataDir, "dummy.json"),
		[]byte(`[{"dato":"2024-01-01","gjennomsnitt":-5}]`), 0o644))

	chartPath := filepath.Join(t.TempDir(), "chart.png")
	_, err := run(t, "render", "--config", confPath, "--out", chartPath)
	assert.NoError(t, err)

	_, err = os.Stat(chartPath)
	assert.NoError(t, err)
}

func TestRender_noData(t *testing.T) {
	confPath, _ := setup(t)
	chartPath := filepath.Join(t.TempDir(), "chart.png")

	_, err := run(t, "render", "--config", confPath, "--out", chartPath)
	assert.EqualError(t, err, "Could not load temperature data. Check that the data file exists.")

	_, err = os.Stat(chartPath)
	assert.True(t, os.IsNotExist(err))
}

func TestAggregate_noInput(t *testing.T) {
	confPath, _ := setup(t)

	_, err := run(t, "aggregate", "--config", confPath)
	assert.Error(t, err)
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	confPath := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(confPath, []byte("loader:\n  source: ftp\n"), 0o644))

	_, err := run(t, "aggregate", "--config", confPath)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid loader source"))
}
