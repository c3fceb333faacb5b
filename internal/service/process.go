package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/katiamach/temperature-chart/internal/model"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"tid", "temperatur"}

// Collect fetches the hourly forecast and writes it to the hourly CSV file. It returns the
// number of rows written.
func (s *TemperatureService) Collect(ctx context.Context) (n int, err error) {
	defer func() { s.metrics.RecordPipelineRun(StepCollect, err) }()

	temps, err := s.forecast.HourlyTemperatures(ctx, s.location)
	if err != nil {
		return 0, fmt.Errorf("failed to get hourly temperatures: %w", err)
	}

	s.mu.Lock()
	err = writeHourlyCSV(s.paths.Hourly, temps)
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("failed to write hourly temperatures: %w", err)
	}

	s.metrics.RecordCollected(len(temps))
	s.logger.WithFields(map[string]interface{}{
		"rows":      len(temps),
		"file":      s.paths.Hourly,
		"latitude":  s.location.Latitude,
		"longitude": s.location.Longitude,
	}).Info("collected hourly temperatures")

	return len(temps), nil
}

func writeHourlyCSV(path string, temps []model.HourlyTemperature) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, t := range temps {
			row := []string{t.Time.Format(time.RFC3339), strconv.FormatFloat(t.Temperature, 'f', -1, 64)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// writeFileAtomic writes a temporary file next to path and renames it over path, so
// readers see either the old or the new content.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}

// Aggregate reads the hourly CSV file, or the dummy file when it is missing, and writes the
// daily averages sorted by date to the output JSON file.
func (s *TemperatureService) Aggregate(ctx context.Context) (ds model.Dataset, err error) {
	defer func() { s.metrics.RecordPipelineRun(StepAggregate, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	input, err := s.hourlyInput()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", input, err)
	}
	defer f.Close()

	var r io.Reader = f
	if s.latin9 {
		r = transform.NewReader(f, charmap.ISO8859_15.NewDecoder())
	}

	ds, err = s.dailyAverages(r)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", input, err)
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode daily averages: %w", err)
	}
	err = writeFileAtomic(s.paths.Output, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", s.paths.Output, err)
	}

	if s.repo != nil {
		if err := s.repo.UpsertDailyAverages(ctx, s.location.Name, ds); err != nil {
			return nil, fmt.Errorf("failed to store daily averages: %w", err)
		}
	}

	s.metrics.RecordAggregated(len(ds))
	s.logger.WithFields(map[string]interface{}{
		"days":   len(ds),
		"input":  input,
		"output": s.paths.Output,
	}).Info("aggregated daily averages")

	return ds, nil
}

// HourlyInput picks the hourly file, falling back to the dummy one.
func (s *TemperatureService) hourlyInput() (string, error) {
	_, err := os.Stat(s.paths.Hourly)
	if err == nil {
		return s.paths.Hourly, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %s: %w", s.paths.Hourly, err)
	}

	_, err = os.Stat(s.paths.Dummy)
	if err != nil {
		return "", fmt.Errorf("found neither %s nor %s: %w", s.paths.Hourly, s.paths.Dummy, err)
	}

	s.logger.WithField("file", s.paths.Dummy).Warn("hourly file missing, using dummy data")

	return s.paths.Dummy, nil
}

// DailyAverages groups hourly rows by the calendar date of their timestamp and averages them.
func (s *TemperatureService) dailyAverages(r io.Reader) (model.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, ErrNoHourlyData
	}

	type acc struct {
		sum float64
		num int
	}
	perDay := make(map[string]*acc)

	skipped := 0
	for _, row := range records[1:] {
		date, temp, err := parseHourlyRow(row)
		if err != nil {
			skipped++
			continue
		}

		a := perDay[date]
		if a == nil {
			a = &acc{}
			perDay[date] = a
		}
		a.sum += temp
		a.num++
	}

	if skipped > 0 {
		s.logger.WithField("rows", skipped).Warn("skipped invalid hourly rows")
	}

	ds := make(model.Dataset, 0, len(perDay))
	for date, a := range perDay {
		ds = append(ds, model.DailyAverage{Date: date, Average: a.sum / float64(a.num)})
	}

	sort.Slice(ds, func(i, j int) bool {
		return ds[i].Date < ds[j].Date
	})

	return ds, nil
}

// parseHourlyRow parses a tid,temperatur row into its date and temperature.
func parseHourlyRow(row []string) (string, float64, error) {
	if len(row) < 2 {
		return "", 0, fmt.Errorf("expected 2 columns, got %d", len(row))
	}

	t, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse time value: %w", err)
	}

	temp, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse temperature value: %w", err)
	}

	return t.Format(dateLayout), temp, nil
}
