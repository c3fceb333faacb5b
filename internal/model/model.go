// Package model contains the temperature data types shared across the service.
package model

import "time"

// DailyAverage is the average temperature of one calendar day.
type DailyAverage struct {
	Date    string  `json:"dato" bson:"date"`
	Average float64 `json:"gjennomsnitt" bson:"average"`
}

// Dataset is an ordered sequence of daily averages as delivered by the data source.
type Dataset []DailyAverage

// ChartInput holds the parallel label and value sequences a chart is drawn from.
type ChartInput struct {
	Labels []string
	Values []float64
}

// HourlyTemperature is a single forecast temperature reading.
type HourlyTemperature struct {
	Time        time.Time
	Temperature float64
}

// Location is a named point a forecast is collected for.
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// AveragesRequest contains averages request parameters.
type AveragesRequest struct {
	Days int `json:"days"`
}

// Project splits the dataset into chart labels and values, keeping index correspondence.
func Project(ds Dataset) ChartInput {
	input := ChartInput{
		Labels: make([]string, len(ds)),
		Values: make([]float64, len(ds)),
	}

	for i, d := range ds {
		input.Labels[i] = d.Date
		input.Values[i] = d.Average
	}

	return input
}

// Last returns the last n days of the dataset, or all of it when n is not positive.
func (ds Dataset) Last(n int) Dataset {
	if n <= 0 || n >= len(ds) {
		return ds
	}

	return ds[len(ds)-n:]
}
