package models

import "fmt"

// SeriesKind identifies one uploaded physical quantity.
type SeriesKind string

const (
	SeriesSolar       SeriesKind = "solar"
	SeriesTemperature SeriesKind = "temperature"
	SeriesPrice       SeriesKind = "price"
)

// ParseSeriesKind maps a path/query token to a known series kind.
func ParseSeriesKind(s string) (SeriesKind, error) {
	switch SeriesKind(s) {
	case SeriesSolar, SeriesTemperature, SeriesPrice:
		return SeriesKind(s), nil
	}
	return "", fmt.Errorf("unknown series kind %q (want solar, temperature, or price)", s)
}

// SeriesPoint is one (hour, value) sample of a time series over [0,24].
type SeriesPoint struct {
	Hour  float64 `json:"hour"`
	Value float64 `json:"value"`
}
