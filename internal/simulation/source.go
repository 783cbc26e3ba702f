package simulation

import (
	"fmt"
	"sort"

	"datahub_sim/internal/models"
)

// TimeSeriesSource provides one physical quantity (solar kW, ambient °C,
// price per kWh) as a pure function of the hour of day. Instances are
// built once at configuration time and are immutable for the duration of
// any run.
type TimeSeriesSource interface {
	// Value returns the quantity at the given hour in [0,24].
	Value(hour float64) float64
	// Loaded reports whether externally supplied data backs this source.
	Loaded() bool
}

// DataFormatError reports an invalid external series: missing or
// non-numeric fields, or values outside the series' domain.
type DataFormatError struct {
	Series string
	Reason string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("invalid %s series: %s", e.Series, e.Reason)
}

// ModelSource evaluates a synthetic curve. Always loaded.
type ModelSource struct {
	fn func(hour float64) float64
}

func NewModelSource(fn func(hour float64) float64) *ModelSource {
	return &ModelSource{fn: fn}
}

func (s *ModelSource) Value(hour float64) float64 { return s.fn(hour) }
func (s *ModelSource) Loaded() bool               { return true }

// ExternalSource interpolates linearly between validated samples.
// Hours at or beyond either endpoint clamp to that endpoint's value:
// no extrapolation, no wraparound.
type ExternalSource struct {
	hours  []float64
	values []float64
}

// NewExternalSource validates and sorts the given points. minValue is the
// lower bound of the series' domain; pass math.Inf(-1) for unbounded
// quantities such as temperature.
func NewExternalSource(series string, points []models.SeriesPoint, minValue float64) (*ExternalSource, error) {
	if len(points) == 0 {
		return nil, &DataFormatError{Series: series, Reason: "no data points"}
	}
	sorted := make([]models.SeriesPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Hour < sorted[j].Hour })

	s := &ExternalSource{
		hours:  make([]float64, 0, len(sorted)),
		values: make([]float64, 0, len(sorted)),
	}
	for i, p := range sorted {
		if p.Hour < 0 || p.Hour > 24 {
			return nil, &DataFormatError{Series: series, Reason: fmt.Sprintf("hour %g outside [0,24]", p.Hour)}
		}
		if i > 0 && p.Hour == sorted[i-1].Hour {
			return nil, &DataFormatError{Series: series, Reason: fmt.Sprintf("duplicate hour %g", p.Hour)}
		}
		if p.Value < minValue {
			return nil, &DataFormatError{Series: series, Reason: fmt.Sprintf("value %g below minimum %g at hour %g", p.Value, minValue, p.Hour)}
		}
		s.hours = append(s.hours, p.Hour)
		s.values = append(s.values, p.Value)
	}
	return s, nil
}

func (s *ExternalSource) Value(hour float64) float64 {
	n := len(s.hours)
	if hour <= s.hours[0] {
		return s.values[0]
	}
	if hour >= s.hours[n-1] {
		return s.values[n-1]
	}
	// first index with hours[i] >= hour; the bracket is [i-1, i]
	i := sort.SearchFloat64s(s.hours, hour)
	if s.hours[i] == hour {
		return s.values[i]
	}
	h0, h1 := s.hours[i-1], s.hours[i]
	v0, v1 := s.values[i-1], s.values[i]
	return v0 + (v1-v0)*(hour-h0)/(h1-h0)
}

func (s *ExternalSource) Loaded() bool { return true }

// HybridSource prefers externally supplied data and falls back to a
// synthetic model only when none is present. Fallback never triggers on
// successfully parsed values, however unusual.
type HybridSource struct {
	external TimeSeriesSource // may be nil
	fallback TimeSeriesSource
}

func NewHybridSource(external, fallback TimeSeriesSource) *HybridSource {
	return &HybridSource{external: external, fallback: fallback}
}

func (s *HybridSource) Value(hour float64) float64 {
	if s.external != nil && s.external.Loaded() {
		return s.external.Value(hour)
	}
	return s.fallback.Value(hour)
}

func (s *HybridSource) Loaded() bool {
	return s.external != nil && s.external.Loaded()
}
