package simulation

import (
	"errors"
	"math"
	"testing"

	"datahub_sim/internal/models"
)

func mustExternal(t *testing.T, series string, points []models.SeriesPoint, minValue float64) *ExternalSource {
	t.Helper()
	s, err := NewExternalSource(series, points, minValue)
	if err != nil {
		t.Fatalf("NewExternalSource: %v", err)
	}
	return s
}

func TestExternalSource_InterpolatesLinearly(t *testing.T) {
	s := mustExternal(t, "solar", []models.SeriesPoint{
		{Hour: 0, Value: 0},
		{Hour: 12, Value: 8},
	}, 0)

	if got := s.Value(6); got != 4 {
		t.Fatalf("Value(6) = %g, want exactly 4", got)
	}
	if got := s.Value(0); got != 0 {
		t.Fatalf("Value(0) = %g, want 0", got)
	}
	if got := s.Value(12); got != 8 {
		t.Fatalf("Value(12) = %g, want 8", got)
	}
	if got := s.Value(9); math.Abs(got-6) > 1e-12 {
		t.Fatalf("Value(9) = %g, want 6", got)
	}
}

func TestExternalSource_ClampsOutsideSampleRange(t *testing.T) {
	s := mustExternal(t, "temperature", []models.SeriesPoint{
		{Hour: 3, Value: 20},
		{Hour: 21, Value: 30},
	}, math.Inf(-1))

	// Before the first sample and after the last, the endpoint value
	// holds; there is no extrapolation or wraparound.
	if got := s.Value(0); got != 20 {
		t.Fatalf("Value(0) = %g, want clamp to 20", got)
	}
	if got := s.Value(24); got != 30 {
		t.Fatalf("Value(24) = %g, want clamp to 30", got)
	}
	if got := s.Value(23); got != 30 {
		t.Fatalf("Value(23) = %g, want clamp to 30", got)
	}
}

func TestExternalSource_SortsUnorderedInput(t *testing.T) {
	s := mustExternal(t, "price", []models.SeriesPoint{
		{Hour: 18, Value: 9},
		{Hour: 6, Value: 3},
		{Hour: 12, Value: 6},
	}, 0)

	if got := s.Value(9); math.Abs(got-4.5) > 1e-12 {
		t.Fatalf("Value(9) = %g, want 4.5", got)
	}
}

func TestExternalSource_ValidationFailures(t *testing.T) {
	cases := []struct {
		name     string
		points   []models.SeriesPoint
		minValue float64
	}{
		{"empty", nil, 0},
		{"hour above 24", []models.SeriesPoint{{Hour: 25, Value: 1}}, 0},
		{"negative hour", []models.SeriesPoint{{Hour: -1, Value: 1}}, 0},
		{"duplicate hour", []models.SeriesPoint{{Hour: 6, Value: 1}, {Hour: 6, Value: 2}}, 0},
		{"below minimum", []models.SeriesPoint{{Hour: 6, Value: -0.5}}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewExternalSource("solar", tc.points, tc.minValue)
			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("expected DataFormatError, got %v", err)
			}
		})
	}
}

func TestHybridSource_PrefersExternalData(t *testing.T) {
	ext := mustExternal(t, "solar", []models.SeriesPoint{
		{Hour: 0, Value: 1}, {Hour: 24, Value: 1},
	}, 0)
	h := NewHybridSource(ext, NewModelSource(SolarModel))

	if !h.Loaded() {
		t.Fatalf("expected hybrid with external data to report loaded")
	}
	if got := h.Value(12); got != 1 {
		t.Fatalf("Value(12) = %g, want external value 1", got)
	}
}

func TestHybridSource_FallsBackOnlyWhenAbsent(t *testing.T) {
	h := NewHybridSource(nil, NewModelSource(SolarModel))

	if h.Loaded() {
		t.Fatalf("expected hybrid without external data to report unloaded")
	}
	if got, want := h.Value(12), SolarModel(12); got != want {
		t.Fatalf("Value(12) = %g, want model value %g", got, want)
	}

	// Unusual but valid external values never trigger fallback.
	zero := mustExternal(t, "solar", []models.SeriesPoint{
		{Hour: 0, Value: 0}, {Hour: 24, Value: 0},
	}, 0)
	h = NewHybridSource(zero, NewModelSource(SolarModel))
	if got := h.Value(12); got != 0 {
		t.Fatalf("Value(12) = %g, want 0 from the zero external series", got)
	}
}
