package loader

import (
	"errors"
	"strings"
	"testing"

	"datahub_sim/internal/models"
	"datahub_sim/internal/simulation"
)

func TestParseSeries_Solar(t *testing.T) {
	csv := "hour,solar_kw\n0,0\n6,1.5\n12,7.2\n"
	points, err := ParseSeries(strings.NewReader(csv), models.SeriesSolar)
	if err != nil {
		t.Fatalf("ParseSeries: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[2] != (models.SeriesPoint{Hour: 12, Value: 7.2}) {
		t.Fatalf("unexpected last point: %+v", points[2])
	}
}

func TestParseSeries_ExtraColumnsAndOrder(t *testing.T) {
	// Columns may appear in any order alongside unrelated ones.
	csv := "station,temp_c,hour\nroof,31.5,6\nroof,40,14\n"
	points, err := ParseSeries(strings.NewReader(csv), models.SeriesTemperature)
	if err != nil {
		t.Fatalf("ParseSeries: %v", err)
	}
	if points[0].Hour != 6 || points[0].Value != 31.5 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
}

func TestParseSeries_ContractViolations(t *testing.T) {
	cases := []struct {
		name string
		csv  string
		kind models.SeriesKind
	}{
		{"empty input", "", models.SeriesSolar},
		{"wrong value column", "hour,output\n0,1\n", models.SeriesSolar},
		{"case-sensitive header", "Hour,solar_kw\n0,1\n", models.SeriesSolar},
		{"non-numeric hour", "hour,price\nnoon,4\n", models.SeriesPrice},
		{"non-numeric value", "hour,price\n12,cheap\n", models.SeriesPrice},
		{"header only", "hour,solar_kw\n", models.SeriesSolar},
		{"unknown kind", "hour,x\n0,1\n", models.SeriesKind("wind")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSeries(strings.NewReader(tc.csv), tc.kind)
			var dfe *simulation.DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("expected DataFormatError, got %v", err)
			}
		})
	}
}

func TestParseJobs(t *testing.T) {
	csv := "name,power_kw,duration_min,priority,deadline_hour\n" +
		"AI Training,3,120,HIGH,6\n" +
		"Batch Report,1.5,240,low,\n"
	jobs, err := ParseJobs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	first := jobs[0]
	if first.Name != "AI Training" || first.Priority != models.PriorityHigh {
		t.Fatalf("unexpected first job: %+v", first)
	}
	if first.DeadlineHour == nil || *first.DeadlineHour != 6 {
		t.Fatalf("deadline not parsed: %v", first.DeadlineHour)
	}
	if jobs[1].DeadlineHour != nil {
		t.Fatalf("empty deadline cell must stay nil")
	}
	if jobs[0].Status != models.StatusPending {
		t.Fatalf("parsed jobs start pending, got %q", jobs[0].Status)
	}
}

func TestParseJobs_WithoutDeadlineColumn(t *testing.T) {
	csv := "name,power_kw,duration_min,priority\njob,2,60,medium\n"
	jobs, err := ParseJobs(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].DeadlineHour != nil {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestParseJobs_Failures(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		csv := "name,power_kw,priority\njob,2,low\n"
		if _, err := ParseJobs(strings.NewReader(csv)); err == nil {
			t.Fatalf("expected error for missing duration_min")
		}
	})

	t.Run("non-numeric power", func(t *testing.T) {
		csv := "name,power_kw,duration_min,priority\njob,lots,60,low\n"
		_, err := ParseJobs(strings.NewReader(csv))
		var verr *models.ValidationError
		if !errors.As(err, &verr) || verr.Field != "power_kw" {
			t.Fatalf("expected power_kw ValidationError, got %v", err)
		}
	})

	t.Run("invalid job record", func(t *testing.T) {
		csv := "name,power_kw,duration_min,priority\njob,2,60,urgent\n"
		_, err := ParseJobs(strings.NewReader(csv))
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected wrapped ValidationError, got %v", err)
		}
	})
}
