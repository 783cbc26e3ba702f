// Package loader parses the CSV data contracts for uploaded series and
// job sets. Parsing happens once, before a run; the simulation loop
// itself never touches I/O.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"datahub_sim/internal/models"
	"datahub_sim/internal/simulation"
)

// Value column per series kind, case-sensitive, exactly as named.
var seriesValueColumn = map[models.SeriesKind]string{
	models.SeriesSolar:       "solar_kw",
	models.SeriesTemperature: "temp_c",
	models.SeriesPrice:       "price",
}

const hourColumn = "hour"

// ParseSeries reads one series CSV (header row required) and returns its
// points in file order. Violations of the contract surface as
// *simulation.DataFormatError; domain bounds are enforced later by the
// external source constructor.
func ParseSeries(r io.Reader, kind models.SeriesKind) ([]models.SeriesPoint, error) {
	valueCol, ok := seriesValueColumn[kind]
	if !ok {
		return nil, &simulation.DataFormatError{Series: string(kind), Reason: "unknown series kind"}
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, &simulation.DataFormatError{Series: string(kind), Reason: "missing header row"}
	}
	hourIdx, valueIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case hourColumn:
			hourIdx = i
		case valueCol:
			valueIdx = i
		}
	}
	if hourIdx < 0 || valueIdx < 0 {
		return nil, &simulation.DataFormatError{
			Series: string(kind),
			Reason: fmt.Sprintf("header must contain %q and %q columns", hourColumn, valueCol),
		}
	}

	var points []models.SeriesPoint
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &simulation.DataFormatError{Series: string(kind), Reason: fmt.Sprintf("line %d: %v", line, err)}
		}
		hour, err := strconv.ParseFloat(strings.TrimSpace(record[hourIdx]), 64)
		if err != nil {
			return nil, &simulation.DataFormatError{Series: string(kind), Reason: fmt.Sprintf("line %d: non-numeric hour %q", line, record[hourIdx])}
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, &simulation.DataFormatError{Series: string(kind), Reason: fmt.Sprintf("line %d: non-numeric %s %q", line, valueCol, record[valueIdx])}
		}
		points = append(points, models.SeriesPoint{Hour: hour, Value: value})
	}
	if len(points) == 0 {
		return nil, &simulation.DataFormatError{Series: string(kind), Reason: "no data rows"}
	}
	return points, nil
}

// Jobs CSV columns; deadline_hour is optional.
const (
	jobColName     = "name"
	jobColPower    = "power_kw"
	jobColDuration = "duration_min"
	jobColPriority = "priority"
	jobColDeadline = "deadline_hour"
)

// ParseJobs reads a jobs CSV into validated pending jobs. Column and type
// failures surface as *models.ValidationError via job construction, or a
// wrapped parse error for malformed rows.
func ParseJobs(r io.Reader) ([]*models.Job, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("jobs csv: missing header row")
	}
	idx := map[string]int{}
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{jobColName, jobColPower, jobColDuration, jobColPriority} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("jobs csv: missing required column %q", col)
		}
	}
	deadlineIdx, hasDeadline := idx[jobColDeadline]

	var jobs []*models.Job
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("jobs csv line %d: %w", line, err)
		}
		power, err := strconv.ParseFloat(strings.TrimSpace(record[idx[jobColPower]]), 64)
		if err != nil {
			return nil, &models.ValidationError{Field: jobColPower, Reason: fmt.Sprintf("line %d: non-numeric %q", line, record[idx[jobColPower]])}
		}
		duration, err := strconv.Atoi(strings.TrimSpace(record[idx[jobColDuration]]))
		if err != nil {
			return nil, &models.ValidationError{Field: jobColDuration, Reason: fmt.Sprintf("line %d: non-numeric %q", line, record[idx[jobColDuration]])}
		}
		var deadline *float64
		if hasDeadline && deadlineIdx < len(record) {
			if raw := strings.TrimSpace(record[deadlineIdx]); raw != "" {
				d, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil, &models.ValidationError{Field: jobColDeadline, Reason: fmt.Sprintf("line %d: non-numeric %q", line, raw)}
				}
				deadline = &d
			}
		}
		job, err := models.NewJob(record[idx[jobColName]], power, duration, record[idx[jobColPriority]], deadline)
		if err != nil {
			return nil, fmt.Errorf("jobs csv line %d: %w", line, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
