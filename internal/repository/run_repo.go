package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"datahub_sim/internal/models"
)

type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const (
	insertRunSQL = `
		INSERT INTO runs (id, scheduler, created_at, grid_kwh, solar_kwh, cooling_kwh,
			carbon_kg, cost, violations, penalty_kwh, steps, jobs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRunSQL = `
		SELECT id, scheduler, created_at, grid_kwh, solar_kwh, cooling_kwh,
			carbon_kg, cost, violations, penalty_kwh, steps, jobs
		FROM runs WHERE id = ?
	`

	listRunsSQL = `
		SELECT id, scheduler, created_at, grid_kwh, solar_kwh, cooling_kwh,
			carbon_kg, cost, violations, penalty_kwh
		FROM runs ORDER BY created_at DESC LIMIT ?
	`

	// SQLite TIMESTAMP format
	runTimeLayout = "2006-01-02 15:04:05"
)

// Save inserts a finished run. The step log and job outcomes are stored
// as JSON text, like event metadata elsewhere in this schema.
func (r *RunSQLite) Save(ctx context.Context, run models.Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	steps, err := json.Marshal(run.Steps)
	if err != nil {
		return fmt.Errorf("marshal steps for run %q: %w", run.ID, err)
	}
	jobs, err := json.Marshal(run.Jobs)
	if err != nil {
		return fmt.Errorf("marshal jobs for run %q: %w", run.ID, err)
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.Scheduler,
		run.CreatedAt.UTC().Format(runTimeLayout),
		run.Totals.GridKWh,
		run.Totals.SolarKWh,
		run.Totals.CoolingKWh,
		run.Totals.CarbonKg,
		run.Totals.Cost,
		run.Totals.DeadlineViolations,
		run.Totals.PenaltyKWh,
		string(steps),
		string(jobs),
	)
	if err != nil {
		return fmt.Errorf("insert run %q: %w", run.ID, err)
	}
	return nil
}

// Get loads one run with its full step log.
func (r *RunSQLite) Get(ctx context.Context, id string) (models.Run, error) {
	var (
		run       models.Run
		stepsJSON string
		jobsJSON  sql.NullString
	)
	err := r.db.QueryRowContext(ctx, selectRunSQL, id).Scan(
		&run.ID, &run.Scheduler, &run.CreatedAt,
		&run.Totals.GridKWh, &run.Totals.SolarKWh, &run.Totals.CoolingKWh,
		&run.Totals.CarbonKg, &run.Totals.Cost,
		&run.Totals.DeadlineViolations, &run.Totals.PenaltyKWh,
		&stepsJSON, &jobsJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Run{}, ErrNotFound
		}
		return models.Run{}, fmt.Errorf("select run %q: %w", id, err)
	}
	run.CreatedAt = run.CreatedAt.UTC()

	if err := json.Unmarshal([]byte(stepsJSON), &run.Steps); err != nil {
		return models.Run{}, fmt.Errorf("unmarshal steps for run %q: %w", id, err)
	}
	if jobsJSON.Valid && jobsJSON.String != "" {
		if err := json.Unmarshal([]byte(jobsJSON.String), &run.Jobs); err != nil {
			return models.Run{}, fmt.Errorf("unmarshal jobs for run %q: %w", id, err)
		}
	}
	return run, nil
}

// List returns recent run summaries, newest first, step logs omitted.
func (r *RunSQLite) List(ctx context.Context, limit int) ([]models.Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := make([]models.Run, 0, limit)
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(
			&run.ID, &run.Scheduler, &run.CreatedAt,
			&run.Totals.GridKWh, &run.Totals.SolarKWh, &run.Totals.CoolingKWh,
			&run.Totals.CarbonKg, &run.Totals.Cost,
			&run.Totals.DeadlineViolations, &run.Totals.PenaltyKWh,
		); err != nil {
			return nil, err
		}
		run.CreatedAt = run.CreatedAt.UTC()
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
