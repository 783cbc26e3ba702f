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

type SeriesSQLite struct {
	db *sql.DB
}

func NewSeriesSQLite(db *sql.DB) *SeriesSQLite { return &SeriesSQLite{db: db} }

var _ SeriesRepo = (*SeriesSQLite)(nil)

const (
	upsertSeriesSQL = `
		INSERT INTO series (kind, points, uploaded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(kind) DO UPDATE SET
			points=excluded.points,
			uploaded_at=excluded.uploaded_at
	`

	selectSeriesSQL = `SELECT points FROM series WHERE kind = ?`
	listKindsSQL    = `SELECT kind FROM series ORDER BY kind ASC`
	deleteSeriesSQL = `DELETE FROM series WHERE kind = ?`
)

// Save replaces the stored points for one series kind.
func (r *SeriesSQLite) Save(ctx context.Context, kind models.SeriesKind, points []models.SeriesPoint) error {
	b, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal %s series: %w", kind, err)
	}
	_, err = r.db.ExecContext(ctx, upsertSeriesSQL,
		string(kind),
		string(b),
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		return fmt.Errorf("upsert %s series: %w", kind, err)
	}
	return nil
}

// Load returns the stored points for one kind, or ErrNotFound.
func (r *SeriesSQLite) Load(ctx context.Context, kind models.SeriesKind) ([]models.SeriesPoint, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, selectSeriesSQL, string(kind)).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select %s series: %w", kind, err)
	}
	var points []models.SeriesPoint
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, fmt.Errorf("unmarshal %s series: %w", kind, err)
	}
	return points, nil
}

// Kinds lists the series kinds with stored data.
func (r *SeriesSQLite) Kinds(ctx context.Context) ([]models.SeriesKind, error) {
	rows, err := r.db.QueryContext(ctx, listKindsSQL)
	if err != nil {
		return nil, fmt.Errorf("list series kinds: %w", err)
	}
	defer rows.Close()

	var out []models.SeriesKind
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, models.SeriesKind(k))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the stored series for one kind; deleting an absent kind
// is not an error.
func (r *SeriesSQLite) Delete(ctx context.Context, kind models.SeriesKind) error {
	if _, err := r.db.ExecContext(ctx, deleteSeriesSQL, string(kind)); err != nil {
		return fmt.Errorf("delete %s series: %w", kind, err)
	}
	return nil
}
