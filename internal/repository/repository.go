package repository

import (
	"context"
	"database/sql"
	"errors"

	"datahub_sim/internal/models"
	"datahub_sim/internal/repository/db"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// InitDB opens the SQLite database file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// RunRepo persists finished simulation runs.
type RunRepo interface {
	Save(ctx context.Context, run models.Run) error
	// Get returns one run including its step log and job outcomes.
	Get(ctx context.Context, id string) (models.Run, error)
	// List returns recent runs, newest first, without step logs.
	List(ctx context.Context, limit int) ([]models.Run, error)
}

// SeriesRepo stores uploaded data series, one row per kind.
type SeriesRepo interface {
	Save(ctx context.Context, kind models.SeriesKind, points []models.SeriesPoint) error
	Load(ctx context.Context, kind models.SeriesKind) ([]models.SeriesPoint, error)
	Kinds(ctx context.Context) ([]models.SeriesKind, error)
	Delete(ctx context.Context, kind models.SeriesKind) error
}

type Repository struct {
	Runs   RunRepo
	Series SeriesRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Runs:   NewRunSQLite(db),
		Series: NewSeriesSQLite(db),
		Auth:   NewUserRepository(db),
	}
}
