package service

import (
	"context"

	"datahub_sim/internal/models"
	"datahub_sim/internal/repository"
	"datahub_sim/internal/simulation"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Simulations executes scheduling runs and serves persisted results.
type Simulations interface {
	Run(ctx context.Context, p RunParams) (models.Run, error)
	Compare(ctx context.Context, p RunParams) (Comparison, error)
	Get(ctx context.Context, id string) (models.Run, error)
	List(ctx context.Context, limit int) ([]models.Run, error)
}

// Series manages uploaded data series used to drive runs.
type Series interface {
	Upload(ctx context.Context, kind models.SeriesKind, points []models.SeriesPoint) error
	Status(ctx context.Context) ([]SeriesStatus, error)
	Delete(ctx context.Context, kind models.SeriesKind) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Simulations
	Series
	Authorization
}

// NewService wires the repository layer into concrete services. base is
// the run configuration assembled from the application config; uploaded
// series are layered over it per run.
func NewService(repos *repository.Repository, base simulation.Config) *Service {
	return &Service{
		Simulations:   NewSimulationService(repos.Runs, repos.Series, base),
		Series:        NewSeriesService(repos.Series),
		Authorization: NewAuthService(repos.Auth),
	}
}
