package service

import (
	"context"
	"errors"
	"math"

	"datahub_sim/internal/models"
	"datahub_sim/internal/repository"
	"datahub_sim/internal/simulation"
)

// SeriesStatus reports whether uploaded data backs one series kind.
type SeriesStatus struct {
	Kind   models.SeriesKind `json:"kind"`
	Loaded bool              `json:"loaded"`
	Points int               `json:"points"`
}

type SeriesService struct {
	repo repository.SeriesRepo
}

func NewSeriesService(repo repository.SeriesRepo) *SeriesService {
	return &SeriesService{repo: repo}
}

// Upload validates and stores a series, replacing any previous data for
// the kind. Validation is the same one the run configuration applies, so
// a stored series can never fail at run time.
func (s *SeriesService) Upload(ctx context.Context, kind models.SeriesKind, points []models.SeriesPoint) error {
	if _, err := simulation.NewExternalSource(string(kind), points, seriesMinValue(kind)); err != nil {
		return err
	}
	return s.repo.Save(ctx, kind, points)
}

// Status reports all known series kinds and whether data is stored for
// each, in a fixed order.
func (s *SeriesService) Status(ctx context.Context) ([]SeriesStatus, error) {
	kinds := []models.SeriesKind{models.SeriesSolar, models.SeriesTemperature, models.SeriesPrice}
	out := make([]SeriesStatus, 0, len(kinds))
	for _, k := range kinds {
		points, err := s.repo.Load(ctx, k)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		out = append(out, SeriesStatus{Kind: k, Loaded: err == nil, Points: len(points)})
	}
	return out, nil
}

// Delete removes stored data for one kind; runs fall back to the
// synthetic model afterwards. Deleting an absent kind is a no-op.
func (s *SeriesService) Delete(ctx context.Context, kind models.SeriesKind) error {
	return s.repo.Delete(ctx, kind)
}

// seriesMinValue is the lower domain bound per kind. Solar output and
// prices cannot be negative; temperature is unbounded.
func seriesMinValue(kind models.SeriesKind) float64 {
	if kind == models.SeriesTemperature {
		return math.Inf(-1)
	}
	return 0
}
