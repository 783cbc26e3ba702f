package service

import (
	"context"
	"errors"
	"testing"

	"datahub_sim/internal/models"
	"datahub_sim/internal/repository"
	"datahub_sim/internal/simulation"
)

func TestSeriesService_Upload_StoresValidSeries(t *testing.T) {
	repo := &mockSeriesRepo{}
	svc := NewSeriesService(repo)

	points := []models.SeriesPoint{{Hour: 0, Value: 0}, {Hour: 12, Value: 8}}
	if err := svc.Upload(context.Background(), models.SeriesSolar, points); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if len(repo.saveCalls) != 1 || repo.saveCalls[0] != models.SeriesSolar {
		t.Fatalf("expected one solar Save call, got %v", repo.saveCalls)
	}
}

func TestSeriesService_Upload_RejectsNegativeSolar(t *testing.T) {
	repo := &mockSeriesRepo{}
	svc := NewSeriesService(repo)

	points := []models.SeriesPoint{{Hour: 0, Value: -1}}
	err := svc.Upload(context.Background(), models.SeriesSolar, points)
	var dfe *simulation.DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
	if len(repo.saveCalls) != 0 {
		t.Fatalf("expected no Save calls, got %v", repo.saveCalls)
	}
}

func TestSeriesService_Upload_AllowsNegativeTemperature(t *testing.T) {
	repo := &mockSeriesRepo{}
	svc := NewSeriesService(repo)

	points := []models.SeriesPoint{{Hour: 0, Value: -10}, {Hour: 12, Value: 5}}
	if err := svc.Upload(context.Background(), models.SeriesTemperature, points); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if len(repo.saveCalls) != 1 {
		t.Fatalf("expected one Save call, got %v", repo.saveCalls)
	}
}

func TestSeriesService_Upload_RejectsEmpty(t *testing.T) {
	svc := NewSeriesService(&mockSeriesRepo{})

	err := svc.Upload(context.Background(), models.SeriesPrice, nil)
	if err == nil {
		t.Fatalf("expected error for empty series")
	}
}

func TestSeriesService_Status(t *testing.T) {
	repo := &mockSeriesRepo{
		LoadFn: func(kind models.SeriesKind) ([]models.SeriesPoint, error) {
			if kind == models.SeriesSolar {
				return []models.SeriesPoint{{Hour: 0, Value: 0}, {Hour: 6, Value: 2}, {Hour: 12, Value: 8}}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := NewSeriesService(repo)

	got, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status returned error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 kinds, got %d", len(got))
	}
	if got[0].Kind != models.SeriesSolar || !got[0].Loaded || got[0].Points != 3 {
		t.Fatalf("unexpected solar status: %+v", got[0])
	}
	if got[1].Loaded || got[2].Loaded {
		t.Fatalf("expected temperature and price unloaded: %+v", got[1:])
	}
}

func TestSeriesService_Status_RepoError(t *testing.T) {
	repo := &mockSeriesRepo{
		LoadFn: func(models.SeriesKind) ([]models.SeriesPoint, error) {
			return nil, errors.New("db down")
		},
	}
	svc := NewSeriesService(repo)

	if _, err := svc.Status(context.Background()); err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

func TestSeriesService_Delete(t *testing.T) {
	repo := &mockSeriesRepo{}
	svc := NewSeriesService(repo)

	if err := svc.Delete(context.Background(), models.SeriesPrice); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.deleteCalls) != 1 || repo.deleteCalls[0] != models.SeriesPrice {
		t.Fatalf("expected one price Delete call, got %v", repo.deleteCalls)
	}
}
