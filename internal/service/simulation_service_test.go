package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"datahub_sim/internal/models"
	"datahub_sim/internal/repository"
	"datahub_sim/internal/simulation"
)

// mockRunRepo is a lightweight in-test mock for repository.RunRepo.
type mockRunRepo struct {
	SaveFn func(run models.Run) error
	GetFn  func(id string) (models.Run, error)
	ListFn func(limit int) ([]models.Run, error)

	saved []models.Run
}

func (m *mockRunRepo) Save(_ context.Context, run models.Run) error {
	m.saved = append(m.saved, run)
	if m.SaveFn != nil {
		return m.SaveFn(run)
	}
	return nil
}

func (m *mockRunRepo) Get(_ context.Context, id string) (models.Run, error) {
	return m.GetFn(id)
}

func (m *mockRunRepo) List(_ context.Context, limit int) ([]models.Run, error) {
	return m.ListFn(limit)
}

// mockSeriesRepo is a lightweight in-test mock for repository.SeriesRepo.
type mockSeriesRepo struct {
	SaveFn func(kind models.SeriesKind, points []models.SeriesPoint) error
	LoadFn func(kind models.SeriesKind) ([]models.SeriesPoint, error)

	saveCalls   []models.SeriesKind
	deleteCalls []models.SeriesKind
}

func (m *mockSeriesRepo) Save(_ context.Context, kind models.SeriesKind, points []models.SeriesPoint) error {
	m.saveCalls = append(m.saveCalls, kind)
	if m.SaveFn != nil {
		return m.SaveFn(kind, points)
	}
	return nil
}

func (m *mockSeriesRepo) Load(_ context.Context, kind models.SeriesKind) ([]models.SeriesPoint, error) {
	if m.LoadFn != nil {
		return m.LoadFn(kind)
	}
	return nil, repository.ErrNotFound
}

func (m *mockSeriesRepo) Kinds(_ context.Context) ([]models.SeriesKind, error) {
	return nil, nil
}

func (m *mockSeriesRepo) Delete(_ context.Context, kind models.SeriesKind) error {
	m.deleteCalls = append(m.deleteCalls, kind)
	return nil
}

func newSimService(runs *mockRunRepo, series *mockSeriesRepo) *SimulationService {
	return NewSimulationService(runs, series, simulation.DefaultConfig())
}

func f64(v float64) *float64 { return &v }

// --- Run tests ---

func TestSimulationService_Run_PersistsFullRun(t *testing.T) {
	runs := &mockRunRepo{}
	svc := newSimService(runs, &mockSeriesRepo{})

	got, err := svc.Run(context.Background(), RunParams{
		Scheduler: "smart",
		Jobs: []JobSpec{
			{Name: "AI Training", PowerKW: 3, DurationMin: 120, Priority: "high"},
		},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.ID == "" {
		t.Fatalf("expected generated run id")
	}
	if got.Scheduler != "smart" {
		t.Fatalf("expected scheduler 'smart', got %q", got.Scheduler)
	}
	if len(got.Steps) != 144 {
		t.Fatalf("expected 144 steps for a 10-minute step day, got %d", len(got.Steps))
	}
	if len(got.Jobs) != 1 || got.Jobs[0].Status != models.StatusCompleted {
		t.Fatalf("expected the job to complete, got %+v", got.Jobs)
	}
	if len(runs.saved) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs.saved))
	}
	if runs.saved[0].ID != got.ID {
		t.Fatalf("saved run id %q does not match returned %q", runs.saved[0].ID, got.ID)
	}
}

func TestSimulationService_Run_EmptySchedulerDefaultsToSmart(t *testing.T) {
	runs := &mockRunRepo{}
	svc := newSimService(runs, &mockSeriesRepo{})

	got, err := svc.Run(context.Background(), RunParams{})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.Scheduler != "smart" {
		t.Fatalf("expected default scheduler 'smart', got %q", got.Scheduler)
	}
}

func TestSimulationService_Run_UnknownScheduler(t *testing.T) {
	runs := &mockRunRepo{}
	svc := newSimService(runs, &mockSeriesRepo{})

	_, err := svc.Run(context.Background(), RunParams{Scheduler: "greedy"})
	if !errors.Is(err, ErrUnknownScheduler) {
		t.Fatalf("expected ErrUnknownScheduler, got %v", err)
	}
	if len(runs.saved) != 0 {
		t.Fatalf("expected no saved runs, got %d", len(runs.saved))
	}
}

func TestSimulationService_Run_InvalidJobRejected(t *testing.T) {
	runs := &mockRunRepo{}
	svc := newSimService(runs, &mockSeriesRepo{})

	_, err := svc.Run(context.Background(), RunParams{
		Jobs: []JobSpec{{Name: "bad", PowerKW: -1, DurationMin: 30, Priority: "low"}},
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(runs.saved) != 0 {
		t.Fatalf("expected no saved runs, got %d", len(runs.saved))
	}
}

func TestSimulationService_Run_OverridesApply(t *testing.T) {
	runs := &mockRunRepo{}
	svc := newSimService(runs, &mockSeriesRepo{})

	step := 60
	got, err := svc.Run(context.Background(), RunParams{
		Scheduler:   "smart",
		StepMinutes: &step,
		PowerCapKW:  f64(2),
		Jobs: []JobSpec{
			{Name: "big", PowerKW: 5, DurationMin: 60, Priority: "high"},
		},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(got.Steps) != 24 {
		t.Fatalf("expected 24 hourly steps, got %d", len(got.Steps))
	}
	// A 5 kW job can never fit under a 2 kW cap.
	if got.Jobs[0].Status != models.StatusPending {
		t.Fatalf("expected job to stay pending under the cap, got %q", got.Jobs[0].Status)
	}
}

func TestSimulationService_Run_UsesUploadedSeries(t *testing.T) {
	// A flat zero-price series makes cost exactly zero regardless of
	// consumption, proving the stored data displaced the static tariff.
	series := &mockSeriesRepo{
		LoadFn: func(kind models.SeriesKind) ([]models.SeriesPoint, error) {
			if kind == models.SeriesPrice {
				return []models.SeriesPoint{{Hour: 0, Value: 0}, {Hour: 24, Value: 0}}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	runs := &mockRunRepo{}
	svc := newSimService(runs, series)

	got, err := svc.Run(context.Background(), RunParams{
		Scheduler: "baseline",
		Jobs:      []JobSpec{{Name: "steady", PowerKW: 2, DurationMin: 600, Priority: "medium"}},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got.Totals.Cost != 0 {
		t.Fatalf("expected zero cost with a zero price series, got %g", got.Totals.Cost)
	}
	if got.Totals.GridKWh <= 0 {
		t.Fatalf("expected grid consumption, got %g", got.Totals.GridKWh)
	}
}

func TestSimulationService_Run_CorruptSeriesFails(t *testing.T) {
	series := &mockSeriesRepo{
		LoadFn: func(kind models.SeriesKind) ([]models.SeriesPoint, error) {
			if kind == models.SeriesSolar {
				return []models.SeriesPoint{{Hour: 30, Value: 1}}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	svc := newSimService(&mockRunRepo{}, series)

	_, err := svc.Run(context.Background(), RunParams{})
	var dfe *simulation.DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected DataFormatError, got %v", err)
	}
}

// --- Compare tests ---

func TestSimulationService_Compare_RunsBothSchedulers(t *testing.T) {
	runs := &mockRunRepo{}
	svc := newSimService(runs, &mockSeriesRepo{})

	deadline := 6.0
	cmp, err := svc.Compare(context.Background(), RunParams{
		Jobs: []JobSpec{
			{Name: "AI Training", PowerKW: 3, DurationMin: 120, Priority: "high", DeadlineHour: &deadline},
			{Name: "Batch Report", PowerKW: 1.5, DurationMin: 240, Priority: "low"},
		},
	})
	if err != nil {
		t.Fatalf("Compare returned error: %v", err)
	}
	if cmp.Baseline.Scheduler != "baseline" || cmp.Smart.Scheduler != "smart" {
		t.Fatalf("unexpected scheduler labels: %q, %q", cmp.Baseline.Scheduler, cmp.Smart.Scheduler)
	}
	if len(runs.saved) != 2 {
		t.Fatalf("expected both runs persisted, got %d", len(runs.saved))
	}

	wantGrid := cmp.Baseline.Totals.EffectiveGridKWh() - cmp.Smart.Totals.EffectiveGridKWh()
	if math.Abs(cmp.GridSavedKWh-wantGrid) > 1e-9 {
		t.Fatalf("grid savings %g do not match run totals %g", cmp.GridSavedKWh, wantGrid)
	}
	wantCost := cmp.Baseline.Totals.Cost - cmp.Smart.Totals.Cost
	if math.Abs(cmp.CostSaved-wantCost) > 1e-9 {
		t.Fatalf("cost savings %g do not match run totals %g", cmp.CostSaved, wantCost)
	}
	// The baseline ignores solar and carries a background load, so the
	// smart scheduler can never draw more effective grid energy here.
	if cmp.GridSavedKWh < 0 {
		t.Fatalf("expected non-negative grid savings, got %g", cmp.GridSavedKWh)
	}
}

func TestSimulationService_Compare_SaveErrorPropagates(t *testing.T) {
	runs := &mockRunRepo{
		SaveFn: func(models.Run) error { return errors.New("disk full") },
	}
	svc := newSimService(runs, &mockSeriesRepo{})

	_, err := svc.Compare(context.Background(), RunParams{})
	if err == nil {
		t.Fatalf("expected save error, got nil")
	}
}

// --- Get / List tests ---

func TestSimulationService_Get_MapsNotFound(t *testing.T) {
	runs := &mockRunRepo{
		GetFn: func(id string) (models.Run, error) { return models.Run{}, repository.ErrNotFound },
	}
	svc := newSimService(runs, &mockSeriesRepo{})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestSimulationService_Get_Success(t *testing.T) {
	want := models.Run{ID: "run-1", Scheduler: "smart"}
	runs := &mockRunRepo{
		GetFn: func(id string) (models.Run, error) {
			if id != "run-1" {
				t.Fatalf("expected id 'run-1', got %q", id)
			}
			return want, nil
		},
	}
	svc := newSimService(runs, &mockSeriesRepo{})

	got, err := svc.Get(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("expected run %q, got %q", want.ID, got.ID)
	}
}

func TestSimulationService_List_PassesLimit(t *testing.T) {
	runs := &mockRunRepo{
		ListFn: func(limit int) ([]models.Run, error) {
			if limit != 5 {
				t.Fatalf("expected limit 5, got %d", limit)
			}
			return []models.Run{{ID: "a"}, {ID: "b"}}, nil
		},
	}
	svc := newSimService(runs, &mockSeriesRepo{})

	got, err := svc.List(context.Background(), 5)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(got))
	}
}
