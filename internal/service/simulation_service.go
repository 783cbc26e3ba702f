package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"datahub_sim/internal/models"
	"datahub_sim/internal/repository"
	"datahub_sim/internal/simulation"

	"github.com/google/uuid"
)

var (
	ErrUnknownScheduler = errors.New("unknown scheduler: must be baseline or smart")
	ErrRunNotFound      = errors.New("run not found")
)

// JobSpec is the request shape of one workload to schedule.
type JobSpec struct {
	Name         string   `json:"name" binding:"required"`
	PowerKW      float64  `json:"power_kw"`
	DurationMin  int      `json:"duration_min"`
	Priority     string   `json:"priority"`
	DeadlineHour *float64 `json:"deadline_hour,omitempty"`
}

// RunParams configures one run. Nil override fields keep the values from
// the application config.
type RunParams struct {
	Scheduler       string    `json:"scheduler"` // baseline | smart; empty defaults to smart
	Jobs            []JobSpec `json:"jobs"`
	PowerCapKW      *float64  `json:"power_cap_kw,omitempty"`
	StepMinutes     *int      `json:"step_minutes,omitempty"`
	Tariff          *float64  `json:"tariff,omitempty"`
	CarbonIntensity *float64  `json:"carbon_intensity,omitempty"`
}

// Comparison pairs a baseline and a smart run over the same job set and
// conditions. Savings are baseline minus smart, so positive means the
// smart scheduler did better.
type Comparison struct {
	Baseline      models.Run `json:"baseline"`
	Smart         models.Run `json:"smart"`
	GridSavedKWh  float64    `json:"grid_saved_kwh"` // effective grid, penalties included
	CarbonSavedKg float64    `json:"carbon_saved_kg"`
	CostSaved     float64    `json:"cost_saved"`
}

type SimulationService struct {
	runs   repository.RunRepo
	series repository.SeriesRepo
	base   simulation.Config
}

func NewSimulationService(runs repository.RunRepo, series repository.SeriesRepo, base simulation.Config) *SimulationService {
	return &SimulationService{runs: runs, series: series, base: base}
}

// Run executes one simulation, persists it, and returns the full result.
func (s *SimulationService) Run(ctx context.Context, p RunParams) (models.Run, error) {
	cfg, err := s.buildConfig(ctx, p)
	if err != nil {
		return models.Run{}, err
	}
	sched, err := newScheduler(p.Scheduler, cfg)
	if err != nil {
		return models.Run{}, err
	}
	return s.execute(ctx, cfg, sched, p.Jobs)
}

// Compare runs both schedulers over the same jobs and conditions,
// persists both runs, and returns the derived savings. The Scheduler
// field of the params is ignored.
func (s *SimulationService) Compare(ctx context.Context, p RunParams) (Comparison, error) {
	cfg, err := s.buildConfig(ctx, p)
	if err != nil {
		return Comparison{}, err
	}

	baseline, err := s.execute(ctx, cfg, simulation.NewBaselineScheduler(cfg.BackgroundLoadKW), p.Jobs)
	if err != nil {
		return Comparison{}, err
	}
	smart, err := s.execute(ctx, cfg, simulation.NewSmartScheduler(cfg.PowerCapKW, cfg.ThrottleThresholdC), p.Jobs)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		Baseline:      baseline,
		Smart:         smart,
		GridSavedKWh:  baseline.Totals.EffectiveGridKWh() - smart.Totals.EffectiveGridKWh(),
		CarbonSavedKg: baseline.Totals.CarbonKg - smart.Totals.CarbonKg,
		CostSaved:     baseline.Totals.Cost - smart.Totals.Cost,
	}, nil
}

// Get loads one persisted run with its step log.
func (s *SimulationService) Get(ctx context.Context, id string) (models.Run, error) {
	run, err := s.runs.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return models.Run{}, ErrRunNotFound
	}
	return run, err
}

// List returns recent run summaries without step logs.
func (s *SimulationService) List(ctx context.Context, limit int) ([]models.Run, error) {
	return s.runs.List(ctx, limit)
}

func (s *SimulationService) execute(ctx context.Context, cfg simulation.Config, sched simulation.Scheduler, specs []JobSpec) (models.Run, error) {
	jobs, err := buildJobs(specs)
	if err != nil {
		return models.Run{}, err
	}
	for _, j := range jobs {
		sched.AddJob(j)
	}

	res := simulation.NewEngine(cfg, sched).Run()
	run := models.Run{
		ID:        uuid.NewString(),
		Scheduler: sched.Name(),
		CreatedAt: time.Now().UTC(),
		Totals:    res.Totals,
		Steps:     res.Steps,
		Jobs:      res.Jobs,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return models.Run{}, err
	}
	return run, nil
}

// buildConfig layers uploaded series and request overrides over the
// application defaults. Each quantity prefers stored data and falls back
// to its synthetic model only when nothing is uploaded.
func (s *SimulationService) buildConfig(ctx context.Context, p RunParams) (simulation.Config, error) {
	cfg := s.base

	if p.PowerCapKW != nil {
		cfg.PowerCapKW = *p.PowerCapKW
	}
	if p.StepMinutes != nil {
		cfg.StepMinutes = *p.StepMinutes
	}
	if p.Tariff != nil {
		cfg.Tariff = *p.Tariff
	}
	if p.CarbonIntensity != nil {
		cfg.CarbonIntensity = *p.CarbonIntensity
	}

	solar, err := s.hybrid(ctx, models.SeriesSolar, 0, simulation.SolarModel)
	if err != nil {
		return simulation.Config{}, err
	}
	temp, err := s.hybrid(ctx, models.SeriesTemperature, math.Inf(-1), simulation.TemperatureModel)
	if err != nil {
		return simulation.Config{}, err
	}
	price, err := s.hybrid(ctx, models.SeriesPrice, 0, simulation.StaticTariff(cfg.Tariff))
	if err != nil {
		return simulation.Config{}, err
	}
	cfg.Solar, cfg.Temperature, cfg.Price = solar, temp, price

	return cfg, nil
}

func (s *SimulationService) hybrid(ctx context.Context, kind models.SeriesKind, minValue float64, model func(float64) float64) (simulation.TimeSeriesSource, error) {
	fallback := simulation.NewModelSource(model)

	points, err := s.series.Load(ctx, kind)
	if errors.Is(err, repository.ErrNotFound) {
		return simulation.NewHybridSource(nil, fallback), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s series: %w", kind, err)
	}
	ext, err := simulation.NewExternalSource(string(kind), points, minValue)
	if err != nil {
		return nil, err
	}
	return simulation.NewHybridSource(ext, fallback), nil
}

func newScheduler(name string, cfg simulation.Config) (simulation.Scheduler, error) {
	switch name {
	case "", "smart":
		return simulation.NewSmartScheduler(cfg.PowerCapKW, cfg.ThrottleThresholdC), nil
	case "baseline":
		return simulation.NewBaselineScheduler(cfg.BackgroundLoadKW), nil
	default:
		return nil, ErrUnknownScheduler
	}
}

func buildJobs(specs []JobSpec) ([]*models.Job, error) {
	jobs := make([]*models.Job, 0, len(specs))
	for _, sp := range specs {
		j, err := models.NewJob(sp.Name, sp.PowerKW, sp.DurationMin, sp.Priority, sp.DeadlineHour)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
