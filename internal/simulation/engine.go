package simulation

import "datahub_sim/internal/models"

// Simulation horizon: a fixed day, stepped at Config.StepMinutes.
const (
	startHour = 0.0
	endHour   = 24.0
)

// Result pairs finalized totals with the ordered step log and per-job
// outcomes of one run.
type Result struct {
	Totals models.Totals
	Steps  []models.StepRecord
	Jobs   []models.JobOutcome
}

// Engine orchestrates one simulation run: it owns the per-run state,
// drives the scheduler once per step in a strict order, and returns the
// finalized metrics and log. Every run is single-threaded, performs no
// I/O, and is bit-for-bit reproducible given the same configuration and
// sources.
type Engine struct {
	cfg   Config
	sched Scheduler
}

// NewEngine applies source fallbacks and binds the scheduler. The engine
// exclusively owns its run state; construct a fresh engine per run.
func NewEngine(cfg Config, sched Scheduler) *Engine {
	return &Engine{cfg: cfg.withFallbacks(), sched: sched}
}

// Run executes the full horizon and returns the result. It never fails on
// well-formed inputs, including an empty job set.
func (e *Engine) Run() Result {
	dtHours := float64(e.cfg.StepMinutes) / 60.0
	steps := int((endHour - startHour) * 60 / float64(e.cfg.StepMinutes))

	thermal := NewThermalModel(e.cfg.ThermalAlpha, e.cfg.ThermalBeta, e.cfg.Temperature.Value(startHour))
	cooling := NewCoolingModel(e.cfg.CoolingBaseKW, e.cfg.CoolingK1, e.cfg.CoolingK2, e.cfg.CoolingThresholdC)
	metrics := NewMetricsAccumulator(e.cfg.Price, e.cfg.CarbonIntensity, e.cfg.PenaltyKWh)

	log := make([]models.StepRecord, 0, steps)
	lastActiveKW := 0.0

	for i := 0; i < steps; i++ {
		hour := startHour + float64(i)*dtHours

		// 1. environmental lookups
		ambient := e.cfg.Temperature.Value(hour)
		solar := e.cfg.Solar.Value(hour)

		// 2. thermal update from the previous interval's load
		temp := thermal.Update(ambient, lastActiveKW)

		// 3. scheduling decision
		d := e.sched.Step(hour, temp, solar)

		// 4. cooling from the updated temperature and current load
		coolingKW := cooling.PowerKW(temp, d.TotalPowerKW)

		// 5. metrics
		gridKWh, solarKWh, coolingKWh := metrics.RecordStep(hour, d.TotalPowerKW, solar, coolingKW, dtHours)

		rec := models.StepRecord{
			Hour:             hour,
			ActivePowerKW:    d.TotalPowerKW,
			AmbientC:         ambient,
			ServerTempC:      temp,
			CoolingKW:        coolingKW,
			SolarAvailableKW: solar,
			GridKWh:          gridKWh,
			SolarKWh:         solarKWh,
			CoolingKWh:       coolingKWh,
		}
		for _, en := range d.Entries {
			rec.ActiveJobs = append(rec.ActiveJobs, models.JobPower{Name: en.Job.Name, PowerKW: en.PowerKW})
		}
		log = append(log, rec)

		// 6. job bookkeeping for dispatched jobs
		for _, en := range d.Entries {
			en.Job.Start(hour)
			en.Job.RunStep(e.cfg.StepMinutes)
		}

		// 7. deadline check over the whole job set; a violation counts once
		// and permanently excludes the job from dispatch
		for _, j := range e.sched.Jobs() {
			if j.DeadlineMissed(hour) {
				j.Status = models.StatusViolated
				metrics.RecordViolation()
			}
		}

		lastActiveKW = d.TotalPowerKW
	}

	return Result{
		Totals: metrics.Totals(),
		Steps:  log,
		Jobs:   jobOutcomes(e.sched.Jobs()),
	}
}

func jobOutcomes(jobs []*models.Job) []models.JobOutcome {
	out := make([]models.JobOutcome, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, models.JobOutcome{
			Name:         j.Name,
			Priority:     j.Priority,
			PowerKW:      j.PowerKW,
			Status:       j.Status,
			StartHour:    j.StartHour,
			DeadlineHour: j.DeadlineHour,
		})
	}
	return out
}
