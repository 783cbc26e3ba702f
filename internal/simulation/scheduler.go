package simulation

import "datahub_sim/internal/models"

// DispatchEntry is one job selected to run this step at its power draw.
type DispatchEntry struct {
	Job     *models.Job
	PowerKW float64
}

// Dispatch is a scheduler's decision for one interval. TotalPowerKW may
// exceed the sum of entry draws when the scheduler accounts for a
// background load.
type Dispatch struct {
	Entries      []DispatchEntry
	TotalPowerKW float64
}

// Scheduler decides, per step, which jobs draw power. Jobs are registered
// before the run starts; duration and lifecycle bookkeeping after dispatch
// belongs to the engine, shared by all scheduler variants.
type Scheduler interface {
	Name() string
	AddJob(j *models.Job)
	Jobs() []*models.Job
	Step(hour, serverTempC, solarAvailableKW float64) Dispatch
}

// schedulable filters jobs that may still be dispatched, preserving
// insertion order.
func schedulable(jobs []*models.Job) []*models.Job {
	out := make([]*models.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Schedulable() {
			out = append(out, j)
		}
	}
	return out
}
