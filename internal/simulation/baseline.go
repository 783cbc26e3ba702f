package simulation

import "datahub_sim/internal/models"

// BaselineScheduler is the naive reference point: it dispatches every
// schedulable job in arrival order, on top of a fixed background load,
// ignoring temperature, solar, and the power cap entirely. Exceeding the
// cap is expected behavior here, not an error: the comparison exists to
// show what unconstrained scheduling costs.
type BaselineScheduler struct {
	jobs         []*models.Job
	backgroundKW float64
}

func NewBaselineScheduler(backgroundKW float64) *BaselineScheduler {
	return &BaselineScheduler{backgroundKW: backgroundKW}
}

func (s *BaselineScheduler) Name() string { return "baseline" }

func (s *BaselineScheduler) AddJob(j *models.Job) { s.jobs = append(s.jobs, j) }

func (s *BaselineScheduler) Jobs() []*models.Job { return s.jobs }

func (s *BaselineScheduler) Step(hour, serverTempC, solarAvailableKW float64) Dispatch {
	d := Dispatch{TotalPowerKW: s.backgroundKW}
	for _, j := range schedulable(s.jobs) {
		d.Entries = append(d.Entries, DispatchEntry{Job: j, PowerKW: j.PowerKW})
		d.TotalPowerKW += j.PowerKW
	}
	return d
}
