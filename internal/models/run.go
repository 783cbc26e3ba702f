package models

import "time"

// JobPower records one dispatched job within a step.
type JobPower struct {
	Name    string  `json:"name"`
	PowerKW float64 `json:"power_kw"`
}

// StepRecord is the per-step snapshot appended to the run log.
// Immutable once written.
type StepRecord struct {
	Hour             float64    `json:"hour"`
	ActiveJobs       []JobPower `json:"active_jobs,omitempty"`
	ActivePowerKW    float64    `json:"active_power_kw"`
	AmbientC         float64    `json:"ambient_c"`
	ServerTempC      float64    `json:"server_temp_c"`
	CoolingKW        float64    `json:"cooling_kw"`
	SolarAvailableKW float64    `json:"solar_available_kw"`
	GridKWh          float64    `json:"grid_kwh"`
	SolarKWh         float64    `json:"solar_kwh"`
	CoolingKWh       float64    `json:"cooling_kwh"`
}

// Totals are the finalized metrics of one run.
type Totals struct {
	GridKWh            float64 `json:"grid_kwh"`    // grid energy for compute
	SolarKWh           float64 `json:"solar_kwh"`   // solar energy for compute
	CoolingKWh         float64 `json:"cooling_kwh"` // cooling energy, all from grid
	CarbonKg           float64 `json:"carbon_kg"`
	Cost               float64 `json:"cost"`
	DeadlineViolations int     `json:"deadline_violations"`
	PenaltyKWh         float64 `json:"penalty_kwh"` // energy-equivalent SLA penalty
}

// TotalGridKWh is all grid consumption: compute plus cooling.
func (t Totals) TotalGridKWh() float64 { return t.GridKWh + t.CoolingKWh }

// EffectiveGridKWh folds SLA penalties into grid consumption, expressed
// as energy units.
func (t Totals) EffectiveGridKWh() float64 { return t.TotalGridKWh() + t.PenaltyKWh }

// TotalKWh is energy consumed from all sources.
func (t Totals) TotalKWh() float64 { return t.GridKWh + t.SolarKWh + t.CoolingKWh }

// SolarSharePct is the percentage of compute load met by solar.
func (t Totals) SolarSharePct() float64 {
	compute := t.GridKWh + t.SolarKWh
	if compute == 0 {
		return 0
	}
	return t.SolarKWh / compute * 100
}

// JobOutcome summarizes one job after a run.
type JobOutcome struct {
	Name         string    `json:"name"`
	Priority     string    `json:"priority"`
	PowerKW      float64   `json:"power_kw"`
	Status       JobStatus `json:"status"`
	StartHour    *float64  `json:"start_hour,omitempty"`
	DeadlineHour *float64  `json:"deadline_hour,omitempty"`
}

// Run is one persisted simulation run.
type Run struct {
	ID        string       `json:"id"`
	Scheduler string       `json:"scheduler"` // baseline | smart
	CreatedAt time.Time    `json:"created_at"`
	Totals    Totals       `json:"totals"`
	Steps     []StepRecord `json:"steps,omitempty"`
	Jobs      []JobOutcome `json:"jobs,omitempty"`
}
