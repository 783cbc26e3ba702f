package simulation

import (
	"math"
	"sort"

	"datahub_sim/internal/models"
)

// SmartScheduler optimizes for SLA compliance, solar utilization, and
// thermal headroom under a hard power cap.
//
// Candidate ordering is total and deterministic: priority (high > medium
// > low), then earliest deadline (absent deadline sorts last), then lower
// power draw, then job name. Within a priority class, candidates whose
// draw fits the remaining solar budget dispatch before those that don't.
// When the server temperature exceeds the throttle threshold, only
// high-priority jobs may start or continue.
type SmartScheduler struct {
	jobs       []*models.Job
	capKW      float64
	throttleC  float64
}

func NewSmartScheduler(capKW, throttleC float64) *SmartScheduler {
	return &SmartScheduler{capKW: capKW, throttleC: throttleC}
}

func (s *SmartScheduler) Name() string { return "smart" }

func (s *SmartScheduler) AddJob(j *models.Job) { s.jobs = append(s.jobs, j) }

func (s *SmartScheduler) Jobs() []*models.Job { return s.jobs }

func priorityRank(p string) int {
	switch p {
	case models.PriorityHigh:
		return 0
	case models.PriorityMedium:
		return 1
	case models.PriorityLow:
		return 2
	}
	return 3
}

func deadlineOrInf(j *models.Job) float64 {
	if j.DeadlineHour == nil {
		return math.Inf(1)
	}
	return *j.DeadlineHour
}

func (s *SmartScheduler) Step(hour, serverTempC, solarAvailableKW float64) Dispatch {
	pool := schedulable(s.jobs)
	sort.SliceStable(pool, func(a, b int) bool {
		ja, jb := pool[a], pool[b]
		if ra, rb := priorityRank(ja.Priority), priorityRank(jb.Priority); ra != rb {
			return ra < rb
		}
		if da, db := deadlineOrInf(ja), deadlineOrInf(jb); da != db {
			return da < db
		}
		if ja.PowerKW != jb.PowerKW {
			return ja.PowerKW < jb.PowerKW
		}
		return ja.Name < jb.Name
	})

	var d Dispatch
	solarLeft := solarAvailableKW
	throttling := serverTempC > s.throttleC

	take := func(j *models.Job) {
		d.Entries = append(d.Entries, DispatchEntry{Job: j, PowerKW: j.PowerKW})
		d.TotalPowerKW += j.PowerKW
		solarLeft -= j.PowerKW
		if solarLeft < 0 {
			solarLeft = 0
		}
	}

	for _, rank := range []string{models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
		if throttling && rank != models.PriorityHigh {
			continue
		}
		var deferred []*models.Job
		for _, j := range pool {
			if j.Priority != rank {
				continue
			}
			if j.PowerKW > solarLeft {
				deferred = append(deferred, j)
				continue
			}
			if d.TotalPowerKW+j.PowerKW <= s.capKW {
				take(j)
			}
		}
		for _, j := range deferred {
			if d.TotalPowerKW+j.PowerKW <= s.capKW {
				take(j)
			}
		}
	}
	return d
}
