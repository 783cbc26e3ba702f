package models

import (
	"fmt"
	"strings"
)

// JobStatus is the lifecycle state of a job within a single run.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusViolated  JobStatus = "violated"
)

// Priority levels, normalized to lowercase on construction.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ValidationError reports a malformed job record. Raised at construction,
// before a run starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid job field %q: %s", e.Field, e.Reason)
}

// Job is one schedulable unit of compute work. A job occupies exactly one
// status at a time: pending→running→completed, or →violated once its
// deadline passes with time still remaining.
type Job struct {
	Name         string    `json:"name"`
	PowerKW      float64   `json:"power_kw"`
	DurationMin  int       `json:"duration_min"`
	RemainingMin int       `json:"remaining_min"`
	Priority     string    `json:"priority"`
	DeadlineHour *float64  `json:"deadline_hour,omitempty"`
	Status       JobStatus `json:"status"`
	StartHour    *float64  `json:"start_hour,omitempty"` // first dispatch, nil if never ran
}

// NewJob validates a job record and returns it in the pending state.
// Priority is accepted case-insensitively and normalized to lowercase.
func NewJob(name string, powerKW float64, durationMin int, priority string, deadlineHour *float64) (*Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if powerKW < 0 {
		return nil, &ValidationError{Field: "power_kw", Reason: fmt.Sprintf("must be >= 0, got %g", powerKW)}
	}
	if durationMin <= 0 {
		return nil, &ValidationError{Field: "duration_min", Reason: fmt.Sprintf("must be > 0, got %d", durationMin)}
	}
	p := strings.ToLower(strings.TrimSpace(priority))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return nil, &ValidationError{Field: "priority", Reason: fmt.Sprintf("must be high, medium, or low, got %q", priority)}
	}
	if deadlineHour != nil && (*deadlineHour < 0 || *deadlineHour > 24) {
		return nil, &ValidationError{Field: "deadline_hour", Reason: fmt.Sprintf("must be within [0,24], got %g", *deadlineHour)}
	}
	return &Job{
		Name:         name,
		PowerKW:      powerKW,
		DurationMin:  durationMin,
		RemainingMin: durationMin,
		Priority:     p,
		DeadlineHour: deadlineHour,
		Status:       StatusPending,
	}, nil
}

// Clone returns an independent pending copy, so the same job list can feed
// several schedulers without sharing mutable state.
func (j *Job) Clone() *Job {
	c := *j
	c.RemainingMin = c.DurationMin
	c.Status = StatusPending
	c.StartHour = nil
	if j.DeadlineHour != nil {
		d := *j.DeadlineHour
		c.DeadlineHour = &d
	}
	return &c
}

// Start marks a pending job as running and records its first dispatch hour.
func (j *Job) Start(hour float64) {
	if j.Status == StatusPending {
		j.Status = StatusRunning
		if j.StartHour == nil {
			h := hour
			j.StartHour = &h
		}
	}
}

// RunStep consumes stepMin minutes of remaining work and completes the job
// when nothing is left.
func (j *Job) RunStep(stepMin int) {
	if j.Status != StatusRunning {
		return
	}
	j.RemainingMin -= stepMin
	if j.RemainingMin <= 0 {
		j.RemainingMin = 0
		j.Status = StatusCompleted
	}
}

// Schedulable reports whether the job may still be dispatched.
func (j *Job) Schedulable() bool {
	return (j.Status == StatusPending || j.Status == StatusRunning) && j.RemainingMin > 0
}

// DeadlineMissed reports whether hour has strictly passed the job's
// deadline while it is still incomplete.
func (j *Job) DeadlineMissed(hour float64) bool {
	if j.DeadlineHour == nil {
		return false
	}
	if j.Status == StatusCompleted || j.Status == StatusViolated {
		return false
	}
	return hour > *j.DeadlineHour && j.RemainingMin > 0
}
