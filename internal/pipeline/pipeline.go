// Package pipeline runs the ETL stages in order with per-stage state
// tracking. Stages communicate through the artifacts they leave on disk,
// so the runner only sequences them and stops at the first failure.
package pipeline

import (
	"context"
	"sync"
	"time"
)

// StepStatus is the lifecycle state of a single stage.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// Step is one runnable stage of the pipeline.
type Step interface {
	// ID returns the stable identifier used in logs and state.
	ID() string
	// Name returns the human-readable stage name.
	Name() string
	// Run executes the stage. A non-nil error fails the whole run.
	Run(ctx context.Context) error
}

// StepFunc adapts a plain function into a Step.
type StepFunc struct {
	StepID   string
	StepName string
	Fn       func(ctx context.Context) error
}

// NewStep builds a function-backed step.
func NewStep(id, name string, fn func(ctx context.Context) error) StepFunc {
	return StepFunc{StepID: id, StepName: name, Fn: fn}
}

func (s StepFunc) ID() string   { return s.StepID }
func (s StepFunc) Name() string { return s.StepName }

func (s StepFunc) Run(ctx context.Context) error { return s.Fn(ctx) }

// StepState tracks the execution of one step.
type StepState struct {
	mu sync.RWMutex

	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Error     error      `json:"error,omitempty"`
}

// NewStepState creates a pending state for a step.
func NewStepState(id, name string) *StepState {
	return &StepState{ID: id, Name: name, Status: StepStatusPending}
}

// Start marks the step active.
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = StepStatusActive
	s.StartTime = time.Now()
}

// Complete marks the step completed.
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
}

// Fail marks the step failed.
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Error = err
}

// Skip marks the step skipped without running it.
func (s *StepState) Skip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusSkipped
}

// Duration returns how long the step ran, or has been running.
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.StartTime.IsZero() {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}

// CurrentStatus returns the status under the read lock.
func (s *StepState) CurrentStatus() StepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// RunStatus is the overall state of one pipeline run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCancelled RunStatus = "cancelled"
)

// RunState is the complete state of one pipeline run.
type RunState struct {
	mu sync.RWMutex

	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Error     error      `json:"error,omitempty"`

	// Order preserves execution order; Steps indexes by step ID.
	Order []string              `json:"order"`
	Steps map[string]*StepState `json:"steps"`
}

// NewRunState creates a pending run holding one state per step.
func NewRunState(id string, steps []Step) *RunState {
	rs := &RunState{
		ID:     id,
		Status: RunStatusPending,
		Steps:  make(map[string]*StepState, len(steps)),
	}
	for _, step := range steps {
		rs.Order = append(rs.Order, step.ID())
		rs.Steps[step.ID()] = NewStepState(step.ID(), step.Name())
	}
	return rs
}

// Start marks the run as running.
func (r *RunState) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = RunStatusRunning
	r.StartTime = time.Now()
}

// Complete marks the run as completed.
func (r *RunState) Complete() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusCompleted
}

// Fail marks the run as failed.
func (r *RunState) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusFailed
	r.Error = err
}

// Cancel marks the run as cancelled.
func (r *RunState) Cancel(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.EndTime = &now
	r.Status = RunStatusCancelled
	r.Error = err
}

// StepState returns the state of one step.
func (r *RunState) StepState(id string) *StepState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.Steps[id]
}

// Duration returns the total run time so far.
func (r *RunState) Duration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.StartTime.IsZero() {
		return 0
	}
	if r.EndTime != nil {
		return r.EndTime.Sub(r.StartTime)
	}
	return time.Since(r.StartTime)
}

// HasFailures reports whether any step failed.
func (r *RunState) HasFailures() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.Steps {
		if s.CurrentStatus() == StepStatusFailed {
			return true
		}
	}
	return false
}
