package qverify

import (
	"fmt"
	"time"
)

// RunJob represents one execution of a circuit against an Executor.
type RunJob struct {
	ID          string
	Circuit     *Circuit
	Shots       int
	RetryPolicy *RetryPolicy
	Attempt     int
	LastError   error
	StartTime   time.Time
}

// JobOption is a function type for configuring jobs
type JobOption func(*RunJob)

func NewRunJob(circuit *Circuit, shots int, opts ...JobOption) *RunJob {
	name := "job"
	if circuit != nil && circuit.Name != "" {
		name = circuit.Name
	}

	job := &RunJob{
		ID:      fmt.Sprintf("%s-%d", name, time.Now().UnixNano()),
		Circuit: circuit,
		Shots:   shots,
		RetryPolicy: &RetryPolicy{
			MaxAttempts: 1,
			Strategy:    &ExponentialBackoff{Initial: 100 * time.Millisecond},
		},
	}

	for _, opt := range opts {
		opt(job)
	}

	return job
}

// WithRetry configures retry behavior for a job
func WithRetry(attempts int, strategy RetryStrategy) JobOption {
	return func(j *RunJob) {
		j.RetryPolicy = &RetryPolicy{
			MaxAttempts: attempts,
			Strategy:    strategy,
		}
	}
}

// WithJobID overrides the generated job ID.
func WithJobID(id string) JobOption {
	return func(j *RunJob) {
		j.ID = id
	}
}
