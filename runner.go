package qverify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/errnie"
)

// ErrExecution wraps an executor failure that survived every retry.
var ErrExecution = errors.New("execution failed")

// CircuitSummary is what the report shows about the executed circuit.
type CircuitSummary struct {
	Name          string `json:"name"`
	NumQubits     int    `json:"num_qubits"`
	ClassicalBits int    `json:"classical_bits"`
	Depth         int    `json:"depth"`
}

// Diagnosis is everything one run produced.
type Diagnosis struct {
	JobID    string                 `json:"job_id"`
	Circuit  CircuitSummary         `json:"circuit"`
	Shots    int                    `json:"shots"`
	Expected []Outcome              `json:"expected"`
	Counts   FrequencyTable         `json:"counts"`
	Result   *Result                `json:"result"`
	Metrics  map[string]interface{} `json:"metrics"`
}

// Passed is false for a nil diagnosis or a failed verdict.
func (d *Diagnosis) Passed() bool {
	return d != nil && d.Result.Passed()
}

// Runner drives one diagnostic: execute the circuit, then verify.
type Runner struct {
	executor Executor
	config   *Config
	logger   *log.Logger
	metrics  *Metrics
}

func NewRunner(executor Executor, config *Config, logger *log.Logger) *Runner {
	if config == nil {
		config = NewConfig()
	}

	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		executor: executor,
		config:   config,
		logger:   logger,
		metrics:  NewMetrics(),
	}
}

/*
Diagnose builds the circuit from the config, executes it with retries and
verifies the counts. A returned error means the verifier could not run; a
failed statistical check comes back as a Diagnosis whose Result has
VerdictFail.
*/
func (r *Runner) Diagnose(ctx context.Context) (*Diagnosis, error) {
	expected, err := r.config.ExpectedSet()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	r.metrics = NewMetrics()

	circuit := r.config.Circuit()
	if err := circuit.Validate(); err != nil {
		return nil, err
	}

	r.logger.Info("circuit ready",
		"name", circuit.Name, "qubits", circuit.NumQubits, "depth", circuit.Depth(),
	)

	opts := []JobOption{
		WithRetry(r.config.Retries, &ExponentialBackoff{Initial: r.config.Backoff}),
	}
	if r.config.JobID != "" {
		opts = append(opts, WithJobID(r.config.JobID))
	}

	job := NewRunJob(circuit, r.config.Shots, opts...)

	counts, err := r.execute(ctx, job)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := Verify(counts, expected)
	r.metrics.recordVerification(start)
	if err != nil {
		r.logger.Error("verification could not run", "job", job.ID, "err", err)
		return nil, err
	}

	errnie.Info(
		"Runner.Diagnose - job %s, verdict %s, total %d, unexpected %v",
		job.ID, result.Verdict, result.TotalShots, result.Unexpected,
	)

	if result.Passed() {
		r.logger.Info("verification passed", "job", job.ID, "shots", result.TotalShots)
	} else {
		r.logger.Warn("unexpected outcomes", "job", job.ID, "unexpected", result.Unexpected)
	}

	return &Diagnosis{
		JobID: job.ID,
		Circuit: CircuitSummary{
			Name:          circuit.Name,
			NumQubits:     circuit.NumQubits,
			ClassicalBits: circuit.ClassicalBits,
			Depth:         circuit.Depth(),
		},
		Shots:    job.Shots,
		Expected: expected.Sorted(),
		Counts:   counts,
		Result:   result,
		Metrics:  r.metrics.ExportMetrics(),
	}, nil
}

func (r *Runner) execute(ctx context.Context, job *RunJob) (FrequencyTable, error) {
	if r.executor == nil {
		return nil, fmt.Errorf("%w: no executor configured", ErrExecution)
	}

	job.StartTime = time.Now()
	job.RetryPolicy.Filter = retryable

	var counts FrequencyTable
	err := job.RetryPolicy.Do(ctx, func(attempt int) error {
		job.Attempt = attempt
		if attempt > 0 {
			r.logger.Warn("retrying execution", "job", job.ID, "attempt", attempt+1, "err", job.LastError)
		}

		start := time.Now()
		table, err := r.executor.Execute(ctx, job.Circuit, job.Shots)
		r.metrics.recordAttempt(start, err)
		if err != nil {
			job.LastError = err
			r.logger.Debug("execution attempt failed", "job", job.ID, "attempt", attempt+1, "err", err)
			return err
		}

		counts = table
		return nil
	})

	if err != nil {
		r.logger.Error("execution failed", "job", job.ID, "attempts", job.Attempt+1, "err", err)
		return nil, fmt.Errorf("%w: job %s after %d attempt(s): %w", ErrExecution, job.ID, job.Attempt+1, err)
	}

	r.logger.Debug("execution complete", "job", job.ID, "counts", counts.Map(), "elapsed", time.Since(job.StartTime))
	return counts, nil
}

// Invalid input will not get better on retry.
func retryable(err error) bool {
	return !errors.Is(err, ErrInvalidCircuit) &&
		!errors.Is(err, ErrInvalidShots) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
