package qverify

import (
	"sync"
	"time"
)

// Metrics tracks the cost of a diagnostic run.
type Metrics struct {
	mu               sync.RWMutex
	Attempts         int
	Failures         int
	ExecutionTime    time.Duration
	VerificationTime time.Duration
	LastError        string
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordAttempt(startTime time.Time, err error) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Attempts++
	m.ExecutionTime += duration

	if err != nil {
		m.Failures++
		m.LastError = err.Error()
	}
}

func (m *Metrics) recordVerification(startTime time.Time) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.VerificationTime += duration
}

// ExportMetrics returns a snapshot keyed for report output.
func (m *Metrics) ExportMetrics() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := map[string]interface{}{
		"attempts":        m.Attempts,
		"failures":        m.Failures,
		"execution_ms":    m.ExecutionTime.Milliseconds(),
		"verification_us": m.VerificationTime.Microseconds(),
	}

	if m.LastError != "" {
		out["last_error"] = m.LastError
	}

	return out
}
