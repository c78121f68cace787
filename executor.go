package qverify

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Executor runs a circuit for a number of shots and returns the counts.
type Executor interface {
	Execute(ctx context.Context, circuit *Circuit, shots int) (FrequencyTable, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, circuit *Circuit, shots int) (FrequencyTable, error)

func (f ExecutorFunc) Execute(ctx context.Context, circuit *Circuit, shots int) (FrequencyTable, error) {
	return f(ctx, circuit, shots)
}

var ErrInvalidShots = errors.New("invalid shot count")

const (
	defaultMaxQubits = 20
	ctxCheckInterval = 1024
)

/*
Simulator is a local state-vector backend. Keys follow the common SDK form:
the measured bits with qubit 0 rightmost and, when the circuit owns a
classical register, that register's bits after a space. Gates never write
the register, so it always reads as zeros.
*/
type Simulator struct {
	mu           sync.Mutex
	rng          *rand.Rand
	readoutError float64
	maxQubits    int
}

type SimulatorOption func(*Simulator)

// WithReadoutError flips each measured bit independently with probability p.
func WithReadoutError(p float64) SimulatorOption {
	return func(s *Simulator) {
		s.readoutError = p
	}
}

func WithMaxQubits(n int) SimulatorOption {
	return func(s *Simulator) {
		s.maxQubits = n
	}
}

// NewSimulator seeds its generator with seed, or from the clock when seed is 0.
func NewSimulator(seed uint64, opts ...SimulatorOption) *Simulator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s := &Simulator{
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxQubits: defaultMaxQubits,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Simulator) Execute(ctx context.Context, circuit *Circuit, shots int) (FrequencyTable, error) {
	if err := circuit.Validate(); err != nil {
		return nil, err
	}

	if shots < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidShots, shots)
	}

	if circuit.NumQubits > s.maxQubits {
		return nil, fmt.Errorf(
			"%w: %d qubits exceeds simulator limit %d", ErrInvalidCircuit, circuit.NumQubits, s.maxQubits,
		)
	}

	errnie.Info("Simulator.Execute - circuit %s, qubits %d, shots %d", circuit.Name, circuit.NumQubits, shots)

	state := NewQuantumState(circuit.NumQubits)
	for _, g := range circuit.Gates {
		if err := state.Apply(g); err != nil {
			return nil, err
		}
	}
	probs := state.Probabilities()

	suffix := ""
	if circuit.ClassicalBits > 0 {
		suffix = " " + strings.Repeat("0", circuit.ClassicalBits)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for shot := 0; shot < shots; shot++ {
		if shot%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		index := s.readout(sample(s.rng, probs), circuit.NumQubits)
		counts[bitstring(index, circuit.NumQubits)+suffix]++
	}

	return FromMap(counts), nil
}

func (s *Simulator) readout(index, n int) int {
	if s.readoutError <= 0 {
		return index
	}

	for q := 0; q < n; q++ {
		if s.rng.Float64() < s.readoutError {
			index ^= 1 << q
		}
	}

	return index
}

// bitstring renders index over n qubits with qubit 0 as the last character.
func bitstring(index, n int) string {
	var b strings.Builder
	b.Grow(n)
	for q := n - 1; q >= 0; q-- {
		if index&(1<<q) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
