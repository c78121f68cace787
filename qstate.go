package qverify

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
)

// QuantumState is a dense state vector; basis index bit q is qubit q.
type QuantumState struct {
	Vector    []complex128
	NumQubits int
}

// NewQuantumState starts every qubit in |0⟩.
func NewQuantumState(numQubits int) *QuantumState {
	vector := make([]complex128, 1<<numQubits)
	vector[0] = 1
	return &QuantumState{Vector: vector, NumQubits: numQubits}
}

func (qs *QuantumState) Apply(g Gate) error {
	switch g.Kind {
	case GateH:
		bit := 1 << g.Qubits[0]
		for i := range qs.Vector {
			if i&bit == 0 {
				j := i | bit
				qs.Vector[i], qs.Vector[j] = hadamard(qs.Vector[i], qs.Vector[j])
			}
		}
	case GateX:
		bit := 1 << g.Qubits[0]
		for i := range qs.Vector {
			if i&bit == 0 {
				j := i | bit
				qs.Vector[i], qs.Vector[j] = qs.Vector[j], qs.Vector[i]
			}
		}
	case GateCX:
		control, target := 1<<g.Qubits[0], 1<<g.Qubits[1]
		for i := range qs.Vector {
			if i&control != 0 && i&target == 0 {
				j := i | target
				qs.Vector[i], qs.Vector[j] = qs.Vector[j], qs.Vector[i]
			}
		}
	default:
		return fmt.Errorf("%w: unknown gate %q", ErrInvalidCircuit, g.Kind)
	}

	return nil
}

// Probabilities returns the Born-rule distribution over basis states.
func (qs *QuantumState) Probabilities() []float64 {
	probs := make([]float64, len(qs.Vector))
	total := 0.0
	for i, amplitude := range qs.Vector {
		prob := cmplx.Abs(amplitude)
		prob *= prob // Square of the modulus
		probs[i] = prob
		total += prob
	}

	if total > 0 {
		for i := range probs {
			probs[i] /= total
		}
	}

	return probs
}

/*
sample draws one basis index from a cumulative walk over probs. Rounding can
leave the sum a hair under one, so a draw past the end lands on the last
state with non-zero probability.
*/
func sample(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()

	cumulative := 0.0
	last := 0
	for i, p := range probs {
		if p == 0 {
			continue
		}
		last = i
		cumulative += p
		if r < cumulative {
			return i
		}
	}

	return last
}
