package qverify

import (
	"errors"
	"fmt"
)

// GateKind names a supported gate.
type GateKind string

const (
	GateH  GateKind = "h"
	GateX  GateKind = "x"
	GateCX GateKind = "cx"
)

// Gate is one operation; for GateCX Qubits is {control, target}.
type Gate struct {
	Kind   GateKind `json:"kind"`
	Qubits []int    `json:"qubits"`
}

var ErrInvalidCircuit = errors.New("invalid circuit")

/*
Circuit is the description handed to an Executor. It carries the measured
qubits and an optional classical register; MeasureAll adds the measurement
layer the way an SDK's measure_all does, on top of any register the circuit
already owns.
*/
type Circuit struct {
	Name          string `json:"name"`
	NumQubits     int    `json:"num_qubits"`
	ClassicalBits int    `json:"classical_bits"`
	Gates         []Gate `json:"gates"`
	Measured      bool   `json:"measured"`
}

func NewCircuit(name string, qubits, clbits int) *Circuit {
	return &Circuit{
		Name:          name,
		NumQubits:     qubits,
		ClassicalBits: clbits,
	}
}

func (c *Circuit) H(q int) *Circuit {
	c.Gates = append(c.Gates, Gate{Kind: GateH, Qubits: []int{q}})
	return c
}

func (c *Circuit) X(q int) *Circuit {
	c.Gates = append(c.Gates, Gate{Kind: GateX, Qubits: []int{q}})
	return c
}

func (c *Circuit) CX(control, target int) *Circuit {
	c.Gates = append(c.Gates, Gate{Kind: GateCX, Qubits: []int{control, target}})
	return c
}

func (c *Circuit) MeasureAll() *Circuit {
	c.Measured = true
	return c
}

// Validate reports the first structural problem in the circuit.
func (c *Circuit) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil circuit", ErrInvalidCircuit)
	}

	if c.NumQubits < 1 {
		return fmt.Errorf("%w: %d qubits", ErrInvalidCircuit, c.NumQubits)
	}

	if c.ClassicalBits < 0 {
		return fmt.Errorf("%w: %d classical bits", ErrInvalidCircuit, c.ClassicalBits)
	}

	for i, g := range c.Gates {
		want := 1
		if g.Kind == GateCX {
			want = 2
		}

		switch g.Kind {
		case GateH, GateX, GateCX:
		default:
			return fmt.Errorf("%w: gate %d: unknown kind %q", ErrInvalidCircuit, i, g.Kind)
		}

		if len(g.Qubits) != want {
			return fmt.Errorf("%w: gate %d (%s) takes %d qubits, got %d", ErrInvalidCircuit, i, g.Kind, want, len(g.Qubits))
		}

		for _, q := range g.Qubits {
			if q < 0 || q >= c.NumQubits {
				return fmt.Errorf("%w: gate %d (%s) qubit %d out of range", ErrInvalidCircuit, i, g.Kind, q)
			}
		}

		if want == 2 && g.Qubits[0] == g.Qubits[1] {
			return fmt.Errorf("%w: gate %d (%s) control equals target", ErrInvalidCircuit, i, g.Kind)
		}
	}

	if !c.Measured {
		return fmt.Errorf("%w: %s has no measurement", ErrInvalidCircuit, c.Name)
	}

	return nil
}

/*
Depth is the length of the critical path. Each gate sits one layer above the
busiest qubit it touches; measure_all places a barrier before measuring, so
the measurement layer sits above the deepest qubit.
*/
func (c *Circuit) Depth() int {
	if c == nil || c.NumQubits < 1 {
		return 0
	}

	layers := make([]int, c.NumQubits)
	for _, g := range c.Gates {
		top := 0
		for _, q := range g.Qubits {
			if q >= 0 && q < len(layers) && layers[q] > top {
				top = layers[q]
			}
		}
		for _, q := range g.Qubits {
			if q >= 0 && q < len(layers) {
				layers[q] = top + 1
			}
		}
	}

	depth := 0
	for _, l := range layers {
		depth = max(depth, l)
	}

	if c.Measured {
		depth++
	}

	return depth
}

// NewBellCircuit builds H(0), CX(0,1) and measures both qubits, with a
// two-bit classical register like the installation check uses.
func NewBellCircuit() *Circuit {
	c := NewGHZCircuit(2, 2)
	c.Name = "bell"
	return c
}

// NewGHZCircuit entangles n qubits with a Hadamard and a CX chain.
func NewGHZCircuit(n, clbits int) *Circuit {
	c := NewCircuit(fmt.Sprintf("ghz-%d", n), n, clbits)
	if n < 1 {
		return c
	}

	c.H(0)
	for q := 1; q < n; q++ {
		c.CX(q-1, q)
	}

	return c.MeasureAll()
}
