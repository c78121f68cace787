package qverify

import "math"

// hadamard transforms the |0⟩, |1⟩ amplitudes of one qubit.
func hadamard(alpha, beta complex128) (complex128, complex128) {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	newAlpha := (alpha + beta) / complex(math.Sqrt(2), 0)
	newBeta := (alpha - beta) / complex(math.Sqrt(2), 0)
	return newAlpha, newBeta
}
