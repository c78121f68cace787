package qverify

import (
	"fmt"
	"strings"
	"unicode"
)

// Outcome is the qubit-state portion of a measured key, one character per
// measured qubit with qubit 0 rightmost.
type Outcome string

// Len returns the number of measured qubits the outcome covers.
func (o Outcome) Len() int {
	return len(o)
}

/*
ExtractOutcome takes the leading whitespace-delimited token of a counts key.
Backends that attach a classical register emit keys such as "00 00"; the
trailing register annotation is discarded. A key without a separator is used
whole.
*/
func ExtractOutcome(key string) (Outcome, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty key %q", ErrMalformedOutcome, key)
	}

	token := trimmed
	if idx := strings.IndexFunc(trimmed, unicode.IsSpace); idx >= 0 {
		token = trimmed[:idx]
	}

	outcome := Outcome(token)
	if err := outcome.validate(); err != nil {
		return "", fmt.Errorf("%w: key %q: %v", ErrMalformedOutcome, key, err)
	}

	return outcome, nil
}

func (o Outcome) validate() error {
	if o == "" {
		return fmt.Errorf("empty bitstring")
	}

	for i, r := range o {
		if r != '0' && r != '1' {
			return fmt.Errorf("invalid bit %q at position %d", r, i)
		}
	}

	return nil
}
