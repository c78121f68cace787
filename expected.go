package qverify

import (
	"fmt"
	"slices"
	"strings"
)

// ExpectedSet holds the outcomes consistent with a correct run.
type ExpectedSet map[Outcome]struct{}

// NewExpectedSet validates every outcome and collects them into a set.
func NewExpectedSet(outcomes ...Outcome) (ExpectedSet, error) {
	if len(outcomes) == 0 {
		return nil, ErrNoExpectedOutcomes
	}

	set := make(ExpectedSet, len(outcomes))
	for _, o := range outcomes {
		if err := o.validate(); err != nil {
			return nil, fmt.Errorf("expected outcome %q: %w", o, err)
		}
		if o.Len() != outcomes[0].Len() {
			return nil, fmt.Errorf(
				"expected outcome %q has %d bits, %q has %d", o, o.Len(), outcomes[0], outcomes[0].Len(),
			)
		}
		set[o] = struct{}{}
	}

	return set, nil
}

/*
ParseExpectedSet reads a comma-separated list such as "00,11". Surrounding
whitespace on each element is ignored, empty elements are skipped.
*/
func ParseExpectedSet(list string) (ExpectedSet, error) {
	var outcomes []Outcome
	for _, part := range strings.Split(list, ",") {
		if part = strings.TrimSpace(part); part != "" {
			outcomes = append(outcomes, Outcome(part))
		}
	}

	return NewExpectedSet(outcomes...)
}

// CorrelatedSet is the support of an n-qubit GHZ state: all zeros or all ones.
func CorrelatedSet(n int) ExpectedSet {
	if n < 1 {
		return nil
	}

	return ExpectedSet{
		Outcome(strings.Repeat("0", n)): {},
		Outcome(strings.Repeat("1", n)): {},
	}
}

// Width is the bit length shared by every member, 0 for an empty set.
func (s ExpectedSet) Width() int {
	for o := range s {
		return o.Len()
	}
	return 0
}

func (s ExpectedSet) Contains(o Outcome) bool {
	_, ok := s[o]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s ExpectedSet) Sorted() []Outcome {
	out := make([]Outcome, 0, len(s))
	for o := range s {
		out = append(out, o)
	}
	slices.Sort(out)
	return out
}

func (s ExpectedSet) String() string {
	parts := make([]string, 0, len(s))
	for _, o := range s.Sorted() {
		parts = append(parts, string(o))
	}
	return strings.Join(parts, ",")
}
