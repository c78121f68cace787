package qverify

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedOutcome marks a counts key or count that cannot be read.
	ErrMalformedOutcome = errors.New("malformed outcome")
	// ErrDuplicateOutcome marks a key that appears twice in one table.
	ErrDuplicateOutcome = fmt.Errorf("%w: duplicate key", ErrMalformedOutcome)
	// ErrEmptyResult marks a table with no rows or zero total shots.
	ErrEmptyResult = errors.New("empty result")
	// ErrNoExpectedOutcomes marks verification against an empty expected set.
	ErrNoExpectedOutcomes = errors.New("no expected outcomes")
)

/*
Verify checks that every outcome in counts belongs to expected and computes
the share of each row. It has no side effects. Errors mean verification could
not run; a run that produced unexpected outcomes returns a Result with
VerdictFail and a nil error.
*/
func Verify(counts FrequencyTable, expected ExpectedSet) (*Result, error) {
	if len(expected) == 0 {
		return nil, ErrNoExpectedOutcomes
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("%w: no outcomes", ErrEmptyResult)
	}

	var (
		entries    = make([]Entry, 0, len(counts))
		seenKeys   = make(map[string]struct{}, len(counts))
		seenBad    = make(map[Outcome]struct{})
		unexpected []Outcome
		width      int
		total      int
	)

	for _, row := range counts {
		if _, dup := seenKeys[row.Key]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateOutcome, row.Key)
		}
		seenKeys[row.Key] = struct{}{}

		if row.Shots < 0 {
			return nil, fmt.Errorf("%w: key %q has negative count %d", ErrMalformedOutcome, row.Key, row.Shots)
		}

		outcome, err := ExtractOutcome(row.Key)
		if err != nil {
			return nil, err
		}

		if width == 0 {
			width = outcome.Len()
		} else if outcome.Len() != width {
			return nil, fmt.Errorf(
				"%w: key %q has %d bits, expected %d", ErrMalformedOutcome, row.Key, outcome.Len(), width,
			)
		}

		if !expected.Contains(outcome) {
			if _, ok := seenBad[outcome]; !ok {
				seenBad[outcome] = struct{}{}
				unexpected = append(unexpected, outcome)
			}
		}

		total += row.Shots
		entries = append(entries, Entry{Key: row.Key, Outcome: outcome, Shots: row.Shots})
	}

	if total == 0 {
		return nil, fmt.Errorf("%w: total shots is zero", ErrEmptyResult)
	}

	for i := range entries {
		entries[i].Percentage = 100 * float64(entries[i].Shots) / float64(total)
	}

	result := &Result{
		Verdict:    VerdictPass,
		Entries:    entries,
		Unexpected: unexpected,
		TotalShots: total,
	}

	if len(unexpected) > 0 {
		result.Verdict = VerdictFail
	}

	return result, nil
}
