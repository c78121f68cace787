package qverify

// Verdict is the outcome of a statistical check that managed to run.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
)

/*
Entry is one reported row: the raw key as the backend produced it, the
extracted qubit outcome, its count and its share of the total shots.
*/
type Entry struct {
	Key        string  `json:"key"`
	Outcome    Outcome `json:"outcome"`
	Shots      int     `json:"shots"`
	Percentage float64 `json:"percentage"`
}

// Result is the report produced by Verify.
type Result struct {
	Verdict    Verdict   `json:"verdict"`
	Entries    []Entry   `json:"entries"`
	Unexpected []Outcome `json:"unexpected,omitempty"`
	TotalShots int       `json:"total_shots"`
}

func (r *Result) Passed() bool {
	return r != nil && r.Verdict == VerdictPass
}

// Outcomes lists the extracted outcome of every entry, in report order.
func (r *Result) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, e.Outcome)
	}
	return out
}
