package qverify

import (
	"maps"
	"slices"
)

// Count is one row of a frequency table.
type Count struct {
	Key   string `json:"key"`
	Shots int    `json:"shots"`
}

/*
FrequencyTable is the aggregated counts of a run. It is a slice rather than a
map so the iteration order is part of the value and stays stable for a given
input.
*/
type FrequencyTable []Count

// FromMap converts backend-style counts, ordering keys lexicographically.
func FromMap(counts map[string]int) FrequencyTable {
	table := make(FrequencyTable, 0, len(counts))
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		table = append(table, Count{Key: key, Shots: counts[key]})
	}
	return table
}

// Total sums the shots of every row.
func (ft FrequencyTable) Total() int {
	total := 0
	for _, c := range ft {
		total += c.Shots
	}
	return total
}

// Map folds the table back into backend-style counts.
func (ft FrequencyTable) Map() map[string]int {
	m := make(map[string]int, len(ft))
	for _, c := range ft {
		m[c.Key] += c.Shots
	}
	return m
}
