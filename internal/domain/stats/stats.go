// Package stats computes the grouped aggregates that feed the dashboard charts.
// Every function is pure: the same input yields the same, identically ordered output.
package stats

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Count pairs a category label with the number of records carrying it.
type Count struct {
	Label string `json:"label"`
	N     int    `json:"count"`
}

// Total sums the counts.
func Total(counts []Count) int {
	n := 0
	for _, c := range counts {
		n += c.N
	}
	return n
}

// ValueCounts counts each non-empty value, ordered by count descending and
// then by label so ties are stable across runs.
func ValueCounts(values []string) []Count {
	seen := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		seen[v]++
	}
	out := make([]Count, 0, len(seen))
	for label, n := range seen {
		out = append(out, Count{Label: label, N: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out
}

// nanMean is the arithmetic mean of the non-NaN values, or NaN when none remain.
func nanMean(values []float64) float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return math.NaN()
	}
	return stat.Mean(kept, nil)
}
