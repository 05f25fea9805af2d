package ci

import "github.com/palemoky/chinese-poetry-rhythm/internal/cipai"

// Overlap thresholds: short ci need any overlap, long ci need 0.7, and the
// threshold grows linearly in between.
const (
	shortLength = 14
	longLength  = 100
	maxOverlap  = 0.7
)

// threshold is the clause-break overlap a variant of n characters must
// strictly exceed to be confirmed.
func threshold(n int) float64 {
	switch {
	case n <= shortLength:
		return 0
	case n >= longLength:
		return maxOverlap
	default:
		return maxOverlap * float64(n-shortLength) / float64(longLength-shortLength)
	}
}

// overlap is the Jaccard index of two sets of break positions.
func overlap(a, b []int) float64 {
	set := make(map[int]bool, len(a))
	for _, p := range a {
		set[p] = true
	}
	union := len(set)
	common := 0
	seen := make(map[int]bool, len(b))
	for _, p := range b {
		if seen[p] {
			continue
		}
		seen[p] = true
		if set[p] {
			common++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(common) / float64(union)
}

// candidate is a confirmed variant. Index counts from 1.
type candidate struct {
	index    int
	compiled *cipai.Compiled
	overlap  float64
}

// confirm returns the variants of n characters whose breaks overlap the
// input's breaks above the threshold.
func confirm(variants []*cipai.Compiled, n int, breaks []int) []candidate {
	var out []candidate
	limit := threshold(n)
	for i, v := range variants {
		if v.Length != n {
			continue
		}
		if rate := overlap(breaks, v.Breaks); rate > limit {
			out = append(out, candidate{index: i + 1, compiled: v, overlap: rate})
		}
	}
	return out
}

func bestOverlap(cs []candidate) float64 {
	best := 0.0
	for _, c := range cs {
		best = max(best, c.overlap)
	}
	return best
}
