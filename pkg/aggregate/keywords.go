package aggregate

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

// DefaultTopN is the number of keywords kept by [TopKeywords] when n <= 0.
const DefaultTopN = 20

// TopKeywords returns the n most frequent keywords. The input is stable-sorted
// by count descending, so ties keep their input order, and the first
// min(n, len(keywords)) entries are returned unchanged. Duplicate words are
// not merged. The input slice is not modified.
func TopKeywords(keywords []feedback.Keyword, n int) []feedback.Keyword {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := slices.Clone(keywords)
	slices.SortStableFunc(sorted, func(a, b feedback.Keyword) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		return []feedback.Keyword{}
	}
	return sorted
}

// KeywordFrequencies merges the per-record keyword lists into one keyword
// list, in first-seen order. Words are trimmed and compared exactly; empty
// words are ignored. It is used when a dataset carries no keyword list of its
// own.
func KeywordFrequencies(records []feedback.Record) []feedback.Keyword {
	c := newCounter()
	for _, r := range records {
		for _, w := range r.Keywords {
			if w = strings.TrimSpace(w); w != "" {
				c.add(w)
			}
		}
	}
	entries := c.result()
	out := make([]feedback.Keyword, len(entries))
	for i, e := range entries {
		out[i] = feedback.Keyword{Word: e.Label, Count: e.Count}
	}
	return out
}
