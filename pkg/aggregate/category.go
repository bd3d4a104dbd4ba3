package aggregate

import (
	"cmp"
	"slices"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

// CategoryCount counts every category label across records. A record tagged
// "UI,Performance" contributes once to each label, so the total may exceed
// len(records). Labels are compared exactly, without case folding.
//
// The result is sorted by count descending; equal counts keep first-seen order.
func CategoryCount(records []feedback.Record) []LabelCount {
	c := newCounter()
	for _, r := range records {
		for _, label := range r.Categories() {
			c.add(label)
		}
	}
	out := c.result()
	slices.SortStableFunc(out, func(a, b LabelCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
