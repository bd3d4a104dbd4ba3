package aggregate

import "github.com/matzehuels/feedscope/pkg/feedback"

// SentimentResult is the sentiment distribution of a dataset.
type SentimentResult struct {
	// Counts holds one entry per label in first-seen order.
	Counts []LabelCount `json:"counts"`
	// Skipped is the number of records with an empty sentiment.
	Skipped int `json:"skipped,omitempty"`
}

// Map returns the distribution as an unordered mapping.
func (s SentimentResult) Map() map[string]int { return Counts(s.Counts) }

// SentimentDistribution counts each record's sentiment label as given.
// Labels are not coerced: "positive" and "Positive" are distinct.
// Sum(Counts) + Skipped always equals len(records).
func SentimentDistribution(records []feedback.Record) SentimentResult {
	c := newCounter()
	skipped := 0
	for _, r := range records {
		if r.Sentiment == "" {
			skipped++
			continue
		}
		c.add(r.Sentiment)
	}
	return SentimentResult{Counts: c.result(), Skipped: skipped}
}
