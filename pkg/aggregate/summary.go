package aggregate

import (
	"slices"
	"strings"

	"github.com/matzehuels/feedscope/pkg/feedback"
)

// SentimentLabels lists the labels the upstream classifier uses for each
// sentiment polarity. Matching is exact after trimming.
type SentimentLabels struct {
	Positive []string `json:"positive" toml:"positive"`
	Neutral  []string `json:"neutral" toml:"neutral"`
	Negative []string `json:"negative" toml:"negative"`
}

// DefaultSentimentLabels accepts English and Traditional Chinese labels.
func DefaultSentimentLabels() SentimentLabels {
	return SentimentLabels{
		Positive: []string{"positive", "正面"},
		Neutral:  []string{"neutral", "中性"},
		Negative: []string{"negative", "負面"},
	}
}

// Polarity classifies a sentiment label. It returns "" for unknown labels.
func (l SentimentLabels) Polarity(label string) string {
	label = strings.TrimSpace(label)
	switch {
	case slices.Contains(l.Positive, label):
		return "positive"
	case slices.Contains(l.Neutral, label):
		return "neutral"
	case slices.Contains(l.Negative, label):
		return "negative"
	}
	return ""
}

// Summary holds the headline figures of a dataset.
type Summary struct {
	TotalCount    int     `json:"totalCount"`
	AverageRating float64 `json:"averageRating"`
	PositiveRatio float64 `json:"positiveRatio"`
	NeutralRatio  float64 `json:"neutralRatio"`
	NegativeRatio float64 `json:"negativeRatio"`
	// Stars is the overall star histogram across all devices.
	Stars Stars `json:"stars"`
	// Clamped counts ratings outside 1–5 folded into bucket 1 or 5.
	Clamped int `json:"clamped,omitempty"`
}

// StarPercent returns the share of all records in the given star bucket, in percent.
func (s Summary) StarPercent(star int) float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.Stars.Get(star)) / float64(s.TotalCount) * 100
}

// Summarize computes the headline figures. Ratios are fractions of all
// records; the average covers finite ratings only. Empty input yields zeros.
func Summarize(records []feedback.Record, labels SentimentLabels) Summary {
	s := Summary{TotalCount: len(records)}
	if len(records) == 0 {
		return s
	}

	var sum float64
	var rated, pos, neu, neg int
	for _, r := range records {
		if star, clamped, ok := StarBucket(r.Rating); ok {
			sum += r.Rating
			rated++
			s.Stars[star-1]++
			if clamped {
				s.Clamped++
			}
		}
		switch labels.Polarity(r.Sentiment) {
		case "positive":
			pos++
		case "neutral":
			neu++
		case "negative":
			neg++
		}
	}

	if rated > 0 {
		s.AverageRating = sum / float64(rated)
	}
	total := float64(len(records))
	s.PositiveRatio = float64(pos) / total
	s.NeutralRatio = float64(neu) / total
	s.NegativeRatio = float64(neg) / total
	return s
}
