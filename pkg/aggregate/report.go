package aggregate

import (
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// Options configures [Compute].
type Options struct {
	// TopN is the keyword cut-off; <= 0 selects DefaultTopN.
	TopN int
	// Labels classifies sentiments for the summary ratios.
	Labels SentimentLabels
}

// DefaultOptions returns [DefaultTopN] and [DefaultSentimentLabels].
func DefaultOptions() Options {
	return Options{TopN: DefaultTopN, Labels: DefaultSentimentLabels()}
}

// Anomalies tallies the per-record conditions handled without failing.
type Anomalies struct {
	SkippedDates      int `json:"skippedDates"`
	SkippedSentiments int `json:"skippedSentiments"`
	ClampedRatings    int `json:"clampedRatings"`
	SkippedRatings    int `json:"skippedRatings"`
}

// Any reports whether any anomaly was recorded.
func (a Anomalies) Any() bool {
	return a.SkippedDates+a.SkippedSentiments+a.ClampedRatings+a.SkippedRatings > 0
}

// Report bundles every aggregate view of one dataset.
type Report struct {
	Summary     Summary            `json:"summary"`
	Categories  []LabelCount       `json:"categories"`
	Sentiments  SentimentResult    `json:"sentiments"`
	Trend       TrendResult        `json:"trend"`
	Ratings     RatingResult       `json:"ratings"`
	TopKeywords []feedback.Keyword `json:"topKeywords"`
	Anomalies   Anomalies          `json:"anomalies"`
}

// Compute runs all views over a dataset. When the dataset carries no keyword
// list, keywords are merged from the records with [KeywordFrequencies].
func Compute(d feedback.Dataset, opts Options) *Report {
	keywords := d.Keywords
	if len(keywords) == 0 {
		keywords = KeywordFrequencies(d.Feedbacks)
	}

	rep := &Report{
		Summary:     Summarize(d.Feedbacks, opts.Labels),
		Categories:  CategoryCount(d.Feedbacks),
		Sentiments:  SentimentDistribution(d.Feedbacks),
		Trend:       MonthlyDeviceTrend(d.Feedbacks),
		Ratings:     RatingDistributionByDevice(d.Feedbacks),
		TopKeywords: TopKeywords(keywords, opts.TopN),
	}
	rep.Anomalies = Anomalies{
		SkippedDates:      rep.Trend.Skipped,
		SkippedSentiments: rep.Sentiments.Skipped,
		ClampedRatings:    rep.Ratings.Clamped,
		SkippedRatings:    rep.Ratings.Skipped,
	}
	return rep
}
