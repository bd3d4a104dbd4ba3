package pipeline

import (
	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/cloud"
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// GenerateLayout places keywords as a word cloud. With MaxWords set, only
// the MaxWords heaviest keywords are placed.
func GenerateLayout(keywords []feedback.Keyword, opts Options, m cloud.Measurer) (*cloud.Result, error) {
	words := keywords
	if opts.MaxWords > 0 {
		words = aggregate.TopKeywords(keywords, opts.MaxWords)
	}
	return cloud.Layout(words, opts.CloudOptions(m))
}

// LayoutKeywords returns the keywords a dataset contributes to its word cloud:
// its keyword list, or the merged record keywords when it has none.
func LayoutKeywords(d *feedback.Dataset) []feedback.Keyword {
	if len(d.Keywords) > 0 {
		return d.Keywords
	}
	return aggregate.KeywordFrequencies(d.Feedbacks)
}
