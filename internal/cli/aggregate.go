package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/feedback"
	feedio "github.com/matzehuels/feedscope/pkg/io"
	"github.com/matzehuels/feedscope/pkg/pipeline"
)

// aggregateCommand creates the aggregate command for computing report views.
func (c *CLI) aggregateCommand() *cobra.Command {
	var (
		output  string
		asJSON  bool
		noCache bool
		topN    int
	)

	cmd := &cobra.Command{
		Use:   "aggregate [dataset.json]",
		Short: "Compute category, sentiment, trend and rating views of a dataset",
		Long: `Compute the aggregate report of a feedback dataset.

The report holds the category distribution, sentiment distribution, monthly
trend by device, rating distribution by device, the top keywords and a summary
(total, average rating, sentiment ratios). Records with malformed dates or
out-of-range ratings are counted and reported as warnings.

Without --output or --json the report is printed as tables. Use "-" to read
the dataset from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if cmd.Flags().Changed("top") {
				opts.TopN = topN
			}
			return c.runAggregate(cmd.Context(), args[0], opts, output, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report as JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&topN, "top", "n", aggregate.DefaultTopN, "number of top keywords")

	return cmd
}

// runAggregate loads the dataset and reports its aggregate views.
func (c *CLI) runAggregate(ctx context.Context, input string, opts pipeline.Options, output string, asJSON, noCache bool) error {
	d, err := loadDataset(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	rep, cacheHit, err := runner.AggregateWithCacheInfo(ctx, d, opts)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	prog.done(fmt.Sprintf("Aggregated %d records", rep.Summary.TotalCount))
	c.Logger.Debug("report", "cached", cacheHit, "categories", len(rep.Categories))
	warnAnomalies(c.Logger, rep.Anomalies)

	switch {
	case output != "":
		if err := feedio.ExportReport(rep, output); err != nil {
			return err
		}
		printSuccess("Report written")
		printFile(output)
		if input != "-" {
			printNewline()
			printNextStep("Render its keywords", "feedscope cloud "+input)
		}
	case asJSON:
		return feedio.WriteReport(rep, stdout)
	default:
		printReport(rep)
	}
	return nil
}

// loadDataset reads a dataset file, or stdin for "-".
func loadDataset(input string) (*feedback.Dataset, error) {
	if input == "-" {
		return feedio.ReadDataset(os.Stdin)
	}
	d, err := feedio.ImportDataset(input)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", input, err)
	}
	return d, nil
}

// warnAnomalies logs the per-record conditions that were handled without
// failing.
func warnAnomalies(l *log.Logger, a aggregate.Anomalies) {
	if a.SkippedDates > 0 {
		l.Warn("records with malformed dates excluded from the trend", "count", a.SkippedDates)
	}
	if a.SkippedSentiments > 0 {
		l.Warn("records without sentiment excluded from the distribution", "count", a.SkippedSentiments)
	}
	if a.ClampedRatings > 0 {
		l.Warn("ratings outside 1-5 clamped", "count", a.ClampedRatings)
	}
	if a.SkippedRatings > 0 {
		l.Warn("non-finite ratings skipped", "count", a.SkippedRatings)
	}
}

// =============================================================================
// Report Tables
// =============================================================================

const barWidth = 20

// printReport prints every view of rep as a table.
func printReport(rep *aggregate.Report) {
	s := rep.Summary
	fmt.Fprintln(stdout, StyleTitle.Render("Summary"))
	printKeyValue("Records", strconv.Itoa(s.TotalCount))
	printKeyValue("Average rating", fmt.Sprintf("%.2f", s.AverageRating))
	printKeyValue("Positive", percent(s.PositiveRatio*100))
	printKeyValue("Neutral", percent(s.NeutralRatio*100))
	printKeyValue("Negative", percent(s.NegativeRatio*100))
	printNewline()

	printTable("Star ratings", []string{"Stars", "Count", "Share", ""}, starRows(s), 1, 2)
	printTable("Categories", []string{"Category", "Count", ""}, labelRows(rep.Categories), 1)
	printTable("Sentiments", []string{"Sentiment", "Count", ""}, labelRows(rep.Sentiments.Counts), 1)
	printTable("Ratings by device", ratingHeaders(), ratingRows(rep.Ratings), 1, 2, 3, 4, 5, 6)

	headers, rows := trendTable(rep.Trend)
	numeric := make([]int, 0, len(headers)-1)
	for i := 1; i < len(headers); i++ {
		numeric = append(numeric, i)
	}
	printTable("Monthly trend", headers, rows, numeric...)
	printTable("Top keywords", []string{"Keyword", "Count"}, keywordRows(rep.TopKeywords), 1)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func starRows(s aggregate.Summary) [][]string {
	rows := make([][]string, 0, aggregate.MaxStars)
	for star := aggregate.MaxStars; star >= aggregate.MinStars; star-- {
		n := s.Stars.Get(star)
		rows = append(rows, []string{
			fmt.Sprintf("%d★", star),
			strconv.Itoa(n),
			percent(s.StarPercent(star)),
			bar(n, s.TotalCount, barWidth),
		})
	}
	return rows
}

func labelRows(entries []aggregate.LabelCount) [][]string {
	peak := 0
	for _, e := range entries {
		peak = max(peak, e.Count)
	}
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.Label, strconv.Itoa(e.Count), bar(e.Count, peak, barWidth)}
	}
	return rows
}

func ratingHeaders() []string {
	headers := []string{"Device"}
	for star := aggregate.MinStars; star <= aggregate.MaxStars; star++ {
		headers = append(headers, fmt.Sprintf("%d★", star))
	}
	return append(headers, "Total")
}

func ratingRows(r aggregate.RatingResult) [][]string {
	rows := make([][]string, len(r.Devices))
	for i, d := range r.Devices {
		row := []string{d.Device}
		for star := aggregate.MinStars; star <= aggregate.MaxStars; star++ {
			row = append(row, strconv.Itoa(d.Stars.Get(star)))
		}
		rows[i] = append(row, strconv.Itoa(d.Total))
	}
	return rows
}

// trendTable lays the trend out with one column per device.
func trendTable(t aggregate.TrendResult) ([]string, [][]string) {
	devices := t.Devices()
	headers := append([]string{"Month"}, devices...)
	headers = append(headers, "Total")

	rows := make([][]string, len(t.Months))
	for i, m := range t.Months {
		counts := aggregate.Counts(m.Devices)
		row := []string{m.Month}
		for _, d := range devices {
			row = append(row, strconv.Itoa(counts[d]))
		}
		rows[i] = append(row, strconv.Itoa(m.Total))
	}
	return headers, rows
}

func keywordRows(keywords []feedback.Keyword) [][]string {
	rows := make([][]string, len(keywords))
	for i, k := range keywords {
		rows[i] = []string{k.Word, strconv.Itoa(k.Count)}
	}
	return rows
}
