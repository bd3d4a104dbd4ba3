package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/feedback"
)

// browseOpts holds the flags of the browse command.
type browseOpts struct {
	page      int
	perPage   int
	device    string
	sentiment string
	category  string
	plain     bool
}

// browseCommand creates the browse command for paging through records.
func (c *CLI) browseCommand() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse [dataset.json]",
		Short: "Page through the records of a dataset",
		Long: `Page through the records of a dataset interactively.

Records are shown 20 per page by default. Filters narrow the list before
paging. With --plain a single page is printed without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.page, "page", 1, "page to start at")
	cmd.Flags().IntVar(&opts.perPage, "per-page", aggregate.DefaultPerPage, "records per page")
	cmd.Flags().StringVar(&opts.device, "device", "", "only records from this device")
	cmd.Flags().StringVar(&opts.sentiment, "sentiment", "", "only records with this sentiment")
	cmd.Flags().StringVar(&opts.category, "category", "", "only records tagged with this category")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one page and exit")

	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, input string, opts browseOpts) error {
	d, err := loadDataset(input)
	if err != nil {
		return err
	}

	records := filterRecords(d.Feedbacks, opts)
	c.Logger.Debug("browse", "records", len(records), "filtered", len(d.Feedbacks)-len(records))

	if opts.plain {
		page := aggregate.Paginate(records, opts.page, opts.perPage)
		fmt.Fprintln(stdout, recordTable(page, -1))
		printDetail("page %d/%d · %d records", page.Number, page.Pages, len(records))
		return nil
	}

	model := NewRecordBrowserModel(records, opts.perPage, opts.page)
	_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// filterRecords keeps the records matching every non-empty filter.
func filterRecords(records []feedback.Record, opts browseOpts) []feedback.Record {
	if opts.device == "" && opts.sentiment == "" && opts.category == "" {
		return records
	}
	var out []feedback.Record
	for _, r := range records {
		if opts.device != "" && !strings.EqualFold(r.Device, opts.device) {
			continue
		}
		if opts.sentiment != "" && r.Sentiment != opts.sentiment {
			continue
		}
		if opts.category != "" && !slices.Contains(r.Categories(), opts.category) {
			continue
		}
		out = append(out, r)
	}
	return out
}
