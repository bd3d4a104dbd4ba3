package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/insight"
	"github.com/matzehuels/feedscope/pkg/pipeline"
)

// insightsOpts holds the flags of the insights command.
type insightsOpts struct {
	endpoint   string
	output     string
	promptOnly bool
	noCache    bool
	topN       int
	timeout    time.Duration
}

// insightsCommand creates the insights command for generated analyses.
func (c *CLI) insightsCommand() *cobra.Command {
	var opts insightsOpts

	cmd := &cobra.Command{
		Use:   "insights [dataset.json]",
		Short: "Request a generated analysis of a dataset",
		Long: `Request a generated analysis of a dataset from the insight service.

The dataset is aggregated and its summary and top keywords are sent to the
configured endpoint ([insight] endpoint or FEEDSCOPE_INSIGHT_ENDPOINT). The
request is made once; failures are reported without retrying.

With --prompt the analysis prompt is printed instead of calling the service.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.baseOptions()
			if cmd.Flags().Changed("top") {
				popts.TopN = opts.topN
			}
			return c.runInsights(cmd.Context(), args[0], popts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "insight service URL (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the analysis to this file")
	cmd.Flags().BoolVar(&opts.promptOnly, "prompt", false, "print the prompt without calling the service")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.topN, "top", "n", 20, "number of top keywords sent")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (overrides config)")

	return cmd
}

func (c *CLI) runInsights(ctx context.Context, input string, popts pipeline.Options, opts insightsOpts) error {
	d, err := loadDataset(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	rep, err := runner.Aggregate(ctx, d, popts)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}
	req := insight.NewRequest(rep)
	if err := req.Validate(); err != nil {
		return err
	}

	if opts.promptOnly {
		fmt.Fprintln(stdout, req.Prompt(time.Now()))
		return nil
	}

	client, err := c.insightClient(opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Generating analysis...")
	spinner.Start()
	resp, err := client.Generate(ctx, req)
	if err != nil {
		spinner.StopWithError("Insight generation failed")
		return err
	}
	spinner.Stop()
	c.Logger.Debug("insight", "prompt_length", resp.Metadata.PromptLength, "response_length", resp.Metadata.ResponseLength)

	if opts.output != "" {
		if err := errors.ValidatePath(opts.output); err != nil {
			return err
		}
		if err := os.WriteFile(opts.output, []byte(resp.Analysis+"\n"), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", opts.output)
		}
		printSuccess("Analysis written")
		printFile(opts.output)
		return nil
	}
	fmt.Fprintln(stdout, resp.Analysis)
	return nil
}

// insightClient builds the client from config with flag overrides.
func (c *CLI) insightClient(opts insightsOpts) (*insight.Client, error) {
	cfg := *c.settings()
	if opts.endpoint != "" {
		cfg.Insight.Endpoint = opts.endpoint
	}
	if opts.timeout > 0 {
		cfg.Insight.Timeout = opts.timeout.String()
	}
	return cfg.InsightClient()
}
