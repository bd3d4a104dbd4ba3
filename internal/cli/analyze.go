package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/feedback"
	feedio "github.com/matzehuels/feedscope/pkg/io"
	"github.com/matzehuels/feedscope/pkg/pipeline"
)

// analyzeCommand creates the analyze command running the full pipeline.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		flags       cloudFlags
		outDir      string
		noCache     bool
		topN        int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "analyze [dataset.json...]",
		Short: "Aggregate datasets and render their word clouds",
		Long: `Run the full pipeline over one or more datasets.

For each dataset the aggregate report is written to <name>.report.json and
the word cloud to <name>.<format> in the output directory. Datasets are
processed in parallel.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			if cmd.Flags().Changed("top") {
				opts.TopN = topN
			}
			if cmd.Flags().Changed("concurrency") {
				opts.Concurrency = concurrency
			}
			return c.runAnalyze(cmd.Context(), args, opts, outDir, noCache)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "d", ".", "directory for reports and artifacts")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&topN, "top", "n", 20, "number of top keywords in the report")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", pipeline.DefaultConcurrency, "datasets processed in parallel")
	flags.register(cmd)

	return cmd
}

// runAnalyze loads every dataset, runs the batch and writes the outputs.
func (c *CLI) runAnalyze(ctx context.Context, inputs []string, opts pipeline.Options, outDir string, noCache bool) error {
	datasets := make([]*feedback.Dataset, len(inputs))
	for i, input := range inputs {
		d, err := loadDataset(input)
		if err != nil {
			return err
		}
		datasets[i] = d
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Analyzing %d dataset(s)...", len(inputs)))
	spinner.Start()
	prog := newProgress(c.Logger)

	results, err := runner.Batch(ctx, datasets, opts)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return fmt.Errorf("analyze: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Analyzed %d dataset(s)", len(results)))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", outDir)
	}

	for i, res := range results {
		name := trimExt(filepath.Base(inputs[i]))
		if inputs[i] == "-" {
			name = "stdin"
		}
		base := filepath.Join(outDir, name)

		reportPath := base + ".report.json"
		if err := feedio.ExportReport(res.Report, reportPath); err != nil {
			return err
		}
		paths, err := writeArtifacts(artifactWriteParams{
			artifacts: res.Artifacts,
			formats:   opts.Formats,
			base:      base,
		})
		if err != nil {
			return err
		}

		warnAnomalies(c.Logger.With("dataset", inputs[i]), res.Report.Anomalies)
		printSuccess("%s: %d records", inputs[i], res.Stats.Records)
		printStats(res.Stats.Placed, res.Stats.Dropped, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
		printFile(reportPath)
		for _, p := range paths {
			printFile(p)
		}
		c.Logger.Debug("run", "id", res.RunID, "input", inputs[i])
	}
	return nil
}
