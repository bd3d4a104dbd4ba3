package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/feedscope/pkg/feedback"
	feedio "github.com/matzehuels/feedscope/pkg/io"
	"github.com/matzehuels/feedscope/pkg/pipeline"
)

// cloudFlags holds the layout and render flags shared by cloud and analyze.
type cloudFlags struct {
	formats     string
	width       float64
	height      float64
	padding     float64
	maxAttempts int
	maxWords    int
	noBounds    bool
	measurer    string
	background  string
	fontFamily  string
	scale       float64
}

func (f *cloudFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Float64Var(&f.padding, "padding", pipeline.DefaultPadding, "spacing around each word")
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", 0, "spiral steps per word (0 derives it from the canvas)")
	cmd.Flags().IntVar(&f.maxWords, "max-words", 0, "place only the heaviest N keywords (0 places all)")
	cmd.Flags().BoolVar(&f.noBounds, "no-bounds", false, "allow words to extend past the canvas edge")
	cmd.Flags().StringVar(&f.measurer, "measurer", pipeline.DefaultMeasurer, "text measurer: font (default), estimate")
	cmd.Flags().StringVar(&f.background, "background", "", "SVG background color")
	cmd.Flags().StringVar(&f.fontFamily, "font-family", "", "SVG font family")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultPNGScale, "PNG scale factor")
}

// apply copies the flags the user set onto opts, leaving config values
// for the rest.
func (f *cloudFlags) apply(cmd *cobra.Command, opts *pipeline.Options) error {
	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("padding") {
		p := f.padding
		opts.Padding = &p
	}
	if changed("max-attempts") {
		opts.MaxAttempts = f.maxAttempts
	}
	if changed("max-words") {
		opts.MaxWords = f.maxWords
	}
	if changed("no-bounds") {
		opts.NoBounds = f.noBounds
	}
	if changed("measurer") {
		opts.Measurer = f.measurer
	}
	if changed("background") {
		opts.Background = f.background
	}
	if changed("font-family") {
		opts.FontFamily = f.fontFamily
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	opts.Formats = parseFormats(f.formats)
	return pipeline.ValidateFormats(opts.Formats)
}

// cloudCommand creates the cloud command for laying out keywords.
func (c *CLI) cloudCommand() *cobra.Command {
	var (
		flags   cloudFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "cloud [keywords.json]",
		Short: "Lay out keywords as a word cloud",
		Long: `Lay out keywords as a word cloud and render it.

The input is either a keyword list ([{"word": ..., "count": ...}]) or a
dataset, whose keyword list (or merged record keywords) is used. Words are
placed heaviest first along an Archimedean spiral from the canvas center;
a word that finds no free spot is reported as dropped.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			if err := flags.apply(cmd, &opts); err != nil {
				return err
			}
			return c.runCloud(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	flags.register(cmd)

	return cmd
}

// runCloud loads the keywords, computes the layout and writes the artifacts.
func (c *CLI) runCloud(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	keywords, err := loadKeywords(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d words...", len(keywords)))
	spinner.Start()

	layout, layoutHit, err := runner.LayoutWithCacheInfo(ctx, keywords, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	placed := len(layout.Placed())
	dropped := len(layout.Items) - placed
	printSuccess("Word cloud rendered")
	printStats(placed, dropped, layoutHit && renderHit)
	for _, p := range paths {
		printFile(p)
	}
	if dropped > 0 {
		printWarning("%d words did not fit; enlarge the canvas or lower --max-words", dropped)
	}
	return nil
}

// loadKeywords reads a keyword list or dataset file, or stdin for "-".
func loadKeywords(input string) ([]feedback.Keyword, error) {
	if input == "-" {
		return feedio.ReadKeywords(os.Stdin)
	}
	kws, err := feedio.ImportKeywords(input)
	if err != nil {
		return nil, fmt.Errorf("load keywords %s: %w", input, err)
	}
	return kws, nil
}
