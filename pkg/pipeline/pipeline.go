// Package pipeline runs the feedscope processing pipeline.
//
// This package implements the complete aggregate → layout → render pipeline
// used by the CLI and the HTTP server. By centralizing this logic, both entry
// points apply the same defaults, validation and caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Aggregate: compute the report views of a dataset
//  2. Layout: place the dataset's keywords as a word cloud
//  3. Render: produce the layout in the requested formats (SVG, PNG, PDF, JSON)
//
// Aggregation and layout share no state; the pipeline runs them in sequence
// for one dataset and fans independent datasets out with [Runner.Batch].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, dataset, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	report, err := runner.Aggregate(ctx, dataset, opts)
//	layout, err := runner.Layout(ctx, keywords, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/cache"
	"github.com/matzehuels/feedscope/pkg/cloud"
	"github.com/matzehuels/feedscope/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 600.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 400.0

	// DefaultPadding is the default gap between placed words.
	DefaultPadding = cloud.DefaultPadding

	// DefaultConcurrency bounds how many datasets [Runner.Batch] processes at once.
	DefaultConcurrency = 4

	// DefaultPNGScale is the default PNG resolution multiplier.
	DefaultPNGScale = 2.0

	// DefaultMeasurer is the default text measurement strategy.
	DefaultMeasurer = MeasurerFont
)

// Measurer names.
const (
	MeasurerFont     = "font"
	MeasurerEstimate = "estimate"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidMeasurers is the set of supported measurers.
var ValidMeasurers = map[string]bool{
	MeasurerFont:     true,
	MeasurerEstimate: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests and TOML for the
// config file.
type Options struct {
	// Aggregate options
	TopN   int                        `json:"top_n,omitempty" toml:"top_n"`
	Labels *aggregate.SentimentLabels `json:"labels,omitempty" toml:"labels"`

	// Layout options
	Width       float64  `json:"width,omitempty" toml:"width"`
	Height      float64  `json:"height,omitempty" toml:"height"`
	Padding     *float64 `json:"padding,omitempty" toml:"padding"`
	MaxAttempts int      `json:"max_attempts,omitempty" toml:"max_attempts"`
	MaxWords    int      `json:"max_words,omitempty" toml:"max_words"` // 0 places every keyword
	NoBounds    bool     `json:"no_bounds,omitempty" toml:"no_bounds"`
	Measurer    string   `json:"measurer,omitempty" toml:"measurer"`

	// Render options
	Formats    []string `json:"formats,omitempty" toml:"formats"`
	Palette    []string `json:"palette,omitempty" toml:"palette"`
	Background string   `json:"background,omitempty" toml:"background"`
	FontFamily string   `json:"font_family,omitempty" toml:"font_family"`
	Scale      float64  `json:"scale,omitempty" toml:"scale"`

	// Runtime options
	Refresh     bool        `json:"refresh,omitempty" toml:"-"`
	Concurrency int         `json:"-" toml:"concurrency"`
	Logger      *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID labels this execution in logs and API responses.
	RunID string

	// Report holds the aggregate views.
	Report *aggregate.Report

	// Layout is the word cloud, dropped words included.
	Layout *cloud.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records       int
	Words         int
	Placed        int
	Dropped       int
	AggregateTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ReportHit bool // Whether the report came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMeasurer checks that a measurer name is valid.
func ValidateMeasurer(name string) error {
	if !ValidMeasurers[name] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid measurer: %q (must be one of: font, estimate)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForAggregate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	o.validated = true
	return nil
}

// ValidateForAggregate validates and sets defaults for aggregation.
func (o *Options) ValidateForAggregate() error {
	if o.TopN < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "top_n must be non-negative, got %d", o.TopN)
	}
	if o.TopN == 0 {
		o.TopN = aggregate.DefaultTopN
	}
	if o.Labels == nil {
		labels := aggregate.DefaultSentimentLabels()
		o.Labels = &labels
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// MaxAttempts is left at zero here and derived from the canvas by
// [Options.CloudOptions].
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == nil {
		p := float64(DefaultPadding)
		o.Padding = &p
	}
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
// Oversized canvases and budgets are rejected here; other canvas errors are
// reported by the layout engine itself.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width > cloud.MaxCanvasSize || o.Height > cloud.MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas %vx%v exceeds the maximum of %d per side", o.Width, o.Height, cloud.MaxCanvasSize)
	}
	if o.MaxAttempts > cloud.MaxAttemptsLimit {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must not exceed %d, got %d", cloud.MaxAttemptsLimit, o.MaxAttempts)
	}
	if o.MaxWords < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_words must be non-negative, got %d", o.MaxWords)
	}
	if o.MaxAttempts < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_attempts must be non-negative, got %d", o.MaxAttempts)
	}
	return ValidateMeasurer(o.Measurer)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultPNGScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", o.Scale)
	}
	return nil
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// CloudOptions converts the layout options into engine options using m to
// measure text; a nil m keeps the estimate measurer. Zero MaxAttempts
// selects [cloud.AutoAttempts].
func (o *Options) CloudOptions(m cloud.Measurer) cloud.Options {
	o.SetLayoutDefaults()
	c := cloud.DefaultOptions(o.Width, o.Height)
	c.Padding = *o.Padding
	c.EnforceBounds = !o.NoBounds
	if m != nil {
		c.Measurer = m
	}
	if o.MaxAttempts > 0 {
		c.MaxAttempts = o.MaxAttempts
	}
	return c
}

// ReportKeyOpts returns cache key options for aggregation.
func (o *Options) ReportKeyOpts() cache.ReportKeyOpts {
	k := cache.ReportKeyOpts{TopN: o.TopN}
	if o.Labels != nil {
		k.Positive = o.Labels.Positive
		k.Neutral = o.Labels.Neutral
		k.Negative = o.Labels.Negative
	}
	return k
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:         o.Width,
		Height:        o.Height,
		MaxAttempts:   o.MaxAttempts,
		MaxWords:      o.MaxWords,
		EnforceBounds: !o.NoBounds,
		Measurer:      o.Measurer,
	}
	if o.Padding != nil {
		k.Padding = *o.Padding
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Palette = o.Palette
		k.Background = o.Background
		k.FontFamily = o.FontFamily
	case FormatJSON:
		k.Palette = o.Palette
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// HasFormat reports whether format is requested.
func (o *Options) HasFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}

// String summarizes the options for debug logging.
func (o *Options) String() string {
	return fmt.Sprintf("%gx%g measurer=%s formats=%v top_n=%d", o.Width, o.Height, o.Measurer, o.Formats, o.TopN)
}
