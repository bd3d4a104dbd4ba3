package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/cache"
	"github.com/matzehuels/feedscope/pkg/cloud"
	"github.com/matzehuels/feedscope/pkg/feedback"
	"github.com/matzehuels/feedscope/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the logger and a lazily
// created font measurer. It doesn't store pipeline results. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	fontOnce sync.Once
	font     *cloud.FontMeasurer
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete aggregate → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, d *feedback.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)
	result.Stats.Records = len(d.Feedbacks)

	// Stage 1: Aggregate
	start := time.Now()
	rep, hit, err := r.AggregateWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	result.Report = rep
	result.Stats.AggregateTime = time.Since(start)
	result.CacheInfo.ReportHit = hit

	logger.Info("aggregated feedback",
		"records", len(d.Feedbacks),
		"categories", len(rep.Categories),
		"months", len(rep.Trend.Months),
		"duration", result.Stats.AggregateTime)
	logAnomalies(logger, rep.Anomalies)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	start = time.Now()
	keywords := LayoutKeywords(d)
	layout, hit, err := r.LayoutWithCacheInfo(ctx, keywords, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(start)
	result.Stats.Words = len(layout.Items)
	result.Stats.Placed = len(layout.Placed())
	result.Stats.Dropped = result.Stats.Words - result.Stats.Placed
	result.CacheInfo.LayoutHit = hit

	logger.Info("computed layout",
		"placed", result.Stats.Placed,
		"dropped", result.Stats.Dropped,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Batch runs [Runner.Execute] on every dataset, at most opts.Concurrency at a
// time. Results are in input order. The first failure cancels the rest.
func (r *Runner) Batch(ctx context.Context, datasets []*feedback.Dataset, opts Options) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	results := make([]*Result, len(datasets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, d := range datasets {
		g.Go(func() error {
			res, err := r.Execute(ctx, d, opts)
			if err != nil {
				return fmt.Errorf("dataset %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AggregateWithCacheInfo computes the report of a dataset with caching and
// returns cache hit info.
func (r *Runner) AggregateWithCacheInfo(ctx context.Context, d *feedback.Dataset, opts Options) (*aggregate.Report, bool, error) {
	if err := opts.ValidateForAggregate(); err != nil {
		return nil, false, err
	}

	hash, err := cache.HashJSON(d)
	if err != nil {
		return nil, false, fmt.Errorf("hash dataset: %w", err)
	}
	key := r.Keyer.ReportKey(hash, opts.ReportKeyOpts())

	if !opts.Refresh {
		var rep aggregate.Report
		if r.cached(ctx, "report", key, &rep) {
			return &rep, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnAggregateStart(ctx, len(d.Feedbacks))
	start := time.Now()
	rep := aggregate.Compute(*d, aggregate.Options{TopN: opts.TopN, Labels: *opts.Labels})
	hooks.OnAggregateComplete(ctx, len(d.Feedbacks), time.Since(start), nil)

	r.store(ctx, "report", key, rep, cache.TTLReport)
	return rep, false, nil
}

// Aggregate is a convenience wrapper that calls AggregateWithCacheInfo and discards the cache hit info.
func (r *Runner) Aggregate(ctx context.Context, d *feedback.Dataset, opts Options) (*aggregate.Report, error) {
	rep, _, err := r.AggregateWithCacheInfo(ctx, d, opts)
	return rep, err
}

// LayoutWithCacheInfo places keywords with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, keywords []feedback.Keyword, opts Options) (*cloud.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	hash, err := cache.HashJSON(keywords)
	if err != nil {
		return nil, false, fmt.Errorf("hash keywords: %w", err)
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		var res cloud.Result
		if r.cached(ctx, "layout", key, &res) {
			return &res, true, nil
		}
	}

	m, err := r.measurer(opts.Measurer)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(keywords))
	start := time.Now()
	res, err := GenerateLayout(keywords, opts, m)
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	placed := len(res.Placed())
	hooks.OnLayoutComplete(ctx, placed, len(res.Items)-placed, time.Since(start), nil)

	r.store(ctx, "layout", key, res, cache.TTLLayout)
	return res, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, keywords []feedback.Keyword, opts Options) (*cloud.Result, error) {
	res, _, err := r.LayoutWithCacheInfo(ctx, keywords, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *cloud.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutHash, err := cache.HashJSON(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}

	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *cloud.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner.
func (r *Runner) Close() error {
	if r.font != nil {
		r.font.Close()
	}
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// measurer resolves a measurer name. The font measurer is created once per
// runner and shared across goroutines.
func (r *Runner) measurer(name string) (cloud.Measurer, error) {
	if name == MeasurerEstimate {
		return cloud.DefaultEstimateMeasurer(), nil
	}
	var err error
	r.fontOnce.Do(func() {
		r.font, err = cloud.NewGoRegularMeasurer()
	})
	if err != nil {
		return nil, err
	}
	if r.font == nil {
		return cloud.DefaultEstimateMeasurer(), nil
	}
	return r.font, nil
}

// cached decodes the entry at key into v and reports whether it was a hit.
// Undecodable entries count as misses.
func (r *Runner) cached(ctx context.Context, kind, key string, v any) bool {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, kind)
		return false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return true
}

func (r *Runner) store(ctx context.Context, kind, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func logAnomalies(logger *log.Logger, a aggregate.Anomalies) {
	if !a.Any() {
		return
	}
	logger.Warn("records with anomalies",
		"skipped_dates", a.SkippedDates,
		"skipped_sentiments", a.SkippedSentiments,
		"clamped_ratings", a.ClampedRatings,
		"skipped_ratings", a.SkippedRatings)
}
