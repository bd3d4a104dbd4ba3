// Package cache stores computed reports, layouts and rendered artifacts.
//
// Every pipeline stage is a pure function of its input and options, so its
// output can be cached under a key derived from both. [Keyer] builds those
// keys; [Cache] stores the bytes.
//
// Three backends are provided:
//
//   - [FileCache]: one JSON file per entry under a directory, used by the CLI
//   - [RedisCache]: a shared Redis instance, used by the HTTP server
//   - [NullCache]: stores nothing, used with --no-cache and in tests
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLReport   = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A miss is reported with
// hit = false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys for the pipeline stages.
type Keyer interface {
	// ReportKey identifies an aggregate report of a dataset.
	ReportKey(datasetHash string, opts ReportKeyOpts) string
	// LayoutKey identifies a word-cloud layout of a keyword list.
	LayoutKey(keywordsHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered layout in one format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ReportKeyOpts are the options that change an aggregate report.
type ReportKeyOpts struct {
	TopN     int      `json:"top_n"`
	Positive []string `json:"positive,omitempty"`
	Neutral  []string `json:"neutral,omitempty"`
	Negative []string `json:"negative,omitempty"`
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	Padding       float64 `json:"padding"`
	MaxAttempts   int     `json:"max_attempts"`
	MaxWords      int     `json:"max_words"`
	EnforceBounds bool    `json:"enforce_bounds"`
	Measurer      string  `json:"measurer"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string   `json:"format"`
	Palette    []string `json:"palette,omitempty"`
	Background string   `json:"background,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
}
