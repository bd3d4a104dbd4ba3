package config

import (
	"time"

	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/insight"
)

// InsightTimeout parses [insight] timeout, defaulting to
// [insight.DefaultTimeout].
func (c *Config) InsightTimeout() (time.Duration, error) {
	if c.Insight.Timeout == "" {
		return insight.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Insight.Timeout)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "insight timeout")
	}
	if d <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "insight timeout must be positive, got %s", d)
	}
	return d, nil
}

// InsightClient builds a client for the configured endpoint. It returns an
// INVALID_CONFIG error when no endpoint is set.
func (c *Config) InsightClient() (*insight.Client, error) {
	if c.Insight.Endpoint == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no insight endpoint configured (set [insight] endpoint or %s)", EnvInsightURL)
	}
	timeout, err := c.InsightTimeout()
	if err != nil {
		return nil, err
	}
	opts := []insight.Option{insight.WithTimeout(timeout)}
	if c.Insight.APIKey != "" {
		opts = append(opts, insight.WithAPIKey(c.Insight.APIKey))
	}
	return insight.NewClient(c.Insight.Endpoint, opts...)
}
