// Package config loads feedscope settings from a TOML file, an optional
// .env file and FEEDSCOPE_* environment variables, in that order of
// increasing precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/feedscope/pkg/aggregate"
	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/pipeline"
)

const appName = "feedscope"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the default listen address of the HTTP API.
const DefaultAddr = ":8080"

// Environment variables that override the file.
const (
	EnvCacheBackend   = "FEEDSCOPE_CACHE_BACKEND"
	EnvRedisAddr      = "FEEDSCOPE_REDIS_ADDR"
	EnvInsightURL     = "FEEDSCOPE_INSIGHT_ENDPOINT"
	EnvInsightAPIKey  = "FEEDSCOPE_INSIGHT_API_KEY"
	EnvServerAddr     = "FEEDSCOPE_ADDR"
	EnvConfigHome     = "XDG_CONFIG_HOME"
	defaultConfigFile = "config.toml"
)

// Config is the merged configuration.
type Config struct {
	Cloud     Cloud     `toml:"cloud"`
	Aggregate Aggregate `toml:"aggregate"`
	Cache     Cache     `toml:"cache"`
	Insight   Insight   `toml:"insight"`
	Server    Server    `toml:"server"`
}

// Cloud holds the word cloud layout and rendering settings.
type Cloud struct {
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
	Padding     *float64 `toml:"padding"`
	MaxAttempts int      `toml:"max_attempts"`
	MaxWords    int      `toml:"max_words"`
	NoBounds    bool     `toml:"no_bounds"`
	Measurer    string   `toml:"measurer"`
	Palette     []string `toml:"palette"`
	Background  string   `toml:"background"`
	FontFamily  string   `toml:"font_family"`
	Scale       float64  `toml:"scale"`
}

// Aggregate holds the aggregation settings.
type Aggregate struct {
	TopN   int                        `toml:"top_n"`
	Labels *aggregate.SentimentLabels `toml:"labels"`
}

// Cache selects and configures the artifact cache.
type Cache struct {
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Redis   Redis  `toml:"redis"`
}

// Redis configures the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Insight configures the insight generation client.
type Insight struct {
	Endpoint string `toml:"endpoint"`
	APIKey   string `toml:"api_key"`
	Timeout  string `toml:"timeout"`
}

// Server configures the HTTP API.
type Server struct {
	Addr        string `toml:"addr"`
	Concurrency int    `toml:"concurrency"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Cache:  Cache{Backend: BackendFile},
		Server: Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/feedscope/config.toml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if home := os.Getenv(EnvConfigHome); home != "" {
		return filepath.Join(home, appName, defaultConfigFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, defaultConfigFile), nil
}

// Load reads the file at path, then .env in the working directory, then the
// environment. An empty path selects [DefaultPath]. A missing file at the
// default path yields defaults; a missing file named explicitly is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
				err = nil
			}
			if err != nil {
				return nil, err
			}
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
	}
	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without consulting the
// environment.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides fields from FEEDSCOPE_* variables looked up with getenv.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := getenv(EnvInsightURL); v != "" {
		c.Insight.Endpoint = v
	}
	if v := getenv(EnvInsightAPIKey); v != "" {
		c.Insight.APIKey = v
	}
	if v := getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks values that the pipeline does not validate itself.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Insight.Endpoint != "" {
		if err := errors.ValidateURL(c.Insight.Endpoint); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "insight endpoint")
		}
	}
	if c.Insight.Timeout != "" {
		if _, err := c.InsightTimeout(); err != nil {
			return err
		}
	}
	return nil
}

// PipelineOptions maps the [cloud] and [aggregate] sections onto pipeline
// options. Zero values are left for the pipeline defaults.
func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		TopN:        c.Aggregate.TopN,
		Labels:      c.Aggregate.Labels,
		Width:       c.Cloud.Width,
		Height:      c.Cloud.Height,
		Padding:     c.Cloud.Padding,
		MaxAttempts: c.Cloud.MaxAttempts,
		MaxWords:    c.Cloud.MaxWords,
		NoBounds:    c.Cloud.NoBounds,
		Measurer:    c.Cloud.Measurer,
		Palette:     c.Cloud.Palette,
		Background:  c.Cloud.Background,
		FontFamily:  c.Cloud.FontFamily,
		Scale:       c.Cloud.Scale,
		Concurrency: c.Server.Concurrency,
	}
	return opts
}
