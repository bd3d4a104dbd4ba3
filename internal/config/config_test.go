package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/feedscope/pkg/errors"
	"github.com/matzehuels/feedscope/pkg/insight"
)

const sampleConfig = `
[cloud]
width = 800.0
height = 500.0
padding = 0.0
max_words = 50
measurer = "estimate"
palette = ["#111111", "#222222"]

[aggregate]
top_n = 10

[aggregate.labels]
positive = ["good"]
neutral = ["meh"]
negative = ["bad"]

[cache]
backend = "redis"

[cache.redis]
addr = "redis:6379"
prefix = "fs:"

[insight]
endpoint = "https://insight.example.com/generate"
timeout = "5s"

[server]
addr = ":9090"
concurrency = 8
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvCacheBackend, EnvRedisAddr, EnvInsightURL, EnvInsightAPIKey, EnvServerAddr} {
		t.Setenv(k, "")
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Cloud.Width != 800 || cfg.Cloud.Height != 500 {
		t.Errorf("canvas = %gx%g, want 800x500", cfg.Cloud.Width, cfg.Cloud.Height)
	}
	if cfg.Cloud.Padding == nil || *cfg.Cloud.Padding != 0 {
		t.Errorf("Padding = %v, want explicit 0", cfg.Cloud.Padding)
	}
	if cfg.Aggregate.Labels == nil || cfg.Aggregate.Labels.Positive[0] != "good" {
		t.Errorf("Labels = %v, want positive [good]", cfg.Aggregate.Labels)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.Redis.Addr != "redis:6379" {
		t.Errorf("Cache = %+v, want redis at redis:6379", cfg.Cache)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Cache.Backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[cloud\nwidth = 1.0"},
		{"backend", "[cache]\nbackend = \"memcached\""},
		{"endpoint", "[insight]\nendpoint = \"ftp://example.com\""},
		{"timeout", "[insight]\ntimeout = \"soon\""},
		{"negative timeout", "[insight]\ntimeout = \"-1s\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cloud.MaxWords != 50 {
		t.Errorf("MaxWords = %d, want 50", cfg.Cloud.MaxWords)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "[cloud]\nwidht = 10.0\n")

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file error = %v, want FILE_NOT_FOUND", err)
	}

	t.Setenv(EnvConfigHome, dir)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with missing default file: %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("Cache.Backend = %q, want defaults", cfg.Cache.Backend)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv(EnvConfigHome, home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "[server]\naddr = \":7070\"\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), sampleConfig)
	t.Setenv(EnvCacheBackend, BackendNone)
	t.Setenv(EnvRedisAddr, "cache:6380")
	t.Setenv(EnvInsightURL, "http://localhost:3000/api/generate-insights")
	t.Setenv(EnvInsightAPIKey, "secret")
	t.Setenv(EnvServerAddr, "127.0.0.1:8000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name, got, want string
	}{
		{"backend", cfg.Cache.Backend, BackendNone},
		{"redis", cfg.Cache.Redis.Addr, "cache:6380"},
		{"endpoint", cfg.Insight.Endpoint, "http://localhost:3000/api/generate-insights"},
		{"api key", cfg.Insight.APIKey, "secret"},
		{"addr", cfg.Server.Addr, "127.0.0.1:8000"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadEnvInvalidBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigHome, t.TempDir())
	t.Setenv(EnvCacheBackend, "s3")

	if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load error = %v, want INVALID_CONFIG", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	opts := cfg.PipelineOptions()

	if opts.Width != 800 || opts.Height != 500 {
		t.Errorf("canvas = %gx%g, want 800x500", opts.Width, opts.Height)
	}
	if opts.TopN != 10 {
		t.Errorf("TopN = %d, want 10", opts.TopN)
	}
	if opts.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want 8", opts.Concurrency)
	}
	if opts.Measurer != "estimate" {
		t.Errorf("Measurer = %q, want estimate", opts.Measurer)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if *opts.Padding != 0 {
		t.Errorf("Padding = %v, want 0 kept through defaults", *opts.Padding)
	}
}

func TestInsightTimeout(t *testing.T) {
	cfg := Default()
	if d, err := cfg.InsightTimeout(); err != nil || d != insight.DefaultTimeout {
		t.Errorf("InsightTimeout() = %v, %v, want %v", d, err, insight.DefaultTimeout)
	}
	cfg.Insight.Timeout = "250ms"
	if d, err := cfg.InsightTimeout(); err != nil || d != 250*time.Millisecond {
		t.Errorf("InsightTimeout() = %v, %v, want 250ms", d, err)
	}
}

func TestInsightClient(t *testing.T) {
	cfg := Default()
	if _, err := cfg.InsightClient(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("InsightClient without endpoint error = %v, want INVALID_CONFIG", err)
	}

	cfg.Insight.Endpoint = "https://insight.example.com"
	c, err := cfg.InsightClient()
	if err != nil {
		t.Fatalf("InsightClient: %v", err)
	}
	if c.Endpoint() != cfg.Insight.Endpoint {
		t.Errorf("Endpoint() = %q, want %q", c.Endpoint(), cfg.Insight.Endpoint)
	}
}
