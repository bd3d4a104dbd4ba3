package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/feedscope/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(xdg, "feedscope"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(home, ".cache", "feedscope"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

// fileCacheConfig writes a config enabling the file cache under dir.
func fileCacheConfig(t *testing.T, dir string) (cfg, cacheRoot string) {
	t.Helper()
	cacheRoot = filepath.Join(dir, "artifacts")
	cfg = filepath.Join(dir, "file-cache.toml")
	body := "[cache]\nbackend = \"file\"\ndir = \"" + filepath.ToSlash(cacheRoot) + "\"\n"
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfg, cacheRoot
}

func TestCachePathCommand(t *testing.T) {
	dir, _, _ := testEnv(t)
	cfg, cacheRoot := fileCacheConfig(t, dir)
	out := captureStdout(t)

	if err := execute(t, "--config", cfg, "cache", "path"); err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != cacheRoot {
		t.Errorf("cache path = %q, want %q", got, cacheRoot)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir, _, _ := testEnv(t)
	cfg, cacheRoot := fileCacheConfig(t, dir)

	fc, err := cache.NewFileCache(cacheRoot)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"report:a", "layout:b"} {
		if err := fc.Set(ctx, key, []byte("{}"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	out := captureStdout(t)
	if err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached entries") {
		t.Errorf("output = %q, want cleared count", out.String())
	}
	if _, ok, _ := fc.Get(ctx, "report:a"); ok {
		t.Error("entry should be gone after clear")
	}
}

func TestCacheClearDisabled(t *testing.T) {
	_, _, cfg := testEnv(t)
	out := captureStdout(t)

	if err := execute(t, "--config", cfg, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("output = %q, want disabled notice", out.String())
	}
}
