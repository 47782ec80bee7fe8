package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveCacheDir(t *testing.T) {
	_, cfg := newTestCLI(t)

	dir, err := resolveCacheDir(cfg)
	if err != nil {
		t.Fatalf("resolveCacheDir() error: %v", err)
	}
	if dir != cfg.Cache.Dir {
		t.Errorf("resolveCacheDir() = %q, want configured %q", dir, cfg.Cache.Dir)
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	cfg.Cache.Dir = ""
	if dir, _ := resolveCacheDir(cfg); dir != filepath.Join(xdg, appName) {
		t.Errorf("resolveCacheDir() = %q, want XDG default", dir)
	}
}

func writeConfig(t *testing.T, cacheDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "podoc.toml")
	content := "[cache]\ndir = " + `"` + filepath.ToSlash(cacheDir) + `"` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheCommands(t *testing.T) {
	cacheDir := t.TempDir()
	cfgPath := writeConfig(t, cacheDir)

	c, cfg := newTestCLI(t)
	c.cfg = nil
	cfg.Cache.Dir = cacheDir

	// Populate the cache with one render.
	doc := writeDocument(t, t.TempDir(), "po.json", testDocument("PO-2025-09-01", 2))
	captureOutput(t)
	if err := c.runRender(t.Context(), cfg, doc, &renderOpts{}); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	t.Run("path", func(t *testing.T) {
		buf := captureOutput(t)
		root := c.RootCommand()
		root.SetArgs([]string{"--config", cfgPath, "cache", "path"})
		if err := root.Execute(); err != nil {
			t.Fatalf("cache path: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != filepath.ToSlash(cacheDir) && got != cacheDir {
			t.Errorf("cache path = %q, want %q", got, cacheDir)
		}
	})

	t.Run("clear", func(t *testing.T) {
		buf := captureOutput(t)
		root := c.RootCommand()
		root.SetArgs([]string{"--config", cfgPath, "cache", "clear"})
		if err := root.Execute(); err != nil {
			t.Fatalf("cache clear: %v", err)
		}
		if !strings.Contains(buf.String(), "Cleared 1 cached entries") {
			t.Errorf("output = %q", buf.String())
		}
		entries, _ := os.ReadDir(cacheDir)
		if len(entries) != 0 {
			t.Errorf("cache dir not empty: %d entries", len(entries))
		}
	})
}
