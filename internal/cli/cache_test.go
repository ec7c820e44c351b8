package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/photowall/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	// Verify the expected structure: $HOME/.cache/photowall
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "photowall")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join(base, "photowall") {
		t.Errorf("cacheDir() = %q, want under %q", dir, base)
	}
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tests := []struct {
		name    string
		enabled bool
		want    string
	}{
		{"disabled", false, "*cache.NullCache"},
		{"enabled", true, "*cache.FileCache"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(tt.enabled)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer c.Close()
			switch c.(type) {
			case *cache.NullCache:
				if tt.want != "*cache.NullCache" {
					t.Errorf("newCache(%v) = NullCache", tt.enabled)
				}
			case *cache.FileCache:
				if tt.want != "*cache.FileCache" {
					t.Errorf("newCache(%v) = FileCache", tt.enabled)
				}
			}
		})
	}
}

func TestCacheCommands(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	fc, err := cache.NewFileCache(filepath.Join(base, "photowall"))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "thumb:abc", []byte("png"), time.Hour); err != nil {
		t.Fatal(err)
	}

	c := New(os.Stderr, LogInfo)
	var out strings.Builder
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != filepath.Join(base, "photowall") {
		t.Errorf("cache path printed %q", got)
	}

	root = c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(context.Background(), "thumb:abc"); hit {
		t.Error("entry survived cache clear")
	}
}
