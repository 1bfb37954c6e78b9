package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridplot/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		base := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", base)

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(base, "gridplot"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")

		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".cache", "gridplot"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestNewCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c, err := newCache(true)
	if err != nil {
		t.Fatalf("newCache(true): %v", err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want cache.NullCache", c)
	}

	c, err = newCache(false)
	if err != nil {
		t.Fatalf("newCache(false): %v", err)
	}
	if _, ok := c.(*cache.FileCache); !ok {
		t.Errorf("newCache(false) = %T, want *cache.FileCache", c)
	}
}

func TestCacheCommands(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	dir := filepath.Join(base, "gridplot")

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	_ = fc.Set(context.Background(), "k", []byte("v"), 0)

	c := New(&bytes.Buffer{}, LogInfo)

	t.Run("path", func(t *testing.T) {
		var out bytes.Buffer
		root := c.RootCommand()
		root.SetOut(&out)
		root.SetArgs([]string{"cache", "path"})
		if err := root.Execute(); err != nil {
			t.Fatalf("cache path: %v", err)
		}
		if got := strings.TrimSpace(out.String()); got != dir {
			t.Errorf("cache path = %q, want %q", got, dir)
		}
	})

	t.Run("clear", func(t *testing.T) {
		root := c.RootCommand()
		root.SetArgs([]string{"cache", "clear"})
		if err := root.Execute(); err != nil {
			t.Fatalf("cache clear: %v", err)
		}
		if n, _ := fc.Len(); n != 0 {
			t.Errorf("%d entries left after clear", n)
		}
	})
}
