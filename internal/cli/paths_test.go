package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/tileboard/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	c := &CLI{Config: config.Default()}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	c := &CLI{Config: config.Default()}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/ignored")

	c := &CLI{Config: config.Default()}
	c.Config.Cache.Dir = "/srv/tileboard-cache"
	dir, _ := c.cacheDir()
	if dir != "/srv/tileboard-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestDefaultLogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "")

	path, err := defaultLogFile()
	if err != nil {
		t.Fatalf("defaultLogFile() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".local", "state", appName, "edit.log")
	if path != expected {
		t.Errorf("defaultLogFile() = %q, want %q", path, expected)
	}

	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	path, _ = defaultLogFile()
	if !strings.HasPrefix(path, filepath.Join("/tmp/state", appName)) {
		t.Errorf("defaultLogFile() with XDG_STATE_HOME = %q", path)
	}
}

func TestOpenLogFileCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "edit.log")
	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile() error: %v", err)
	}
	f.Close()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}
