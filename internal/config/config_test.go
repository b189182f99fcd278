package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"~/sessions", filepath.Join("/home/amar", "sessions")},
		{"~/a/b", filepath.Join("/home/amar", "a", "b")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"~", "~"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.path, "/home/amar"); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoad_Overrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "session-finder")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
projects_root = "~/logs"
default_limit = 25
extra_stopwords = ["scheduler"]
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(home, "logs"); cfg.ProjectsRoot != want {
		t.Errorf("ProjectsRoot = %q, want %q", cfg.ProjectsRoot, want)
	}
	if cfg.DefaultLimit != 25 {
		t.Errorf("DefaultLimit = %d, want 25", cfg.DefaultLimit)
	}
	// Unset keys keep their defaults.
	if cfg.DefaultContext != 2 {
		t.Errorf("DefaultContext = %d, want 2", cfg.DefaultContext)
	}
	if cfg.RgPath != "rg" {
		t.Errorf("RgPath = %q, want %q", cfg.RgPath, "rg")
	}
	if len(cfg.ExtraStopwords) != 1 || cfg.ExtraStopwords[0] != "scheduler" {
		t.Errorf("ExtraStopwords = %v", cfg.ExtraStopwords)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(home, ".claude", "projects"); cfg.ProjectsRoot != want {
		t.Errorf("ProjectsRoot = %q, want %q", cfg.ProjectsRoot, want)
	}
	if cfg.DefaultLimit != 10 || cfg.DefaultContext != 2 {
		t.Errorf("defaults = limit %d context %d, want 10 and 2", cfg.DefaultLimit, cfg.DefaultContext)
	}
}
