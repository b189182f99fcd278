package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ProjectsRoot   string   `toml:"projects_root"`
	RgPath         string   `toml:"rg_path"`
	DefaultLimit   int      `toml:"default_limit"`
	DefaultContext int      `toml:"default_context"`
	ExtraStopwords []string `toml:"extra_stopwords"`
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "session-finder", "config.toml"), nil
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectsRoot:   filepath.Join(home, ".claude", "projects"),
		RgPath:         "rg",
		DefaultLimit:   10,
		DefaultContext: 2,
	}

	cfgPath := filepath.Join(home, ".config", "session-finder", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	cfg.ProjectsRoot = expandHome(cfg.ProjectsRoot, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
