package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds tool-wide settings read from ~/.atelier/config.toml with
// environment overrides applied on top.
type Config struct {
	DBPath       string   `toml:"db_path"`
	TemplateDirs []string `toml:"template_dirs"`
	NoColor      bool     `toml:"no_color"`
	LogUseCases  bool     `toml:"log_use_cases"`
}

// Default returns the configuration used when no file or overrides exist.
// The database lives under ~/.atelier.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath: filepath.Join(home, ".atelier", "atelier.db"),
	}, nil
}

// Load reads ~/.atelier/config.toml when present, then applies ATELIER_DB,
// ATELIER_TEMPLATES, ATELIER_NO_COLOR and ATELIER_LOG_USE_CASES overrides.
// A missing config file is not an error.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	if err := loadFile(filepath.Join(home, ".atelier", "config.toml"), &cfg); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ATELIER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ATELIER_TEMPLATES"); v != "" {
		cfg.TemplateDirs = append(cfg.TemplateDirs, v)
	}
	if v := os.Getenv("ATELIER_NO_COLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.NoColor = b
		}
	}
	if v := os.Getenv("ATELIER_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
}
