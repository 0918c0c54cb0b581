package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds every runtime setting. Values come from environment
// variables layered over the defaults below.
type Config struct {
	DatabaseURL string `koanf:"database_url"`
	ServerPort  string `koanf:"port"`
	Environment string `koanf:"env"`
	FrontendURL string `koanf:"frontend_url"`
	TMDBAPIKey  string `koanf:"tmdb_api_key"`
	TMDBBaseURL string `koanf:"tmdb_base_url"`
	LogLevel    string `koanf:"log_level"`
	LogFormat   string `koanf:"log_format"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"database_url":  "",
		"port":          "5005",
		"env":           "development",
		"frontend_url":  "http://localhost:5173",
		"tmdb_api_key":  "",
		"tmdb_base_url": "https://api.themoviedb.org/3",
		"log_level":     "info",
		"log_format":    "",
	}
}

// Load reads configuration from the environment. Keys are flat
// upper-case env vars (PORT, DATABASE_URL, TMDB_API_KEY, ...).
func Load() (*Config, error) {
	k := koanf.New(".")

	for key, val := range defaults() {
		if err := k.Set(key, val); err != nil {
			return nil, fmt.Errorf("config: set default %s: %w", key, err)
		}
	}

	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.LogFormat == "" {
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		} else {
			cfg.LogFormat = "console"
		}
	}

	return &cfg, nil
}

// IsProduction reports whether the service runs with production error
// reporting (no error details in HTTP responses).
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
