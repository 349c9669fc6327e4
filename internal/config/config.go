// Package config reads runtime defaults from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

// Config holds defaults that command-line flags may override.
type Config struct {
	OutputPath string `env:"COUPON_REPORT_OUTPUT" envDefault:"coupon_analysis.md"`
	Today      string `env:"COUPON_TODAY"`
	LogLevel   string `env:"COUPON_LOG_LEVEL" envDefault:"warn"`
	LogFormat  string `env:"COUPON_LOG_FORMAT" envDefault:"text"`
}

// Load reads the given .env files (DefaultEnvFile when none are given) and then
// parses the environment. Missing .env files are skipped; variables already set
// in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	return &cfg, nil
}
