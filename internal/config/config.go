// Package config loads Devil's Dozen settings from the environment
package config

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/devils-dozen/internal/errors"
)

// Config is everything the CLI needs to reach Redis and log
type Config struct {
	RedisAddr string        `env:"DEVILS_DOZEN_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int           `env:"DEVILS_DOZEN_REDIS_DB"   envDefault:"0"`
	LogLevel  string        `env:"DEVILS_DOZEN_LOG_LEVEL"  envDefault:"info"`
	StateTTL  time.Duration `env:"DEVILS_DOZEN_STATE_TTL"  envDefault:"24h"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidInput, "failed to parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("RedisAddr", c.RedisAddr, vb)
	if c.RedisDB < 0 {
		vb.InvalidField("RedisDB", "cannot be negative")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.InvalidField("LogLevel", "must be one of debug, info, warn, error")
	}
	if c.StateTTL <= 0 {
		vb.InvalidField("StateTTL", "must be positive")
	}

	return vb.Build()
}

// Level returns the slog level for LogLevel, defaulting to info
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

// NewLogger returns a text logger writing to w at the configured level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
