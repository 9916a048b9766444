// Package config provides configuration management for the siglint
// CLI. Settings layer in koanf order: built-in defaults, then the
// project's siglint.yaml, then SIGLINT_* environment variables, then
// explicitly set flags.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/clutch-assistant/siglint/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	// Output selects the rendering mode: auto, text, markdown, json.
	Output string `koanf:"output"`

	// Verbose enables informational logging on stderr.
	Verbose bool `koanf:"verbose"`

	// LogLevel sets the slog level: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// FailOn is the severity threshold for a non-zero exit: any
	// finding at this severity or stronger fails the run.
	FailOn string `koanf:"fail_on"`

	// Jobs bounds file-level parallelism; 0 means NumCPU.
	Jobs int `koanf:"jobs"`

	Rules *RulesConfig `koanf:"rules"`
}

// RulesConfig adjusts rule enablement and severities.
type RulesConfig struct {
	// Disabled rule ids. Disabling wins over enabling.
	Disabled []string `koanf:"disabled"`

	// Enabled rule ids, for rules that default to off.
	Enabled []string `koanf:"enabled"`

	// Severity maps rule id to an override: error, warning, info,
	// hint.
	Severity map[string]string `koanf:"severity"`
}

// Default configuration values.
const (
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel = "warn"
	DefaultFailOn   = "error"
)

// LintConfig converts the rules section into the engine's config. An
// unknown severity name is a configuration error, not a silent
// fallback.
func (c *Config) LintConfig() (*lint.Config, error) {
	cfg := lint.NewConfig()
	if c.Rules == nil {
		return cfg, nil
	}
	for _, id := range c.Rules.Disabled {
		cfg.Disable(id)
	}
	for _, id := range c.Rules.Enabled {
		cfg.Enable(id)
	}
	for id, level := range c.Rules.Severity {
		sev, ok := lint.ParseSeverity(level)
		if !ok {
			return nil, fmt.Errorf("rules.severity.%s: unknown severity %q", id, level)
		}
		cfg.SetSeverity(id, sev)
	}
	return cfg, nil
}

// FailSeverity resolves the fail_on threshold.
func (c *Config) FailSeverity() (lint.Severity, error) {
	sev, ok := lint.ParseSeverity(c.FailOn)
	if !ok {
		return sev, fmt.Errorf("fail_on: unknown severity %q", c.FailOn)
	}
	return sev, nil
}

// NewLogger builds the CLI logger writing to stderr at the configured
// level. Verbose lowers the floor to info.
func NewLogger(c *Config) *slog.Logger {
	level := slog.LevelWarn
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if c.Verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithLogger stores the logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
