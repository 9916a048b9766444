// Package commands implements the siglint subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/clutch-assistant/siglint/internal/cli/config"
	"github.com/clutch-assistant/siglint/internal/cli/output"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/lint/rules"
)

// configKey is used to store config in the command context. The root
// command writes it in PersistentPreRunE via WithConfig.
type configKey struct{}

// WithConfig stores cfg in ctx for commands to pick up.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFromContext retrieves the config from the command context,
// falling back to defaults when the root hook did not run.
func ConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{
		Output:   config.DefaultOutput,
		LogLevel: config.DefaultLogLevel,
		FailOn:   config.DefaultFailOn,
	}
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the shared command dependencies from the
// command's context and writers.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := ConfigFromContext(cmd.Context())
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// buildLinter assembles the rule registry from the config file plus
// per-invocation adjustments: extra --disable ids, and an optional
// --rule allowlist that runs exactly the named rules.
func buildLinter(cfg *config.Config, disable, only []string) (*lint.Linter, *lint.Registry, error) {
	lcfg, err := cfg.LintConfig()
	if err != nil {
		return nil, nil, err
	}
	for _, id := range disable {
		if err := knownRule(id); err != nil {
			return nil, nil, err
		}
		lcfg.Disable(id)
	}
	if len(only) > 0 {
		keep := make(map[string]bool, len(only))
		for _, id := range only {
			if err := knownRule(id); err != nil {
				return nil, nil, err
			}
			keep[id] = true
		}
		for _, rule := range rules.NewRegistry(nil).Rules() {
			id := rule.Config().ID
			if keep[id] {
				// The allowlist is explicit, it overrides config
				// disables.
				delete(lcfg.DisabledRules, id)
				lcfg.Enable(id)
			} else {
				lcfg.Disable(id)
			}
		}
	}

	reg := rules.NewRegistry(lcfg)
	return lint.NewLinter(reg), reg, nil
}

// knownRule rejects rule ids that no built-in rule carries.
func knownRule(id string) error {
	if _, ok := rules.NewRegistry(nil).RuleByID(id); !ok {
		return fmt.Errorf("unknown rule id %q", id)
	}
	return nil
}
