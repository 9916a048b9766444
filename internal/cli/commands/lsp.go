package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/clutch-assistant/siglint/internal/cli/config"
	"github.com/clutch-assistant/siglint/internal/lsp"
	"github.com/clutch-assistant/siglint/pkg/lint"
	"github.com/clutch-assistant/siglint/pkg/lint/rules"
)

// NewLSPCommand creates the lsp command.
func NewLSPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the LSP server for editor integration.

The server communicates over stdin/stdout using JSON-RPC. It
publishes lint findings as diagnostics on every open or change and
offers the suggested fixes as quick-fix code actions. Rule
configuration comes from the siglint.yaml the CLI was started with.`,
		Example: `  # Start LSP server (usually launched by an editor)
  siglint lsp`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd)
		},
	}

	return cmd
}

func runLSP(cmd *cobra.Command) error {
	cfg := ConfigFromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	lcfg, err := cfg.LintConfig()
	if err != nil {
		return err
	}
	reg := rules.NewRegistry(lcfg)

	server := lsp.NewServer(os.Stdin, os.Stdout, lint.NewLinter(reg), logger)
	return server.Run()
}
