package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/clutch-assistant/siglint/internal/cli/output"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a siglint configuration",
		Long: `Initialize a directory for signalset linting.

This creates:
  - siglint.yaml configuration file with the default rule setup

Use --example to also create a sample signalset demonstrating the
canonical property layout (id, path, fmt, name, suggestedMetric).`,
		Example: `  # Initialize in current directory
  siglint init

  # Initialize with a sample signalset
  siglint init --example

  # Initialize in a new directory
  siglint init my-signalsets --example

  # Force overwrite existing config
  siglint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cmdCtx := NewCommandContext(cmd)
			return runInit(cmdCtx.Renderer, dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create a sample signalset file")

	return cmd
}

// initConfig is the shape written to the generated siglint.yaml.
type initConfig struct {
	Output string    `yaml:"output"`
	FailOn string    `yaml:"fail_on"`
	Rules  initRules `yaml:"rules"`
}

type initRules struct {
	Disabled []string          `yaml:"disabled"`
	Severity map[string]string `yaml:"severity"`
}

// exampleSignalset is the sample file created by --example. The single
// signal carries the canonical property order.
const exampleSignalset = `{
  "commands": [
    {
      "hdr": "7E0",
      "cmd": { "22": "0C" },
      "freq": 0.5,
      "signals": [
        {
          "id": "ENGINE_RPM",
          "path": "Engine",
          "fmt": { "len": 16, "max": 16383.75, "div": 4, "unit": "rpm" },
          "name": "Engine speed",
          "suggestedMetric": "rpm"
        }
      ]
    }
  ]
}
`

func runInit(r *output.Renderer, dir string, force, example bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "siglint.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("siglint.yaml already exists. Use --force to overwrite")
	}

	cfg := initConfig{
		Output: "auto",
		FailOn: "error",
		Rules: initRules{
			Disabled: []string{},
			Severity: map[string]string{},
		},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.Success(configPath)

	if example {
		samplePath := filepath.Join(dir, "example.json")
		if _, err := os.Stat(samplePath); err == nil && !force {
			return fmt.Errorf("%s already exists. Use --force to overwrite", samplePath)
		}
		if err := os.WriteFile(samplePath, []byte(exampleSignalset), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", samplePath, err)
		}
		r.Success(samplePath)
	}

	r.Println("")
	r.Success("siglint initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Add signalset .json files next to the config")
	r.Println("  2. Run 'siglint lint' to check them")
	r.Println("  3. Run 'siglint fix' to apply suggested fixes")
	r.Println("  4. Run 'siglint rules' to see the rule catalog")

	return nil
}
