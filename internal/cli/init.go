package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langex/internal/configloader"
	"github.com/yaklabco/langex/internal/logging"
	"github.com/yaklabco/langex/pkg/checker"
	"github.com/yaklabco/langex/pkg/config"
	"github.com/yaklabco/langex/pkg/runner"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new langex configuration file",
		Long: `Create a new .langex.yml configuration file in the current directory.
The file documents every setting; most are commented out and show the
built-in defaults.

Examples:
  langex init                     Create a minimal .langex.yml
  langex init --full              Write every setting uncommented
  langex init --format json       Print the defaults as JSON
  langex init --output custom.yml Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Write every setting uncommented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: "+configloader.DefaultProjectConfig+"; JSON goes to stdout)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive()

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:               flags.full,
		Format:             flags.format,
		CallDefaults:       callDefaults(),
		ExcludedAttributes: checker.DefaultExcludedAttributes(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	// Config files are YAML only; JSON is a reference printout.
	if flags.format == "json" && flags.output == "" {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultProjectConfig
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && flags.force {
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := configloader.WriteConfigBytes(content, absPath, flags.force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'langex extract --dry-run' to preview the changes")

	return nil
}

// callDefaults reports the built-in translate calls per context.
func callDefaults() config.CallsConfig {
	policies := runner.Policies(nil)
	return config.CallsConfig{
		Script:   policies.Script.Prefix,
		Setup:    policies.Setup.Prefix,
		Template: policies.Template.Prefix,
		JSX:      policies.JSX.Prefix,
	}
}
