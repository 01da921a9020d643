// Package cli provides the Cobra command structure for langex.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/langex/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root langex command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "langex",
		Short: "Extract hard-coded UI text into i18n translation keys",
		Long: `langex finds user-visible text in JavaScript, TypeScript, JSX and Vue
single-file components, replaces it with translate calls such as
$t('welcome_back') and collects the texts into a translation catalog.

Rewrites are computed as non-overlapping spans over the original source,
so formatting outside the replaced literals is preserved byte for byte.
Sources are only written with --write, atomically and with backups.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
