// Package cli provides the Cobra command structure for richtext.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root richtext command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string

	rootCmd := &cobra.Command{
		Use:   "richtext",
		Short: "Parse, edit and normalize rich-text HTML fragments",
		Long: `richtext converts HTML fragments from editable regions into a flat
rich-text value (text plus per-character formats) and back.

It can inspect how a fragment is understood, normalize fragments to their
canonical serialization, replay editing scripts, and convert pasted content
(HTML, Markdown, code or plain text) into values.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().Bool("no-config", false, "ignore system, user and project config files")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newNormalizeCommand())
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newPasteCommand())
	rootCmd.AddCommand(newFormatsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
