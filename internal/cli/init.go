package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/configloader"
	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
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
		Short: "Initialize a new richtext configuration file",
		Long: `Create a new .richtext.yml configuration file in the current directory
with the default settings. The file can be customized to set the line
element, whitespace policy, paste behavior and custom format types.

Examples:
  richtext init                      Create minimal .richtext.yml
  richtext init --full               Also document every core format type
  richtext init --format json        Create .richtext.json instead
  richtext init --output custom.yml  Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all core formats documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .richtext.yml or .richtext.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive("info")
	ctx := logging.WithLogger(commandContext(cmd), logger)

	if flags.format != "yaml" && flags.format != "json" {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		if flags.format == "json" {
			outputPath = ".richtext.json"
		} else {
			outputPath = ".richtext.yml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return internalError(fmt.Errorf("generate template: %w", err))
	}

	err = configloader.WriteConfig(ctx, absPath, content, flags.force)
	if errors.Is(err, configloader.ErrConfigExists) {
		return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every core format type")
	}
	logger.Info("run 'richtext formats' to see the resulting registry")

	return nil
}
