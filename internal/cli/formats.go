package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/config"
)

// Outputs of the formats command.
const (
	formatsTable = "table"
	formatsJSON  = "json"
	formatsYAML  = "yaml"
)

func newFormatsCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "formats",
		Short: "List registered format types",
		Long: `List the format types known to the configured registry: the core formats
minus any unregistered ones, plus the formats declared in configuration.

Examples:
  richtext formats
  richtext formats --output json`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormats(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatsTable, "output: table, json, yaml")

	return cmd
}

func runFormats(cmd *cobra.Command, output string) error {
	switch output {
	case formatsTable, formatsJSON, formatsYAML:
	default:
		return usageError(fmt.Errorf("invalid output %q: must be table, json or yaml", output))
	}
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}
	registry, err := cfg.Registry()
	if err != nil {
		return configError(err)
	}
	types := registry.Types()
	w := cmd.OutOrStdout()

	switch output {
	case formatsJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(types); err != nil {
			return internalError(fmt.Errorf("encode formats: %w", err))
		}
		return nil
	case formatsYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(config.YAMLIndent())
		if err := enc.Encode(types); err != nil {
			return internalError(fmt.Errorf("encode formats: %w", err))
		}
		return enc.Close()
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), w))
	table := pretty.FormatsTable(types, pretty.Width(w))
	if _, err := io.WriteString(w, table.Render(styles)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
