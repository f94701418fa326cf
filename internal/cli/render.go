package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/pkg/richtext"
)

type renderFlags struct {
	converter converterFlags
	output    string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <value.json|->",
		Short: "Serialize a JSON rich-text value to HTML",
		Long: `Read a value in the JSON form printed by "parse --output json" and
serialize it back to an HTML fragment.

Examples:
  richtext render value.json
  richtext parse -o json in.html | richtext render --multiline p -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	flags.converter.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputHTML, "output: html, json, inspect")

	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *renderFlags) error {
	if err := validateOutput(flags.output); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}
	conv, err := converterFor(cmd, cfg, &flags.converter)
	if err != nil {
		return err
	}

	content, err := readInput(ctx, cmd, path)
	if err != nil {
		return err
	}
	v := richtext.Empty()
	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return writeValue(cmd, conv, v, flags.output)
}
