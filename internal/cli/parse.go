package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
)

type parseFlags struct {
	converter converterFlags
	output    string
	selection []int
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse an HTML fragment into a rich-text value",
		Long: `Parse an HTML fragment and print the resulting value.

The default inspect output shows the text with line separators and object
slots marked, followed by the format runs, list chains and objects.

Examples:
  richtext parse fragment.html
  richtext parse --multiline li --output json list.html
  echo '<b>bold</b> text' | richtext parse -`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	flags.converter.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputInspect, "output: html, json, inspect")
	cmd.Flags().IntSliceVar(&flags.selection, "selection", nil, "selection start[,end] to place in the value")

	return cmd
}

func runParse(cmd *cobra.Command, path string, flags *parseFlags) error {
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
	v, err := conv.Create(string(content))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	v, err = parseSelection(v, flags.selection)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("parsed fragment",
		logging.FieldPath, path,
		"length", v.Len(),
		logging.FieldMultiline, conv.MultilineTag(),
	)
	return writeValue(cmd, conv, v, flags.output)
}
