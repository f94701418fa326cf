package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/edit"
)

type applyFlags struct {
	converter converterFlags
	output    string
}

func newApplyCommand() *cobra.Command {
	flags := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply <script.yml|->",
		Short: "Replay an editing script and print the result",
		Long: `Replay a YAML editing script: a starting fragment, an optional selection
and a list of steps such as insert, format, split, indent or paste.

Example script:
  multiline: li
  html: "<li>one</li><li>two</li>"
  selection: [5, 5]
  steps:
    - op: indent
    - {op: select, start: 0, end: 3}
    - {op: toggle-format, format: core/bold}

Examples:
  richtext apply edits.yml
  richtext apply --output inspect edits.yml`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], flags)
		},
	}

	flags.converter.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", outputHTML, "output: html, json, inspect")

	return cmd
}

func runApply(cmd *cobra.Command, path string, flags *applyFlags) error {
	if err := validateOutput(flags.output); err != nil {
		return err
	}
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

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
	script, err := edit.ParseScript(bytes.NewReader(content))
	if err != nil {
		return usageError(fmt.Errorf("%s: %w", path, err))
	}

	runner := &edit.Runner{
		Converter: conv,
		Paste:     cfg.PasteOptions(conv),
	}
	sess, err := runner.Run(ctx, script)
	if err != nil {
		return fmt.Errorf("apply %s: %w", path, err)
	}

	logger.Debug("script applied",
		logging.FieldPath, path,
		"steps", len(script.Steps),
		"history", sess.History(),
	)
	return writeValue(cmd, sess.Converter(), sess.Value(), flags.output)
}
