package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newNormalizeCommand() *cobra.Command {
	flags := &fileFlags{}

	cmd := &cobra.Command{
		Use:   "normalize [paths...|-]",
		Short: "Rewrite HTML files in canonical form",
		Long: `Normalize HTML fragments to their canonical serialization.

Without --write the changes are only reported. A single "-" reads a fragment
from standard input and prints its canonical form.

Examples:
  richtext normalize --write content/     # Rewrite files in place
  richtext normalize --format diff page.html
  echo '<b>x</b>' | richtext normalize -`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if slices.Contains(args, stdinPath) {
				if len(args) != 1 {
					return usageError(fmt.Errorf("%q cannot be combined with other paths", stdinPath))
				}
				return runNormalizeStdin(cmd, flags)
			}
			return runFiles(cmd, args, flags, false)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write canonical output back to the files")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")

	return cmd
}

func runNormalizeStdin(cmd *cobra.Command, flags *fileFlags) error {
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, nil)
	if err != nil {
		return err
	}
	conv, err := converterFor(cmd, cfg, &flags.converter)
	if err != nil {
		return err
	}

	content, err := readInput(ctx, cmd, stdinPath)
	if err != nil {
		return err
	}
	canonical, err := conv.Normalize(strings.TrimSuffix(string(content), "\n"))
	if err != nil {
		return fmt.Errorf("normalize stdin: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), canonical); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
