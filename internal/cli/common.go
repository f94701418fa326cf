package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/configloader"
	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/fsutil"
	"github.com/yaklabco/richtext/pkg/markup"
	"github.com/yaklabco/richtext/pkg/richtext"
)

// stdinPath selects standard input wherever a file argument is expected.
const stdinPath = "-"

// Value output modes.
const (
	outputHTML    = "html"
	outputJSON    = "json"
	outputInspect = "inspect"
)

var valueOutputs = []string{outputHTML, outputJSON, outputInspect}

// converterFlags are the flags shared by commands that parse HTML. They are
// applied after configuration loading so an empty --multiline can turn a
// configured line element off.
type converterFlags struct {
	multiline  string
	whitespace string
	disable    []string
}

func (f *converterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.multiline, logging.FieldMultiline, "",
		"line element of the region, e.g. p or li (empty for single-line)")
	cmd.Flags().StringVar(&f.whitespace, "whitespace", "",
		"whitespace policy: "+joinNames(markup.WhitespacePolicies()))
	cmd.Flags().StringSliceVar(&f.disable, "disable-format", nil, "format types to flatten")
}

func (f *converterFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("multiline") {
		cfg.MultilineTag = f.multiline
	}
	if cmd.Flags().Changed("whitespace") {
		cfg.Whitespace = f.whitespace
	}
	if cmd.Flags().Changed("disable-format") {
		cfg.DisableFormats = f.disable
	}
}

// commandContext returns the command's context carrying the default logger.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the configuration for cmd, layering cli over the
// discovered files and the environment.
func loadConfig(ctx context.Context, cmd *cobra.Command, cli *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool("no-config")
	if err != nil {
		return nil, "", fmt.Errorf("get no-config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cli,
	})
	if err != nil {
		return nil, "", configError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}
	return loadResult.Config, workDir, nil
}

// converterFor builds the converter of cfg after applying flags.
func converterFor(cmd *cobra.Command, cfg *config.Config, flags *converterFlags) (*markup.Converter, error) {
	if flags != nil {
		flags.apply(cmd, cfg)
	}
	conv, err := cfg.Converter()
	if err != nil {
		return nil, configError(err)
	}
	return conv, nil
}

// readInput reads path, or standard input when path is "-".
func readInput(ctx context.Context, cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}
	content, _, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// parseSelection checks a --selection flag value against v and applies it.
func parseSelection(v *richtext.Value, sel []int) (*richtext.Value, error) {
	switch len(sel) {
	case 0:
		return v, nil
	case 1:
		sel = append(sel, sel[0])
	case 2:
	default:
		return nil, usageError(fmt.Errorf("selection takes one or two offsets, got %d", len(sel)))
	}
	start, end := sel[0], sel[1]
	if start < 0 || end < start || end > v.Len() {
		return nil, usageError(fmt.Errorf("selection [%d, %d] outside value of length %d", start, end, v.Len()))
	}
	return richtext.Select(v, start, end), nil
}

func validateOutput(output string) error {
	if !slices.Contains(valueOutputs, output) {
		return usageError(fmt.Errorf("invalid output %q: must be one of %s", output, joinNames(valueOutputs)))
	}
	return nil
}

// writeValue prints v as HTML, JSON or an inspection listing.
func writeValue(cmd *cobra.Command, conv *markup.Converter, v *richtext.Value, output string) error {
	w := cmd.OutOrStdout()
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return internalError(fmt.Errorf("encode value: %w", err))
		}
	case outputInspect:
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), w))
		if _, err := io.WriteString(w, styles.FormatValue(v)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	default:
		if _, err := fmt.Fprintln(w, conv.ToHTMLString(v)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
