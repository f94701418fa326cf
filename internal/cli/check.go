package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richtext/internal/logging"
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/reporter"
	"github.com/yaklabco/richtext/pkg/runner"
)

// errFilesFailed is returned when some files could not be processed.
var errFilesFailed = errors.New("some files could not be processed")

// fileFlags are the flags of the commands that walk HTML files.
type fileFlags struct {
	converter converterFlags
	format    string
	jobs      int
	ignore    []string
	noDiff    bool
	noSummary bool
	canonical bool
	compact   bool
	noBackups bool
	write     bool
}

func (f *fileFlags) register(cmd *cobra.Command) {
	f.converter.register(cmd)
	cmd.Flags().StringVar(&f.format, "format", string(config.FormatText), "output format: text, table, json, diff, summary")
	cmd.Flags().IntVar(&f.jobs, logging.FieldJobs, 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&f.noDiff, "no-diff", false, "do not print diffs in text output")
	cmd.Flags().BoolVar(&f.noSummary, "no-summary", false, "do not print the summary line")
	cmd.Flags().BoolVar(&f.canonical, "show-canonical", false, "also list files that are already canonical")
	cmd.Flags().BoolVar(&f.compact, "compact", false, "use compact output format")
}

// cliConfig returns the configuration layer built from flags that were set.
func (f *fileFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{
		Jobs:      f.jobs,
		Ignore:    f.ignore,
		Write:     f.write,
		NoBackups: f.noBackups,
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	return cfg
}

func newCheckCommand() *cobra.Command {
	flags := &fileFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report HTML files that are not in canonical form",
		Long: `Parse every HTML file and compare it with its canonical serialization.

By default checks all .html and .htm files in the current directory and
subdirectories. Exits with status 1 when a file would change.

Examples:
  richtext check                      # Check current directory
  richtext check content/ --multiline p
  richtext check --format json page.html`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args, flags, true)
		},
	}

	flags.register(cmd)

	return cmd
}

// runFiles normalizes the files named by args and reports the outcome. With
// failOnChanges, files left non-canonical yield ErrNotCanonical.
func runFiles(cmd *cobra.Command, args []string, flags *fileFlags, failOnChanges bool) error {
	if cmd.Flags().Changed("format") {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return usageError(err)
		}
	}
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(ctx, cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	conv, err := converterFor(cmd, cfg, &flags.converter)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	logger.Debug("configuration loaded",
		logging.FieldMultiline, cfg.MultilineTag,
		logging.FieldWhitespace, cfg.Whitespace,
		logging.FieldWrite, cfg.Write,
		logging.FieldJobs, cfg.Jobs,
	)

	proc := &runner.CanonicalProcessor{
		Converter: conv,
		Write:     cfg.Write,
		Backups:   cfg.BackupConfig(),
	}
	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Extensions: cfg.Extensions,
		Ignore:     cfg.Ignore,
		Jobs:       cfg.Jobs,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(proc).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:        cmd.OutOrStdout(),
		ErrorWriter:   cmd.ErrOrStderr(),
		Format:        format,
		Color:         colorMode(cmd),
		ShowDiff:      !flags.noDiff,
		ShowSummary:   !flags.noSummary,
		ShowCanonical: flags.canonical,
		Compact:       flags.compact,
		WorkingDir:    workDir,
	})
	if err != nil {
		return internalError(fmt.Errorf("create reporter: %w", err))
	}
	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return internalError(fmt.Errorf("report results: %w", err))
	}

	switch {
	case result.HasErrors():
		return errFilesFailed
	case failOnChanges && !cfg.Write && result.HasChanges():
		return ErrNotCanonical
	}
	return nil
}
