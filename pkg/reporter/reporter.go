// Package reporter writes the results of a normalization run.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/richtext/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes output for result and returns the number of files that
	// were not canonical.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Status values describing one file.
const (
	StatusCanonical = "canonical"
	StatusChanged   = "changed"
	StatusWritten   = "written"
	StatusError     = "error"
)

// Status returns the status of a file outcome.
func Status(o runner.FileOutcome) string {
	switch {
	case o.Error != nil:
		return StatusError
	case o.Result == nil || !o.Result.Changed():
		return StatusCanonical
	case o.Result.Written:
		return StatusWritten
	default:
		return StatusChanged
	}
}

// displayPath makes path relative to workingDir when possible.
func displayPath(path, workingDir string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
