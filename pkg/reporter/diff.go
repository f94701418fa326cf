package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/runner"
)

// DiffReporter writes unified diffs of every non-canonical file. Errors go
// to the error writer so the output stays a valid patch.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var changed int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: error: %v\n", displayPath(file.Path, r.opts.WorkingDir), file.Error)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}
		changed++

		d := *file.Result.Diff
		d.Path = displayPath(d.Path, r.opts.WorkingDir)
		fmt.Fprint(r.bw, r.styles.FormatDiff(&d))
	}
	return changed, nil
}
