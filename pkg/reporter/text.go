package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir))

		switch Status(file) {
		case StatusError:
			fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		case StatusCanonical:
			if r.opts.ShowCanonical {
				fmt.Fprintf(r.bw, "%s: %s\n", path, r.styles.Dim.Render(StatusCanonical))
			}
			continue
		case StatusWritten:
			fmt.Fprintf(r.bw, "%s: %s %s\n", path, r.styles.Success.Render(StatusWritten),
				r.styles.FormatDiffStat(file.Result.Diff))
		default:
			fmt.Fprintf(r.bw, "%s: %s %s\n", path, r.styles.Warning.Render("not canonical"),
				r.styles.FormatDiffStat(file.Result.Diff))
		}
		if !file.Result.Stable {
			fmt.Fprintf(r.bw, "  %s\n", r.styles.Warning.Render("output changes again when normalized"))
		}
		if r.opts.ShowDiff && file.Result.Diff.HasChanges() {
			d := *file.Result.Diff
			d.Path = displayPath(d.Path, r.opts.WorkingDir)
			fmt.Fprint(r.bw, r.styles.FormatDiff(&d))
			fmt.Fprintln(r.bw)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FilesChanged, nil
}
