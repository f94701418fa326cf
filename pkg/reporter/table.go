package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/runner"
)

// TableReporter formats results as one table row per file.
type TableReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TableReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  pretty.Width(opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		return 0, nil
	}

	table := &pretty.Table{
		Headers: []string{"STATUS", "+", "-", "STABLE", "FILE"},
		Width:   r.width,
	}
	for _, file := range result.Files {
		row := []string{Status(file), "", "", "", displayPath(file.Path, r.opts.WorkingDir)}
		if file.Result != nil {
			if d := file.Result.Diff; d.HasChanges() {
				row[1] = strconv.Itoa(d.Insertions)
				row[2] = strconv.Itoa(d.Deletions)
			}
			row[3] = "yes"
			if !file.Result.Stable {
				row[3] = "no"
			}
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Fprint(r.bw, table.Render(r.styles))
	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}
	return result.Stats.FilesChanged, nil
}
