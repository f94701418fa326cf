package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/richtext/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "2 files not canonical, 1 written (5 files checked)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	checked := s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed)))

	if stats.FilesChanged == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files canonical") + checked + "\n"
	}

	var parts []string
	if stats.FilesChanged > 0 {
		parts = append(parts, s.Warning.Render(
			fmt.Sprintf("%d %s not canonical", stats.FilesChanged, plural(stats.FilesChanged))))
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d written", stats.FilesWritten)))
	}
	if stats.FilesUnstable > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d unstable", stats.FilesUnstable)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(
			fmt.Sprintf("%d %s failed", stats.FilesErrored, plural(stats.FilesErrored))))
	}
	return strings.Join(parts, ", ") + checked + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString("  " + label + strings.Repeat(" ", max(1, 19-len(label))) + style(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString(s.Bold.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row("Files discovered:", stats.FilesDiscovered, s.Bold.Render)
	row("Files checked:", stats.FilesProcessed, s.Bold.Render)
	row("Canonical:", stats.FilesCanonical, s.Success.Render)
	if stats.FilesChanged > 0 {
		row("Not canonical:", stats.FilesChanged, s.Warning.Render)
	}
	if stats.FilesUnstable > 0 {
		row("Unstable:", stats.FilesUnstable, s.Warning.Render)
	}
	if stats.FilesWritten > 0 {
		row("Written:", stats.FilesWritten, s.Success.Render)
	}
	if stats.FilesErrored > 0 {
		row("Failed:", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Run failed with errors"))
	case stats.FilesChanged > stats.FilesWritten:
		builder.WriteString(s.Warning.Render("Some files are not canonical"))
	default:
		builder.WriteString(s.Success.Render("All files canonical"))
	}
	builder.WriteString("\n")

	return builder.String()
}
