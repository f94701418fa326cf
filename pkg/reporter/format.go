package reporter

import (
	"fmt"
	"slices"
	"strings"
)

// Format selects how file results are rendered.
type Format string

const (
	FormatText    Format = "text"    // one line per changed file plus its diff
	FormatTable   Format = "table"   // lipgloss table of every file
	FormatJSON    Format = "json"    // machine-readable report
	FormatDiff    Format = "diff"    // unified diffs only
	FormatSummary Format = "summary" // counts only
)

// Formats lists the accepted formats in help order.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatDiff, FormatSummary}
}

// ParseFormat resolves a --format value. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	if f := Format(name); f.IsValid() {
		return f, nil
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
}

func (f Format) String() string { return string(f) }

// IsValid reports whether f is one of Formats.
func (f Format) IsValid() bool {
	return slices.Contains(Formats(), f)
}
