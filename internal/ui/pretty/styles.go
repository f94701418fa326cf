// Package pretty renders styled terminal output with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is assumed when the terminal width is unknown.
const DefaultWidth = 100

// Styles holds the styles used across commands.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	FilePath lipgloss.Style
	Label    lipgloss.Style
	Dim      lipgloss.Style
	Bold     lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Value inspection.
	Text      lipgloss.Style
	Selection lipgloss.Style
	Separator lipgloss.Style
	Object    lipgloss.Style
	Format    lipgloss.Style
	List      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is disabled.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Warning: plain, Success: plain, Failure: plain,
			FilePath: plain, Label: plain, Dim: plain, Bold: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
			Text: plain, Selection: plain, Separator: plain, Object: plain, Format: plain, List: plain,
			TableHeader: plain, TableSeparator: plain,
		}
	}

	color := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Styles{
		Error:   color("9").Bold(true),
		Warning: color("11").Bold(true),
		Success: color("10").Bold(true),
		Failure: color("9").Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Label:    color("12"),
		Dim:      color("8"),
		Bold:     lipgloss.NewStyle().Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    color("14"),
		DiffAdd:     color("10"),
		DiffRemove:  color("9"),
		DiffContext: color("8"),

		Text:      lipgloss.NewStyle(),
		Selection: lipgloss.NewStyle().Reverse(true),
		Separator: color("13").Bold(true),
		Object:    color("11"),
		Format:    color("14"),
		List:      color("13"),

		TableHeader:    color("7").Bold(true),
		TableSeparator: color("8"),
	}
}

// IsColorEnabled resolves a color mode ("auto", "always", "never") for
// writer. Auto enables color for terminals unless NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Width returns the column count of the terminal behind writer, or
// DefaultWidth when writer is not a terminal.
func Width(writer io.Writer) int {
	f, ok := writer.(*os.File)
	if !ok {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd())) //nolint:gosec // file descriptors fit in int
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
