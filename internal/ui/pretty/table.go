package pretty

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/richtext/pkg/formattype"
)

const (
	columnGap      = 2
	heavySeparator = "="
	lightSeparator = "-"
	minLastColumn  = 12
)

// Table is a simple left-aligned text table. The last column is truncated
// to fit Width.
type Table struct {
	Headers []string
	Rows    [][]string

	// Groups, when set, holds the row index at which each new group starts;
	// groups are divided by a light separator.
	Groups []int

	// Width is the maximum line width. Zero means DefaultWidth.
	Width int
}

// Render returns the table as text.
func (t *Table) Render(s *Styles) string {
	if len(t.Headers) == 0 {
		return ""
	}
	widths := t.columnWidths()
	total := 1
	for _, w := range widths {
		total += w + columnGap
	}

	var b strings.Builder
	b.WriteString(s.TableHeader.Render(formatRow(t.Headers, widths)))
	b.WriteByte('\n')
	b.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	b.WriteByte('\n')
	for i, row := range t.Rows {
		if i > 0 && containsInt(t.Groups, i) {
			b.WriteString(s.TableSeparator.Render(strings.Repeat(lightSeparator, total)))
			b.WriteByte('\n')
		}
		b.WriteString(formatRow(row, widths))
		b.WriteByte('\n')
	}
	b.WriteString(s.TableSeparator.Render(strings.Repeat(heavySeparator, total)))
	b.WriteByte('\n')
	return b.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	measure := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c))
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}

	limit := t.Width
	if limit <= 0 {
		limit = DefaultWidth
	}
	used := 1
	for _, w := range widths[:len(widths)-1] {
		used += w + columnGap
	}
	last := len(widths) - 1
	widths[last] = min(widths[last], max(minLastColumn, limit-used-columnGap))
	return widths
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteByte(' ')
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = truncate(cells[i], w)
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", w-utf8.RuneCountInString(cell)+columnGap))
		}
	}
	return b.String()
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// FormatsTable lists format types, one row each. Rows are grouped by the
// namespace part of the name.
func FormatsTable(types []*formattype.FormatType, width int) *Table {
	t := &Table{
		Headers: []string{"NAME", "TAG", "CLASS", "OBJECT", "ATTRIBUTES"},
		Width:   width,
	}
	namespace := ""
	for _, ft := range types {
		ns, _, _ := strings.Cut(ft.Name, "/")
		if len(t.Rows) > 0 && ns != namespace {
			t.Groups = append(t.Groups, len(t.Rows))
		}
		namespace = ns

		object := ""
		switch {
		case ft.Object:
			object = "void"
		case !ft.Editable():
			object = "opaque"
		}
		attrs := make([]string, 0, len(ft.Attributes))
		for _, key := range slices.Sorted(maps.Keys(ft.Attributes)) {
			if html := ft.Attributes[key]; html != key {
				attrs = append(attrs, key+"="+html)
			} else {
				attrs = append(attrs, key)
			}
		}
		t.Rows = append(t.Rows, []string{
			ft.Name, ft.TagName, ft.ClassName, object, strings.Join(attrs, " "),
		})
	}
	return t
}
