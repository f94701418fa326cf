package pretty

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/richtext/pkg/richtext"
)

// Markers used when printing sentinel characters.
const (
	lineSeparatorMarker = "⏎"
	objectMarker        = "□"
)

// FormatValue describes v for humans: its text with sentinel markers and
// the selection highlighted, then its format runs, lines and objects.
func (s *Styles) FormatValue(v *richtext.Value) string {
	var b strings.Builder

	b.WriteString(s.Label.Render("text:"))
	b.WriteString(" ")
	b.WriteString(s.formatText(v))
	b.WriteByte('\n')

	b.WriteString(s.Label.Render("selection:"))
	if richtext.IsCollapsed(v) {
		fmt.Fprintf(&b, " caret at %d\n", v.Start)
	} else {
		fmt.Fprintf(&b, " %d-%d\n", v.Start, v.End)
	}

	if runs := formatRuns(v); len(runs) > 0 {
		b.WriteString(s.Label.Render("formats:"))
		b.WriteByte('\n')
		for _, r := range runs {
			fmt.Fprintf(&b, "  %d-%d %s\n", r.start, r.end, s.Format.Render(describeFormat(r.format)))
		}
	}

	var lines, objects []string
	for i, r := range v.Text {
		rep := v.Replacements[i]
		switch {
		case r == richtext.LineSeparator:
			chain := "(no list)"
			if rep.Depth() > 0 {
				names := make([]string, 0, rep.Depth())
				for _, f := range rep.Lists {
					names = append(names, describeFormat(f))
				}
				chain = strings.Join(names, " > ")
			}
			lines = append(lines, fmt.Sprintf("  %d %s", i, s.List.Render(chain)))
		case rep != nil && rep.Format != nil:
			objects = append(objects, fmt.Sprintf("  %d %s", i, s.Object.Render(describeFormat(rep.Format))))
		}
	}
	if len(lines) > 0 {
		b.WriteString(s.Label.Render("lines:"))
		b.WriteByte('\n')
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteByte('\n')
	}
	if len(objects) > 0 {
		b.WriteString(s.Label.Render("objects:"))
		b.WriteByte('\n')
		b.WriteString(strings.Join(objects, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Styles) formatText(v *richtext.Value) string {
	var b strings.Builder
	b.WriteByte('"')
	for i, r := range v.Text {
		if i == v.Start && richtext.IsCollapsed(v) {
			b.WriteString(s.Selection.Render("|"))
		}
		var text string
		switch r {
		case richtext.LineSeparator:
			text = s.Separator.Render(lineSeparatorMarker)
		case richtext.ObjectReplacement:
			text = s.Object.Render(objectMarker)
		default:
			text = string(r)
		}
		if i >= v.Start && i < v.End {
			text = s.Selection.Render(text)
		}
		b.WriteString(text)
	}
	if v.Start == len(v.Text) && richtext.IsCollapsed(v) {
		b.WriteString(s.Selection.Render("|"))
	}
	b.WriteByte('"')
	return b.String()
}

type formatRun struct {
	format     *richtext.Format
	start, end int
}

// formatRuns lists maximal runs of the same *Format in order of their start.
func formatRuns(v *richtext.Value) []formatRun {
	var runs []formatRun
	open := map[*richtext.Format]int{}
	for i, formats := range v.Formats {
		for _, f := range formats {
			if idx, ok := open[f]; ok && runs[idx].end == i {
				runs[idx].end = i + 1
				continue
			}
			open[f] = len(runs)
			runs = append(runs, formatRun{format: f, start: i, end: i + 1})
		}
	}
	slices.SortStableFunc(runs, func(a, b formatRun) int { return a.start - b.start })
	return runs
}

func describeFormat(f *richtext.Format) string {
	if f == nil {
		return ""
	}
	attrs := make(map[string]string, len(f.Attributes)+len(f.UnregisteredAttributes))
	maps.Copy(attrs, f.UnregisteredAttributes)
	maps.Copy(attrs, f.Attributes)
	if len(attrs) == 0 {
		return f.Type
	}
	keys := slices.Sorted(maps.Keys(attrs))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, attrs[k]))
	}
	return f.Type + " " + strings.Join(parts, " ")
}
