package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/richtext/pkg/diff"
)

// FormatDiff renders d in unified format with colored markers. A diff without
// changes renders as "".
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	path := strings.TrimPrefix(d.Path, "/")
	b.WriteString(s.DiffHeader.Render("--- a/" + path))
	b.WriteByte('\n')
	b.WriteString(s.DiffHeader.Render("+++ b/" + path))
	b.WriteByte('\n')
	for _, h := range d.Hunks {
		b.WriteString(s.DiffHunk.Render(
			fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)))
		b.WriteByte('\n')
		for _, l := range h.Lines {
			text := string(l.Kind.Prefix()) + l.Text
			switch l.Kind {
			case diff.Insert:
				text = s.DiffAdd.Render(text)
			case diff.Delete:
				text = s.DiffRemove.Render(text)
			default:
				text = s.DiffContext.Render(text)
			}
			b.WriteString(text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatDiffStat renders "+N -M" for d.
func (s *Styles) FormatDiffStat(d *diff.Diff) string {
	if !d.HasChanges() {
		return s.Dim.Render("unchanged")
	}
	return s.DiffAdd.Render(fmt.Sprintf("+%d", d.Insertions)) + " " +
		s.DiffRemove.Render(fmt.Sprintf("-%d", d.Deletions))
}
