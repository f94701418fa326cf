package richtext

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Insert replaces the current selection of v with x and collapses the caret
// after the inserted content.
func Insert(v, x *Value) *Value {
	return InsertAt(v, x, v.Start, v.End)
}

// InsertText inserts unformatted text at the selection.
func InsertText(v *Value, text string) *Value {
	return Insert(v, New(text))
}

// TypeText inserts text at the selection the way typing does: the new
// characters carry the formats active at the selection, joining the runs
// around them.
func TypeText(v *Value, text string) *Value {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return InsertText(v, text)
	}
	active := GetActiveFormats(v)
	start := v.Start
	return UpdateFormats(InsertText(v, text), start, start+n, active)
}

// InsertAt replaces [start, end) of v with x. Indices must satisfy
// 0 <= start <= end <= v.Len().
func InsertAt(v, x *Value, start, end int) *Value {
	index := start + len(x.Text)
	return NormalizeFormats(&Value{
		Text:         slices.Concat(v.Text[:start], x.Text, v.Text[end:]),
		Formats:      slices.Concat(v.Formats[:start], x.Formats, v.Formats[end:]),
		Replacements: slices.Concat(v.Replacements[:start], x.Replacements, v.Replacements[end:]),
		Start:        index,
		End:          index,
	})
}

// Remove deletes the selected content.
func Remove(v *Value) *Value {
	return RemoveAt(v, v.Start, v.End)
}

// RemoveAt deletes [start, end) from v. When the removed range joins two lines
// of different nesting depth, the lines following the join are clipped so no
// line is nested more than one level deeper than the line before it.
func RemoveAt(v *Value, start, end int) *Value {
	out := InsertAt(v, Empty(), start, end)
	if slices.Contains(v.Text[start:end], LineSeparator) {
		repairListDepth(out, start)
	}
	return out
}

// repairListDepth clips list chains after index in place. v must own its
// Replacements slice.
func repairListDepth(v *Value, index int) {
	depth := 0
	if lineIndex, ok := GetLineIndex(v, index); ok {
		depth = v.Replacements[lineIndex].Depth()
	}
	for i := index; i < len(v.Text); i++ {
		if v.Text[i] != LineSeparator {
			continue
		}
		rep := v.Replacements[i]
		if rep.Depth() <= depth+1 {
			return
		}
		depth++
		v.Replacements[i] = &Replacement{Lists: slices.Clip(rep.Lists[:depth])}
	}
}

// Slice returns the selected part of v.
func Slice(v *Value) *Value {
	return SliceAt(v, v.Start, v.End)
}

// SliceAt returns the [start, end) part of v with the caret at its end.
func SliceAt(v *Value, start, end int) *Value {
	n := end - start
	return &Value{
		Text:         slices.Clone(v.Text[start:end]),
		Formats:      slices.Clone(v.Formats[start:end]),
		Replacements: slices.Clone(v.Replacements[start:end]),
		Start:        n,
		End:          n,
	}
}

// Concat joins values in order.
func Concat(values ...*Value) *Value {
	return Join(values, nil)
}

// Join joins values with separator between each pair. A nil separator joins
// without one.
func Join(values []*Value, separator *Value) *Value {
	out := &Value{}
	for i, v := range values {
		if i > 0 && separator != nil {
			out.Text = append(out.Text, separator.Text...)
			out.Formats = append(out.Formats, separator.Formats...)
			out.Replacements = append(out.Replacements, separator.Replacements...)
		}
		out.Text = append(out.Text, v.Text...)
		out.Formats = append(out.Formats, v.Formats...)
		out.Replacements = append(out.Replacements, v.Replacements...)
	}
	out.Start = len(out.Text)
	out.End = out.Start
	return NormalizeFormats(out)
}

// Split cuts v at every occurrence of sep. The selection of v is carried into
// the pieces it overlaps; other pieces get a caret at 0.
func Split(v *Value, sep string) []*Value {
	var parts []string
	if sep == "" {
		parts = strings.Split(string(v.Text), "")
	} else {
		parts = strings.Split(string(v.Text), sep)
	}
	sepLen := utf8.RuneCountInString(sep)

	out := make([]*Value, 0, len(parts))
	next := 0
	for _, part := range parts {
		from := next
		n := utf8.RuneCountInString(part)
		piece := SliceAt(v, from, from+n)
		piece.Start, piece.End = 0, 0
		next = from + n + sepLen

		if v.Start >= from && v.Start < next {
			piece.Start = v.Start - from
		}
		switch {
		case v.End >= from && v.End <= from+n:
			piece.End = v.End - from
		case v.Start < next && v.End > from+n:
			piece.End = n
		}
		piece.Start = min(piece.Start, n)
		piece.End = clamp(piece.End, piece.Start, n)
		out = append(out, piece)
	}
	return out
}

// SplitAt cuts v into the content before start and after end. Line
// separators touching the cut are dropped. The second value has its caret at 0.
func SplitAt(v *Value, start, end int) (*Value, *Value) {
	for start > 0 && v.Text[start-1] == LineSeparator {
		start--
	}
	for end < len(v.Text) && v.Text[end] == LineSeparator {
		end++
	}
	before := SliceAt(v, 0, start)
	after := SliceAt(v, end, len(v.Text))
	after.Start, after.End = 0, 0
	return before, after
}

// Replace substitutes every match of re with the literal text repl. The
// inserted text takes the formats of the first matched character.
func Replace(v *Value, re *regexp.Regexp, repl string) *Value {
	return replaceMatches(v, re, func(_ string, offset int) *Value {
		x := New(repl)
		if offset < len(v.Formats) && v.Formats[offset] != nil {
			for i := range x.Formats {
				x.Formats[i] = v.Formats[offset]
			}
		}
		return x
	})
}

// ReplaceFunc substitutes every match of re with the value returned by fn.
func ReplaceFunc(v *Value, re *regexp.Regexp, fn func(match string) *Value) *Value {
	return replaceMatches(v, re, func(match string, _ int) *Value {
		return fn(match)
	})
}

func replaceMatches(v *Value, re *regexp.Regexp, fn func(match string, offset int) *Value) *Value {
	s := string(v.Text)
	matches := re.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return v
	}

	out := &Value{}
	last, lastByte := 0, 0
	caret := -1
	for _, m := range matches {
		from := last + utf8.RuneCountInString(s[lastByte:m[0]])
		to := from + utf8.RuneCountInString(s[m[0]:m[1]])

		out.Text = append(out.Text, v.Text[last:from]...)
		out.Formats = append(out.Formats, v.Formats[last:from]...)
		out.Replacements = append(out.Replacements, v.Replacements[last:from]...)

		x := fn(s[m[0]:m[1]], from)
		out.Text = append(out.Text, x.Text...)
		out.Formats = append(out.Formats, x.Formats...)
		out.Replacements = append(out.Replacements, x.Replacements...)
		caret = len(out.Text)

		last, lastByte = to, m[1]
	}
	out.Text = append(out.Text, v.Text[last:]...)
	out.Formats = append(out.Formats, v.Formats[last:]...)
	out.Replacements = append(out.Replacements, v.Replacements[last:]...)

	out.Start, out.End = v.Start, v.End
	if v.Start != 0 {
		out.Start, out.End = caret, caret
	}
	out.Start = min(out.Start, len(out.Text))
	out.End = clamp(out.End, out.Start, len(out.Text))
	return NormalizeFormats(out)
}
