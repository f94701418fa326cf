// Package richtext implements the rich-text value model: a flat rune buffer
// with a parallel per-character format overlay, per-character replacement
// slots for objects and line separators, and a selection.
//
// Values are immutable by convention. Every operation returns a new *Value
// that may share untouched slices with its input, and operations that change
// nothing return their input pointer unchanged so callers can detect no-ops
// with ==.
package richtext

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Precondition errors reported by Validate.
var (
	ErrMismatchedLengths   = errors.New("formats and replacements must match text length")
	ErrSelectionOutOfRange = errors.New("selection out of range")
	ErrDanglingObject      = errors.New("object replacement character without replacement")
	ErrNilFormat           = errors.New("nil format")
	ErrInvalidFormatType   = errors.New("invalid format type")
)

// formatTypePattern accepts registered names such as core/bold and bare
// element names such as ul.
//
//nolint:gochecknoglobals // compiled pattern is read-only
var formatTypePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*(/[a-z][a-z0-9-]*)?$`)

// IsValidFormatType reports whether name can be a format type.
func IsValidFormatType(name string) bool {
	return formatTypePattern.MatchString(name)
}

// Value is a rich-text snapshot.
type Value struct {
	// Text holds the characters, including sentinel characters.
	Text []rune

	// Formats is parallel to Text. A nil slot means no formats.
	Formats [][]*Format

	// Replacements is parallel to Text. A nil slot means no replacement.
	Replacements []*Replacement

	// Start and End delimit the selection; Start == End is a caret.
	Start int
	End   int

	// ActiveFormats overrides the formats reported at a caret. Nil means no
	// override; an empty non-nil slice means "no formats".
	ActiveFormats []*Format
}

// Empty returns an empty value with a caret at 0.
func Empty() *Value {
	return &Value{}
}

// New returns an unformatted value holding text with the caret at its end.
func New(text string) *Value {
	return FromRunes([]rune(text))
}

// FromRunes returns an unformatted value over runes with the caret at the end.
// The slice is copied.
func FromRunes(runes []rune) *Value {
	n := len(runes)
	return &Value{
		Text:         slices.Clone(runes),
		Formats:      make([][]*Format, n),
		Replacements: make([]*Replacement, n),
		Start:        n,
		End:          n,
	}
}

// Len returns the number of characters in v.
func (v *Value) Len() int {
	return len(v.Text)
}

// String returns the raw text, sentinel characters included.
func (v *Value) String() string {
	return string(v.Text)
}

// Clone returns a shallow copy of v with fresh outer slices. Format and
// replacement pointers are shared.
func (v *Value) Clone() *Value {
	out := *v
	out.Text = slices.Clone(v.Text)
	out.Formats = slices.Clone(v.Formats)
	out.Replacements = slices.Clone(v.Replacements)
	out.ActiveFormats = slices.Clone(v.ActiveFormats)
	return &out
}

// withSelection returns a copy of v sharing its slices with a new selection.
func (v *Value) withSelection(start, end int) *Value {
	out := *v
	out.Start = start
	out.End = end
	return &out
}

// Select returns v with the selection moved to [start, end]. The indices are
// clamped to the text. The active-format override is dropped when the
// selection moves.
func Select(v *Value, start, end int) *Value {
	start = clamp(start, 0, len(v.Text))
	end = clamp(end, 0, len(v.Text))
	if start > end {
		start, end = end, start
	}
	if start == v.Start && end == v.End {
		return v
	}
	out := v.withSelection(start, end)
	out.ActiveFormats = nil
	return out
}

// Validate checks the structural invariants of v.
func (v *Value) Validate() error {
	n := len(v.Text)
	if len(v.Formats) != n || len(v.Replacements) != n {
		return fmt.Errorf("%w: text=%d formats=%d replacements=%d",
			ErrMismatchedLengths, n, len(v.Formats), len(v.Replacements))
	}
	if v.Start < 0 || v.End < v.Start || v.End > n {
		return fmt.Errorf("%w: [%d,%d] for length %d", ErrSelectionOutOfRange, v.Start, v.End, n)
	}
	for i, r := range v.Text {
		if r == ObjectReplacement && (v.Replacements[i] == nil || v.Replacements[i].Format == nil) {
			return fmt.Errorf("%w: index %d", ErrDanglingObject, i)
		}
		if err := checkFormats(v.Formats[i]); err != nil {
			return fmt.Errorf("formats at index %d: %w", i, err)
		}
		if rep := v.Replacements[i]; rep != nil {
			if rep.Format != nil {
				if err := checkFormats([]*Format{rep.Format}); err != nil {
					return fmt.Errorf("replacement at index %d: %w", i, err)
				}
			}
			if err := checkFormats(rep.Lists); err != nil {
				return fmt.Errorf("lists at index %d: %w", i, err)
			}
		}
	}
	if err := checkFormats(v.ActiveFormats); err != nil {
		return fmt.Errorf("active formats: %w", err)
	}
	return nil
}

func checkFormats(formats []*Format) error {
	for _, f := range formats {
		if f == nil {
			return ErrNilFormat
		}
		if !IsValidFormatType(f.Type) {
			return fmt.Errorf("%w: %q", ErrInvalidFormatType, f.Type)
		}
	}
	return nil
}

// MustValidate panics if v violates its invariants.
func (v *Value) MustValidate() {
	if err := v.Validate(); err != nil {
		panic(err)
	}
}

// Equal reports whether two values hold the same text, formats and
// replacements. Selection is ignored.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !slices.Equal(a.Text, b.Text) {
		return false
	}
	if len(a.Formats) != len(b.Formats) || len(a.Replacements) != len(b.Replacements) {
		return false
	}
	for i := range a.Formats {
		if len(a.Formats[i]) != len(b.Formats[i]) {
			return false
		}
		for j := range a.Formats[i] {
			if !IsFormatEqual(a.Formats[i][j], b.Formats[i][j]) {
				return false
			}
		}
	}
	for i := range a.Replacements {
		if !isReplacementEqual(a.Replacements[i], b.Replacements[i]) {
			return false
		}
	}
	return true
}

// TextContent returns the plain text of v: objects are dropped and line
// separators become newlines.
func TextContent(v *Value) string {
	var b strings.Builder
	for _, r := range v.Text {
		switch r {
		case ObjectReplacement:
		case LineSeparator:
			b.WriteByte('\n')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsCollapsed reports whether the selection is a caret.
func IsCollapsed(v *Value) bool {
	return v.Start == v.End
}

// IsEmpty reports whether v holds no characters.
func IsEmpty(v *Value) bool {
	return len(v.Text) == 0
}

// IsEmptyLine reports whether the caret sits on an empty line.
func IsEmptyLine(v *Value) bool {
	if v.Start != v.End {
		return false
	}
	n := len(v.Text)
	if n == 0 {
		return true
	}
	if v.Start == 0 && v.Text[0] == LineSeparator {
		return true
	}
	if v.Start == n && v.Text[n-1] == LineSeparator {
		return true
	}
	return v.Start > 0 && v.Start < n &&
		v.Text[v.Start-1] == LineSeparator && v.Text[v.Start] == LineSeparator
}

func clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}
