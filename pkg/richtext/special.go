package richtext

// Sentinel characters stored in Value.Text.
const (
	// LineSeparator marks a line boundary in a multiline value. Its replacement
	// slot carries the list nesting chain of the line that follows it.
	LineSeparator = '\u2028'

	// ObjectReplacement occupies the slot of an embedded object. Its replacement
	// slot always carries the object's format.
	ObjectReplacement = '\ufffc'

	// ZeroWidthNoBreakSpace is reserved for padding editable trees and is
	// stripped from parsed text.
	ZeroWidthNoBreakSpace = '\ufeff'
)

// IsReserved reports whether r may not appear as plain text in a value.
func IsReserved(r rune) bool {
	return r == ObjectReplacement || r == ZeroWidthNoBreakSpace
}
