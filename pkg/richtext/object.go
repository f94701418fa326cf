package richtext

// InsertObject replaces the selection with an object replacement character
// carrying f.
func InsertObject(v *Value, f *Format) *Value {
	return InsertObjectAt(v, f, v.Start, v.End)
}

// InsertObjectAt replaces [start, end) with an object carrying f.
func InsertObjectAt(v *Value, f *Format, start, end int) *Value {
	return InsertAt(v, &Value{
		Text:         []rune{ObjectReplacement},
		Formats:      make([][]*Format, 1),
		Replacements: []*Replacement{ObjectReplacementOf(f)},
	}, start, end)
}

// RemoveObject removes the selected object, or the object right before a
// caret. It returns v itself when there is none.
func RemoveObject(v *Value) *Value {
	if GetActiveObject(v) != nil {
		return RemoveAt(v, v.Start, v.End)
	}
	if v.Start == v.End && v.Start > 0 && v.Text[v.Start-1] == ObjectReplacement {
		return RemoveAt(v, v.Start-1, v.Start)
	}
	return v
}
