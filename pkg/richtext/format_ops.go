package richtext

import "slices"

// ApplyFormat applies f to the selection of v.
func ApplyFormat(v *Value, f *Format) *Value {
	return ApplyFormatAt(v, f, v.Start, v.End)
}

// ApplyFormatAt applies f to [start, end).
//
// For a range, any format of the same type is replaced and f is inserted at
// the deepest position shared by every character in the range, so it nests
// outside formats that only cover part of the range. For a caret inside a run
// of the same type, the whole run is updated to f. The active formats are
// always revised so subsequent input picks up f.
func ApplyFormatAt(v *Value, f *Format, start, end int) *Value {
	newFormats := slices.Clone(v.Formats)

	if start == end {
		if start < len(newFormats) {
			if current := findType(newFormats[start], f.Type); current != nil {
				position := slices.Index(newFormats[start], current)
				i := start
				for i >= 0 && position < len(newFormats[i]) && newFormats[i][position] == current {
					newFormats[i] = replaceAt(newFormats[i], position, f)
					i--
				}
				for j := end + 1; j < len(newFormats) && position < len(newFormats[j]) &&
					newFormats[j][position] == current; j++ {
					newFormats[j] = replaceAt(newFormats[j], position, f)
				}
			}
		}
	} else {
		position := -1
		for i := start; i < end; i++ {
			filtered := withoutType(newFormats[i], f.Type)
			newFormats[i] = filtered
			if position < 0 || len(filtered) < position {
				position = len(filtered)
			}
		}
		for i := start; i < end; i++ {
			newFormats[i] = slices.Insert(newFormats[i], position, f)
		}
	}

	out := *v
	out.Formats = newFormats
	out.ActiveFormats = append(withoutType(v.ActiveFormats, f.Type), f)
	return NormalizeFormats(&out)
}

// RemoveFormat removes formats of formatType from the selection of v.
func RemoveFormat(v *Value, formatType string) *Value {
	return RemoveFormatAt(v, formatType, v.Start, v.End)
}

// RemoveFormatAt removes formats of formatType from [start, end). At a caret,
// the whole run of the format under the caret is removed.
func RemoveFormatAt(v *Value, formatType string, start, end int) *Value {
	newFormats := slices.Clone(v.Formats)

	if start == end {
		if start < len(newFormats) {
			if current := findType(newFormats[start], formatType); current != nil {
				for i := start; i >= 0 && containsFormat(newFormats[i], current); i-- {
					newFormats[i] = withoutType(newFormats[i], formatType)
				}
				for j := end + 1; j < len(newFormats) && containsFormat(newFormats[j], current); j++ {
					newFormats[j] = withoutType(newFormats[j], formatType)
				}
			}
		}
	} else {
		for i := start; i < end; i++ {
			if newFormats[i] != nil {
				newFormats[i] = withoutType(newFormats[i], formatType)
			}
		}
	}

	out := *v
	out.Formats = newFormats
	out.ActiveFormats = withoutType(v.ActiveFormats, formatType)
	if out.ActiveFormats == nil {
		out.ActiveFormats = []*Format{}
	}
	return NormalizeFormats(&out)
}

// ToggleFormat removes f's type from the selection when it is active there and
// applies f otherwise.
func ToggleFormat(v *Value, f *Format) *Value {
	if GetActiveFormat(v, f.Type) != nil {
		return RemoveFormat(v, f.Type)
	}
	return ApplyFormat(v, f)
}

// UpdateFormats stamps formats onto [start, end), typically freshly typed
// characters. Formats equal to the ones on the neighbouring characters reuse
// those pointers so the typed text joins the surrounding runs. The result's
// active formats are set to the stamped formats.
func UpdateFormats(v *Value, start, end int, formats []*Format) *Value {
	lo, hi := min(start, end), max(start, end)
	var before, after []*Format
	if lo > 0 {
		before = v.Formats[lo-1]
	}
	if hi < len(v.Formats) {
		after = v.Formats[hi]
	}

	active := make([]*Format, len(formats))
	for i, f := range formats {
		active[i] = f
		switch {
		case i < len(before):
			if IsFormatEqual(f, before[i]) {
				active[i] = before[i]
			}
		case i < len(after):
			if IsFormatEqual(f, after[i]) {
				active[i] = after[i]
			}
		}
	}

	newFormats := slices.Clone(v.Formats)
	for i := lo; i < hi; i++ {
		if len(active) > 0 {
			newFormats[i] = active
		} else {
			newFormats[i] = nil
		}
	}

	out := *v
	out.Formats = newFormats
	out.ActiveFormats = active
	return &out
}

// AddActiveFormats prefixes formats onto every character of v. It returns v
// unchanged when formats is empty.
func AddActiveFormats(v *Value, formats []*Format) *Value {
	if len(formats) == 0 {
		return v
	}
	newFormats := make([][]*Format, len(v.Formats))
	for i, atIndex := range v.Formats {
		newFormats[i] = slices.Concat(formats, atIndex)
	}
	out := *v
	out.Formats = newFormats
	return NormalizeFormats(&out)
}

func replaceAt(formats []*Format, index int, f *Format) []*Format {
	out := slices.Clone(formats)
	out[index] = f
	return out
}
