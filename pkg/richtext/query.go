package richtext

import "slices"

// GetActiveFormats returns the formats active at the selection.
//
// At a caret the ActiveFormats override wins. Otherwise a format is active
// when both neighbouring characters carry it; at either end of the text the
// single existing neighbour decides. For a range, the result is the
// intersection of the formats of every selected character.
func GetActiveFormats(v *Value) []*Format {
	if v.Start == v.End {
		if v.ActiveFormats != nil {
			return v.ActiveFormats
		}
		n := len(v.Formats)
		switch {
		case n == 0:
			return nil
		case v.Start == 0:
			return v.Formats[0]
		case v.Start >= n:
			return v.Formats[n-1]
		default:
			return intersectFormats(v.Formats[v.Start-1], v.Formats[v.Start])
		}
	}

	active := v.Formats[v.Start]
	for i := v.Start + 1; i < v.End && len(active) > 0; i++ {
		active = intersectFormats(active, v.Formats[i])
	}
	return active
}

// intersectFormats keeps the formats of a that have an equal counterpart in
// b, in the order of a. It returns a itself when nothing is dropped.
func intersectFormats(a, b []*Format) []*Format {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var out []*Format
	dropped := false
	for _, f := range a {
		if slices.ContainsFunc(b, func(other *Format) bool { return IsFormatEqual(f, other) }) {
			out = append(out, f)
		} else {
			dropped = true
		}
	}
	if !dropped {
		return a
	}
	return out
}

// GetActiveFormat returns the active format of the given type, or nil.
func GetActiveFormat(v *Value, formatType string) *Format {
	return findType(GetActiveFormats(v), formatType)
}

// GetActiveObject returns the object format when the selection covers exactly
// one object replacement character.
func GetActiveObject(v *Value) *Format {
	if v.Start+1 != v.End || v.Text[v.Start] != ObjectReplacement {
		return nil
	}
	if rep := v.Replacements[v.Start]; rep != nil {
		return rep.Format
	}
	return nil
}
