package richtext

// NormalizeFormats makes equal formats at adjacent indices share pointers and
// equal adjacent slots share the same slice. Empty slots become nil.
//
// The returned value owns a new Formats slice; everything else is shared.
func NormalizeFormats(v *Value) *Value {
	newFormats := make([][]*Format, len(v.Formats))
	for i, atIndex := range v.Formats {
		if len(atIndex) == 0 {
			continue
		}
		if i == 0 || newFormats[i-1] == nil {
			newFormats[i] = atIndex
			continue
		}
		previous := newFormats[i-1]
		reused := make([]*Format, len(atIndex))
		same := len(previous) == len(atIndex)
		for j, f := range atIndex {
			reused[j] = f
			if j < len(previous) && IsFormatEqual(f, previous[j]) {
				reused[j] = previous[j]
			}
			if same && reused[j] != previous[j] {
				same = false
			}
		}
		if same {
			newFormats[i] = previous
		} else {
			newFormats[i] = reused
		}
	}

	out := *v
	out.Formats = newFormats
	return &out
}

// normalizeListChains makes equal list levels on consecutive line separators
// share pointers. Values decoded from JSON lose pointer identity; the
// serializer needs it to keep sibling list items in one list element.
func normalizeListChains(v *Value) {
	var previous []*Format
	for i, r := range v.Text {
		if r != LineSeparator {
			continue
		}
		rep := v.Replacements[i]
		if rep == nil {
			previous = nil
			continue
		}
		chain := make([]*Format, len(rep.Lists))
		for level, f := range rep.Lists {
			chain[level] = f
			if level < len(previous) && IsFormatEqual(f, previous[level]) &&
				(level == 0 || chain[level-1] == previous[level-1]) {
				chain[level] = previous[level]
			}
		}
		v.Replacements[i] = &Replacement{Format: rep.Format, Lists: chain}
		previous = chain
	}
}
