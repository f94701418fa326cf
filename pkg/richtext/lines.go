package richtext

import "slices"

// GetLineIndex returns the index of the last line separator before index.
// It reports false when index lies on the first line, which has no separator.
func GetLineIndex(v *Value, index int) (int, bool) {
	for i := min(index, len(v.Text)) - 1; i >= 0; i-- {
		if v.Text[i] == LineSeparator {
			return i, true
		}
	}
	return 0, false
}

// lineChain returns the list chain of the line starting at lineIndex. The
// first line (ok == false) is never nested.
func lineChain(v *Value, lineIndex int, ok bool) []*Format {
	if !ok || lineIndex < 0 {
		return nil
	}
	return v.Replacements[lineIndex].lists()
}

// GetParentLineIndex returns the separator of the closest preceding line that
// is exactly one level shallower than the line at lineIndex. It reports false
// when there is none, which for a depth-one line means the first line is the
// parent.
func GetParentLineIndex(v *Value, lineIndex int) (int, bool) {
	depth := v.Replacements[lineIndex].Depth()
	for i := lineIndex - 1; i >= 0; i-- {
		if v.Text[i] != LineSeparator {
			continue
		}
		if v.Replacements[i].Depth() == depth-1 {
			return i, true
		}
	}
	return 0, false
}

// GetLastChildIndex returns the separator of the last line nested under the
// line at lineIndex, or lineIndex itself if it has no children. A negative
// lineIndex denotes the first line.
func GetLastChildIndex(v *Value, lineIndex int) int {
	depth := 0
	if lineIndex >= 0 {
		depth = v.Replacements[lineIndex].Depth()
	}
	child := lineIndex
	for i := max(lineIndex, 0); i < len(v.Text); i++ {
		if v.Text[i] != LineSeparator {
			continue
		}
		if v.Replacements[i].Depth() < depth {
			return child
		}
		child = i
	}
	return child
}

// IsListRootSelected reports whether the selection starts on a line that is
// not nested in any list.
func IsListRootSelected(v *Value) bool {
	lineIndex, ok := GetLineIndex(v, v.Start)
	return len(lineChain(v, lineIndex, ok)) == 0
}

// IsActiveListType reports whether the innermost list at the selection start
// has the given type. Lines at the root take rootType.
func IsActiveListType(v *Value, listType, rootType string) bool {
	lineIndex, ok := GetLineIndex(v, v.Start)
	chain := lineChain(v, lineIndex, ok)
	if len(chain) == 0 {
		return listType == rootType
	}
	return chain[len(chain)-1].Type == listType
}

// InsertLineSeparator replaces the selection with a line separator. The new
// line inherits the list chain of the line it splits.
func InsertLineSeparator(v *Value) *Value {
	return InsertLineSeparatorAt(v, v.Start, v.End)
}

// InsertLineSeparatorAt replaces [start, end) with a line separator that
// inherits the chain of the closest preceding separator.
func InsertLineSeparatorAt(v *Value, start, end int) *Value {
	var rep *Replacement
	if lineIndex, ok := GetLineIndex(v, start); ok {
		rep = v.Replacements[lineIndex]
	}
	return insertSeparator(v, rep, start, end)
}

// InsertLineSeparatorWithLists replaces [start, end) with a line separator
// carrying lists as its chain. A nil chain starts a top-level line.
func InsertLineSeparatorWithLists(v *Value, start, end int, lists []*Format) *Value {
	return insertSeparator(v, ListReplacement(lists...), start, end)
}

func insertSeparator(v *Value, rep *Replacement, start, end int) *Value {
	return InsertAt(v, &Value{
		Text:         []rune{LineSeparator},
		Formats:      make([][]*Format, 1),
		Replacements: []*Replacement{rep},
	}, start, end)
}

// RemoveLineSeparator handles deletion next to a line separator. With a caret
// next to a nested separator, one nesting level is dropped instead of joining
// the lines. It reports false when there is no separator to act on.
func RemoveLineSeparator(v *Value, backward bool) (*Value, bool) {
	collapsed := IsCollapsed(v)
	index := v.Start - 1
	removeStart, removeEnd := v.Start, v.End
	if collapsed {
		removeStart = v.Start - 1
	}
	if !backward {
		index = v.End
		removeStart = v.Start
		if collapsed {
			removeEnd = v.End + 1
		}
	}
	if index < 0 || index >= len(v.Text) || v.Text[index] != LineSeparator {
		return v, false
	}

	if rep := v.Replacements[index]; collapsed && rep.Depth() > 0 {
		newReplacements := slices.Clone(v.Replacements)
		newReplacements[index] = ListReplacement(rep.Lists[:len(rep.Lists)-1]...)
		out := *v
		out.Replacements = newReplacements
		return &out, true
	}
	return RemoveAt(v, removeStart, removeEnd), true
}

// CanIndentListItems reports whether the line at the selection start can be
// nested one level deeper: it must not be the first line and must not already
// be deeper than the line before it.
func CanIndentListItems(v *Value) bool {
	lineIndex, ok := GetLineIndex(v, v.Start)
	if !ok {
		return false
	}
	previous, previousOK := GetLineIndex(v, lineIndex)
	return v.Replacements[lineIndex].Depth() <= len(lineChain(v, previous, previousOK))
}

// targetLevelLineIndex finds an earlier line exactly one level deeper than
// the line at lineIndex without crossing a line at the same or a shallower
// level. Indenting joins that line's list.
func targetLevelLineIndex(v *Value, lineIndex int) (int, bool) {
	depth := v.Replacements[lineIndex].Depth()
	for i := lineIndex - 1; i >= 0; i-- {
		if v.Text[i] != LineSeparator {
			continue
		}
		d := v.Replacements[i].Depth()
		if d == depth+1 {
			return i, true
		}
		if d <= depth {
			return 0, false
		}
	}
	return 0, false
}

// IndentListItems nests the selected lines one level deeper. A line joins the
// child list of its previous sibling when there is one; otherwise a new level
// is created, repeating the previous line's innermost list or rootFormat at
// the root.
func IndentListItems(v *Value, rootFormat *Format) *Value {
	if !CanIndentListItems(v) {
		return v
	}
	lineIndex, _ := GetLineIndex(v, v.Start)
	previous, previousOK := GetLineIndex(v, lineIndex)
	target, targetOK := targetLevelLineIndex(v, lineIndex)

	newReplacements := slices.Clone(v.Replacements)
	for i := lineIndex; i < max(v.End, lineIndex+1); i++ {
		if v.Text[i] != LineSeparator {
			continue
		}
		own := newReplacements[i].lists()
		var chain []*Format
		if targetOK {
			targetChain := v.Replacements[target].Lists
			chain = slices.Concat(targetChain, own[min(len(targetChain)-1, len(own)):])
		} else {
			previousChain := lineChain(v, previous, previousOK)
			last := rootFormat
			if len(previousChain) > 0 {
				last = previousChain[len(previousChain)-1]
			}
			chain = slices.Concat(previousChain, []*Format{last}, own[min(len(previousChain), len(own)):])
		}
		newReplacements[i] = ListReplacement(chain...)
	}

	out := *v
	out.Replacements = newReplacements
	return &out
}

// CanOutdentListItems reports whether the line at the selection start is
// nested.
func CanOutdentListItems(v *Value) bool {
	lineIndex, ok := GetLineIndex(v, v.Start)
	return ok && v.Replacements[lineIndex] != nil
}

// OutdentListItems moves the selected lines, and every child of the last
// selected line, one level up.
func OutdentListItems(v *Value) *Value {
	if !CanOutdentListItems(v) {
		return v
	}
	startLine, _ := GetLineIndex(v, v.Start)
	parent, parentOK := GetParentLineIndex(v, startLine)
	parentChain := lineChain(v, parent, parentOK)
	endLine, endOK := GetLineIndex(v, v.End)
	if !endOK {
		endLine = -1
	}
	lastChild := GetLastChildIndex(v, endLine)

	newReplacements := slices.Clone(v.Replacements)
	for i := startLine; i <= lastChild; i++ {
		if v.Text[i] != LineSeparator {
			continue
		}
		own := newReplacements[i].lists()
		var rest []*Format
		if len(parentChain)+1 < len(own) {
			rest = own[len(parentChain)+1:]
		}
		newReplacements[i] = ListReplacement(slices.Concat(parentChain, rest)...)
	}

	out := *v
	out.Replacements = newReplacements
	return &out
}

// ChangeListType sets the list type of the lines touched by the selection to
// listFormat. Levels from the start line's depth to the end line's depth are
// replaced on every line from the start line's parent forward, until a line
// shallower than the start line is reached. It returns v itself when the
// start line is not nested or nothing changes.
func ChangeListType(v *Value, listFormat *Format) *Value {
	startLine, startOK := GetLineIndex(v, v.Start)
	startDepth := len(lineChain(v, startLine, startOK))
	if startDepth == 0 {
		return v
	}
	endLine, endOK := GetLineIndex(v, v.End)
	startCount := startDepth - 1
	endCount := len(lineChain(v, endLine, endOK)) - 1

	from := 0
	if parent, ok := GetParentLineIndex(v, startLine); ok {
		from = parent + 1
	}

	var newReplacements []*Replacement
	for i := from; i < len(v.Text); i++ {
		if v.Text[i] != LineSeparator {
			continue
		}
		rep := v.Replacements[i]
		if rep.Depth() <= startCount {
			break
		}
		chain := slices.Clone(rep.Lists)
		changed := false
		for level := range chain {
			if level < startCount || level > endCount || chain[level] == listFormat {
				continue
			}
			chain[level] = listFormat
			changed = true
		}
		if !changed {
			continue
		}
		if newReplacements == nil {
			newReplacements = slices.Clone(v.Replacements)
		}
		newReplacements[i] = &Replacement{Format: rep.Format, Lists: chain}
	}
	if newReplacements == nil {
		return v
	}

	out := *v
	out.Replacements = newReplacements
	return &out
}
