// Package diff computes unified diffs between an HTML fragment and its
// normalized form.
//
// Fragments are usually written on one line, so besides plain line diffs the
// package can split markup at tag boundaries and diff the resulting pieces.
package diff

import (
	"fmt"
	"strings"
)

// Context is the number of unchanged units shown around each change.
const Context = 3

// Kind classifies a diff line.
type Kind int

// Line kinds.
const (
	Equal Kind = iota
	Insert
	Delete
)

// Line is one unit of a hunk.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is the difference between two texts. A nil *Diff means no change.
type Diff struct {
	Path       string
	Hunks      []Hunk
	Insertions int
	Deletions  int
}

// Lines diffs old and updated line by line.
func Lines(path, old, updated string) *Diff {
	return compute(path, splitLines(old), splitLines(updated))
}

// Markup diffs old and updated after splitting both at tag boundaries, so a
// single-line fragment yields one unit per tag or text run.
func Markup(path, old, updated string) *Diff {
	return compute(path, SplitMarkup(old), SplitMarkup(updated))
}

// SplitMarkup splits s before every tag and after every closing angle bracket
// that is followed by text.
func SplitMarkup(s string) []string {
	var out []string
	for s != "" {
		var unit string
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end < 0 {
				end = len(s) - 1
			}
			unit = s[:end+1]
		} else {
			end := strings.IndexByte(s, '<')
			if end < 0 {
				end = len(s)
			}
			unit = s[:end]
		}
		s = s[len(unit):]
		if t := strings.TrimRight(unit, "\r\n"); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func compute(path string, a, b []string) *Diff {
	ops := script(a, b)
	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case Insert:
			d.Insertions++
		case Delete:
			d.Deletions++
		}
	}
	if d.Insertions+d.Deletions == 0 {
		return nil
	}
	d.Hunks = hunks(ops)
	return d
}

// script returns the edit script turning a into b, built from a longest
// common subsequence table over suffixes.
func script(a, b []string) []Line {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]Line, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, Line{Kind: Equal, Text: a[i]})
			i++
			j++
		case j == m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, Line{Kind: Delete, Text: a[i]})
			i++
		default:
			ops = append(ops, Line{Kind: Insert, Text: b[j]})
			j++
		}
	}
	return ops
}

// hunks groups ops into hunks. Changes separated by at most 2*Context
// unchanged units share a hunk.
func hunks(ops []Line) []Hunk {
	var changes []int
	for i, op := range ops {
		if op.Kind != Equal {
			changes = append(changes, i)
		}
	}

	var out []Hunk
	for k := 0; k < len(changes); {
		first, last := changes[k], changes[k]
		for k++; k < len(changes) && changes[k]-last-1 <= 2*Context; k++ {
			last = changes[k]
		}

		start := max(0, first-Context)
		end := min(len(ops), last+1+Context)
		h := Hunk{OldStart: 1, NewStart: 1}
		for _, op := range ops[:start] {
			if op.Kind != Insert {
				h.OldStart++
			}
			if op.Kind != Delete {
				h.NewStart++
			}
		}
		for _, op := range ops[start:end] {
			h.add(op)
		}
		out = append(out, h)
	}
	return out
}

func (h *Hunk) add(l Line) {
	h.Lines = append(h.Lines, l)
	if l.Kind != Insert {
		h.OldCount++
	}
	if l.Kind != Delete {
		h.NewCount++
	}
}

// HasChanges reports whether d holds any change.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders d in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	var b strings.Builder
	path := strings.TrimPrefix(d.Path, "/")
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			b.WriteByte(l.Kind.Prefix())
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Prefix returns the unified diff marker for k.
func (k Kind) Prefix() byte {
	switch k {
	case Insert:
		return '+'
	case Delete:
		return '-'
	default:
		return ' '
	}
}
