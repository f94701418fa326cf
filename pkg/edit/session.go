// Package edit drives a rich-text value through a sequence of edits with
// undo and redo, and replays edit scripts written in YAML.
package edit

import (
	"github.com/yaklabco/richtext/pkg/markup"
	"github.com/yaklabco/richtext/pkg/richtext"
)

// DefaultHistoryLimit bounds the undo stack of a new session.
const DefaultHistoryLimit = 100

// Session owns the current value of an editable region. It is not safe for
// concurrent use.
type Session struct {
	conv  *markup.Converter
	value *richtext.Value
	undo  []*richtext.Value
	redo  []*richtext.Value
	limit int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithHistoryLimit bounds the number of undo steps kept. Zero or less keeps
// every step.
func WithHistoryLimit(n int) SessionOption {
	return func(s *Session) {
		s.limit = n
	}
}

// NewSession starts a session over v. A nil v starts from an empty value.
func NewSession(conv *markup.Converter, v *richtext.Value, opts ...SessionOption) *Session {
	if v == nil {
		v = richtext.Empty()
	}
	s := &Session{conv: conv, value: v, limit: DefaultHistoryLimit}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Value returns the current value.
func (s *Session) Value() *richtext.Value {
	return s.value
}

// Converter returns the converter used for HTML.
func (s *Session) Converter() *markup.Converter {
	return s.conv
}

// Apply replaces the current value with fn's result. It reports whether the
// value changed; an operation that returns its input leaves the history
// untouched.
func (s *Session) Apply(fn func(*richtext.Value) *richtext.Value) bool {
	next := fn(s.value)
	if next == s.value {
		return false
	}
	s.undo = append(s.undo, s.value)
	if s.limit > 0 && len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = s.redo[:0]
	s.value = next
	return true
}

// Undo restores the value before the last change.
func (s *Session) Undo() bool {
	if len(s.undo) == 0 {
		return false
	}
	s.redo = append(s.redo, s.value)
	s.value = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return true
}

// Redo reapplies the last undone change.
func (s *Session) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	s.undo = append(s.undo, s.value)
	s.value = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return true
}

// CanUndo reports whether Undo would change the value.
func (s *Session) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would change the value.
func (s *Session) CanRedo() bool { return len(s.redo) > 0 }

// History returns the number of undo steps.
func (s *Session) History() int { return len(s.undo) }

// HTML serializes the current value.
func (s *Session) HTML() string {
	return s.conv.ToHTMLString(s.value)
}
