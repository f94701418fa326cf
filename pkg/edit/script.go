package edit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/richtext/pkg/markup"
	"github.com/yaklabco/richtext/pkg/paste"
	"github.com/yaklabco/richtext/pkg/richtext"
)

// Script errors.
var (
	ErrUnknownOp        = errors.New("unknown op")
	ErrMissingField     = errors.New("missing field")
	ErrSelectionInvalid = errors.New("selection out of range")
)

// Op names.
const (
	OpSelect              = "select"
	OpInsert              = "insert"
	OpInsertHTML          = "insert-html"
	OpRemove              = "remove"
	OpToggleFormat        = "toggle-format"
	OpApplyFormat         = "apply-format"
	OpRemoveFormat        = "remove-format"
	OpLineSeparator       = "line-separator"
	OpRemoveLineSeparator = "remove-line-separator"
	OpObject              = "object"
	OpRemoveObject        = "remove-object"
	OpChangeListType      = "change-list-type"
	OpIndent              = "indent"
	OpOutdent             = "outdent"
	OpReplace             = "replace"
	OpPaste               = "paste"
	OpUndo                = "undo"
	OpRedo                = "redo"
)

// Script is a recorded editing session: a starting fragment and the steps
// applied to it.
type Script struct {
	Multiline string `yaml:"multiline,omitempty"`
	HTML      string `yaml:"html,omitempty"`
	Selection []int  `yaml:"selection,omitempty,flow"`
	Steps     []Step `yaml:"steps"`
}

// Step is one edit. Which fields apply depends on Op.
type Step struct {
	Op         string            `yaml:"op"`
	Start      *int              `yaml:"start,omitempty"`
	End        *int              `yaml:"end,omitempty"`
	Text       string            `yaml:"text,omitempty"`
	HTML       string            `yaml:"html,omitempty"`
	Format     string            `yaml:"format,omitempty"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
	List       string            `yaml:"list,omitempty"`
	Pattern    string            `yaml:"pattern,omitempty"`
	Backward   bool              `yaml:"backward,omitempty"`
	Markdown   bool              `yaml:"markdown,omitempty"`
	Code       bool              `yaml:"code,omitempty"`
	Plain      bool              `yaml:"plain,omitempty"`
	// Internal pastes HTML copied from another region whose line element
	// is SourceMultiline.
	Internal        bool   `yaml:"internal,omitempty"`
	SourceMultiline string `yaml:"source_multiline,omitempty"`
}

// ParseScript decodes a YAML script. Unknown keys are rejected.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	s := &Script{}
	if err := dec.Decode(s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return s, nil
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(bytes.NewReader(content))
}

// Runner replays scripts.
type Runner struct {
	// Converter parses the starting fragment and inserted HTML. The script's
	// multiline setting overrides its line element.
	Converter *markup.Converter

	// Paste holds the defaults for paste steps. Its converter is replaced by
	// the session's.
	Paste paste.Options
}

// Run replays s and returns the resulting session. A failing step stops the
// replay; the session returned alongside the error holds the value before
// that step.
func (r *Runner) Run(ctx context.Context, s *Script) (*Session, error) {
	conv := r.Converter
	if conv == nil {
		conv = markup.New(markup.Config{})
	}
	if s.Multiline != "" {
		conv = conv.WithMultilineTag(s.Multiline)
	}

	v, err := conv.Create(s.HTML)
	if err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}
	if len(s.Selection) > 0 {
		start, end := s.Selection[0], s.Selection[0]
		if len(s.Selection) > 1 {
			end = s.Selection[1]
		}
		if !validRange(v, start, end) {
			return nil, fmt.Errorf("run script: %w: [%d, %d]", ErrSelectionInvalid, start, end)
		}
		v = richtext.Select(v, start, end)
	}

	sess := NewSession(conv, v)
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return sess, fmt.Errorf("run script: %w", err)
		}
		if err := r.apply(ctx, sess, step); err != nil {
			return sess, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return sess, nil
}

//nolint:gocyclo,cyclop // one case per op
func (r *Runner) apply(ctx context.Context, sess *Session, step Step) error {
	switch step.Op {
	case OpSelect:
		if step.Start == nil {
			return fmt.Errorf("%w: start", ErrMissingField)
		}
		start, end := *step.Start, *step.Start
		if step.End != nil {
			end = *step.End
		}
		if !validRange(sess.Value(), start, end) {
			return fmt.Errorf("%w: [%d, %d]", ErrSelectionInvalid, start, end)
		}
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.Select(v, start, end) })

	case OpInsert:
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.TypeText(v, step.Text) })

	case OpInsertHTML:
		x, err := sess.Converter().WithMultilineTag("").Create(step.HTML)
		if err != nil {
			return err
		}
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.Insert(v, x) })

	case OpRemove:
		sess.Apply(func(v *richtext.Value) *richtext.Value { return removeStep(v, step.Backward) })

	case OpToggleFormat, OpApplyFormat, OpRemoveFormat:
		if step.Format == "" {
			return fmt.Errorf("%w: format", ErrMissingField)
		}
		f := richtext.NewFormat(step.Format, step.Attributes)
		sess.Apply(func(v *richtext.Value) *richtext.Value {
			switch step.Op {
			case OpToggleFormat:
				return richtext.ToggleFormat(v, f)
			case OpApplyFormat:
				return richtext.ApplyFormat(v, f)
			default:
				return richtext.RemoveFormat(v, step.Format)
			}
		})

	case OpLineSeparator:
		sess.Apply(richtext.InsertLineSeparator)

	case OpRemoveLineSeparator:
		sess.Apply(func(v *richtext.Value) *richtext.Value {
			out, _ := richtext.RemoveLineSeparator(v, step.Backward)
			return out
		})

	case OpObject:
		if step.Format == "" {
			return fmt.Errorf("%w: format", ErrMissingField)
		}
		f := richtext.NewFormat(step.Format, step.Attributes)
		f.Object = true
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.InsertObject(v, f) })

	case OpRemoveObject:
		sess.Apply(richtext.RemoveObject)

	case OpChangeListType:
		if step.List == "" {
			return fmt.Errorf("%w: list", ErrMissingField)
		}
		list := richtext.NewFormat(step.List, step.Attributes)
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.ChangeListType(v, list) })

	case OpIndent:
		tag := step.List
		if tag == "" {
			tag = "ul"
		}
		root := richtext.NewFormat(tag, step.Attributes)
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.IndentListItems(v, root) })

	case OpOutdent:
		sess.Apply(richtext.OutdentListItems)

	case OpReplace:
		if step.Pattern == "" {
			return fmt.Errorf("%w: pattern", ErrMissingField)
		}
		re, err := regexp.Compile(step.Pattern)
		if err != nil {
			return fmt.Errorf("compile pattern: %w", err)
		}
		sess.Apply(func(v *richtext.Value) *richtext.Value { return richtext.Replace(v, re, step.Text) })

	case OpPaste:
		opts := r.Paste
		opts.Converter = sess.Converter()
		opts.Markdown = opts.Markdown || step.Markdown
		opts.CodeDetection = opts.CodeDetection || step.Code
		opts.PlainText = opts.PlainText || step.Plain
		in := paste.Input{
			HTML:         step.HTML,
			PlainText:    step.Text,
			Internal:     step.Internal,
			MultilineTag: step.SourceMultiline,
		}
		out, err := paste.Handle(ctx, sess.Value(), in, opts)
		if err != nil {
			return err
		}
		sess.Apply(func(*richtext.Value) *richtext.Value { return out })

	case OpUndo:
		sess.Undo()

	case OpRedo:
		sess.Redo()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	return nil
}

// removeStep deletes the selection, or one character next to a collapsed
// caret.
func removeStep(v *richtext.Value, backward bool) *richtext.Value {
	if !richtext.IsCollapsed(v) {
		return richtext.Remove(v)
	}
	switch {
	case backward && v.Start > 0:
		return richtext.RemoveAt(v, v.Start-1, v.Start)
	case !backward && v.Start < v.Len():
		return richtext.RemoveAt(v, v.Start, v.Start+1)
	default:
		return v
	}
}

func validRange(v *richtext.Value, start, end int) bool {
	return start >= 0 && start <= end && end <= v.Len()
}
