package richtext_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/richtext"
)

const ls = string(richtext.LineSeparator)

var (
	bold   = richtext.NewFormat("core/bold", nil)
	italic = richtext.NewFormat("core/italic", nil)
	ulist  = richtext.NewFormat("ul", nil)
	olist  = richtext.NewFormat("ol", nil)
)

// contentOnly compares text, formats and replacements structurally.
var contentOnly = cmp.Options{
	cmpopts.IgnoreFields(richtext.Value{}, "Start", "End", "ActiveFormats"),
	cmpopts.EquateEmpty(),
}

// listValue builds a multiline value: texts[0] is the first line, and every
// further line is preceded by a separator carrying chains[i-1].
func listValue(texts []string, chains ...[]*richtext.Format) *richtext.Value {
	v := richtext.New(texts[0])
	for i, text := range texts[1:] {
		v = richtext.InsertLineSeparatorWithLists(v, v.Len(), v.Len(), chains[i])
		v = richtext.InsertAt(v, richtext.New(text), v.Len(), v.Len())
	}
	return v
}

// formatted returns text with f applied to [start, end).
func formatted(text string, f *richtext.Format, start, end int) *richtext.Value {
	return richtext.ApplyFormatAt(richtext.New(text), f, start, end)
}

func TestNew(t *testing.T) {
	t.Parallel()

	v := richtext.New("héllo")

	assert.Equal(t, 5, v.Len())
	assert.Equal(t, 5, v.Start)
	assert.Equal(t, 5, v.End)
	assert.Len(t, v.Formats, 5)
	assert.Len(t, v.Replacements, 5)
	require.NoError(t, v.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value *richtext.Value
		want  error
	}{
		{
			name:  "empty is valid",
			value: richtext.Empty(),
		},
		{
			name: "mismatched lengths",
			value: &richtext.Value{
				Text:    []rune("ab"),
				Formats: make([][]*richtext.Format, 1),
			},
			want: richtext.ErrMismatchedLengths,
		},
		{
			name: "selection past end",
			value: &richtext.Value{
				Text:         []rune("ab"),
				Formats:      make([][]*richtext.Format, 2),
				Replacements: make([]*richtext.Replacement, 2),
				Start:        1,
				End:          3,
			},
			want: richtext.ErrSelectionOutOfRange,
		},
		{
			name: "object without replacement",
			value: &richtext.Value{
				Text:         []rune{richtext.ObjectReplacement},
				Formats:      make([][]*richtext.Format, 1),
				Replacements: make([]*richtext.Replacement, 1),
			},
			want: richtext.ErrDanglingObject,
		},
		{
			name: "nil list level",
			value: &richtext.Value{
				Text:         []rune{richtext.LineSeparator},
				Formats:      make([][]*richtext.Format, 1),
				Replacements: []*richtext.Replacement{{Lists: []*richtext.Format{nil}}},
			},
			want: richtext.ErrNilFormat,
		},
		{
			name: "format type with markup",
			value: &richtext.Value{
				Text:         []rune("a"),
				Formats:      [][]*richtext.Format{{richtext.NewFormat("b><script", nil)}},
				Replacements: make([]*richtext.Replacement, 1),
			},
			want: richtext.ErrInvalidFormatType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustValidatePanics(t *testing.T) {
	t.Parallel()

	v := &richtext.Value{Text: []rune("x")}
	assert.Panics(t, v.MustValidate)
}

func TestSelect(t *testing.T) {
	t.Parallel()

	v := richtext.New("abcd")

	t.Run("clamps and orders", func(t *testing.T) {
		t.Parallel()

		got := richtext.Select(v, 10, -1)
		assert.Equal(t, 0, got.Start)
		assert.Equal(t, 4, got.End)
	})

	t.Run("returns input when unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, v, richtext.Select(v, 4, 4))
	})

	t.Run("drops active formats", func(t *testing.T) {
		t.Parallel()

		withActive := richtext.ApplyFormat(v, bold)
		require.NotNil(t, withActive.ActiveFormats)

		moved := richtext.Select(withActive, 1, 1)
		assert.Nil(t, moved.ActiveFormats)
	})
}

func TestTextContent(t *testing.T) {
	t.Parallel()

	v := richtext.InsertObjectAt(richtext.New("ab"), richtext.NewFormat("core/image", nil), 1, 1)
	v = richtext.InsertLineSeparatorAt(v, v.Len(), v.Len())
	v = richtext.InsertText(v, "c")

	assert.Equal(t, "ab\nc", richtext.TextContent(v))
	assert.Equal(t, "a"+string(richtext.ObjectReplacement)+"b"+ls+"c", v.String())
}

func TestIsEmptyLine(t *testing.T) {
	t.Parallel()

	v := richtext.New("a" + ls + ls + "b")

	tests := []struct {
		name  string
		value *richtext.Value
		want  bool
	}{
		{name: "empty value", value: richtext.Empty(), want: true},
		{name: "between separators", value: richtext.Select(v, 2, 2), want: true},
		{name: "inside text", value: richtext.Select(v, 1, 1), want: false},
		{name: "range", value: richtext.Select(v, 2, 3), want: false},
		{name: "trailing separator", value: richtext.New("a" + ls), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, richtext.IsEmptyLine(tt.value))
		})
	}
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := formatted("abc", bold, 0, 2)
	b := formatted("abc", richtext.NewFormat("core/bold", nil), 0, 2)

	assert.True(t, richtext.Equal(a, b), "equal formats compare by value")
	assert.False(t, richtext.Equal(a, richtext.New("abc")))
	assert.True(t, richtext.Equal(a, richtext.Select(a, 0, 0)), "selection is ignored")
}

func TestIsFormatEqual(t *testing.T) {
	t.Parallel()

	link := richtext.NewFormat("core/link", map[string]string{"url": "a"})

	assert.True(t, richtext.IsFormatEqual(link, link))
	assert.True(t, richtext.IsFormatEqual(link, richtext.NewFormat("core/link", map[string]string{"url": "a"})))
	assert.False(t, richtext.IsFormatEqual(link, richtext.NewFormat("core/link", map[string]string{"url": "b"})))
	assert.False(t, richtext.IsFormatEqual(link, richtext.NewFormat("core/link", nil)))
	assert.False(t, richtext.IsFormatEqual(bold, italic))
	assert.False(t, richtext.IsFormatEqual(bold, nil))
	assert.True(t, richtext.IsFormatEqual(bold, richtext.NewFormat("core/bold", map[string]string{})))
}
