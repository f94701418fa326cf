package richtext_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/richtext"
)

func TestApplyFormatRange(t *testing.T) {
	t.Parallel()

	v := richtext.Select(richtext.New("abc"), 0, 2)
	got := richtext.ApplyFormat(v, bold)

	require.Len(t, got.Formats[0], 1)
	assert.Same(t, bold, got.Formats[0][0])
	assert.Same(t, bold, got.Formats[1][0])
	assert.Nil(t, got.Formats[2])
	assert.Equal(t, []*richtext.Format{bold}, got.ActiveFormats)
	assert.Nil(t, v.Formats[0], "input must not change")
}

func TestApplyFormatNestsOutsidePartialFormats(t *testing.T) {
	t.Parallel()

	v := formatted("abc", italic, 1, 2)
	got := richtext.ApplyFormatAt(v, bold, 0, 3)

	assert.Equal(t, []*richtext.Format{bold}, got.Formats[0])
	assert.Equal(t, []*richtext.Format{bold, italic}, got.Formats[1])
	assert.Equal(t, []*richtext.Format{bold}, got.Formats[2])
}

func TestApplyFormatReplacesSameType(t *testing.T) {
	t.Parallel()

	oldLink := richtext.NewFormat("core/link", map[string]string{"url": "https://old.test"})
	newLink := richtext.NewFormat("core/link", map[string]string{"url": "https://new.test"})
	v := formatted("abc", oldLink, 0, 3)

	t.Run("range", func(t *testing.T) {
		t.Parallel()

		got := richtext.ApplyFormatAt(v, newLink, 1, 2)
		assert.Same(t, oldLink, got.Formats[0][0])
		assert.Equal(t, []*richtext.Format{newLink}, got.Formats[1])
		assert.Same(t, oldLink, got.Formats[2][0])
	})

	t.Run("caret updates the whole run", func(t *testing.T) {
		t.Parallel()

		got := richtext.ApplyFormatAt(richtext.Select(v, 1, 1), newLink, 1, 1)
		for i := range got.Formats {
			assert.Same(t, newLink, got.Formats[i][0], "index %d", i)
		}
	})
}

func TestRemoveFormat(t *testing.T) {
	t.Parallel()

	v := richtext.ApplyFormatAt(formatted("abcd", bold, 0, 4), italic, 1, 3)

	t.Run("range", func(t *testing.T) {
		t.Parallel()

		got := richtext.RemoveFormatAt(v, "core/bold", 1, 3)
		assert.Equal(t, []*richtext.Format{bold}, got.Formats[0])
		assert.Equal(t, []*richtext.Format{italic}, got.Formats[1])
		assert.Equal(t, []*richtext.Format{italic}, got.Formats[2])
		assert.Equal(t, []*richtext.Format{bold}, got.Formats[3])
	})

	t.Run("caret removes the whole run", func(t *testing.T) {
		t.Parallel()

		got := richtext.RemoveFormat(richtext.Select(v, 2, 2), "core/italic")
		for i := range got.Formats {
			assert.Equal(t, []*richtext.Format{bold}, got.Formats[i], "index %d", i)
		}
		assert.NotNil(t, got.ActiveFormats)
	})

	t.Run("caret outside any run sets an empty override", func(t *testing.T) {
		t.Parallel()

		got := richtext.RemoveFormat(richtext.New("abc"), "core/bold")
		assert.NotNil(t, got.ActiveFormats)
		assert.Empty(t, got.ActiveFormats)
		assert.Nil(t, richtext.GetActiveFormat(got, "core/bold"))
	})
}

func TestToggleFormatInvolution(t *testing.T) {
	t.Parallel()

	base := richtext.ApplyFormatAt(richtext.New("abcdef"), italic, 2, 5)

	for start := 0; start <= base.Len(); start++ {
		for end := start; end <= base.Len(); end++ {
			v := richtext.Select(base, start, end)
			once := richtext.ToggleFormat(v, bold)
			twice := richtext.ToggleFormat(once, bold)

			if diff := cmp.Diff(v, twice, contentOnly); diff != "" {
				t.Errorf("[%d,%d]: toggle twice mismatch (-want +got):\n%s", start, end, diff)
			}
		}
	}
}

// Re-applying a format nests it inside the formats that remain, so toggling
// an outer format twice moves it inward.
func TestToggleFormatMovesOuterFormatInward(t *testing.T) {
	t.Parallel()

	v := richtext.ApplyFormatAt(formatted("ab", bold, 0, 2), italic, 0, 2)
	v = richtext.Select(v, 0, 2)
	require.Equal(t, []*richtext.Format{bold, italic}, v.Formats[0])

	twice := richtext.ToggleFormat(richtext.ToggleFormat(v, bold), bold)

	assert.Equal(t, []*richtext.Format{italic, bold}, twice.Formats[0])
	assert.Equal(t, []*richtext.Format{italic, bold}, twice.Formats[1])
	assert.Equal(t, "ab", twice.String())
}

func TestToggleFormatAtCaret(t *testing.T) {
	t.Parallel()

	v := richtext.New("ab")

	on := richtext.ToggleFormat(v, bold)
	assert.Same(t, bold, richtext.GetActiveFormat(on, "core/bold"))

	typed := richtext.TypeText(on, "c")
	assert.Equal(t, []*richtext.Format{bold}, typed.Formats[2])

	off := richtext.ToggleFormat(on, bold)
	assert.Nil(t, richtext.GetActiveFormat(off, "core/bold"))
}

func TestUpdateFormatsReusesNeighbours(t *testing.T) {
	t.Parallel()

	v := formatted("ab", bold, 0, 2)
	v = richtext.InsertAt(v, richtext.New("c"), 2, 2)

	got := richtext.UpdateFormats(v, 2, 3, []*richtext.Format{richtext.NewFormat("core/bold", nil)})

	assert.Same(t, bold, got.Formats[2][0])
	assert.Same(t, bold, got.ActiveFormats[0])
}

func TestAddActiveFormats(t *testing.T) {
	t.Parallel()

	v := formatted("ab", italic, 1, 2)

	assert.Same(t, v, richtext.AddActiveFormats(v, nil))

	got := richtext.AddActiveFormats(v, []*richtext.Format{bold})
	assert.Equal(t, []*richtext.Format{bold}, got.Formats[0])
	assert.Equal(t, []*richtext.Format{bold, italic}, got.Formats[1])
}
