package richtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/richtext"
)

func TestGetLineIndex(t *testing.T) {
	t.Parallel()

	v := richtext.New("ab" + ls + "cd" + ls + "e")

	tests := []struct {
		index  int
		want   int
		wantOK bool
	}{
		{index: 0, wantOK: false},
		{index: 2, wantOK: false},
		{index: 3, want: 2, wantOK: true},
		{index: 5, want: 2, wantOK: true},
		{index: 6, want: 5, wantOK: true},
		{index: 7, want: 5, wantOK: true},
	}

	for _, tt := range tests {
		got, ok := richtext.GetLineIndex(v, tt.index)
		assert.Equal(t, tt.wantOK, ok, "index %d", tt.index)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "index %d", tt.index)
		}
	}
}

func TestChangeListType(t *testing.T) {
	t.Parallel()

	t.Run("nested line changes type", func(t *testing.T) {
		t.Parallel()

		v := richtext.Select(listValue([]string{"1", "2"}, []*richtext.Format{ulist}), 2, 2)
		got := richtext.ChangeListType(v, olist)

		require.NotSame(t, v, got)
		assert.Equal(t, []*richtext.Format{olist}, got.Replacements[1].Lists)
		assert.Nil(t, got.Replacements[0])
		assert.Equal(t, []*richtext.Format{ulist}, v.Replacements[1].Lists, "input must not change")
	})

	t.Run("root line is a no-op", func(t *testing.T) {
		t.Parallel()

		v := richtext.Select(listValue([]string{"1", "2"}, []*richtext.Format{ulist}), 0, 0)
		assert.Same(t, v, richtext.ChangeListType(v, olist))
	})

	t.Run("unchanged type is a no-op", func(t *testing.T) {
		t.Parallel()

		v := richtext.Select(listValue([]string{"1", "2"}, []*richtext.Format{ulist}), 2, 2)
		assert.Same(t, v, richtext.ChangeListType(v, ulist))
	})

	t.Run("siblings change and deeper levels are kept", func(t *testing.T) {
		t.Parallel()

		inner := richtext.NewFormat("ul", nil)
		v := listValue(
			[]string{"r", "a", "b", "c", "s"},
			[]*richtext.Format{ulist},
			[]*richtext.Format{ulist, inner},
			[]*richtext.Format{ulist},
			nil,
		)
		// Caret on line "a".
		got := richtext.ChangeListType(richtext.Select(v, 2, 2), olist)

		assert.Equal(t, []*richtext.Format{olist}, got.Replacements[1].Lists)
		assert.Equal(t, []*richtext.Format{olist, inner}, got.Replacements[3].Lists)
		assert.Equal(t, []*richtext.Format{olist}, got.Replacements[5].Lists)
		assert.Nil(t, got.Replacements[7])
	})
}

func TestGetLastChildIndex(t *testing.T) {
	t.Parallel()

	// Line depths 0, 1, 1, 2, 1, 0.
	inner := richtext.NewFormat("ul", nil)
	v := listValue(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]*richtext.Format{ulist},
		[]*richtext.Format{ulist},
		[]*richtext.Format{ulist, inner},
		[]*richtext.Format{ulist},
		nil,
	)
	require.Equal(t, "a"+ls+"b"+ls+"c"+ls+"d"+ls+"e"+ls+"f", v.String())

	assert.Equal(t, 7, richtext.GetLastChildIndex(v, 3), "line c owns d and ends at e")
	assert.Equal(t, 5, richtext.GetLastChildIndex(v, 5), "line d has no children")
	assert.Equal(t, 9, richtext.GetLastChildIndex(v, -1), "the first line spans everything")
}

func TestGetParentLineIndex(t *testing.T) {
	t.Parallel()

	v := listValue(
		[]string{"a", "b", "c"},
		[]*richtext.Format{ulist},
		[]*richtext.Format{ulist, olist},
	)

	parent, ok := richtext.GetParentLineIndex(v, 3)
	assert.True(t, ok)
	assert.Equal(t, 1, parent)

	_, ok = richtext.GetParentLineIndex(v, 1)
	assert.False(t, ok, "depth one lines hang off the first line")
}

func TestIndentOutdent(t *testing.T) {
	t.Parallel()

	t.Run("first line cannot be indented", func(t *testing.T) {
		t.Parallel()

		v := richtext.Select(listValue([]string{"a", "b"}, nil), 0, 0)
		assert.False(t, richtext.CanIndentListItems(v))
		assert.Same(t, v, richtext.IndentListItems(v, ulist))
	})

	t.Run("indent creates a level from the root format", func(t *testing.T) {
		t.Parallel()

		v := listValue([]string{"a", "b"}, nil)
		got := richtext.IndentListItems(v, ulist)

		assert.Equal(t, []*richtext.Format{ulist}, got.Replacements[1].Lists)
		assert.False(t, richtext.CanIndentListItems(got), "already deeper than the previous line")
	})

	t.Run("indent joins the previous sibling's child list", func(t *testing.T) {
		t.Parallel()

		v := listValue(
			[]string{"a", "b", "c"},
			[]*richtext.Format{olist},
			nil,
		)
		got := richtext.IndentListItems(v, ulist)

		assert.Same(t, v.Replacements[1].Lists[0], got.Replacements[3].Lists[0])
	})

	t.Run("indent repeats the previous line's innermost list", func(t *testing.T) {
		t.Parallel()

		v := listValue(
			[]string{"a", "b", "c"},
			[]*richtext.Format{olist},
			[]*richtext.Format{olist},
		)
		got := richtext.IndentListItems(v, ulist)

		assert.Equal(t, []*richtext.Format{olist, olist}, got.Replacements[3].Lists)
	})

	t.Run("outdent restores the chain", func(t *testing.T) {
		t.Parallel()

		v := listValue([]string{"a", "b"}, nil)
		indented := richtext.IndentListItems(v, ulist)
		require.True(t, richtext.CanOutdentListItems(indented))

		got := richtext.OutdentListItems(indented)
		assert.True(t, richtext.Equal(v, got))
		assert.Nil(t, got.Replacements[1])
	})

	t.Run("outdent carries children", func(t *testing.T) {
		t.Parallel()

		inner := richtext.NewFormat("ul", nil)
		v := listValue(
			[]string{"a", "b", "c", "d"},
			[]*richtext.Format{ulist},
			[]*richtext.Format{ulist, inner},
			nil,
		)
		got := richtext.OutdentListItems(richtext.Select(v, 2, 2))

		assert.Nil(t, got.Replacements[1])
		assert.Equal(t, []*richtext.Format{inner}, got.Replacements[3].Lists)
		assert.Nil(t, got.Replacements[5])
	})

	t.Run("root line cannot be outdented", func(t *testing.T) {
		t.Parallel()

		v := listValue([]string{"a", "b"}, nil)
		assert.False(t, richtext.CanOutdentListItems(v))
		assert.Same(t, v, richtext.OutdentListItems(v))
	})
}

func TestInsertLineSeparatorInheritsChain(t *testing.T) {
	t.Parallel()

	v := listValue([]string{"a", "b"}, []*richtext.Format{ulist})
	got := richtext.InsertLineSeparator(v)

	require.Equal(t, "a"+ls+"b"+ls, got.String())
	assert.Same(t, v.Replacements[1], got.Replacements[3])
	assert.Equal(t, 4, got.Start)

	root := richtext.InsertLineSeparator(richtext.New("a"))
	assert.Nil(t, root.Replacements[1])
}

func TestRemoveLineSeparator(t *testing.T) {
	t.Parallel()

	inner := richtext.NewFormat("ul", nil)
	v := listValue([]string{"a", "b"}, []*richtext.Format{ulist, inner})

	t.Run("drops one level first", func(t *testing.T) {
		t.Parallel()

		got, ok := richtext.RemoveLineSeparator(richtext.Select(v, 2, 2), true)
		require.True(t, ok)
		assert.Equal(t, v.String(), got.String())
		assert.Equal(t, []*richtext.Format{ulist}, got.Replacements[1].Lists)
	})

	t.Run("joins root lines", func(t *testing.T) {
		t.Parallel()

		flat := listValue([]string{"a", "b"}, nil)
		got, ok := richtext.RemoveLineSeparator(richtext.Select(flat, 1, 1), false)
		require.True(t, ok)
		assert.Equal(t, "ab", got.String())
	})

	t.Run("no separator", func(t *testing.T) {
		t.Parallel()

		plain := richtext.New("ab")
		got, ok := richtext.RemoveLineSeparator(plain, true)
		assert.False(t, ok)
		assert.Same(t, plain, got)
	})
}

func TestListSelectionQueries(t *testing.T) {
	t.Parallel()

	v := listValue([]string{"a", "b"}, []*richtext.Format{olist})

	assert.True(t, richtext.IsListRootSelected(richtext.Select(v, 0, 0)))
	assert.False(t, richtext.IsListRootSelected(richtext.Select(v, 2, 2)))
	assert.True(t, richtext.IsActiveListType(richtext.Select(v, 0, 0), "ul", "ul"))
	assert.True(t, richtext.IsActiveListType(richtext.Select(v, 2, 2), "ol", "ul"))
	assert.False(t, richtext.IsActiveListType(richtext.Select(v, 2, 2), "ul", "ul"))
}
