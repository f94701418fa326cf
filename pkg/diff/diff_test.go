package diff_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/diff"
)

func TestMarkup(t *testing.T) {
	t.Parallel()

	d := diff.Markup("a.html", "<b>x</b>y", "<strong>x</strong>y")
	require.True(t, d.HasChanges())
	assert.Equal(t, 2, d.Insertions)
	assert.Equal(t, 2, d.Deletions)

	want := strings.Join([]string{
		"--- a/a.html",
		"+++ b/a.html",
		"@@ -1,4 +1,4 @@",
		"-<b>",
		"+<strong>",
		" x",
		"-</b>",
		"+</strong>",
		" y",
		"",
	}, "\n")
	if got := d.String(); got != want {
		t.Errorf("String() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}
}

func TestNoChange(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Lines("a", "x\ny\n", "x\ny\n"))
	assert.Nil(t, diff.Markup("a", "", ""))

	var d *diff.Diff
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
}

func TestLines_SeparateHunks(t *testing.T) {
	t.Parallel()

	old := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"
	updated := "one\n2\n3\n4\n5\n6\n7\n8\n9\nten\n"

	d := diff.Lines("n.txt", old, updated)
	require.Len(t, d.Hunks, 2)

	first, second := d.Hunks[0], d.Hunks[1]
	assert.Equal(t, [4]int{1, 4, 1, 4}, [4]int{first.OldStart, first.OldCount, first.NewStart, first.NewCount})
	assert.Equal(t, [4]int{7, 4, 7, 4}, [4]int{second.OldStart, second.OldCount, second.NewStart, second.NewCount})
	assert.Equal(t, diff.Delete, second.Lines[3].Kind)
	assert.Equal(t, "10", second.Lines[3].Text)
}

func TestLines_AdditionOnly(t *testing.T) {
	t.Parallel()

	d := diff.Lines("a", "a\n", "a\nb\n")
	require.NotNil(t, d)
	assert.Equal(t, 1, d.Insertions)
	assert.Zero(t, d.Deletions)
	assert.Contains(t, d.String(), "+b\n")
}

func TestSplitMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: "plain", want: []string{"plain"}},
		{in: "<p>a<br>b</p>\n", want: []string{"<p>", "a", "<br>", "b", "</p>"}},
		{in: `<a href="x">l</a>`, want: []string{`<a href="x">`, "l", "</a>"}},
		{in: "a<unterminated", want: []string{"a", "<unterminated"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, diff.SplitMarkup(tt.in))
		})
	}
}
