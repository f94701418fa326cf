package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/formattype"
)

func TestTable_Render(t *testing.T) {
	t.Parallel()

	table := &pretty.Table{
		Headers: []string{"A", "BB"},
		Rows:    [][]string{{"x", "1"}, {"yyy", "2"}},
		Groups:  []int{1},
	}

	expected := " A    BB\n" +
		"==========\n" +
		" x    1\n" +
		"----------\n" +
		" yyy  2\n" +
		"==========\n"
	assert.Equal(t, expected, table.Render(pretty.NewStyles(false)))
}

func TestTable_TruncatesLastColumn(t *testing.T) {
	t.Parallel()

	table := &pretty.Table{
		Headers: []string{"NAME", "NOTE"},
		Rows:    [][]string{{"n", strings.Repeat("x", 50)}},
		Width:   20,
	}

	out := table.Render(pretty.NewStyles(false))
	assert.Contains(t, out, " n     xxxxxxxxx...\n")
	assert.NotContains(t, out, strings.Repeat("x", 13))
}

func TestTable_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, (&pretty.Table{}).Render(pretty.NewStyles(false)))
}

func TestFormatsTable(t *testing.T) {
	t.Parallel()

	registry := formattype.NewCoreRegistry()
	require.NoError(t, registry.Register(formattype.FormatType{
		Name: "my/note", Title: "Note", TagName: "span", ClassName: "note",
	}))

	table := pretty.FormatsTable(registry.Types(), 200)
	require.Len(t, table.Rows, registry.Len())
	assert.Equal(t, []int{len(formattype.CoreTypes())}, table.Groups)

	out := table.Render(pretty.NewStyles(false))
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "core/image")
	assert.Contains(t, out, "url=src")
	assert.Contains(t, out, "void")
	assert.Contains(t, out, "opaque")
	assert.Contains(t, out, "my/note")
}
