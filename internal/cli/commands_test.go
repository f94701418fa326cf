package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/internal/cli"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	t.Run("inspect from stdin", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "<strong>ab</strong>c", "parse", "-")
		require.NoError(t, err)
		assert.Equal(t, "text: \"abc|\"\n"+
			"selection: caret at 3\n"+
			"formats:\n"+
			"  0-2 core/bold\n", out)
	})

	t.Run("selection", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "abc", "parse", "-", "--selection", "1,2")
		require.NoError(t, err)
		assert.Contains(t, out, "selection: 1-2")
	})

	t.Run("selection out of range", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "abc", "parse", "-", "--selection", "1,9")
		require.Error(t, err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})

	t.Run("multiline file to html", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "list.html", "<li>one<ul><li>two</li></ul></li>")
		out, err := execute(t, "", "parse", path, "--multiline", "li", "--output", "html")
		require.NoError(t, err)
		assert.Equal(t, "<li>one<ul><li>two</li></ul></li>\n", out)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "a<strong>b</strong>", "parse", "-", "-o", "json")
		require.NoError(t, err)

		var decoded struct {
			Text  string `json:"text"`
			Start int    `json:"start"`
			End   int    `json:"end"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "ab", decoded.Text)
		assert.Equal(t, 2, decoded.Start)
		assert.Equal(t, 2, decoded.End)
	})
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	value, err := execute(t, "<strong>ab</strong>c", "parse", "-", "-o", "json")
	require.NoError(t, err)

	out, err := execute(t, value, "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "<strong>ab</strong>c\n", out)

	_, err = execute(t, `{"text": "ab", "formats": [null]}`, "render", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "clean.html", "<strong>a</strong>")
	writeFile(t, dir, "messy.html", "<b>x</b>y")

	out, err := execute(t, "", "check", dir)
	require.ErrorIs(t, err, cli.ErrNotCanonical)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))
	assert.Contains(t, out, "messy.html: not canonical")
	assert.NotContains(t, out, "clean.html")
	assert.Contains(t, out, "+xy")

	out, err = execute(t, "", "check", dir, "--format", "json")
	require.ErrorIs(t, err, cli.ErrNotCanonical)

	var report struct {
		Files []struct {
			Path   string `json:"path"`
			Status string `json:"status"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Files, 2)

	statuses := map[string]string{}
	for _, f := range report.Files {
		statuses[filepath.Base(f.Path)] = f.Status
	}
	assert.Equal(t, map[string]string{"clean.html": "canonical", "messy.html": "changed"}, statuses)
}

func TestCheckCommand_AllCanonical(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "clean.html", "<em>a</em>b")

	out, err := execute(t, "", "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All files canonical")
}

func TestNormalizeCommand(t *testing.T) {
	t.Parallel()

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()

		out, err := execute(t, "<b>x</b>y<strong>z</strong>\n", "normalize", "-")
		require.NoError(t, err)
		assert.Equal(t, "xy<strong>z</strong>\n", out)
	})

	t.Run("stdin with paths", func(t *testing.T) {
		t.Parallel()

		_, err := execute(t, "", "normalize", "-", "a.html")
		require.Error(t, err)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	})

	t.Run("report only", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "page.html", "<b>x</b>y")

		out, err := execute(t, "", "normalize", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "page.html: not canonical")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<b>x</b>y", string(content))
	})

	t.Run("write with backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "page.html", "<b>x</b>y\n")

		out, err := execute(t, "", "normalize", "--write", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "page.html: written")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "xy\n", string(content))

		backup, err := os.ReadFile(path + ".richtext.bak")
		require.NoError(t, err)
		assert.Equal(t, "<b>x</b>y\n", string(backup))

		_, err = execute(t, "", "check", dir)
		require.NoError(t, err)
	})

	t.Run("write without backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "page.html", "<b>x</b>")

		_, err := execute(t, "", "normalize", "-w", "--no-backups", dir)
		require.NoError(t, err)
		assert.NoFileExists(t, path+".richtext.bak")
	})
}

func TestApplyCommand(t *testing.T) {
	t.Parallel()

	script := `html: hello world
steps:
  - {op: select, start: 0, end: 5}
  - {op: toggle-format, format: core/bold}
`
	path := writeFile(t, t.TempDir(), "edit.yml", script)

	out, err := execute(t, "", "apply", path)
	require.NoError(t, err)
	assert.Equal(t, "<strong>hello</strong> world\n", out)

	out, err = execute(t, script, "apply", "-", "--output", "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "  0-5 core/bold")

	_, err = execute(t, "steps:\n  - {op: fly}\n", "apply", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(err))

	_, err = execute(t, "stepz: []\n", "apply", "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestPasteCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "markdown",
			args: []string{"--text", "**bold** and `code`", "--code=false"},
			want: "<strong>bold</strong> and <code>code</code>\n",
		},
		{
			name: "markdown disabled",
			args: []string{"--text", "**x**", "--markdown=false", "--code=false"},
			want: "**x**\n",
		},
		{
			name:  "plain text from stdin",
			stdin: "a < b",
			args:  []string{"--markdown=false", "--code=false"},
			want:  "a &lt; b\n",
		},
		{
			name:  "paragraphs in multiline region",
			stdin: "one\n\n\ntwo",
			args:  []string{"--multiline", "p", "--markdown=false", "--code=false"},
			want:  "<p>one</p><p>two</p>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, tt.stdin, append([]string{"paste"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestPasteCommand_Into(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := writeFile(t, dir, "page.html", "ab<strong>x</strong>")
	clip := writeFile(t, dir, "clip.html", "<em>c</em>")

	out, err := execute(t, "", "paste", "--text", "c", "--markdown=false", "--code=false",
		"--into", target, "--selection", "0")
	require.NoError(t, err)
	assert.Equal(t, "cab<strong>x</strong>\n", out)

	out, err = execute(t, "", "paste", "--html", clip, "--into", target, "--selection", "1")
	require.NoError(t, err)
	assert.Equal(t, "a<em>c</em>b<strong>x</strong>\n", out)

	_, err = execute(t, "", "paste", "--text", "x", "--flavor", "mdx")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestPasteCommand_PlainAndInternal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := writeFile(t, dir, "list.html", "<li>a</li>")
	clip := writeFile(t, dir, "clip.html", "<li>b<ul><li>c</li></ul></li>")

	out, err := execute(t, "", "paste", "--html", clip, "--plain")
	require.NoError(t, err)
	assert.Equal(t, "bc\n", out)

	out, err = execute(t, "", "paste", "--html", clip, "--into", target, "--multiline", "li",
		"--internal", "--source-multiline", "li")
	require.NoError(t, err)
	assert.Equal(t, "<li>ab<ul><li>c</li></ul></li>\n", out)

	_, err = execute(t, "", "paste", "--text", "x", "--internal")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestFormatsCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "core/bold")

	out, err = execute(t, "", "formats", "-o", "json")
	require.NoError(t, err)
	var types []struct {
		Name    string `json:"name"`
		TagName string `json:"tagName"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &types))
	assert.Len(t, types, 12)
	assert.Equal(t, "core/bold", types[0].Name)
	assert.Equal(t, "strong", types[0].TagName)

	cfg := writeFile(t, t.TempDir(), "config.yml", `unregister: [core/keyboard]
formats:
  - name: acme/highlight
    title: Highlight
    tag_name: mark
`)
	out, err = execute(t, "", "formats", "-o", "yaml", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "name: acme/highlight")
	assert.NotContains(t, out, "core/keyboard")
}

func TestInitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".richtext.yml")

	_, err := execute(t, "", "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# richtext configuration")

	_, err = execute(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = execute(t, "", "init", "--output", path, "--force", "--full")
	require.NoError(t, err)

	out, err := execute(t, "<strong>a</strong>", "parse", "-", "-o", "html", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "<strong>a</strong>\n", out)

	_, err = execute(t, "", "init", "--format", "toml")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}
