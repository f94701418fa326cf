package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/diff"
	"github.com/yaklabco/richtext/pkg/reporter"
	"github.com/yaklabco/richtext/pkg/runner"
)

func sampleResult() *runner.Result {
	changed := &runner.FileResult{
		Path:      "/work/docs/b.html",
		Original:  "<b>x</b>",
		Canonical: "<strong>x</strong>",
		Stable:    true,
	}
	changed.Diff = diff.Markup(changed.Path, changed.Original, changed.Canonical)

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/a.html", Result: &runner.FileResult{Path: "/work/a.html", Original: "ok", Canonical: "ok", Stable: true}},
			{Path: changed.Path, Result: changed},
			{Path: "/work/c.html", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 3,
			FilesProcessed:  2,
			FilesCanonical:  1,
			FilesChanged:    1,
			FilesErrored:    1,
		},
	}
}

func report(t *testing.T, opts reporter.Options) (string, string, int) {
	t.Helper()

	var out, errOut bytes.Buffer
	opts.Writer = &out
	opts.ErrorWriter = &errOut
	opts.Color = "never"
	opts.WorkingDir = "/work"

	r, err := reporter.New(opts)
	require.NoError(t, err)
	n, err := r.Report(context.Background(), sampleResult())
	require.NoError(t, err)
	return out.String(), errOut.String(), n
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	assert.Equal(t, reporter.StatusCanonical, reporter.Status(res.Files[0]))
	assert.Equal(t, reporter.StatusChanged, reporter.Status(res.Files[1]))
	assert.Equal(t, reporter.StatusError, reporter.Status(res.Files[2]))

	res.Files[1].Result.Written = true
	assert.Equal(t, reporter.StatusWritten, reporter.Status(res.Files[1]))
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, _, n := report(t, reporter.Options{Format: reporter.FormatText, ShowDiff: true, ShowSummary: true})

	assert.Equal(t, 1, n)
	assert.NotContains(t, out, "a.html", "canonical files are hidden by default")
	assert.Contains(t, out, "docs/b.html: not canonical +2 -2\n")
	assert.Contains(t, out, "--- a/docs/b.html\n")
	assert.Contains(t, out, "-<b>\n")
	assert.Contains(t, out, "+<strong>\n")
	assert.Contains(t, out, "c.html: error: permission denied\n")
	assert.Contains(t, out, "1 file not canonical, 1 file failed (2 files checked)\n")
}

func TestTextReporter_ShowCanonical(t *testing.T) {
	t.Parallel()

	out, _, _ := report(t, reporter.Options{Format: reporter.FormatText, ShowCanonical: true})

	assert.Contains(t, out, "a.html: canonical\n")
	assert.NotContains(t, out, "+<strong>")
	assert.NotContains(t, out, "checked")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := reporter.NewTextReporter(reporter.Options{Writer: &out, Color: "never", ShowSummary: true})
	n, err := r.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No files to check.\n", out.String())
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	out, errOut, n := report(t, reporter.Options{Format: reporter.FormatDiff})

	assert.Equal(t, 1, n)
	expected := "--- a/docs/b.html\n" +
		"+++ b/docs/b.html\n" +
		"@@ -1,3 +1,3 @@\n" +
		"-<b>\n" +
		"+<strong>\n" +
		" x\n" +
		"-</b>\n" +
		"+</strong>\n"
	assert.Equal(t, expected, out)
	assert.Equal(t, "c.html: error: permission denied\n", errOut)
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, _, n := report(t, reporter.Options{Format: reporter.FormatJSON})
	assert.Equal(t, 1, n)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))

	assert.Equal(t, "1.0.0", decoded.Version)
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, reporter.JSONFileResult{Path: "a.html", Status: "canonical", Stable: true}, decoded.Files[0])

	changed := decoded.Files[1]
	assert.Equal(t, "docs/b.html", changed.Path)
	assert.Equal(t, "changed", changed.Status)
	assert.Equal(t, "<strong>x</strong>", changed.Canonical)
	assert.Equal(t, 2, changed.Insertions)
	assert.Contains(t, changed.Diff, "+<strong>")

	assert.Equal(t, "permission denied", decoded.Files[2].Error)
	assert.Equal(t, reporter.JSONSummary{
		FilesDiscovered: 3, FilesChecked: 2, FilesCanonical: 1, FilesChanged: 1, FilesErrored: 1,
	}, decoded.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	out, _, _ := report(t, reporter.Options{Format: reporter.FormatJSON, Compact: true})
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte("\n")))
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, _, n := report(t, reporter.Options{Format: reporter.FormatTable})

	assert.Equal(t, 1, n)
	assert.Contains(t, out, "STATUS")
	assert.Contains(t, out, "canonical")
	assert.Contains(t, out, "docs/b.html")
	assert.Contains(t, out, "error")
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, _, n := report(t, reporter.Options{Format: reporter.FormatSummary})

	assert.Equal(t, 1, n)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Failed:")
	assert.Contains(t, out, "Run failed with errors")
}
