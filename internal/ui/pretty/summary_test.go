package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/richtext/internal/ui/pretty"
	"github.com/yaklabco/richtext/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stats    runner.Stats
		expected string
	}{
		{
			name:     "all canonical",
			stats:    runner.Stats{FilesProcessed: 3, FilesCanonical: 3},
			expected: "All files canonical (3 files checked)\n",
		},
		{
			name:     "one file",
			stats:    runner.Stats{FilesProcessed: 1, FilesCanonical: 1},
			expected: "All files canonical (1 file checked)\n",
		},
		{
			name:     "changes",
			stats:    runner.Stats{FilesProcessed: 5, FilesCanonical: 3, FilesChanged: 2},
			expected: "2 files not canonical (5 files checked)\n",
		},
		{
			name:     "written and failed",
			stats:    runner.Stats{FilesProcessed: 2, FilesChanged: 1, FilesWritten: 1, FilesErrored: 1},
			expected: "1 file not canonical, 1 written, 1 file failed (2 files checked)\n",
		},
		{
			name:     "unstable",
			stats:    runner.Stats{FilesProcessed: 1, FilesChanged: 1, FilesUnstable: 1},
			expected: "1 file not canonical, 1 unstable (1 file checked)\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(runner.Stats{FilesDiscovered: 4, FilesProcessed: 4, FilesCanonical: 2, FilesChanged: 2})
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files discovered:  4")
	assert.Contains(t, out, "Not canonical:     2")
	assert.NotContains(t, out, "Failed:")
	assert.Contains(t, out, "Some files are not canonical")

	out = styles.FormatSummary(runner.Stats{FilesProcessed: 2, FilesChanged: 2, FilesWritten: 2})
	assert.Contains(t, out, "Written:           2")
	assert.Contains(t, out, "All files canonical")

	out = styles.FormatSummary(runner.Stats{FilesProcessed: 1, FilesErrored: 1})
	assert.Contains(t, out, "Run failed with errors")
}
