package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []string
		contains    []string
		notContains []string
	}{
		{
			name: "root",
			args: []string{"--help"},
			contains: []string{
				"Usage:",
				"Available Commands:",
				"normalize",
				"Environment:",
				"RICHTEXT_MULTILINE_TAG",
			},
			notContains: []string{"Global Flags:"},
		},
		{
			name: "subcommand",
			args: []string{"parse", "--help"},
			contains: []string{
				"richtext parse <file|->",
				"--multiline string",
				"Global Flags:",
				"--no-config",
			},
			notContains: []string{"Environment:", "Available Commands:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, out, unwanted)
			}
		})
	}
}
