package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richtext/pkg/runner"
)

// makeTree creates files (with parent directories) under a new temp dir.
func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{
		"a.html":             "",
		"b.htm":              "",
		"c.md":               "",
		".hidden.html":       "",
		".git/d.html":        "",
		"sub/e.HTML":         "",
		"sub/skip.html":      "",
		"vendor/f.html":      "",
		"vendor/deep/g.html": "",
	})

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{},
			want: []string{"a.html", "b.htm", "sub/e.HTML", "sub/skip.html", "vendor/deep/g.html", "vendor/f.html"},
		},
		{
			name: "ignore directory",
			opts: runner.Options{Ignore: []string{"vendor/**"}},
			want: []string{"a.html", "b.htm", "sub/e.HTML", "sub/skip.html"},
		},
		{
			name: "ignore anywhere",
			opts: runner.Options{Ignore: []string{"**/skip.html", "*.htm"}},
			want: []string{"a.html", "sub/e.HTML", "vendor/deep/g.html", "vendor/f.html"},
		},
		{
			name: "ignore alternatives",
			opts: runner.Options{Ignore: []string{"{vendor,sub}/**"}},
			want: []string{"a.html", "b.htm"},
		},
		{
			name: "explicit paths deduplicated",
			opts: runner.Options{Paths: []string{"sub", "sub/e.HTML", "c.md"}},
			want: []string{"sub/e.HTML", "sub/skip.html"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".md"}},
			want: []string{"c.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := tt.opts
			opts.WorkingDir = dir
			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, files))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Paths: []string{"missing"}})
	require.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := makeTree(t, map[string]string{"real/a.html": ""})
	target := filepath.Join(dir, "real")
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"real/a.html"}, rel(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"real/a.html"}, rel(t, dir, files), "targets are reported once")
}
