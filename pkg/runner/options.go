// Package runner checks and normalizes HTML fragment files in bulk.
package runner

// Options controls discovery and the worker pool.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative paths and anchors ignore globs. Empty
	// means the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions treated as fragments.
	// Empty means DefaultExtensions.
	Extensions []string

	// Ignore holds globs for files and directories to skip. "**" matches
	// across directories.
	Ignore []string

	// FollowSymlinks enables descending into symlinked directories.
	FollowSymlinks bool

	// Jobs bounds the number of concurrent workers. Zero or less means one
	// per CPU.
	Jobs int
}

// DefaultExtensions returns the fragment file extensions used by default.
func DefaultExtensions() []string {
	return []string{".html", ".htm"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
