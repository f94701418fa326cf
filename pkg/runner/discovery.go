package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover returns the sorted absolute paths of fragment files under
// opts.Paths. Hidden files and directories are skipped unless named
// explicitly.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	ignore, err := compileGlobs(opts.Ignore)
	if err != nil {
		return nil, err
	}
	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.extensions(),
		ignore:     ignore,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]bool),
	}

	for _, p := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			if err := w.walk(abs); err != nil {
				return nil, err
			}
			continue
		}
		if w.matches(abs) {
			w.add(abs)
		}
	}

	slices.Sort(w.files)
	return w.files, nil
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

type walker struct {
	ctx        context.Context //nolint:containedctx // scoped to one Discover call
	workDir    string
	extensions []string
	ignore     []glob.Glob
	follow     bool
	seen       map[string]bool
	files      []string
}

func (w *walker) add(path string) {
	if !w.seen[path] {
		w.seen[path] = true
		w.files = append(w.files, path)
	}
}

func (w *walker) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")
		if entry.IsDir() {
			if hidden || w.ignored(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !w.follow || w.ignored(path) {
					return nil
				}
				// WalkDir does not descend into symlinks, so walk the target.
				return w.walk(target)
			}
		}

		if w.matches(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(w.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	return !w.ignored(path)
}

// ignored reports whether path, relative to the working directory, or its
// base name matches an ignore glob.
func (w *walker) ignored(path string) bool {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	return slices.ContainsFunc(w.ignore, func(g glob.Glob) bool {
		return g.Match(rel) || g.Match(base)
	})
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		for _, p := range globVariants(filepath.ToSlash(pattern)) {
			g, err := glob.Compile(p, '/')
			if err != nil {
				return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
			}
			out = append(out, g)
		}
	}
	return out, nil
}

// globVariants adds the zero-directory forms of a pattern: "**/x" also
// matches "x" and "dir/**" also matches "dir" itself, so ignored
// directories are pruned before they are walked.
func globVariants(pattern string) []string {
	variants := []string{pattern}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok && rest != "" {
		variants = append(variants, rest)
	}
	if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
		variants = append(variants, dir)
	}
	return variants
}
