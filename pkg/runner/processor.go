package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/richtext/pkg/diff"
	"github.com/yaklabco/richtext/pkg/fsutil"
	"github.com/yaklabco/richtext/pkg/markup"
)

// Processor handles one file.
type Processor interface {
	Process(ctx context.Context, path string) (*FileResult, error)
}

// FileResult describes one processed file.
type FileResult struct {
	Path string

	// Original is the file content; Canonical its normalized form. Both
	// keep the file's trailing newline, if any.
	Original  string
	Canonical string

	// Diff is nil when the file is already canonical.
	Diff *diff.Diff

	// Stable reports whether normalizing Canonical again yields Canonical.
	Stable bool

	// Written reports whether Canonical was written back.
	Written bool
}

// Changed reports whether the file is not in canonical form.
func (r *FileResult) Changed() bool {
	return r.Original != r.Canonical
}

// CanonicalProcessor normalizes a file by parsing it into a value and
// serializing it again.
type CanonicalProcessor struct {
	Converter *markup.Converter

	// Write replaces non-canonical files with their canonical form.
	Write bool

	// Backups controls backups made before writing.
	Backups fsutil.BackupConfig
}

// Process implements Processor.
func (p *CanonicalProcessor) Process(ctx context.Context, path string) (*FileResult, error) {
	content, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	original := string(content)
	body, newline := strings.CutSuffix(original, "\n")

	canonical, err := p.Converter.Normalize(body)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}
	again, err := p.Converter.Normalize(canonical)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", path, err)
	}

	res := &FileResult{
		Path:      path,
		Original:  original,
		Canonical: canonical,
		Stable:    again == canonical,
	}
	if newline {
		res.Canonical += "\n"
	}
	if !res.Changed() {
		return res, nil
	}
	res.Diff = diff.Markup(path, res.Original, res.Canonical)

	if p.Write {
		written, err := fsutil.WriteSnapshot(ctx, snap, []byte(res.Canonical), p.Backups)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		res.Written = written
	}
	return res, nil
}
