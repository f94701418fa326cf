package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/richtext/pkg/runner"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's result.
type JSONFileResult struct {
	Path       string `json:"path"`
	Status     string `json:"status"`
	Stable     bool   `json:"stable"`
	Insertions int    `json:"insertions,omitempty"`
	Deletions  int    `json:"deletions,omitempty"`
	Canonical  string `json:"canonical,omitempty"`
	Diff       string `json:"diff,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesChecked    int `json:"filesChecked"`
	FilesCanonical  int `json:"filesCanonical"`
	FilesChanged    int `json:"filesChanged"`
	FilesUnstable   int `json:"filesUnstable"`
	FilesWritten    int `json:"filesWritten"`
	FilesErrored    int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}
	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesChecked:    stats.FilesProcessed,
		FilesCanonical:  stats.FilesCanonical,
		FilesChanged:    stats.FilesChanged,
		FilesUnstable:   stats.FilesUnstable,
		FilesWritten:    stats.FilesWritten,
		FilesErrored:    stats.FilesErrored,
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   displayPath(file.Path, r.opts.WorkingDir),
			Status: Status(file),
		}
		switch {
		case file.Error != nil:
			fileResult.Error = file.Error.Error()
		case file.Result != nil:
			fileResult.Stable = file.Result.Stable
			if d := file.Result.Diff; d.HasChanges() {
				fileResult.Insertions = d.Insertions
				fileResult.Deletions = d.Deletions
				fileResult.Canonical = file.Result.Canonical
				fileResult.Diff = d.String()
			}
		}
		output.Files = append(output.Files, fileResult)
	}

	return output
}
