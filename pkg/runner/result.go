package runner

// FileOutcome is the result of one file, or the error that stopped it.
type FileOutcome struct {
	Path   string
	Result *FileResult
	Error  error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesCanonical  int
	FilesChanged    int
	FilesUnstable   int
	FilesWritten    int
	FilesErrored    int
}

// Result holds the outcomes of a run in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasChanges reports whether any file was not canonical.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(o FileOutcome) {
	r.Files = append(r.Files, o)
	if o.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if o.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if o.Result.Changed() {
		r.Stats.FilesChanged++
	} else {
		r.Stats.FilesCanonical++
	}
	if !o.Result.Stable {
		r.Stats.FilesUnstable++
	}
	if o.Result.Written {
		r.Stats.FilesWritten++
	}
}
