package logging

// Field names for key/value log records.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	FieldMultiline  = "multiline"
	FieldWhitespace = "whitespace"
	FieldWrite      = "write"
	FieldJobs       = "jobs"
	FieldOp         = "op"
	FieldStep       = "step"
	FieldKind       = "kind"
	FieldLanguage   = "language"

	FieldFilesDiscovered = "files_discovered"
	FieldFilesCanonical  = "files_canonical"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesErrored    = "files_errored"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	FieldName = "name"
	FieldTag  = "tag"
)
