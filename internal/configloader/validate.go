package configloader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/markup"
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field    string // e.g. "backups.mode" or "extensions[2]"
	Value    any
	Message  string
	FilePath string // empty once layers are merged
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{e.FilePath, e.Field, e.Message} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ": ")
}

// ValidationResult collects the errors and warnings of one Validate call.
// Warnings never prevent loading.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	flavors       = []config.Flavor{config.FlavorCommonMark, config.FlavorGFM}
	outputFormats = []config.OutputFormat{
		config.FormatText, config.FormatTable, config.FormatJSON, config.FormatDiff, config.FormatSummary,
	}
	backupModes    = []string{"sidecar", "none"}
	lineElements   = []string{"p", "li"}
	tagNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
)

func joined[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

// Validate checks a configuration layer or a merged configuration.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	switch tag := cfg.MultilineTag; {
	case tag == "":
	case !tagNamePattern.MatchString(tag):
		result.fail("multiline_tag", tag, "invalid element name %q", tag)
	case !slices.Contains(lineElements, tag):
		result.warn("multiline_tag", tag, "unusual line element %q; editors normally use p or li", tag)
	}

	if cfg.Whitespace != "" && !markup.IsWhitespacePolicy(cfg.Whitespace) {
		result.fail("whitespace", cfg.Whitespace, "invalid whitespace policy %q; must be one of: %s",
			cfg.Whitespace, strings.Join(markup.WhitespacePolicies(), ", "))
	}
	if cfg.Paste.Flavor != "" && !IsValidFlavor(cfg.Paste.Flavor) {
		result.fail("paste.flavor", cfg.Paste.Flavor, "invalid flavor %q; must be one of: %s",
			cfg.Paste.Flavor, joined(flavors))
	}
	if cfg.Format != "" && !slices.Contains(outputFormats, cfg.Format) {
		result.fail("format", cfg.Format, "invalid format %q; must be one of: %s", cfg.Format, joined(outputFormats))
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.Backups.Mode != "" && !slices.Contains(backupModes, cfg.Backups.Mode) {
		result.fail("backups.mode", cfg.Backups.Mode, "invalid backup mode %q; must be one of: %s",
			cfg.Backups.Mode, joined(backupModes))
	}

	checkFormats(cfg, result)

	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			result.fail(fmt.Sprintf("extensions[%d]", i), ext, "invalid extension %q; must start with a dot, e.g. .html", ext)
		}
	}
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	return result
}

// checkFormats builds the registry the configuration describes and warns
// about disabled types it does not contain.
func checkFormats(cfg *config.Config, result *ValidationResult) {
	registry, err := cfg.Registry()
	if err != nil {
		result.fail("formats", nil, "%v", err)
		return
	}
	for i, name := range cfg.DisableFormats {
		if _, ok := registry.Get(name); !ok {
			result.warn(fmt.Sprintf("disable_formats[%d]", i), name, "unknown format type %q; it will be ignored", name)
		}
	}
}

// ValidateWithFile validates one configuration file and attributes every
// finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// IsValidFlavor reports whether f names a supported Markdown flavor.
func IsValidFlavor(f config.Flavor) bool {
	return slices.Contains(flavors, f)
}
