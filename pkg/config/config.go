// Package config defines the configuration types for richtext.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

import (
	"github.com/yaklabco/richtext/pkg/formattype"
	"github.com/yaklabco/richtext/pkg/markup"
)

// Flavor specifies the Markdown flavor used when pasting Markdown.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// OutputFormat specifies the output format for run results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// PasteConfig controls paste conversion.
type PasteConfig struct {
	// Markdown converts pasted plain text that looks like Markdown.
	Markdown *bool `yaml:"markdown,omitempty"`

	// CodeDetection inserts pasted source code verbatim.
	CodeDetection *bool `yaml:"code_detection,omitempty"`

	// Flavor is the Markdown flavor used for conversion.
	Flavor Flavor `yaml:"flavor,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Mode    string `yaml:"mode,omitempty"` // "sidecar" or "none"
}

// Config is the root configuration structure.
type Config struct {
	// MultilineTag is the element that delimits lines, e.g. "p" or "li".
	// Empty means single-line regions.
	MultilineTag string `yaml:"multiline_tag"`

	// Whitespace names the text node whitespace policy: collapse-control,
	// collapse-all or preserve.
	Whitespace string `yaml:"whitespace"`

	// DisableFormats lists format types whose elements are flattened.
	DisableFormats []string `yaml:"disable_formats,omitempty"`

	// Formats registers additional format types.
	Formats []formattype.FormatType `yaml:"formats,omitempty"`

	// Unregister removes core format types by name.
	Unregister []string `yaml:"unregister,omitempty"`

	// Paste configures paste conversion.
	Paste PasteConfig `yaml:"paste"`

	// Extensions lists the file extensions processed by check and normalize.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Write replaces non-canonical files with their canonical form.
	Write bool `yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Whitespace: markup.WhitespaceCollapseControl,
		Paste: PasteConfig{
			Markdown:      boolPtr(true),
			CodeDetection: boolPtr(true),
			Flavor:        FlavorGFM,
		},
		Extensions: []string{".html", ".htm"},
		Backups: BackupsConfig{
			Enabled: boolPtr(true),
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// BackupsEnabled reports whether backups are made before writing.
func (c *Config) BackupsEnabled() bool {
	return !c.NoBackups && isTrue(c.Backups.Enabled)
}

// PasteMarkdown reports whether Markdown paste conversion is on.
func (c *Config) PasteMarkdown() bool {
	return isTrue(c.Paste.Markdown)
}

// PasteCodeDetection reports whether pasted code is detected.
func (c *Config) PasteCodeDetection() bool {
	return isTrue(c.Paste.CodeDetection)
}

func boolPtr(b bool) *bool {
	return &b
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
