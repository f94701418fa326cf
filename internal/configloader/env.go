package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/richtext/pkg/config"
)

const envVarPrefix = "RICHTEXT_"

// envMapping binds RICHTEXT_<suffix> to one configuration field.
type envMapping struct {
	suffix      string
	field       string
	description string
	apply       func(cfg *config.Config, raw string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, raw)
		return nil
	}
}

func boolVar(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", raw)
		}
		set(cfg, b)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, splitList(raw))
		return nil
	}
}

//nolint:gochecknoglobals // read-only lookup table
var envMappings = []envMapping{
	{"MULTILINE_TAG", "multiline_tag", "Element delimiting lines: p, li or empty",
		stringVar(func(c *config.Config, v string) { c.MultilineTag = v })},
	{"WHITESPACE", "whitespace", "Whitespace policy: collapse-control, collapse-all or preserve",
		stringVar(func(c *config.Config, v string) { c.Whitespace = v })},
	{"DISABLE_FORMATS", "disable_formats", "Comma-separated format types to flatten",
		listVar(func(c *config.Config, v []string) { c.DisableFormats = v })},
	{"PASTE_MARKDOWN", "paste.markdown", "Convert pasted Markdown: true or false",
		boolVar(func(c *config.Config, v bool) { c.Paste.Markdown = &v })},
	{"PASTE_CODE_DETECTION", "paste.code_detection", "Detect pasted source code: true or false",
		boolVar(func(c *config.Config, v bool) { c.Paste.CodeDetection = &v })},
	{"PASTE_FLAVOR", "paste.flavor", "Markdown flavor: commonmark or gfm",
		stringVar(func(c *config.Config, v string) { c.Paste.Flavor = config.Flavor(v) })},
	{"JOBS", "jobs", "Number of parallel workers (0 = auto)", func(c *config.Config, raw string) error {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		c.Jobs = n
		return nil
	}},
	{"FORMAT", "format", "Output format: text, table, json, diff or summary",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"BACKUPS_ENABLED", "backups.enabled", "Enable backups when writing: true or false",
		boolVar(func(c *config.Config, v bool) { c.Backups.Enabled = &v })},
	{"BACKUPS_MODE", "backups.mode", "Backup mode: sidecar or none",
		stringVar(func(c *config.Config, v string) { c.Backups.Mode = v })},
	{"IGNORE", "ignore", "Comma-separated list of ignore patterns",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"EXTENSIONS", "extensions", "Comma-separated list of file extensions",
		listVar(func(c *config.Config, v []string) { c.Extensions = v })},
	{"NO_BACKUPS", "no_backups", "Disable backups: true or false",
		boolVar(func(c *config.Config, v bool) { c.NoBackups = v })},
}

// LoadFromEnv applies the set RICHTEXT_* variables to cfg. Empty variables
// are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, m := range envMappings {
		name := envVarPrefix + m.suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := m.apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(raw string) []string {
	var items []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// GetEnvVarName returns the variable that sets field, or "".
func GetEnvVarName(field string) string {
	for _, m := range envMappings {
		if m.field == field {
			return envVarPrefix + m.suffix
		}
	}
	return ""
}

// ListEnvVars maps every supported variable to its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for _, m := range envMappings {
		vars[envVarPrefix+m.suffix] = m.description
	}
	return vars
}
