package configloader

import (
	"github.com/yaklabco/richtext/pkg/config"
	"github.com/yaklabco/richtext/pkg/formattype"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional booleans: override overwrites base if set, so false sticks
//   - Slices: override replaces base entirely if override is non-nil
//   - Formats: merged by name, override's definition wins
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.MultilineTag != "" {
		result.MultilineTag = override.MultilineTag
	}
	if override.Whitespace != "" {
		result.Whitespace = override.Whitespace
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// CLI switches can only be turned on.
	if override.Write {
		result.Write = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Paste.Markdown != nil {
		result.Paste.Markdown = override.Paste.Markdown
	}
	if override.Paste.CodeDetection != nil {
		result.Paste.CodeDetection = override.Paste.CodeDetection
	}
	if override.Paste.Flavor != "" {
		result.Paste.Flavor = override.Paste.Flavor
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}

	if override.DisableFormats != nil {
		result.DisableFormats = override.DisableFormats
	}
	if override.Unregister != nil {
		result.Unregister = override.Unregister
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	result.Formats = mergeFormats(base.Formats, override.Formats)

	return &result
}

// mergeFormats merges format type lists by name. Base order is kept and new
// names are appended in override order.
func mergeFormats(base, override []formattype.FormatType) []formattype.FormatType {
	if override == nil {
		return base
	}
	if base == nil {
		return override
	}

	result := make([]formattype.FormatType, 0, len(base)+len(override))
	index := make(map[string]int, len(base))
	for _, ft := range base {
		index[ft.Name] = len(result)
		result = append(result, ft)
	}
	for _, ft := range override {
		if i, ok := index[ft.Name]; ok {
			result[i] = ft
			continue
		}
		index[ft.Name] = len(result)
		result = append(result, ft)
	}
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
