package config

import (
	"errors"
	"fmt"

	"github.com/yaklabco/richtext/pkg/formattype"
	"github.com/yaklabco/richtext/pkg/fsutil"
	"github.com/yaklabco/richtext/pkg/markdown"
	"github.com/yaklabco/richtext/pkg/markup"
	"github.com/yaklabco/richtext/pkg/paste"
)

// ErrUnknownFormat is returned when unregister names a missing format type.
var ErrUnknownFormat = errors.New("unknown format type")

// Registry builds the format registry: the core formats minus Unregister,
// plus Formats.
func (c *Config) Registry() (*formattype.Registry, error) {
	registry := formattype.NewCoreRegistry()
	for _, name := range c.Unregister {
		if _, ok := registry.Unregister(name); !ok {
			return nil, fmt.Errorf("unregister %q: %w", name, ErrUnknownFormat)
		}
	}
	for _, ft := range c.Formats {
		if err := registry.Register(ft); err != nil {
			return nil, fmt.Errorf("register format: %w", err)
		}
	}
	return registry, nil
}

// Converter builds a markup converter from the configuration.
func (c *Config) Converter() (*markup.Converter, error) {
	registry, err := c.Registry()
	if err != nil {
		return nil, err
	}
	policy, err := markup.WhitespaceByName(c.Whitespace)
	if err != nil {
		return nil, fmt.Errorf("whitespace: %w", err)
	}
	return markup.New(markup.Config{
		Registry:       registry,
		MultilineTag:   c.MultilineTag,
		Whitespace:     policy,
		DisableFormats: c.DisableFormats,
	}), nil
}

// PasteOptions returns paste options using conv.
func (c *Config) PasteOptions(conv *markup.Converter) paste.Options {
	flavor := c.Paste.Flavor
	if flavor == "" {
		flavor = FlavorGFM
	}
	return paste.Options{
		Converter:     conv,
		Markdown:      c.PasteMarkdown(),
		CodeDetection: c.PasteCodeDetection(),
		Renderer:      markdown.New(string(flavor)),
	}
}

// BackupConfig returns the file backup settings.
func (c *Config) BackupConfig() fsutil.BackupConfig {
	mode := fsutil.BackupMode(c.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{Enabled: c.BackupsEnabled(), Mode: mode}
}
