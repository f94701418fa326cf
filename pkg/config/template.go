package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/richtext/pkg/formattype"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every core format type. If false, generates a minimal
	// template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Element that delimits lines: "" (single line), "p" or "li"
multiline_tag: ""

# Text whitespace policy: collapse-control, collapse-all or preserve
whitespace: collapse-control

# Paste conversion
paste:
  markdown: true
  code_detection: true
  flavor: gfm

# Extensions processed by check and normalize
extensions:
  - .html
  - .htm

# File patterns to ignore (glob patterns)
ignore:
  - "node_modules/**"

# Backups made before normalize --write replaces a file
backups:
  enabled: true
  mode: sidecar

# Format types whose elements are flattened to their content
# disable_formats:
#   - core/text-color

# Additional format types
# formats:
#   - name: my/highlight
#     title: Highlight
#     tag_name: span
#     class_name: highlight
#     attributes:
#       color: data-color
`)

	if opts.Full {
		writeFormatDocs(&buf, formattype.CoreTypes())
	}

	if opts.Format == "json" {
		return templateToJSON(buf.Bytes())
	}
	return buf.Bytes(), nil
}

// writeFormatDocs documents format types as comments, ready to be copied
// into unregister or disable_formats.
func writeFormatDocs(buf *bytes.Buffer, types []formattype.FormatType) {
	buf.WriteString("\n# Core format types\n#\n")
	for _, ft := range types {
		fmt.Fprintf(buf, "#   %-20s <%s", ft.Name, ft.TagName)
		if ft.ClassName != "" {
			fmt.Fprintf(buf, ` class="%s"`, ft.ClassName)
		}
		buf.WriteString(">")
		if len(ft.Attributes) > 0 {
			buf.WriteString("  attributes: ")
			buf.WriteString(strings.Join(slices.Sorted(maps.Keys(ft.Attributes)), ", "))
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("#\n# unregister:\n#   - core/keyboard\n")
}

// templateToJSON converts a YAML template to JSON. Comments are dropped.
func templateToJSON(yamlContent []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(yamlContent, &doc); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# richtext configuration
# See: https://github.com/yaklabco/richtext`
}
