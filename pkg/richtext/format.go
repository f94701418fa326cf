package richtext

import "maps"

// Format is one inline annotation applied to a character, or the descriptor
// of an object or list level occupying a replacement slot.
//
// Formats are shared by pointer: consecutive characters in the same run hold
// the same *Format, and serialization relies on that identity to decide where
// elements start and end.
type Format struct {
	// Type is the registered format name (e.g. "core/bold") or, for
	// unregistered elements, the lowercase tag name.
	Type string `json:"type" yaml:"type"`

	// Attributes are the registered attributes keyed by format attribute key.
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// UnregisteredAttributes are HTML attributes the format type does not
	// declare; they are written back verbatim.
	UnregisteredAttributes map[string]string `json:"unregisteredAttributes,omitempty" yaml:"unregistered_attributes,omitempty"`

	// Object marks formats that occupy a single character slot.
	Object bool `json:"object,omitempty" yaml:"object,omitempty"`

	// InnerHTML holds the opaque content of non-editable objects.
	InnerHTML string `json:"innerHTML,omitempty" yaml:"inner_html,omitempty"`
}

// NewFormat returns a format of the given type with optional attributes.
func NewFormat(formatType string, attributes map[string]string) *Format {
	f := &Format{Type: formatType}
	if len(attributes) > 0 {
		f.Attributes = maps.Clone(attributes)
	}
	return f
}

// Attr returns the registered attribute value for key.
func (f *Format) Attr(key string) (string, bool) {
	if f == nil || f.Attributes == nil {
		return "", false
	}
	v, ok := f.Attributes[key]
	return v, ok
}

// IsFormatEqual reports whether two formats describe the same annotation.
// Identical pointers are always equal; otherwise type and registered
// attributes must match.
func IsFormatEqual(a, b *Format) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	if len(a.Attributes) == 0 && len(b.Attributes) == 0 {
		return true
	}
	return maps.Equal(a.Attributes, b.Attributes)
}

// Replacement is the content of a replacement slot.
//
// Object replacement characters carry Format. Line separators carry Lists,
// the list nesting chain ordered outer to inner; its length is the depth.
type Replacement struct {
	Format *Format   `json:"format,omitempty"`
	Lists  []*Format `json:"lists,omitempty"`
}

// ObjectReplacementOf wraps an object format in a replacement.
func ObjectReplacementOf(f *Format) *Replacement {
	return &Replacement{Format: f}
}

// ListReplacement returns a line separator replacement for the given chain,
// or nil for a top-level line.
func ListReplacement(lists ...*Format) *Replacement {
	if len(lists) == 0 {
		return nil
	}
	return &Replacement{Lists: lists}
}

// Depth returns the list nesting depth carried by r.
func (r *Replacement) Depth() int {
	if r == nil {
		return 0
	}
	return len(r.Lists)
}

// lists returns the chain of r, nil-safe.
func (r *Replacement) lists() []*Format {
	if r == nil {
		return nil
	}
	return r.Lists
}

// IsListChainEqual compares two list chains level by level.
func IsListChainEqual(a, b []*Format) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !IsFormatEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// isReplacementEqual compares replacement slots structurally.
func isReplacementEqual(a, b *Replacement) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if (a.Format == nil) != (b.Format == nil) {
		return false
	}
	if a.Format != nil {
		if !IsFormatEqual(a.Format, b.Format) || a.Format.InnerHTML != b.Format.InnerHTML {
			return false
		}
	}
	return IsListChainEqual(a.Lists, b.Lists)
}

// findType returns the first format in formats with the given type.
func findType(formats []*Format, formatType string) *Format {
	for _, f := range formats {
		if f.Type == formatType {
			return f
		}
	}
	return nil
}

// withoutType returns formats minus every entry of the given type. The input
// slice is never modified.
func withoutType(formats []*Format, formatType string) []*Format {
	var out []*Format
	for _, f := range formats {
		if f.Type != formatType {
			out = append(out, f)
		}
	}
	return out
}

// containsFormat reports whether formats holds the exact pointer f.
func containsFormat(formats []*Format, f *Format) bool {
	for _, candidate := range formats {
		if candidate == f {
			return true
		}
	}
	return false
}
