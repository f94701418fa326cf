// Package formattype holds format type definitions and the registry that maps
// HTML elements to rich-text formats and back.
package formattype

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// Registration errors.
var (
	ErrInvalidName      = errors.New("format type name must be a namespaced lowercase identifier")
	ErrMissingTitle     = errors.New("format type title is required")
	ErrMissingTagName   = errors.New("format type tag name is required")
	ErrInvalidClassName = errors.New("format type class name is invalid")
	ErrDuplicateName    = errors.New("format type already registered")
	ErrDuplicateTag     = errors.New("bare element already handled by another format type")
	ErrDuplicateClass   = errors.New("class name already handled by another format type")
)

//nolint:gochecknoglobals // compiled patterns are read-only
var (
	namePattern      = regexp.MustCompile(`^[a-z][a-z0-9-]*/[a-z][a-z0-9-]*$`)
	classNamePattern = regexp.MustCompile(`^[_a-zA-Z]+[a-zA-Z0-9_-]*$`)
)

// FormatType describes how a format maps onto an HTML element.
type FormatType struct {
	// Name is the namespaced format name, e.g. "core/bold".
	Name string `yaml:"name" json:"name"`

	// Title is the human-readable label.
	Title string `yaml:"title" json:"title"`

	// TagName is the element the format renders to.
	TagName string `yaml:"tag_name" json:"tagName"`

	// ClassName distinguishes formats sharing a tag. Empty means the format
	// claims the bare element.
	ClassName string `yaml:"class_name,omitempty" json:"className,omitempty"`

	// Attributes maps format attribute keys to HTML attribute names.
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`

	// Object marks void formats that occupy a single character.
	Object bool `yaml:"object,omitempty" json:"object,omitempty"`

	// ContentEditable false makes the element an opaque object whose inner
	// HTML is carried verbatim.
	ContentEditable *bool `yaml:"content_editable,omitempty" json:"contentEditable,omitempty"`

	// Keywords help search for the format.
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`
}

// Editable reports whether the element content is editable rich text.
func (ft *FormatType) Editable() bool {
	return ft.ContentEditable == nil || *ft.ContentEditable
}

// HTMLAttribute returns the HTML attribute name for a format attribute key.
// Unknown keys map to themselves.
func (ft *FormatType) HTMLAttribute(key string) string {
	if name, ok := ft.Attributes[key]; ok {
		return name
	}
	return key
}

// Validate checks the definition on its own, without registry context.
func (ft *FormatType) Validate() error {
	if !namePattern.MatchString(ft.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, ft.Name)
	}
	if ft.TagName == "" {
		return fmt.Errorf("%s: %w", ft.Name, ErrMissingTagName)
	}
	if ft.ClassName != "" && !classNamePattern.MatchString(ft.ClassName) {
		return fmt.Errorf("%s: %w: %q", ft.Name, ErrInvalidClassName, ft.ClassName)
	}
	if strings.TrimSpace(ft.Title) == "" {
		return fmt.Errorf("%s: %w", ft.Name, ErrMissingTitle)
	}
	return nil
}

// Registry holds format types. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*FormatType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*FormatType)}
}

// Register validates ft and adds it to the registry. A format type claiming a
// bare element or class name already handled by another type is rejected.
func (r *Registry) Register(ft FormatType) error {
	if err := ft.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[ft.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, ft.Name)
	}
	for _, other := range r.byName {
		if ft.ClassName == "" && other.ClassName == "" && other.TagName == ft.TagName {
			return fmt.Errorf("%w: <%s> is %s", ErrDuplicateTag, ft.TagName, other.Name)
		}
		if ft.ClassName != "" && other.ClassName == ft.ClassName {
			return fmt.Errorf("%w: .%s is %s", ErrDuplicateClass, ft.ClassName, other.Name)
		}
	}

	stored := ft
	stored.Attributes = maps.Clone(ft.Attributes)
	stored.Keywords = slices.Clone(ft.Keywords)
	r.byName[ft.Name] = &stored
	return nil
}

// Unregister removes a format type and returns it.
func (r *Registry) Unregister(name string) (*FormatType, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ft, ok := r.byName[name]
	if ok {
		delete(r.byName, name)
	}
	return ft, ok
}

// Get retrieves a format type by name.
func (r *Registry) Get(name string) (*FormatType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ft, ok := r.byName[name]
	return ft, ok
}

// Types returns all format types sorted by name.
func (r *Registry) Types() []*FormatType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := slices.Collect(maps.Values(r.byName))
	slices.SortFunc(result, func(a, b *FormatType) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return result
}

// Len returns the number of registered format types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// ForBareElement returns the format type claiming tagName without a class.
func (r *Registry) ForBareElement(tagName string) (*FormatType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ft := range r.byName {
		if ft.ClassName == "" && ft.TagName == tagName {
			return ft, true
		}
	}
	return nil, false
}

// ForClassName returns the format type whose class name appears in the
// space-separated classes of a tagName element.
func (r *Registry) ForClassName(tagName, classes string) (*FormatType, bool) {
	fields := strings.Fields(classes)
	if len(fields) == 0 {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ft := range r.byName {
		if ft.ClassName != "" && ft.TagName == tagName && slices.Contains(fields, ft.ClassName) {
			return ft, true
		}
	}
	return nil, false
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &Registry{byName: maps.Clone(r.byName)}
}
