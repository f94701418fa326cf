package formattype

// Core format names.
const (
	Bold          = "core/bold"
	Italic        = "core/italic"
	Code          = "core/code"
	Strikethrough = "core/strikethrough"
	Subscript     = "core/subscript"
	Superscript   = "core/superscript"
	Keyboard      = "core/keyboard"
	Link          = "core/link"
	Image         = "core/image"
	TextColor     = "core/text-color"
	Language      = "core/language"
	Footnote      = "core/footnote"
)

func notEditable() *bool {
	editable := false
	return &editable
}

// CoreTypes returns the built-in format definitions.
func CoreTypes() []FormatType {
	return []FormatType{
		{Name: Bold, Title: "Bold", TagName: "strong", Keywords: []string{"strong"}},
		{Name: Italic, Title: "Italic", TagName: "em", Keywords: []string{"emphasis"}},
		{Name: Code, Title: "Inline code", TagName: "code"},
		{Name: Strikethrough, Title: "Strikethrough", TagName: "s"},
		{Name: Subscript, Title: "Subscript", TagName: "sub"},
		{Name: Superscript, Title: "Superscript", TagName: "sup"},
		{Name: Keyboard, Title: "Keyboard input", TagName: "kbd"},
		{
			Name:    Link,
			Title:   "Link",
			TagName: "a",
			Attributes: map[string]string{
				"url":    "href",
				"type":   "data-type",
				"id":     "data-id",
				"target": "target",
				"rel":    "rel",
			},
			Keywords: []string{"url", "hyperlink"},
		},
		{
			Name:    Image,
			Title:   "Inline image",
			TagName: "img",
			Object:  true,
			Attributes: map[string]string{
				"url":       "src",
				"alt":       "alt",
				"className": "class",
				"style":     "style",
			},
			Keywords: []string{"photo", "media"},
		},
		{
			Name:       TextColor,
			Title:      "Highlight",
			TagName:    "mark",
			ClassName:  "has-inline-color",
			Attributes: map[string]string{"style": "style", "class": "class"},
		},
		{
			Name:       Language,
			Title:      "Language",
			TagName:    "bdo",
			Attributes: map[string]string{"lang": "lang", "dir": "dir"},
		},
		{
			Name:            Footnote,
			Title:           "Footnote",
			TagName:         "sup",
			ClassName:       "fn",
			Attributes:      map[string]string{"data-fn": "data-fn"},
			ContentEditable: notEditable(),
		},
	}
}

// NewCoreRegistry returns a registry holding the core formats.
func NewCoreRegistry() *Registry {
	r := NewRegistry()
	for _, ft := range CoreTypes() {
		if err := r.Register(ft); err != nil {
			panic(err)
		}
	}
	return r
}
