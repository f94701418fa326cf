package richtext

import (
	"encoding/json"
	"fmt"
)

type valueJSON struct {
	Text          string         `json:"text"`
	Formats       [][]*Format    `json:"formats"`
	Replacements  []*Replacement `json:"replacements"`
	Start         int            `json:"start"`
	End           int            `json:"end"`
	ActiveFormats []*Format      `json:"activeFormats"`
}

// MarshalJSON encodes v with null for absent format and replacement slots.
func (v *Value) MarshalJSON() ([]byte, error) {
	formats := v.Formats
	if formats == nil {
		formats = [][]*Format{}
	}
	replacements := v.Replacements
	if replacements == nil {
		replacements = []*Replacement{}
	}
	return json.Marshal(valueJSON{
		Text:          string(v.Text),
		Formats:       formats,
		Replacements:  replacements,
		Start:         v.Start,
		End:           v.End,
		ActiveFormats: v.ActiveFormats,
	})
}

// UnmarshalJSON decodes a value and validates it. Missing formats and
// replacements arrays are treated as all-absent. Equal formats on adjacent
// characters and equal list levels on consecutive lines are made to share
// pointers again.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw valueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}

	text := []rune(raw.Text)
	if raw.Formats == nil {
		raw.Formats = make([][]*Format, len(text))
	}
	if raw.Replacements == nil {
		raw.Replacements = make([]*Replacement, len(text))
	}
	decoded := &Value{
		Text:          text,
		Formats:       raw.Formats,
		Replacements:  raw.Replacements,
		Start:         raw.Start,
		End:           raw.End,
		ActiveFormats: raw.ActiveFormats,
	}
	if err := decoded.Validate(); err != nil {
		return fmt.Errorf("decode value: %w", err)
	}

	normalized := NormalizeFormats(decoded)
	normalizeListChains(normalized)
	*v = *normalized
	return nil
}
