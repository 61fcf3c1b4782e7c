package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is a hidden input emitted next to the card's own inputs.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken constructs a hidden field carrying token under name.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields returns a copy of base with fields applied. Later fields
// win on name collisions; blank names are dropped.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if key = strings.TrimSpace(key); key != "" {
			out[key] = value
		}
	}
	for _, field := range fields {
		if field.Name != "" {
			out[field.Name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	merged := MergeHiddenFields(fields)
	if len(merged) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(merged))
	for name, value := range merged {
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
