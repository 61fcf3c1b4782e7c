package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-cardrender/pkg/engine"
)

// ErrorMapping splits a server error payload into input-level and card-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates message slices, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps server error payloads keyed by JSON pointer or dotted
// paths ("/body/qty", "data.qty", "$.inputs[0].qty") onto the input ids of
// rc. Paths that name no rendered input become card-level messages.
func MapErrorPayload(rc *engine.RenderedCard, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	ids := make(map[string]struct{})
	if rc != nil {
		for _, in := range rc.Inputs() {
			ids[in.Element.Input().ID] = struct{}{}
		}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		id := matchInputID(rawPath, ids)
		if id == "" {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[id] = append(mapping.Fields[id], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchInputID(raw string, ids map[string]struct{}) string {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return ""
	}
	if _, ok := ids[trimmed]; ok {
		return trimmed
	}

	segments := stripNumericSegments(dropWrapperSegments(parsePathSegments(trimmed)))
	if len(segments) == 0 {
		return ""
	}
	if joined := strings.Join(segments, "."); joined != "" {
		if _, ok := ids[joined]; ok {
			return joined
		}
	}
	// Input ids are flat, so the deepest segment naming one wins.
	for i := len(segments) - 1; i >= 0; i-- {
		if _, ok := ids[segments[i]]; ok {
			return segments[i]
		}
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for _, prefix := range []string{"#/", "$/", "$."} {
		clean = strings.TrimPrefix(clean, prefix)
	}
	clean = strings.TrimLeft(clean, "#/.$")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":    {},
		"request": {},
		"payload": {},
		"data":    {},
		"inputs":  {},
	}
	for len(segments) > 0 {
		if _, ok := wrappers[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	return segments
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "card", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
