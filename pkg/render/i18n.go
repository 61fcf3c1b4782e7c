package render

import (
	"errors"
	"strings"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// Translator is configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to fn.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides what to display when a key cannot be
// translated. args carries the call's params; the first may be a map holding
// the "default" text.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		if m, ok := arg.(map[string]any); ok {
			if fallback, ok := m["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}

// Chrome returns the localised text for a renderer-owned string such as a
// required marker, falling back to fallback.
func (o RenderOptions) Chrome(key, fallback string) string {
	onMissing := o.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(o.Locale, key, fallback, o.Translator, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	params := []any{map[string]any{"default": fallback}}
	if t == nil {
		return onMissing(locale, key, params, ErrMissingTranslator)
	}
	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, params, err)
}
