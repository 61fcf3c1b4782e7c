package render

import (
	"fmt"
	"strings"
)

// TemplateI18nConfig configures template-level translation helpers.
type TemplateI18nConfig struct {
	// LocaleKey names the key holding the locale when templates pass a map
	// instead of a raw string. Defaults to "locale".
	LocaleKey string
	// FuncName customises the translator helper name. Defaults to "translate".
	FuncName string
	// OnMissing controls the string returned when a translation is missing.
	OnMissing MissingTranslationHandler
}

// TemplateI18nFuncs returns helpers for the pongo2 engine (see
// gotemplate.WithTemplateFunc) so templates can localise their own chrome:
//
//	translate(localeSrc, key, fallback) string
//	current_locale(localeSrc) string
//
// localeSrc is a locale string or a map holding one under cfg.LocaleKey.
func TemplateI18nFuncs(t Translator, cfg TemplateI18nConfig) map[string]any {
	localeKey := strings.TrimSpace(cfg.LocaleKey)
	if localeKey == "" {
		localeKey = "locale"
	}
	name := strings.TrimSpace(cfg.FuncName)
	if name == "" {
		name = "translate"
	}
	onMissing := cfg.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	return map[string]any{
		name: func(localeSrc any, key string, fallback ...string) string {
			def := ""
			if len(fallback) > 0 {
				def = fallback[0]
			}
			return translate(resolveLocale(localeSrc, localeKey), key, def, t, onMissing)
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc, localeKey)
		},
	}
}

func resolveLocale(src any, key string) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]string:
		return data[key]
	case map[string]any:
		if v, ok := data[key]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return ""
}
