package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without re-running the render pass.
type RenderOptions struct {
	// Values overrides the displayed text of inputs keyed by input id, for
	// example to echo a rejected submission back to the user.
	Values map[string]string
	// Errors surfaces validation feedback keyed by input id. submit.Result.Errors
	// and MapErrorPayload both produce this shape.
	Errors map[string][]string
	// FormErrors are card-level messages not tied to one input.
	FormErrors []string
	// HiddenFields are emitted as hidden inputs alongside the card.
	HiddenFields map[string]string
	// Action is the endpoint the HTML form posts to.
	Action string
	// Theme carries the resolved go-theme configuration. When nil, renderers
	// fall back to the host config's theme, then to their defaults.
	Theme *theme.RendererConfig
	// Locale and Translator localise renderer chrome.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
	// ShowWarnings asks renderers to surface pass warnings to the reader.
	ShowWarnings bool
}

// ThemeFor picks the explicit theme, then fallback.
func (o RenderOptions) ThemeFor(fallback *theme.RendererConfig) *theme.RendererConfig {
	if o.Theme != nil {
		return o.Theme
	}
	return fallback
}
