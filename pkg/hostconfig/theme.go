package hostconfig

import (
	"fmt"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ResolveTheme selects name/variant through selector and flattens the
// selection into a renderer configuration. Variant tokens, templates and
// asset files override the manifest's. Fallback partials fill template keys
// the theme leaves unset.
func ResolveTheme(selector theme.ThemeSelector, name, variant string, fallbacks map[string]string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, nil
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("hostconfig: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("hostconfig: theme %q resolved to an empty selection", name)
	}
	return rendererConfig(selection, fallbacks), nil
}

// WithTheme resolves the theme named by c and returns a copy carrying it.
func (c Config) WithTheme(selector theme.ThemeSelector, fallbacks map[string]string) (Config, error) {
	if selector == nil {
		return c, nil
	}
	cfg, err := ResolveTheme(selector, c.ThemeName, c.ThemeVariant, fallbacks)
	if err != nil {
		return c, err
	}
	c.Theme = cfg
	return c, nil
}

func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	manifest := selection.Manifest

	partials := make(map[string]string, len(fallbacks)+len(manifest.Templates))
	for key, value := range fallbacks {
		partials[key] = value
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	assets := make(map[string]string, len(manifest.Assets.Files))
	prefix := manifest.Assets.Prefix

	merge(partials, manifest.Templates)
	merge(tokens, manifest.Tokens)
	merge(assets, manifest.Assets.Files)

	if v, ok := manifest.Variants[selection.Variant]; ok {
		merge(partials, v.Templates)
		merge(tokens, v.Tokens)
		merge(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, assets),
	}
}

func merge(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") || prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
}
