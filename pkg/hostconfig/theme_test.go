package hostconfig

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":  "#123456",
			"radius": "4px",
		},
		Templates: map[string]string{
			"card.input": "themes/acme/input.tpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"html.stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Templates: map[string]string{
					"card.toggle": "themes/acme/dark/toggle.tpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{"html.script": "card.dark.js"},
				},
			},
		},
	}
}

func TestResolveTheme_MergesVariant(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: acmeManifest(),
	}}

	cfg, err := ResolveTheme(selector, "acme", "dark", map[string]string{
		"card.input": "fallback/input.tpl",
		"card.text":  "fallback/text.tpl",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls (-want +got):\n%s", diff)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected theme identity %s/%s", cfg.Theme, cfg.Variant)
	}

	wantPartials := map[string]string{
		"card.input":  "themes/acme/input.tpl",
		"card.text":   "fallback/text.tpl",
		"card.toggle": "themes/acme/dark/toggle.tpl",
	}
	if diff := cmp.Diff(wantPartials, cfg.Partials); diff != "" {
		t.Fatalf("partials (-want +got):\n%s", diff)
	}
	wantVars := map[string]string{"--brand": "#654321", "--radius": "4px"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars (-want +got):\n%s", diff)
	}
	if got := cfg.AssetURL("html.stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Fatalf("stylesheet url %q", got)
	}
	if got := cfg.AssetURL("html.script"); got != "/assets/themes/acme/card.dark.js" {
		t.Fatalf("variant asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset should resolve empty, got %q", got)
	}
}

func TestResolveTheme_Errors(t *testing.T) {
	if cfg, err := ResolveTheme(nil, "acme", "", nil); cfg != nil || err != nil {
		t.Fatalf("nil selector should be a no-op, got %v %v", cfg, err)
	}
	boom := errors.New("boom")
	if _, err := ResolveTheme(&stubThemeSelector{err: boom}, "acme", "", nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped selector error, got %v", err)
	}
	if _, err := ResolveTheme(&stubThemeSelector{selection: &theme.Selection{}}, "acme", "", nil); err == nil {
		t.Fatalf("expected empty selection error")
	}
}

func TestConfigWithTheme(t *testing.T) {
	cfg := Default()
	cfg.ThemeName = "acme"
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme", Manifest: acmeManifest()}}

	themed, err := cfg.WithTheme(selector, nil)
	if err != nil {
		t.Fatalf("with theme: %v", err)
	}
	if themed.Theme == nil || themed.Theme.CSSVars["--brand"] != "#123456" {
		t.Fatalf("expected base tokens, got %+v", themed.Theme)
	}
	if cfg.Theme != nil {
		t.Fatalf("original config must not be mutated")
	}
}
