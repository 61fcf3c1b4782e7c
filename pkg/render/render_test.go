package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-cardrender/pkg/engine"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/testsupport"
)

func renderedCard(t *testing.T) *engine.RenderedCard {
	t.Helper()
	return testsupport.RenderCard(t, `{"type":"AdaptiveCard","body":[
		{"type":"Input.Number","id":"qty"},
		{"type":"Input.Text","id":"email"}
	]}`, hostconfig.Default(), nil)
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/qty":          {"Quantity too large", "Quantity too large"},
		"data.email":         {"Email invalid"},
		"$.inputs[1].email":  {" Email taken "},
		"non_field_errors":   {"Card expired"},
		"request/body/other": {"Unknown field"},
		"":                   {"Unscoped"},
	}

	mapped := render.MapErrorPayload(renderedCard(t), payload)

	wantFields := map[string][]string{
		"qty":   {"Quantity too large"},
		"email": {"Email invalid", "Email taken"},
	}
	sorted := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(wantFields, mapped.Fields, sorted); diff != "" {
		t.Fatalf("field errors (-want +got):\n%s", diff)
	}
	wantForm := []string{"Card expired", "Unknown field", "Unscoped"}
	if diff := cmp.Diff(wantForm, mapped.Form, sorted); diff != "" {
		t.Fatalf("form errors (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merged (-want +got):\n%s", diff)
	}
}

func TestHiddenFields(t *testing.T) {
	merged := render.MergeHiddenFields(map[string]string{"b": "1", " ": "x"}, render.CSRFToken("_csrf", "tok"), render.Hidden("b", 2))
	want := []render.HiddenField{{Name: "_csrf", Value: "tok"}, {Name: "b", Value: "2"}}
	if diff := cmp.Diff(want, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("hidden fields (-want +got):\n%s", diff)
	}
	if render.SortedHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}

type stubRenderer struct{ name string }

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "text/plain" }
func (s stubRenderer) Render(context.Context, *engine.RenderedCard, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(stubRenderer{"b"}, stubRenderer{"a"})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, registry.List()); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if err := registry.Register(stubRenderer{"a"}); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatalf("expected lookup error")
	}
	if _, err := render.NewRegistry(stubRenderer{}); err == nil {
		t.Fatalf("expected empty name error")
	}
}

func TestChromeTranslation(t *testing.T) {
	opts := render.RenderOptions{Locale: "es"}
	if got := opts.Chrome("card.required", "Required"); got != "Required" {
		t.Fatalf("expected fallback without translator, got %q", got)
	}

	opts.Translator = render.TranslatorFunc(func(locale, key string, _ ...any) (string, error) {
		if locale == "es" && key == "card.required" {
			return "Obligatorio", nil
		}
		return "", errors.New("missing")
	})
	if got := opts.Chrome("card.required", "Required"); got != "Obligatorio" {
		t.Fatalf("expected translation, got %q", got)
	}
	if got := opts.Chrome("card.other", "Other"); got != "Other" {
		t.Fatalf("expected fallback for missing key, got %q", got)
	}

	funcs := render.TemplateI18nFuncs(opts.Translator, render.TemplateI18nConfig{})
	translateFn := funcs["translate"].(func(any, string, ...string) string)
	if got := translateFn(map[string]any{"locale": "es"}, "card.required", "Required"); got != "Obligatorio" {
		t.Fatalf("template helper translation, got %q", got)
	}
	if got := funcs["current_locale"].(func(any) string)("fr"); got != "fr" {
		t.Fatalf("current_locale, got %q", got)
	}
}
