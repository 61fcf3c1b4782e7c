// Package cardrender renders declarative card documents into HTML or an
// interactive terminal session. The sub-packages expose each pipeline stage;
// this package wires them together for the common cases.
package cardrender

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/orchestrator"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/renderers/html"
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads the card source, runs a render pass and serialises it
// with the named renderer. An empty renderer name selects html.
func GenerateHTML(ctx context.Context, source card.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders a card from raw JSON, bypassing the loader.
func GenerateFromDocument(ctx context.Context, document []byte, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: document,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks overrides the partial fallbacks used when a theme omits
// a component template.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}

// EmbeddedTemplates exposes the built-in html renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the default stylesheet so applications can serve it.
//
//	mux.Handle("/cardrender/",
//	  http.StripPrefix("/cardrender/",
//	    http.FileServerFS(cardrender.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
