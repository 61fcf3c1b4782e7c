// Package render defines the output renderer contract shared by the HTML and
// terminal backends, plus the per-request options they consume.
package render

import (
	"context"

	"github.com/goliatone/go-cardrender/pkg/engine"
)

// Renderer serialises the view tree of a rendered card (HTML, terminal
// session output, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, rc *engine.RenderedCard, options RenderOptions) ([]byte, error)
}
