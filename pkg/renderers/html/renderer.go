// Package html serialises a rendered card into an HTML form using pongo2
// templates. TextBlock content is converted from markdown and sanitised.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-cardrender/pkg/engine"
	"github.com/goliatone/go-cardrender/pkg/render"
	rendertemplate "github.com/goliatone/go-cardrender/pkg/render/template"
	gotemplate "github.com/goliatone/go-cardrender/pkg/render/template/gotemplate"
	"github.com/goliatone/go-cardrender/pkg/renderers/html/components"
	"github.com/goliatone/go-cardrender/pkg/view"
)

const cardTemplate = "templates/card.tpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
	policy           *bluemonday.Policy
	translator       render.Translator
	theme            *theme.RendererConfig
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry overrides the component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

// WithSanitizer replaces the policy applied to TextBlock HTML.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// WithTranslator exposes translate() to templates.
func WithTranslator(t render.Translator) Option {
	return func(cfg *config) {
		cfg.translator = t
	}
}

// WithTheme sets the theme used when RenderOptions.Theme is nil.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer turns a RenderedCard into an HTML form.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
	markdown   *markdown
	theme      *theme.RendererConfig
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		tplEngine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithTemplateFunc(render.TemplateI18nFuncs(cfg.translator, render.TemplateI18nConfig{})),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = tplEngine
	}

	return &Renderer{
		templates:  templates,
		components: cfg.components,
		markdown:   newMarkdown(cfg.policy),
		theme:      cfg.theme,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, rc *engine.RenderedCard, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if rc == nil || rc.Root() == nil {
		return nil, fmt.Errorf("html renderer: rendered card is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	themeCfg := opts.ThemeFor(r.theme)
	w := &walker{
		renderer: r,
		card:     rc,
		opts:     opts,
		partials: themePartials(themeCfg),
	}

	root := rc.Root()
	body, err := w.children(root, root.Hidden)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	result, err := r.templates.RenderTemplate(cardTemplate, map[string]any{
		"body":          body,
		"empty":         len(root.Children) == 0,
		"fallback_text": root.Attr("fallback-text"),
		"lang":          root.Attr("lang"),
		"locale":        opts.Locale,
		"action":        opts.Action,
		"hidden_fields": render.SortedHiddenFields(opts.HiddenFields),
		"form_errors":   render.MergeFormErrors(nil, opts.FormErrors...),
		"warnings":      warningPayload(rc, opts.ShowWarnings),
		"css_vars":      cssVarsStyle(themeCfg),
		"stylesheet":    stylesheetURL(themeCfg),
		"default_css":   defaultStylesheet(),
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// walker carries per-request state through one serialisation.
type walker struct {
	renderer *Renderer
	card     *engine.RenderedCard
	opts     render.RenderOptions
	partials map[string]string
}

func (w *walker) children(node *view.Node, hidden bool) (string, error) {
	var buf bytes.Buffer
	for _, child := range node.Children {
		if err := w.node(&buf, child, hidden || child.Hidden); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (w *walker) node(buf *bytes.Buffer, node *view.Node, hidden bool) error {
	descriptor, ok := w.renderer.components.Descriptor(string(node.Kind))
	if !ok {
		return fmt.Errorf("no component registered for view kind %q", node.Kind)
	}

	data := components.ComponentData{
		Template: w.renderer.templates,
		RenderChildren: func(n *view.Node) (string, error) {
			return w.children(n, hidden)
		},
		Markdown: w.renderer.markdown.render,
		Value:    node.Text,
		Hidden:   hidden,
		Partials: w.partials,
		Chrome:   w.opts.Chrome,
	}
	if binding, bound := w.card.Binding(node); bound {
		data.Value = binding.Handler.Value()
		if override, ok := w.opts.Values[node.Name]; ok {
			data.Value = override
		}
		data.Errors = w.opts.Errors[node.Name]
	}

	return descriptor.Renderer(buf, node, data)
}

func warningPayload(rc *engine.RenderedCard, show bool) []map[string]any {
	if !show {
		return nil
	}
	warnings := rc.Warnings()
	out := make([]map[string]any, 0, len(warnings))
	for _, warning := range warnings {
		out = append(out, map[string]any{
			"kind":    string(warning.Kind),
			"message": warning.Message,
		})
	}
	return out
}

func themePartials(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return nil
	}
	return cfg.Partials
}

// cssVarsStyle flattens theme CSS variables into an inline style attribute
// with a stable key order.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}

func stylesheetURL(cfg *theme.RendererConfig) string {
	if cfg == nil || cfg.AssetURL == nil {
		return ""
	}
	return cfg.AssetURL("stylesheet")
}
