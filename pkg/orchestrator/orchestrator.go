package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"maps"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/engine"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/renderers/html"
	"github.com/goliatone/go-cardrender/pkg/renderers/tui"
	"github.com/goliatone/go-cardrender/pkg/visibility"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom card loader.
func WithLoader(loader *card.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithEngine injects a configured render engine.
func WithEngine(e *engine.Engine) Option {
	return func(o *Orchestrator) {
		o.engine = e
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithHostConfig sets the host configuration used when a request carries
// none.
func WithHostConfig(host hostconfig.Config) Option {
	return func(o *Orchestrator) {
		o.host = host
	}
}

// WithThemeSelector resolves themes through selector for every request.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks replaces the partials applied when a theme leaves a
// template key unset.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = maps.Clone(fallbacks)
	}
}

// WithLogger routes pipeline logs to entry.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *Orchestrator) {
		if entry != nil {
			o.log = entry
		}
	}
}

// Orchestrator coordinates the full pipeline from card document to rendered
// output. It applies sensible defaults (html renderer, embedded templates)
// while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	loader          *card.Loader
	engine          *engine.Engine
	registry        *render.Registry
	defaultRenderer string
	host            hostconfig.Config
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	log             *logrus.Entry
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		host:            hostconfig.Default(),
		themeFallbacks:  defaultThemeFallbacks(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Source identifies where the card document lives. Optional when
	// Document or Card is supplied.
	Source card.Source
	// Document is raw card JSON, bypassing the loader.
	Document []byte
	// Card is an already parsed card, bypassing loader and parser.
	Card *card.Card

	// Host overrides the orchestrator's host configuration.
	Host *hostconfig.Config
	// Data feeds $when expressions.
	Data visibility.Context

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant override the host config's theme selection.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries per-request data such as prefilled values or
	// server-side errors. When Theme is nil the resolved host theme is used.
	RenderOptions render.RenderOptions
}

// Prepare loads and parses the card, resolves the host theme and runs the
// render pass. The returned card backs submission handling.
func (o *Orchestrator) Prepare(ctx context.Context, req Request) (*engine.RenderedCard, hostconfig.Config, error) {
	if ctx == nil {
		return nil, hostconfig.Config{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, hostconfig.Config{}, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, hostconfig.Config{}, err
	}

	c, err := o.resolveCard(ctx, req)
	if err != nil {
		return nil, hostconfig.Config{}, err
	}

	host, err := o.resolveHost(req)
	if err != nil {
		return nil, hostconfig.Config{}, err
	}

	rc, err := o.engine.Render(ctx, c, host, req.Data)
	if err != nil {
		return nil, hostconfig.Config{}, fmt.Errorf("orchestrator: render pass: %w", err)
	}
	o.log.WithFields(logrus.Fields{
		"inputs":   len(rc.Inputs()),
		"warnings": len(rc.Warnings()),
	}).Debug("render pass complete")
	return rc, host, nil
}

// Generate executes the load → parse → render pass → renderer sequence and
// returns the serialised bytes (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	rc, host, err := o.Prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	opts.Theme = opts.ThemeFor(host.Theme)

	output, err := renderer.Render(ctx, rc, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.log.WithField("renderer", renderer.Name()).Debug("output rendered")
	return output, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) resolveCard(ctx context.Context, req Request) (*card.Card, error) {
	if req.Card != nil {
		return req.Card, nil
	}

	data := req.Document
	if data == nil {
		if req.Source == nil {
			return nil, errors.New("orchestrator: source, document or card is required")
		}
		loaded, err := o.loader.Load(ctx, req.Source)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load card: %w", err)
		}
		o.log.WithFields(logrus.Fields{
			"source": req.Source.Location(),
			"kind":   req.Source.Kind(),
		}).Debug("card loaded")
		data = loaded
	}

	c, err := card.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse card: %w", err)
	}
	return c, nil
}

func (o *Orchestrator) resolveHost(req Request) (hostconfig.Config, error) {
	host := o.host
	if req.Host != nil {
		host = *req.Host
	}
	if req.ThemeName != "" {
		host.ThemeName = req.ThemeName
	}
	if req.ThemeVariant != "" {
		host.ThemeVariant = req.ThemeVariant
	}
	if o.themeSelector == nil || host.Theme != nil {
		return host, nil
	}

	resolved, err := host.WithTheme(o.themeSelector, o.themeFallbacks)
	if err != nil {
		return host, fmt.Errorf("orchestrator: resolve theme: %w", err)
	}
	return resolved, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.log == nil {
		o.log = logging.Named("orchestrator")
	}
	if o.loader == nil {
		o.loader = card.NewLoader(card.LoaderOptions{})
	}
	if o.engine == nil {
		o.engine = engine.New()
	}
	if o.registry == nil {
		registry, err := defaultRegistry()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}

func defaultRegistry() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(htmlRenderer, tuiRenderer)
}

// defaultThemeFallbacks maps theme partial keys to the embedded component
// templates so themes only need to override what they change.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"card.edit-text": "templates/components/edit-text.tpl",
		"card.toggle":    "templates/components/toggle.tpl",
		"card.button":    "templates/components/button.tpl",
	}
}
