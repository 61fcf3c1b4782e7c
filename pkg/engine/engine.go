package engine

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/view"
	"github.com/goliatone/go-cardrender/pkg/visibility"
	visibilityexpr "github.com/goliatone/go-cardrender/pkg/visibility/expr"
)

// Option customises an Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in renderer registry.
func WithRegistry(registry *Registry) Option {
	return func(e *Engine) {
		e.registry = registry
	}
}

// WithEvaluator replaces the expr-lang $when evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(e *Engine) {
		e.evaluator = evaluator
	}
}

// WithActionHandler sets the collaborator that receives invoked actions.
func WithActionHandler(handler ActionHandler) Option {
	return func(e *Engine) {
		e.actions = handler
	}
}

// WithLogger overrides the component logger.
func WithLogger(entry *logrus.Entry) Option {
	return func(e *Engine) {
		e.log = entry
	}
}

// Engine runs render passes. It is safe for concurrent use; each Render call
// owns its RenderedCard.
type Engine struct {
	registry  *Registry
	evaluator visibility.Evaluator
	actions   ActionHandler
	log       *logrus.Entry
}

// New constructs an Engine with the default registry and evaluator unless
// overridden.
func New(options ...Option) *Engine {
	e := &Engine{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewDefaultRegistry()
	}
	if e.evaluator == nil {
		e.evaluator = visibilityexpr.New()
	}
	if e.log == nil {
		e.log = logging.Named("engine")
	}
	return e
}

// Registry exposes the renderer registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Render runs one pass over c under host. data feeds $when rules. The
// context is only checked before the pass starts; a pass runs to completion.
// An *InternalError panic from a misrouted renderer is not recovered.
func (e *Engine) Render(ctx context.Context, c *card.Card, host hostconfig.Config, data visibility.Context) (*RenderedCard, error) {
	if ctx == nil {
		return nil, errors.New("engine: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.New("engine: card is required")
	}
	if err := host.Validate(); err != nil {
		return nil, err
	}

	root := view.New(view.KindCard)
	if c.Version != "" {
		root.SetAttr("version", c.Version)
	}
	if c.Lang != "" {
		root.SetAttr("lang", c.Lang)
	}
	if c.FallbackText != "" {
		root.SetAttr("fallback-text", c.FallbackText)
	}

	p := &Pass{
		Card:     newRenderedCard(root, e.actions),
		Host:     host,
		Actions:  e.actions,
		Data:     data,
		registry: e.registry,
		when:     e.evaluator,
		log:      e.log,
	}

	p.RenderChildren(root, c.Body, RenderArgs{})
	root.Append(renderActions(p, c.Actions))

	e.log.WithFields(logrus.Fields{
		"inputs":   len(p.Card.order),
		"warnings": len(p.Card.warnings),
	}).Debug("render pass complete")
	return p.Card, nil
}
