package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/view"
	"github.com/goliatone/go-cardrender/pkg/visibility"
)

// RenderArgs carries ambient state from a parent renderer to its children.
// It is passed by value.
type RenderArgs struct {
	// ContainerStyle is the style of the nearest styled container.
	ContainerStyle string
	// AncestorHidden is set below a hidden container.
	AncestorHidden bool
}

// ActionHandler receives the actions a user triggers on a rendered card.
type ActionHandler interface {
	Submit(ctx context.Context, rc *RenderedCard, action card.Action, live map[string]string) error
	OpenURL(ctx context.Context, action card.Action) error
}

// Pass is the context threaded through one tree walk.
type Pass struct {
	Card    *RenderedCard
	Host    hostconfig.Config
	Actions ActionHandler
	Data    visibility.Context

	registry *Registry
	when     visibility.Evaluator
	log      *logrus.Entry
}

// Render dispatches el to its registered renderer and returns the view it
// produced, or nil. Conditional elements whose rule does not hold produce no
// view. Elements without a renderer fall back to their declared fallback, or
// raise UNKNOWN_ELEMENT_TYPE.
func (p *Pass) Render(parent *view.Node, el card.Element, args RenderArgs) *view.Node {
	if el == nil {
		return nil
	}
	if !p.included(el) {
		return nil
	}

	typ := el.Type()
	if fn, ok := p.registry.Lookup(typ); ok {
		p.log.WithField("type", typ).Debug("render element")
		return fn(p, parent, el, args)
	}

	if unknown, ok := card.As[*card.Unknown](el); ok && unknown.Fallback != nil {
		p.log.WithField("type", typ).Debug("render fallback for unknown element")
		return p.Render(parent, unknown.Fallback, args)
	}
	p.Warn(WarningUnknownElementType, fmt.Sprintf("Unknown element type %q was skipped", typ))
	return nil
}

// RenderChildren renders items and appends every produced view to parent.
func (p *Pass) RenderChildren(parent *view.Node, items []card.Element, args RenderArgs) {
	for _, item := range items {
		parent.Append(p.Render(parent, item, args))
	}
}

// Warn records a warning on the rendered card.
func (p *Pass) Warn(kind WarningKind, message string) {
	p.log.WithField("kind", kind).Warn(message)
	p.Card.AddWarning(Warning{Kind: kind, Message: message})
}

// interactivityAllowed is the capability gate shared by input and action
// renderers. It records exactly one warning when interactivity is off.
func (p *Pass) interactivityAllowed(subject string) bool {
	if p.Host.SupportsInteractivity {
		return true
	}
	p.Warn(WarningInteractivityDisallowed, fmt.Sprintf("%s is not allowed", subject))
	return false
}

// included evaluates every $when rule along el's wrapper chain.
func (p *Pass) included(el card.Element) bool {
	for el != nil {
		cond, ok := el.(*card.Conditional)
		if !ok {
			wrapper, isWrapper := el.(card.Wrapper)
			if !isWrapper {
				return true
			}
			el = wrapper.Unwrap()
			continue
		}
		id := ""
		if cond.Element != nil {
			id = cond.Element.Common().ID
		}
		show, err := p.when.Eval(id, cond.When, p.Data)
		if err != nil {
			p.Warn(WarningInvalidWhenExpression, fmt.Sprintf("$when %q was skipped: %v", cond.When, err))
			return false
		}
		if !show {
			return false
		}
		el = cond.Element
	}
	return true
}

// resolve recovers the concrete variant T from el. The fast path is a direct
// type check, the fallback walks wrapper chains. When both fail the
// registry routed el to the wrong renderer and resolve panics with an
// *InternalError.
func resolve[T card.Element](el card.Element, want card.ElementType) T {
	if typed, ok := el.(T); ok {
		return typed
	}
	if typed, ok := card.As[T](el); ok {
		return typed
	}
	got := "<nil>"
	if el != nil {
		got = fmt.Sprintf("%T", el)
	}
	panic(&InternalError{
		Op:      "resolve",
		Type:    string(want),
		Message: fmt.Sprintf("unable to convert card element (%s) to %s", got, want),
	})
}
