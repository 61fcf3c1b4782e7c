package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// WarningKind tags a diagnostic raised during a pass.
type WarningKind string

const (
	WarningInteractivityDisallowed WarningKind = "INTERACTIVITY_DISALLOWED"
	WarningUnknownElementType      WarningKind = "UNKNOWN_ELEMENT_TYPE"
	WarningMaxActionsExceeded      WarningKind = "MAX_ACTIONS_EXCEEDED"
	WarningInvalidWhenExpression   WarningKind = "INVALID_WHEN_EXPRESSION"
)

// Warning is one diagnostic from a pass.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// TagBinding links a rendered input view to the element it came from and the
// handler that validates it.
type TagBinding struct {
	Element card.Input
	Handler inputs.Handler
}

// BoundInput is a rendered input view together with its binding.
type BoundInput struct {
	View *view.Node
	TagBinding
}

var (
	ErrUnknownAction    = errors.New("engine: unknown action")
	ErrNoActionHandler  = errors.New("engine: no action handler configured")
	ErrUnboundInputView = errors.New("engine: view has no input binding")
)

// RenderedCard is the result of one pass. It is not safe for concurrent
// mutation.
type RenderedCard struct {
	root     *view.Node
	warnings []Warning
	bindings map[string]TagBinding
	order    []*view.Node
	actions  map[string]card.Action
	handler  ActionHandler
}

func newRenderedCard(root *view.Node, handler ActionHandler) *RenderedCard {
	return &RenderedCard{
		root:     root,
		bindings: make(map[string]TagBinding),
		actions:  make(map[string]card.Action),
		handler:  handler,
	}
}

// Root returns the card view.
func (rc *RenderedCard) Root() *view.Node { return rc.root }

// AddWarning appends w. It never fails.
func (rc *RenderedCard) AddWarning(w Warning) {
	rc.warnings = append(rc.warnings, w)
}

// Warnings returns a copy of the warnings in the order they were raised.
func (rc *RenderedCard) Warnings() []Warning {
	out := make([]Warning, len(rc.warnings))
	copy(out, rc.warnings)
	return out
}

// Bind records the binding for node, replacing any previous one.
func (rc *RenderedCard) Bind(node *view.Node, binding TagBinding) {
	if node == nil {
		return
	}
	if _, exists := rc.bindings[node.ID]; !exists {
		rc.order = append(rc.order, node)
	}
	rc.bindings[node.ID] = binding
}

// Binding returns the binding recorded for node.
func (rc *RenderedCard) Binding(node *view.Node) (TagBinding, bool) {
	if node == nil {
		return TagBinding{}, false
	}
	binding, ok := rc.bindings[node.ID]
	return binding, ok
}

// Inputs returns every bound input in the order it was rendered.
func (rc *RenderedCard) Inputs() []BoundInput {
	out := make([]BoundInput, 0, len(rc.order))
	for _, node := range rc.order {
		out = append(out, BoundInput{View: node, TagBinding: rc.bindings[node.ID]})
	}
	return out
}

// Actions returns the rendered actions keyed by action key (the action id,
// or the button's view id when the action has none).
func (rc *RenderedCard) Actions() map[string]card.Action {
	out := make(map[string]card.Action, len(rc.actions))
	for key, action := range rc.actions {
		out[key] = action
	}
	return out
}

func (rc *RenderedCard) registerAction(key string, action card.Action) {
	rc.actions[key] = action
}

// Invoke runs the action rendered under key. live carries the current text
// of the card's inputs keyed by input id (or view id) and is only used by
// submit actions.
func (rc *RenderedCard) Invoke(ctx context.Context, key string, live map[string]string) error {
	action, ok := rc.actions[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, key)
	}
	if rc.handler == nil {
		return ErrNoActionHandler
	}
	switch action.Type {
	case card.ActionSubmit:
		return rc.handler.Submit(ctx, rc, action, live)
	case card.ActionOpenURL:
		return rc.handler.OpenURL(ctx, action)
	default:
		return fmt.Errorf("%w: unsupported type %q", ErrUnknownAction, action.Type)
	}
}
