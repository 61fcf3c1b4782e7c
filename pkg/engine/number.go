package engine

import (
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// RenderNumberInput renders an Input.Number element as a decimal edit-text
// view bound to a NumberHandler.
//
// With interactivity disallowed it returns nil after recording one
// INTERACTIVITY_DISALLOWED warning. el may be held through a wrapper; an
// element that is not an Input.Number at all panics with *InternalError.
// The initial value is shown as-is even when it lies outside [min, max];
// range checks run only when the handler is validated.
func RenderNumberInput(p *Pass, parent *view.Node, el card.Element, args RenderArgs) *view.Node {
	if !p.interactivityAllowed(string(card.TypeNumberInput)) {
		return nil
	}

	input := resolve[*card.NumberInput](el, card.TypeNumberInput)
	handler := inputs.NewNumberHandler(input)

	value := ""
	if input.Value != nil {
		value = inputs.FormatNumber(*input.Value)
	}

	node := bindTextInput(p, parent, input, value, input.Placeholder, handler, args, input.HasRange())
	node.InputMode = view.InputModeNumberDecimal
	p.Card.Bind(node, TagBinding{Element: input, Handler: handler})
	node.SetVisible(input.Visible)
	return node
}
