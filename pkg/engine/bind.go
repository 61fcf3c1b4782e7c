package engine

import (
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// bindTextInput builds the editable text view shared by text-like inputs.
// When hasRange is set and the host asks for it, the handler's hint is
// attached for supplementary range UI. Callers finish the node (input mode,
// binding, visibility) before returning it.
func bindTextInput(p *Pass, _ *view.Node, el card.Input, value, placeholder string, handler inputs.Handler, args RenderArgs, hasRange bool) *view.Node {
	base := el.Input()

	node := view.New(view.KindEditText)
	node.Name = base.ID
	node.Text = value
	node.Placeholder = placeholder
	node.Label = base.Label
	node.Required = base.Required
	node.InputMode = view.InputModeText

	if hasRange && p.Host.Inputs.ShowRangeHint {
		node.Hint = handler.Hint()
	}
	applyArgs(node, args)
	if base.ErrorMessage != "" {
		node.SetAttr("error-message", base.ErrorMessage)
	}
	return node
}

func applyArgs(node *view.Node, args RenderArgs) {
	if args.ContainerStyle != "" {
		node.SetAttr("container-style", args.ContainerStyle)
	}
	if args.AncestorHidden {
		node.SetAttr("ancestor-hidden", "true")
	}
}
