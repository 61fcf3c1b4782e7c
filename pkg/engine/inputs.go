package engine

import (
	"strings"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/view"
)

func renderTextInput(p *Pass, parent *view.Node, el card.Element, args RenderArgs) *view.Node {
	if !p.interactivityAllowed(string(card.TypeTextInput)) {
		return nil
	}

	input := resolve[*card.TextInput](el, card.TypeTextInput)
	handler := inputs.NewTextHandler(input)

	node := bindTextInput(p, parent, input, input.Value, input.Placeholder, handler, args, input.MaxLength > 0)
	node.InputMode = textInputMode(input)
	if input.MaxLength > 0 {
		node.SetAttr("maxlength", inputs.FormatNumber(float64(input.MaxLength)))
	}
	if input.Regex != "" {
		node.SetAttr("pattern", input.Regex)
	}
	p.Card.Bind(node, TagBinding{Element: input, Handler: handler})
	node.SetVisible(input.Visible)
	return node
}

func textInputMode(input *card.TextInput) view.InputMode {
	if input.IsMultiline {
		return view.InputModeMultiline
	}
	switch strings.ToLower(input.Style) {
	case "email":
		return view.InputModeEmail
	case "tel":
		return view.InputModeTel
	case "url":
		return view.InputModeURL
	default:
		return view.InputModeText
	}
}

// renderTimeInput falls back to a read-only text view when interactivity is
// off and the host opts into read-only fallbacks.
func renderTimeInput(p *Pass, parent *view.Node, el card.Element, args RenderArgs) *view.Node {
	if !p.Host.SupportsInteractivity && p.Host.Inputs.ReadOnlyFallback {
		input := resolve[*card.TimeInput](el, card.TypeTimeInput)
		node := view.New(view.KindText)
		node.Text = strings.TrimSpace(input.Placeholder + " " + input.Value)
		node.SetAttr("read-only", "true")
		applyArgs(node, args)
		node.SetVisible(input.Visible)
		return node
	}
	if !p.interactivityAllowed(string(card.TypeTimeInput)) {
		return nil
	}

	input := resolve[*card.TimeInput](el, card.TypeTimeInput)
	handler := inputs.NewTimeHandler(input)

	node := bindTextInput(p, parent, input, input.Value, input.Placeholder, handler, args, input.HasRange())
	node.InputMode = view.InputModeTime
	if input.Min != "" {
		node.SetAttr("min", input.Min)
	}
	if input.Max != "" {
		node.SetAttr("max", input.Max)
	}
	p.Card.Bind(node, TagBinding{Element: input, Handler: handler})
	node.SetVisible(input.Visible)
	return node
}

func renderToggleInput(p *Pass, _ *view.Node, el card.Element, args RenderArgs) *view.Node {
	if !p.interactivityAllowed(string(card.TypeToggleInput)) {
		return nil
	}

	input := resolve[*card.ToggleInput](el, card.TypeToggleInput)
	handler := inputs.NewToggleHandler(input)

	node := view.New(view.KindToggle)
	node.Name = input.ID
	node.Text = input.Title
	node.Label = input.Label
	node.Required = input.Required
	node.Checked = handler.Checked()
	node.SetAttr("value-on", input.ValueOn)
	node.SetAttr("value-off", input.ValueOff)
	if input.Wrap {
		node.SetAttr("wrap", "true")
	}
	if input.ErrorMessage != "" {
		node.SetAttr("error-message", input.ErrorMessage)
	}
	applyArgs(node, args)
	p.Card.Bind(node, TagBinding{Element: input, Handler: handler})
	node.SetVisible(input.Visible)
	return node
}
