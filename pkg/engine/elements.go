package engine

import (
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/view"
)

func renderTextBlock(_ *Pass, _ *view.Node, el card.Element, args RenderArgs) *view.Node {
	block := resolve[*card.TextBlock](el, card.TypeTextBlock)

	node := view.New(view.KindText)
	node.Name = block.ID
	node.Text = block.Text
	for key, value := range map[string]string{
		"size":   block.Size,
		"weight": block.Weight,
		"color":  block.Color,
	} {
		if value != "" {
			node.SetAttr(key, value)
		}
	}
	if block.Wrap {
		node.SetAttr("wrap", "true")
	}
	if block.IsSubtle {
		node.SetAttr("subtle", "true")
	}
	applySpacing(node, &block.Base)
	applyArgs(node, args)
	node.SetVisible(block.Visible)
	return node
}

func renderContainer(p *Pass, _ *view.Node, el card.Element, args RenderArgs) *view.Node {
	container := resolve[*card.Container](el, card.TypeContainer)

	node := view.New(view.KindStack)
	node.Name = container.ID
	if container.Style != "" {
		node.SetAttr("style", container.Style)
	}
	applySpacing(node, &container.Base)
	node.SetVisible(container.Visible)

	childArgs := args
	if container.Style != "" {
		childArgs.ContainerStyle = container.Style
	}
	if !container.Visible {
		childArgs.AncestorHidden = true
	}
	p.RenderChildren(node, container.Items, childArgs)
	return node
}

func applySpacing(node *view.Node, base *card.Base) {
	if base.Spacing != "" {
		node.SetAttr("spacing", base.Spacing)
	}
	if base.Separator {
		node.SetAttr("separator", "true")
	}
}
