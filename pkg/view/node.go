// Package view models the interactive view tree produced by a render pass.
// Nodes are backend-neutral; output renderers (HTML, terminal) translate them.
package view

import "github.com/google/uuid"

// Kind identifies the widget a node stands for.
type Kind string

const (
	KindCard     Kind = "card"
	KindStack    Kind = "stack"
	KindText     Kind = "text"
	KindEditText Kind = "edit-text"
	KindToggle   Kind = "toggle"
	KindButton   Kind = "button"
)

// InputMode is the keyboard affordance requested by an editable node. It is
// a display hint only and never validates content.
type InputMode string

const (
	InputModeText          InputMode = "text"
	InputModeMultiline     InputMode = "multiline"
	InputModeNumberDecimal InputMode = "decimal"
	InputModeTime          InputMode = "time"
	InputModeEmail         InputMode = "email"
	InputModeTel           InputMode = "tel"
	InputModeURL           InputMode = "url"
)

// Node is one view in the rendered tree. ID identifies the view itself and
// is unique per construction, so rendering the same element twice yields two
// distinct nodes.
type Node struct {
	ID          string            `json:"id"`
	Kind        Kind              `json:"kind"`
	Name        string            `json:"name,omitempty"`
	Text        string            `json:"text,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Label       string            `json:"label,omitempty"`
	Hint        string            `json:"hint,omitempty"`
	InputMode   InputMode         `json:"inputMode,omitempty"`
	Checked     bool              `json:"checked,omitempty"`
	Required    bool              `json:"required,omitempty"`
	Hidden      bool              `json:"hidden,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Children    []*Node           `json:"children,omitempty"`
}

// New returns a node of kind with a fresh identity.
func New(kind Kind) *Node {
	return &Node{ID: uuid.NewString(), Kind: kind}
}

// Append adds children, skipping nil nodes.
func (n *Node) Append(children ...*Node) {
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
}

// SetVisible toggles the rendered state between shown and hidden.
func (n *Node) SetVisible(visible bool) {
	n.Hidden = !visible
}

// SetAttr records a backend-specific attribute.
func (n *Node) SetAttr(key, value string) {
	if key == "" {
		return
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// Attr returns a previously recorded attribute.
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// Walk visits the tree depth-first in document order. Returning false from
// fn skips the node's children.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil || !fn(root) {
		return
	}
	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// Find returns the first node with the given view ID.
func Find(root *Node, id string) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}
