package card

// ElementType is the discriminator carried by every card element ("type" in
// the card JSON).
type ElementType string

const (
	TypeTextBlock   ElementType = "TextBlock"
	TypeContainer   ElementType = "Container"
	TypeTextInput   ElementType = "Input.Text"
	TypeNumberInput ElementType = "Input.Number"
	TypeTimeInput   ElementType = "Input.Time"
	TypeToggleInput ElementType = "Input.Toggle"
)

// Element is one typed node of the card tree. The set of implementations is
// closed: only types embedding Base satisfy it.
type Element interface {
	Type() ElementType
	Common() *Base
	sealed()
}

// Wrapper is implemented by handles that hold another element, such as
// Conditional. As follows Unwrap chains.
type Wrapper interface {
	Unwrap() Element
}

// Base carries the attributes shared by every element.
type Base struct {
	ID        string
	Visible   bool
	Spacing   string
	Separator bool
}

// Common exposes the shared attributes.
func (b *Base) Common() *Base { return b }

func (b *Base) sealed() {}

// As recovers the concrete variant T from el, following Unwrap chains. It
// never panics; ok is false when no element in the chain is a T.
func As[T Element](el Element) (T, bool) {
	for el != nil {
		if typed, ok := el.(T); ok {
			return typed, true
		}
		wrapper, ok := el.(Wrapper)
		if !ok {
			break
		}
		el = wrapper.Unwrap()
	}
	var zero T
	return zero, false
}

// Conditional wraps an element whose presence depends on a $when expression
// evaluated against card data. It reports the wrapped element's type so the
// dispatch table routes it to the wrapped variant's renderer.
type Conditional struct {
	Element
	When string
}

// Unwrap returns the guarded element.
func (c *Conditional) Unwrap() Element { return c.Element }

// Unknown holds an element whose type has no typed variant. Fallback, when
// present, is rendered in its place.
type Unknown struct {
	Base
	RawType  string
	Fallback Element
	Raw      map[string]any
}

func (u *Unknown) Type() ElementType { return ElementType(u.RawType) }

// TextBlock displays (markdown) text.
type TextBlock struct {
	Base
	Text     string
	Wrap     bool
	Size     string
	Weight   string
	Color    string
	IsSubtle bool
}

func (t *TextBlock) Type() ElementType { return TypeTextBlock }

// Container groups child elements.
type Container struct {
	Base
	Style string
	Items []Element
}

func (c *Container) Type() ElementType { return TypeContainer }

// Walk visits elements depth-first, descending into containers, wrappers and
// unknown-element fallbacks. Returning false from fn skips the children of
// that element.
func Walk(elements []Element, fn func(Element) bool) {
	for _, el := range elements {
		walkElement(el, fn)
	}
}

func walkElement(el Element, fn func(Element) bool) {
	if el == nil || !fn(el) {
		return
	}
	switch typed := el.(type) {
	case *Conditional:
		walkElement(typed.Element, fn)
	case *Container:
		Walk(typed.Items, fn)
	case *Unknown:
		walkElement(typed.Fallback, fn)
	}
}
