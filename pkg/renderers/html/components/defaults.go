package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-cardrender/pkg/view"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry constructs a registry pre-populated with one component
// per view kind.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameStack, Descriptor{Renderer: stackRenderer})
	registry.MustRegister(NameText, Descriptor{Renderer: textRenderer})
	registry.MustRegister(NameEditText, Descriptor{
		Renderer: templateComponentRenderer("card.edit-text", templatePrefix+"edit-text.tpl"),
	})
	registry.MustRegister(NameToggle, Descriptor{
		Renderer: templateComponentRenderer("card.toggle", templatePrefix+"toggle.tpl"),
	})
	registry.MustRegister(NameButton, Descriptor{
		Renderer: templateComponentRenderer("card.button", templatePrefix+"button.tpl"),
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, node *view.Node, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolvedTemplate = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolvedTemplate, nodePayload(node, data))
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// nodePayload flattens a node into plain template values.
func nodePayload(node *view.Node, data ComponentData) map[string]any {
	attrs := make(map[string]any, len(node.Attrs))
	for key, value := range node.Attrs {
		attrs[strings.ReplaceAll(key, "-", "_")] = value
	}

	chrome := data.Chrome
	if chrome == nil {
		chrome = func(_ string, fallback string) string { return fallback }
	}

	return map[string]any{
		"node": map[string]any{
			"id":          ControlID(node),
			"name":        node.Name,
			"label":       node.Label,
			"text":        node.Text,
			"placeholder": node.Placeholder,
			"hint":        node.Hint,
			"required":    node.Required,
			"checked":     node.Checked,
			"hidden":      data.Hidden,
			"attrs":       attrs,
		},
		"value":          data.Value,
		"errors":         data.Errors,
		"control":        controlFor(node.InputMode),
		"input_type":     inputTypeFor(node.InputMode),
		"inputmode":      inputModeFor(node.InputMode),
		"required_label": chrome("card.required", "Required"),
	}
}

// ControlID is the DOM id of a node. Inputs use their card id so labels and
// errors stay stable across renders.
func ControlID(node *view.Node) string {
	if name := strings.TrimSpace(node.Name); name != "" {
		return "cr-" + name
	}
	return "cr-" + node.ID
}

func controlFor(mode view.InputMode) string {
	if mode == view.InputModeMultiline {
		return "textarea"
	}
	return "input"
}

// Number inputs stay type="text" so partial entries survive a round trip;
// the keypad is requested through inputmode instead.
func inputTypeFor(mode view.InputMode) string {
	switch mode {
	case view.InputModeTime:
		return "time"
	case view.InputModeEmail:
		return "email"
	case view.InputModeTel:
		return "tel"
	case view.InputModeURL:
		return "url"
	default:
		return "text"
	}
}

func inputModeFor(mode view.InputMode) string {
	switch mode {
	case view.InputModeNumberDecimal:
		return "decimal"
	case view.InputModeEmail:
		return "email"
	case view.InputModeTel:
		return "tel"
	case view.InputModeURL:
		return "url"
	default:
		return ""
	}
}

func stackRenderer(buf *bytes.Buffer, node *view.Node, data ComponentData) error {
	var builder strings.Builder

	classes := []string{"cr-stack"}
	if node.Attr("role") == "actions" {
		classes = []string{"cr-actions"}
	}
	if style := sanitizeToken(node.Attr("style")); style != "" {
		classes = append(classes, "cr-stack--"+style)
	}
	classes = append(classes, spacingClasses(node)...)

	builder.WriteString(`<div id="`)
	builder.WriteString(html.EscapeString(ControlID(node)))
	builder.WriteString(`" class="`)
	builder.WriteString(html.EscapeString(strings.Join(classes, " ")))
	builder.WriteString(`"`)
	if node.Attr("role") == "actions" {
		builder.WriteString(` role="group"`)
	}
	if data.Hidden {
		builder.WriteString(` hidden`)
	}
	builder.WriteString(`>`)

	if data.RenderChildren != nil {
		children, err := data.RenderChildren(node)
		if err != nil {
			return err
		}
		builder.WriteString(children)
	}

	builder.WriteString(`</div>`)
	buf.WriteString(builder.String())
	return nil
}

func textRenderer(buf *bytes.Buffer, node *view.Node, data ComponentData) error {
	classes := []string{"cr-text"}
	for _, key := range []string{"size", "weight", "color"} {
		if value := sanitizeToken(node.Attr(key)); value != "" {
			classes = append(classes, "cr-text--"+key+"-"+value)
		}
	}
	if node.Attr("subtle") == "true" {
		classes = append(classes, "cr-text--subtle")
	}
	if node.Attr("wrap") != "true" {
		classes = append(classes, "cr-text--nowrap")
	}
	if node.Attr("read-only") == "true" {
		classes = append(classes, "cr-text--readonly")
	}
	classes = append(classes, spacingClasses(node)...)

	body := html.EscapeString(node.Text)
	if data.Markdown != nil {
		rendered, err := data.Markdown(node.Text)
		if err != nil {
			return fmt.Errorf("components: render text %q: %w", node.Name, err)
		}
		body = rendered
	}

	fmt.Fprintf(buf, `<div id="%s" class="%s"`,
		html.EscapeString(ControlID(node)),
		html.EscapeString(strings.Join(classes, " ")))
	if data.Hidden {
		buf.WriteString(` hidden`)
	}
	buf.WriteString(`>`)
	buf.WriteString(body)
	buf.WriteString(`</div>`)
	return nil
}

func spacingClasses(node *view.Node) []string {
	var out []string
	if spacing := sanitizeToken(node.Attr("spacing")); spacing != "" {
		out = append(out, "cr-spacing-"+spacing)
	}
	if node.Attr("separator") == "true" {
		out = append(out, "cr-separator")
	}
	return out
}

// sanitizeToken keeps card-supplied values usable as class suffixes.
func sanitizeToken(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var builder strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
