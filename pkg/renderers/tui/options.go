package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ActionKey is the output key holding the chosen submit action.
const ActionKey = "_action"

// Theme styles the messages the renderer prints between prompts.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
	Heading     lipgloss.Style
	Subtle      lipgloss.Style
	Error       lipgloss.Style
	Link        lipgloss.Style
}

// DefaultTheme returns the built-in styles.
func DefaultTheme() Theme {
	return Theme{
		ErrorPrefix: "! ",
		Heading:     lipgloss.NewStyle().Bold(true),
		Subtle:      lipgloss.NewStyle().Faint(true),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Link:        lipgloss.NewStyle().Underline(true),
	}
}

func (t Theme) text(size, weight string, subtle bool, body string) string {
	style := lipgloss.NewStyle()
	if weight == "bolder" || size == "large" || size == "extraLarge" {
		style = t.Heading
	}
	if subtle {
		style = t.Subtle
	}
	return t.InfoPrefix + style.Render(body)
}

func (t Theme) failure(msg string) string {
	return t.Error.Render(t.ErrorPrefix + msg)
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme replaces the message styles.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
