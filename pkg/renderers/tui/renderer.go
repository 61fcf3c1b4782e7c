// Package tui walks a rendered card as a sequence of terminal prompts. Every
// answer is validated through the input's bound handler before moving on.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-cardrender/pkg/engine"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/render"
	"github.com/goliatone/go-cardrender/pkg/submit"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every visible input in document order, then asks which
// submit action to run when the card offers more than one. The collected
// payload is serialized in the configured output format.
func (r *Renderer) Render(ctx context.Context, rc *engine.RenderedCard, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if rc == nil || rc.Root() == nil {
		return nil, errors.New("tui: rendered card is nil")
	}

	if opts.ShowWarnings {
		for _, warning := range rc.Warnings() {
			_ = r.driver.Info(ctx, r.theme.failure(warning.Message))
		}
	}
	for _, msg := range opts.FormErrors {
		_ = r.driver.Info(ctx, r.theme.failure(msg))
	}

	s := &session{renderer: r, card: rc, state: NewState(opts.Values, opts.Errors)}
	root := rc.Root()
	for _, child := range root.Children {
		if err := s.visit(ctx, child, child.Hidden); err != nil {
			return nil, err
		}
	}

	result, err := submit.Collect(rc, s.state.Values())
	if err != nil {
		return nil, fmt.Errorf("tui: collect: %w", err)
	}

	action, err := s.chooseAction(ctx)
	if err != nil {
		return nil, err
	}
	values := mergeActionData(rc.Actions()[action].Data, result.Values)
	if action != "" {
		values[ActionKey] = action
	}

	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(values)
}

// session carries per-render state through the prompt walk.
type session struct {
	renderer *Renderer
	card     *engine.RenderedCard
	state    *State
	submits  []*view.Node
}

func (s *session) visit(ctx context.Context, node *view.Node, hidden bool) error {
	switch node.Kind {
	case view.KindStack:
		for _, child := range node.Children {
			if err := s.visit(ctx, child, hidden || child.Hidden); err != nil {
				return err
			}
		}
		return nil
	case view.KindText:
		if hidden || strings.TrimSpace(node.Text) == "" {
			return nil
		}
		return s.renderer.driver.Info(ctx, s.renderer.theme.text(node.Attr("size"), node.Attr("weight"), node.Attr("subtle") == "true", node.Text))
	case view.KindEditText:
		return s.promptText(ctx, node, hidden)
	case view.KindToggle:
		return s.promptToggle(ctx, node, hidden)
	case view.KindButton:
		return s.button(ctx, node, hidden)
	default:
		return nil
	}
}

func (s *session) promptText(ctx context.Context, node *view.Node, hidden bool) error {
	binding, ok := s.card.Binding(node)
	if !ok {
		return fmt.Errorf("tui: %w", engine.ErrUnboundInputView)
	}
	handler := binding.Handler
	id := handler.InputID()
	defaultVal := handler.Value()
	if v, ok := s.state.Value(id); ok {
		defaultVal = v
	}
	if hidden {
		s.state.SetValue(id, defaultVal)
		return nil
	}

	label := displayLabel(node)
	for _, msg := range s.state.ErrorsFor(id) {
		_ = s.renderer.driver.Info(ctx, s.renderer.theme.failure(msg))
	}

	validate := func(value string) error {
		handler.SetValue(value)
		return handler.Validate()
	}

	for {
		var response string
		var err error
		if node.InputMode == view.InputModeMultiline {
			response, err = s.renderer.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: defaultVal,
				Help:    node.Hint,
			})
		} else {
			response, err = s.renderer.driver.Input(ctx, InputConfig{
				Message:   label,
				Default:   defaultVal,
				Help:      node.Hint,
				Validator: validate,
			})
		}
		if err != nil {
			return err
		}

		if err := validate(response); err != nil {
			_ = s.renderer.driver.Info(ctx, s.renderer.theme.failure(fmt.Sprintf("Invalid %s: %s", label, reason(err))))
			defaultVal = response
			continue
		}

		s.state.SetValue(id, response)
		return nil
	}
}

func (s *session) promptToggle(ctx context.Context, node *view.Node, hidden bool) error {
	binding, ok := s.card.Binding(node)
	if !ok {
		return fmt.Errorf("tui: %w", engine.ErrUnboundInputView)
	}
	handler, ok := binding.Handler.(*inputs.ToggleHandler)
	if !ok {
		return fmt.Errorf("tui: toggle %q bound to %T", node.Name, binding.Handler)
	}
	id := handler.InputID()
	if v, ok := s.state.Value(id); ok {
		handler.SetValue(v)
	}
	if hidden {
		s.state.SetValue(id, handler.Value())
		return nil
	}

	message := node.Text
	if node.Label != "" {
		message = node.Label + ": " + node.Text
	}
	for _, msg := range s.state.ErrorsFor(id) {
		_ = s.renderer.driver.Info(ctx, s.renderer.theme.failure(msg))
	}

	for {
		answer, err := s.renderer.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: handler.Checked(),
		})
		if err != nil {
			return err
		}
		handler.SetChecked(answer)
		if err := handler.Validate(); err != nil {
			_ = s.renderer.driver.Info(ctx, s.renderer.theme.failure(fmt.Sprintf("Invalid %s: %s", displayLabel(node), reason(err))))
			continue
		}
		s.state.SetValue(id, handler.Value())
		return nil
	}
}

func (s *session) button(ctx context.Context, node *view.Node, hidden bool) error {
	if hidden {
		return nil
	}
	if href := node.Attr("url"); href != "" {
		return s.renderer.driver.Info(ctx, fmt.Sprintf("%s: %s", node.Text, s.renderer.theme.Link.Render(href)))
	}
	s.submits = append(s.submits, node)
	return nil
}

func (s *session) chooseAction(ctx context.Context) (string, error) {
	switch len(s.submits) {
	case 0:
		return "", nil
	case 1:
		return s.submits[0].Name, nil
	}

	options := make([]string, len(s.submits))
	for i, node := range s.submits {
		options[i] = displayLabel(node)
	}
	for {
		idx, err := s.renderer.driver.Select(ctx, SelectConfig{
			Message:      "Action",
			Options:      options,
			DefaultIndex: 0,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(options) {
			_ = s.renderer.driver.Info(ctx, s.renderer.theme.failure("Invalid action selection"))
			continue
		}
		return s.submits[idx].Name, nil
	}
}

// mergeActionData overlays input values on the submit action's data, the
// same way submit.Dispatcher builds its payload.
func mergeActionData(data map[string]any, values map[string]any) map[string]any {
	merged := make(map[string]any, len(data)+len(values)+1)
	for key, value := range data {
		merged[key] = value
	}
	for key, value := range values {
		merged[key] = value
	}
	return merged
}

func displayLabel(node *view.Node) string {
	for _, candidate := range []string{node.Label, node.Placeholder, node.Text, node.Name} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return node.ID
}

// reason extracts the user-facing part of a validation failure.
func reason(err error) string {
	var ve *inputs.ValidationError
	if errors.As(err, &ve) {
		if ve.Message != "" {
			return ve.Message
		}
		if ve.Err != nil {
			return ve.Err.Error()
		}
	}
	return err.Error()
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, formatValue(value))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, formatValue(values[key]))
	}
	return b.String()
}

func formatValue(value any) string {
	if f, ok := value.(float64); ok {
		return inputs.FormatNumber(f)
	}
	return fmt.Sprint(value)
}
