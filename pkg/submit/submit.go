// Package submit runs the submission pipeline over a rendered card: it walks
// the view tree, feeds each bound input its live text, validates it through
// the bound handler, and assembles the typed payload.
package submit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-cardrender/pkg/engine"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// ErrInvalid is wrapped by Errors.
var ErrInvalid = errors.New("submit: invalid inputs")

// Field is the outcome for one bound input.
type Field struct {
	InputID string
	ViewID  string
	Value   string
	Payload any
	Hidden  bool
	Err     error
}

// Valid reports whether the field passed validation.
func (f Field) Valid() bool { return f.Err == nil }

// Result is the outcome of a collection run.
type Result struct {
	// Values holds the payload of every valid input keyed by input id.
	// Empty optional inputs are omitted.
	Values map[string]any
	// Fields lists every bound input in document order.
	Fields []Field
	// Errors holds messages for invalid inputs keyed by input id, in the
	// shape render.RenderOptions.Errors expects.
	Errors map[string][]string
}

// Valid reports whether every input passed validation.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Errors aggregates the validation failures of one run.
type Errors []*inputs.ValidationError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(parts, "; "))
}

// Unwrap exposes ErrInvalid and every handler error, so errors.Is matches
// the inputs sentinels.
func (e Errors) Unwrap() []error {
	out := make([]error, 0, len(e)+1)
	out = append(out, ErrInvalid)
	for _, err := range e {
		out = append(out, err)
	}
	return out
}

// Collect validates every bound input of rc. live maps input id (or view id)
// to the text the view currently holds; inputs without an entry keep their
// handler's current value. Inputs inside hidden views are still validated.
// The returned error is an Errors value when any input fails.
func Collect(rc *engine.RenderedCard, live map[string]string) (Result, error) {
	if rc == nil {
		return Result{}, errors.New("submit: rendered card is required")
	}

	result := Result{Values: make(map[string]any)}
	var failures Errors

	walk(rc, rc.Root(), false, func(node *view.Node, binding engine.TagBinding, hidden bool) {
		id := binding.Element.Input().ID
		h := binding.Handler
		if value, ok := liveValue(live, id, node.ID); ok {
			h.SetValue(value)
		}

		field := Field{InputID: id, ViewID: node.ID, Value: h.Value(), Hidden: hidden}
		if err := h.Validate(); err != nil {
			field.Err = err
			var ve *inputs.ValidationError
			if !errors.As(err, &ve) {
				ve = &inputs.ValidationError{InputID: id, Value: h.Value(), Err: err, Message: err.Error()}
			}
			failures = append(failures, ve)
			if result.Errors == nil {
				result.Errors = make(map[string][]string)
			}
			result.Errors[id] = append(result.Errors[id], ve.Message)
		} else {
			field.Payload = h.Payload()
			if field.Payload != nil {
				result.Values[id] = field.Payload
			}
		}
		result.Fields = append(result.Fields, field)
	})

	if len(failures) > 0 {
		return result, failures
	}
	return result, nil
}

func walk(rc *engine.RenderedCard, node *view.Node, ancestorHidden bool, fn func(*view.Node, engine.TagBinding, bool)) {
	if node == nil {
		return
	}
	hidden := ancestorHidden || node.Hidden
	if binding, ok := rc.Binding(node); ok && binding.Handler != nil && binding.Element != nil {
		fn(node, binding, hidden)
	}
	for _, child := range node.Children {
		walk(rc, child, hidden, fn)
	}
}

func liveValue(live map[string]string, inputID, viewID string) (string, bool) {
	if live == nil {
		return "", false
	}
	if value, ok := live[inputID]; ok {
		return value, true
	}
	value, ok := live[viewID]
	return value, ok
}
