// Package inputs holds the validation handlers bound to rendered input
// views. A handler copies its element's constraints at construction, keeps
// the live string value the UI reports, and validates it only when asked.
package inputs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel validation failures; ValidationError wraps exactly one of them.
var (
	ErrRequired    = errors.New("value is required")
	ErrNotANumber  = errors.New("value is not a number")
	ErrOutOfRange  = errors.New("value is out of range")
	ErrTooLong     = errors.New("value is too long")
	ErrPattern     = errors.New("value does not match the expected pattern")
	ErrInvalidTime = errors.New("value is not a valid time")
)

// Handler is the validation contract for one rendered input.
type Handler interface {
	// InputID is the element id the value is submitted under.
	InputID() string
	// Value returns the live string value.
	Value() string
	// SetValue records the string the view currently holds.
	SetValue(value string)
	// Validate checks the live value against the copied constraints.
	Validate() error
	// Payload returns the typed submission value. Call after Validate.
	Payload() any
	// Hint describes the constraints for supplementary UI; may be empty.
	Hint() string
}

// ValidationError describes why a handler rejected its live value.
type ValidationError struct {
	InputID string
	Value   string
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("inputs: %s: %s", e.InputID, msg)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Valid reports whether h accepts its current value.
func Valid(h Handler) bool {
	return h != nil && h.Validate() == nil
}

// state is embedded by every handler.
type state struct {
	id           string
	value        string
	required     bool
	errorMessage string
}

func (s *state) InputID() string { return s.id }

func (s *state) Value() string { return s.value }

func (s *state) SetValue(value string) { s.value = value }

func (s *state) trimmed() string { return strings.TrimSpace(s.value) }

func (s *state) fail(err error, detail string) error {
	msg := s.errorMessage
	if msg == "" {
		msg = err.Error()
		if detail != "" {
			msg += ": " + detail
		}
	}
	return &ValidationError{InputID: s.id, Value: s.value, Err: err, Message: msg}
}

// checkEmpty reports whether the value is blank and, when it is, whether that
// is acceptable.
func (s *state) checkEmpty() (empty bool, err error) {
	if s.trimmed() != "" {
		return false, nil
	}
	if s.required {
		return true, s.fail(ErrRequired, "")
	}
	return true, nil
}
