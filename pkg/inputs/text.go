package inputs

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// TextHandler validates Input.Text values against maxLength and regex.
type TextHandler struct {
	state
	maxLength  int
	pattern    *regexp.Regexp
	patternErr error
}

// NewTextHandler copies el's constraints. An invalid regex is kept as an
// error reported by Validate rather than failing construction.
func NewTextHandler(el *card.TextInput) *TextHandler {
	h := &TextHandler{
		state: state{
			id:           el.ID,
			value:        el.Value,
			required:     el.Required,
			errorMessage: el.ErrorMessage,
		},
		maxLength: el.MaxLength,
	}
	if el.Regex != "" {
		h.pattern, h.patternErr = regexp.Compile("^(?:" + el.Regex + ")$")
	}
	return h
}

func (h *TextHandler) Validate() error {
	if empty, err := h.checkEmpty(); empty {
		return err
	}
	if h.maxLength > 0 && utf8.RuneCountInString(h.value) > h.maxLength {
		return h.fail(ErrTooLong, fmt.Sprintf("limit is %d characters", h.maxLength))
	}
	if h.patternErr != nil {
		return h.fail(ErrPattern, h.patternErr.Error())
	}
	if h.pattern != nil && !h.pattern.MatchString(h.value) {
		return h.fail(ErrPattern, "")
	}
	return nil
}

// Payload returns the raw text, or nil for a blank value.
func (h *TextHandler) Payload() any {
	if h.trimmed() == "" {
		return nil
	}
	return h.value
}

func (h *TextHandler) Hint() string {
	if h.maxLength > 0 {
		return fmt.Sprintf("up to %d characters", h.maxLength)
	}
	return ""
}

// TimeHandler validates Input.Time values in the 15:04 layout within an
// optional inclusive range.
type TimeHandler struct {
	state
	min string
	max string
}

// NewTimeHandler copies el's constraints and initial value.
func NewTimeHandler(el *card.TimeInput) *TimeHandler {
	return &TimeHandler{
		state: state{
			id:           el.ID,
			value:        el.Value,
			required:     el.Required,
			errorMessage: el.ErrorMessage,
		},
		min: el.Min,
		max: el.Max,
	}
}

func (h *TimeHandler) Validate() error {
	if empty, err := h.checkEmpty(); empty {
		return err
	}
	v, err := time.Parse(card.TimeLayout, h.trimmed())
	if err != nil {
		return h.fail(ErrInvalidTime, fmt.Sprintf("%q", h.value))
	}
	if h.min != "" {
		if lo, err := time.Parse(card.TimeLayout, h.min); err == nil && v.Before(lo) {
			return h.fail(ErrOutOfRange, "earlier than "+h.min)
		}
	}
	if h.max != "" {
		if hi, err := time.Parse(card.TimeLayout, h.max); err == nil && v.After(hi) {
			return h.fail(ErrOutOfRange, "later than "+h.max)
		}
	}
	return nil
}

func (h *TimeHandler) Payload() any {
	if h.trimmed() == "" {
		return nil
	}
	return h.trimmed()
}

func (h *TimeHandler) Hint() string {
	switch {
	case h.min != "" && h.max != "":
		return h.min + " to " + h.max
	case h.min != "":
		return "from " + h.min
	case h.max != "":
		return "until " + h.max
	default:
		return ""
	}
}

// ToggleHandler submits ValueOn or ValueOff. A required toggle must be on.
type ToggleHandler struct {
	state
	on  string
	off string
}

// NewToggleHandler copies el's values; the live value starts at ValueOff
// unless the element is initially on.
func NewToggleHandler(el *card.ToggleInput) *ToggleHandler {
	h := &ToggleHandler{
		state: state{
			id:           el.ID,
			required:     el.Required,
			errorMessage: el.ErrorMessage,
		},
		on:  el.ValueOn,
		off: el.ValueOff,
	}
	h.value = h.off
	if el.IsOn() {
		h.value = h.on
	}
	return h
}

// SetChecked records the toggle state.
func (h *ToggleHandler) SetChecked(checked bool) {
	if checked {
		h.value = h.on
		return
	}
	h.value = h.off
}

// Checked reports whether the live value equals ValueOn.
func (h *ToggleHandler) Checked() bool { return h.value == h.on }

func (h *ToggleHandler) Validate() error {
	if h.value != h.on && h.value != h.off {
		return h.fail(ErrPattern, fmt.Sprintf("expected %q or %q", h.on, h.off))
	}
	if h.required && !h.Checked() {
		return h.fail(ErrRequired, "")
	}
	return nil
}

func (h *ToggleHandler) Payload() any { return h.value }

func (h *ToggleHandler) Hint() string { return "" }
