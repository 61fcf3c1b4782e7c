package inputs

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goliatone/go-cardrender/pkg/card"
)

// NumberHandler validates Input.Number values: the text must parse as a
// finite number and lie within the inclusive [min, max] range when the
// bounds are finite. A NaN bound admits no value.
type NumberHandler struct {
	state
	min float64
	max float64
}

// NewNumberHandler copies el's constraints and initial value.
func NewNumberHandler(el *card.NumberInput) *NumberHandler {
	h := &NumberHandler{
		state: state{
			id:           el.ID,
			required:     el.Required,
			errorMessage: el.ErrorMessage,
		},
		min: el.Min,
		max: el.Max,
	}
	if el.Value != nil {
		h.value = FormatNumber(*el.Value)
	}
	return h
}

// Bounds returns the copied inclusive range.
func (h *NumberHandler) Bounds() (float64, float64) {
	return h.min, h.max
}

// Parse returns the numeric value of the live text.
func (h *NumberHandler) Parse() (float64, error) {
	v, err := strconv.ParseFloat(h.trimmed(), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, h.fail(ErrNotANumber, fmt.Sprintf("%q", h.value))
	}
	return v, nil
}

func (h *NumberHandler) Validate() error {
	if empty, err := h.checkEmpty(); empty {
		return err
	}
	v, err := h.Parse()
	if err != nil {
		return err
	}
	if math.IsNaN(h.min) || math.IsNaN(h.max) {
		return h.fail(ErrOutOfRange, "range bound is not a number")
	}
	if !math.IsInf(h.min, 0) && v < h.min {
		return h.fail(ErrOutOfRange, fmt.Sprintf("%s is below %s", FormatNumber(v), FormatNumber(h.min)))
	}
	if !math.IsInf(h.max, 0) && v > h.max {
		return h.fail(ErrOutOfRange, fmt.Sprintf("%s is above %s", FormatNumber(v), FormatNumber(h.max)))
	}
	return nil
}

// Payload returns a float64, or nil for an empty optional value.
func (h *NumberHandler) Payload() any {
	if h.trimmed() == "" {
		return nil
	}
	v, err := h.Parse()
	if err != nil {
		return nil
	}
	return v
}

func (h *NumberHandler) Hint() string {
	hasMin := !math.IsInf(h.min, 0) && !math.IsNaN(h.min)
	hasMax := !math.IsInf(h.max, 0) && !math.IsNaN(h.max)
	switch {
	case hasMin && hasMax:
		return fmt.Sprintf("%s to %s", FormatNumber(h.min), FormatNumber(h.max))
	case hasMin:
		return "at least " + FormatNumber(h.min)
	case hasMax:
		return "at most " + FormatNumber(h.max)
	default:
		return ""
	}
}

// FormatNumber renders v in its shortest decimal form (5 → "5", 2.5 → "2.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
