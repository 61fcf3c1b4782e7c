package card

import (
	"fmt"
	"math"
)

// Sentinels marking an unbounded Input.Number range.
var (
	MinUnbounded = math.Inf(-1)
	MaxUnbounded = math.Inf(1)
)

// Input is implemented by every interactive element.
type Input interface {
	Element
	Input() *InputBase
}

// InputBase carries the attributes shared by input elements.
type InputBase struct {
	Base
	Label        string
	Required     bool
	ErrorMessage string
}

// Input exposes the shared input attributes.
func (i *InputBase) Input() *InputBase { return i }

// NumberInput is the Input.Number variant. Min and Max are inclusive and
// default to MinUnbounded/MaxUnbounded. Value is not required to lie inside
// the range; bounds are enforced when inputs are submitted.
type NumberInput struct {
	InputBase
	Value       *float64
	Placeholder string
	Min         float64
	Max         float64
}

// NewNumberInput returns a visible, unbounded Input.Number.
func NewNumberInput(id string) *NumberInput {
	return &NumberInput{
		InputBase: InputBase{Base: Base{ID: id, Visible: true}},
		Min:       MinUnbounded,
		Max:       MaxUnbounded,
	}
}

func (n *NumberInput) Type() ElementType { return TypeNumberInput }

// HasRange reports whether either bound differs from its unbounded sentinel.
func (n *NumberInput) HasRange() bool {
	return n.Min != MinUnbounded || n.Max != MaxUnbounded
}

// Check enforces min <= max when both bounds are finite.
func (n *NumberInput) Check() error {
	if math.IsNaN(n.Min) || math.IsNaN(n.Max) {
		return fmt.Errorf("card: %s %q has a NaN bound", TypeNumberInput, n.ID)
	}
	if !math.IsInf(n.Min, 0) && !math.IsInf(n.Max, 0) && n.Min > n.Max {
		return fmt.Errorf("card: %s %q min %v exceeds max %v", TypeNumberInput, n.ID, n.Min, n.Max)
	}
	return nil
}

// TextInput is the Input.Text variant.
type TextInput struct {
	InputBase
	Value       string
	Placeholder string
	MaxLength   int
	IsMultiline bool
	Regex       string
	Style       string
}

// NewTextInput returns a visible Input.Text.
func NewTextInput(id string) *TextInput {
	return &TextInput{InputBase: InputBase{Base: Base{ID: id, Visible: true}}}
}

func (t *TextInput) Type() ElementType { return TypeTextInput }

// TimeInput is the Input.Time variant. Value, Min and Max use the 24h
// "15:04" layout; empty bounds are unbounded.
type TimeInput struct {
	InputBase
	Value       string
	Placeholder string
	Min         string
	Max         string
}

// NewTimeInput returns a visible, unbounded Input.Time.
func NewTimeInput(id string) *TimeInput {
	return &TimeInput{InputBase: InputBase{Base: Base{ID: id, Visible: true}}}
}

func (t *TimeInput) Type() ElementType { return TypeTimeInput }

// HasRange reports whether a bound is set.
func (t *TimeInput) HasRange() bool {
	return t.Min != "" || t.Max != ""
}

// ToggleInput is the Input.Toggle variant.
type ToggleInput struct {
	InputBase
	Title    string
	Value    string
	ValueOn  string
	ValueOff string
	Wrap     bool
}

// NewToggleInput returns a visible toggle with "true"/"false" values.
func NewToggleInput(id, title string) *ToggleInput {
	return &ToggleInput{
		InputBase: InputBase{Base: Base{ID: id, Visible: true}},
		Title:     title,
		ValueOn:   "true",
		ValueOff:  "false",
	}
}

func (t *ToggleInput) Type() ElementType { return TypeToggleInput }

// IsOn reports whether the initial value matches ValueOn.
func (t *ToggleInput) IsOn() bool {
	return t.Value != "" && t.Value == t.ValueOn
}
