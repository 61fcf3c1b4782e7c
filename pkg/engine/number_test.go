package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/inputs"
	"github.com/goliatone/go-cardrender/pkg/view"
	"github.com/goliatone/go-cardrender/pkg/visibility"
)

func newTestPass(host hostconfig.Config) *Pass {
	root := view.New(view.KindCard)
	return &Pass{
		Card:     newRenderedCard(root, nil),
		Host:     host,
		registry: NewDefaultRegistry(),
		when:     visibility.Always,
		log:      logging.Discard(),
	}
}

func scenarioElement() *card.NumberInput {
	value := 5.0
	el := card.NewNumberInput("qty")
	el.Value = &value
	el.Placeholder = "Enter a number"
	el.Min, el.Max = 1, 10
	return el
}

func TestRenderNumberInput_ConcreteScenario(t *testing.T) {
	p := newTestPass(hostconfig.Default())

	node := RenderNumberInput(p, p.Card.Root(), scenarioElement(), RenderArgs{})
	if node == nil {
		t.Fatalf("expected a view")
	}

	want := &view.Node{
		Kind:        view.KindEditText,
		Name:        "qty",
		Text:        "5",
		Placeholder: "Enter a number",
		Hint:        "1 to 10",
		InputMode:   view.InputModeNumberDecimal,
	}
	if diff := cmp.Diff(want, node, cmpopts.IgnoreFields(view.Node{}, "ID")); diff != "" {
		t.Fatalf("view mismatch (-want +got):\n%s", diff)
	}
	if node.ID == "" {
		t.Fatalf("view must carry an identity")
	}

	binding, ok := p.Card.Binding(node)
	if !ok {
		t.Fatalf("expected binding attached to view")
	}
	if _, ok := binding.Element.(*card.NumberInput); !ok {
		t.Fatalf("binding element is %T", binding.Element)
	}

	for _, accepted := range []string{"1", "5", "10"} {
		binding.Handler.SetValue(accepted)
		if err := binding.Handler.Validate(); err != nil {
			t.Fatalf("expected %s accepted: %v", accepted, err)
		}
	}
	for value, want := range map[string]error{"0": inputs.ErrOutOfRange, "11": inputs.ErrOutOfRange, "abc": inputs.ErrNotANumber} {
		binding.Handler.SetValue(value)
		if err := binding.Handler.Validate(); !errors.Is(err, want) {
			t.Fatalf("expected %s rejected with %v, got %v", value, want, err)
		}
	}

	if warnings := p.Card.Warnings(); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestRenderNumberInput_InteractivityDisallowed(t *testing.T) {
	host := hostconfig.Default()
	host.SupportsInteractivity = false
	p := newTestPass(host)

	for _, el := range []*card.NumberInput{scenarioElement(), card.NewNumberInput("plain")} {
		before := len(p.Card.Warnings())
		if node := RenderNumberInput(p, p.Card.Root(), el, RenderArgs{}); node != nil {
			t.Fatalf("expected no view, got %+v", node)
		}
		warnings := p.Card.Warnings()[before:]
		want := []Warning{{Kind: WarningInteractivityDisallowed, Message: "Input.Number is not allowed"}}
		if diff := cmp.Diff(want, warnings); diff != "" {
			t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
		}
	}
	if len(p.Card.Inputs()) != 0 {
		t.Fatalf("no input may be bound when interactivity is off")
	}
}

func TestRenderNumberInput_GateDoesNotAbortPass(t *testing.T) {
	host := hostconfig.Default()
	host.SupportsInteractivity = false

	text := &card.TextBlock{Base: card.Base{ID: "after", Visible: true}, Text: "still here"}
	c := &card.Card{Body: []card.Element{scenarioElement(), text}}

	rc, err := New(WithLogger(logging.Discard())).Render(context.Background(), c, host, visibility.Context{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(rc.Root().Children) != 1 || rc.Root().Children[0].Text != "still here" {
		t.Fatalf("expected the text block rendered after the skipped input, got %+v", rc.Root().Children)
	}
	if got := rc.Warnings(); len(got) != 1 || got[0].Kind != WarningInteractivityDisallowed {
		t.Fatalf("expected exactly one warning, got %v", got)
	}
}

func TestRenderNumberInput_UnboundedAcceptsAnyNumber(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	node := RenderNumberInput(p, p.Card.Root(), card.NewNumberInput("free"), RenderArgs{})

	if node.Text != "" || node.Hint != "" {
		t.Fatalf("unbounded input without value should have empty text and no hint, got %+v", node)
	}
	binding, _ := p.Card.Binding(node)
	for _, value := range []string{"-1e12", "0", "3.25", "1e12"} {
		binding.Handler.SetValue(value)
		if err := binding.Handler.Validate(); err != nil {
			t.Fatalf("expected %s accepted: %v", value, err)
		}
	}
	binding.Handler.SetValue("abc")
	if err := binding.Handler.Validate(); !errors.Is(err, inputs.ErrNotANumber) {
		t.Fatalf("expected ErrNotANumber, got %v", err)
	}
}

func TestRenderNumberInput_Idempotent(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	el := scenarioElement()

	first := RenderNumberInput(p, p.Card.Root(), el, RenderArgs{})
	second := RenderNumberInput(p, p.Card.Root(), el, RenderArgs{})

	if first == second || first.ID == second.ID {
		t.Fatalf("expected two independent views")
	}
	if diff := cmp.Diff(first, second, cmpopts.IgnoreFields(view.Node{}, "ID")); diff != "" {
		t.Fatalf("views should be configured identically (-first +second):\n%s", diff)
	}

	a, _ := p.Card.Binding(first)
	b, _ := p.Card.Binding(second)
	if a.Handler == b.Handler {
		t.Fatalf("handlers must not be shared")
	}
	a.Handler.SetValue("11")
	if b.Handler.Value() != "5" {
		t.Fatalf("editing one handler leaked into the other: %q", b.Handler.Value())
	}
	if *el.Value != 5 || el.Min != 1 || el.Max != 10 {
		t.Fatalf("rendering must not mutate the element")
	}
	if len(p.Card.Inputs()) != 2 {
		t.Fatalf("expected both views bound, got %d", len(p.Card.Inputs()))
	}
}

func TestRenderNumberInput_VisibilityPassThrough(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	el := scenarioElement()
	el.Visible = false

	node := RenderNumberInput(p, p.Card.Root(), el, RenderArgs{})
	if node == nil || !node.Hidden {
		t.Fatalf("expected a hidden view, got %+v", node)
	}
	if node.Text != "5" || node.Placeholder != "Enter a number" {
		t.Fatalf("hidden view must still be fully configured: %+v", node)
	}
	if _, ok := p.Card.Binding(node); !ok {
		t.Fatalf("hidden view must still be bound")
	}
}

func TestRenderNumberInput_OutOfRangeInitialValue(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	el := scenarioElement()
	value := 42.0
	el.Value = &value

	node := RenderNumberInput(p, p.Card.Root(), el, RenderArgs{})
	if node.Text != "42" {
		t.Fatalf("expected initial value rendered as-is, got %q", node.Text)
	}
	if len(p.Card.Warnings()) != 0 {
		t.Fatalf("out-of-range initial value must not warn")
	}
	binding, _ := p.Card.Binding(node)
	if err := binding.Handler.Validate(); !errors.Is(err, inputs.ErrOutOfRange) {
		t.Fatalf("expected submission-time range failure, got %v", err)
	}
}

func TestRenderNumberInput_RangeHintFollowsHost(t *testing.T) {
	host := hostconfig.Default()
	host.Inputs.ShowRangeHint = false
	p := newTestPass(host)

	node := RenderNumberInput(p, p.Card.Root(), scenarioElement(), RenderArgs{ContainerStyle: "emphasis"})
	if node.Hint != "" {
		t.Fatalf("hint must be omitted when the host disables it, got %q", node.Hint)
	}
	if node.Attr("container-style") != "emphasis" {
		t.Fatalf("expected container style carried from args")
	}
}

func TestRenderNumberInput_ResolvesThroughWrapper(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	wrapped := &card.Conditional{Element: scenarioElement()}

	node := RenderNumberInput(p, p.Card.Root(), wrapped, RenderArgs{})
	if node == nil || node.Text != "5" || node.Placeholder != "Enter a number" || node.Hint != "1 to 10" {
		t.Fatalf("expected wrapped element data to survive resolution, got %+v", node)
	}
}

func TestRenderNumberInput_WrongVariantIsFatal(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	wrong := card.NewTextInput("name")

	defer func() {
		recovered := recover()
		internal, ok := recovered.(*InternalError)
		if !ok {
			t.Fatalf("expected *InternalError panic, got %#v", recovered)
		}
		if internal.Type != string(card.TypeNumberInput) {
			t.Fatalf("unexpected internal error %v", internal)
		}
		if len(p.Card.Warnings()) != 0 {
			t.Fatalf("fatal resolution must not be downgraded to a warning")
		}
	}()
	RenderNumberInput(p, p.Card.Root(), wrong, RenderArgs{})
	t.Fatalf("expected panic")
}

func TestResolve(t *testing.T) {
	el := scenarioElement()
	if got := resolve[*card.NumberInput](el, card.TypeNumberInput); got != el {
		t.Fatalf("fast path must return the same element")
	}
	nested := &card.Conditional{Element: &card.Conditional{Element: el, When: "a"}, When: "b"}
	if got := resolve[*card.NumberInput](nested, card.TypeNumberInput); got != el {
		t.Fatalf("fallback must unwrap nested wrappers")
	}

	if _, ok := card.As[*card.NumberInput](card.NewToggleInput("t", "T")); ok {
		t.Fatalf("safe conversion of another variant must report no conversion")
	}

	func() {
		defer func() {
			if _, ok := recover().(*InternalError); !ok {
				t.Fatalf("expected *InternalError for nil element")
			}
		}()
		resolve[*card.NumberInput](nil, card.TypeNumberInput)
	}()
}

func TestRenderNumberInput_NaNBoundFailsValidation(t *testing.T) {
	p := newTestPass(hostconfig.Default())
	el := scenarioElement()
	el.Max = math.NaN()

	node := RenderNumberInput(p, p.Card.Root(), el, RenderArgs{})
	binding, ok := p.Card.Binding(node)
	if !ok {
		t.Fatalf("expected a binding")
	}
	if err := binding.Handler.Validate(); !errors.Is(err, inputs.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
