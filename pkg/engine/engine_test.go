package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cardrender/internal/logging"
	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/hostconfig"
	"github.com/goliatone/go-cardrender/pkg/view"
	"github.com/goliatone/go-cardrender/pkg/visibility"
)

const sampleCard = `{
  "type": "AdaptiveCard",
  "version": "1.5",
  "body": [
    {"type": "TextBlock", "text": "Order", "weight": "bolder"},
    {"type": "Container", "style": "emphasis", "items": [
      {"type": "Input.Number", "id": "qty", "label": "Quantity", "min": 1, "max": 10, "value": 2},
      {"type": "Input.Text", "id": "note", "placeholder": "Notes", "isMultiline": true, "$when": "${showNotes}"}
    ]},
    {"type": "Input.Time", "id": "at", "min": "08:00", "max": "17:00"},
    {"type": "Input.Toggle", "id": "gift", "title": "Gift wrap", "value": "true"},
    {"type": "Rating", "id": "stars", "fallback": {"type": "TextBlock", "text": "Rate us"}},
    {"type": "Carousel", "id": "pics"}
  ],
  "actions": [
    {"type": "Action.Submit", "id": "send", "title": "Send"},
    {"type": "Action.OpenUrl", "title": "Help", "url": "https://example.com/help"}
  ]
}`

func renderSample(t *testing.T, host hostconfig.Config, data map[string]any, options ...Option) *RenderedCard {
	t.Helper()
	c, err := card.Parse([]byte(sampleCard))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	options = append([]Option{WithLogger(logging.Discard())}, options...)
	rc, err := New(options...).Render(context.Background(), c, host, visibility.Context{Values: data})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return rc
}

func kinds(nodes []*view.Node) []view.Kind {
	out := make([]view.Kind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestEngineRender_Tree(t *testing.T) {
	rc := renderSample(t, hostconfig.Default(), map[string]any{"showNotes": true})
	root := rc.Root()

	if root.Attr("version") != "1.5" {
		t.Fatalf("expected version attr, got %q", root.Attr("version"))
	}
	wantKinds := []view.Kind{view.KindText, view.KindStack, view.KindEditText, view.KindToggle, view.KindText, view.KindStack}
	if diff := cmp.Diff(wantKinds, kinds(root.Children)); diff != "" {
		t.Fatalf("root children (-want +got):\n%s", diff)
	}

	container := root.Children[1]
	if diff := cmp.Diff([]view.Kind{view.KindEditText, view.KindEditText}, kinds(container.Children)); diff != "" {
		t.Fatalf("container children (-want +got):\n%s", diff)
	}
	qty := container.Children[0]
	if qty.InputMode != view.InputModeNumberDecimal || qty.Attr("container-style") != "emphasis" || qty.Label != "Quantity" {
		t.Fatalf("unexpected quantity view %+v", qty)
	}
	if container.Children[1].InputMode != view.InputModeMultiline {
		t.Fatalf("expected multiline notes")
	}

	if root.Children[3].Checked != true {
		t.Fatalf("toggle should start on")
	}
	if root.Children[4].Text != "Rate us" {
		t.Fatalf("expected fallback text for unknown element, got %q", root.Children[4].Text)
	}

	var ids []string
	for _, in := range rc.Inputs() {
		ids = append(ids, in.Element.Input().ID)
	}
	if diff := cmp.Diff([]string{"qty", "note", "at", "gift"}, ids); diff != "" {
		t.Fatalf("bound inputs (-want +got):\n%s", diff)
	}

	want := []Warning{{Kind: WarningUnknownElementType, Message: `Unknown element type "Carousel" was skipped`}}
	if diff := cmp.Diff(want, rc.Warnings()); diff != "" {
		t.Fatalf("warnings (-want +got):\n%s", diff)
	}

	actions := root.Children[5]
	if len(actions.Children) != 2 || actions.Children[0].Name != "send" {
		t.Fatalf("unexpected action set %+v", actions.Children)
	}
	if len(rc.Actions()) != 2 {
		t.Fatalf("expected two registered actions")
	}
}

func TestEngineRender_WhenConditions(t *testing.T) {
	rc := renderSample(t, hostconfig.Default(), map[string]any{"showNotes": false})
	if got := len(rc.Root().Children[1].Children); got != 1 {
		t.Fatalf("expected notes dropped by $when, got %d children", got)
	}
	for _, in := range rc.Inputs() {
		if in.Element.Input().ID == "note" {
			t.Fatalf("dropped element must not be bound")
		}
	}

	broken := visibility.EvaluatorFunc(func(string, string, visibility.Context) (bool, error) {
		return false, errors.New("bad rule")
	})
	rc = renderSample(t, hostconfig.Default(), nil, WithEvaluator(broken))
	var found bool
	for _, w := range rc.Warnings() {
		if w.Kind == WarningInvalidWhenExpression && strings.Contains(w.Message, "bad rule") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected INVALID_WHEN_EXPRESSION warning, got %v", rc.Warnings())
	}
}

func TestEngineRender_WhenUsesDataNamedLikeBuiltins(t *testing.T) {
	c, err := card.Parse([]byte(`{"type":"AdaptiveCard","body":[
		{"type":"TextBlock","text":"many","$when":"count > 2"},
		{"type":"TextBlock","text":"capped","$when":"max == 10"}
	]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	rc, err := New(WithLogger(logging.Discard())).Render(context.Background(), c, hostconfig.Default(),
		visibility.Context{Values: map[string]any{"count": 3, "max": 10}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := len(rc.Root().Children); got != 2 {
		t.Fatalf("expected both blocks kept, got %d (warnings %v)", got, rc.Warnings())
	}
	if len(rc.Warnings()) != 0 {
		t.Fatalf("unexpected warnings %v", rc.Warnings())
	}
}

func TestEngineRender_InteractivityOff(t *testing.T) {
	host := hostconfig.Default()
	host.SupportsInteractivity = false
	host.Inputs.ReadOnlyFallback = true

	rc := renderSample(t, host, map[string]any{"showNotes": true})

	var disallowed []string
	for _, w := range rc.Warnings() {
		if w.Kind == WarningInteractivityDisallowed {
			disallowed = append(disallowed, w.Message)
		}
	}
	want := []string{
		"Input.Number is not allowed",
		"Input.Text is not allowed",
		"Input.Toggle is not allowed",
		"Action.Submit is not allowed",
		"Action.OpenUrl is not allowed",
	}
	if diff := cmp.Diff(want, disallowed); diff != "" {
		t.Fatalf("disallowed warnings (-want +got):\n%s", diff)
	}
	if len(rc.Inputs()) != 0 {
		t.Fatalf("no inputs may be bound")
	}

	var readOnly *view.Node
	view.Walk(rc.Root(), func(n *view.Node) bool {
		if n.Attr("read-only") == "true" {
			readOnly = n
		}
		return true
	})
	if readOnly == nil || readOnly.Kind != view.KindText {
		t.Fatalf("expected read-only time fallback")
	}
}

func TestEngineRender_MaxActions(t *testing.T) {
	host := hostconfig.Default()
	host.Actions.MaxActions = 1
	rc := renderSample(t, host, nil)

	actions := rc.Root().Children[len(rc.Root().Children)-1]
	if len(actions.Children) != 1 {
		t.Fatalf("expected one rendered action, got %d", len(actions.Children))
	}
	var exceeded int
	for _, w := range rc.Warnings() {
		if w.Kind == WarningMaxActionsExceeded {
			exceeded++
		}
	}
	if exceeded != 1 {
		t.Fatalf("expected one MAX_ACTIONS_EXCEEDED warning, got %v", rc.Warnings())
	}
}

type recordingHandler struct {
	submitted []string
	opened    []string
	live      map[string]string
}

func (h *recordingHandler) Submit(_ context.Context, rc *RenderedCard, action card.Action, live map[string]string) error {
	h.submitted = append(h.submitted, action.ID)
	h.live = live
	if rc == nil {
		return errors.New("missing card")
	}
	return nil
}

func (h *recordingHandler) OpenURL(_ context.Context, action card.Action) error {
	h.opened = append(h.opened, action.URL)
	return nil
}

func TestRenderedCard_Invoke(t *testing.T) {
	handler := &recordingHandler{}
	rc := renderSample(t, hostconfig.Default(), nil, WithActionHandler(handler))

	if err := rc.Invoke(context.Background(), "send", map[string]string{"qty": "3"}); err != nil {
		t.Fatalf("invoke submit: %v", err)
	}
	var helpKey string
	for key, action := range rc.Actions() {
		if action.Type == card.ActionOpenURL {
			helpKey = key
		}
	}
	if err := rc.Invoke(context.Background(), helpKey, nil); err != nil {
		t.Fatalf("invoke open url: %v", err)
	}
	if diff := cmp.Diff([]string{"send"}, handler.submitted); diff != "" {
		t.Fatalf("submitted (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://example.com/help"}, handler.opened); diff != "" {
		t.Fatalf("opened (-want +got):\n%s", diff)
	}
	if handler.live["qty"] != "3" {
		t.Fatalf("live values not forwarded")
	}

	if err := rc.Invoke(context.Background(), "missing", nil); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}

	bare := renderSample(t, hostconfig.Default(), nil)
	if err := bare.Invoke(context.Background(), "send", nil); !errors.Is(err, ErrNoActionHandler) {
		t.Fatalf("expected ErrNoActionHandler, got %v", err)
	}
}

func TestEngineRender_Errors(t *testing.T) {
	e := New(WithLogger(logging.Discard()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Render(ctx, &card.Card{}, hostconfig.Default(), visibility.Context{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := e.Render(context.Background(), nil, hostconfig.Default(), visibility.Context{}); err == nil {
		t.Fatalf("expected error for nil card")
	}
	bad := hostconfig.Default()
	bad.Actions.MaxActions = -1
	if _, err := e.Render(context.Background(), &card.Card{}, bad, visibility.Context{}); err == nil {
		t.Fatalf("expected host validation error")
	}
}

func TestEngineRender_MisroutedRendererPanics(t *testing.T) {
	registry := NewDefaultRegistry()
	registry.Replace(card.TypeTextBlock, RenderNumberInput)
	e := New(WithRegistry(registry), WithLogger(logging.Discard()))

	c := &card.Card{Body: []card.Element{&card.TextBlock{Base: card.Base{Visible: true}, Text: "x"}}}
	defer func() {
		if _, ok := recover().(*InternalError); !ok {
			t.Fatalf("expected *InternalError to propagate from Render")
		}
	}()
	_, _ = e.Render(context.Background(), c, hostconfig.Default(), visibility.Context{})
	t.Fatalf("expected panic")
}

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	if err := r.Register(card.TypeNumberInput, RenderNumberInput); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := r.Register("", RenderNumberInput); err == nil {
		t.Fatalf("expected empty type error")
	}
	if err := r.Register("Custom", nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}

	clone := r.Clone()
	clone.MustRegister("Custom", renderTextBlock)
	if _, ok := r.Lookup("Custom"); ok {
		t.Fatalf("clone must not affect the original")
	}
	want := []card.ElementType{card.TypeContainer, card.TypeNumberInput, card.TypeTextInput, card.TypeTimeInput, card.TypeToggleInput, card.TypeTextBlock}
	if diff := cmp.Diff(want, r.Types()); diff != "" {
		t.Fatalf("types (-want +got):\n%s", diff)
	}
}

func TestRenderedCard_WarningsAreCopied(t *testing.T) {
	rc := newRenderedCard(view.New(view.KindCard), nil)
	rc.AddWarning(Warning{Kind: WarningUnknownElementType, Message: "a"})
	got := rc.Warnings()
	got[0].Message = "mutated"
	if rc.Warnings()[0].Message != "a" {
		t.Fatalf("Warnings must return a copy")
	}
	if _, ok := rc.Binding(nil); ok {
		t.Fatalf("nil view has no binding")
	}
}
