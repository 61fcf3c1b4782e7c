package card

// ActionType identifies an action variant.
type ActionType string

const (
	ActionSubmit  ActionType = "Action.Submit"
	ActionOpenURL ActionType = "Action.OpenUrl"
)

// Action is a card-level action rendered as a button.
type Action struct {
	Type  ActionType
	ID    string
	Title string
	URL   string
	Data  map[string]any
}

// Card is the root of a parsed card document.
type Card struct {
	Version      string
	Lang         string
	FallbackText string
	Body         []Element
	Actions      []Action
}

// Inputs returns every input element in document order, unwrapping
// conditionals.
func (c *Card) Inputs() []Input {
	if c == nil {
		return nil
	}
	var out []Input
	Walk(c.Body, func(el Element) bool {
		if _, wrapped := el.(Wrapper); wrapped {
			return true
		}
		if input, ok := el.(Input); ok {
			out = append(out, input)
		}
		return true
	})
	return out
}
