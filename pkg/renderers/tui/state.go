package tui

import "maps"

// State tracks the live text of each input and server-provided errors keyed
// by input id. It is intentionally small; prompting lives in the renderer.
type State struct {
	values map[string]string
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]string, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]string, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	maps.Copy(s.values, prefill)
	for key, messages := range errs {
		s.errors[key] = append([]string(nil), messages...)
	}
	return s
}

// Values returns a copy of the live values.
func (s *State) Values() map[string]string {
	if s == nil {
		return nil
	}
	return maps.Clone(s.values)
}

// Value returns the live text recorded for id.
func (s *State) Value(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[id]
	return v, ok
}

// SetValue records the live text for id and clears its stale errors.
func (s *State) SetValue(id, value string) {
	if s == nil || id == "" {
		return
	}
	s.values[id] = value
	delete(s.errors, id)
}

// ErrorsFor returns the errors attached to id.
func (s *State) ErrorsFor(id string) []string {
	if s == nil {
		return nil
	}
	return s.errors[id]
}
