package components

// Canonical component names. Each view.Kind renders through the component of
// the same name.
const (
	NameStack    = "stack"
	NameText     = "text"
	NameEditText = "edit-text"
	NameToggle   = "toggle"
	NameButton   = "button"
)
