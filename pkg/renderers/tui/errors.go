package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoActions is returned when a card offers no submit action to choose.
	ErrNoActions = errors.New("tui: card has no submit action")
)
