package engine

import "fmt"

// InternalError is the panic value raised when a renderer receives an
// element it cannot handle. It signals a dispatch bug and is never
// recovered by the engine.
type InternalError struct {
	Op      string
	Type    string
	Message string
}

func (e *InternalError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("engine: internal error in %s: %s", e.Op, e.Message)
}
