package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-cardrender/pkg/card"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// ElementRenderer turns one element into one view, or returns nil when the
// element produces no view. parent is the view the result will be appended
// to; the renderer must not append it itself.
type ElementRenderer func(p *Pass, parent *view.Node, el card.Element, args RenderArgs) *view.Node

// Registry maps element types to renderers. It is built once and then only
// read during passes.
type Registry struct {
	mu        sync.RWMutex
	renderers map[card.ElementType]ElementRenderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[card.ElementType]ElementRenderer)}
}

// NewDefaultRegistry returns a registry with the built-in renderers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(card.TypeTextBlock, renderTextBlock)
	r.MustRegister(card.TypeContainer, renderContainer)
	r.MustRegister(card.TypeTextInput, renderTextInput)
	r.MustRegister(card.TypeNumberInput, RenderNumberInput)
	r.MustRegister(card.TypeTimeInput, renderTimeInput)
	r.MustRegister(card.TypeToggleInput, renderToggleInput)
	return r
}

// Register adds fn for typ. Duplicate types return an error.
func (r *Registry) Register(typ card.ElementType, fn ElementRenderer) error {
	if typ == "" {
		return fmt.Errorf("engine: element type is required")
	}
	if fn == nil {
		return fmt.Errorf("engine: renderer for %q is nil", typ)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[typ]; exists {
		return fmt.Errorf("engine: renderer for %q already registered", typ)
	}
	r.renderers[typ] = fn
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(typ card.ElementType, fn ElementRenderer) {
	if err := r.Register(typ, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the renderer for typ.
func (r *Registry) Lookup(typ card.ElementType) (ElementRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.renderers[typ]
	return fn, ok
}

// Replace swaps the renderer for typ, registering it when absent.
func (r *Registry) Replace(typ card.ElementType, fn ElementRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[typ] = fn
}

// Clone returns an independent copy.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := NewRegistry()
	for typ, fn := range r.renderers {
		out.renderers[typ] = fn
	}
	return out
}

// Types lists the registered element types, sorted.
func (r *Registry) Types() []card.ElementType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]card.ElementType, 0, len(r.renderers))
	for typ := range r.renderers {
		out = append(out, typ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
