package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-cardrender/pkg/render/template"
	"github.com/goliatone/go-cardrender/pkg/view"
)

// Renderer writes the HTML for one view node into buf.
type Renderer func(buf *bytes.Buffer, node *view.Node, data ComponentData) error

// ComponentData carries helpers and per-node state for component renderers.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// RenderChildren renders node's children through the registry.
	RenderChildren func(node *view.Node) (string, error)
	// Markdown converts card text to sanitised HTML.
	Markdown func(text string) (string, error)
	// Value is the text to display; it already reflects RenderOptions.Values.
	Value string
	// Errors are the messages reported for this node's input.
	Errors []string
	// Hidden is set when the node or one of its ancestors is hidden.
	Hidden bool
	// Partials maps theme partial keys to template overrides.
	Partials map[string]string
	// Chrome localises renderer-owned strings.
	Chrome func(key, fallback string) string
}

// Descriptor bundles a component renderer with the stylesheets it needs.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
}

// Registry tracks component descriptors keyed by name. Callers can register
// new components or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Descriptor)}
}

// Clone returns a copy that can be mutated independently.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates descriptor with name, replacing any existing entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Stylesheets returns the de-duplicated stylesheets of the named components
// in first-use order.
func (r *Registry) Stylesheets(names []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	seen := make(map[string]struct{})
	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seen[href]; exists {
				continue
			}
			seen[href] = struct{}{}
			out = append(out, href)
		}
	}
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
