package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-answerform/pkg/render/template"
)

// Option is one selectable radio choice.
type Option struct {
	ID      string `json:"id"`
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Control is the template payload describing one rendered control. Label and
// option labels are already sanitised HTML.
type Control struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	InputName string   `json:"input_name"`
	Kind      string   `json:"kind"`
	Label     string   `json:"label"`
	Value     string   `json:"value"`
	Checked   bool     `json:"checked"`
	Disabled  bool     `json:"disabled"`
	Options   []Option `json:"options,omitempty"`
}

// Renderer writes the markup for one control into buf.
type Renderer func(buf *bytes.Buffer, control Control, data ComponentData) error

// ComponentData carries the template engine and theme partial overrides.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	Partials map[string]string
}

// Descriptor binds a component name to its renderer.
type Descriptor struct {
	Name     string
	Renderer Renderer
}

// Registry tracks component descriptors keyed by name. Callers can replace
// the built-in kinds with their own markup.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy that can be mutated independently.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with name, replacing any existing entry.
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
	r.components[name] = descriptor
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
	return descriptor, ok
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

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
