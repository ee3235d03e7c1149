package widget

import (
	"maps"
	"sync"

	"github.com/goliatone/go-answerform/pkg/spec"
)

// Host is the element a widget is mounted on: a text field holding the stored
// answer plus the attributes carrying the definition fragments.
type Host interface {
	Value() string
	SetValue(string)
	Attr(name string) (string, bool)
	ReadOnly() bool
}

// MemoryHost is an in-memory Host. It is safe for concurrent use.
type MemoryHost struct {
	mu       sync.RWMutex
	value    string
	attrs    map[string]string
	readOnly bool
}

// NewMemoryHost returns a host whose attributes carry fragments under the
// default prefix.
func NewMemoryHost(value string, fragments ...string) *MemoryHost {
	return &MemoryHost{
		value: value,
		attrs: spec.FragmentAttrs(spec.DefaultFragmentAttr, fragments),
	}
}

func (h *MemoryHost) Value() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.value
}

func (h *MemoryHost) SetValue(value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = value
}

func (h *MemoryHost) Attr(name string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	value, ok := h.attrs[name]
	return value, ok
}

func (h *MemoryHost) ReadOnly() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.readOnly
}

// SetAttr sets or replaces one attribute.
func (h *MemoryHost) SetAttr(name, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.attrs == nil {
		h.attrs = make(map[string]string)
	}
	h.attrs[name] = value
}

// SetReadOnly toggles the read-only flag.
func (h *MemoryHost) SetReadOnly(readOnly bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.readOnly = readOnly
}

// Attrs returns a copy of every attribute.
func (h *MemoryHost) Attrs() map[string]string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return maps.Clone(h.attrs)
}
