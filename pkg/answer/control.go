package answer

import "github.com/goliatone/go-answerform/pkg/spec"

// Control is the capability a rendering layer provides for one field. The
// serializer reads and writes values only through this interface.
type Control interface {
	Name() string
	Kind() spec.Kind
	Value() Value
	SetValue(Value)
}

// Focuser is implemented by controls that can report input focus.
type Focuser interface {
	Focused() bool
}

// ControlFactory creates a control for a descriptor.
type ControlFactory interface {
	NewControl(field spec.FieldSpec) Control
}

// ControlFactoryFunc adapts a function into a ControlFactory.
type ControlFactoryFunc func(field spec.FieldSpec) Control

func (f ControlFactoryFunc) NewControl(field spec.FieldSpec) Control {
	return f(field)
}

// MemoryControl keeps control state in memory. It backs server-side
// rendering, terminal sessions and tests.
type MemoryControl struct {
	field   spec.FieldSpec
	value   Value
	focused bool
}

// NewMemoryControl returns a blank control for field.
func NewMemoryControl(field spec.FieldSpec) *MemoryControl {
	return &MemoryControl{field: field}
}

// MemoryControls is the default ControlFactory.
var MemoryControls ControlFactory = ControlFactoryFunc(func(field spec.FieldSpec) Control {
	return NewMemoryControl(field)
})

func (c *MemoryControl) Name() string      { return c.field.Name }
func (c *MemoryControl) Kind() spec.Kind   { return c.field.Kind }
func (c *MemoryControl) Value() Value      { return c.value }
func (c *MemoryControl) SetValue(v Value)  { c.value = v }
func (c *MemoryControl) Focused() bool     { return c.focused }
func (c *MemoryControl) SetFocused(f bool) { c.focused = f }

// Options returns the radio option labels of the underlying descriptor.
func (c *MemoryControl) Options() []string {
	return c.field.Options
}

// RenderedField binds a live control to its position in the table.
type RenderedField struct {
	Control

	Spec     spec.FieldSpec
	Fragment int
	Position int
	// Repeated is set when Spec.Name occurs more than once inside the same
	// row; Ordinal is then the occurrence index within that row.
	Repeated bool
	Ordinal  int
}
