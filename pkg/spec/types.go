package spec

import "fmt"

// Kind enumerates the closed set of field kinds an answer form can hold.
type Kind string

const (
	KindText     Kind = "text"
	KindTextarea Kind = "textarea"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindTextarea, KindCheckbox, KindRadio:
		return true
	default:
		return false
	}
}

// FieldSpec is a single resolved field descriptor.
type FieldSpec struct {
	Name    string   `json:"name"`
	Kind    Kind     `json:"kind"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

// DefaultLabel returns the placeholder label used when a descriptor omits one.
func DefaultLabel(name string) string {
	return fmt.Sprintf("variable '%s'", name)
}

// Group holds the descriptors sourced from one fragment. Row is true when the
// fragment was a JSON array, which makes it an explicit group: names repeated
// inside a row aggregate into a list when serialized.
type Group struct {
	Fragment int         `json:"fragment"`
	Row      bool        `json:"row"`
	Fields   []FieldSpec `json:"fields"`
}

// Table is the ordered, immutable result of parsing every fragment.
type Table struct {
	Groups []Group `json:"groups"`
	// Skipped counts fragments that produced no group because they were
	// malformed or had an unsupported shape. Null fragments are not counted.
	Skipped int                `json:"skipped"`
	Errors  []*DefinitionError `json:"-"`
}

// FieldCount returns the number of descriptors across all groups.
func (t Table) FieldCount() int {
	total := 0
	for _, group := range t.Groups {
		total += len(group.Fields)
	}
	return total
}

// Names returns every non-empty descriptor name in table order, including
// repeats.
func (t Table) Names() []string {
	var out []string
	for _, group := range t.Groups {
		for _, field := range group.Fields {
			if field.Name != "" {
				out = append(out, field.Name)
			}
		}
	}
	return out
}
