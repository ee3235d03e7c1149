package components

// Canonical component names, one per field kind.
const (
	NameText     = "text"
	NameTextarea = "textarea"
	NameCheckbox = "checkbox"
	NameRadio    = "radio"
)
