package answer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/goliatone/go-answerform/pkg/spec"
)

type entry struct {
	value    any
	items    []any
	isList   bool
	fragment int
}

// Serialize reads every control in document order and returns the canonical
// stored answer. Unnamed controls and unselected radios do not contribute.
// A name written twice outside one row records a SerializeConflict and the
// later value wins.
func Serialize(fields []RenderedField) (string, Issues) {
	var issues Issues
	order := make([]string, 0, len(fields))
	entries := make(map[string]*entry, len(fields))

	for _, field := range fields {
		if field.Control == nil {
			continue
		}
		name := field.Name()
		if name == "" {
			continue
		}
		value, ok := controlValue(field.Control)

		existing, exists := entries[name]
		if field.Repeated {
			if !ok {
				value = ""
			}
			if exists && existing.isList && existing.fragment == field.Fragment {
				existing.items = append(existing.items, value)
				continue
			}
			if exists {
				issues.Conflicts = append(issues.Conflicts, &SerializeConflict{Name: name, Fragment: field.Fragment})
			} else {
				order = append(order, name)
			}
			entries[name] = &entry{items: []any{value}, isList: true, fragment: field.Fragment}
			continue
		}

		if !ok {
			continue
		}
		if exists {
			issues.Conflicts = append(issues.Conflicts, &SerializeConflict{Name: name, Fragment: field.Fragment})
		} else {
			order = append(order, name)
		}
		entries[name] = &entry{value: value, fragment: field.Fragment}
	}

	if allEmpty(order, entries) {
		return "", issues
	}
	return encodeOrdered(order, entries), issues
}

// controlValue maps a control's state to its stored representation. The
// boolean result is false for radios with no selection.
func controlValue(control Control) (any, bool) {
	value := control.Value()
	switch control.Kind() {
	case spec.KindCheckbox:
		if value.Checked {
			return 1, true
		}
		return 0, true
	case spec.KindRadio:
		if value.Choice < 1 {
			return nil, false
		}
		return OptionValue(value.Choice), true
	default:
		return value.Text, true
	}
}

func allEmpty(order []string, entries map[string]*entry) bool {
	for _, name := range order {
		e := entries[name]
		if e.isList {
			for _, item := range e.items {
				if item != "" {
					return false
				}
			}
			continue
		}
		if e.value != "" {
			return false
		}
	}
	return true
}

func encodeOrdered(order []string, entries map[string]*entry) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range order {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(encodeJSON(name))
		buf.WriteByte(':')
		e := entries[name]
		if e.isList {
			buf.WriteString(encodeJSON(e.items))
		} else {
			buf.WriteString(encodeJSON(e.value))
		}
	}
	buf.WriteByte('}')
	return buf.String()
}

// encodeJSON marshals without HTML escaping so stored answers keep <, > and &
// literally.
func encodeJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
