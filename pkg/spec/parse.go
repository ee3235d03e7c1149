package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Parse converts raw fragments into a Table. Fragments are processed in index
// order and a failure in one never prevents the rest from being read.
func Parse(fragments []string) Table {
	var table Table
	for index, fragment := range fragments {
		group, errs, ok := parseFragment(index, fragment)
		table.Errors = append(table.Errors, errs...)
		if !ok {
			if len(errs) > 0 {
				table.Skipped++
			}
			continue
		}
		table.Groups = append(table.Groups, group)
	}
	return table
}

func parseFragment(index int, fragment string) (Group, []*DefinitionError, bool) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(fragment), &raw); err != nil {
		return Group{}, []*DefinitionError{{
			Fragment: index,
			Position: NoPosition,
			Reason:   ReasonMalformed,
			Err:      err,
		}}, false
	}

	switch leadingByte(raw) {
	case 'n':
		return Group{}, nil, false
	case '{':
		field, errs := parseDescriptor(index, NoPosition, raw)
		return Group{Fragment: index, Fields: []FieldSpec{field}}, errs, true
	case '[':
		return parseRow(index, raw)
	default:
		return Group{}, []*DefinitionError{{
			Fragment: index,
			Position: NoPosition,
			Reason:   ReasonInvalidShape,
			Err:      fmt.Errorf("expected an object or an array of objects"),
		}}, false
	}
}

func parseRow(index int, raw json.RawMessage) (Group, []*DefinitionError, bool) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Group{}, []*DefinitionError{{
			Fragment: index,
			Position: NoPosition,
			Reason:   ReasonMalformed,
			Err:      err,
		}}, false
	}

	group := Group{Fragment: index, Row: true, Fields: make([]FieldSpec, 0, len(entries))}
	var errs []*DefinitionError
	for position, entry := range entries {
		switch leadingByte(entry) {
		case 'n':
			continue
		case '{':
			field, fieldErrs := parseDescriptor(index, position, entry)
			group.Fields = append(group.Fields, field)
			errs = append(errs, fieldErrs...)
		default:
			errs = append(errs, &DefinitionError{
				Fragment: index,
				Position: position,
				Reason:   ReasonInvalidShape,
				Err:      fmt.Errorf("row entries must be objects"),
			})
		}
	}
	return group, errs, true
}

// parseDescriptor decodes one descriptor object. Type mismatches on optional
// keys fall back to defaults; the descriptor is always returned so the field
// can still render.
func parseDescriptor(index, position int, raw json.RawMessage) (FieldSpec, []*DefinitionError) {
	var props map[string]json.RawMessage
	if err := json.Unmarshal(raw, &props); err != nil {
		return FieldSpec{Kind: KindText, Label: DefaultLabel("")}, []*DefinitionError{{
			Fragment: index,
			Position: position,
			Reason:   ReasonMalformed,
			Err:      err,
		}}
	}

	var errs []*DefinitionError
	field := FieldSpec{}

	name, ok := stringProp(props, "name")
	if !ok || name == "" {
		errs = append(errs, &DefinitionError{Fragment: index, Position: position, Reason: ReasonMissingName})
	}
	field.Name = name

	kind, hasKind := stringProp(props, "kind")
	if !hasKind {
		kind, hasKind = stringProp(props, "type")
	}
	field.Kind = Kind(strings.ToLower(strings.TrimSpace(kind)))
	switch {
	case !hasKind || field.Kind == "":
		field.Kind = KindText
	case !field.Kind.Valid():
		errs = append(errs, &DefinitionError{
			Fragment: index,
			Position: position,
			Name:     name,
			Reason:   ReasonUnknownKind,
			Err:      fmt.Errorf("kind %q is not one of text, textarea, checkbox, radio", kind),
		})
		field.Kind = KindText
	}

	field.Label, _ = stringProp(props, "label")
	field.Options = listProp(props, "options")

	// `text` carries the checkbox caption or the radio option list.
	if text, ok := props["text"]; ok {
		switch leadingByte(text) {
		case '"':
			if field.Label == "" {
				field.Label, _ = stringProp(props, "text")
			}
		case '[':
			if len(field.Options) == 0 {
				field.Options = listProp(props, "text")
			}
		}
	}

	if field.Label == "" {
		field.Label = DefaultLabel(name)
	}

	if field.Kind == KindRadio && len(field.Options) == 0 {
		errs = append(errs, &DefinitionError{Fragment: index, Position: position, Name: name, Reason: ReasonMissingOptions})
	}
	if field.Kind != KindRadio {
		field.Options = nil
	}

	return field, errs
}

func stringProp(props map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := props[key]
	if !ok {
		return "", false
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", false
	}
	return out, true
}

// listProp decodes an array of scalars. Non-string scalars keep their JSON
// literal text so numeric option lists still render.
func listProp(props map[string]json.RawMessage, key string) []string {
	raw, ok := props[key]
	if !ok || leadingByte(raw) != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			out = append(out, text)
			continue
		}
		out = append(out, string(bytes.TrimSpace(item)))
	}
	return out
}

func leadingByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
