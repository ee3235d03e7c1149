package answer

import (
	"encoding/json"

	"github.com/goliatone/go-answerform/pkg/spec"
)

// BuildOption customises Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	controls ControlFactory
}

// WithControlFactory supplies the rendering layer's control constructor.
// Build uses MemoryControls when none is given.
func WithControlFactory(factory ControlFactory) BuildOption {
	return func(cfg *buildConfig) {
		if factory != nil {
			cfg.controls = factory
		}
	}
}

// Session is the short-lived state of one built form: its controls, its
// leftovers and the issues found while building it. A Session is owned by a
// single widget instance and is not safe for concurrent use.
type Session struct {
	table     spec.Table
	fields    []RenderedField
	leftovers LeftoverMap
	issues    Issues
}

// claim tracks how a preload key is consumed: by the first control bearing
// its name and, for list values, by later occurrences in the same row.
type claim struct {
	fragment int
	present  bool
	raw      json.RawMessage
	list     []json.RawMessage
	isList   bool
	used     int
}

// Build instantiates one control per descriptor, populates it from stored and
// returns the resulting Session. Build never fails: a stored answer that is
// not a JSON object is reported as a LoadError and every field starts blank.
func Build(table spec.Table, stored string, options ...BuildOption) *Session {
	cfg := buildConfig{controls: MemoryControls}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	session := &Session{
		table:     table,
		fields:    make([]RenderedField, 0, table.FieldCount()),
		leftovers: LeftoverMap{},
	}
	session.issues.Definition = append(session.issues.Definition, table.Errors...)

	preload, loadErr := ParsePreload(stored)
	if loadErr != nil {
		session.issues.Load = loadErr
		preload = PreloadMap{}
	}

	claims := make(map[string]*claim)
	for _, group := range table.Groups {
		occurrences := rowOccurrences(group)
		ordinals := make(map[string]int)

		for position, field := range group.Fields {
			rendered := RenderedField{
				Control:  cfg.controls.NewControl(field),
				Spec:     field,
				Fragment: group.Fragment,
				Position: position,
			}
			rendered.SetValue(Value{})

			name := field.Name
			if name == "" {
				// Already reported by spec.Parse; unnamed fields are not addressable.
				session.fields = append(session.fields, rendered)
				continue
			}
			if occurrences[name] > 1 {
				rendered.Repeated = true
				rendered.Ordinal = ordinals[name]
				ordinals[name]++
			}

			c, seen := claims[name]
			switch {
			case !seen:
				raw, present := preload[name]
				c = &claim{fragment: group.Fragment, present: present, raw: raw}
				if present {
					c.list, c.isList = splitList(raw)
				}
				claims[name] = c
				c.apply(rendered)
			case c.fragment == group.Fragment && rendered.Repeated:
				c.apply(rendered)
			default:
				session.issues.Definition = append(session.issues.Definition, &DefinitionError{
					Fragment: group.Fragment,
					Position: positionFor(group, position),
					Name:     name,
					Reason:   spec.ReasonDuplicateName,
				})
			}
			session.fields = append(session.fields, rendered)
		}
	}

	for name, raw := range preload {
		c, seen := claims[name]
		switch {
		case !seen:
			session.leftovers[name] = raw
		case c.isList && c.used < len(c.list):
			rest, err := json.Marshal(c.list[c.used:])
			if err == nil {
				session.leftovers[name] = rest
			}
		}
	}

	return session
}

// apply hands the next unconsumed preload value to field. Lists are consumed
// one element per occurrence, scalars by the first occurrence only.
func (c *claim) apply(field RenderedField) {
	if !c.present {
		return
	}
	var raw json.RawMessage
	switch {
	case c.isList:
		if c.used >= len(c.list) {
			return
		}
		raw = c.list[c.used]
	case c.used == 0:
		raw = c.raw
	default:
		return
	}
	c.used++
	field.SetValue(decodeValue(field.Spec, raw))
}

func decodeValue(field spec.FieldSpec, raw json.RawMessage) Value {
	switch field.Kind {
	case spec.KindCheckbox:
		return CheckedValue(decodeChecked(raw))
	case spec.KindRadio:
		return ChoiceValue(decodeChoice(raw, len(field.Options)))
	default:
		return TextValue(decodeText(raw))
	}
}

func rowOccurrences(group spec.Group) map[string]int {
	if !group.Row {
		return nil
	}
	out := make(map[string]int, len(group.Fields))
	for _, field := range group.Fields {
		if field.Name != "" {
			out[field.Name]++
		}
	}
	return out
}

func positionFor(group spec.Group, position int) int {
	if !group.Row {
		return spec.NoPosition
	}
	return position
}

// Table returns the table the session was built from.
func (s *Session) Table() spec.Table {
	return s.table
}

// Fields returns the rendered fields in document order. The slice is a copy;
// the controls are shared.
func (s *Session) Fields() []RenderedField {
	return append([]RenderedField(nil), s.fields...)
}

// Leftovers returns the preload values that matched no field.
func (s *Session) Leftovers() LeftoverMap {
	return s.leftovers
}

// Issues returns the problems recorded while building the session.
func (s *Session) Issues() Issues {
	return s.issues
}

// Serialize produces the canonical stored answer from the current control
// values.
func (s *Session) Serialize() (string, Issues) {
	return Serialize(s.fields)
}
