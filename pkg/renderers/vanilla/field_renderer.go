package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/render/template"
	"github.com/goliatone/go-answerform/pkg/renderers/vanilla/components"
	"github.com/goliatone/go-answerform/pkg/spec"
	"github.com/microcosm-cc/bluemonday"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	policy    *bluemonday.Policy
	partials  map[string]string
	readOnly  bool
}

func (r *componentRenderer) render(field answer.RenderedField, id, inputName string) (string, error) {
	kind := field.Spec.Kind
	if !kind.Valid() {
		kind = spec.KindText
	}

	descriptor, ok := r.registry.Descriptor(string(kind))
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", kind, field.Spec.Name)
	}

	control := r.controlPayload(field, kind, id, inputName)
	data := components.ComponentData{
		Template: r.templates,
		Partials: r.partials,
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, control, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", kind, field.Spec.Name, err)
	}
	return buildFieldMarkup(control, strings.TrimSpace(buf.String())), nil
}

func (r *componentRenderer) controlPayload(field answer.RenderedField, kind spec.Kind, id, inputName string) components.Control {
	var value answer.Value
	if field.Control != nil {
		value = field.Value()
	}

	control := components.Control{
		ID:        id,
		Name:      field.Spec.Name,
		InputName: inputName,
		Kind:      string(kind),
		Label:     r.sanitize(field.Spec.Label),
		Disabled:  r.readOnly,
	}

	switch kind {
	case spec.KindCheckbox:
		control.Checked = value.Checked
	case spec.KindRadio:
		for i, label := range field.Spec.Options {
			choice := i + 1
			control.Options = append(control.Options, components.Option{
				ID:      optionID(id, choice),
				Value:   answer.OptionValue(choice),
				Label:   r.sanitize(label),
				Checked: value.Choice == choice,
			})
		}
	default:
		control.Value = value.Text
	}
	return control
}

func (r *componentRenderer) sanitize(label string) string {
	if r.policy == nil {
		return sanitizeLabel(label)
	}
	return strings.TrimSpace(r.policy.Sanitize(strings.TrimSpace(label)))
}

// buildFieldMarkup wraps the control with its label. Checkbox labels follow
// the control; radio groups get a prompt above the options.
func buildFieldMarkup(control components.Control, markup string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="answerform-field answerform-field--%s"`, html.EscapeString(control.Kind))
	if control.Name != "" {
		fmt.Fprintf(&b, ` data-answer-name="%s"`, html.EscapeString(control.Name))
	}
	b.WriteString(">\n")

	label := control.Label
	switch control.Kind {
	case string(spec.KindCheckbox):
		b.WriteString(markup)
		if label != "" {
			fmt.Fprintf(&b, "\n"+`<label for="%s">%s</label>`, html.EscapeString(control.ID), label)
		}
	case string(spec.KindRadio):
		if label != "" {
			fmt.Fprintf(&b, `<span class="answerform-prompt">%s</span>`+"\n", label)
		}
		b.WriteString(markup)
	default:
		if label != "" {
			fmt.Fprintf(&b, `<label for="%s">%s</label>`+"\n", html.EscapeString(control.ID), label)
		}
		b.WriteString(markup)
	}

	b.WriteString("\n</div>")
	return b.String()
}
