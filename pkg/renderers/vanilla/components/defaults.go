package components

import (
	"bytes"
	"fmt"
	"strings"
)

const templatePrefix = "templates/components/"

// Theme partial keys; a theme.RendererConfig may map these to alternate
// template paths.
const (
	PartialText     = "forms.text"
	PartialTextarea = "forms.textarea"
	PartialCheckbox = "forms.checkbox"
	PartialRadio    = "forms.radio"
)

// NewDefaultRegistry returns a registry with the four built-in field kinds.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(NameText, Descriptor{
		Renderer: templateComponentRenderer(PartialText, templatePrefix+"text.tmpl"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer(PartialTextarea, templatePrefix+"textarea.tmpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer(PartialCheckbox, templatePrefix+"checkbox.tmpl"),
	})
	registry.MustRegister(NameRadio, Descriptor{
		Renderer: templateComponentRenderer(PartialRadio, templatePrefix+"radio.tmpl"),
	})
	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, control Control, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"field": control,
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
