package components

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingTemplate struct {
	names []string
}

func (r *recordingTemplate) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.names = append(r.names, name)
	return "<" + name + ">", nil
}

func (r *recordingTemplate) RenderString(string, any, ...io.Writer) (string, error) {
	return "", errors.New("not used")
}

func TestDefaultRegistry_Names(t *testing.T) {
	want := []string{NameCheckbox, NameRadio, NameText, NameTextarea}
	if diff := cmp.Diff(want, NewDefaultRegistry().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateComponentRenderer_HonoursPartials(t *testing.T) {
	tpl := &recordingTemplate{}
	descriptor, ok := NewDefaultRegistry().Descriptor(" Radio ")
	if !ok {
		t.Fatalf("radio component missing")
	}

	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, Control{Name: "r"}, ComponentData{Template: tpl}); err != nil {
		t.Fatalf("render: %v", err)
	}
	err := descriptor.Renderer(&buf, Control{Name: "r"}, ComponentData{
		Template: tpl,
		Partials: map[string]string{PartialRadio: "themes/acme/radio.tmpl"},
	})
	if err != nil {
		t.Fatalf("render with partial: %v", err)
	}

	want := []string{"templates/components/radio.tmpl", "themes/acme/radio.tmpl"}
	if diff := cmp.Diff(want, tpl.names); diff != "" {
		t.Fatalf("template names mismatch (-want +got):\n%s", diff)
	}

	if err := descriptor.Renderer(&buf, Control{}, ComponentData{}); err == nil {
		t.Fatalf("expected an error without a template renderer")
	}
}

func TestRegistry_CloneIsIndependent(t *testing.T) {
	base := NewDefaultRegistry()
	clone := base.Clone()
	clone.MustRegister("custom", Descriptor{Renderer: func(*bytes.Buffer, Control, ComponentData) error { return nil }})

	if _, ok := base.Descriptor("custom"); ok {
		t.Fatalf("clone mutation leaked into the base registry")
	}
	if err := clone.Register("", Descriptor{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
}
