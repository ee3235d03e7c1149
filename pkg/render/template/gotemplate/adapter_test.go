package gotemplate_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-answerform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-answerform/pkg/testsupport"
)

func newEngine(t *testing.T, opts ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"templates/hello.tmpl":  {Data: []byte(`Hello {{ name }}!`)},
		"templates/global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
		"templates/escape.tmpl": {Data: []byte(`<b>{{ value }}</b>{{ html|safe }}`)},
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{
		gotemplate.WithFS(files),
		gotemplate.WithExtension("tmpl"),
	}, opts...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("templates/hello", map[string]any{"name": "Ada"}, w)
	})
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if written != result {
		t.Fatalf("writer mismatch: %q", written)
	}
}

func TestEngine_GlobalData(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("templates/global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_AutoescapesValues(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("templates/escape", map[string]any{
		"value": `<script>"x"</script>`,
		"html":  "<i>ok</i>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<script>") {
		t.Fatalf("expected escaped value, got %q", result)
	}
	if !strings.Contains(result, "<i>ok</i>") {
		t.Fatalf("expected safe filter output, got %q", result)
	}
}

func TestEngine_RenderStringAndErrors(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderString(`{{ a }}-{{ b }}`, struct {
		A string `json:"a"`
		B int    `json:"b"`
	}{A: "x", B: 2})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "x-2" {
		t.Fatalf("unexpected result %q", result)
	}

	if _, err := engine.RenderTemplate("templates/missing", nil); err == nil {
		t.Fatalf("expected missing template error")
	}
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected an error without a template source")
	}
}
