package testsupport

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/definition"
	"github.com/goliatone/go-answerform/pkg/render"
	"github.com/goliatone/go-answerform/pkg/spec"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustSession parses fragments and builds a session preloaded from stored.
func MustSession(t *testing.T, stored string, fragments ...string) *answer.Session {
	t.Helper()
	return answer.Build(spec.Parse(fragments), stored)
}

// MustForm builds a session and wraps it as a render.Form with id.
func MustForm(t *testing.T, id, stored string, fragments ...string) (render.Form, *answer.Session) {
	t.Helper()
	session := MustSession(t, stored, fragments...)
	return render.NewForm(id, session), session
}

// MustLoadDefinition reads a JSON or YAML definition fixture.
func MustLoadDefinition(t *testing.T, path string) definition.Definition {
	t.Helper()
	def, err := definition.LoadFile(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// DefinitionFixtures returns the sorted definition files under dir.
func DefinitionFixtures(t *testing.T, dir string) []string {
	t.Helper()
	var out []string
	for _, pattern := range []string{"*.json", "*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			t.Fatalf("glob fixtures: %v", err)
		}
		out = append(out, matches...)
	}
	if len(out) == 0 {
		t.Fatalf("no definition fixtures under %s", dir)
	}
	sort.Strings(out)
	return out
}

// AssertContains fails the test for every fragment missing from output.
func AssertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Errorf("output missing %q\n%s", fragment, output)
		}
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
