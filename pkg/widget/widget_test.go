package widget_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/spec"
	"github.com/goliatone/go-answerform/pkg/widget"
)

type recordingNotifier struct {
	calls []answer.Issues
}

func (r *recordingNotifier) Notify(issues answer.Issues) {
	r.calls = append(r.calls, issues)
}

func TestWidget_LifecycleRoundTrip(t *testing.T) {
	host := widget.NewMemoryHost(`{"a":"1","c":1,"b":"2"}`,
		`{"name":"a"}`,
		`{"name":"c","kind":"checkbox"}`,
	)
	notes := &recordingNotifier{}

	w, err := widget.New(host, widget.WithNotifier(notes), widget.WithID("q1"))
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if len(notes.calls) != 0 {
		t.Fatalf("unexpected issues on load: %v", notes.calls[0].Messages())
	}

	raw, ok := w.Recover("b")
	if !ok || string(raw) != `"2"` {
		t.Fatalf("recover b = %q, %v", raw, ok)
	}

	fields := w.Session().Fields()
	fields[0].SetValue(answer.TextValue("edited"))
	fields[1].SetValue(answer.CheckedValue(false))

	if err := w.Sync(); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if diff := cmp.Diff(`{"a":"edited","c":0}`, host.Value()); diff != "" {
		t.Fatalf("stored answer mismatch (-want +got):\n%s", diff)
	}

	if err := w.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := w.Session().Fields()[0].Value().Text; got != "edited" {
		t.Fatalf("reload lost value, got %q", got)
	}
	if len(w.Leftovers()) != 0 {
		t.Fatalf("leftovers should be gone after sync, got %v", w.Leftovers())
	}
}

func TestWidget_RenderedRootExposesLeftovers(t *testing.T) {
	host := widget.NewMemoryHost(`{"a":"x","zz":true}`, `{"name":"a"}`)
	host.SetReadOnly(true)

	w, err := widget.New(host)
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if !strings.HasPrefix(w.ID(), "answerform-") {
		t.Fatalf("unexpected generated id %q", w.ID())
	}

	out, err := w.RenderedRoot(context.Background())
	if err != nil {
		t.Fatalf("rendered root: %v", err)
	}
	html := string(out)
	for _, want := range []string{`id="` + w.ID() + `"`, `data-leftovers="{&#34;zz&#34;:true}"`, ` disabled>`} {
		if !strings.Contains(html, want) {
			t.Errorf("root missing %q\n%s", want, html)
		}
	}
}

func TestWidget_IssuesReachNotifier(t *testing.T) {
	host := widget.NewMemoryHost(`not json`, `not json either`, `{"name":"x"}`)
	notes := &recordingNotifier{}

	w, err := widget.New(host, widget.WithNotifier(notes))
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if len(notes.calls) != 1 {
		t.Fatalf("expected one notification, got %d", len(notes.calls))
	}
	want := map[string]int{"definition": 1, "load": 1}
	if diff := cmp.Diff(want, notes.calls[0].Counts()); diff != "" {
		t.Fatalf("issue counts mismatch (-want +got):\n%s", diff)
	}

	out, err := w.RenderedRoot(context.Background())
	if err != nil {
		t.Fatalf("rendered root: %v", err)
	}
	if !strings.Contains(string(out), "no values to load") {
		t.Fatalf("load notice missing from root:\n%s", out)
	}
}

func TestWidget_DestroySyncsThenRefuses(t *testing.T) {
	host := widget.NewMemoryHost(``, `{"name":"a"}`)
	w, err := widget.New(host)
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	w.Session().Fields()[0].SetValue(answer.TextValue("final"))

	if err := w.Destroy(); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if diff := cmp.Diff(`{"a":"final"}`, host.Value()); diff != "" {
		t.Fatalf("destroy did not sync (-want +got):\n%s", diff)
	}

	for name, call := range map[string]func() error{
		"sync":    w.Sync,
		"reload":  w.Reload,
		"destroy": w.Destroy,
		"render": func() error {
			_, err := w.RenderedRoot(context.Background())
			return err
		},
	} {
		if err := call(); !errors.Is(err, widget.ErrDestroyed) {
			t.Errorf("%s after destroy: expected ErrDestroyed, got %v", name, err)
		}
	}
	if w.HasFocus() {
		t.Fatalf("destroyed widget reports focus")
	}
}

func TestWidget_HasFocus(t *testing.T) {
	var controls []*answer.MemoryControl
	factory := answer.ControlFactoryFunc(func(field spec.FieldSpec) answer.Control {
		control := answer.NewMemoryControl(field)
		controls = append(controls, control)
		return control
	})

	w, err := widget.New(widget.NewMemoryHost(``, `[{"name":"a"},{"name":"b"}]`), widget.WithControlFactory(factory))
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if w.HasFocus() {
		t.Fatalf("no control focused yet")
	}
	controls[1].SetFocused(true)
	if !w.HasFocus() {
		t.Fatalf("expected focus from second control")
	}
}

func TestWidget_CustomFragmentPrefix(t *testing.T) {
	host := widget.NewMemoryHost(`{"q":"v"}`)
	host.SetAttr("data-field0", `{"name":"q"}`)

	w, err := widget.New(host, widget.WithFragmentAttr("data-field"))
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	if diff := cmp.Diff([]string{"q"}, w.Table().Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLogNotifier_WritesWarnings(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	notifier := widget.LogNotifier(zap.New(core))

	notifier.Notify(answer.Issues{Conflicts: []*answer.SerializeConflict{{Name: "dup", Fragment: 1}}})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["message"]; got != "duplicate name 'dup' in interface" {
		t.Fatalf("unexpected message field %v", got)
	}
}
