package answer_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/spec"
)

func mustTable(t *testing.T, fragments ...string) spec.Table {
	t.Helper()
	table := spec.Parse(fragments)
	if len(table.Errors) != 0 {
		t.Fatalf("unexpected definition errors: %v", table.Errors)
	}
	return table
}

func values(fields []answer.RenderedField) map[string]answer.Value {
	out := make(map[string]answer.Value, len(fields))
	for _, field := range fields {
		out[field.Name()] = field.Value()
	}
	return out
}

func leftoverStrings(m answer.LeftoverMap) map[string]string {
	out := make(map[string]string, len(m))
	for key, raw := range m {
		out[key] = string(raw)
	}
	return out
}

func TestBuild_LeftoverRecovery(t *testing.T) {
	table := mustTable(t, `{"name":"a"}`)

	session := answer.Build(table, `{"a":"1","b":"2"}`)

	if diff := cmp.Diff(map[string]answer.Value{"a": answer.TextValue("1")}, values(session.Fields())); diff != "" {
		t.Fatalf("field values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"b": `"2"`}, leftoverStrings(session.Leftovers())); diff != "" {
		t.Fatalf("leftovers mismatch (-want +got):\n%s", diff)
	}
	if !session.Issues().Empty() {
		t.Fatalf("unexpected issues: %v", session.Issues().Messages())
	}
}

func TestBuild_PopulatesEachKind(t *testing.T) {
	table := mustTable(t,
		`{"name":"t"}`,
		`{"name":"area","kind":"textarea"}`,
		`{"name":"c1","kind":"checkbox"}`,
		`{"name":"c2","kind":"checkbox"}`,
		`{"name":"c3","kind":"checkbox"}`,
		`{"name":"r1","kind":"radio","options":["a","b","c"]}`,
		`{"name":"r2","kind":"radio","options":["a","b"]}`,
		`{"name":"r3","kind":"radio","options":["a","b"]}`,
		`{"name":"n"}`,
	)

	stored := `{"t":"hi","area":"line1\nline2","c1":1,"c2":"0","c3":true,"r1":"3","r2":2,"r3":"7","n":42}`
	session := answer.Build(table, stored)

	want := map[string]answer.Value{
		"t":    answer.TextValue("hi"),
		"area": answer.TextValue("line1\nline2"),
		"c1":   answer.CheckedValue(true),
		"c2":   answer.CheckedValue(false),
		"c3":   answer.CheckedValue(true),
		"r1":   answer.ChoiceValue(3),
		"r2":   answer.ChoiceValue(2),
		"r3":   answer.ChoiceValue(0),
		"n":    answer.TextValue("42"),
	}
	if diff := cmp.Diff(want, values(session.Fields())); diff != "" {
		t.Fatalf("field values mismatch (-want +got):\n%s", diff)
	}
	if len(session.Leftovers()) != 0 {
		t.Fatalf("expected no leftovers, got %v", session.Leftovers())
	}
}

func TestBuild_LoadErrorRendersBlank(t *testing.T) {
	table := mustTable(t, `{"name":"a"}`, `{"name":"c","kind":"checkbox"}`)

	for _, stored := range []string{`{"a":`, `["a"]`, `"text"`} {
		session := answer.Build(table, stored)

		issues := session.Issues()
		if issues.Load == nil {
			t.Fatalf("stored %q: expected a load error", stored)
		}
		var loadErr *answer.LoadError
		if !errors.As(issues.Err(), &loadErr) {
			t.Fatalf("stored %q: expected LoadError in joined error", stored)
		}

		want := map[string]answer.Value{"a": {}, "c": {}}
		if diff := cmp.Diff(want, values(session.Fields())); diff != "" {
			t.Fatalf("stored %q: expected blank fields (-want +got):\n%s", stored, diff)
		}
		if len(session.Leftovers()) != 0 {
			t.Fatalf("stored %q: expected no leftovers", stored)
		}
	}
}

func TestBuild_EmptyStoredAnswer(t *testing.T) {
	table := mustTable(t, `{"name":"a"}`)
	for _, stored := range []string{"", "  ", "null"} {
		session := answer.Build(table, stored)
		if !session.Issues().Empty() {
			t.Fatalf("stored %q: unexpected issues %v", stored, session.Issues().Messages())
		}
	}
}

func TestBuild_DuplicateNames(t *testing.T) {
	table := mustTable(t, `{"name":"dup"}`, `{"name":"dup","label":"again"}`)

	session := answer.Build(table, `{"dup":"first"}`)

	fields := session.Fields()
	if len(fields) != 2 {
		t.Fatalf("both duplicate fields must render, got %d", len(fields))
	}
	if got := fields[0].Value().Text; got != "first" {
		t.Fatalf("first field should receive the preload, got %q", got)
	}
	if got := fields[1].Value().Text; got != "" {
		t.Fatalf("a consumed key must not populate the duplicate, got %q", got)
	}

	defs := session.Issues().Definition
	if len(defs) != 1 || defs[0].Reason != spec.ReasonDuplicateName || defs[0].Fragment != 1 {
		t.Fatalf("expected one duplicate-name error on fragment 1, got %v", defs)
	}
}

func TestBuild_MissingNameStillRenders(t *testing.T) {
	table := spec.Parse([]string{`{"label":"orphan"}`, `{"name":"a"}`})

	session := answer.Build(table, `{"a":"x","":"y"}`)

	if got := len(session.Fields()); got != 2 {
		t.Fatalf("expected 2 rendered fields, got %d", got)
	}
	if got := session.Issues().Definition; len(got) != 1 || got[0].Reason != spec.ReasonMissingName {
		t.Fatalf("expected the missing name to be reported, got %v", got)
	}
	if _, ok := session.Leftovers().Get(""); !ok {
		t.Fatalf("a preload keyed by the empty name has no field and must be kept")
	}
}

func TestBuild_RepeatedRowDistributesLists(t *testing.T) {
	table := mustTable(t, `[{"name":"x"},{"name":"y"},{"name":"x"}]`)

	session := answer.Build(table, `{"x":["one","two","three"],"y":["a","b"]}`)

	fields := session.Fields()
	got := []string{fields[0].Value().Text, fields[1].Value().Text, fields[2].Value().Text}
	if diff := cmp.Diff([]string{"one", "a", "two"}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !fields[0].Repeated || fields[2].Ordinal != 1 || fields[1].Repeated {
		t.Fatalf("unexpected repetition flags: %+v", fields)
	}

	leftovers := session.Leftovers()
	var xs, ys []string
	if raw, ok := leftovers.Get("x"); !ok || json.Unmarshal(raw, &xs) != nil {
		t.Fatalf("expected remaining x values as leftovers, got %v", leftoverStrings(leftovers))
	}
	if raw, ok := leftovers.Get("y"); !ok || json.Unmarshal(raw, &ys) != nil {
		t.Fatalf("expected remaining y values as leftovers, got %v", leftoverStrings(leftovers))
	}
	if diff := cmp.Diff([]string{"three"}, xs); diff != "" {
		t.Fatalf("x leftovers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, ys); diff != "" {
		t.Fatalf("y leftovers mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ScalarPreloadForRepeatedName(t *testing.T) {
	table := mustTable(t, `[{"name":"x"},{"name":"x"}]`)

	session := answer.Build(table, `{"x":"solo"}`)

	fields := session.Fields()
	if fields[0].Value().Text != "solo" || fields[1].Value().Text != "" {
		t.Fatalf("scalar preload goes to the first occurrence only: %q %q",
			fields[0].Value().Text, fields[1].Value().Text)
	}
	if len(session.Leftovers()) != 0 {
		t.Fatalf("consumed scalar must not be a leftover")
	}
}

func TestBuild_UsesControlFactory(t *testing.T) {
	table := mustTable(t, `{"name":"a"}`)
	var created []string
	factory := answer.ControlFactoryFunc(func(field spec.FieldSpec) answer.Control {
		created = append(created, field.Name)
		return answer.NewMemoryControl(field)
	})

	answer.Build(table, "", answer.WithControlFactory(factory))

	if diff := cmp.Diff([]string{"a"}, created); diff != "" {
		t.Fatalf("factory calls mismatch (-want +got):\n%s", diff)
	}
}
