package spec_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-answerform/pkg/spec"
)

func TestParse_SkipsMalformedFragment(t *testing.T) {
	table := spec.Parse([]string{"not json", `{"name":"x"}`})

	if len(table.Errors) != 1 {
		t.Fatalf("expected one definition error, got %d: %v", len(table.Errors), table.Errors)
	}
	if table.Errors[0].Reason != spec.ReasonMalformed || table.Errors[0].Fragment != 0 {
		t.Fatalf("unexpected error: %+v", table.Errors[0])
	}
	if table.Skipped != 1 {
		t.Fatalf("expected one skipped fragment, got %d", table.Skipped)
	}

	want := []spec.Group{{
		Fragment: 1,
		Fields: []spec.FieldSpec{
			{Name: "x", Kind: spec.KindText, Label: "variable 'x'"},
		},
	}}
	if diff := cmp.Diff(want, table.Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NullFragmentSkippedWithoutError(t *testing.T) {
	table := spec.Parse([]string{"null", ` {"name":"a"} `})
	if len(table.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", table.Errors)
	}
	if table.Skipped != 0 {
		t.Fatalf("null fragments must not count as skipped, got %d", table.Skipped)
	}
	if len(table.Groups) != 1 || table.Groups[0].Fragment != 1 {
		t.Fatalf("unexpected groups: %+v", table.Groups)
	}
}

func TestParse_RowsAreNotFlattened(t *testing.T) {
	table := spec.Parse([]string{
		`[{"name":"a","label":"A"},null,{"name":"b","kind":"textarea"}]`,
		`{"name":"c","type":"checkbox","text":"I agree"}`,
	})
	if len(table.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", table.Errors)
	}

	want := []spec.Group{
		{
			Fragment: 0,
			Row:      true,
			Fields: []spec.FieldSpec{
				{Name: "a", Kind: spec.KindText, Label: "A"},
				{Name: "b", Kind: spec.KindTextarea, Label: "variable 'b'"},
			},
		},
		{
			Fragment: 1,
			Fields: []spec.FieldSpec{
				{Name: "c", Kind: spec.KindCheckbox, Label: "I agree"},
			},
		},
	}
	if diff := cmp.Diff(want, table.Groups); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
	if got := table.FieldCount(); got != 3 {
		t.Fatalf("expected 3 fields, got %d", got)
	}
}

func TestParse_RadioOptions(t *testing.T) {
	table := spec.Parse([]string{
		`{"name":"r","kind":"radio","options":["yes","no"]}`,
		`{"name":"legacy","type":"radio","text":["one",2]}`,
		`{"name":"bare","kind":"radio"}`,
	})

	got := [][]string{
		table.Groups[0].Fields[0].Options,
		table.Groups[1].Fields[0].Options,
		table.Groups[2].Fields[0].Options,
	}
	want := [][]string{{"yes", "no"}, {"one", "2"}, nil}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	if len(table.Errors) != 1 || table.Errors[0].Reason != spec.ReasonMissingOptions {
		t.Fatalf("expected a missing-options error, got %v", table.Errors)
	}
}

func TestParse_DescriptorErrorsStillRender(t *testing.T) {
	table := spec.Parse([]string{
		`{"label":"anonymous"}`,
		`{"name":"s","kind":"slider"}`,
		`[1,{"name":"ok"}]`,
		`42`,
	})

	var reasons []spec.Reason
	for _, err := range table.Errors {
		reasons = append(reasons, err.Reason)
	}
	wantReasons := []spec.Reason{
		spec.ReasonMissingName,
		spec.ReasonUnknownKind,
		spec.ReasonInvalidShape,
		spec.ReasonInvalidShape,
	}
	if diff := cmp.Diff(wantReasons, reasons); diff != "" {
		t.Fatalf("reasons mismatch (-want +got):\n%s", diff)
	}

	if len(table.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(table.Groups))
	}
	if table.Skipped != 1 {
		t.Fatalf("expected the scalar fragment to be skipped, got %d", table.Skipped)
	}
	if got := table.Groups[1].Fields[0].Kind; got != spec.KindText {
		t.Fatalf("unknown kinds fall back to text, got %q", got)
	}
	if got := table.Groups[2].Fields; len(got) != 1 || got[0].Name != "ok" {
		t.Fatalf("expected the object row entry to survive, got %+v", got)
	}
}

func TestDefinitionError_Message(t *testing.T) {
	cases := []struct {
		err  *spec.DefinitionError
		want string
	}{
		{
			err:  &spec.DefinitionError{Fragment: 0, Position: spec.NoPosition, Reason: spec.ReasonMalformed, Err: errors.New("boom")},
			want: "field definition 1 is defective: boom",
		},
		{
			err:  &spec.DefinitionError{Fragment: 2, Position: 1, Name: "dup", Reason: spec.ReasonDuplicateName},
			want: "field definition 3 (entry 2): variable 'dup' multiple use",
		},
		{
			err:  &spec.DefinitionError{Fragment: 1, Position: spec.NoPosition, Reason: spec.ReasonMissingName},
			want: "field definition 2: name missing",
		},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("message mismatch\nwant: %q\n got: %q", tc.want, got)
		}
	}
}

func TestReadFragments_StopsAtFirstGap(t *testing.T) {
	attrs := spec.FragmentAttrs("", []string{`{"name":"a"}`, `{"name":"b"}`})
	attrs["extra-test3"] = `{"name":"unreachable"}`

	got := spec.ReadFragments(func(name string) (string, bool) {
		value, ok := attrs[name]
		return value, ok
	}, "")

	want := []string{`{"name":"a"}`, `{"name":"b"}`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fragments mismatch (-want +got):\n%s", diff)
	}
}
