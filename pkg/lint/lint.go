// Package lint checks answer form definitions before they reach a page. It
// validates every fragment against an embedded JSON Schema and adds the
// semantic checks the schema cannot express: duplicate names, radios without
// options and unknown kinds.
package lint

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/spec"
)

//go:embed fieldspec.schema.json
var schemaSource string

// NoFragment marks issues that are not tied to a fragment, such as a bad
// stored answer.
const NoFragment = -1

// Issue is one lint finding.
type Issue struct {
	Fragment int    `json:"fragment"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
}

func (i Issue) String() string {
	switch {
	case i.Fragment == NoFragment:
		return i.Message
	case i.Path == "":
		return fmt.Sprintf("fragment %d: %s", i.Fragment, i.Message)
	default:
		return fmt.Sprintf("fragment %d %s: %s", i.Fragment, i.Path, i.Message)
	}
}

// Report lists findings in fragment order.
type Report struct {
	Issues []Issue `json:"issues"`
}

// OK reports whether nothing was found.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

var (
	schemaOnce  sync.Once
	schema      *jsonschema.Schema
	fieldSchema *jsonschema.Schema
	schemaErr   error
)

const schemaURL = "fieldspec.schema.json"

func compileSchemas() {
	compiler := jsonschema.NewCompiler()
	if schemaErr = compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); schemaErr != nil {
		return
	}
	if schema, schemaErr = compiler.Compile(schemaURL); schemaErr != nil {
		return
	}
	fieldSchema, schemaErr = compiler.Compile(schemaURL + "#/$defs/field")
}

// Schema returns the compiled fragment schema.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(compileSchemas)
	return schema, schemaErr
}

// Fragments lints a set of fragments.
func Fragments(fragments []string) (Report, error) {
	compiled, err := Schema()
	if err != nil {
		return Report{}, fmt.Errorf("lint: compile schema: %w", err)
	}

	var report Report
	for index, fragment := range fragments {
		var doc any
		if err := json.Unmarshal([]byte(fragment), &doc); err != nil {
			report.Issues = append(report.Issues, Issue{Fragment: index, Message: "malformed JSON: " + err.Error()})
			continue
		}
		if compiled.Validate(doc) == nil {
			continue
		}
		issues, err := shapeIssues(index, doc)
		if err != nil {
			return Report{}, err
		}
		report.Issues = append(report.Issues, issues...)
	}

	// Building with no stored answer surfaces the cross-fragment duplicate
	// names along with the parse errors the schema cannot express.
	session := answer.Build(spec.Parse(fragments), "")
	for _, defErr := range session.Issues().Definition {
		switch defErr.Reason {
		case spec.ReasonDuplicateName, spec.ReasonMissingOptions, spec.ReasonUnknownKind:
			report.Issues = append(report.Issues, Issue{
				Fragment: defErr.Fragment,
				Path:     entryPath(defErr.Position),
				Message:  defErr.Error(),
			})
		}
	}

	sort.SliceStable(report.Issues, func(i, j int) bool {
		return report.Issues[i].Fragment < report.Issues[j].Fragment
	})
	return report, nil
}

// Definition lints fragments plus a stored answer.
func Definition(fragments []string, stored string) (Report, error) {
	report, err := Fragments(fragments)
	if err != nil {
		return Report{}, err
	}
	if _, loadErr := answer.ParsePreload(stored); loadErr != nil {
		report.Issues = append(report.Issues, Issue{Fragment: NoFragment, Message: loadErr.Error()})
	}
	return report, nil
}

// shapeIssues re-validates a rejected fragment against the descriptor schema
// so findings point at the offending descriptor rather than at every anyOf
// branch of the root schema.
func shapeIssues(fragment int, doc any) ([]Issue, error) {
	switch value := doc.(type) {
	case map[string]any:
		return validateField(fragment, "", value)
	case []any:
		var out []Issue
		for position, entry := range value {
			if entry == nil {
				continue
			}
			path := entryPath(position)
			if _, ok := entry.(map[string]any); !ok {
				out = append(out, Issue{Fragment: fragment, Path: path, Message: "row entry must be an object or null"})
				continue
			}
			issues, err := validateField(fragment, path, entry)
			if err != nil {
				return nil, err
			}
			out = append(out, issues...)
		}
		return out, nil
	default:
		return []Issue{{Fragment: fragment, Message: "fragment must be an object, an array or null"}}, nil
	}
}

func validateField(fragment int, prefix string, doc any) ([]Issue, error) {
	err := fieldSchema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return nil, fmt.Errorf("lint: validate fragment %d: %w", fragment, err)
	}
	issues := schemaIssues(fragment, verr)
	for i := range issues {
		issues[i].Path = prefix + issues[i].Path
	}
	return issues, nil
}

func schemaIssues(fragment int, verr *jsonschema.ValidationError) []Issue {
	var out []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Issue{Fragment: fragment, Path: e.InstanceLocation, Message: e.Message})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return dedupe(out)
}

func dedupe(issues []Issue) []Issue {
	seen := make(map[Issue]struct{}, len(issues))
	out := issues[:0]
	for _, issue := range issues {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		out = append(out, issue)
	}
	return out
}

func entryPath(position int) string {
	if position == spec.NoPosition {
		return ""
	}
	return fmt.Sprintf("/%d", position)
}
