package answer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-answerform/pkg/spec"
)

// DefinitionError is re-exported so callers only need this package to inspect
// issues.
type DefinitionError = spec.DefinitionError

// LoadError reports a stored answer that is neither empty nor a JSON object.
// A form built after a LoadError renders with every field blank.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return "no values to load"
	}
	return "no values to load: " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SerializeConflict reports two controls writing the same name outside an
// explicit row. The later control's value is kept.
type SerializeConflict struct {
	Name string
	// Fragment is the fragment of the control whose value won.
	Fragment int
}

func (e *SerializeConflict) Error() string {
	return fmt.Sprintf("duplicate name '%s' in interface", e.Name)
}

// Issues collects every non-fatal problem found while building or
// serializing a form.
type Issues struct {
	Definition []*DefinitionError
	Load       *LoadError
	Conflicts  []*SerializeConflict
}

// Empty reports whether no issue was recorded.
func (i Issues) Empty() bool {
	return i.Len() == 0
}

// Len returns the number of recorded issues.
func (i Issues) Len() int {
	n := len(i.Definition) + len(i.Conflicts)
	if i.Load != nil {
		n++
	}
	return n
}

// Merge returns the union of i and other. A LoadError on i takes precedence.
func (i Issues) Merge(other Issues) Issues {
	out := Issues{
		Definition: append(append([]*DefinitionError(nil), i.Definition...), other.Definition...),
		Load:       i.Load,
		Conflicts:  append(append([]*SerializeConflict(nil), i.Conflicts...), other.Conflicts...),
	}
	if out.Load == nil {
		out.Load = other.Load
	}
	return out
}

// Errors flattens the issues in definition, load, conflict order.
func (i Issues) Errors() []error {
	out := make([]error, 0, i.Len())
	for _, err := range i.Definition {
		out = append(out, err)
	}
	if i.Load != nil {
		out = append(out, i.Load)
	}
	for _, err := range i.Conflicts {
		out = append(out, err)
	}
	return out
}

// Err joins the issues into a single error, or returns nil when empty.
func (i Issues) Err() error {
	return errors.Join(i.Errors()...)
}

// Messages returns trimmed, de-duplicated messages in issue order, ready for
// a notification banner.
func (i Issues) Messages() []string {
	errs := i.Errors()
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, 0, len(errs))
	seen := make(map[string]struct{}, len(errs))
	for _, err := range errs {
		message := strings.TrimSpace(err.Error())
		if message == "" {
			continue
		}
		if _, exists := seen[message]; exists {
			continue
		}
		seen[message] = struct{}{}
		out = append(out, message)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Counts tallies issues by kind: "definition", "load" and "conflict".
func (i Issues) Counts() map[string]int {
	out := make(map[string]int, 3)
	if n := len(i.Definition); n > 0 {
		out["definition"] = n
	}
	if i.Load != nil {
		out["load"] = 1
	}
	if n := len(i.Conflicts); n > 0 {
		out["conflict"] = n
	}
	return out
}
