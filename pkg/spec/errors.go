package spec

import (
	"fmt"
	"strings"
)

// Reason classifies a DefinitionError.
type Reason string

const (
	ReasonMalformed      Reason = "malformed"
	ReasonInvalidShape   Reason = "invalid-shape"
	ReasonMissingName    Reason = "missing-name"
	ReasonDuplicateName  Reason = "duplicate-name"
	ReasonUnknownKind    Reason = "unknown-kind"
	ReasonMissingOptions Reason = "missing-options"
)

// NoPosition marks a DefinitionError that concerns a whole fragment rather
// than one descriptor inside it.
const NoPosition = -1

// DefinitionError reports a malformed or semantically invalid descriptor.
// Fragment is zero-based; messages display it one-based.
type DefinitionError struct {
	Fragment int
	Position int
	Name     string
	Reason   Reason
	Err      error
}

func (e *DefinitionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "field definition %d", e.Fragment+1)
	if e.Position != NoPosition {
		fmt.Fprintf(&b, " (entry %d)", e.Position+1)
	}
	switch e.Reason {
	case ReasonMissingName:
		b.WriteString(": name missing")
	case ReasonDuplicateName:
		fmt.Fprintf(&b, ": variable '%s' multiple use", e.Name)
	case ReasonUnknownKind:
		fmt.Fprintf(&b, ": field '%s' has an unknown kind", e.Name)
	case ReasonMissingOptions:
		fmt.Fprintf(&b, ": radio field '%s' has no options", e.Name)
	default:
		b.WriteString(" is defective")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
