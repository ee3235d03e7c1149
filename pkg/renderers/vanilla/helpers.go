package vanilla

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-answerform/pkg/answer"
)

func controlID(rootID string, index int) string {
	rootID = strings.TrimSpace(rootID)
	if rootID == "" {
		rootID = "answerform"
	}
	return fmt.Sprintf("%s-%d", rootID, index)
}

func optionID(controlID string, choice int) string {
	return fmt.Sprintf("%s-%d", controlID, choice)
}

// InputName is the form post name for a field: the variable name, or
// name[ordinal] for repeated occurrences inside a row.
func InputName(field answer.RenderedField) string {
	name := field.Spec.Name
	if name == "" {
		return ""
	}
	if field.Repeated {
		return fmt.Sprintf("%s[%d]", name, field.Ordinal)
	}
	return name
}

// InputNames resolves the post name of every field. A name reused in a later
// fragment is suffixed with @fragment so each control posts separately.
func InputNames(fields []answer.RenderedField) []string {
	names := make([]string, len(fields))
	owner := make(map[string]int)
	for i, field := range fields {
		name := InputName(field)
		if name == "" {
			continue
		}
		if fragment, ok := owner[name]; ok && fragment != field.Fragment {
			name = fmt.Sprintf("%s@%d", name, field.Fragment)
		} else if !ok {
			owner[name] = field.Fragment
		}
		names[i] = name
	}
	return names
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(vars))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSpace(key)
		value := strings.TrimSpace(vars[key])
		if name == "" || value == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+value)
	}
	return strings.Join(parts, "; ")
}
