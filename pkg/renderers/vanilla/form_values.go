package vanilla

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/spec"
)

// ApplyFormValues copies a posted form back into the live controls, using
// the same post names Render emits. Checkboxes absent from values are
// cleared; an absent or unknown radio value clears the selection.
func ApplyFormValues(fields []answer.RenderedField, values url.Values) {
	names := InputNames(fields)
	for i, field := range fields {
		if field.Control == nil || names[i] == "" {
			continue
		}
		posted := strings.TrimSpace(values.Get(names[i]))
		switch field.Spec.Kind {
		case spec.KindCheckbox:
			_, present := values[names[i]]
			field.SetValue(answer.CheckedValue(present && posted != "" && posted != "0"))
		case spec.KindRadio:
			choice, err := strconv.Atoi(posted)
			if err != nil || choice < 1 || choice > len(field.Spec.Options) {
				choice = 0
			}
			field.SetValue(answer.ChoiceValue(choice))
		default:
			if _, present := values[names[i]]; present {
				field.SetValue(answer.TextValue(values.Get(names[i])))
			}
		}
	}
}
