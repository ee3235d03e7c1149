package answer

import "strconv"

// Value is the live state of one control. Only the member matching the
// control's kind is meaningful.
type Value struct {
	Text    string
	Checked bool
	// Choice is the 1-based index of the selected radio option; 0 means no
	// option is selected.
	Choice int
}

// TextValue wraps a text or textarea value.
func TextValue(text string) Value {
	return Value{Text: text}
}

// CheckedValue wraps a checkbox state.
func CheckedValue(checked bool) Value {
	return Value{Checked: checked}
}

// ChoiceValue wraps a 1-based radio selection.
func ChoiceValue(choice int) Value {
	if choice < 0 {
		choice = 0
	}
	return Value{Choice: choice}
}

// OptionValue is the serialized form of a 1-based radio choice.
func OptionValue(choice int) string {
	return strconv.Itoa(choice)
}
