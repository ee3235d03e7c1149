package answer

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// PreloadMap maps field names to their stored raw JSON values.
type PreloadMap map[string]json.RawMessage

// LeftoverMap holds preload values that matched no rendered field. Values are
// kept verbatim.
type LeftoverMap map[string]json.RawMessage

// JSON encodes the leftovers as an object; an empty map encodes as {}.
func (m LeftoverMap) JSON() string {
	if len(m) == 0 {
		return "{}"
	}
	data, err := json.Marshal(map[string]json.RawMessage(m))
	if err != nil {
		return "{}"
	}
	return string(data)
}

// Get returns the raw leftover value for name.
func (m LeftoverMap) Get(name string) (json.RawMessage, bool) {
	raw, ok := m[name]
	return raw, ok
}

// Clone returns an independent copy.
func (m LeftoverMap) Clone() LeftoverMap {
	if m == nil {
		return nil
	}
	out := make(LeftoverMap, len(m))
	for key, value := range m {
		out[key] = append(json.RawMessage(nil), value...)
	}
	return out
}

// ParsePreload decodes a stored answer. The empty string and a JSON null yield
// an empty map; anything that is not a JSON object yields a LoadError.
func ParsePreload(stored string) (PreloadMap, *LoadError) {
	if strings.TrimSpace(stored) == "" {
		return PreloadMap{}, nil
	}
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(stored), &raw); err != nil {
		return PreloadMap{}, &LoadError{Err: err}
	}
	switch leadingByte(raw) {
	case 'n':
		return PreloadMap{}, nil
	case '{':
	default:
		return PreloadMap{}, &LoadError{Err: errors.New("stored answer is not a JSON object")}
	}
	var out PreloadMap
	if err := json.Unmarshal(raw, &out); err != nil {
		return PreloadMap{}, &LoadError{Err: err}
	}
	return out, nil
}

// splitList returns the elements of raw when it is a JSON array.
func splitList(raw json.RawMessage) ([]json.RawMessage, bool) {
	if leadingByte(raw) != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// decodeText renders a raw value as control text. Strings load verbatim,
// other scalars load as their literal, null loads empty.
func decodeText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch leadingByte(trimmed) {
	case 0, 'n':
		return ""
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return text
		}
	}
	return string(trimmed)
}

// decodeChecked applies the checkbox truthiness rule.
func decodeChecked(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch leadingByte(trimmed) {
	case 0, 'n', 'f':
		return false
	case 't':
		return true
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return false
		}
		return text != "" && text != "0" && text != "false"
	case '[', '{':
		return false
	default:
		number, err := strconv.ParseFloat(string(trimmed), 64)
		return err == nil && number != 0
	}
}

// decodeChoice resolves a 1-based option index, returning 0 when raw does not
// address one of the available options.
func decodeChoice(raw json.RawMessage, options int) int {
	trimmed := bytes.TrimSpace(raw)
	text := string(trimmed)
	if leadingByte(trimmed) == '"' {
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return 0
		}
	}
	choice, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || choice < 1 || choice > options {
		return 0
	}
	return choice
}

func leadingByte(raw []byte) byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
