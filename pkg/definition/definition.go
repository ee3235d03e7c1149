// Package definition loads answer form definitions from JSON or YAML files.
// A definition bundles the host attributes (the fragments), the stored answer
// and the read-only flag so a form can be rendered outside a page.
package definition

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is a portable description of one answer form host.
type Definition struct {
	Source    string
	Fragments []string
	Answer    string
	ReadOnly  bool
}

type rawDefinition struct {
	Fragments []json.RawMessage `json:"fragments"`
	Answer    json.RawMessage   `json:"answer"`
	ReadOnly  bool              `json:"readonly"`
}

// LoadFile reads a definition from disk.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: %s: %w", path, err)
	}
	def.Source = path
	return def, nil
}

// Load reads a definition from fsys.
func Load(fsys fs.FS, path string) (Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: %s: %w", path, err)
	}
	def.Source = path
	return def, nil
}

// Parse decodes a definition document. JSON is tried first; anything else is
// read as YAML. Fragments may be given as strings holding raw JSON (kept
// verbatim, malformed or not) or as structured values. The answer may be a
// string or an object.
func Parse(data []byte) (Definition, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Definition{}, errors.New("empty definition")
	}

	var raw rawDefinition
	if trimmed[0] == '{' && json.Unmarshal(trimmed, &raw) == nil {
		return fromRaw(raw)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return Definition{}, fmt.Errorf("parse definition: %w", err)
	}
	asJSON, err := nodeJSON(&doc)
	if err != nil {
		return Definition{}, fmt.Errorf("parse definition: %w", err)
	}
	raw = rawDefinition{}
	if err := json.Unmarshal(asJSON, &raw); err != nil {
		return Definition{}, fmt.Errorf("parse definition: %w", err)
	}
	return fromRaw(raw)
}

func fromRaw(raw rawDefinition) (Definition, error) {
	def := Definition{ReadOnly: raw.ReadOnly}
	for i, fragment := range raw.Fragments {
		text, err := rawText(fragment)
		if err != nil {
			return Definition{}, fmt.Errorf("fragment %d: %w", i, err)
		}
		def.Fragments = append(def.Fragments, text)
	}
	answer, err := rawText(raw.Answer)
	if err != nil {
		return Definition{}, fmt.Errorf("answer: %w", err)
	}
	def.Answer = answer
	return def, nil
}

// rawText unwraps JSON strings and compacts anything else. null is empty.
func rawText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// nodeJSON converts a YAML node to JSON keeping mapping key order.
func nodeJSON(node *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNode(&buf, node); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNode(buf, node.Content[0])
	case yaml.AliasNode:
		return writeNode(buf, node.Alias)
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, node.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNode(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		if err := writeJSON(buf, value); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		return nil
	default:
		return fmt.Errorf("line %d: unsupported yaml node", node.Line)
	}
}

// writeJSON encodes v without HTML escaping so labels keep their markup.
func writeJSON(buf *bytes.Buffer, v any) error {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scratch.Bytes(), "\n"))
	return nil
}

// String renders a one-line summary for logs.
func (d Definition) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d fragment(s)", len(d.Fragments))
	if d.Source != "" {
		b.WriteString(" from " + d.Source)
	}
	if d.ReadOnly {
		b.WriteString(", read-only")
	}
	return b.String()
}
