package keytree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes a JSON object into a tree, keeping key order.
// Leaf values must be strings; any other scalar or an array is rejected.
func Parse(data []byte) (*Tree, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing JSON: expected object at top level, got %v", tok)
	}

	t, err := parseObject(dec, "")
	if err != nil {
		return nil, err
	}

	// Nothing but whitespace may follow the root object.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing JSON: unexpected data after top-level object")
	}
	return t, nil
}

// parseObject reads members up to and including the closing brace.
func parseObject(dec *json.Decoder, prefix string) (*Tree, error) {
	t := New()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("parsing JSON: expected string key, got %T", kt)
		}
		path := key
		if prefix != "" {
			path = prefix + Separator + key
		}

		vt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON value for %q: %w", path, err)
		}
		switch v := vt.(type) {
		case string:
			t.Set(key, Leaf(v))
		case json.Delim:
			if v != '{' {
				return nil, fmt.Errorf("parsing JSON: unsupported array value for %q", path)
			}
			sub, err := parseObject(dec, path)
			if err != nil {
				return nil, err
			}
			t.Set(key, sub)
		default:
			return nil, fmt.Errorf("parsing JSON: unsupported %T value for %q (leaf values must be strings)", vt, path)
		}
	}

	// Consume '}'.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return t, nil
}

// Marshal encodes the tree as JSON in key order, indented with two spaces
// and terminated by a newline. HTML characters are not escaped.
func Marshal(t *Tree) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeObject(&compact, t); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indenting JSON: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeObject(buf *bytes.Buffer, t *Tree) error {
	buf.WriteByte('{')
	for i, key := range t.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, key); err != nil {
			return err
		}
		buf.WriteByte(':')
		switch n := t.children[key].(type) {
		case *Tree:
			if err := writeObject(buf, n); err != nil {
				return err
			}
		case Leaf:
			if err := writeString(buf, string(n)); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

// writeString appends s as a JSON string literal.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding %q: %w", s, err)
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// MarshalJSON implements json.Marshaler with key order preserved.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tree) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
