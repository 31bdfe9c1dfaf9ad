package adf

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is a top-level rich-text field such as an issue description.
type Field struct {
	// Present is false when the field was missing or JSON null.
	Present bool
	// HasContent reports whether the field object carried a "content" key.
	HasContent bool
	Content    []Node
}

// ParseField decodes a rich-text field. It never fails.
func ParseField(raw json.RawMessage) Field {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Field{}
	}

	f := Field{Present: true}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return f
	}
	if content, ok := obj["content"]; ok {
		f.HasContent = true
		f.Content = decodeList(content)
	}
	return f
}

// UnmarshalJSON implements json.Unmarshaler. Malformed trees are not an error.
func (f *Field) UnmarshalJSON(data []byte) error {
	*f = ParseField(data)
	return nil
}

// Fragments returns the text fragments under n in depth-first pre-order.
func Fragments(n Node) []string {
	switch n := n.(type) {
	case Text:
		return []string{n.Value}
	case Container:
		return FragmentsOf(n.Children)
	default:
		return nil
	}
}

// FragmentsOf returns the fragments of each node in order, concatenated.
func FragmentsOf(nodes []Node) []string {
	var parts []string
	for _, n := range nodes {
		parts = append(parts, Fragments(n)...)
	}
	return parts
}

// Fragments returns the field's text fragments.
func (f Field) Fragments() []string {
	if !f.HasContent {
		return nil
	}
	return FragmentsOf(f.Content)
}

// Text joins the field's fragments with newlines.
func (f Field) Text() string {
	return strings.Join(f.Fragments(), "\n")
}

// ExtractField flattens a raw rich-text field into newline-joined text.
func ExtractField(raw json.RawMessage) string {
	return ParseField(raw).Text()
}
