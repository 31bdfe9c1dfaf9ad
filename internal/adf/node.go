// Package adf flattens Atlassian Document Format rich text into plain text.
//
// Raw ADF JSON is decoded once into a small sealed variant (Text, Container,
// Opaque). Extraction is then a plain switch over those variants and never
// fails: anything that cannot be interpreted contributes no text.
package adf

import (
	"bytes"
	"encoding/json"
)

// Node is one node of a rich-text document tree.
type Node interface {
	isNode()
}

// Text is a text-bearing leaf.
type Text struct {
	Value string
}

// Container holds an ordered sequence of child nodes.
type Container struct {
	Children []Node
}

// Opaque is any value that is neither a text node nor a container.
type Opaque struct {
	Raw json.RawMessage
}

func (Text) isNode()      {}
func (Container) isNode() {}
func (Opaque) isNode()    {}

// DecodeNode decodes one raw JSON value into a Node.
//
// An object with a "text" key is a Text node even if it also has "content";
// if that value is not a JSON string (null included) the object is Opaque.
// An object with only "content" is a Container. A bare JSON array is treated
// as a Container of its elements. Everything else is Opaque.
func DecodeNode(raw json.RawMessage) Node {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Opaque{}
	}

	switch raw[0] {
	case '[':
		return Container{Children: decodeList(raw)}
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Opaque{Raw: raw}
		}
		if text, ok := obj["text"]; ok {
			var s *string
			if err := json.Unmarshal(text, &s); err != nil || s == nil {
				return Opaque{Raw: raw}
			}
			return Text{Value: *s}
		}
		if content, ok := obj["content"]; ok {
			return Container{Children: decodeList(content)}
		}
	}
	return Opaque{Raw: raw}
}

// DecodeNodes decodes a JSON array into nodes. Non-array input yields nil.
func DecodeNodes(raw json.RawMessage) []Node {
	return decodeList(raw)
}

func decodeList(raw json.RawMessage) []Node {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, DecodeNode(item))
	}
	return nodes
}
