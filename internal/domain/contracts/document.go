package contracts

import (
	"encoding/json"
	"strings"
)

// Node is one element of a structured contract document (a ProseMirror-style tree:
// a "doc" root holding block nodes, which hold inline "text" nodes).
type Node struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
}

type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

const EmptyDocumentText = "Contract content is empty or invalid."

// DefaultDocument is substituted whenever stored content is absent or malformed.
func DefaultDocument() Node {
	return Node{
		Type: "doc",
		Content: []Node{{
			Type:    "paragraph",
			Content: []Node{{Type: "text", Text: EmptyDocumentText}},
		}},
	}
}

// ParseDocument decodes raw and reports whether it is a structurally valid document.
func ParseDocument(raw []byte) (Node, bool) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Node{}, false
	}
	var doc Node
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Node{}, false
	}
	if doc.Type != "doc" || len(doc.Content) == 0 {
		return Node{}, false
	}
	for _, child := range doc.Content {
		if !validNode(child) {
			return Node{}, false
		}
	}
	return doc, true
}

// NormalizeDocument returns raw's document, or DefaultDocument when it does not parse.
func NormalizeDocument(raw []byte) Node {
	if doc, ok := ParseDocument(raw); ok {
		return doc
	}
	return DefaultDocument()
}

// NormalizeDocumentJSON is NormalizeDocument re-encoded for storage.
func NormalizeDocumentJSON(raw []byte) []byte {
	out, err := json.Marshal(NormalizeDocument(raw))
	if err != nil {
		out, _ = json.Marshal(DefaultDocument())
	}
	return out
}

func validNode(n Node) bool {
	switch {
	case strings.TrimSpace(n.Type) == "":
		return false
	case n.Type == "doc":
		return false
	case n.Type == "text":
		return n.Text != "" && len(n.Content) == 0
	}
	for _, m := range n.Marks {
		if strings.TrimSpace(m.Type) == "" {
			return false
		}
	}
	for _, child := range n.Content {
		if !validNode(child) {
			return false
		}
	}
	return true
}
