package view

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
)

var documentPolicy = bluemonday.UGCPolicy()

// NormalizeDocument parses stored content, substituting the empty-document
// skeleton when it is absent or structurally invalid.
func NormalizeDocument(raw []byte) contracts.Node {
	return contracts.NormalizeDocument(raw)
}

// RenderDocument turns a document tree into sanitized, read-only HTML.
func RenderDocument(doc contracts.Node) template.HTML {
	var b strings.Builder
	renderNode(&b, doc)
	return template.HTML(documentPolicy.Sanitize(b.String()))
}

func renderNode(b *strings.Builder, n contracts.Node) {
	switch n.Type {
	case "doc":
		renderChildren(b, n)
	case "text":
		renderText(b, n)
	case "paragraph":
		wrap(b, "p", n)
	case "heading":
		wrap(b, fmt.Sprintf("h%d", headingLevel(n)), n)
	case "bulletList":
		wrap(b, "ul", n)
	case "orderedList":
		wrap(b, "ol", n)
	case "listItem":
		wrap(b, "li", n)
	case "blockquote":
		wrap(b, "blockquote", n)
	case "codeBlock":
		b.WriteString("<pre><code>")
		renderChildren(b, n)
		b.WriteString("</code></pre>")
	case "hardBreak":
		b.WriteString("<br>")
	case "horizontalRule":
		b.WriteString("<hr>")
	default:
		renderChildren(b, n)
	}
}

func wrap(b *strings.Builder, tag string, n contracts.Node) {
	b.WriteString("<" + tag + ">")
	renderChildren(b, n)
	b.WriteString("</" + tag + ">")
}

func renderChildren(b *strings.Builder, n contracts.Node) {
	for _, c := range n.Content {
		renderNode(b, c)
	}
}

func renderText(b *strings.Builder, n contracts.Node) {
	open := make([]string, 0, len(n.Marks))
	closing := make([]string, 0, len(n.Marks))
	for _, m := range n.Marks {
		var tag, attrs string
		switch m.Type {
		case "bold":
			tag = "strong"
		case "italic":
			tag = "em"
		case "underline":
			tag = "u"
		case "strike":
			tag = "s"
		case "code":
			tag = "code"
		case "link":
			href, _ := m.Attrs["href"].(string)
			if href == "" {
				continue
			}
			tag = "a"
			attrs = ` href="` + html.EscapeString(href) + `"`
		default:
			continue
		}
		open = append(open, "<"+tag+attrs+">")
		closing = append(closing, "</"+tag+">")
	}
	for _, o := range open {
		b.WriteString(o)
	}
	b.WriteString(html.EscapeString(n.Text))
	for i := len(closing) - 1; i >= 0; i-- {
		b.WriteString(closing[i])
	}
}

func headingLevel(n contracts.Node) int {
	var level int
	switch v := n.Attrs["level"].(type) {
	case float64:
		level = int(v)
	case int:
		level = v
	}
	if level < 1 || level > 6 {
		return 2
	}
	return level
}
