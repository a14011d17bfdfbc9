// Package doc wraps an xmlquery document so the rest of the engine never
// has to import antchfx/xmlquery directly. It is the Go shape of spec.md's
// "document exposing xpath(expr, namespaces)".
package doc

import (
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
)

// Node is a position in a parsed XML document.
type Node struct {
	raw *xmlquery.Node
}

// Document is a parsed XML document, read-only for the lifetime of a
// validation run (spec.md §5).
type Document struct {
	root *xmlquery.Node
}

// Parse reads and parses an XML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse XML document: %w", err)
	}
	return &Document{root: root}, nil
}

// Root returns the document's root node, used as the context node for a
// Pattern's top-level context XPath.
func (d *Document) Root() *Node {
	return &Node{raw: d.root}
}

// Raw exposes the underlying xmlquery node; used only inside package xpath,
// which is the one other place allowed to know the concrete XML library.
func (n *Node) Raw() *xmlquery.Node {
	return n.raw
}

// WrapNode adapts a raw xmlquery node into a doc.Node. Exported for package
// xpath, which produces raw nodes from compiled XPath selection.
func WrapNode(raw *xmlquery.Node) *Node {
	if raw == nil {
		return nil
	}
	return &Node{raw: raw}
}

// Attribute returns the named attribute's value and whether it was present.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.raw.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns the node's direct children.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.raw.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, &Node{raw: c})
	}
	return out
}

// Text returns the node's own text-node data if it is itself a text node,
// or its concatenated descendant text otherwise.
func (n *Node) Text() string {
	return n.raw.InnerText()
}

// IsText reports whether the node is a text node.
func (n *Node) IsText() bool {
	return n.raw.Type == xmlquery.TextNode
}

// Line returns the 1-based source line the node started on.
func (n *Node) Line() int {
	return n.raw.LineNumber
}
