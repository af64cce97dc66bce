// Package htmldoc provides a queryable view over parsed HTML documents.
//
// Checks depend on this package's capability surface — select elements
// by tag and attribute, read attributes and text — rather than on the
// underlying parser node type, so the parsing library is an
// implementation detail confined to this package.
package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex because it correctly handles the malformed HTML that site
// generators and hand-edited templates produce, and it gives a proper
// DOM-like structure to walk.
type Document struct {
	root *html.Node
}

// Element is a single element node within a Document.
type Element struct {
	node *html.Node
}

// Parse parses HTML content into a Document.
func Parse(content string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// Walk visits every element node in document order.
func (d *Document) Walk(visit func(Element)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			visit(Element{node: n})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
}

// Select returns all elements with the given tag name.
func (d *Document) Select(tag string) []Element {
	var out []Element
	d.Walk(func(el Element) {
		if el.Tag() == tag {
			out = append(out, el)
		}
	})
	return out
}

// SelectWithAttr returns all elements with the given tag name that carry
// the attribute, regardless of its value.
func (d *Document) SelectWithAttr(tag, attr string) []Element {
	var out []Element
	d.Walk(func(el Element) {
		if el.Tag() == tag && el.HasAttr(attr) {
			out = append(out, el)
		}
	})
	return out
}

// SelectAttrEqual returns all elements with the given tag name whose
// attribute equals the value (ASCII case-insensitive, matching how
// browsers treat rel/name/property values).
func (d *Document) SelectAttrEqual(tag, attr, value string) []Element {
	var out []Element
	d.Walk(func(el Element) {
		if el.Tag() == tag && strings.EqualFold(el.Attr(attr), value) {
			out = append(out, el)
		}
	})
	return out
}

// First returns the first element matching tag with attr equal to value,
// or false if none exists.
func (d *Document) First(tag, attr, value string) (Element, bool) {
	for _, el := range d.SelectAttrEqual(tag, attr, value) {
		return el, true
	}
	return Element{}, false
}

// IDs returns the set of all id attribute values in the document.
// Used by the fragment checks.
func (d *Document) IDs() map[string]struct{} {
	ids := make(map[string]struct{})
	d.Walk(func(el Element) {
		if id := el.Attr("id"); id != "" {
			ids[id] = struct{}{}
		}
	})
	return ids
}

// HasID reports whether any element in the document has the given id.
func (d *Document) HasID(id string) bool {
	found := false
	d.Walk(func(el Element) {
		if el.Attr("id") == id {
			found = true
		}
	})
	return found
}

// Tag returns the element's tag name.
func (e Element) Tag() string {
	return e.node.Data
}

// Attr returns the value of the named attribute, or "" when absent.
func (e Element) Attr(key string) string {
	for _, attr := range e.node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether the element carries the named attribute,
// even with an empty value. Attr cannot distinguish the two, and the
// img alt check needs to: alt="" is valid, a missing alt is not.
func (e Element) HasAttr(key string) bool {
	for _, attr := range e.node.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of the element's subtree.
func (e Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}

// Children visits every element node beneath this element.
func (e Element) Children(visit func(Element)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				visit(Element{node: c})
			}
			walk(c)
		}
	}
	walk(e.node)
}
