package formata

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// node is a generic, namespace-agnostic XML element tree. Mixed content
// (interleaved text and child elements) is preserved in document order via
// the children slice, where a node with an empty tag represents a text
// run. This mirrors the minimal recursive-descent trees built by hand in
// generic document walkers across the pack (e.g. the goquery/x/net/html
// DOM walked in pkg/formatb) but for XML, since encoding/xml's struct-tag
// unmarshalling cannot express "direct child text only" for an unbounded,
// self-similar hierarchy the way a hand-rolled tree can.
type node struct {
	tag      string
	attrs    map[string]string
	text     string // only set when tag == ""
	children []*node
}

// parseDocument reads the entire XML document into a single root node
// representing the outermost element.
func parseDocument(r io.Reader) (*node, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false

	var root *node
	var stack []*node

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("formata: xml decode: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{tag: localName(t.Name), attrs: attrMap(t.Attr)}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, n)
			} else {
				root = n
			}
			stack = append(stack, n)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) == 0 || len(t) == 0 {
				continue
			}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, &node{text: string(t)})
		}
	}

	if root == nil {
		return nil, fmt.Errorf("formata: empty document")
	}
	return root, nil
}

func localName(name xml.Name) string {
	return name.Local
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

// directChild returns the first immediate child element with the given
// tag, or nil.
func (n *node) directChild(tag string) *node {
	for _, c := range n.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// directChildren returns every immediate child element with the given tag,
// in document order.
func (n *node) directChildren(tag string) []*node {
	var out []*node
	for _, c := range n.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// allText concatenates every character-data run anywhere under n,
// including inside nested inline elements (ref, em, etc.) — matching the
// original extractor's use of lxml's itertext() over a chapeau/content
// element, which has no structural descendants of its own.
func (n *node) allText() string {
	var b strings.Builder
	var walk func(*node)
	walk = func(cur *node) {
		if cur.tag == "" {
			b.WriteString(cur.text)
			return
		}
		for _, c := range cur.children {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// directText concatenates only the text runs that are direct children of
// n, ignoring any text nested inside child elements. Used for a ref
// element's own display text (spec.md §9 open question (c): nested-inline
// ref text is not captured).
func (n *node) directText() string {
	var b strings.Builder
	for _, c := range n.children {
		if c.tag == "" {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

// findByIdentifier searches the subtree rooted at n (inclusive) for the
// first element whose "identifier" attribute equals id.
func (n *node) findByIdentifier(id string) *node {
	if n.attrs["identifier"] == id {
		return n
	}
	for _, c := range n.children {
		if c.tag == "" {
			continue
		}
		if found := c.findByIdentifier(id); found != nil {
			return found
		}
	}
	return nil
}

// findAllByTag returns every descendant (inclusive) with the given tag,
// regardless of depth.
func (n *node) findAllByTag(tag string) []*node {
	var out []*node
	var walk func(*node)
	walk = func(cur *node) {
		if cur.tag == tag {
			out = append(out, cur)
		}
		for _, c := range cur.children {
			if c.tag != "" {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}
