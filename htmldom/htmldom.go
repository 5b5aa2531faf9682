// Package htmldom adapts golang.org/x/net/html parse trees to the dom.*
// host-collaborator interfaces, backed by andybalholm/cascadia for selector
// queries. It is the primary adapter exercised by this module's own test
// suite: a host with no live browser (no computed layout, no animation
// timeline) still needs to generate and resolve EIDs against static markup.
package htmldom

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/domanchor/eid/dom"
)

var nextDocID uint64

// Document wraps a parsed x/net/html tree.
type Document struct {
	root *html.Node
	body *html.Node
	head *html.Node
	id   uintptr
}

// Parse reads and parses an HTML document from r-like input already read
// into a string, building the Document and locating its head/body.
func Parse(source string) (*Document, error) {
	node, err := html.Parse(strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse: %w", err)
	}
	d := &Document{root: node, id: uintptr(atomic.AddUint64(&nextDocID, 1))}
	walk(node, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Body:
			if d.body == nil {
				d.body = n
			}
		case atom.Head:
			if d.head == nil {
				d.head = n
			}
		}
	})
	return d, nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// Root returns the document's root element (<html>, or the parse root if
// no <html> element was present).
func (d *Document) Root() dom.Element {
	root := d.root
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			root = c
			break
		}
	}
	return wrap(root, d)
}

// Body returns the document's <body>, or nil if absent.
func (d *Document) Body() dom.Element {
	if d.body == nil {
		return nil
	}
	return wrap(d.body, d)
}

// Head returns the document's <head>, or nil if absent.
func (d *Document) Head() dom.Element {
	if d.head == nil {
		return nil
	}
	return wrap(d.head, d)
}

// ID returns an identity value stable for this Document's lifetime.
func (d *Document) ID() uintptr { return d.id }

// Element adapts a single *html.Node as a dom.Element.
type Element struct {
	node *html.Node
	doc  *Document
}

func wrap(n *html.Node, doc *Document) *Element {
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: doc}
}

// elementOrNil returns nil (the interface value, not a typed nil pointer)
// when the wrapped node is nil — Parent/Children must not leak a non-nil
// dom.Element wrapping a nil *html.Node.
func elementOrNil(n *html.Node, doc *Document) dom.Element {
	if n == nil {
		return nil
	}
	return &Element{node: n, doc: doc}
}

func (e *Element) Tag() string { return strings.ToLower(e.node.Data) }

func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) Attributes() []string {
	names := make([]string, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		names = append(names, a.Key)
	}
	return names
}

func (e *Element) Classes() []string {
	v, ok := e.Attribute("class")
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return strings.Fields(v)
}

func (e *Element) Parent() dom.Element {
	p := e.node.Parent
	for p != nil && p.Type != html.ElementNode {
		p = p.Parent
	}
	return elementOrNil(p, e.doc)
}

func (e *Element) Children() []dom.Element {
	var out []dom.Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, wrap(c, e.doc))
		}
	}
	return out
}

func (e *Element) DirectText() string {
	var b strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func (e *Element) DescendantText() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

// Rect always reports ok=false: a static parse tree carries no layout
// engine, matching §5's tolerated "host cannot compute geometry" case.
func (e *Element) Rect() (dom.Rect, bool) { return dom.Rect{}, false }

// ComputedStyle always reports ok=false for the same reason as Rect; only
// the inline style attribute is considered, by Hidden below.
func (e *Element) ComputedStyle() (dom.Style, bool) { return dom.Style{}, false }

// Hidden reports the static signals available without a layout engine: the
// boolean "hidden" attribute, or an inline style turning the element off.
func (e *Element) Hidden() bool {
	if _, ok := e.Attribute("hidden"); ok {
		return true
	}
	style, ok := e.Attribute("style")
	if !ok {
		return false
	}
	style = strings.ToLower(style)
	return strings.Contains(style, "display:none") ||
		strings.Contains(style, "display: none") ||
		strings.Contains(style, "visibility:hidden") ||
		strings.Contains(style, "visibility: hidden")
}

func (e *Element) Document() dom.Document { return e.doc }

func (e *Element) Same(other dom.Element) bool {
	o, ok := other.(*Element)
	return ok && o != nil && o.node == e.node
}

// QueryEngine implements dom.QueryEngine using cascadia over parsed trees.
type QueryEngine struct{}

// NewQueryEngine builds a QueryEngine. There is no state to configure.
func NewQueryEngine() *QueryEngine { return &QueryEngine{} }

func (QueryEngine) Query(root dom.Element, selector string) ([]dom.Element, error) {
	e, ok := root.(*Element)
	if !ok {
		return nil, fmt.Errorf("htmldom: Query root is not an htmldom.Element")
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, fmt.Errorf("htmldom: invalid selector %q: %w", selector, err)
	}
	matches := cascadia.QueryAll(e.node, sel)
	if sel.Match(e.node) {
		// QueryAll searches descendants only; the root itself can match too.
		matches = append([]*html.Node{e.node}, matches...)
	}
	out := make([]dom.Element, 0, len(matches))
	for _, n := range matches {
		out = append(out, wrap(n, e.doc))
	}
	return out, nil
}
