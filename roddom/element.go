package roddom

import (
	"strings"

	"github.com/go-rod/rod"

	"github.com/domanchor/eid/dom"
)

// Element wraps a live *rod.Element.
type Element struct {
	el  *rod.Element
	doc *Document
}

func wrapElement(el *rod.Element, doc *Document) *Element {
	if el == nil {
		return nil
	}
	return &Element{el: el, doc: doc}
}

func elementOrNil(el *rod.Element, doc *Document) dom.Element {
	if el == nil {
		return nil
	}
	return &Element{el: el, doc: doc}
}

func (e *Element) Tag() string {
	res, err := e.el.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return ""
	}
	return res.Value.String()
}

func (e *Element) attributeMap() map[string]string {
	res, err := e.el.Eval(`() => {
		const attrs = {};
		for (const attr of this.attributes) {
			attrs[attr.name] = attr.value;
		}
		return attrs;
	}`)
	if err != nil {
		return nil
	}
	out := make(map[string]string)
	for k, v := range res.Value.Map() {
		out[k] = v.String()
	}
	return out
}

func (e *Element) Attribute(name string) (string, bool) {
	attrs := e.attributeMap()
	for k, v := range attrs {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

func (e *Element) Attributes() []string {
	attrs := e.attributeMap()
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		names = append(names, k)
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
	p, err := e.el.Parent()
	if err != nil {
		return nil
	}
	return elementOrNil(p, e.doc)
}

func (e *Element) Children() []dom.Element {
	children, err := e.el.Elements(":scope > *")
	if err != nil {
		return nil
	}
	out := make([]dom.Element, 0, len(children))
	for _, c := range children {
		out = append(out, wrapElement(c, e.doc))
	}
	return out
}

func (e *Element) DirectText() string {
	res, err := e.el.Eval(`() => Array.from(this.childNodes)
		.filter(n => n.nodeType === 3)
		.map(n => n.textContent)
		.join('')`)
	if err != nil {
		return ""
	}
	return res.Value.String()
}

func (e *Element) DescendantText() string {
	res, err := e.el.Eval(`() => this.textContent || ''`)
	if err != nil {
		return ""
	}
	return res.Value.String()
}

// Rect computes the element's bounding box from its content quad, the same
// signal honeypot.go's position extraction used for off-screen/zero-size
// checks, here exposed generally instead of folded into a single honeypot
// verdict.
func (e *Element) Rect() (dom.Rect, bool) {
	shape, err := e.el.Shape()
	if err != nil || shape == nil || len(shape.Quads) == 0 {
		return dom.Rect{}, false
	}
	q := shape.Quads[0]
	left, top := q[0], q[1]
	width := q[2] - q[0]
	height := q[5] - q[1]
	return dom.Rect{Top: top, Left: left, Width: width, Height: height}, true
}

// ComputedStyle reads only the two properties the SVG-animation check needs
// (§4.3), the same getComputedStyle-eval idiom honeypot.go used for its
// wider style sweep.
func (e *Element) ComputedStyle() (dom.Style, bool) {
	res, err := e.el.Eval(`() => {
		const s = window.getComputedStyle(this);
		return { animationName: s.animationName, transitionProperty: s.transitionProperty };
	}`)
	if err != nil {
		return dom.Style{}, false
	}
	m := res.Value.Map()
	return dom.Style{
		AnimationName:      m["animationName"].String(),
		TransitionProperty: m["transitionProperty"].String(),
	}, true
}

// Hidden re-derives the occlusion signals honeypot.go's
// honeypot_css_hidden/honeypot_css_invisible/honeypot_opacity_hidden rules
// checked, directly in Go rather than as Mangle facts — this module has no
// rule engine to evaluate them against.
func (e *Element) Hidden() bool {
	if _, ok := e.Attribute("hidden"); ok {
		return true
	}
	res, err := e.el.Eval(`() => {
		const s = window.getComputedStyle(this);
		return { display: s.display, visibility: s.visibility, opacity: s.opacity };
	}`)
	if err != nil {
		return false
	}
	m := res.Value.Map()
	if m["display"].String() == "none" {
		return true
	}
	if m["visibility"].String() == "hidden" {
		return true
	}
	if m["opacity"].String() == "0" {
		return true
	}
	return false
}

func (e *Element) Document() dom.Document { return e.doc }

func (e *Element) Same(other dom.Element) bool {
	o, ok := other.(*Element)
	if !ok || o == nil || o.el == nil || e.el == nil {
		return false
	}
	return o.el.Object.ObjectID == e.el.Object.ObjectID
}
