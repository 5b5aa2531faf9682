// Package dom declares the host-collaborator interfaces the eid core
// consumes. Generation and resolution never talk to a concrete DOM library
// directly; they talk to these interfaces, which a host adapter (roddom,
// htmldom, or a caller's own) implements.
package dom

// Rect is an element's rendered bounding box, in the host's coordinate space.
type Rect struct {
	Top, Left, Width, Height float64
}

// Style is the subset of computed style the core needs for SVG animation
// detection (§4.3) — nothing else is consulted.
type Style struct {
	AnimationName      string
	TransitionProperty string
}

// Element is a single node in the host document tree.
type Element interface {
	// Tag returns the lowercase tag name, e.g. "div", "path".
	Tag() string
	// Attribute returns an attribute's raw value and whether it is present.
	Attribute(name string) (string, bool)
	// Attributes returns every attribute name present on the element.
	Attributes() []string
	// Classes returns the element's class list in source order.
	Classes() []string
	// Parent returns the element's parent, or nil at the document root.
	Parent() Element
	// Children returns the element's direct element children, in document order.
	Children() []Element
	// DirectText returns the concatenation of the element's direct text-node
	// children only (not descendant text).
	DirectText() string
	// DescendantText returns the concatenation of all text in the subtree.
	DescendantText() string
	// Rect returns the element's rendered bounding box. ok is false when the
	// host cannot compute geometry (detached node, non-visual host, etc).
	Rect() (r Rect, ok bool)
	// ComputedStyle returns the element's computed style. ok is false when
	// the host cannot evaluate style (matches §5's tolerated style-access
	// failure).
	ComputedStyle() (s Style, ok bool)
	// Hidden reports whether the host considers the element non-rendered
	// (display:none, visibility:hidden, hidden attribute, or equivalent).
	Hidden() bool
	// Document returns the owning document, used for cross-document identity
	// checks (§4.9).
	Document() Document
	// Same reports whether other refers to the same underlying node.
	Same(other Element) bool
}

// Document is a query root and a cross-document identity token.
type Document interface {
	// Root returns the document's root element (conventionally <html>).
	Root() Element
	// Body returns the document's body element, or nil if absent.
	Body() Element
	// Head returns the document's head element, or nil if absent.
	Head() Element
	// ID is an opaque identity value stable for the lifetime of the
	// in-memory document; two Documents loaded from the same markup are
	// still distinct identities.
	ID() uintptr
}

// QueryEngine executes a CSS-like selector (§6: tag, .class, #id,
// [attr="val"], descendant/child combinators, :nth-of-type, :nth-child)
// against a root and returns matches in document order.
type QueryEngine interface {
	Query(root Element, selector string) ([]Element, error)
}
