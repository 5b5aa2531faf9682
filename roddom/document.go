package roddom

import (
	"sync/atomic"

	"github.com/go-rod/rod"

	"github.com/domanchor/eid/dom"
)

var nextDocID uint64

// Document wraps a live *rod.Page.
type Document struct {
	page *rod.Page
	id   uintptr
}

func wrapDocument(page *rod.Page) *Document {
	return &Document{page: page, id: uintptr(atomic.AddUint64(&nextDocID, 1))}
}

// Page returns the underlying go-rod page, for callers that need direct
// access (navigation, screenshots) beyond the dom.Document surface.
func (d *Document) Page() *rod.Page { return d.page }

// Root returns <html>, or nil if the page has none.
func (d *Document) Root() dom.Element {
	el, err := d.page.Element("html")
	if err != nil {
		return nil
	}
	return wrapElement(el, d)
}

// Body returns <body>, or nil if absent.
func (d *Document) Body() dom.Element {
	el, err := d.page.Element("body")
	if err != nil {
		return nil
	}
	return wrapElement(el, d)
}

// Head returns <head>, or nil if absent.
func (d *Document) Head() dom.Element {
	el, err := d.page.Element("head")
	if err != nil {
		return nil
	}
	return wrapElement(el, d)
}

// ID returns an identity value stable for this Document's lifetime. Two
// Documents wrapping the same underlying page navigated twice (e.g. via
// Session.Open called twice) are still distinct identities, matching
// htmldom's contract.
func (d *Document) ID() uintptr { return d.id }
