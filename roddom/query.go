package roddom

import (
	"fmt"

	"github.com/domanchor/eid/dom"
)

// QueryEngine implements dom.QueryEngine over a live go-rod element, using
// the browser's own querySelectorAll (scoped with :scope) rather than a
// separate selector-matching library — unlike htmldom's parsed trees, a
// live page already has a CSS engine on hand.
type QueryEngine struct{}

// NewQueryEngine builds a QueryEngine. There is no state to configure.
func NewQueryEngine() *QueryEngine { return &QueryEngine{} }

func (QueryEngine) Query(root dom.Element, selector string) ([]dom.Element, error) {
	e, ok := root.(*Element)
	if !ok || e == nil {
		return nil, fmt.Errorf("roddom: Query root is not a roddom.Element")
	}
	matches, err := e.el.Elements(":scope " + selector)
	if err != nil {
		return nil, fmt.Errorf("roddom: invalid selector %q: %w", selector, err)
	}
	out := make([]dom.Element, 0, len(matches))
	for _, m := range matches {
		out = append(out, wrapElement(m, e.doc))
	}
	return out, nil
}
