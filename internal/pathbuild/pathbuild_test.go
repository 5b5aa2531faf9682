package pathbuild

import (
	"strings"
	"testing"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/scoring"
)

type fakeElement struct {
	tag      string
	attrs    map[string]string
	classes  []string
	parent   *fakeElement
	children []*fakeElement
}

func (f *fakeElement) Tag() string { return f.tag }
func (f *fakeElement) Attribute(name string) (string, bool) {
	v, ok := f.attrs[name]
	return v, ok
}
func (f *fakeElement) Attributes() []string {
	names := make([]string, 0, len(f.attrs))
	for n := range f.attrs {
		names = append(names, n)
	}
	return names
}
func (f *fakeElement) Classes() []string { return f.classes }
func (f *fakeElement) Parent() dom.Element {
	if f.parent == nil {
		return nil
	}
	return f.parent
}
func (f *fakeElement) Children() []dom.Element {
	out := make([]dom.Element, len(f.children))
	for i, c := range f.children {
		out[i] = c
	}
	return out
}
func (f *fakeElement) DirectText() string               { return "" }
func (f *fakeElement) DescendantText() string           { return "" }
func (f *fakeElement) Rect() (dom.Rect, bool)           { return dom.Rect{}, false }
func (f *fakeElement) ComputedStyle() (dom.Style, bool) { return dom.Style{}, false }
func (f *fakeElement) Hidden() bool                     { return false }
func (f *fakeElement) Document() dom.Document           { return nil }
func (f *fakeElement) Same(other dom.Element) bool {
	o, ok := other.(*fakeElement)
	return ok && o == f
}

func link(parent *fakeElement, el *fakeElement) *fakeElement {
	el.parent = parent
	if parent != nil {
		parent.children = append(parent.children, el)
	}
	return el
}

func alwaysUnique(string) (int, error) { return 1, nil }

func TestBuild_SkipsPlainDivWithoutSemantics(t *testing.T) {
	form := &fakeElement{tag: "form", attrs: map[string]string{"id": "login"}}
	div := link(form, &fakeElement{tag: "div", attrs: map[string]string{}})
	button := link(div, &fakeElement{tag: "button", attrs: map[string]string{}})

	anchor := model.AnchorNode{Node: model.Node{Tag: "form", Semantics: model.Semantics{ID: "login"}}}
	b := New(nil, nil, scoring.DefaultWeights())
	result := b.Build(anchor, form, button, 10, alwaysUnique)

	if len(result.Path) != 0 {
		t.Errorf("expected the plain div to be filtered out of the path, got %d nodes", len(result.Path))
	}
	if strings.Contains(result.Selector, "div") {
		t.Errorf("selector = %q, should not mention the filtered div", result.Selector)
	}
}

func TestBuild_KeepsSemanticTag(t *testing.T) {
	main := &fakeElement{tag: "main"}
	nav := link(main, &fakeElement{tag: "nav"})
	span := link(nav, &fakeElement{tag: "span"})

	anchor := model.AnchorNode{Node: model.Node{Tag: "main"}}
	b := New(nil, nil, scoring.DefaultWeights())
	result := b.Build(anchor, main, span, 10, alwaysUnique)

	if len(result.Path) != 1 || result.Path[0].Tag != "nav" {
		t.Errorf("expected nav to survive filtering as a semantic tag, got %+v", result.Path)
	}
}

func TestBuild_ReinsertsSkippedDivWhenNotUnique(t *testing.T) {
	main := &fakeElement{tag: "main"}
	div := link(main, &fakeElement{tag: "div", attrs: map[string]string{}})
	span := link(div, &fakeElement{tag: "span"})

	anchor := model.AnchorNode{Node: model.Node{Tag: "main"}}

	calls := 0
	query := func(sel string) (int, error) {
		calls++
		if strings.Contains(sel, "div") {
			return 1, nil
		}
		return 2, nil // without the div, two spans would match
	}

	b := New(nil, nil, scoring.DefaultWeights())
	result := b.Build(anchor, main, span, 10, query)

	if !result.Unique {
		t.Fatal("expected reinsertion of the skipped div to achieve uniqueness")
	}
	if len(result.Path) != 1 || result.Path[0].Tag != "div" {
		t.Errorf("expected the div reinserted into the path, got %+v", result.Path)
	}
	if calls < 2 {
		t.Errorf("expected at least a without-div and a with-div query, got %d calls", calls)
	}
}

func TestBuild_PathDepthOverflowDegrades(t *testing.T) {
	anchor := &fakeElement{tag: "main"}
	a := link(anchor, &fakeElement{tag: "div"})
	bEl := link(a, &fakeElement{tag: "div"})
	cEl := link(bEl, &fakeElement{tag: "div"})
	target := link(cEl, &fakeElement{tag: "span"})

	anchorNode := model.AnchorNode{Node: model.Node{Tag: "main"}}
	builder := New(nil, nil, scoring.DefaultWeights())
	result := builder.Build(anchorNode, anchor, target, 1, alwaysUnique)

	if !result.Degraded || result.Reason != model.ReasonPathDepthOverflow {
		t.Errorf("expected path-depth-overflow degradation, got degraded=%v reason=%q", result.Degraded, result.Reason)
	}
}

func TestBuild_AdjacencyReflectsSkippedIntermediates(t *testing.T) {
	main := &fakeElement{tag: "main"}
	div := link(main, &fakeElement{tag: "div", attrs: map[string]string{}})
	span := link(div, &fakeElement{tag: "span"})

	anchor := model.AnchorNode{Node: model.Node{Tag: "main"}}
	b := New(nil, nil, scoring.DefaultWeights())
	result := b.Build(anchor, main, span, 10, alwaysUnique)

	if strings.Contains(result.Selector, "main > span") {
		t.Errorf("selector = %q, span is not a direct DOM child of main once div is skipped", result.Selector)
	}
	if !strings.Contains(result.Selector, "main span") {
		t.Errorf("selector = %q, want descendant combinator once the intermediate div is dropped", result.Selector)
	}
}
