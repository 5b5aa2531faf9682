package matcher

import (
	"testing"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
)

type fakeElement struct {
	tag         string
	attrs       map[string]string
	classes     []string
	directText  string
	descText    string
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
func (f *fakeElement) Classes() []string               { return f.classes }
func (f *fakeElement) Parent() dom.Element              { return nil }
func (f *fakeElement) Children() []dom.Element          { return nil }
func (f *fakeElement) DirectText() string               { return f.directText }
func (f *fakeElement) DescendantText() string           { return f.descText }
func (f *fakeElement) Rect() (dom.Rect, bool)           { return dom.Rect{}, false }
func (f *fakeElement) ComputedStyle() (dom.Style, bool) { return dom.Style{}, false }
func (f *fakeElement) Hidden() bool                     { return false }
func (f *fakeElement) Document() dom.Document           { return nil }
func (f *fakeElement) Same(other dom.Element) bool {
	o, ok := other.(*fakeElement)
	return ok && o == f
}

func TestMatch_IDFilters(t *testing.T) {
	want := model.Semantics{ID: "login"}
	candidates := []dom.Element{
		&fakeElement{tag: "form", attrs: map[string]string{"id": "login"}},
		&fakeElement{tag: "form", attrs: map[string]string{"id": "other"}},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(result.Candidates))
	}
}

func TestMatch_ClassesAllRequired(t *testing.T) {
	want := model.Semantics{Classes: []string{"btn", "primary"}}
	candidates := []dom.Element{
		&fakeElement{tag: "button", classes: []string{"btn", "primary", "large"}},
		&fakeElement{tag: "button", classes: []string{"btn"}},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(result.Candidates))
	}
}

func TestMatch_AttributesCleanedBeforeCompare(t *testing.T) {
	want := model.Semantics{Attributes: map[string]string{"href": "/page#section"}}
	candidates := []dom.Element{
		&fakeElement{tag: "a", attrs: map[string]string{"href": "/page?session=xyz#section"}},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 {
		t.Fatalf("expected URL-cleaned href to match, got %d candidates", len(result.Candidates))
	}
}

func TestMatch_TextExactStrict(t *testing.T) {
	want := model.Semantics{Text: &model.Text{Normalized: "Sign In", Mode: model.TextExact}}
	candidates := []dom.Element{
		&fakeElement{tag: "button", directText: "Sign In"},
		&fakeElement{tag: "button", directText: "Sign Up"},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 || result.Relaxed {
		t.Fatalf("got %d candidates relaxed=%v, want 1 strict", len(result.Candidates), result.Relaxed)
	}
}

func TestMatch_TextRelaxedFallback(t *testing.T) {
	want := model.Semantics{Text: &model.Text{Normalized: "Sign In", Mode: model.TextExact}}
	candidates := []dom.Element{
		&fakeElement{tag: "button", directText: "SignIn"},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 || !result.Relaxed {
		t.Fatalf("got %d candidates relaxed=%v, want 1 relaxed", len(result.Candidates), result.Relaxed)
	}
}

func TestMatch_TextPartialMode(t *testing.T) {
	want := model.Semantics{Text: &model.Text{Normalized: "Sign", Mode: model.TextPartial}}
	candidates := []dom.Element{
		&fakeElement{tag: "button", directText: "Sign In Now"},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(result.Candidates))
	}
}

func TestMatch_NoTextFieldMatchesAnyText(t *testing.T) {
	want := model.Semantics{ID: "x"}
	candidates := []dom.Element{
		&fakeElement{tag: "div", attrs: map[string]string{"id": "x"}, directText: "whatever"},
	}
	m := New(nil, nil)
	result := m.Match(candidates, want)
	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(result.Candidates))
	}
}
