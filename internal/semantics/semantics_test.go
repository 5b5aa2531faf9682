package semantics

import (
	"testing"

	"github.com/domanchor/eid/dom"
)

type fakeElement struct {
	tag        string
	attrs      map[string]string
	classes    []string
	parent     dom.Element
	children   []dom.Element
	directText string
	descText   string
	rect       dom.Rect
	rectOK     bool
	style      dom.Style
	styleOK    bool
	hidden     bool
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
func (f *fakeElement) Classes() []string         { return f.classes }
func (f *fakeElement) Parent() dom.Element       { return f.parent }
func (f *fakeElement) Children() []dom.Element   { return f.children }
func (f *fakeElement) DirectText() string        { return f.directText }
func (f *fakeElement) DescendantText() string    { return f.descText }
func (f *fakeElement) Rect() (dom.Rect, bool)    { return f.rect, f.rectOK }
func (f *fakeElement) ComputedStyle() (dom.Style, bool) { return f.style, f.styleOK }
func (f *fakeElement) Hidden() bool              { return f.hidden }
func (f *fakeElement) Document() dom.Document    { return nil }
func (f *fakeElement) Same(other dom.Element) bool {
	o, ok := other.(*fakeElement)
	return ok && o == f
}

func TestExtract_StableIDEmitted(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", attrs: map[string]string{"id": "login-form"}}
	s := x.Extract(el, Options{})
	if s.ID != "login-form" {
		t.Errorf("ID = %q, want login-form", s.ID)
	}
}

func TestExtract_DynamicIDOmitted(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", attrs: map[string]string{"id": "radix-:r1:-trigger"}}
	s := x.Extract(el, Options{})
	if s.ID != "" {
		t.Errorf("ID = %q, want omitted dynamic id", s.ID)
	}
}

func TestExtract_ClassesFilteredByDefault(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", classes: []string{"flex", "login-form", "sc-bdVaJa"}}
	s := x.Extract(el, Options{})
	if len(s.Classes) != 1 || s.Classes[0] != "login-form" {
		t.Errorf("Classes = %v, want only [login-form]", s.Classes)
	}
}

func TestExtract_IncludeUtilityClassesBypassesFilter(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", classes: []string{"flex", "login-form"}}
	s := x.Extract(el, Options{IncludeUtilityClasses: true})
	if len(s.Classes) != 2 {
		t.Errorf("Classes = %v, want both classes with IncludeUtilityClasses", s.Classes)
	}
}

func TestExtract_SkipsEventHandlersAndFrameworkNoise(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", attrs: map[string]string{
		"onclick":    "doThing()",
		"ng-model":   "x",
		"_ngcontent": "abc",
		"data-reactid": "123",
		"data-v-7ba5bd90": "",
		"data-section": "pricing",
	}}
	s := x.Extract(el, Options{})
	for _, skipped := range []string{"onclick", "ng-model", "_ngcontent", "data-reactid", "data-v-7ba5bd90"} {
		if _, ok := s.Attributes[skipped]; ok {
			t.Errorf("attribute %q should have been skipped", skipped)
		}
	}
	if _, ok := s.Attributes["data-section"]; !ok {
		t.Error("data-section should survive extraction")
	}
}

func TestExtract_URLValueCleaned(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "a", attrs: map[string]string{"href": "/page?session=xyz#section"}}
	s := x.Extract(el, Options{})
	if s.Attributes["href"] != "/page#section" {
		t.Errorf("href = %q, want /page#section", s.Attributes["href"])
	}
}

func TestExtract_DynamicValueOmitted(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", attrs: map[string]string{"data-count": "undefined"}}
	s := x.Extract(el, Options{})
	if _, ok := s.Attributes["data-count"]; ok {
		t.Error("dynamic-valued attribute must be omitted")
	}
}

func TestExtract_RoleExtracted(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", attrs: map[string]string{"role": "dialog"}}
	s := x.Extract(el, Options{})
	if s.Role != "dialog" {
		t.Errorf("Role = %q, want dialog", s.Role)
	}
}

func TestExtract_TextBearingTagCollectsDirectText(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "button", directText: "  Submit  "}
	s := x.Extract(el, Options{})
	if s.Text == nil || s.Text.Normalized != "Submit" {
		t.Fatalf("Text = %+v, want normalized Submit", s.Text)
	}
}

func TestExtract_TextBearingTagFallsBackToDescendantText(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "button", directText: "", descText: "Submit now"}
	s := x.Extract(el, Options{})
	if s.Text == nil || s.Text.Normalized != "Submit now" {
		t.Fatalf("Text = %+v, want descendant text fallback", s.Text)
	}
}

func TestExtract_NonTextBearingTagOmitsText(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "div", directText: "Submit"}
	s := x.Extract(el, Options{})
	if s.Text != nil {
		t.Errorf("Text = %+v, want nil for non-text-bearing tag", s.Text)
	}
}

func TestExtract_TextTruncatedAt100(t *testing.T) {
	x := New(nil, nil)
	long := ""
	for i := 0; i < 120; i++ {
		long += "a"
	}
	el := &fakeElement{tag: "p", directText: long}
	s := x.Extract(el, Options{})
	if s.Text == nil {
		t.Fatal("expected text")
	}
	runes := []rune(s.Text.Raw)
	if len(runes) != 101 || runes[100] != '…' {
		t.Errorf("Raw truncation = %q (len %d), want 100 chars + ellipsis", s.Text.Raw, len(runes))
	}
}

func TestExtract_SVGFingerprintOnlyOnTarget(t *testing.T) {
	x := New(nil, nil)
	el := &fakeElement{tag: "path", attrs: map[string]string{"d": "M0 0 L1 1"}}

	notTarget := x.Extract(el, Options{IsTarget: false})
	if notTarget.SVG != nil {
		t.Error("non-target SVG element must not carry a fingerprint")
	}

	target := x.Extract(el, Options{IsTarget: true})
	if target.SVG == nil {
		t.Fatal("target SVG element must carry a fingerprint")
	}
	if target.SVG.DHash == "" {
		t.Error("expected a non-empty dHash for a path with d attribute")
	}
}
