package constraints

import (
	"testing"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
)

type fakeElement struct {
	tag      string
	descText string
	rect     dom.Rect
	rectOK   bool
	hidden   bool
}

func (f *fakeElement) Tag() string                      { return f.tag }
func (f *fakeElement) Attribute(string) (string, bool)  { return "", false }
func (f *fakeElement) Attributes() []string              { return nil }
func (f *fakeElement) Classes() []string                 { return nil }
func (f *fakeElement) Parent() dom.Element                { return nil }
func (f *fakeElement) Children() []dom.Element             { return nil }
func (f *fakeElement) DirectText() string                { return "" }
func (f *fakeElement) DescendantText() string            { return f.descText }
func (f *fakeElement) Rect() (dom.Rect, bool)            { return f.rect, f.rectOK }
func (f *fakeElement) ComputedStyle() (dom.Style, bool) { return dom.Style{}, false }
func (f *fakeElement) Hidden() bool                      { return f.hidden }
func (f *fakeElement) Document() dom.Document             { return nil }
func (f *fakeElement) Same(other dom.Element) bool {
	o, ok := other.(*fakeElement)
	return ok && o == f
}

func TestTextProximity_FiltersByDistance(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div", descText: "Total: $42.00"},
		&fakeElement{tag: "div", descText: "completely unrelated text block"},
	}
	c := model.Constraint{Kind: model.ConstraintTextProximity, Reference: "Total: $42.00", MaxDistance: 2}
	out := Evaluate(candidates, c, "")
	if len(out) != 1 {
		t.Fatalf("got %d candidates, want 1", len(out))
	}
}

func TestTextProximity_EmptyResultFallsBackToOriginal(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div", descText: "nothing close"},
	}
	c := model.Constraint{Kind: model.ConstraintTextProximity, Reference: "Total: $42.00", MaxDistance: 1}
	out := Evaluate(candidates, c, "")
	if len(out) != 1 {
		t.Fatalf("got %d candidates, want fallback to original 1", len(out))
	}
}

func TestPosition_TopMostPicksSmallestTop(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div", rect: dom.Rect{Top: 50}, rectOK: true},
		&fakeElement{tag: "div", rect: dom.Rect{Top: 10}, rectOK: true},
	}
	c := model.Constraint{Kind: model.ConstraintPosition, Strategy: model.PositionTopMost}
	out := Evaluate(candidates, c, "")
	if len(out) != 1 || out[0] != candidates[1] {
		t.Fatalf("expected the Top:10 candidate singled out")
	}
}

func TestPosition_SkipsGeometryFailures(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div", rectOK: false},
		&fakeElement{tag: "div", rect: dom.Rect{Top: 5}, rectOK: true},
	}
	c := model.Constraint{Kind: model.ConstraintPosition, Strategy: model.PositionTopMost}
	out := Evaluate(candidates, c, "")
	if len(out) != 1 || out[0] != candidates[1] {
		t.Fatalf("expected geometry-failure candidate skipped")
	}
}

func TestPosition_UnknownStrategyDefaultsFirstInDOM(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div"},
		&fakeElement{tag: "span"},
	}
	c := model.Constraint{Kind: model.ConstraintPosition, Strategy: model.PositionStrategy("unknown")}
	out := Evaluate(candidates, c, "")
	if len(out) != 1 || out[0] != candidates[0] {
		t.Fatalf("expected first-in-dom candidate")
	}
}

func TestVisibility_PrefersVisibleNonZeroArea(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div", hidden: true},
		&fakeElement{tag: "div", rect: dom.Rect{Width: 10, Height: 10}, rectOK: true},
	}
	c := model.Constraint{Kind: model.ConstraintVisibility}
	out := Evaluate(candidates, c, "")
	if len(out) != 1 || out[0] != candidates[1] {
		t.Fatalf("expected hidden candidate excluded")
	}
}

func TestVisibility_FallsBackWhenAllHidden(t *testing.T) {
	candidates := []dom.Element{
		&fakeElement{tag: "div", hidden: true},
		&fakeElement{tag: "div", hidden: true},
	}
	c := model.Constraint{Kind: model.ConstraintVisibility}
	out := Evaluate(candidates, c, "")
	if len(out) != 2 {
		t.Fatalf("expected fallback to original set when all hidden, got %d", len(out))
	}
}

func TestSortByPriority_DescendingStable(t *testing.T) {
	cs := []model.Constraint{
		{Kind: model.ConstraintVisibility, Priority: 1},
		{Kind: model.ConstraintPosition, Priority: 5},
		{Kind: model.ConstraintTextProximity, Priority: 5},
	}
	sorted := SortByPriority(cs)
	if sorted[0].Priority != 5 || sorted[1].Priority != 5 || sorted[2].Priority != 1 {
		t.Fatalf("unexpected priority order: %+v", sorted)
	}
	if sorted[0].Kind != model.ConstraintPosition || sorted[1].Kind != model.ConstraintTextProximity {
		t.Fatalf("expected stable order among equal priorities, got %+v", sorted)
	}
}
