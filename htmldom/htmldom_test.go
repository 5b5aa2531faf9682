package htmldom

import "testing"

const sampleHTML = `
<!DOCTYPE html>
<html>
<head><title>Sample</title></head>
<body>
<form id="login">
	<div>
		<button type="submit">Sign In</button>
	</div>
</form>
<ul class="menu">
	<li>One</li>
	<li>Two</li>
</ul>
</body>
</html>
`

func TestParse_LocatesHeadAndBody(t *testing.T) {
	doc, err := Parse(sampleHTML)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if doc.Body() == nil {
		t.Fatal("expected a body element")
	}
	if doc.Head() == nil {
		t.Fatal("expected a head element")
	}
}

func TestElement_TagAndAttribute(t *testing.T) {
	doc, _ := Parse(sampleHTML)
	qe := NewQueryEngine()
	matches, err := qe.Query(doc.Root(), `form[id="login"]`)
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].Tag() != "form" {
		t.Errorf("tag = %q, want form", matches[0].Tag())
	}
	if id, ok := matches[0].Attribute("id"); !ok || id != "login" {
		t.Errorf("id attribute = %q, ok=%v", id, ok)
	}
}

func TestElement_ChildrenAndParent(t *testing.T) {
	doc, _ := Parse(sampleHTML)
	qe := NewQueryEngine()
	matches, _ := qe.Query(doc.Root(), "button")
	if len(matches) != 1 {
		t.Fatalf("got %d button matches, want 1", len(matches))
	}
	button := matches[0]
	if button.DirectText() != "Sign In" {
		t.Errorf("direct text = %q, want Sign In", button.DirectText())
	}
	parent := button.Parent()
	if parent == nil || parent.Tag() != "div" {
		t.Fatalf("expected parent div, got %+v", parent)
	}
	if kids := parent.Children(); len(kids) != 1 || !kids[0].Same(button) {
		t.Errorf("parent div has %d element children, want just the button", len(kids))
	}
	grandparent := parent.Parent()
	if grandparent == nil || grandparent.Tag() != "form" {
		t.Fatalf("expected grandparent form, got %+v", grandparent)
	}
}

func TestElement_ClassesSplitOnWhitespace(t *testing.T) {
	doc, _ := Parse(sampleHTML)
	qe := NewQueryEngine()
	matches, _ := qe.Query(doc.Root(), "ul")
	if len(matches) != 1 {
		t.Fatalf("got %d ul matches, want 1", len(matches))
	}
	classes := matches[0].Classes()
	if len(classes) != 1 || classes[0] != "menu" {
		t.Errorf("classes = %v, want [menu]", classes)
	}
}

func TestQueryEngine_DescendantCombinator(t *testing.T) {
	doc, _ := Parse(sampleHTML)
	qe := NewQueryEngine()
	matches, err := qe.Query(doc.Root(), "form button")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches for descendant combinator, want 1", len(matches))
	}
}

func TestElement_HiddenAttribute(t *testing.T) {
	doc, _ := Parse(`<html><body><div hidden>x</div><div>y</div></body></html>`)
	qe := NewQueryEngine()
	matches, _ := qe.Query(doc.Root(), "div")
	if len(matches) != 2 {
		t.Fatalf("got %d divs, want 2", len(matches))
	}
	if !matches[0].Hidden() {
		t.Error("expected first div to be hidden")
	}
	if matches[1].Hidden() {
		t.Error("expected second div to be visible")
	}
}

func TestDocument_IDDistinctAcrossParses(t *testing.T) {
	doc1, _ := Parse(sampleHTML)
	doc2, _ := Parse(sampleHTML)
	if doc1.ID() == doc2.ID() {
		t.Error("expected distinct document identities across separate parses")
	}
}

func TestElement_Same(t *testing.T) {
	doc, _ := Parse(sampleHTML)
	qe := NewQueryEngine()
	m1, _ := qe.Query(doc.Root(), "form")
	m2, _ := qe.Query(doc.Root(), "form")
	if !m1[0].Same(m2[0]) {
		t.Error("expected two queries for the same node to report Same")
	}
}
