// Package matcher implements the semantics matcher of §4.7: filtering a
// candidate element list down to those matching every semantic field an EID
// node carries.
package matcher

import (
	"strings"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/semantics"
	"github.com/domanchor/eid/internal/stability"
	"github.com/domanchor/eid/internal/svgfp"
)

// Matcher filters candidates against a Semantics value.
type Matcher struct {
	classifier *stability.Classifier
	extractor  *semantics.Extractor
}

// New builds a Matcher. Nil arguments fall back to package defaults.
func New(classifier *stability.Classifier, extractor *semantics.Extractor) *Matcher {
	if classifier == nil {
		classifier = stability.Default()
	}
	if extractor == nil {
		extractor = semantics.New(classifier, nil)
	}
	return &Matcher{classifier: classifier, extractor: extractor}
}

// Result reports whether relaxed text matching was needed to produce a
// non-empty match (§4.7's "relaxed" degradation tier).
type Result struct {
	Candidates []dom.Element
	Relaxed    bool
}

// Match returns the sublist of candidates matching every field present on
// want. If strict matching on text yields nothing but a relaxed
// (whitespace-collapsed) comparison would, the relaxed tier is tried and its
// result — if non-empty — is returned with Relaxed set.
func (m *Matcher) Match(candidates []dom.Element, want model.Semantics) Result {
	strict := m.filter(candidates, want, false)
	if len(strict) > 0 || want.Text == nil {
		return Result{Candidates: strict}
	}
	relaxed := m.filter(candidates, want, true)
	if len(relaxed) > 0 {
		return Result{Candidates: relaxed, Relaxed: true}
	}
	return Result{Candidates: strict}
}

func (m *Matcher) filter(candidates []dom.Element, want model.Semantics, relaxedText bool) []dom.Element {
	var out []dom.Element
	for _, c := range candidates {
		if m.matches(c, want, relaxedText) {
			out = append(out, c)
		}
	}
	return out
}

func (m *Matcher) matches(el dom.Element, want model.Semantics, relaxedText bool) bool {
	if want.ID != "" {
		id, ok := el.Attribute("id")
		if !ok || id != want.ID {
			return false
		}
	}

	for _, class := range want.Classes {
		if !hasClass(el, class) {
			return false
		}
	}

	for name, value := range want.Attributes {
		candidateValue, ok := el.Attribute(name)
		if !ok {
			return false
		}
		if m.classifier.IsURLValuedAttribute(name) {
			candidateValue = m.classifier.CleanURLValue(candidateValue, "")
		}
		if candidateValue != value {
			return false
		}
	}

	if want.Role != "" {
		role, ok := el.Attribute("role")
		if !ok || role != want.Role {
			return false
		}
	}

	if want.Text != nil && !m.matchesText(el, want.Text, relaxedText) {
		return false
	}

	if want.SVG != nil && !m.matchesSVG(el, want.SVG) {
		return false
	}

	return true
}

func hasClass(el dom.Element, class string) bool {
	for _, c := range el.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

func (m *Matcher) matchesText(el dom.Element, want *model.Text, relaxed bool) bool {
	direct := strings.TrimSpace(el.DirectText())
	candidate := direct
	if candidate == "" {
		candidate = strings.TrimSpace(el.DescendantText())
	}

	wantNorm := want.Normalized
	candNorm := normalize(candidate)
	if relaxed {
		wantNorm = collapse(wantNorm)
		candNorm = collapse(candNorm)
	}

	switch want.Mode {
	case model.TextPartial:
		return strings.Contains(candNorm, wantNorm)
	default:
		return candNorm == wantNorm
	}
}

func normalize(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func (m *Matcher) matchesSVG(el dom.Element, want *model.Fingerprint) bool {
	candidate := svgfp.Compute(el)
	if candidate.Shape != want.Shape {
		return false
	}
	if want.DHash != "" && candidate.DHash != want.DHash {
		return false
	}
	if want.GeomHash != "" && candidate.GeomHash != want.GeomHash {
		return false
	}
	if want.TitleText != "" && candidate.TitleText != want.TitleText {
		return false
	}
	return true
}
