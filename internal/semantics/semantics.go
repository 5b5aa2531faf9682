// Package semantics implements the semantic extractor of §4.2: given an
// element, it produces the stable identity surface (id, classes, attributes,
// text, role, SVG fingerprint) the rest of the pipeline builds on.
package semantics

import (
	"sort"
	"strings"
	"unicode"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/cache"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/stability"
	"github.com/domanchor/eid/internal/svgfp"
)

var textBearingTags = map[string]bool{
	"button": true, "a": true, "label": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "span": true, "li": true, "th": true, "td": true,
	"dt": true, "dd": true, "legend": true, "figcaption": true, "summary": true,
}

const maxTextLen = 100

// Options configures extraction for a single element.
type Options struct {
	// IncludeUtilityClasses bypasses the class stability filter, emitting
	// every class on the element.
	IncludeUtilityClasses bool
	// IsTarget attaches the SVG fingerprint (§4.3) — only the target node
	// carries one, per §4.2.
	IsTarget bool
	// SameOriginBase is the document base URL used to relativize
	// same-origin URL-valued attributes.
	SameOriginBase string
}

// Extractor produces Semantics values, memoizing per-element through a
// shared cache.
type Extractor struct {
	classifier *stability.Classifier
	cache      *cache.Cache
}

// New builds an Extractor over classifier, memoizing through c. A nil
// classifier or cache falls back to package defaults.
func New(classifier *stability.Classifier, c *cache.Cache) *Extractor {
	if classifier == nil {
		classifier = stability.Default()
	}
	if c == nil {
		c = cache.Default()
	}
	return &Extractor{classifier: classifier, cache: c}
}

// Extract computes el's Semantics per §4.2.
func (x *Extractor) Extract(el dom.Element, opts Options) model.Semantics {
	if !opts.IsTarget {
		if s, ok := x.cache.GetSemantics(el); ok {
			return s
		}
	}

	var s model.Semantics

	if id, ok := el.Attribute("id"); ok && x.classifier.IsStableIdentifier(id) {
		s.ID = id
	}

	s.Classes = x.extractClasses(el, opts)
	s.Attributes = x.extractAttributes(el, opts)

	if role, ok := el.Attribute("role"); ok && role != "" {
		s.Role = role
	}

	if textBearingTags[strings.ToLower(el.Tag())] {
		if text := x.extractText(el); text != nil {
			s.Text = text
		}
	}

	if opts.IsTarget && isSVGElement(el) {
		fp := svgfp.Compute(el)
		s.SVG = &fp
	}

	if !opts.IsTarget {
		x.cache.PutSemantics(el, s)
	}
	return s
}

func (x *Extractor) extractClasses(el dom.Element, opts Options) []string {
	classes := el.Classes()
	if len(classes) == 0 {
		return nil
	}
	if opts.IncludeUtilityClasses {
		out := make([]string, len(classes))
		copy(out, classes)
		return out
	}
	var stable []string
	for _, c := range classes {
		if x.classifier.IsStableClass(c) {
			stable = append(stable, c)
		}
	}
	return stable
}

// attributePriority ranks included attribute names; lower is more
// significant. Unranked names fall to the back, ordered alphabetically.
var attributePriority = map[string]int{
	"id": 0, "role": 1, "name": 2, "type": 3, "href": 4, "for": 5,
	"alt": 6, "title": 7, "placeholder": 8,
}

func (x *Extractor) extractAttributes(el dom.Element, opts Options) map[string]string {
	names := el.Attributes()
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]string)
	for _, name := range names {
		value, ok := el.Attribute(name)
		if !ok {
			continue
		}
		if shouldSkipAttribute(name) {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		if x.classifier.IsURLValuedAttribute(name) {
			value = x.classifier.CleanURLValue(value, opts.SameOriginBase)
		} else if x.classifier.IsDynamicToken(value) {
			continue
		}
		if !x.classifier.IsStableAttribute(name, value) {
			continue
		}
		out[name] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// rankedAttributeNames returns out's keys ordered by attributePriority, for
// callers that need deterministic emission order (e.g. selector building).
func rankedAttributeNames(attrs map[string]string) []string {
	names := make([]string, 0, len(attrs))
	for n := range attrs {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, oki := attributePriority[names[i]]
		pj, okj := attributePriority[names[j]]
		switch {
		case oki && okj:
			if pi != pj {
				return pi < pj
			}
		case oki:
			return true
		case okj:
			return false
		}
		return names[i] < names[j]
	})
	return names
}

// RankedAttributeNames is the exported form used by downstream compilers
// that need a stable attribute emission order.
func RankedAttributeNames(attrs map[string]string) []string {
	return rankedAttributeNames(attrs)
}

func shouldSkipAttribute(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "on") {
		return true
	}
	if strings.HasPrefix(name, "ng-") || strings.HasPrefix(name, "_ng") {
		return true
	}
	if strings.HasPrefix(lower, "data-react") {
		return true
	}
	if strings.HasPrefix(lower, "data-v-") {
		return true
	}
	return false
}

func (x *Extractor) extractText(el dom.Element) *model.Text {
	raw := strings.TrimSpace(el.DirectText())
	if raw == "" {
		raw = strings.TrimSpace(el.DescendantText())
	}
	if raw == "" {
		return nil
	}
	normalized := normalizeWhitespace(raw)
	if normalized == "" {
		return nil
	}
	return &model.Text{
		Raw:        truncate(raw),
		Normalized: truncate(normalized),
		Mode:       model.TextExact,
	}
}

func normalizeWhitespace(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxTextLen {
		return s
	}
	return string(runes[:maxTextLen]) + "…"
}

func isSVGElement(el dom.Element) bool {
	switch strings.ToLower(el.Tag()) {
	case "svg", "path", "rect", "circle", "ellipse", "line", "polyline",
		"polygon", "g", "use":
		return true
	}
	return false
}
