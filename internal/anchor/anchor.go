// Package anchor implements the anchor finder of §4.4: walking ancestors
// from a target element upward, scoring each one, and choosing the semantic
// root an EID's path is built from.
package anchor

import (
	"strings"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/cache"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/scoring"
	"github.com/domanchor/eid/internal/semantics"
	"github.com/domanchor/eid/internal/stability"
)

var semanticAnchorTags = map[string]bool{
	"main": true, "nav": true, "header": true, "footer": true,
	"section": true, "article": true, "aside": true, "form": true,
	"dialog": true, "table": true, "ul": true, "ol": true, "dl": true,
	"fieldset": true, "figure": true,
}

var anchorRoles = map[string]bool{
	"main": true, "navigation": true, "banner": true, "contentinfo": true,
	"form": true, "search": true, "dialog": true, "region": true,
	"complementary": true,
}

// Result is the anchor finder's output: the chosen element, its computed
// node, and whether an anchor was found. A fallback to the document body or
// html still counts as found, with Node.Degraded set when nothing scored.
type Result struct {
	Element  dom.Element
	Node     model.AnchorNode
	Tier     scoring.Tier
	Depth    int
	Found    bool
}

// Finder walks ancestors and picks the highest-tier semantic root.
type Finder struct {
	classifier *stability.Classifier
	extractor  *semantics.Extractor
	weights    scoring.Weights
	cache      *cache.Cache
}

// New builds a Finder. Nil arguments fall back to package defaults.
func New(classifier *stability.Classifier, extractor *semantics.Extractor, weights scoring.Weights, c *cache.Cache) *Finder {
	if classifier == nil {
		classifier = stability.Default()
	}
	if extractor == nil {
		extractor = semantics.New(classifier, c)
	}
	if c == nil {
		c = cache.Default()
	}
	return &Finder{classifier: classifier, extractor: extractor, weights: weights, cache: c}
}

// Find walks target's ancestors and returns the chosen anchor, per the stop
// conditions of §4.4: a Tier-A candidate returns immediately; reaching
// maxPathDepth returns the best candidate seen; reaching the document body
// or html returns the best seen or that root itself (marked degraded if it
// scored nothing); an orphan target (no parent) returns Result{Found: false}.
// A body or html target has nothing above it to walk to and self-anchors
// instead (§8).
func (f *Finder) Find(target dom.Element, maxPathDepth int) Result {
	if cached, ok := f.cache.GetAnchor(target); ok {
		if !cached.Found {
			return Result{Found: false}
		}
		return Result{Element: cached.Element, Node: cached.Anchor, Found: true}
	}

	// §8: body/html targets have nothing above them to anchor to — they
	// self-anchor rather than walking off the top of the tree.
	if tag := strings.ToLower(target.Tag()); tag == "body" || tag == "html" {
		r := f.selfAnchor(target)
		f.remember(target, r)
		return r
	}

	parent := target.Parent()
	if parent == nil {
		f.cache.PutAnchor(target, cache.AnchorResult{Found: false})
		return Result{Found: false}
	}

	var best Result
	depth := 0
	var current dom.Element = parent

	for current != nil {
		depth++
		tier, hasLabel, hasStableID, testMarkers := f.classify(current)
		score := f.weights.AnchorScore(scoring.AnchorScoreInput{
			Tier: tier, HasLabel: hasLabel, HasStableID: hasStableID,
			TestMarkerCount: testMarkers, Depth: depth,
		})

		candidate := f.toResult(current, tier, score, depth, false)

		if tier == scoring.TierA {
			f.remember(target, candidate)
			return candidate
		}
		// A zero-scoring candidate (no tier, no bonuses) carries no signal
		// at all and must not block falling through to a degraded body
		// anchor — otherwise an arbitrary plain div "wins" by being first.
		if score > 0 && (!best.Found || score > best.Node.Score) {
			best = candidate
		}

		if isBody(current) || isHTML(current) {
			if !best.Found {
				root := f.toResult(current, scoring.TierNone, 0, depth, true)
				f.remember(target, root)
				return root
			}
			f.remember(target, best)
			return best
		}

		if depth >= maxPathDepth {
			f.remember(target, best)
			return best
		}

		current = current.Parent()
	}

	f.remember(target, best)
	return best
}

func (f *Finder) remember(target dom.Element, r Result) {
	f.cache.PutAnchor(target, cache.AnchorResult{Element: r.Element, Anchor: r.Node, Found: r.Found})
}

func (f *Finder) toResult(el dom.Element, tier scoring.Tier, score float64, depth int, degraded bool) Result {
	s := f.extractor.Extract(el, semantics.Options{})
	node := model.Node{Tag: strings.ToLower(el.Tag()), Semantics: s, Score: score}
	return Result{
		Element: el,
		Node:    model.AnchorNode{Node: node, Degraded: degraded},
		Tier:    tier,
		Depth:   depth,
		Found:   true,
	}
}

func (f *Finder) classify(el dom.Element) (tier scoring.Tier, hasLabel, hasStableID bool, testMarkers int) {
	tag := strings.ToLower(el.Tag())
	role, hasRole := el.Attribute("role")

	switch {
	case semanticAnchorTags[tag]:
		tier = scoring.TierA
	case hasRole && anchorRoles[role]:
		tier = scoring.TierB
	default:
		if f.hasTestMarker(el) || f.hasStableIdentifier(el) {
			tier = scoring.TierC
		}
	}

	if _, ok := el.Attribute("aria-label"); ok {
		hasLabel = true
	} else if _, ok := el.Attribute("aria-labelledby"); ok {
		hasLabel = true
	}

	if id, ok := el.Attribute("id"); ok && f.classifier.IsStableIdentifier(id) {
		hasStableID = true
	}

	for _, name := range el.Attributes() {
		if f.classifier.IsStableAttribute(name, mustValue(el, name)) && isTestMarkerName(name) {
			testMarkers++
		}
	}

	return tier, hasLabel, hasStableID, testMarkers
}

func (f *Finder) hasTestMarker(el dom.Element) bool {
	for _, name := range el.Attributes() {
		if isTestMarkerName(name) {
			return true
		}
	}
	return false
}

func (f *Finder) hasStableIdentifier(el dom.Element) bool {
	id, ok := el.Attribute("id")
	return ok && f.classifier.IsStableIdentifier(id)
}

func isTestMarkerName(name string) bool {
	switch name {
	case "data-testid", "data-test", "data-test-id", "data-cy", "data-qa", "data-automation-id":
		return true
	}
	return false
}

func mustValue(el dom.Element, name string) string {
	v, _ := el.Attribute(name)
	return v
}

func isBody(el dom.Element) bool {
	return strings.ToLower(el.Tag()) == "body"
}

func isHTML(el dom.Element) bool {
	return strings.ToLower(el.Tag()) == "html"
}

// selfAnchor handles a body/html target (§8): there is no ancestor to walk
// to, so the target anchors to itself with an empty path, degraded when it
// carries no semantic signal of its own.
func (f *Finder) selfAnchor(target dom.Element) Result {
	tier, hasLabel, hasStableID, testMarkers := f.classify(target)
	score := f.weights.AnchorScore(scoring.AnchorScoreInput{
		Tier: tier, HasLabel: hasLabel, HasStableID: hasStableID,
		TestMarkerCount: testMarkers, Depth: 0,
	})
	degraded := score <= 0
	return f.toResult(target, tier, score, 0, degraded)
}
