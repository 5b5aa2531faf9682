// Package pathbuild implements the path builder of §4.5: constructing the
// ordered, filtered chain of intermediate nodes between an anchor and a
// target, and driving the selector compiler's uniqueness check to decide
// whether skipped intermediates need reinserting.
package pathbuild

import (
	"strings"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/scoring"
	"github.com/domanchor/eid/internal/selector"
	"github.com/domanchor/eid/internal/semantics"
	"github.com/domanchor/eid/internal/stability"
)

// Result is the path builder's output: the selector that ended up unique (or
// the best attempt if none did), the chain actually used to build it, and
// whether the traversal overflowed maxPathDepth.
type Result struct {
	Selector string
	Path     []model.Node
	Target   model.Node
	Unique   bool
	Degraded bool
	Reason   model.DegradationReason
}

// candidate is one intermediate element between anchor and target, carrying
// its computed node and inclusion decision.
type candidate struct {
	element dom.Element
	node    model.Node
	include bool
}

// Builder walks target→anchor and assembles the filtered path.
type Builder struct {
	classifier            *stability.Classifier
	extractor             *semantics.Extractor
	weights               scoring.Weights
	includeUtilityClasses bool
}

// SetIncludeUtilityClasses controls whether the target node's semantics
// bypass the class stability filter, mirroring the generator's
// IncludeUtilityClasses option. Intermediates are never extracted with
// utility classes included — they are only ever kept for genuine semantic
// content (§4.5 shouldInclude).
func (b *Builder) SetIncludeUtilityClasses(v bool) { b.includeUtilityClasses = v }

// New builds a Builder. Nil arguments fall back to package defaults.
func New(classifier *stability.Classifier, extractor *semantics.Extractor, weights scoring.Weights) *Builder {
	if classifier == nil {
		classifier = stability.Default()
	}
	if extractor == nil {
		extractor = semantics.New(classifier, nil)
	}
	return &Builder{classifier: classifier, extractor: extractor, weights: weights}
}

// Query executes a compiled selector against a resolution root, used both by
// the selector compiler's own ladder and by this package's own uniqueness
// check in step 4/5. A query-engine exception is treated as non-unique.
type Query func(selector string) (count int, err error)

// Build constructs the filtered anchor→target path (§4.5) and compiles a
// selector for it, reinserting skipped intermediates as needed to reach
// uniqueness.
func (b *Builder) Build(anchor model.AnchorNode, anchorEl, target dom.Element, maxPathDepth int, query Query) Result {
	// §8: a self-anchored target (body/html) has no intermediates to walk —
	// collect assumes the anchor sits strictly above the target and would
	// otherwise "walk off the top" looking for an anchor it will never meet.
	if anchorEl != nil && target != nil && anchorEl.Same(target) {
		return b.buildSelfAnchor(anchor, target, query)
	}

	intermediates, overflowed := b.collect(anchorEl, target, maxPathDepth)

	targetNode := b.nodeFor(target)
	result := b.tryCompile(anchor, anchorEl, included(intermediates), target, targetNode, query)

	if !result.Unique {
		result = b.reinsertSkipped(anchor, anchorEl, intermediates, target, targetNode, query)
	}

	if overflowed {
		result.Degraded = true
		result.Reason = model.ReasonPathDepthOverflow
	}
	result.Target = targetNode
	return result
}

// buildSelfAnchor compiles a selector for the target alone, empty path,
// when the anchor and target are the same element (§8).
func (b *Builder) buildSelfAnchor(anchor model.AnchorNode, target dom.Element, query Query) Result {
	targetNode := b.nodeFor(target)
	targetLink := selector.ChainLink{Node: targetNode}
	sel := selector.Compile(anchor, nil, targetLink, b.classifier, selectorQuery(query))
	count, err := safeQuery(query, sel)
	return Result{Selector: sel, Path: nil, Target: targetNode, Unique: err == nil && count == 1}
}

// included returns the subsequence of intermediates currently marked
// include, preserving their original target→anchor order.
func included(intermediates []*candidate) []*candidate {
	var out []*candidate
	for _, c := range intermediates {
		if c.include {
			out = append(out, c)
		}
	}
	return out
}

// collect walks up from target to anchorEl, returning the intermediate
// elements (exclusive of both endpoints) in target→anchor order, each
// annotated with its shouldInclude decision (§4.5 steps 1-2).
func (b *Builder) collect(anchorEl, target dom.Element, maxPathDepth int) (out []*candidate, overflowed bool) {
	current := target.Parent()
	depth := 0
	for current != nil && !current.Same(anchorEl) {
		depth++
		s := b.extractor.Extract(current, semantics.Options{})
		out = append(out, &candidate{
			element: current,
			node: model.Node{
				Tag:          strings.ToLower(current.Tag()),
				Semantics:    s,
				Score:        b.weights.ElementScore(s),
				SiblingIndex: siblingIndex(current),
			},
			include: shouldInclude(current.Tag(), s),
		})
		if depth > maxPathDepth {
			overflowed = true
		}
		current = current.Parent()
	}
	if current == nil {
		// Walked off the top without meeting the anchor: the intermediates
		// collected are unreliable relative to the declared anchor.
		return nil, true
	}
	return out, overflowed
}

// shouldInclude keeps any semantically named tag, or any element whose
// extracted semantics are non-empty; plain divs/spans with nothing to say
// are discarded (§4.5 step 2).
func shouldInclude(tag string, s model.Semantics) bool {
	tag = strings.ToLower(tag)
	if tag != "div" && tag != "span" {
		return true
	}
	return !s.Empty()
}

func (b *Builder) nodeFor(el dom.Element) model.Node {
	s := b.extractor.Extract(el, semantics.Options{IsTarget: true, IncludeUtilityClasses: b.includeUtilityClasses})
	return model.Node{
		Tag:          strings.ToLower(el.Tag()),
		Semantics:    s,
		Score:        b.weights.ElementScore(s),
		SiblingIndex: siblingIndex(el),
	}
}

// siblingIndex returns el's 1-based position among its parent's element
// children sharing its tag. A single stored index serves both nth-of-type
// (its natural meaning) and nth-child numbering for table row/cell chains,
// where same-tag runs and full-sibling runs coincide in practice; 0 ("not
// set") when el is an only child of its tag.
func siblingIndex(el dom.Element) int {
	parent := el.Parent()
	if parent == nil {
		return 0
	}
	tag := el.Tag()
	idx, count := 0, 0
	for _, sib := range parent.Children() {
		if sib.Tag() != tag {
			continue
		}
		count++
		if sib.Same(el) {
			idx = count
		}
	}
	if count <= 1 {
		return 0
	}
	return idx
}

// tryCompile builds the chain for the current kept set, in document
// (anchor→target) order, computing true DOM adjacency for each link before
// calling the selector compiler, then verifies uniqueness against the live
// document (§4.5 step 4).
func (b *Builder) tryCompile(anchor model.AnchorNode, anchorEl dom.Element, kept []*candidate, target dom.Element, targetNode model.Node, query Query) Result {
	ordered := reversedCandidates(kept)

	links := make([]selector.ChainLink, 0, len(ordered))
	prevEl := anchorEl
	for _, c := range ordered {
		links = append(links, selector.ChainLink{Node: c.node, Adjacent: isChildOf(c.element, prevEl)})
		prevEl = c.element
	}
	targetLink := selector.ChainLink{Node: targetNode, Adjacent: isChildOf(target, prevEl)}

	sel := selector.Compile(anchor, links, targetLink, b.classifier, selectorQuery(query))
	count, err := safeQuery(query, sel)
	unique := err == nil && count == 1

	path := make([]model.Node, len(links))
	for i, l := range links {
		path[i] = l.Node
	}
	return Result{Selector: sel, Path: path, Unique: unique}
}

// reinsertSkipped walks the skipped intermediates in document order,
// reinserting each one into its original position if its score clears
// MinSkipReinsertScore, re-querying after each insertion until the result is
// unique or no more candidates remain (§4.5 step 5).
func (b *Builder) reinsertSkipped(anchor model.AnchorNode, anchorEl dom.Element, intermediates []*candidate, target dom.Element, targetNode model.Node, query Query) Result {
	best := b.tryCompile(anchor, anchorEl, included(intermediates), target, targetNode, query)
	if best.Unique {
		return best
	}

	for i := len(intermediates) - 1; i >= 0; i-- {
		c := intermediates[i]
		if c.include || c.node.Score < b.weights.MinSkipReinsertScore {
			continue
		}
		c.include = true
		attempt := b.tryCompile(anchor, anchorEl, included(intermediates), target, targetNode, query)
		best = attempt
		if attempt.Unique {
			return best
		}
	}
	return best
}

func reversedCandidates(kept []*candidate) []*candidate {
	out := make([]*candidate, len(kept))
	for i, c := range kept {
		out[len(kept)-1-i] = c
	}
	return out
}

func isChildOf(el, parent dom.Element) bool {
	if parent == nil {
		return false
	}
	p := el.Parent()
	return p != nil && p.Same(parent)
}

func selectorQuery(q Query) selector.QueryFunc {
	if q == nil {
		return nil
	}
	return func(sel string) (int, error) { return q(sel) }
}

func safeQuery(q Query, sel string) (int, error) {
	if q == nil {
		return 0, nil
	}
	return q(sel)
}
