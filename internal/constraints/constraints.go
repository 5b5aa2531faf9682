// Package constraints implements the constraints evaluator of §4.8: the
// resolver's second disambiguation pass, applied after semantics matching
// when more than one candidate survives.
package constraints

import (
	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/model"
)

// Evaluate narrows candidates by a single constraint. Constraints with an
// unrecognized or empty Kind are treated as uniqueness passthroughs — they
// neither filter nor reorder.
func Evaluate(candidates []dom.Element, c model.Constraint, anchorText string) []dom.Element {
	switch c.Kind {
	case model.ConstraintTextProximity:
		return textProximity(candidates, c)
	case model.ConstraintPosition:
		return position(candidates, c.Strategy)
	case model.ConstraintVisibility:
		return visibility(candidates)
	default:
		return candidates
	}
}

// textProximity keeps only candidates whose descendant text is within
// c.MaxDistance edits of c.Reference, using a single-row Levenshtein DP
// (O(min(|a|,|b|)) memory). When no candidate is within range, the input
// set is returned unchanged.
func textProximity(candidates []dom.Element, c model.Constraint) []dom.Element {
	var out []dom.Element
	for _, cand := range candidates {
		text := cand.DescendantText()
		if text == "" {
			text = cand.DirectText()
		}
		if levenshtein(text, c.Reference) <= c.MaxDistance {
			out = append(out, cand)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

// levenshtein computes edit distance using a single row of the DP table,
// iterating over the shorter string to bound memory to O(min(|a|,|b|)).
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	curr := make([]int, len(ra)+1)
	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min3(curr[i-1]+1, prev[i]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// position narrows candidates to a single singleton, chosen per strategy.
// Candidates whose geometry the host cannot compute (Rect ok == false) are
// skipped for geometric strategies; an empty/unknown strategy defaults to
// first-in-dom.
func position(candidates []dom.Element, strategy model.PositionStrategy) []dom.Element {
	if len(candidates) == 0 {
		return candidates
	}
	switch strategy {
	case model.PositionTopMost:
		if best, ok := pickBy(candidates, func(r dom.Rect) float64 { return r.Top }, true); ok {
			return []dom.Element{best}
		}
	case model.PositionLeftMost:
		if best, ok := pickBy(candidates, func(r dom.Rect) float64 { return r.Left }, true); ok {
			return []dom.Element{best}
		}
	}
	return []dom.Element{candidates[0]}
}

func pickBy(candidates []dom.Element, metric func(dom.Rect) float64, smallest bool) (dom.Element, bool) {
	var best dom.Element
	var bestVal float64
	found := false
	for _, c := range candidates {
		r, ok := c.Rect()
		if !ok {
			continue
		}
		v := metric(r)
		if !found || (smallest && v < bestVal) || (!smallest && v > bestVal) {
			best, bestVal, found = c, v, true
		}
	}
	return best, found
}

// visibility prefers visible, non-zero-area candidates but never eliminates
// every candidate — if the preference would empty the set, the original set
// is returned unchanged.
func visibility(candidates []dom.Element) []dom.Element {
	var visible []dom.Element
	for _, c := range candidates {
		if c.Hidden() {
			continue
		}
		if r, ok := c.Rect(); ok && (r.Width <= 0 || r.Height <= 0) {
			continue
		}
		visible = append(visible, c)
	}
	if len(visible) == 0 {
		return candidates
	}
	return visible
}

// SortByPriority orders constraints by descending Priority, stable among
// equal priorities, as the resolver must apply higher-priority constraints
// first (§4.9).
func SortByPriority(cs []model.Constraint) []model.Constraint {
	out := make([]model.Constraint, len(cs))
	copy(out, cs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Priority < out[j].Priority; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
