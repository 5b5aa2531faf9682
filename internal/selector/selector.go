// Package selector implements the selector compiler of §4.6: translating an
// EID's anchor/path/target chain into a CSS-compatible tree-query string,
// under an escalating strategy ladder that prefers stable attributes over
// positional indices.
package selector

import (
	"fmt"
	"strings"

	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/semantics"
	"github.com/domanchor/eid/internal/stability"
)

var tableTags = map[string]bool{"tr": true, "td": true, "th": true}

// ChainLink is one structural node between (and including) the anchor and
// the target, annotated with whether it is the live DOM-child of the
// previous surviving link in the chain. A non-adjacent link (intermediate
// plain divs were pruned per §4.5 shouldInclude) renders with a descendant
// combinator instead of a child combinator in the full structural-path
// strategy. The target is itself passed as the final ChainLink.
type ChainLink struct {
	model.Node
	Adjacent bool
}

// QueryFunc executes a compiled selector against the resolution root and
// reports how many elements matched. The ladder in Compile calls this once
// per candidate strategy, stopping at the first unique (count == 1) result.
type QueryFunc func(selector string) (count int, err error)

// Compile builds a selector for (anchor, path, target), trying strategies in
// order and returning the first one QueryFunc reports as unique. If no
// strategy achieves uniqueness, the full structural path (strategy 4) is
// returned regardless — the resolver is responsible for handling a
// non-unique outcome downstream.
func Compile(anchor model.AnchorNode, path []ChainLink, target ChainLink, classifier *stability.Classifier, query QueryFunc) string {
	anchorSelf := anchorEqualsTarget(anchor.Node, target.Node)

	strategies := []func() string{
		func() string { return strategy0AttributesOnly(anchor, anchorSelf, path, target, classifier) },
		func() string { return strategy1ParentAttribute(anchor, anchorSelf, path, target, classifier) },
		func() string { return strategy2OneStableClass(anchor, anchorSelf, path, target, classifier) },
		func() string { return strategy3Position(anchor, anchorSelf, path, target, classifier) },
	}

	for _, build := range strategies {
		sel := build()
		if sel == "" {
			continue
		}
		if query == nil {
			return sel
		}
		if n, err := query(sel); err == nil && n == 1 {
			return sel
		}
	}

	return strategy4FullStructuralPath(anchor, anchorSelf, path, target, classifier)
}

func anchorEqualsTarget(anchor model.Node, target model.Node) bool {
	if anchor.Tag != target.Tag {
		return false
	}
	return semanticsEqual(anchor.Semantics, target.Semantics)
}

func semanticsEqual(a, b model.Semantics) bool {
	if a.ID != b.ID || a.Role != b.Role {
		return false
	}
	if len(a.Classes) != len(b.Classes) || len(a.Attributes) != len(b.Attributes) {
		return false
	}
	for i := range a.Classes {
		if a.Classes[i] != b.Classes[i] {
			return false
		}
	}
	for k, v := range a.Attributes {
		if b.Attributes[k] != v {
			return false
		}
	}
	return true
}

// stablePredicates renders every stable attribute (ranked) and, if
// includeOneClass, a single stable class, as bracket/dot predicates.
func stablePredicates(s model.Semantics, classifier *stability.Classifier, includeOneClass bool) string {
	var b strings.Builder
	if s.ID != "" {
		b.WriteString(fmt.Sprintf(`[id="%s"]`, escapeAttrValue(s.ID)))
	}
	for _, name := range semantics.RankedAttributeNames(s.Attributes) {
		if name == "id" {
			continue
		}
		b.WriteString(fmt.Sprintf(`[%s="%s"]`, name, escapeAttrValue(s.Attributes[name])))
	}
	if includeOneClass {
		if c := firstStableClass(s.Classes, classifier); c != "" {
			b.WriteString("." + c)
		}
	}
	return b.String()
}

func attributesOnlyPredicates(s model.Semantics) string {
	var b strings.Builder
	if s.ID != "" {
		b.WriteString(fmt.Sprintf(`[id="%s"]`, escapeAttrValue(s.ID)))
	}
	for _, name := range semantics.RankedAttributeNames(s.Attributes) {
		if name == "id" {
			continue
		}
		b.WriteString(fmt.Sprintf(`[%s="%s"]`, name, escapeAttrValue(s.Attributes[name])))
	}
	if s.Role != "" {
		b.WriteString(fmt.Sprintf(`[role="%s"]`, escapeAttrValue(s.Role)))
	}
	return b.String()
}

func firstStableClass(classes []string, classifier *stability.Classifier) string {
	for _, c := range classes {
		if classifier.IsStableClass(c) {
			return c
		}
	}
	return ""
}

func pathTags(path []ChainLink) []string {
	tags := make([]string, len(path))
	for i, p := range path {
		tags[i] = p.Tag
	}
	return tags
}

func strategy0AttributesOnly(anchor model.AnchorNode, anchorSelf bool, path []ChainLink, target ChainLink, classifier *stability.Classifier) string {
	targetPred := attributesOnlyPredicates(target.Semantics)
	var parts []string
	if !anchorSelf {
		parts = append(parts, anchorSegment(anchor, classifier))
	}
	parts = append(parts, pathTags(path)...)
	parts = append(parts, target.Tag+targetPred)
	return strings.Join(parts, " ")
}

func strategy1ParentAttribute(anchor model.AnchorNode, anchorSelf bool, path []ChainLink, target ChainLink, classifier *stability.Classifier) string {
	idx := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Semantics.ID != "" || len(path[i].Semantics.Attributes) > 0 || firstStableClass(path[i].Semantics.Classes, classifier) != "" {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}
	var parts []string
	if !anchorSelf {
		parts = append(parts, anchorSegment(anchor, classifier))
	}
	for i, p := range path {
		if i == idx {
			parts = append(parts, p.Tag+stablePredicates(p.Semantics, classifier, true))
		} else {
			parts = append(parts, p.Tag)
		}
	}
	parts = append(parts, target.Tag)
	return strings.Join(parts, " ")
}

func strategy2OneStableClass(anchor model.AnchorNode, anchorSelf bool, path []ChainLink, target ChainLink, classifier *stability.Classifier) string {
	class := firstStableClass(target.Semantics.Classes, classifier)
	if class == "" {
		return ""
	}
	var parts []string
	if !anchorSelf {
		parts = append(parts, anchorSegment(anchor, classifier))
	}
	parts = append(parts, pathTags(path)...)
	parts = append(parts, target.Tag+"."+class)
	return strings.Join(parts, " ")
}

func strategy3Position(anchor model.AnchorNode, anchorSelf bool, path []ChainLink, target ChainLink, classifier *stability.Classifier) string {
	if target.SiblingIndex <= 0 {
		return ""
	}
	pseudo := "nth-of-type"
	if tableTags[target.Tag] {
		pseudo = "nth-child"
	}
	var parts []string
	if !anchorSelf {
		parts = append(parts, anchorSegment(anchor, classifier))
	}
	parts = append(parts, pathTags(path)...)
	parts = append(parts, fmt.Sprintf("%s:%s(%d)", target.Tag, pseudo, target.SiblingIndex))
	return strings.Join(parts, " ")
}

// chainEntry is one rendered segment in the full structural path, paired
// with whether it is the live DOM-child of the previous entry.
type chainEntry struct {
	segment  string
	tag      string
	adjacent bool
}

func strategy4FullStructuralPath(anchor model.AnchorNode, anchorSelf bool, path []ChainLink, target ChainLink, classifier *stability.Classifier) string {
	var entries []chainEntry

	if !anchorSelf {
		entries = append(entries, chainEntry{segment: anchorSegment(anchor, classifier), tag: anchor.Tag})
	}
	for _, p := range path {
		entries = append(entries, chainEntry{
			segment:  renderStructuralSegment(p.Node, classifier),
			tag:      p.Tag,
			adjacent: p.Adjacent,
		})
	}
	entries = append(entries, chainEntry{
		segment:  renderStructuralSegment(target.Node, classifier),
		tag:      target.Tag,
		adjacent: target.Adjacent,
	})

	if len(entries) == 1 {
		return entries[0].segment
	}

	var b strings.Builder
	b.WriteString(entries[0].segment)
	for i := 1; i < len(entries); i++ {
		b.WriteString(combinatorFor(entries[i-1].tag, entries[i].adjacent))
		b.WriteString(entries[i].segment)
	}
	return b.String()
}

func anchorSegment(anchor model.AnchorNode, classifier *stability.Classifier) string {
	if anchor.Tag == "body" {
		return "body"
	}
	return anchor.Tag + stablePredicates(anchor.Semantics, classifier, true)
}

func combinatorFor(prevTag string, adjacent bool) string {
	if prevTag == "svg" {
		return " > "
	}
	if adjacent {
		return " > "
	}
	return " "
}

func renderStructuralSegment(n model.Node, classifier *stability.Classifier) string {
	seg := n.Tag + stablePredicates(n.Semantics, classifier, true)
	if n.SiblingIndex > 0 {
		pseudo := "nth-of-type"
		if tableTags[n.Tag] {
			pseudo = "nth-child"
		}
		seg += fmt.Sprintf(":%s(%d)", pseudo, n.SiblingIndex)
	}
	return seg
}

// escapeAttrValue applies the host query engine's double-quoted-attribute
// escaping rule: a backslash escapes embedded double quotes and backslashes.
func escapeAttrValue(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
