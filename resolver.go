package eid

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/constraints"
	"github.com/domanchor/eid/internal/matcher"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/scoring"
	"github.com/domanchor/eid/internal/selector"
	"github.com/domanchor/eid/internal/semantics"
	"github.com/domanchor/eid/internal/stability"
)

// Status is a resolver result's outcome (§6).
type Status string

const (
	StatusSuccess         Status = "success"
	StatusAmbiguous       Status = "ambiguous"
	StatusError           Status = "error"
	StatusDegradedFallback Status = "degraded-fallback"
)

// ResultMeta carries a resolver result's degradation bookkeeping (§6).
type ResultMeta struct {
	Degraded          bool
	DegradationReason DegradationReason
}

// Result is what Resolve returns (§6): a status, the matched elements,
// diagnostic warnings, a numeric confidence, and degradation metadata.
type Result struct {
	Status     Status
	Elements   []dom.Element
	Warnings   []string
	Confidence float64
	Meta       ResultMeta
}

// Resolver resolves EIDs for a fixed classifier/weights/query-engine
// configuration. Callers with no tuning needs can use the package-level
// Resolve function, which runs a Resolver built from defaults.
type Resolver struct {
	classifier *stability.Classifier
	extractor  *semantics.Extractor
	matcher    *matcher.Matcher
	weights    scoring.Weights
	query      dom.QueryEngine
	logger     *zap.Logger
}

// NewResolver builds a Resolver. A nil classifier/logger falls back to
// package defaults; query is required — without a tree-query engine every
// resolution returns an empty candidate set with reason invalid-selector.
func NewResolver(classifier *stability.Classifier, weights scoring.Weights, query dom.QueryEngine, logger *zap.Logger) *Resolver {
	if classifier == nil {
		classifier = stability.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	extractor := semantics.New(classifier, nil)
	return &Resolver{
		classifier: classifier,
		extractor:  extractor,
		matcher:    matcher.New(classifier, extractor),
		weights:    weights,
		query:      query,
		logger:     logger,
	}
}

// Resolve runs the package-level Resolver (§6: resolve(eid, root, options)
// → result). query is the host's tree-query engine; a nil query always
// yields status Error with reason invalid-selector.
func Resolve(e EID, query dom.QueryEngine, opts ResolveOptions) Result {
	r := NewResolver(nil, scoring.DefaultWeights(), query, nil)
	return r.Resolve(e, opts)
}

// Resolve is the Resolver-bound form of the package-level Resolve.
func (r *Resolver) Resolve(e EID, opts ResolveOptions) Result {
	opts = opts.withDefaults()

	if opts.Root == nil {
		r.logger.Debug("resolve: nil root")
		return errorResult(model.ReasonNotFound, "nil root passed to Resolve")
	}
	if e.Anchor.Tag == "" {
		return errorResult(model.ReasonNotFound, "EID has no anchor")
	}

	if opts.OriginDocument != nil {
		if doc := opts.Root.Document(); doc == nil || doc.ID() != opts.OriginDocument.ID() {
			return Result{
				Status:   StatusError,
				Warnings: []string{"cross-document resolve: root belongs to a different document than the EID's origin"},
				Meta:     ResultMeta{Degraded: true, DegradationReason: model.ReasonNotFound},
			}
		}
	}

	phase1, phase1Reason, warnings := r.phase1Narrow(e, opts)
	phase2, relaxed, w2 := r.phase2Filter(e, phase1)
	warnings = append(warnings, w2...)

	switch {
	case len(phase2) == 1:
		return r.success(phase2, e.Meta.Confidence, relaxed)
	case len(phase2) == 0:
		reason := phase1Reason
		if reason == "" {
			reason = model.ReasonNotFound
		}
		if len(phase1) > 0 {
			warnings = append(warnings, "phase 2 (semantics filtering) reduced candidates to zero")
		}
		if !opts.EnableFallback {
			return errorResultWithWarnings(reason, warnings)
		}
		res := r.fallback(e, opts, warnings)
		if res.Status == StatusError && phase1Reason != "" {
			res.Meta.DegradationReason = phase1Reason
		}
		return res
	}

	phase4, reason, w4 := r.phase4Constraints(e, phase2)
	warnings = append(warnings, w4...)
	if reason == model.ReasonOverConstrained {
		if !opts.EnableFallback {
			return errorResultWithWarnings(reason, warnings)
		}
		return r.fallback(e, opts, warnings)
	}
	if len(phase4) == 1 {
		return r.successWithFactor(phase4, e.Meta.Confidence, r.weights.ConstraintAppliedFactor, relaxed, warnings)
	}

	return r.phase5Ambiguity(e, phase4, opts, relaxed, warnings)
}

func (r *Resolver) phase1Narrow(e EID, opts ResolveOptions) ([]dom.Element, model.DegradationReason, []string) {
	sel := r.compileSelector(e, opts)
	if r.query == nil {
		return nil, model.ReasonInvalidSelector, []string{"no query engine configured"}
	}
	matches, err := r.query.Query(opts.Root, sel)
	if err != nil {
		return nil, model.ReasonInvalidSelector, []string{fmt.Sprintf("selector %q rejected by query engine: %v", sel, err)}
	}
	if len(matches) > opts.MaxCandidates {
		matches = matches[:opts.MaxCandidates]
	}
	return matches, "", nil
}

// compileSelector rebuilds the EID's selector fresh at resolve time, since
// an EID only stores its structural Nodes, not the compiled string.
func (r *Resolver) compileSelector(e EID, opts ResolveOptions) string {
	// Adjacency (DOM child vs. arbitrary descendant) was a generation-time
	// fact about which intermediates the path builder skipped; an EID's
	// stored Nodes don't carry it, so every link here renders with the
	// (always-correct, if sometimes looser) descendant combinator, except
	// after an svg node, where the compiler always uses the child combinator.
	links := make([]selector.ChainLink, len(e.Path))
	for i, n := range e.Path {
		links[i] = selector.ChainLink{Node: n, Adjacent: false}
	}
	target := selector.ChainLink{Node: e.Target, Adjacent: false}

	query := func(sel string) (int, error) {
		matches, err := r.query.Query(opts.Root, sel)
		if err != nil {
			return 0, err
		}
		return len(matches), nil
	}
	if r.query == nil {
		query = nil
	}
	return selector.Compile(e.Anchor, links, target, r.classifier, query)
}

func (r *Resolver) phase2Filter(e EID, candidates []dom.Element) (out []dom.Element, relaxed bool, warnings []string) {
	if len(candidates) == 0 {
		return nil, false, nil
	}
	res := r.matcher.Match(candidates, e.Target.Semantics)
	if res.Relaxed {
		warnings = append(warnings, "relaxed text matching applied in phase 2")
	}
	return res.Candidates, res.Relaxed, warnings
}

func (r *Resolver) phase4Constraints(e EID, candidates []dom.Element) ([]dom.Element, model.DegradationReason, []string) {
	ordered := constraints.SortByPriority(e.Constraints)
	var warnings []string
	current := candidates
	for _, c := range ordered {
		if c.Kind == model.ConstraintUniqueness {
			continue
		}
		next := constraints.Evaluate(current, c, "")
		if len(next) == 0 {
			warnings = append(warnings, fmt.Sprintf("constraint %s emptied the candidate set", c.Kind))
			return nil, model.ReasonOverConstrained, warnings
		}
		current = next
		if len(current) == 1 {
			return current, "", warnings
		}
	}
	return current, "", warnings
}

func (r *Resolver) phase5Ambiguity(e EID, candidates []dom.Element, opts ResolveOptions, relaxed bool, warnings []string) Result {
	if len(candidates) == 0 {
		if !opts.EnableFallback {
			return errorResultWithWarnings(model.ReasonNotFound, warnings)
		}
		return r.fallback(e, opts, warnings)
	}

	// §4.8/§4.9: visibility preference runs implicitly whenever ≥2 candidates
	// survive to this point, ahead of strict-mode/allow-multiple/best-score
	// handling below — not just when the EID carries an explicit visibility
	// constraint. Under htmldom geometry is unavailable so Rect/Hidden are
	// conservative and this is usually a no-op; it matters under roddom.
	if len(candidates) >= 2 {
		candidates = constraints.Evaluate(candidates, model.Constraint{Kind: model.ConstraintVisibility}, "")
	}

	if opts.StrictMode {
		return Result{
			Status:     StatusAmbiguous,
			Elements:   candidates,
			Warnings:   warnings,
			Confidence: clamp01(e.Meta.Confidence * r.weights.AmbiguityFallbackFactor),
			Meta:       ResultMeta{Degraded: true, DegradationReason: model.ReasonAmbiguous},
		}
	}

	switch e.Fallback.OnMultiple {
	case model.MultipleAllowMultiple:
		return Result{
			Status:     StatusSuccess,
			Elements:   candidates,
			Warnings:   warnings,
			Confidence: clamp01(e.Meta.Confidence * r.weights.AllowMultipleFactor),
			Meta:       ResultMeta{Degraded: true, DegradationReason: model.ReasonAmbiguous},
		}
	case model.MultipleBestScore:
		best := r.bestScored(candidates)
		return Result{
			Status:     StatusSuccess,
			Elements:   []dom.Element{best},
			Warnings:   warnings,
			Confidence: clamp01(e.Meta.Confidence * r.weights.AmbiguityFallbackFactor),
			Meta:       ResultMeta{Degraded: true, DegradationReason: model.ReasonAmbiguous},
		}
	default: // MultipleFirst, or unset
		return Result{
			Status:     StatusSuccess,
			Elements:   []dom.Element{candidates[0]},
			Warnings:   warnings,
			Confidence: clamp01(e.Meta.Confidence * r.weights.AmbiguityFallbackFactor),
			Meta:       ResultMeta{Degraded: true, DegradationReason: model.ReasonAmbiguous},
		}
	}
}

// bestScored picks the highest per-element score (§4.10), ties broken by
// document order (the order the query engine already returned).
func (r *Resolver) bestScored(candidates []dom.Element) dom.Element {
	best := candidates[0]
	bestScore := r.elementScore(best)
	for _, c := range candidates[1:] {
		s := r.elementScore(c)
		if s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

func (r *Resolver) elementScore(el dom.Element) float64 {
	s := r.extractor.Extract(el, semantics.Options{})
	return r.weights.ElementScore(s)
}

func (r *Resolver) fallback(e EID, opts ResolveOptions, warnings []string) Result {
	switch e.Fallback.OnMissing {
	case model.MissingNone, model.MissingStrict:
		return errorResultWithWarnings(model.ReasonNotFound, warnings)
	case model.MissingAnchorOnly:
		anchorEID := EID{
			Version: e.Version,
			Anchor:  e.Anchor,
			Target:  e.Anchor.Node,
		}
		anchorSel := r.compileAnchorOnlySelector(anchorEID)
		if r.query == nil {
			return errorResultWithWarnings(model.ReasonInvalidSelector, warnings)
		}
		matches, err := r.query.Query(opts.Root, anchorSel)
		if err != nil || len(matches) == 0 {
			return errorResultWithWarnings(model.ReasonNotFound, append(warnings, "anchor-only fallback found nothing"))
		}
		return Result{
			Status:     StatusDegradedFallback,
			Elements:   matches,
			Warnings:   append(warnings, "resolved via anchor-only fallback"),
			Confidence: clamp01(e.Meta.Confidence * r.weights.AnchorOnlyFallbackFactor),
			Meta:       ResultMeta{Degraded: true, DegradationReason: model.ReasonAnchorOnlyFallback},
		}
	default:
		return errorResultWithWarnings(model.ReasonNotFound, warnings)
	}
}

func (r *Resolver) compileAnchorOnlySelector(anchorEID EID) string {
	return selector.Compile(anchorEID.Anchor, nil, selector.ChainLink{Node: anchorEID.Anchor.Node}, r.classifier, nil)
}

func (r *Resolver) success(elements []dom.Element, confidence float64, relaxed bool) Result {
	return r.successWithFactor(elements, confidence, 1.0, relaxed, nil)
}

func (r *Resolver) successWithFactor(elements []dom.Element, confidence, factor float64, relaxed bool, warnings []string) Result {
	meta := ResultMeta{}
	if relaxed {
		meta = ResultMeta{Degraded: true, DegradationReason: model.ReasonRelaxedTextMatching}
	}
	return Result{
		Status:     StatusSuccess,
		Elements:   elements,
		Warnings:   warnings,
		Confidence: clamp01(confidence * factor),
		Meta:       meta,
	}
}

func errorResult(reason model.DegradationReason, warning string) Result {
	return errorResultWithWarnings(reason, []string{warning})
}

func errorResultWithWarnings(reason model.DegradationReason, warnings []string) Result {
	return Result{
		Status:     StatusError,
		Elements:   nil,
		Warnings:   warnings,
		Confidence: 0,
		Meta:       ResultMeta{Degraded: true, DegradationReason: reason},
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
