package eid

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/anchor"
	"github.com/domanchor/eid/internal/cache"
	"github.com/domanchor/eid/internal/model"
	"github.com/domanchor/eid/internal/pathbuild"
	"github.com/domanchor/eid/internal/scoring"
	"github.com/domanchor/eid/internal/semantics"
	"github.com/domanchor/eid/internal/stability"
)

// Generator builds EIDs for a fixed classifier/weights/query-engine
// configuration. Callers with no tuning needs can use the package-level
// Generate function, which runs a Generator built from defaults.
type Generator struct {
	classifier *stability.Classifier
	extractor  *semantics.Extractor
	weights    scoring.Weights
	query      dom.QueryEngine
	logger     *zap.Logger
}

// NewGenerator builds a Generator. Any nil/zero argument falls back to
// package defaults; query is required to validate compiled selectors during
// path building and may be nil only if the caller accepts an unvalidated
// (strategy-ladder-best-effort) path.
func NewGenerator(classifier *stability.Classifier, weights scoring.Weights, query dom.QueryEngine, logger *zap.Logger) *Generator {
	if classifier == nil {
		classifier = stability.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if weights == (scoring.Weights{}) {
		weights = scoring.DefaultWeights()
	}
	return &Generator{
		classifier: classifier,
		extractor:  semantics.New(classifier, nil),
		weights:    weights,
		query:      query,
		logger:     logger,
	}
}

// Generate builds an EID for target (§6: generate(element, options) → EID |
// nothing). Start options from DefaultOptions() and override only the
// fields that need to differ — the zero value of Options disables several
// documented true-by-default behaviors.
func Generate(target dom.Element, opts Options) (EID, bool) {
	g := NewGenerator(nil, scoring.DefaultWeights(), nil, nil)
	return g.Generate(target, opts)
}

// Generate is the Generator-bound form of the package-level Generate.
func (g *Generator) Generate(target dom.Element, opts Options) (EID, bool) {
	opts = opts.withDefaults()
	c := opts.Cache
	if c == nil {
		c = cache.Default()
	}

	if target == nil {
		return EID{}, false
	}
	if isDetached(target) {
		// §8 boundary: a target with no parent and no place in any document
		// cannot be anchored to anything and is not generated. A target with
		// no parent that IS the document's root element (html) is not
		// detached — it falls through and self-anchors in anchor.Find.
		g.logger.Debug("generate: target is detached, refusing")
		return EID{}, false
	}

	af := anchor.New(g.classifier, g.extractor, g.weights, c)
	anchorResult := af.Find(target, opts.MaxPathDepth)
	if !anchorResult.Found {
		return EID{}, false
	}
	if anchorResult.Node.Degraded && !opts.FallbackToBody {
		g.logger.Debug("generate: anchor degraded to body, FallbackToBody disabled")
		return EID{}, false
	}

	root := opts.Root
	if root == nil && target.Document() != nil {
		root = target.Document().Root()
	}

	builder := pathbuild.New(g.classifier, g.extractor, g.weights)
	builder.SetIncludeUtilityClasses(opts.IncludeUtilityClasses)
	pb := builder.Build(anchorResult.Node, anchorResult.Element, target, opts.MaxPathDepth, g.queryFunc(root))

	targetNode := pb.Target
	if !opts.EnableSVGFingerprint {
		targetNode.Semantics.SVG = nil
	}

	var constraints []model.Constraint
	if !pb.Unique {
		// The ladder could not achieve uniqueness by structure alone; a
		// sibling-index-driven position constraint gives the resolver a
		// documented disambiguator to fall back on (§4.9 Phase 4). Only the
		// target's own sibling index is meaningful here — internal/anchor
		// never computes one for the anchor node itself.
		if targetNode.SiblingIndex > 0 {
			constraints = append(constraints, model.Constraint{
				Kind: model.ConstraintPosition, Priority: 1, Strategy: model.PositionFirstInDOM,
			})
		}
	}

	degraded := anchorResult.Node.Degraded || pb.Degraded
	reason := pb.Reason
	if reason == "" && anchorResult.Node.Degraded {
		reason = model.ReasonNotFound
	}

	pathScores := make([]float64, len(pb.Path))
	for i, n := range pb.Path {
		pathScores[i] = n.Score
	}
	uniquenessFactor := 0.0
	if pb.Unique {
		uniquenessFactor = 1.0
	}
	confidence := g.weights.Confidence(anchorResult.Node.Score, pathScores, targetNode.Score, uniquenessFactor, degraded)

	if confidence < opts.ConfidenceThreshold {
		return EID{}, false
	}

	eid := model.EID{
		Version:     model.Version,
		Anchor:      anchorResult.Node,
		Path:        pb.Path,
		Target:      targetNode,
		Constraints: constraints,
		Fallback: model.Fallback{
			OnMissing:        model.MissingAnchorOnly,
			OnMultiple:       model.MultipleBestScore,
			MaxRecoveryDepth: opts.MaxPathDepth,
		},
		Meta: model.Meta{
			Confidence:        confidence,
			GeneratedAt:       time.Now(),
			GeneratorID:       uuid.New().String(),
			Source:            opts.Source,
			Degraded:          degraded,
			DegradationReason: reason,
		},
	}
	return eid, true
}

// isDetached reports whether target has no parent and is not a document's
// root element — i.e. it is not attached to any tree at all, as opposed to
// sitting at the top of one (§8: html has no element parent but is not
// detached).
func isDetached(target dom.Element) bool {
	if target.Parent() != nil {
		return false
	}
	doc := target.Document()
	if doc == nil {
		return true
	}
	root := doc.Root()
	return root == nil || !root.Same(target)
}

func (g *Generator) queryFunc(root dom.Element) pathbuild.Query {
	if g.query == nil || root == nil {
		return func(string) (int, error) { return 0, errNoQueryEngine }
	}
	return func(selector string) (int, error) {
		matches, err := g.query.Query(root, selector)
		if err != nil {
			return 0, err
		}
		return len(matches), nil
	}
}

