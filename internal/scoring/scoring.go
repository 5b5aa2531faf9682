// Package scoring implements the confidence arithmetic of §4.10: per-element
// scoring, anchor scoring, and the overall confidence formula. All constants
// live in one flat, frozen Weights struct — no class hierarchy, per the
// teacher's preference for plain configuration structs over behavior-bearing
// config types.
package scoring

import (
	"os"

	"github.com/domanchor/eid/internal/model"
	"gopkg.in/yaml.v3"
)

// Tier is an anchor candidate's stability tier (§4.4).
type Tier int

const (
	TierNone Tier = iota
	TierC
	TierB
	TierA
)

// Weights is the scoring configuration. Every field is a documented
// constant from §4.10/§4.9; a host may override them via LoadWeights.
type Weights struct {
	ElementBase      float64 `yaml:"element_base"`
	ElementIDBonus   float64 `yaml:"element_id_bonus"`
	ElementClassBonus float64 `yaml:"element_class_bonus"`
	ElementAttrBonus float64 `yaml:"element_attr_bonus"`
	ElementRoleBonus float64 `yaml:"element_role_bonus"`
	ElementTextBonus float64 `yaml:"element_text_bonus"`

	AnchorTierABaseScore float64 `yaml:"anchor_tier_a_base"`
	AnchorTierBBaseScore float64 `yaml:"anchor_tier_b_base"`
	AnchorTierCBaseScore float64 `yaml:"anchor_tier_c_base"`
	AnchorLabelBonus     float64 `yaml:"anchor_label_bonus"`
	AnchorStableIDBonus  float64 `yaml:"anchor_stable_id_bonus"`
	AnchorTestMarkerBonus float64 `yaml:"anchor_test_marker_bonus"`
	AnchorDepthPenaltyPerStep float64 `yaml:"anchor_depth_penalty_per_step"`
	AnchorDepthThreshold      int     `yaml:"anchor_depth_threshold"`

	ConfidenceAnchorWeight     float64 `yaml:"confidence_anchor_weight"`
	ConfidencePathWeight       float64 `yaml:"confidence_path_weight"`
	ConfidenceTargetWeight     float64 `yaml:"confidence_target_weight"`
	ConfidenceUniquenessWeight float64 `yaml:"confidence_uniqueness_weight"`
	ConfidenceDegradedPenalty  float64 `yaml:"confidence_degraded_penalty"`
	DefaultPathScore           float64 `yaml:"default_path_score"`

	ConstraintAppliedFactor  float64 `yaml:"constraint_applied_factor"`
	AmbiguityFallbackFactor  float64 `yaml:"ambiguity_fallback_factor"`
	AllowMultipleFactor      float64 `yaml:"allow_multiple_factor"`
	AnchorOnlyFallbackFactor float64 `yaml:"anchor_only_fallback_factor"`

	// MinSkipReinsertScore is the path builder's minimum-confidence-for-skip
	// threshold (§4.5 step 5): a skipped intermediate is only reinserted for
	// disambiguation if its element score clears this bar.
	MinSkipReinsertScore float64 `yaml:"min_skip_reinsert_score"`
}

// DefaultWeights returns the built-in constants documented in §4.9/§4.10.
func DefaultWeights() Weights {
	return Weights{
		ElementBase:       0.5,
		ElementIDBonus:    0.2,
		ElementClassBonus: 0.1,
		ElementAttrBonus:  0.1,
		ElementRoleBonus:  0.1,
		ElementTextBonus:  0.1,

		AnchorTierABaseScore: 0.6,
		AnchorTierBBaseScore: 0.4,
		AnchorTierCBaseScore: 0.2,
		AnchorLabelBonus:     0.15,
		AnchorStableIDBonus:  0.25,
		AnchorTestMarkerBonus: 0.1,
		AnchorDepthPenaltyPerStep: 0.05,
		AnchorDepthThreshold:      5,

		ConfidenceAnchorWeight:     0.4,
		ConfidencePathWeight:       0.3,
		ConfidenceTargetWeight:     0.2,
		ConfidenceUniquenessWeight: 0.1,
		ConfidenceDegradedPenalty:  0.2,
		DefaultPathScore:           0.5,

		ConstraintAppliedFactor:  0.9,
		AmbiguityFallbackFactor:  0.7,
		AllowMultipleFactor:      0.5,
		AnchorOnlyFallbackFactor: 0.3,

		// Skipped candidates are, by construction, exactly the elements
		// shouldInclude discarded for carrying no semantics at all — so
		// every one of them scores exactly ElementBase. The threshold sits
		// at that same value so the reinsertion walk (§4.5 step 5) actually
		// runs rather than being permanently a no-op.
		MinSkipReinsertScore: 0.5,
	}
}

// LoadWeights reads a YAML override over the defaults. A missing file is not
// an error.
func LoadWeights(path string) (Weights, error) {
	w := DefaultWeights()
	if path == "" {
		return w, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return w, nil
		}
		return w, err
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, err
	}
	return w, nil
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

// ElementScore computes a per-element score from base 0.5 plus small
// increments per positive semantic feature, capped at 1.0 (§4.10).
func (w Weights) ElementScore(s model.Semantics) float64 {
	score := w.ElementBase
	if s.ID != "" {
		score += w.ElementIDBonus
	}
	if len(s.Classes) > 0 {
		score += w.ElementClassBonus
	}
	if len(s.Attributes) > 0 {
		score += w.ElementAttrBonus
	}
	if s.Role != "" {
		score += w.ElementRoleBonus
	}
	if s.Text != nil {
		score += w.ElementTextBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

// AnchorScoreInput carries the factors AnchorScore combines.
type AnchorScoreInput struct {
	Tier            Tier
	HasLabel        bool
	HasStableID     bool
	TestMarkerCount int
	Depth           int
}

// AnchorScore computes an anchor candidate's score from its tier base and
// bonuses — deliberately with no base-0.5 term, since a non-anchor-tagged
// element earns its score entirely from these signals (§4.10).
func (w Weights) AnchorScore(in AnchorScoreInput) float64 {
	var score float64
	switch in.Tier {
	case TierA:
		score = w.AnchorTierABaseScore
	case TierB:
		score = w.AnchorTierBBaseScore
	case TierC:
		score = w.AnchorTierCBaseScore
	}
	if in.HasLabel {
		score += w.AnchorLabelBonus
	}
	if in.HasStableID {
		score += w.AnchorStableIDBonus
	}
	score += float64(in.TestMarkerCount) * w.AnchorTestMarkerBonus
	if in.Depth > w.AnchorDepthThreshold {
		over := in.Depth - w.AnchorDepthThreshold
		score -= float64(over) * w.AnchorDepthPenaltyPerStep
	}
	return clamp01(score)
}

// Confidence computes the overall EID confidence (§4.10):
// anchor*0.4 + avg(path, default 0.5)*0.3 + target*0.2 + uniqueness*0.1,
// minus 0.2 if the anchor or path is degraded, clamped to [0,1].
func (w Weights) Confidence(anchorScore float64, pathScores []float64, targetScore, uniquenessFactor float64, degraded bool) float64 {
	pathAvg := w.DefaultPathScore
	if len(pathScores) > 0 {
		var sum float64
		for _, s := range pathScores {
			sum += s
		}
		pathAvg = sum / float64(len(pathScores))
	}
	confidence := anchorScore*w.ConfidenceAnchorWeight +
		pathAvg*w.ConfidencePathWeight +
		targetScore*w.ConfidenceTargetWeight +
		uniquenessFactor*w.ConfidenceUniquenessWeight
	if degraded {
		confidence -= w.ConfidenceDegradedPenalty
	}
	return clamp01(confidence)
}
