package scoring

import (
	"testing"

	"github.com/domanchor/eid/internal/model"
)

func TestElementScore_BaseOnly(t *testing.T) {
	w := DefaultWeights()
	got := w.ElementScore(model.Semantics{})
	if got != w.ElementBase {
		t.Errorf("ElementScore(empty) = %v, want base %v", got, w.ElementBase)
	}
}

func TestElementScore_CappedAtOne(t *testing.T) {
	w := DefaultWeights()
	s := model.Semantics{
		ID:         "x",
		Classes:    []string{"a"},
		Attributes: map[string]string{"k": "v"},
		Role:       "button",
		Text:       &model.Text{Raw: "x", Normalized: "x"},
	}
	got := w.ElementScore(s)
	if got != 1.0 {
		t.Errorf("ElementScore(full) = %v, want capped at 1.0", got)
	}
}

func TestAnchorScore_TierABeatsTierB(t *testing.T) {
	w := DefaultWeights()
	a := w.AnchorScore(AnchorScoreInput{Tier: TierA})
	b := w.AnchorScore(AnchorScoreInput{Tier: TierB})
	if a <= b {
		t.Errorf("tier A score %v must exceed tier B score %v", a, b)
	}
}

func TestAnchorScore_StableIDBonusIsLarge(t *testing.T) {
	w := DefaultWeights()
	if w.AnchorStableIDBonus != 0.25 {
		t.Errorf("stable id bonus = %v, want 0.25 per spec", w.AnchorStableIDBonus)
	}
}

func TestAnchorScore_DepthPenaltyAppliesPastThreshold(t *testing.T) {
	w := DefaultWeights()
	shallow := w.AnchorScore(AnchorScoreInput{Tier: TierB, Depth: 2})
	deep := w.AnchorScore(AnchorScoreInput{Tier: TierB, Depth: 10})
	if deep >= shallow {
		t.Errorf("deep anchor (depth 10) score %v should be penalized below shallow %v", deep, shallow)
	}
}

func TestAnchorScore_ClampedToZeroOne(t *testing.T) {
	w := DefaultWeights()
	got := w.AnchorScore(AnchorScoreInput{Tier: TierNone, Depth: 100})
	if got < 0 || got > 1 {
		t.Errorf("AnchorScore = %v, want clamped to [0,1]", got)
	}
}

func TestConfidence_DefaultPathScoreWhenEmpty(t *testing.T) {
	w := DefaultWeights()
	got := w.Confidence(1.0, nil, 1.0, 1.0, false)
	want := 1.0*0.4 + 0.5*0.3 + 1.0*0.2 + 1.0*0.1
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Confidence = %v, want %v", got, want)
	}
}

func TestConfidence_DegradedPenalty(t *testing.T) {
	w := DefaultWeights()
	clean := w.Confidence(1.0, []float64{1.0}, 1.0, 1.0, false)
	degraded := w.Confidence(1.0, []float64{1.0}, 1.0, 1.0, true)
	if diff := (clean - degraded) - w.ConfidenceDegradedPenalty; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("degraded penalty = %v, want %v", clean-degraded, w.ConfidenceDegradedPenalty)
	}
}

func TestConfidence_ClampedToZeroOne(t *testing.T) {
	w := DefaultWeights()
	got := w.Confidence(0, []float64{0}, 0, 0, true)
	if got < 0 {
		t.Errorf("Confidence = %v, want clamped at 0", got)
	}
}
