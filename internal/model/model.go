// Package model defines the Element Identity Descriptor data model (§3):
// the value types shared by every pipeline stage and by the public eid
// package. It has no behavior beyond simple accessors — it exists purely to
// let internal/* subsystems and the root eid package agree on shapes without
// an import cycle back through eid.
package model

import "time"

// Version is the current EID schema tag.
const Version = "1.0"

// ShapeKind discriminates an SVG element's geometric category.
type ShapeKind string

const (
	ShapePath     ShapeKind = "path"
	ShapeRect     ShapeKind = "rect"
	ShapeCircle   ShapeKind = "circle"
	ShapeEllipse  ShapeKind = "ellipse"
	ShapeLine     ShapeKind = "line"
	ShapePolyline ShapeKind = "polyline"
	ShapePolygon  ShapeKind = "polygon"
	ShapeGroup    ShapeKind = "g"
	ShapeText     ShapeKind = "text"
	ShapeUse      ShapeKind = "use"
	ShapeSVG      ShapeKind = "svg"
	ShapeOther    ShapeKind = "other"
)

// TextMode selects how Semantics.Text is compared during matching.
type TextMode string

const (
	TextExact   TextMode = "exact"
	TextPartial TextMode = "partial"
)

// Text carries both forms of an element's extracted text alongside the
// comparison mode a matcher should use.
type Text struct {
	Raw        string
	Normalized string
	Mode       TextMode
}

// Fingerprint is the SVG identity fingerprint of §4.3.
type Fingerprint struct {
	Shape        ShapeKind
	DHash        string
	GeomHash     string
	HasAnimation bool
	Role         string
	TitleText    string
}

// Semantics is a single element's extracted stable identity surface (§3).
// Every field is optional; a zero-value Semantics carries no information.
type Semantics struct {
	ID         string
	Classes    []string
	Attributes map[string]string
	Text       *Text
	Role       string
	SVG        *Fingerprint
}

// Empty reports whether the semantics carry no identifying information at
// all — used by the path builder's shouldInclude filter (§4.5).
func (s Semantics) Empty() bool {
	return s.ID == "" && len(s.Classes) == 0 && len(s.Attributes) == 0 &&
		s.Text == nil && s.Role == "" && s.SVG == nil
}

// Node is one element along an EID's anchor→target chain (§3).
type Node struct {
	Tag          string
	Semantics    Semantics
	Score        float64
	SiblingIndex int // 1-based; 0 means "not set"
}

// AnchorNode is the semantic root of an EID: a Node plus the degraded flag
// that fires when the anchor finder had to fall back to the document body.
type AnchorNode struct {
	Node
	Degraded bool
}

// ConstraintKind discriminates a Constraint (§3, §4.8).
type ConstraintKind string

const (
	ConstraintUniqueness    ConstraintKind = "uniqueness"
	ConstraintTextProximity ConstraintKind = "text-proximity"
	ConstraintPosition      ConstraintKind = "position"
	ConstraintVisibility    ConstraintKind = "visibility"
)

// PositionStrategy selects how a position constraint picks its singleton.
type PositionStrategy string

const (
	PositionFirstInDOM PositionStrategy = "first-in-dom"
	PositionTopMost    PositionStrategy = "top-most"
	PositionLeftMost   PositionStrategy = "left-most"
)

// Constraint is a discriminated disambiguation rule carried on an EID.
type Constraint struct {
	Kind     ConstraintKind
	Priority int

	// text-proximity
	Reference    string
	MaxDistance  int

	// position
	Strategy PositionStrategy

	// visibility
	Required bool
}

// OnMissing enumerates fallback behavior when the target cannot be found.
type OnMissing string

const (
	MissingStrict     OnMissing = "strict"
	MissingAnchorOnly OnMissing = "anchor-only"
	MissingNone       OnMissing = "none"
)

// OnMultiple enumerates fallback behavior when multiple candidates remain.
type OnMultiple string

const (
	MultipleFirst         OnMultiple = "first"
	MultipleBestScore     OnMultiple = "best-score"
	MultipleAllowMultiple OnMultiple = "allow-multiple"
)

// Fallback is an EID's recovery policy (§3).
type Fallback struct {
	OnMissing        OnMissing
	OnMultiple       OnMultiple
	MaxRecoveryDepth int
}

// DegradationReason is the public, fixed contract of §6/§7.
type DegradationReason string

const (
	ReasonNotFound            DegradationReason = "not-found"
	ReasonAmbiguous           DegradationReason = "ambiguous"
	ReasonInvalidSelector     DegradationReason = "invalid-selector"
	ReasonOverConstrained     DegradationReason = "over-constrained"
	ReasonAnchorOnlyFallback  DegradationReason = "anchor-only-fallback"
	ReasonRelaxedTextMatching DegradationReason = "relaxed-text-matching"
	ReasonPathDepthOverflow   DegradationReason = "path-depth-overflow"
)

// Meta is an EID's generation provenance and confidence (§3).
type Meta struct {
	Confidence        float64
	GeneratedAt       time.Time
	GeneratorID       string
	Source            string
	Degraded          bool
	DegradationReason DegradationReason
}

// EID is the Element Identity Descriptor (§3): the complete, serializable,
// version-tagged value produced by generation and consumed by resolution.
type EID struct {
	Version     string
	Anchor      AnchorNode
	Path        []Node
	Target      Node
	Constraints []Constraint
	Fallback    Fallback
	Meta        Meta
}
