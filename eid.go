package eid

import "github.com/domanchor/eid/internal/model"

// Public type aliases over internal/model. Generation and resolution logic
// lives in internal/* so it can be shared without exposing the subsystem
// packages themselves (§6 lists only the EID value, generate, resolve,
// validate, and the type guard as public surface).

// Version is the current EID schema tag.
const Version = model.Version

type (
	// EID is the Element Identity Descriptor (§3).
	EID = model.EID
	// Node is one element along an EID's anchor→target chain (§3).
	Node = model.Node
	// AnchorNode is an EID's semantic root (§3).
	AnchorNode = model.AnchorNode
	// Semantics is an element's extracted stable identity surface (§3).
	Semantics = model.Semantics
	// Text carries an element's extracted text and comparison mode.
	Text = model.Text
	// TextMode selects how Text is compared during matching.
	TextMode = model.TextMode
	// Fingerprint is the SVG identity fingerprint of §4.3.
	Fingerprint = model.Fingerprint
	// ShapeKind discriminates an SVG element's geometric category.
	ShapeKind = model.ShapeKind
	// Constraint is a discriminated disambiguation rule carried on an EID.
	Constraint = model.Constraint
	// ConstraintKind discriminates a Constraint (§3, §4.8).
	ConstraintKind = model.ConstraintKind
	// PositionStrategy selects how a position constraint picks its singleton.
	PositionStrategy = model.PositionStrategy
	// Fallback is an EID's recovery policy (§3).
	Fallback = model.Fallback
	// OnMissing enumerates fallback behavior when the target cannot be found.
	OnMissing = model.OnMissing
	// OnMultiple enumerates fallback behavior when multiple candidates remain.
	OnMultiple = model.OnMultiple
	// Meta is an EID's generation provenance and confidence (§3).
	Meta = model.Meta
	// DegradationReason is the public, fixed contract of §6/§7.
	DegradationReason = model.DegradationReason
)

const (
	TextExact   = model.TextExact
	TextPartial = model.TextPartial

	ShapePath     = model.ShapePath
	ShapeRect     = model.ShapeRect
	ShapeCircle   = model.ShapeCircle
	ShapeEllipse  = model.ShapeEllipse
	ShapeLine     = model.ShapeLine
	ShapePolyline = model.ShapePolyline
	ShapePolygon  = model.ShapePolygon
	ShapeGroup    = model.ShapeGroup
	ShapeText     = model.ShapeText
	ShapeUse      = model.ShapeUse
	ShapeSVG      = model.ShapeSVG
	ShapeOther    = model.ShapeOther

	ConstraintUniqueness    = model.ConstraintUniqueness
	ConstraintTextProximity = model.ConstraintTextProximity
	ConstraintPosition      = model.ConstraintPosition
	ConstraintVisibility    = model.ConstraintVisibility

	PositionFirstInDOM = model.PositionFirstInDOM
	PositionTopMost    = model.PositionTopMost
	PositionLeftMost   = model.PositionLeftMost

	MissingStrict     = model.MissingStrict
	MissingAnchorOnly = model.MissingAnchorOnly
	MissingNone       = model.MissingNone

	MultipleFirst         = model.MultipleFirst
	MultipleBestScore     = model.MultipleBestScore
	MultipleAllowMultiple = model.MultipleAllowMultiple

	ReasonNotFound            = model.ReasonNotFound
	ReasonAmbiguous           = model.ReasonAmbiguous
	ReasonInvalidSelector     = model.ReasonInvalidSelector
	ReasonOverConstrained     = model.ReasonOverConstrained
	ReasonAnchorOnlyFallback  = model.ReasonAnchorOnlyFallback
	ReasonRelaxedTextMatching = model.ReasonRelaxedTextMatching
	ReasonPathDepthOverflow   = model.ReasonPathDepthOverflow
)
