package eid

import (
	"github.com/domanchor/eid/dom"
	"github.com/domanchor/eid/internal/cache"
)

// Options configures Generate (§6).
type Options struct {
	// MaxPathDepth bounds how many ancestors the anchor finder and path
	// builder will walk before giving up and degrading. Default 10.
	MaxPathDepth int
	// EnableSVGFingerprint attaches an SVG fingerprint (§4.3) to the target
	// when it is an SVG-namespaced element. Default true.
	EnableSVGFingerprint bool
	// ConfidenceThreshold rejects generation (returns ok=false) when the
	// computed meta.confidence is strictly below this value. Default 0.0,
	// which accepts every confidence including 0.
	ConfidenceThreshold float64
	// FallbackToBody allows the anchor finder to fall back to the document
	// body as a degraded anchor when no tiered candidate is found. Default
	// true; false causes generation to fail instead of anchoring to body.
	FallbackToBody bool
	// IncludeUtilityClasses bypasses the class stability filter on every
	// extracted element. Default false.
	IncludeUtilityClasses bool
	// Source is an opaque tag stored in meta.Source, identifying the caller
	// or capture context that produced this EID.
	Source string
	// Cache is the memoization instance used for this generation. A nil
	// Cache uses the process-global default.
	Cache *cache.Cache
	// Root is an alternate query root used to validate compiled selectors
	// against during path building. A nil Root uses the element's own
	// document root.
	Root dom.Element
}

// DefaultOptions returns Generate's documented defaults (§6).
func DefaultOptions() Options {
	return Options{
		MaxPathDepth:         10,
		EnableSVGFingerprint: true,
		ConfidenceThreshold:  0.0,
		FallbackToBody:       true,
		IncludeUtilityClasses: false,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxPathDepth == 0 {
		o.MaxPathDepth = d.MaxPathDepth
	}
	return o
}

// ResolveOptions configures Resolve (§6).
type ResolveOptions struct {
	// StrictMode disables every ambiguity fallback: multiple surviving
	// candidates resolve to status Ambiguous rather than being narrowed
	// further. Default false.
	StrictMode bool
	// EnableFallback allows the target-missing fallback handler (driven by
	// the EID's own Fallback.OnMissing) to run. Default true; false turns
	// every target-missing case into an error regardless of OnMissing.
	EnableFallback bool
	// MaxCandidates truncates the Phase-1 CSS-narrowing result. Default 20.
	MaxCandidates int
	// Root is the document (or subtree) root to resolve against.
	Root dom.Element
	// OriginDocument, if set, is the document the EID was originally
	// generated against. An EID carries no document handle of its own (§3:
	// it is pure, serializable data with no opaque handles), so the
	// cross-document check of §4.9 can only run when a caller has tracked
	// the origin out-of-band and supplies it here; left nil, the check is
	// skipped and resolution proceeds against whatever Root is given.
	OriginDocument dom.Document
}

// DefaultResolveOptions returns Resolve's documented defaults (§6).
func DefaultResolveOptions() ResolveOptions {
	return ResolveOptions{
		EnableFallback: true,
		MaxCandidates:  20,
	}
}

func (o ResolveOptions) withDefaults() ResolveOptions {
	d := DefaultResolveOptions()
	if o.MaxCandidates == 0 {
		o.MaxCandidates = d.MaxCandidates
	}
	return o
}
