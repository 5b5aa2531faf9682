package stability

import "strings"

// The attribute name lists used below are read from the Vocabulary at call
// time rather than precomputed into sets, since Vocabulary is small and may be swapped per
// Classifier instance.

// IsReferenceBearingAttribute reports whether name is one of the attributes
// whose value is itself a (possibly space-separated) list of element id
// references ({for, aria-labelledby, aria-describedby, aria-controls,
// aria-owns}).
func (v Vocabulary) IsReferenceBearingAttribute(name string) bool {
	return containsExact(v.ReferenceBearingAttributes, name)
}

// IsStableAttribute answers the third pure question of §4.1: is this
// attribute name/value pair stable? Case-sensitive throughout — "DATA-TESTID"
// is not a test marker.
func (v Vocabulary) IsStableAttribute(name, value string) bool {
	if !v.isIncludedAttributeName(name) {
		return false
	}
	if v.IsReferenceBearingAttribute(name) {
		for _, tok := range strings.Fields(value) {
			if v.IsDynamicIdentifier(tok) {
				return false
			}
		}
	}
	return true
}

func (v Vocabulary) isIncludedAttributeName(name string) bool {
	if name == "id" {
		return true
	}
	if strings.HasPrefix(name, "data-") {
		return v.isIncludedDataAttribute(name)
	}
	if strings.HasPrefix(name, "aria-") {
		return !containsExact(v.AriaStateAttributes, name)
	}
	return containsExact(v.StableHTMLAttributes, name)
}

// isIncludedDataAttribute implements the data-* precedence chain: test
// markers always win; then library-state and analytics prefixes exclude
// (even when the name ends in "-id"); then state suffixes exclude; anything
// left over is accepted.
func (v Vocabulary) isIncludedDataAttribute(name string) bool {
	if containsExact(v.TestMarkerAttributes, name) {
		return true
	}
	for _, prefix := range v.LibraryStateDataPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	for _, prefix := range v.AnalyticsDataPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}
	for _, suffix := range v.StateDataSuffixes {
		if strings.HasSuffix(name, "-"+suffix) {
			return false
		}
	}
	return true
}

func containsExact(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// IsURLValuedAttribute reports whether name carries a URL value subject to
// the cleaning rules of CleanURLValue.
func (v Vocabulary) IsURLValuedAttribute(name string) bool {
	return containsExact(v.URLValuedAttributes, name)
}
