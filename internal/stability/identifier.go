package stability

import "strings"

// IsDynamicIdentifier reports whether id has one of the shapes §4.1
// associates with framework-generated, non-semantic identifiers.
func (v Vocabulary) IsDynamicIdentifier(id string) bool {
	if id == "" {
		return false
	}
	if reHexOnly.MatchString(id) {
		return true
	}
	if reDigitRun.MatchString(id) {
		return true
	}
	if reShortPrefixHash.MatchString(id) && (reHasDigit.MatchString(id) || reHasUpper.MatchString(id)) {
		return true
	}
	if reOpaqueReactID.MatchString(id) {
		return true
	}
	if reUUID.MatchString(id) {
		return true
	}
	if reReactPickerID.MatchString(id) {
		return true
	}
	for _, prefix := range v.FrameworkIDPrefixes {
		rest := strings.TrimPrefix(id, prefix)
		if rest != id {
			// allow an optional trailing numeric suffix after the prefix
			rest = strings.TrimRightFunc(rest, isDigitRune)
			_ = rest
			return true
		}
	}
	if hasDynamicSegmentShape(id) {
		return true
	}
	return false
}

// hasDynamicSegmentShape matches three-or-more hyphen/underscore-separated
// segments ending in a numeric segment, e.g. "user-profile-card-42".
func hasDynamicSegmentShape(id string) bool {
	segments := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' })
	if len(segments) < 3 {
		return false
	}
	last := segments[len(segments)-1]
	if last == "" {
		return false
	}
	for _, r := range last {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isDigitRune(r rune) bool { return r >= '0' && r <= '9' }

// IsStableIdentifier reports whether id is non-empty and not dynamic.
func (v Vocabulary) IsStableIdentifier(id string) bool {
	return id != "" && !v.IsDynamicIdentifier(id)
}

// IsDynamicToken is the looser value-level dynamic check §4.2 applies to
// general attribute values (not just identifier-shaped ones): long hex
// runs, long digit runs, the literal "undefined"/"[object Object]",
// template-literal placeholders, and very long hash-like strings.
func (v Vocabulary) IsDynamicToken(tok string) bool {
	if tok == "" {
		return false
	}
	switch tok {
	case "undefined", "[object Object]":
		return true
	}
	if strings.Contains(tok, "{{") && strings.Contains(tok, "}}") {
		return true
	}
	if reHexOnly.MatchString(tok) {
		return true
	}
	if reDigitRun.MatchString(tok) {
		return true
	}
	if len(tok) >= 32 && isHashLike(tok) {
		return true
	}
	return v.IsDynamicIdentifier(tok)
}

func isHashLike(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
