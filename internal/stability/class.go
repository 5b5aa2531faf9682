package stability

import "strings"

// ClassCategory is the three-way discriminated judgment §4.1 makes about a
// class name.
type ClassCategory int

const (
	ClassSemantic ClassCategory = iota
	ClassUtility
	ClassDynamic
)

func (c ClassCategory) String() string {
	switch c {
	case ClassUtility:
		return "utility"
	case ClassDynamic:
		return "dynamic"
	default:
		return "semantic"
	}
}

// ClassifyClass judges a single class name into one of three disjoint
// categories. Stable classes are exactly the semantic ones.
func (v Vocabulary) ClassifyClass(name string) ClassCategory {
	if name == "" {
		return ClassUtility
	}
	if isSingleCharOrDigits(name) {
		return ClassUtility
	}
	if v.isUtilityShaped(name) {
		return ClassUtility
	}
	if v.isDynamicClassShaped(name) {
		return ClassDynamic
	}
	return ClassSemantic
}

// IsStableClass reports whether name is semantic (neither utility nor dynamic).
func (v Vocabulary) IsStableClass(name string) bool {
	return v.ClassifyClass(name) == ClassSemantic
}

func isSingleCharOrDigits(name string) bool {
	if len(name) == 1 {
		return true
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (v Vocabulary) isUtilityShaped(name string) bool {
	stripped := stripResponsiveAndStateVariants(name)

	for _, exact := range v.UtilityClassExact {
		if stripped == exact {
			return true
		}
	}
	for _, prefix := range v.UtilityClassPrefixes {
		if strings.HasPrefix(name, prefix) || strings.HasPrefix(stripped, prefix) {
			return true
		}
	}
	if isArbitraryValueClass(stripped) {
		return true
	}
	if isFractionalSuffixClass(stripped) {
		return true
	}
	if isNegativeSpacingClass(stripped) {
		return true
	}
	return false
}

// stripResponsiveAndStateVariants removes Tailwind-style "sm:", "hover:",
// "dark:", "group-hover:" prefixes chained before the base utility, e.g.
// "md:hover:bg-red-500" -> "bg-red-500", so the remaining prefix/exact
// checks see the base utility name.
func stripResponsiveAndStateVariants(name string) string {
	for {
		idx := strings.Index(name, ":")
		if idx < 0 {
			return name
		}
		name = name[idx+1:]
	}
}

// isArbitraryValueClass matches Tailwind's bracket syntax, e.g. "w-[200px]".
func isArbitraryValueClass(name string) bool {
	open := strings.Index(name, "[")
	close := strings.LastIndex(name, "]")
	return open > 0 && close == len(name)-1 && close > open
}

// isFractionalSuffixClass matches "w-1/2", "basis-2/3", etc.
func isFractionalSuffixClass(name string) bool {
	idx := strings.LastIndex(name, "-")
	if idx < 0 || idx == len(name)-1 {
		return false
	}
	suffix := name[idx+1:]
	parts := strings.SplitN(suffix, "/", 2)
	if len(parts) != 2 {
		return false
	}
	return isAllDigits(parts[0]) && isAllDigits(parts[1])
}

// isNegativeSpacingClass matches "-mt-4", "-top-2", etc.
func isNegativeSpacingClass(name string) bool {
	return strings.HasPrefix(name, "-")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (v Vocabulary) isDynamicClassShaped(name string) bool {
	for _, prefix := range v.DynamicClassPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	// CSS-in-JS / framework hash shapes share the identifier dynamic shapes
	// (short prefix + long alphanumeric tail with digit/uppercase, opaque
	// react ids, uuid-shaped, numbered-segment chains).
	return v.IsDynamicIdentifier(name)
}
