package stability

import (
	"regexp"
	"strings"
)

var (
	reAlnumRun8    = regexp.MustCompile(`^[0-9a-zA-Z]{8,}$`)
	reTimestampRun = regexp.MustCompile(`^\d{8,}$`)
)

// CleanURLValue applies the §4.1/§6 public-contract URL cleaning rule for
// href/src values: relative URLs lose their query string; absolute URLs
// keep theirs; a dynamic hash fragment is stripped, a non-dynamic one is
// preserved. When sameOriginBase is non-empty and value is an absolute URL
// on that origin, the result is normalized to its relative form.
func (v Vocabulary) CleanURLValue(value string, sameOriginBase string) string {
	if value == "" {
		return value
	}

	base, fragment := splitFragment(value)

	isAbsolute := isAbsoluteURL(base)

	if isAbsolute {
		if sameOriginBase != "" && sameOrigin(base, sameOriginBase) {
			base = toRelative(base, sameOriginBase)
			isAbsolute = false
		}
	}

	if !isAbsolute {
		base = stripQuery(base)
	}

	return appendFragment(base, fragment)
}

func splitFragment(value string) (base string, fragment string) {
	idx := strings.Index(value, "#")
	if idx < 0 {
		return value, ""
	}
	return value[:idx], value[idx+1:]
}

func appendFragment(base, fragment string) string {
	if fragment == "" || isDynamicFragment(fragment) {
		return base
	}
	return base + "#" + fragment
}

func isDynamicFragment(fragment string) bool {
	if reUUID.MatchString(fragment) {
		return true
	}
	if reTimestampRun.MatchString(fragment) {
		return true
	}
	if reAlnumRun8.MatchString(fragment) {
		return true
	}
	return false
}

func isAbsoluteURL(u string) bool {
	if strings.HasPrefix(u, "//") {
		return true
	}
	return strings.Contains(u, "://")
}

func stripQuery(u string) string {
	idx := strings.Index(u, "?")
	if idx < 0 {
		return u
	}
	return u[:idx]
}

func origin(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "//")
	idx := strings.IndexAny(u, "/?#")
	if idx < 0 {
		return u
	}
	return u[:idx]
}

func sameOrigin(absoluteURL, base string) bool {
	return origin(absoluteURL) == origin(base)
}

func toRelative(absoluteURL, base string) string {
	o := origin(absoluteURL)
	idx := strings.Index(absoluteURL, o)
	if idx < 0 {
		return absoluteURL
	}
	rest := absoluteURL[idx+len(o):]
	if rest == "" {
		return "/"
	}
	return rest
}
