// Package stability implements the pure stability-classification layer:
// is this identifier, class name, or attribute name/value pair stable
// enough to participate in an element's identity.
package stability

import (
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Vocabulary is the living, empirically-derived list of patterns the
// classifier judges against. It is a flat, frozen configuration struct
// (no class hierarchy) — see DESIGN.md. Adding a new framework prefix is a
// one-line change to one of these slices, loaded from YAML or left at the
// built-in defaults.
type Vocabulary struct {
	FrameworkIDPrefixes []string `yaml:"framework_id_prefixes"`
	UtilityClassPrefixes []string `yaml:"utility_class_prefixes"`
	UtilityClassExact    []string `yaml:"utility_class_exact"`
	DynamicClassPrefixes []string `yaml:"dynamic_class_prefixes"`

	StableHTMLAttributes []string `yaml:"stable_html_attributes"`
	AriaStateAttributes  []string `yaml:"aria_state_attributes"`
	ReferenceBearingAttributes []string `yaml:"reference_bearing_attributes"`

	TestMarkerAttributes     []string `yaml:"test_marker_attributes"`
	LibraryStateDataPrefixes []string `yaml:"library_state_data_prefixes"`
	StateDataSuffixes        []string `yaml:"state_data_suffixes"`
	AnalyticsDataPrefixes    []string `yaml:"analytics_data_prefixes"`

	URLValuedAttributes []string `yaml:"url_valued_attributes"`
}

// LoadVocabulary reads a YAML override file and merges it over the built-in
// defaults: any slice present (non-nil) in the file replaces the default
// slice of the same name. A missing file is not an error — the defaults are
// returned unchanged, matching the zero-config path callers get by default.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	if path == "" {
		return v, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return v, err
	}
	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return v, err
	}
	mergeVocabulary(&v, override)
	return v, nil
}

func mergeVocabulary(base *Vocabulary, override Vocabulary) {
	if override.FrameworkIDPrefixes != nil {
		base.FrameworkIDPrefixes = override.FrameworkIDPrefixes
	}
	if override.UtilityClassPrefixes != nil {
		base.UtilityClassPrefixes = override.UtilityClassPrefixes
	}
	if override.UtilityClassExact != nil {
		base.UtilityClassExact = override.UtilityClassExact
	}
	if override.DynamicClassPrefixes != nil {
		base.DynamicClassPrefixes = override.DynamicClassPrefixes
	}
	if override.StableHTMLAttributes != nil {
		base.StableHTMLAttributes = override.StableHTMLAttributes
	}
	if override.AriaStateAttributes != nil {
		base.AriaStateAttributes = override.AriaStateAttributes
	}
	if override.ReferenceBearingAttributes != nil {
		base.ReferenceBearingAttributes = override.ReferenceBearingAttributes
	}
	if override.TestMarkerAttributes != nil {
		base.TestMarkerAttributes = override.TestMarkerAttributes
	}
	if override.LibraryStateDataPrefixes != nil {
		base.LibraryStateDataPrefixes = override.LibraryStateDataPrefixes
	}
	if override.StateDataSuffixes != nil {
		base.StateDataSuffixes = override.StateDataSuffixes
	}
	if override.AnalyticsDataPrefixes != nil {
		base.AnalyticsDataPrefixes = override.AnalyticsDataPrefixes
	}
	if override.URLValuedAttributes != nil {
		base.URLValuedAttributes = override.URLValuedAttributes
	}
}

// DefaultVocabulary returns the built-in enumeration data. ~300-500 lines of
// enumeration is the architecture budget (spec.md §9); this is that data.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		FrameworkIDPrefixes: []string{
			"radix-", "mui-", "headlessui-", "reach-", "chakra-", "mantine-",
			"rc_select_", "rc-tabs-", "ant-",
		},
		UtilityClassPrefixes: []string{
			// Tailwind spacing/sizing/layout
			"p-", "px-", "py-", "pt-", "pb-", "pl-", "pr-",
			"m-", "mx-", "my-", "mt-", "mb-", "ml-", "mr-",
			"w-", "h-", "min-w-", "min-h-", "max-w-", "max-h-",
			"gap-", "space-x-", "space-y-",
			"top-", "bottom-", "left-", "right-", "inset-", "z-",
			"rounded-", "border-", "shadow-", "opacity-", "ring-",
			"bg-", "text-", "font-", "leading-", "tracking-",
			"flex-", "grid-", "col-span-", "row-span-", "items-", "justify-",
			"overflow-", "object-", "cursor-", "select-", "pointer-events-",
			"translate-", "rotate-", "scale-", "transform-", "transition-",
			"duration-", "ease-", "delay-", "animate-",
			// Responsive / state variants
			"sm:", "md:", "lg:", "xl:", "2xl:",
			"hover:", "focus:", "focus-within:", "focus-visible:", "active:",
			"disabled:", "visited:", "group-hover:", "peer-focus:",
			"dark:", "first:", "last:", "odd:", "even:",
			// Bootstrap
			"col-", "row-", "btn-", "d-", "text-center", "text-left", "text-right",
			"align-", "float-", "position-", "bg-", "border-",
		},
		UtilityClassExact: []string{
			"flex", "grid", "block", "inline", "inline-block", "hidden",
			"container", "relative", "absolute", "fixed", "sticky", "static",
			"rounded", "border", "shadow", "truncate", "visible", "invisible",
			"d-flex", "d-block", "d-none", "d-inline",
		},
		DynamicClassPrefixes: []string{
			"sc-", "css-", "emotion-", "jsx-", "linaria-", "Mui-",
		},
		StableHTMLAttributes: []string{
			"name", "type", "placeholder", "title", "for", "alt", "href", "role",
		},
		AriaStateAttributes: []string{
			"aria-selected", "aria-checked", "aria-pressed", "aria-expanded",
			"aria-hidden", "aria-disabled", "aria-current", "aria-busy",
			"aria-invalid", "aria-grabbed", "aria-live", "aria-atomic",
		},
		ReferenceBearingAttributes: []string{
			"for", "aria-labelledby", "aria-describedby", "aria-controls", "aria-owns",
		},
		TestMarkerAttributes: []string{
			"data-testid", "data-test", "data-test-id", "data-cy", "data-qa",
			"data-automation-id",
		},
		LibraryStateDataPrefixes: []string{
			"data-radix-", "data-headlessui-", "data-reach-", "data-mui-",
			"data-chakra-", "data-mantine-", "data-tw-merge",
		},
		StateDataSuffixes: []string{
			"state", "active", "selected", "open", "loading", "orientation", "theme",
			"checked", "expanded", "disabled", "collapsed", "focus", "hover",
		},
		AnalyticsDataPrefixes: []string{
			"data-ga", "data-gtm-", "data-yandex-", "data-hj-", "data-hotjar-",
			"data-fs-", "data-mouseflow-", "data-smartlook-", "data-optimizely-",
			"data-vwo-", "data-fb-", "data-tt-", "data-li-", "data-track",
			"data-analytics", "data-impression-", "data-conversion-", "data-segment-",
			"data-event-",
		},
		URLValuedAttributes: []string{"href", "src"},
	}
}

// compiled regexes shared by identifier.go and class.go — kept here next to
// the vocabulary they complement since they encode fixed structural shapes
// rather than living enumeration data.
var (
	reHexOnly        = regexp.MustCompile(`^[0-9a-fA-F]{12,}$`)
	reDigitRun        = regexp.MustCompile(`\d{5,}`)
	reShortPrefixHash = regexp.MustCompile(`^[a-zA-Z]{1,3}[A-Za-z0-9]{8,}$`)
	reOpaqueReactID   = regexp.MustCompile(`:r[0-9a-zA-Z]+:`)
	reUUID            = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	reReactPickerID   = regexp.MustCompile(`^react-.*-picker(-\d+)?$`)
	reHasDigit        = regexp.MustCompile(`\d`)
	reHasUpper        = regexp.MustCompile(`[A-Z]`)
)
