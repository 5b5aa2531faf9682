package eid

import "fmt"

// ValidationResult is what Validate returns (§6): whether the EID is
// structurally well-formed, a list of hard errors, and a list of softer
// warnings that don't invalidate the value.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks an EID's structure (§6): errors for an empty version,
// empty anchor/target/path tags, and scores or confidence outside [0,1];
// warnings for unknown version, missing meta fields, missing fallback rules,
// and an anchor with empty semantics that is not marked degraded. Empty
// semantics are never reported as an error.
func Validate(e EID) ValidationResult {
	var errs, warns []string

	if e.Version == "" {
		errs = append(errs, "version is empty")
	} else if e.Version != Version {
		warns = append(warns, fmt.Sprintf("unknown version %q", e.Version))
	}

	if e.Anchor.Tag == "" {
		errs = append(errs, "anchor tag is empty")
	}
	if e.Anchor.Score < 0 || e.Anchor.Score > 1 {
		errs = append(errs, fmt.Sprintf("anchor score %v out of [0,1]", e.Anchor.Score))
	}
	if e.Anchor.Semantics.Empty() && !e.Anchor.Degraded {
		warns = append(warns, "anchor carries no semantics and is not marked degraded")
	}

	if e.Target.Tag == "" {
		errs = append(errs, "target tag is empty")
	}
	if e.Target.Score < 0 || e.Target.Score > 1 {
		errs = append(errs, fmt.Sprintf("target score %v out of [0,1]", e.Target.Score))
	}

	for i, n := range e.Path {
		if n.Tag == "" {
			errs = append(errs, fmt.Sprintf("path[%d] tag is empty", i))
		}
		if n.Score < 0 || n.Score > 1 {
			errs = append(errs, fmt.Sprintf("path[%d] score %v out of [0,1]", i, n.Score))
		}
	}

	if e.Meta.Confidence < 0 || e.Meta.Confidence > 1 {
		errs = append(errs, fmt.Sprintf("meta.confidence %v out of [0,1]", e.Meta.Confidence))
	}
	if e.Meta.GeneratedAt.IsZero() {
		warns = append(warns, "meta.generatedAt is unset")
	}
	if e.Meta.GeneratorID == "" {
		warns = append(warns, "meta.generatorID is unset")
	}
	if e.Meta.Degraded && e.Meta.DegradationReason == "" {
		warns = append(warns, "meta.degraded is set but no degradationReason is recorded")
	}

	if e.Fallback.OnMissing == "" && e.Fallback.OnMultiple == "" {
		warns = append(warns, "no fallback rules set (onMissing/onMultiple both empty)")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}
