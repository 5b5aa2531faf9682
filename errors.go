package eid

import "errors"

// Sentinel errors are reserved for conditions that are genuinely exceptional
// misuse of the API (§7) — not for the graded, expected outcomes the
// resolver and generator return as values (status/degradation instead).
// Resolve and Generate return plain values (Result, EID/bool), not (_, error)
// pairs, so a nil root reaching Resolve surfaces as Result{Status:
// StatusError} with a warning rather than as a returned error — there is no
// error-typed return for a sentinel to occupy.

// errNoQueryEngine is an internal detail: Generate was asked to validate a
// compiled path against a live document but no dom.QueryEngine was wired in,
// so every uniqueness probe conservatively reports "not unique".
var errNoQueryEngine = errors.New("eid: no query engine configured")
