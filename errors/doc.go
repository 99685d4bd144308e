// Package errors provides standardized error handling patterns for rush.
//
// # Overview
//
// The errors package implements a three-class error classification system
// for parameter management: Transient (temporary, retryable), Invalid (bad
// request, non-retryable), and Fatal (unrecoverable, stop processing).
//
// Classification lets callers decide between retrying a flaky source,
// surfacing a bad key or conversion to the operator, and aborting outright,
// without hardcoded error string matching.
//
// # Error Classification
//
//   - Transient: source unavailable, connection issues, timeouts (retry recommended)
//   - Invalid: missing keys, type mismatches, malformed namespaces (do not retry)
//   - Fatal: retry budget exhausted, unrecoverable states (stop processing)
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Return standard error variables for known conditions:
//
//	if _, ok := values[key]; !ok {
//	    return errors.ErrKeyNotFound
//	}
//
// Wrap errors with context for debugging:
//
//	if err := source.GetValue(ctx, name); err != nil {
//	    return errors.WrapTransient(err, "Store", "Load", "fetch value")
//	}
//
// Check classification for retry logic:
//
//	if err := store.Load(ctx, ns); err != nil {
//	    if errors.IsTransient(err) {
//	        // retry with backoff
//	    } else if errors.IsInvalid(err) {
//	        // fix the request, do not retry
//	    }
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: <underlying error>"
//
// so log lines and wrapped chains read consistently across the store and
// its sources.
package errors
