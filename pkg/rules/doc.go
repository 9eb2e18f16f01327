// Package rules provides the atomic validation primitives and scalar coercion
// used by the modelkit orchestrator, plus the error types they produce.
//
// A Rule checks and possibly transforms a single field value:
//
//	type Rule func(value any) (any, error)
//
// Rules either return the (possibly coerced) value, a *ValidationError with a
// canonical message and translation metadata, or a plain error when a supplied
// lookup failed for non-validation reasons. Apply runs an ordered rule list
// and stops at the first failure, so later rules never observe a value an
// earlier rule rejected.
//
// Every primitive is a pure function over its inputs; the only I/O a rule may
// perform goes through a Lookup callable supplied by the caller. The package
// holds no state and is safe for concurrent use.
//
// Canonical failure messages are keyed by symbolic reasons (see Message), so
// callers raising their own failures — for example from a whole-record clean
// hook — surface the same wording as the built-in primitives:
//
//	return nil, rules.Fail(rules.ReasonRequired)
package rules
