// Package validate implements the modelkit validation orchestrator.
//
// A ModelValidator is bound to exactly one record instance and its store. Each
// Validate call merges proposed input over the record's current values, runs
// the per-field rule pipelines derived from the schema (required, coercion,
// max length, choices, uniqueness), checks unique-together groups, resolves
// to-one and to-many relation references, and finally invokes an optional
// whole-record clean hook. The outcome is a boolean plus a per-field error
// map; nothing validation-related is ever raised.
//
//	v, err := validate.New(rec, store)
//	if err != nil { ... } // rec was not a usable record instance
//
//	ok, err := v.Validate(ctx, map[string]any{"name": "tim"})
//	if err != nil { ... } // the store failed; not a validation outcome
//	if !ok {
//		for field, msg := range v.Errors() { ... }
//	}
//	saved, err := v.Save(ctx)
//
// Relation fields accept heterogeneous input: a raw identity value, a mapping
// carrying the related primary key, or a resolved record instance. To-many
// fields take a sequence of any mix of those; a blank mapping inside the
// sequence is accepted and produces a fresh blank related record at save
// time. This mirrors the behavior of the systems modelkit replaces and is
// kept for compatibility.
//
// The clean hook is injected at construction (WithClean) rather than
// overridden by embedding, and its failure is recorded under BaseErrorKey —
// a reserved key that never collides with a declared field name.
//
// A ModelValidator mutates its data and errors in place; a single instance
// must not be used from multiple goroutines. Distinct instances are
// independent, except that uniqueness checks read shared store state and are
// check-then-act (see the schema package documentation).
package validate
