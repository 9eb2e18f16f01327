// Package modelkit is a schema-driven validation layer for persisted records.
//
// It validates a proposed set of loosely-typed changes — primitives, related
// records referenced by identity, by embedded mapping, or by instance —
// against a record's declared schema before anything is committed to storage,
// and hands back a pass/fail result, a per-field error map, and coerced
// cleaned values ready to persist.
//
// The module is organized as small cooperating packages:
//
//   - pkg/schema     — field descriptors, Record and Store contracts
//   - pkg/rules      — atomic validation primitives and scalar coercion
//   - pkg/validate   — the ModelValidator orchestrator (Validate/Save)
//   - pkg/memstore   — in-memory Store used by tests and examples
//   - pkg/pgstore    — PostgreSQL Store adapter on pgx/v5
//   - pkg/schemafile — YAML schema definitions
//
// Basic usage:
//
//	sch := &schema.Schema{
//		Name:       "person",
//		PrimaryKey: "id",
//		Fields: []schema.Field{
//			{Name: "id", Kind: schema.KindInt},
//			{Name: "name", Kind: schema.KindString, MaxLength: 100},
//		},
//	}
//
//	rec := memstore.NewRecord(sch)
//	v, err := validate.New(rec, store)
//	if err != nil { ... }
//
//	ok, err := v.Validate(ctx, map[string]any{"name": "tim"})
//	if err != nil { ... }    // store failure, not a validation outcome
//	if !ok {
//		_ = v.Errors()       // field -> message, first failure wins
//	}
//	saved, err := v.Save(ctx)
//
// Validation outcomes are always returned as data, never raised; the only
// errors the orchestrator surfaces are structural misuse at construction and
// failures of the persistence collaborator itself.
package modelkit
