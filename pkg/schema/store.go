package schema

import "context"

// Record is one mutable record instance owned by the caller.
//
// ID returns nil while the record has never been saved; stores assign the
// identity during Save.
type Record interface {
	Schema() *Schema
	Get(field string) any
	Set(field string, value any)
	ID() any
	SetID(id any)
}

// Store is the persistence collaborator consumed by the validation layer.
//
// Exists is a plain read used for uniqueness checks; it carries no locking
// guarantee (see the package documentation).
type Store interface {
	// Find resolves a record of the given schema by identity.
	// Returns ErrNotFound when no such record exists.
	Find(ctx context.Context, s *Schema, id any) (Record, error)

	// Exists reports whether a record of the given schema matches every
	// field/value pair in filter. A record whose identity equals excludeID is
	// ignored, so a saved record never collides with itself. Pass nil to
	// exclude nothing.
	Exists(ctx context.Context, s *Schema, filter map[string]any, excludeID any) (bool, error)

	// Save commits the record, assigning an identity on first save.
	Save(ctx context.Context, rec Record) error

	// Attach links related to the owner record's to-many field. The owner
	// must already have an identity.
	Attach(ctx context.Context, owner Record, field string, related Record) error

	// NewRecord returns a fresh unsaved record of the given schema.
	NewRecord(s *Schema) Record
}
