// Package schema defines the descriptor types and collaborator contracts used
// by the modelkit validation layer.
//
// A Schema describes one persisted record type: its fields, their declared
// constraints (nullable, defaults, max length, choices, uniqueness,
// unique-together groups) and their relations to other schemas. Schemas are
// plain data; they carry no behavior beyond lookup helpers and are safe to
// share between goroutines once constructed.
//
// Two small interfaces form the boundary to the persistence layer:
//
//   - Record is one mutable record instance: a bag of field values plus an
//     identity that may be unset while the record has never been saved.
//   - Store is the persistence collaborator. It resolves records by identity,
//     answers uniqueness lookups, commits records, and attaches related
//     records for to-many fields.
//
// The validation layer itself never touches storage directly; everything goes
// through Store. See modelkit/pkg/memstore for the in-memory reference
// implementation and modelkit/pkg/pgstore for the PostgreSQL adapter.
//
// # Uniqueness is check-then-act
//
// Store.Exists is a plain read. Two concurrent validations of records sharing
// a to-be-unique value can both pass the check and both commit. This layer
// deliberately does not lock or transact uniqueness; callers that need a hard
// guarantee must enforce it in the store (for example with a database unique
// index).
package schema
