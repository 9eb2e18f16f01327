// Package memstore provides an in-memory implementation of the modelkit
// persistence contracts (schema.Record and schema.Store).
//
// It is the reference store used throughout the module's tests and examples:
// records live in mutex-guarded maps, identities are assigned on first save
// (serial integers for integer primary keys, UUID strings otherwise), and
// to-many attachments are kept per owner record and readable back through
// Attached.
//
// Like every schema.Store, the uniqueness lookup is check-then-act: the
// mutex guards map consistency, not the validate-then-save window.
package memstore
