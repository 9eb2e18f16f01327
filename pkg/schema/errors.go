package schema

import "errors"

var (
	// ErrNotFound is returned by Store.Find when no record matches the identity.
	ErrNotFound = errors.New("record not found")

	// ErrUnknownField is returned by stores when asked about a field the
	// schema does not declare.
	ErrUnknownField = errors.New("unknown field")
)
