package validate

import "errors"

var (
	// ErrNotInstance is returned by New when the supplied value is not a
	// usable record instance (nil, or carrying no schema).
	ErrNotInstance = errors.New("validator requires a record instance")

	// ErrNilStore is returned by New when no store is supplied.
	ErrNilStore = errors.New("validator requires a store")
)

// BaseErrorKey is the reserved errors-map key for whole-record failures
// raised by the clean hook. It is namespaced so it cannot collide with a
// declared field name.
const BaseErrorKey = "__base__"
