package rules

// Symbolic failure reasons. Each maps to one canonical message so the same
// wording is produced whether a failure comes from a built-in primitive or
// from caller code raising Fail.
const (
	ReasonRequired       = "required"
	ReasonMaxLength      = "max_length"
	ReasonMinLength      = "min_length"
	ReasonOneOf          = "one_of"
	ReasonUnique         = "unique"
	ReasonUniqueTogether = "index"
	ReasonRelated        = "related"
	ReasonOutOfRange     = "range"
	ReasonNoMatch        = "matches"
	ReasonNotEqual       = "equal"
	ReasonCoerceString   = "coerce_string"
	ReasonCoerceInt      = "coerce_int"
	ReasonCoerceFloat    = "coerce_float"
	ReasonCoerceBool     = "coerce_bool"
	ReasonCoerceTime     = "coerce_time"
)

var messages = map[string]string{
	ReasonRequired:       "must be provided",
	ReasonMaxLength:      "must be at most %v characters long",
	ReasonMinLength:      "must be at least %v characters long",
	ReasonOneOf:          "must be one of the choices: %v",
	ReasonUnique:         "must be a unique value",
	ReasonUniqueTogether: "fields must be unique together",
	ReasonRelated:        "unable to find related object",
	ReasonOutOfRange:     "must be in the range %v to %v",
	ReasonNoMatch:        "must match the pattern %v",
	ReasonNotEqual:       "must be equal to %v",
	ReasonCoerceString:   "must be a valid string",
	ReasonCoerceInt:      "must be an integer",
	ReasonCoerceFloat:    "must be a valid number",
	ReasonCoerceBool:     "must be a valid boolean",
	ReasonCoerceTime:     "must be a valid datetime",
}

// Message returns the canonical message template for a symbolic reason.
// Unknown reasons are returned as-is so callers can raise free-form failures.
func Message(reason string) string {
	if msg, ok := messages[reason]; ok {
		return msg
	}
	return reason
}

// Fail builds a whole-value validation failure from a symbolic reason.
// The reason may be one of the Reason constants or a free-form message.
func Fail(reason string) error {
	return &ValidationError{
		Message:        Message(reason),
		TranslationKey: "validation." + reason,
	}
}
