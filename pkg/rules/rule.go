package rules

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
)

// Rule validates and possibly transforms a single field value. It returns the
// value to carry forward, a *ValidationError on a validation failure, or a
// plain error when a supplied lookup failed for non-validation reasons.
type Rule func(value any) (any, error)

// Lookup answers whether a conflicting record exists for the candidate value.
// Implementations delegate to the persistence collaborator.
type Lookup func(value any) (bool, error)

// Apply runs the rules in order, carrying the value from one rule to the
// next. The first failure stops the pipeline; its error and the value as
// cleaned so far are returned.
func Apply(value any, rules ...Rule) (any, error) {
	var err error
	for _, rule := range rules {
		value, err = rule(value)
		if err != nil {
			return value, err
		}
	}
	return value, nil
}

func fieldError(field, reason string, args ...any) *ValidationError {
	values := map[string]any{"field": field}
	return &ValidationError{
		Field:             field,
		Message:           fmt.Sprintf(Message(reason), args...),
		TranslationKey:    "validation." + reason,
		TranslationValues: values,
	}
}

// IsEmpty reports whether a value counts as absent: nil, a blank string, or
// an empty sequence.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	}
	return false
}

// Required fails when the value is absent (nil, blank string, empty sequence).
func Required(field string) Rule {
	return func(value any) (any, error) {
		if IsEmpty(value) {
			return value, fieldError(field, ReasonRequired)
		}
		return value, nil
	}
}

// MaxLen fails when a string value is longer than max characters.
// Non-string values pass unchanged.
func MaxLen(field string, max int) Rule {
	return func(value any) (any, error) {
		if s, ok := value.(string); ok && len([]rune(s)) > max {
			err := fieldError(field, ReasonMaxLength, max)
			err.TranslationValues["max"] = max
			return value, err
		}
		return value, nil
	}
}

// MinLen fails when a string value is shorter than min characters.
// Non-string values pass unchanged.
func MinLen(field string, min int) Rule {
	return func(value any) (any, error) {
		if s, ok := value.(string); ok && len([]rune(s)) < min {
			err := fieldError(field, ReasonMinLength, min)
			err.TranslationValues["min"] = min
			return value, err
		}
		return value, nil
	}
}

// OneOf fails when the value's string form is not one of the declared
// choices. The message lists the choices sorted and comma-joined. Absent
// values pass; Required owns presence.
func OneOf(field string, choices []string) Rule {
	return func(value any) (any, error) {
		if IsEmpty(value) {
			return value, nil
		}
		candidate := fmt.Sprint(value)
		for _, c := range choices {
			if candidate == c {
				return value, nil
			}
		}
		sorted := append([]string(nil), choices...)
		sort.Strings(sorted)
		err := fieldError(field, ReasonOneOf, strings.Join(sorted, ", "))
		err.TranslationValues["choices"] = sorted
		return value, err
	}
}

// Range fails when a numeric value falls outside [min, max].
// Non-numeric values pass unchanged.
func Range(field string, min, max float64) Rule {
	return func(value any) (any, error) {
		n, ok := toFloat(value)
		if !ok {
			return value, nil
		}
		if n < min || n > max {
			err := fieldError(field, ReasonOutOfRange, min, max)
			err.TranslationValues["min"] = min
			err.TranslationValues["max"] = max
			return value, err
		}
		return value, nil
	}
}

// Match fails when a string value does not match the pattern.
// Absent values pass.
func Match(field string, pattern *regexp.Regexp) Rule {
	return func(value any) (any, error) {
		if IsEmpty(value) {
			return value, nil
		}
		if s, ok := value.(string); !ok || !pattern.MatchString(s) {
			err := fieldError(field, ReasonNoMatch, pattern.String())
			err.TranslationValues["pattern"] = pattern.String()
			return value, err
		}
		return value, nil
	}
}

// Equal fails when the value differs from want.
func Equal(field string, want any) Rule {
	return func(value any) (any, error) {
		if value != want {
			err := fieldError(field, ReasonNotEqual, want)
			err.TranslationValues["other"] = want
			return value, err
		}
		return value, nil
	}
}

// Unique fails when the lookup reports a conflicting record holding the same
// value. Absent values pass. Lookup errors propagate unwrapped.
func Unique(field string, lookup Lookup) Rule {
	return func(value any) (any, error) {
		if IsEmpty(value) {
			return value, nil
		}
		taken, err := lookup(value)
		if err != nil {
			return value, err
		}
		if taken {
			return value, fieldError(field, ReasonUnique)
		}
		return value, nil
	}
}
