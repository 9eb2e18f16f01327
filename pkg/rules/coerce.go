package rules

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Coerce converts a raw value to the field kind's native representation or
// fails with the kind-specific message. Absent values pass through untouched
// so presence stays the concern of Required and the nullable flag.
func Coerce(field string, kind schema.Kind) Rule {
	return func(value any) (any, error) {
		if value == nil {
			return nil, nil
		}
		switch kind {
		case schema.KindString:
			return coerceString(field, value)
		case schema.KindInt:
			return coerceInt(field, value)
		case schema.KindFloat:
			return coerceFloat(field, value)
		case schema.KindBool:
			return coerceBool(field, value)
		case schema.KindTime:
			return coerceTime(field, value)
		default:
			return value, nil
		}
	}
}

func coerceString(field string, value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	}
	return value, fieldError(field, ReasonCoerceString)
}

func coerceInt(field string, value any) (any, error) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) {
			return value, fieldError(field, ReasonCoerceInt)
		}
		return int64(f), nil
	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			return value, fieldError(field, ReasonCoerceInt)
		}
		return n, nil
	}
	return value, fieldError(field, ReasonCoerceInt)
}

func coerceFloat(field string, value any) (any, error) {
	if f, ok := toFloat(value); ok {
		return f, nil
	}
	if s, ok := value.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return f, nil
		}
	}
	return value, fieldError(field, ReasonCoerceFloat)
}

func coerceBool(field string, value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return value, fieldError(field, ReasonCoerceBool)
		}
		return b, nil
	}
	return value, fieldError(field, ReasonCoerceBool)
}

// Accepted datetime layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func coerceTime(field string, value any) (any, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return value, fieldError(field, ReasonCoerceTime)
}

// toFloat converts any numeric value to float64.
func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
