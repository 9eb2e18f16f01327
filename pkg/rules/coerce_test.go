package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modelkit/pkg/rules"
	"github.com/dmitrymomot/modelkit/pkg/schema"
)

func TestCoerceString(t *testing.T) {
	t.Parallel()

	rule := rules.Coerce("name", schema.KindString)

	t.Run("accepts strings and bytes", func(t *testing.T) {
		value, err := rule("tim")
		require.NoError(t, err)
		assert.Equal(t, "tim", value)

		value, err = rule([]byte("tim"))
		require.NoError(t, err)
		assert.Equal(t, "tim", value)
	})

	t.Run("formats numbers", func(t *testing.T) {
		value, err := rule(42)
		require.NoError(t, err)
		assert.Equal(t, "42", value)
	})

	t.Run("rejects unconvertible values", func(t *testing.T) {
		_, err := rule(struct{}{})
		verr := rules.AsValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, "must be a valid string", verr.Message)
	})
}

func TestCoerceInt(t *testing.T) {
	t.Parallel()

	rule := rules.Coerce("age", schema.KindInt)

	t.Run("normalizes numeric types to int64", func(t *testing.T) {
		value, err := rule(42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), value)

		value, err = rule(42.0)
		require.NoError(t, err)
		assert.Equal(t, int64(42), value)
	})

	t.Run("parses numeric strings", func(t *testing.T) {
		value, err := rule(" 42 ")
		require.NoError(t, err)
		assert.Equal(t, int64(42), value)
	})

	t.Run("rejects fractional floats", func(t *testing.T) {
		_, err := rule(42.5)
		verr := rules.AsValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, "must be an integer", verr.Message)
	})

	t.Run("rejects non-numeric strings", func(t *testing.T) {
		_, err := rule("forty-two")
		verr := rules.AsValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, "must be an integer", verr.Message)
	})
}

func TestCoerceFloat(t *testing.T) {
	t.Parallel()

	rule := rules.Coerce("price", schema.KindFloat)

	t.Run("normalizes numerics and strings to float64", func(t *testing.T) {
		value, err := rule(3)
		require.NoError(t, err)
		assert.Equal(t, float64(3), value)

		value, err = rule("3.14")
		require.NoError(t, err)
		assert.Equal(t, 3.14, value)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := rule("cheap")
		verr := rules.AsValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, "must be a valid number", verr.Message)
	})
}

func TestCoerceBool(t *testing.T) {
	t.Parallel()

	rule := rules.Coerce("active", schema.KindBool)

	t.Run("accepts bools and boolish strings", func(t *testing.T) {
		value, err := rule(true)
		require.NoError(t, err)
		assert.Equal(t, true, value)

		value, err = rule("1")
		require.NoError(t, err)
		assert.Equal(t, true, value)
	})

	t.Run("rejects other values", func(t *testing.T) {
		_, err := rule("yes please")
		verr := rules.AsValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, "must be a valid boolean", verr.Message)
	})
}

func TestCoerceTime(t *testing.T) {
	t.Parallel()

	rule := rules.Coerce("created_at", schema.KindTime)

	t.Run("accepts time values and common layouts", func(t *testing.T) {
		now := time.Now()
		value, err := rule(now)
		require.NoError(t, err)
		assert.Equal(t, now, value)

		value, err = rule("2026-08-25")
		require.NoError(t, err)
		assert.Equal(t, 2026, value.(time.Time).Year())
	})

	t.Run("rejects unparseable strings", func(t *testing.T) {
		_, err := rule("next tuesday")
		verr := rules.AsValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, "must be a valid datetime", verr.Message)
	})
}

func TestCoercePassesNil(t *testing.T) {
	t.Parallel()

	for _, kind := range []schema.Kind{schema.KindString, schema.KindInt, schema.KindFloat, schema.KindBool, schema.KindTime} {
		value, err := rules.Coerce("field", kind)(nil)
		require.NoError(t, err)
		assert.Nil(t, value)
	}
}
