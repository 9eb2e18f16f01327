package validate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modelkit/pkg/schema"
	"github.com/dmitrymomot/modelkit/pkg/validate"
)

func TestToOneResolution(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unknown identity", func(t *testing.T) {
		f := newFixtures()
		v, err := validate.New(f.record(f.employee, map[string]any{"name": "tim", "gender": "M"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"organization": 999})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "unable to find related object", v.Errors()["organization"])
	})

	t.Run("nil on a required relation", func(t *testing.T) {
		f := newFixtures()
		v, err := validate.New(f.record(f.employee, map[string]any{"name": "tim", "gender": "M"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"organization": nil})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "must be provided", v.Errors()["organization"])

		ok, err = v.Validate(ctx, nil)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "must be provided", v.Errors()["organization"])
	})

	t.Run("optional relation left unset", func(t *testing.T) {
		f := newFixtures()
		org, err := f.store.Create(ctx, f.organization, map[string]any{"name": "new1"})
		require.NoError(t, err)

		v, err := validate.New(f.record(f.employee, map[string]any{
			"name": "tim", "gender": "M", "organization": org.ID(),
		}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"pay_grade": 999})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "unable to find related object", v.Errors()["pay_grade"])

		ok, err = v.Validate(ctx, map[string]any{"pay_grade": nil})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Nil(t, v.Data()["pay_grade"])

		ok, err = v.Validate(ctx, nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("identity, instance and mapping resolve identically", func(t *testing.T) {
		f := newFixtures()
		org, err := f.store.Create(ctx, f.organization, map[string]any{"name": "new1"})
		require.NoError(t, err)

		for name, ref := range map[string]any{
			"identity": org.ID(),
			"instance": org,
			"mapping":  map[string]any{"id": org.ID()},
		} {
			t.Run(name, func(t *testing.T) {
				v, err := validate.New(f.record(f.employee, map[string]any{"name": "tim", "gender": "M"}), f.store)
				require.NoError(t, err)

				ok, err := v.Validate(ctx, map[string]any{"organization": ref})
				require.NoError(t, err)
				assert.True(t, ok)

				resolved, isRecord := v.Data()["organization"].(schema.Record)
				require.True(t, isRecord)
				assert.Equal(t, org.ID(), resolved.ID())
			})
		}
	})

	t.Run("empty mapping on a required relation", func(t *testing.T) {
		f := newFixtures()
		v, err := validate.New(f.record(f.employee, map[string]any{"name": "tim", "gender": "M"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"organization": map[string]any{}})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "must be provided", v.Errors()["organization"])
	})

	t.Run("empty mapping on an optional relation", func(t *testing.T) {
		f := newFixtures()
		org, err := f.store.Create(ctx, f.organization, map[string]any{"name": "new1"})
		require.NoError(t, err)

		v, err := validate.New(f.record(f.employee, map[string]any{
			"name": "tim", "gender": "M", "organization": org.ID(),
		}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"pay_grade": map[string]any{}})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("instance of the wrong schema", func(t *testing.T) {
		f := newFixtures()
		grade, err := f.store.Create(ctx, f.payGrade, map[string]any{"name": "senior"})
		require.NoError(t, err)

		v, err := validate.New(f.record(f.employee, map[string]any{"name": "tim", "gender": "M"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"organization": grade})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "unable to find related object", v.Errors()["organization"])
	})
}

func TestToManyResolution(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("absent and empty sequences are valid", func(t *testing.T) {
		f := newFixtures()
		v, err := validate.New(f.record(f.student, map[string]any{"name": "tim"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, nil)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = v.Validate(ctx, map[string]any{"courses": []any{}})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("one unresolvable element fails the field", func(t *testing.T) {
		f := newFixtures()
		c1, err := f.store.Create(ctx, f.course, map[string]any{"name": "course1"})
		require.NoError(t, err)

		v, err := validate.New(f.record(f.student, map[string]any{"name": "tim"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"courses": []any{c1.ID(), 33}})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "unable to find related object", v.Errors()["courses"])
	})

	t.Run("identities, instances and mappings all resolve", func(t *testing.T) {
		f := newFixtures()
		c1, err := f.store.Create(ctx, f.course, map[string]any{"name": "course1"})
		require.NoError(t, err)
		c2, err := f.store.Create(ctx, f.course, map[string]any{"name": "course2"})
		require.NoError(t, err)

		for name, refs := range map[string][]any{
			"identities": {c1.ID(), c2.ID()},
			"instances":  {c1, c2},
			"mappings":   {map[string]any{"id": c1.ID()}, map[string]any{"id": c2.ID()}},
		} {
			t.Run(name, func(t *testing.T) {
				v, err := validate.New(f.record(f.student, map[string]any{"name": "tim"}), f.store)
				require.NoError(t, err)

				ok, err := v.Validate(ctx, map[string]any{"courses": refs})
				require.NoError(t, err)
				assert.True(t, ok)

				resolved, isList := v.Data()["courses"].([]schema.Record)
				require.True(t, isList)
				require.Len(t, resolved, 2)
				assert.Equal(t, c1.ID(), resolved[0].ID())
				assert.Equal(t, c2.ID(), resolved[1].ID())
			})
		}
	})

	t.Run("bare non-sequence values fail", func(t *testing.T) {
		f := newFixtures()
		c1, err := f.store.Create(ctx, f.course, map[string]any{"name": "course1"})
		require.NoError(t, err)

		for name, ref := range map[string]any{
			"bare identity": c1.ID(),
			"bare mapping":  map[string]any{"id": c1.ID()},
			"blank mapping": map[string]any{},
		} {
			t.Run(name, func(t *testing.T) {
				v, err := validate.New(f.record(f.student, map[string]any{"name": "tim"}), f.store)
				require.NoError(t, err)

				ok, err := v.Validate(ctx, map[string]any{"courses": ref})
				require.NoError(t, err)
				assert.False(t, ok)
				assert.Equal(t, "unable to find related object", v.Errors()["courses"])
			})
		}
	})

	t.Run("blank mappings inside a sequence are placeholders", func(t *testing.T) {
		f := newFixtures()
		v, err := validate.New(f.record(f.student, map[string]any{"name": "tim"}), f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"courses": []any{map[string]any{}, map[string]any{}}})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestToManySave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("resolved items are attached after commit", func(t *testing.T) {
		f := newFixtures()
		c1, err := f.store.Create(ctx, f.course, map[string]any{"name": "course1"})
		require.NoError(t, err)
		c2, err := f.store.Create(ctx, f.course, map[string]any{"name": "course2"})
		require.NoError(t, err)

		obj := f.record(f.student, map[string]any{"name": "tim"})
		v, err := validate.New(obj, f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"courses": []any{c1, c2}})
		require.NoError(t, err)
		require.True(t, ok)

		_, err = v.Save(ctx)
		require.NoError(t, err)
		require.NotNil(t, obj.ID())
		assert.Equal(t, []any{c1.ID(), c2.ID()}, f.store.Attached(obj, "courses"))
	})

	t.Run("placeholders create fresh related records", func(t *testing.T) {
		f := newFixtures()
		obj := f.record(f.student, map[string]any{"name": "tim"})
		v, err := validate.New(obj, f.store)
		require.NoError(t, err)

		ok, err := v.Validate(ctx, map[string]any{"courses": []any{map[string]any{}, map[string]any{}}})
		require.NoError(t, err)
		require.True(t, ok)

		_, err = v.Save(ctx)
		require.NoError(t, err)
		require.NotNil(t, obj.ID())

		attached := f.store.Attached(obj, "courses")
		require.Len(t, attached, 2)
		for _, id := range attached {
			_, err := f.store.Find(ctx, f.course, id)
			require.NoError(t, err)
		}
	})
}
