package validate

import (
	"context"
	"errors"
	"reflect"

	"github.com/dmitrymomot/modelkit/pkg/rules"
	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// refID extracts the related identity from a mapping, trying the related
// schema's declared primary key name first, then the conventional "id" key.
// Returns nil when the mapping carries no usable identity.
func refID(m map[string]any, related *schema.Schema) any {
	if id, ok := m[related.PrimaryKey]; ok && !rules.IsEmpty(id) {
		return id
	}
	if id, ok := m["id"]; ok && !rules.IsEmpty(id) {
		return id
	}
	return nil
}

// resolveRef resolves one heterogeneous to-one reference: a record instance
// of the related type, a mapping carrying the related identity, or a raw
// identity value. Returns (nil, nil, nil) when the input carries no value at
// all, leaving presence to the required/default handling of the caller.
func (v *ModelValidator) resolveRef(ctx context.Context, related *schema.Schema, raw any) (schema.Record, *rules.ValidationError, error) {
	if raw == nil {
		return nil, nil, nil
	}

	var id any
	switch ref := raw.(type) {
	case schema.Record:
		if ref.Schema() != nil && ref.Schema().Name == related.Name {
			return ref, nil, nil
		}
		return nil, relatedError(""), nil
	case map[string]any:
		id = refID(ref, related)
		if id == nil {
			return nil, nil, nil
		}
	default:
		id = raw
	}

	rec, err := v.store.Find(ctx, related, id)
	if err != nil {
		if errors.Is(err, schema.ErrNotFound) {
			return nil, relatedError(""), nil
		}
		return nil, nil, err
	}
	return rec, nil, nil
}

// resolveToOne resolves a to-one field from the merged data. An unresolvable
// reference records "unable to find related object"; a missing value on a
// non-nullable field records the required message instead.
func (v *ModelValidator) resolveToOne(ctx context.Context, f schema.Field) error {
	resolved, verr, err := v.resolveRef(ctx, f.Related, v.data[f.Name])
	if err != nil {
		return err
	}
	if verr != nil {
		v.fail(*relatedError(f.Name))
		return nil
	}
	if resolved == nil {
		if !f.Nullable && !f.HasDefault() {
			v.fail(rules.ValidationError{
				Field:             f.Name,
				Message:           rules.Message(rules.ReasonRequired),
				TranslationKey:    "validation." + rules.ReasonRequired,
				TranslationValues: map[string]any{"field": f.Name},
			})
			return nil
		}
		v.data[f.Name] = nil
		return nil
	}
	v.data[f.Name] = resolved
	return nil
}

// resolveToMany resolves a to-many field. Input must be a sequence; each
// element resolves like a to-one reference, except that a blank mapping
// becomes a placeholder that creates a fresh related record at save time.
// One unresolvable element fails the whole field.
func (v *ModelValidator) resolveToMany(ctx context.Context, f schema.Field) error {
	raw, ok := v.data[f.Name]
	if !ok || raw == nil {
		return nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		v.fail(*relatedError(f.Name))
		return nil
	}

	items := make([]pendingItem, 0, rv.Len())
	resolved := make([]schema.Record, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		element := rv.Index(i).Interface()
		if m, isMap := element.(map[string]any); isMap && refID(m, f.Related) == nil {
			items = append(items, pendingItem{blank: true})
			continue
		}
		if element == nil {
			v.fail(*relatedError(f.Name))
			return nil
		}

		rec, verr, err := v.resolveRef(ctx, f.Related, element)
		if err != nil {
			return err
		}
		if verr != nil || rec == nil {
			v.fail(*relatedError(f.Name))
			return nil
		}
		items = append(items, pendingItem{record: rec})
		resolved = append(resolved, rec)
	}

	v.pending[f.Name] = items
	v.data[f.Name] = resolved
	return nil
}

func relatedError(field string) *rules.ValidationError {
	return &rules.ValidationError{
		Field:             field,
		Message:           rules.Message(rules.ReasonRelated),
		TranslationKey:    "validation." + rules.ReasonRelated,
		TranslationValues: map[string]any{"field": field},
	}
}
