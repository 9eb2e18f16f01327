package validate

import (
	"context"
	"io"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/modelkit/pkg/rules"
	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// isNilRef catches a typed nil pointer hiding inside the Record interface,
// which would otherwise defer the misuse to the first Validate call.
func isNilRef(rec schema.Record) bool {
	rv := reflect.ValueOf(rec)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// ModelValidator validates proposed changes to one bound record instance
// against its schema. Not safe for concurrent use of a single instance.
type ModelValidator struct {
	rec    schema.Record
	store  schema.Store
	sch    *schema.Schema
	clean  CleanFunc
	logger *slog.Logger

	data    map[string]any
	errs    rules.ValidationErrors
	pending map[string][]pendingItem
}

// pendingItem is one resolved to-many entry awaiting attachment at save time.
// A blank item produces a fresh related record instead of referencing an
// existing one.
type pendingItem struct {
	record schema.Record
	blank  bool
}

// New binds a validator to a record instance and its store. The record's
// schema is captured once here and reused for every call.
func New(rec schema.Record, store schema.Store, opts ...Option) (*ModelValidator, error) {
	if rec == nil || isNilRef(rec) || rec.Schema() == nil {
		return nil, ErrNotInstance
	}
	if store == nil {
		return nil, ErrNilStore
	}

	v := &ModelValidator{
		rec:    rec,
		store:  store,
		sch:    rec.Schema(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Validate merges input over the record's current values and runs the full
// rule pipeline. The boolean is true iff no validation error was recorded;
// the error is non-nil only when the store itself failed, which is not a
// validation outcome. Data and Errors are rebuilt from scratch on every call.
func (v *ModelValidator) Validate(ctx context.Context, input map[string]any, opts ...ValidateOption) (bool, error) {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	v.data = make(map[string]any)
	v.errs = nil
	v.pending = make(map[string][]pendingItem)

	fields := v.sch.ValidatedFields()
	active := make([]schema.Field, 0, len(fields))
	for _, f := range fields {
		// Seed every declared field so group checks and Save observe full
		// record state even under Only.
		if f.Rel != schema.RelMany {
			v.data[f.Name] = v.rec.Get(f.Name)
		}
		if cfg.only == nil || cfg.only[f.Name] {
			active = append(active, f)
		}
	}

	for _, f := range active {
		if raw, ok := input[f.Name]; ok {
			v.data[f.Name] = raw
		}
	}

	for _, f := range active {
		if f.Rel == schema.RelMany {
			continue
		}
		if v.data[f.Name] == nil && f.HasDefault() {
			v.data[f.Name] = f.DefaultValue()
		}
	}

	for _, f := range active {
		if f.Rel != schema.RelNone {
			continue
		}
		cleaned, err := rules.Apply(v.data[f.Name], v.buildRules(ctx, f)...)
		if err != nil {
			verr := rules.AsValidationError(err)
			if verr == nil {
				return false, err
			}
			v.fail(*verr)
			continue
		}
		v.data[f.Name] = cleaned
	}

	for _, group := range v.sch.UniqueTogether {
		if err := v.checkGroup(ctx, group, cfg); err != nil {
			return false, err
		}
	}

	for _, f := range active {
		var err error
		switch f.Rel {
		case schema.RelOne:
			err = v.resolveToOne(ctx, f)
		case schema.RelMany:
			err = v.resolveToMany(ctx, f)
		}
		if err != nil {
			return false, err
		}
	}

	if v.clean != nil {
		cleaned, err := v.clean(ctx, v.data)
		if err != nil {
			msg := err.Error()
			if verr := rules.AsValidationError(err); verr != nil {
				msg = verr.Message
			}
			v.fail(rules.ValidationError{
				Field:          BaseErrorKey,
				Message:        msg,
				TranslationKey: "validation.base",
			})
		} else if cleaned != nil {
			v.data = cleaned
		}
	}

	if !v.errs.IsEmpty() {
		v.logger.DebugContext(ctx, "validation failed",
			"schema", v.sch.Name,
			"fields", v.errs.Fields(),
		)
		return false, nil
	}
	return true, nil
}

// buildRules assembles the ordered rule pipeline for one scalar field:
// required, coercion, max length, choices, uniqueness.
func (v *ModelValidator) buildRules(ctx context.Context, f schema.Field) []rules.Rule {
	var list []rules.Rule
	if !f.Nullable && !f.HasDefault() {
		list = append(list, rules.Required(f.Name))
	}
	list = append(list, rules.Coerce(f.Name, f.Kind))
	if f.MaxLength > 0 {
		list = append(list, rules.MaxLen(f.Name, f.MaxLength))
	}
	if len(f.Choices) > 0 {
		list = append(list, rules.OneOf(f.Name, f.Choices))
	}
	if f.Unique {
		name := f.Name
		list = append(list, rules.Unique(name, func(value any) (bool, error) {
			return v.store.Exists(ctx, v.sch, map[string]any{name: value}, v.rec.ID())
		}))
	}
	return list
}

// checkGroup runs one unique-together group check. The group runs only when
// at least one member is in the active field set and every member passed its
// own rules; a hit writes the same message on every member.
func (v *ModelValidator) checkGroup(ctx context.Context, group []string, cfg *validateConfig) error {
	if len(group) == 0 {
		return nil
	}
	inSet := false
	for _, name := range group {
		if cfg.only == nil || cfg.only[name] {
			inSet = true
			break
		}
	}
	if !inSet {
		return nil
	}
	for _, name := range group {
		if v.errs.Has(name) {
			return nil
		}
	}

	filter := make(map[string]any, len(group))
	for _, name := range group {
		filter[name] = v.data[name]
	}
	taken, err := v.store.Exists(ctx, v.sch, filter, v.rec.ID())
	if err != nil {
		return err
	}
	if taken {
		for _, name := range group {
			v.fail(rules.ValidationError{
				Field:             name,
				Message:           rules.Message(rules.ReasonUniqueTogether),
				TranslationKey:    "validation." + rules.ReasonUniqueTogether,
				TranslationValues: map[string]any{"field": name},
			})
		}
	}
	return nil
}

// fail records a validation error unless the field already has one; the
// first failing rule for a field wins.
func (v *ModelValidator) fail(err rules.ValidationError) {
	if v.errs.Has(err.Field) {
		return
	}
	v.errs.Add(err)
}

// Data returns the cleaned/merged mapping from the most recent Validate
// call. It is populated even when validation failed, including any clean
// hook mutations applied before the hook raised.
func (v *ModelValidator) Data() map[string]any {
	return v.data
}

// Errors returns the per-field error map from the most recent Validate call:
// at most one message per field, plus BaseErrorKey for a clean hook failure.
func (v *ModelValidator) Errors() map[string]string {
	out := make(map[string]string, len(v.errs))
	for _, e := range v.errs {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// ErrorList returns the recorded failures with their translation metadata.
func (v *ModelValidator) ErrorList() rules.ValidationErrors {
	return v.errs
}

// Save writes the cleaned data onto the bound record, commits it through the
// store, then attaches resolved to-many items (creating fresh blank related
// records for placeholder entries). Only meaningful after a successful
// Validate; Save does not re-validate. Store errors propagate unwrapped.
func (v *ModelValidator) Save(ctx context.Context) (schema.Record, error) {
	for _, f := range v.sch.ValidatedFields() {
		if f.Rel == schema.RelMany {
			continue
		}
		if value, ok := v.data[f.Name]; ok {
			v.rec.Set(f.Name, value)
		}
	}
	if err := v.store.Save(ctx, v.rec); err != nil {
		return nil, err
	}

	for _, f := range v.sch.ValidatedFields() {
		items, ok := v.pending[f.Name]
		if !ok {
			continue
		}
		for _, item := range items {
			related := item.record
			if item.blank {
				related = v.store.NewRecord(f.Related)
				if err := v.store.Save(ctx, related); err != nil {
					return nil, err
				}
			}
			if err := v.store.Attach(ctx, v.rec, f.Name, related); err != nil {
				return nil, err
			}
		}
	}
	return v.rec, nil
}
