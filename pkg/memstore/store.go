package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Store is an in-memory schema.Store. The zero value is not usable; use New.
type Store struct {
	mu     sync.RWMutex
	tables map[string]map[string]map[string]any // schema name -> id key -> field values
	links  map[string][]any                     // owner schema/id/field -> related ids
	serial map[string]int64
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{
		tables: make(map[string]map[string]map[string]any),
		links:  make(map[string][]any),
		serial: make(map[string]int64),
	}
}

func idKey(id any) string {
	return fmt.Sprint(id)
}

func linkKey(owner schema.Record, field string) string {
	return owner.Schema().Name + "/" + idKey(owner.ID()) + "/" + field
}

// equalValue compares a filter value against a stored value across the
// numeric representations coercion may have produced.
func equalValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return idKey(a) == idKey(b)
}

// Find resolves a record by identity. Returns schema.ErrNotFound on a miss.
func (s *Store) Find(ctx context.Context, sch *schema.Schema, id any) (schema.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.tables[sch.Name]
	if !ok {
		return nil, schema.ErrNotFound
	}
	row, ok := rows[idKey(id)]
	if !ok {
		return nil, schema.ErrNotFound
	}

	rec := NewRecordWith(sch, row)
	rec.SetID(row[sch.PrimaryKey])
	return rec, nil
}

// Exists reports whether any record of the schema matches every filter pair,
// ignoring the record identified by excludeID.
func (s *Store) Exists(ctx context.Context, sch *schema.Schema, filter map[string]any, excludeID any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for name := range filter {
		if !sch.Has(name) {
			return false, fmt.Errorf("%w: %s.%s", schema.ErrUnknownField, sch.Name, name)
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for key, row := range s.tables[sch.Name] {
		if excludeID != nil && key == idKey(excludeID) {
			continue
		}
		match := true
		for name, want := range filter {
			if !equalValue(row[name], want) {
				match = false
				break
			}
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// Save commits the record, assigning an identity on first save: a serial
// integer when the primary key is an integer field, a UUID string otherwise.
func (s *Store) Save(ctx context.Context, rec schema.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sch := rec.Schema()

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID() == nil {
		rec.SetID(s.nextID(sch))
	}

	row := make(map[string]any)
	row[sch.PrimaryKey] = rec.ID()
	for _, f := range sch.ValidatedFields() {
		if f.Rel == schema.RelMany {
			continue
		}
		value := rec.Get(f.Name)
		// To-one references persist as the related identity.
		if related, ok := value.(schema.Record); ok {
			value = related.ID()
		}
		row[f.Name] = value
	}

	if s.tables[sch.Name] == nil {
		s.tables[sch.Name] = make(map[string]map[string]any)
	}
	s.tables[sch.Name][idKey(rec.ID())] = row
	return nil
}

func (s *Store) nextID(sch *schema.Schema) any {
	if pk, ok := sch.Field(sch.PrimaryKey); ok && pk.Kind == schema.KindInt {
		s.serial[sch.Name]++
		return s.serial[sch.Name]
	}
	return uuid.NewString()
}

// Attach links related to the owner's to-many field.
func (s *Store) Attach(ctx context.Context, owner schema.Record, field string, related schema.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if owner.ID() == nil {
		return fmt.Errorf("attach %s: owner record has no identity", field)
	}
	if related == nil || related.ID() == nil {
		return fmt.Errorf("attach %s: related record has no identity", field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := linkKey(owner, field)
	s.links[key] = append(s.links[key], related.ID())
	return nil
}

// NewRecord returns a fresh unsaved record of the given schema.
func (s *Store) NewRecord(sch *schema.Schema) schema.Record {
	return NewRecord(sch)
}

// Create builds a record from values and saves it. Convenience for tests and
// fixtures.
func (s *Store) Create(ctx context.Context, sch *schema.Schema, values map[string]any) (*Record, error) {
	rec := NewRecordWith(sch, values)
	if err := s.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Attached returns the identities linked to the owner's to-many field, in
// attachment order.
func (s *Store) Attached(owner schema.Record, field string) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.links[linkKey(owner, field)]
	out := make([]any, len(ids))
	copy(out, ids)
	return out
}
