package pgstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Store implements schema.Store over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing connection pool. The pool's lifecycle stays with the
// caller.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// record is the row-backed schema.Record returned by Find.
type record struct {
	sch    *schema.Schema
	id     any
	values map[string]any
}

func (r *record) Schema() *schema.Schema  { return r.sch }
func (r *record) Get(field string) any    { return r.values[field] }
func (r *record) Set(field string, v any) { r.values[field] = v }
func (r *record) ID() any                 { return r.id }
func (r *record) SetID(id any)            { r.id = id }

// persistedFields returns the column-backed field names: the primary key
// followed by every scalar and to-one field.
func persistedFields(sch *schema.Schema) []string {
	cols := []string{sch.PrimaryKey}
	for _, f := range sch.ValidatedFields() {
		if f.Rel == schema.RelMany {
			continue
		}
		cols = append(cols, f.Name)
	}
	return cols
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// columnValue unwraps a resolved to-one reference to the related identity so
// relation columns store plain keys.
func columnValue(v any) any {
	if related, ok := v.(schema.Record); ok {
		return related.ID()
	}
	return v
}

// Find resolves a record by identity. Returns schema.ErrNotFound on a miss.
func (s *Store) Find(ctx context.Context, sch *schema.Schema, id any) (schema.Record, error) {
	cols := persistedFields(sch)
	idents := make([]string, len(cols))
	for i, c := range cols {
		idents[i] = ident(c)
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		strings.Join(idents, ", "), ident(sch.Name), ident(sch.PrimaryKey))

	values := make([]any, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := s.pool.QueryRow(ctx, query, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, schema.ErrNotFound
		}
		return nil, err
	}

	rec := &record{sch: sch, values: make(map[string]any, len(cols))}
	for i, c := range cols {
		rec.values[c] = values[i]
	}
	rec.id = rec.values[sch.PrimaryKey]
	return rec, nil
}

// Exists reports whether any record of the schema matches every filter pair,
// ignoring the record identified by excludeID.
func (s *Store) Exists(ctx context.Context, sch *schema.Schema, filter map[string]any, excludeID any) (bool, error) {
	names := make([]string, 0, len(filter))
	for name := range filter {
		if !sch.Has(name) {
			return false, fmt.Errorf("%w: %s.%s", schema.ErrUnknownField, sch.Name, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		clauses []string
		args    []any
	)
	for _, name := range names {
		value := columnValue(filter[name])
		if value == nil {
			clauses = append(clauses, fmt.Sprintf("%s IS NULL", ident(name)))
			continue
		}
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", ident(name), len(args)))
	}
	if excludeID != nil {
		args = append(args, excludeID)
		clauses = append(clauses, fmt.Sprintf("%s <> $%d", ident(sch.PrimaryKey), len(args)))
	}
	if len(clauses) == 0 {
		clauses = append(clauses, "TRUE")
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)",
		ident(sch.Name), strings.Join(clauses, " AND "))

	var exists bool
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Save inserts the record when it has no identity yet, letting the database
// assign the primary key, and updates it in place otherwise.
func (s *Store) Save(ctx context.Context, rec schema.Record) error {
	sch := rec.Schema()

	var (
		cols []string
		args []any
	)
	for _, f := range sch.ValidatedFields() {
		if f.Rel == schema.RelMany {
			continue
		}
		cols = append(cols, f.Name)
		args = append(args, columnValue(rec.Get(f.Name)))
	}

	if rec.ID() == nil {
		idents := make([]string, len(cols))
		params := make([]string, len(cols))
		for i, c := range cols {
			idents[i] = ident(c)
			params[i] = fmt.Sprintf("$%d", i+1)
		}
		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			ident(sch.Name), strings.Join(idents, ", "),
			strings.Join(params, ", "), ident(sch.PrimaryKey))

		var id any
		if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return err
		}
		rec.SetID(id)
		return nil
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", ident(c), i+1)
	}
	args = append(args, rec.ID())
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		ident(sch.Name), strings.Join(sets, ", "),
		ident(sch.PrimaryKey), len(args))

	_, err := s.pool.Exec(ctx, query, args...)
	return err
}

// Attach inserts one row into the <owner>_<field> join table.
func (s *Store) Attach(ctx context.Context, owner schema.Record, field string, related schema.Record) error {
	if owner.ID() == nil {
		return fmt.Errorf("attach %s: owner record has no identity", field)
	}
	if related == nil || related.ID() == nil {
		return fmt.Errorf("attach %s: related record has no identity", field)
	}

	ownerSch := owner.Schema()
	table := ident(ownerSch.Name + "_" + field)
	ownerCol := ident(ownerSch.Name + "_id")
	relatedCol := ident(related.Schema().Name + "_id")

	query := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2)", table, ownerCol, relatedCol)
	_, err := s.pool.Exec(ctx, query, owner.ID(), related.ID())
	return err
}

// NewRecord returns a fresh unsaved record of the given schema.
func (s *Store) NewRecord(sch *schema.Schema) schema.Record {
	return &record{sch: sch, values: make(map[string]any)}
}
