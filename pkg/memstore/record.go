package memstore

import "github.com/dmitrymomot/modelkit/pkg/schema"

// Record is a map-backed schema.Record implementation.
type Record struct {
	sch    *schema.Schema
	id     any
	values map[string]any
}

// NewRecord returns a fresh unsaved record of the given schema.
func NewRecord(sch *schema.Schema) *Record {
	return &Record{
		sch:    sch,
		values: make(map[string]any),
	}
}

// NewRecordWith returns a fresh unsaved record pre-filled with values.
func NewRecordWith(sch *schema.Schema, values map[string]any) *Record {
	r := NewRecord(sch)
	for name, value := range values {
		r.values[name] = value
	}
	return r
}

func (r *Record) Schema() *schema.Schema {
	return r.sch
}

func (r *Record) Get(field string) any {
	return r.values[field]
}

func (r *Record) Set(field string, value any) {
	r.values[field] = value
}

func (r *Record) ID() any {
	return r.id
}

func (r *Record) SetID(id any) {
	r.id = id
}
