package validate_test

import (
	"github.com/dmitrymomot/modelkit/pkg/memstore"
	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// fixtures is one self-contained world per test: a fresh store plus the
// schemas the tests validate against.
type fixtures struct {
	store *memstore.Store

	organization *schema.Schema
	payGrade     *schema.Schema
	person       *schema.Schema
	employee     *schema.Schema
	basicFields  *schema.Schema
	course       *schema.Schema
	student      *schema.Schema
}

func newFixtures() *fixtures {
	f := &fixtures{store: memstore.New()}

	f.organization = &schema.Schema{
		Name:       "organization",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "name", Kind: schema.KindString},
		},
	}

	f.payGrade = &schema.Schema{
		Name:       "pay_grade",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "name", Kind: schema.KindString},
		},
	}

	f.person = &schema.Schema{
		Name:       "person",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "name", Kind: schema.KindString, MaxLength: 10, Unique: true},
		},
	}

	f.employee = &schema.Schema{
		Name:       "employee",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "name", Kind: schema.KindString},
			{Name: "gender", Kind: schema.KindString, Choices: []string{"M", "F"}},
			{Name: "organization", Rel: schema.RelOne, Related: f.organization},
			{Name: "pay_grade", Rel: schema.RelOne, Related: f.payGrade, Nullable: true},
		},
	}

	f.basicFields = &schema.Schema{
		Name:       "basic_fields",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "field1", Kind: schema.KindString, Default: "Tim"},
			{Name: "field2", Kind: schema.KindString},
			{Name: "field3", Kind: schema.KindString},
		},
		UniqueTogether: [][]string{{"field1", "field2"}},
	}

	f.course = &schema.Schema{
		Name:       "course",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "name", Kind: schema.KindString},
		},
	}

	f.student = &schema.Schema{
		Name:       "student",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Kind: schema.KindInt, Nullable: true},
			{Name: "name", Kind: schema.KindString},
			{Name: "courses", Rel: schema.RelMany, Related: f.course},
		},
	}

	return f
}

// record builds an unsaved record with the given values.
func (f *fixtures) record(sch *schema.Schema, values map[string]any) *memstore.Record {
	return memstore.NewRecordWith(sch, values)
}
