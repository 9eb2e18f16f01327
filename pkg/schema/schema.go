package schema

// Kind is the native type tag of a scalar field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// RelKind describes a field's relation cardinality.
type RelKind int

const (
	RelNone RelKind = iota
	RelOne
	RelMany
)

// Field describes one declared field of a Schema.
type Field struct {
	Name        string
	Kind        Kind
	Nullable    bool
	Default     any        // static default, nil when absent
	DefaultFunc func() any // zero-argument producer, takes precedence over Default
	MaxLength   int        // 0 means unbounded
	Choices     []string   // empty means unconstrained
	Unique      bool
	Rel         RelKind
	Related     *Schema // non-nil iff Rel != RelNone
}

// HasDefault reports whether the field declares a static or produced default.
func (f Field) HasDefault() bool {
	return f.Default != nil || f.DefaultFunc != nil
}

// DefaultValue returns the field's default, invoking the producer when one is
// declared. Returns nil when the field has no default.
func (f Field) DefaultValue() any {
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return f.Default
}

// Schema describes one persisted record type.
type Schema struct {
	Name           string
	PrimaryKey     string
	Fields         []Field
	UniqueTogether [][]string // each group is a set of field names unique in combination
}

// Field returns the descriptor for the named field.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Has reports whether the schema declares the named field.
func (s *Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// ValidatedFields returns the declared fields subject to validation: every
// field except the primary key, which the store owns.
func (s *Schema) ValidatedFields() []Field {
	out := make([]Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == s.PrimaryKey {
			continue
		}
		out = append(out, f)
	}
	return out
}
