package schemafile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

type document struct {
	Schemas []schemaDef `yaml:"schemas"`
}

type schemaDef struct {
	Name           string     `yaml:"name"`
	PrimaryKey     string     `yaml:"primary_key"`
	Fields         []fieldDef `yaml:"fields"`
	UniqueTogether [][]string `yaml:"unique_together"`
}

type fieldDef struct {
	Name      string   `yaml:"name"`
	Type      string   `yaml:"type"`
	Nullable  bool     `yaml:"nullable"`
	Default   any      `yaml:"default"`
	MaxLength int      `yaml:"max_length"`
	Choices   []string `yaml:"choices"`
	Unique    bool     `yaml:"unique"`
	Relation  string   `yaml:"relation"`
	Related   string   `yaml:"related"`
}

// Load reads and parses a schema definition file.
func Load(path string) ([]*schema.Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse parses a YAML schema document and resolves relation references.
func Parse(content []byte) ([]*schema.Schema, error) {
	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	if len(doc.Schemas) == 0 {
		return nil, ErrNoSchemas
	}

	// First pass: build every schema so relations can reference schemas
	// declared later in the document.
	byName := make(map[string]*schema.Schema, len(doc.Schemas))
	out := make([]*schema.Schema, 0, len(doc.Schemas))
	for _, def := range doc.Schemas {
		if _, taken := byName[def.Name]; taken {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSchema, def.Name)
		}
		sch := &schema.Schema{
			Name:           def.Name,
			PrimaryKey:     def.PrimaryKey,
			UniqueTogether: def.UniqueTogether,
		}
		if sch.PrimaryKey == "" {
			sch.PrimaryKey = "id"
		}
		byName[def.Name] = sch
		out = append(out, sch)
	}

	for i, def := range doc.Schemas {
		sch := out[i]
		for _, fd := range def.Fields {
			field, err := buildField(def.Name, fd, byName)
			if err != nil {
				return nil, err
			}
			sch.Fields = append(sch.Fields, field)
		}
		if !sch.Has(sch.PrimaryKey) {
			return nil, fmt.Errorf("%w: %s.%s", ErrMissingPrimaryKey, sch.Name, sch.PrimaryKey)
		}
		for _, group := range sch.UniqueTogether {
			for _, member := range group {
				if !sch.Has(member) {
					return nil, fmt.Errorf("%w: %s.%s", ErrUnknownGroupMember, sch.Name, member)
				}
			}
		}
	}
	return out, nil
}

func buildField(schemaName string, fd fieldDef, byName map[string]*schema.Schema) (schema.Field, error) {
	field := schema.Field{
		Name:      fd.Name,
		Nullable:  fd.Nullable,
		Default:   fd.Default,
		MaxLength: fd.MaxLength,
		Choices:   fd.Choices,
		Unique:    fd.Unique,
	}

	if fd.Relation != "" {
		rel, err := relKind(fd.Relation)
		if err != nil {
			return schema.Field{}, fmt.Errorf("%s.%s: %w", schemaName, fd.Name, err)
		}
		related, ok := byName[fd.Related]
		if !ok {
			return schema.Field{}, fmt.Errorf("%w: %s.%s -> %s", ErrUnknownRelated, schemaName, fd.Name, fd.Related)
		}
		field.Rel = rel
		field.Related = related
		return field, nil
	}

	kind, err := fieldKind(fd.Type)
	if err != nil {
		return schema.Field{}, fmt.Errorf("%s.%s: %w", schemaName, fd.Name, err)
	}
	field.Kind = kind
	return field, nil
}

func fieldKind(name string) (schema.Kind, error) {
	switch name {
	case "", "string":
		return schema.KindString, nil
	case "int", "integer":
		return schema.KindInt, nil
	case "float", "number":
		return schema.KindFloat, nil
	case "bool", "boolean":
		return schema.KindBool, nil
	case "time", "datetime":
		return schema.KindTime, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFieldType, name)
	}
}

func relKind(name string) (schema.RelKind, error) {
	switch name {
	case "one":
		return schema.RelOne, nil
	case "many":
		return schema.RelMany, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownRelKind, name)
	}
}
