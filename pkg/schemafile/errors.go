package schemafile

import "errors"

var (
	ErrFailedToParseYAML  = errors.New("failed to parse schema definition")
	ErrNoSchemas          = errors.New("no schemas defined")
	ErrDuplicateSchema    = errors.New("duplicate schema name")
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrUnknownRelKind     = errors.New("unknown relation kind")
	ErrUnknownRelated     = errors.New("related schema is not defined")
	ErrMissingPrimaryKey  = errors.New("schema does not declare its primary key field")
	ErrUnknownGroupMember = errors.New("unique_together references an undeclared field")
)
