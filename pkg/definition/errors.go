package definition

import "errors"

var (
	// ErrEmptyFieldName is returned when a field has no name.
	ErrEmptyFieldName = errors.New("definition: field name is empty")
	// ErrFieldNameSpace is returned when a field name has leading or trailing
	// whitespace.
	ErrFieldNameSpace = errors.New("definition: field name has surrounding whitespace")
	// ErrDuplicateField is returned when two fields share a name.
	ErrDuplicateField = errors.New("definition: duplicate field")
	// ErrMissingOptions is returned when a choice field declares no options.
	ErrMissingOptions = errors.New("definition: choice field has no options")
	// ErrSchemaNotFound is returned when a named schema is absent.
	ErrSchemaNotFound = errors.New("definition: schema not found")
)
