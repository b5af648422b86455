package definition

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPI builds a definition from the component schema schemaName of an
// OpenAPI 3 document. Booleans become toggles, enums become choices, and
// pattern/minLength/required become rules; the x-error-message extension
// supplies the rule message and x-formlight-order the field order (fields
// are otherwise sorted by name).
func FromOpenAPI(ctx context.Context, raw []byte, schemaName string) (Definition, error) {
	if err := ctx.Err(); err != nil {
		return Definition{}, err
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return Definition{}, fmt.Errorf("definition: load openapi document: %w", err)
	}

	if doc.Components == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}
	ref := doc.Components.Schemas[schemaName]
	if ref == nil || ref.Value == nil {
		return Definition{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, schemaName)
	}

	def := definitionFromOpenAPI(schemaName, ref.Value)
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

func definitionFromOpenAPI(id string, schema *openapi3.Schema) Definition {
	def := Definition{
		ID:     id,
		Title:  schema.Title,
		Source: "openapi#/components/schemas/" + id,
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	names = orderNames(names, schema.Extensions[extensionOrder])

	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		src := ref.Value
		def.Fields = append(def.Fields, property{
			name:        name,
			typ:         firstSchemaType(src.Type),
			title:       src.Title,
			description: src.Description,
			format:      src.Format,
			pattern:     src.Pattern,
			message:     stringExtension(src.Extensions, extensionMessage),
			widget:      stringExtension(src.Extensions, extensionWidget),
			def:         src.Default,
			enum:        src.Enum,
			minLength:   src.MinLength,
			required:    contains(schema.Required, name),
			validate:    stringExtension(src.Extensions, extensionValidate),
		}.field())
	}
	return def
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
