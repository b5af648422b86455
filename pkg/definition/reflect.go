package definition

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

// FromStruct reflects v (a struct or pointer to struct) into a definition
// using its json and jsonschema tags, for example
//
//	Name  string `json:"name" jsonschema:"title=이름,minLength=2"`
//	Email string `json:"email" jsonschema:"format=email,pattern=^[^@]+@[^@]+$"`
//	Agree bool   `json:"agree"`
//
// A validate tag (`validate:"required,email"`) is copied to Field.Validate.
// Field order follows the struct.
func FromStruct(v any) (Definition, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return Definition{}, fmt.Errorf("definition: FromStruct expects a struct, got %T", v)
	}

	r := &jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(v)
	if schema == nil || schema.Type != "object" {
		return Definition{}, fmt.Errorf("definition: %s did not reflect to an object schema", t.Name())
	}

	def := Definition{
		ID:     t.Name(),
		Title:  schema.Title,
		Source: "struct:" + t.String(),
	}
	if schema.Properties == nil {
		return def, nil
	}

	tags := validateTags(t)
	for el := schema.Properties.Oldest(); el != nil; el = el.Next() {
		src := el.Value
		if src == nil {
			continue
		}
		var minLength uint64
		if src.MinLength != nil {
			minLength = *src.MinLength
		}
		def.Fields = append(def.Fields, property{
			name:        el.Key,
			typ:         src.Type,
			title:       src.Title,
			description: src.Description,
			format:      src.Format,
			pattern:     src.Pattern,
			message:     stringExtension(src.Extras, extensionMessage),
			widget:      stringExtension(src.Extras, extensionWidget),
			def:         src.Default,
			enum:        src.Enum,
			minLength:   minLength,
			required:    contains(schema.Required, el.Key),
			validate:    tags[el.Key],
		}.field())
	}

	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// validateTags maps property names to the validate tags of exported fields.
func validateTags(t reflect.Type) map[string]string {
	tags := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := strings.TrimSpace(sf.Tag.Get("validate"))
		if tag == "" || tag == "-" {
			continue
		}
		name := sf.Name
		if jsonName, _, _ := strings.Cut(sf.Tag.Get("json"), ","); jsonName != "" {
			if jsonName == "-" {
				continue
			}
			name = jsonName
		}
		tags[name] = tag
	}
	return tags
}
