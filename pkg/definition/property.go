package definition

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formlight/pkg/form"
)

const (
	extensionMessage  = "x-error-message"
	extensionWidget   = "x-formlight-widget"
	extensionOrder    = "x-formlight-order"
	extensionValidate = "x-formlight-validate"
)

// property is the schema-agnostic view of one object property shared by the
// OpenAPI and struct reflection sources.
type property struct {
	name        string
	typ         string
	title       string
	description string
	format      string
	pattern     string
	message     string
	widget      string
	def         any
	enum        []any
	minLength   uint64
	required    bool
	validate    string
}

func (p property) field() Field {
	field := Field{
		Name:     p.name,
		Label:    p.title,
		Help:     p.description,
		Default:  p.def,
		Pattern:  p.pattern,
		Message:  p.message,
		Widget:   Widget(p.widget),
		Validate: p.validate,
	}

	switch {
	case p.typ == "boolean":
		field.Kind = form.KindToggle
	case len(p.enum) > 0:
		field.Kind = form.KindChoice
		for _, value := range p.enum {
			field.Options = append(field.Options, Option{Value: fmt.Sprint(value)})
		}
	default:
		field.Kind = form.KindText
		field.InputType = inputTypeFor(p.typ, p.format)
		if field.Widget == "" && p.format == "textarea" {
			field.Widget = WidgetTextarea
		}
	}

	if field.Pattern == "" && field.Kind == form.KindText {
		switch {
		case p.minLength > 0:
			field.Pattern = fmt.Sprintf(`^[\s\S]{%d,}$`, p.minLength)
		case p.required:
			field.Pattern = `^[\s\S]+$`
		}
		if field.Pattern != "" && field.Message == "" {
			field.Message = requiredMessage(field, p.minLength)
		}
	}

	return field
}

func inputTypeFor(typ, format string) string {
	switch {
	case typ == "integer" || typ == "number":
		return "number"
	case format == "email" || format == "password" || format == "date" || format == "url":
		return format
	case format == "uri":
		return "url"
	default:
		return ""
	}
}

func requiredMessage(field Field, minLength uint64) string {
	if minLength > 0 {
		return fmt.Sprintf("%s must be at least %d characters", field.DisplayLabel(), minLength)
	}
	return fmt.Sprintf("%s is required", field.DisplayLabel())
}

func stringExtension(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	if s, ok := ext[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// orderNames places names listed in order first, then the rest in their
// given order.
func orderNames(names []string, order any) []string {
	list, ok := order.([]any)
	if !ok || len(list) == 0 {
		return names
	}

	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	out := make([]string, 0, len(names))
	placed := make(map[string]bool, len(names))
	for _, raw := range list {
		name, ok := raw.(string)
		if !ok || !present[name] || placed[name] {
			continue
		}
		out = append(out, name)
		placed[name] = true
	}
	for _, name := range names {
		if !placed[name] {
			out = append(out, name)
		}
	}
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
