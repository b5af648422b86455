package definition

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formlight/pkg/form"
	"github.com/goliatone/go-formlight/pkg/resolver"
)

// Validate checks structural consistency: non-empty unique names without
// surrounding whitespace, options for choice fields, and compilable patterns.
func (d Definition) Validate() error {
	seen := make(map[string]struct{}, len(d.Fields))
	for idx, field := range d.Fields {
		name := field.Name
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w (form %q, index %d)", ErrEmptyFieldName, d.ID, idx)
		}
		if strings.TrimSpace(name) != name {
			return fmt.Errorf("%w: %q (form %q)", ErrFieldNameSpace, name, d.ID)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("%w %q (form %q)", ErrDuplicateField, name, d.ID)
		}
		seen[name] = struct{}{}

		if field.ResolvedKind() == form.KindChoice && len(field.Options) == 0 {
			return fmt.Errorf("%w: %q (form %q)", ErrMissingOptions, name, d.ID)
		}
		if field.Pattern != "" {
			if _, err := regexp.Compile(field.Pattern); err != nil {
				return fmt.Errorf("definition: field %q pattern: %w", name, err)
			}
		}
		if tag := strings.TrimSpace(field.Validate); tag != "" {
			if err := resolver.CheckTag(tag); err != nil {
				return fmt.Errorf("definition: field %q: %w", name, err)
			}
		}
	}
	return nil
}

// Config compiles the definition into a form.Config with rule based
// validation for every field that declares a pattern. When any field carries
// a validate tag the config gets a resolver instead, running the pattern
// rules first and then the tags, so the first message per field wins.
func (d Definition) Config() (form.Config, error) {
	if err := d.Validate(); err != nil {
		return form.Config{}, err
	}

	cfg := form.Config{
		Defaults: make(form.Values, len(d.Fields)),
		Kinds:    make(map[string]form.FieldKind, len(d.Fields)),
	}

	tags := map[string]string{}
	messages := map[string]string{}
	for _, field := range d.Fields {
		kind := field.ResolvedKind()
		cfg.Kinds[field.Name] = kind
		cfg.Defaults[field.Name] = defaultValue(field, kind)

		if tag := strings.TrimSpace(field.Validate); tag != "" {
			tags[field.Name] = tag
			if msg := strings.TrimSpace(field.Message); msg != "" {
				messages[field.Name] = msg
			}
		}

		if field.Pattern == "" {
			continue
		}
		if cfg.Rules == nil {
			cfg.Rules = make(form.Rules)
		}
		cfg.Rules[field.Name] = form.Rule{
			Pattern: regexp.MustCompile(field.Pattern),
			Message: ruleMessage(field),
		}
	}

	if len(tags) > 0 {
		cfg.Resolver = resolver.Chain(
			resolver.FromRules(cfg.Rules),
			resolver.Tags(tags, resolver.WithMessages(messages)),
		)
	}
	return cfg, nil
}

// New builds a form instance from the definition.
func (d Definition) New(options ...form.Option) (*form.Form, error) {
	cfg, err := d.Config()
	if err != nil {
		return nil, err
	}
	if d.ID != "" {
		options = append([]form.Option{form.WithID(d.ID)}, options...)
	}
	return form.New(cfg, options...), nil
}

func defaultValue(field Field, kind form.FieldKind) any {
	switch kind {
	case form.KindToggle:
		switch v := field.Default.(type) {
		case bool:
			return v
		case string:
			return strings.EqualFold(v, "true")
		default:
			return false
		}
	case form.KindChoice:
		if field.Default != nil {
			return fmt.Sprint(field.Default)
		}
		if len(field.Options) > 0 {
			return field.Options[0].Value
		}
		return ""
	default:
		if field.Default == nil {
			return ""
		}
		return fmt.Sprint(field.Default)
	}
}

func ruleMessage(field Field) string {
	if msg := strings.TrimSpace(field.Message); msg != "" {
		return msg
	}
	return fmt.Sprintf("%s is invalid", field.DisplayLabel())
}
