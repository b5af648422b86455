package resolver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formlight/pkg/form"
)

// validate is the shared validator instance.
var validate = validator.New()

// TagOption customises the Tags resolver.
type TagOption func(*tagConfig)

type tagConfig struct {
	validate *validator.Validate
	messages map[string]string
}

// WithMessages overrides failure messages. Keys are either "field.tag" for a
// specific constraint or "field" for any failure on that field.
func WithMessages(messages map[string]string) TagOption {
	return func(cfg *tagConfig) {
		if len(messages) == 0 {
			return
		}
		if cfg.messages == nil {
			cfg.messages = make(map[string]string, len(messages))
		}
		for key, message := range messages {
			cfg.messages[strings.TrimSpace(key)] = message
		}
	}
}

// WithValidator supplies a validator with custom registrations.
func WithValidator(v *validator.Validate) TagOption {
	return func(cfg *tagConfig) {
		if v != nil {
			cfg.validate = v
		}
	}
}

// Tags builds a resolver that checks each field against a validator tag
// expression such as "required,email" or "min=2". Fields are checked in name
// order and only the first failing constraint is reported per field. A
// malformed tag is returned as an error, which the form reports as a
// resolver failure.
func Tags(tags map[string]string, options ...TagOption) form.Resolver {
	cfg := tagConfig{validate: validate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(ctx context.Context, values form.Values) (result form.Result, err error) {
		if err := ctx.Err(); err != nil {
			return form.Result{}, err
		}

		defer func() {
			// validator panics on unknown tags.
			if r := recover(); r != nil {
				err = fmt.Errorf("resolver: invalid tag: %v", r)
			}
		}()

		errs := form.Errors{}
		for _, name := range names {
			value := values[name]
			if value == nil {
				value = ""
			}
			verr := cfg.validate.VarCtx(ctx, value, tags[name])
			if verr == nil {
				continue
			}
			var fieldErrs validator.ValidationErrors
			if errors.As(verr, &fieldErrs) && len(fieldErrs) > 0 {
				errs[name] = cfg.message(name, fieldErrs[0])
				continue
			}
			return form.Result{}, fmt.Errorf("resolver: field %s: %w", name, verr)
		}

		return form.Result{Values: values, Errors: errs}, nil
	}
}

// CheckTag reports whether tag parses as a validator tag expression.
func CheckTag(tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("resolver: invalid tag %q: %v", tag, r)
		}
	}()
	verr := validate.Var("", tag)
	var fieldErrs validator.ValidationErrors
	if verr != nil && !errors.As(verr, &fieldErrs) {
		return fmt.Errorf("resolver: invalid tag %q: %w", tag, verr)
	}
	return nil
}

func (cfg tagConfig) message(name string, fe validator.FieldError) string {
	if msg, ok := cfg.messages[name+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := cfg.messages[name]; ok {
		return msg
	}
	return defaultMessage(name, fe)
}

func defaultMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}
