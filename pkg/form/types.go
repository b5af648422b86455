package form

import (
	"context"
	"fmt"
	"regexp"
)

// FormErrorKey is the reserved catch-all key used when validation itself
// fails (for example, a resolver returning an error).
const FormErrorKey = "form"

// GenericValidationMessage is surfaced under FormErrorKey when a resolver
// fails.
const GenericValidationMessage = "An error occurred during validation"

// Values maps field names to their current scalar value (string or bool).
type Values map[string]any

// Clone returns an independent copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

// String returns the string form of the named value as used by rules.
func (v Values) String(name string) string {
	return stringify(v[name])
}

// Errors maps field names to a human-readable message. A missing key means
// the field has no error.
type Errors map[string]string

// Clone returns an independent copy of e without empty messages.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for name, message := range e {
		if message == "" {
			continue
		}
		out[name] = message
	}
	return out
}

// Valid reports whether no non-empty message is present.
func (e Errors) Valid() bool {
	for _, message := range e {
		if message != "" {
			return false
		}
	}
	return true
}

// State is an immutable snapshot of a form instance.
type State struct {
	Values Values
	Errors Errors
}

// Rule is an inline validation rule for a single field. The pattern is
// matched against the string form of the field value; a mismatch yields
// Message.
type Rule struct {
	Pattern *regexp.Regexp
	Message string
}

// MustRule compiles pattern and panics when it is invalid. Intended for
// package-level rule tables.
func MustRule(pattern, message string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Message: message}
}

func (r Rule) check(value any) (string, bool) {
	if r.Pattern == nil {
		return "", true
	}
	if r.Pattern.MatchString(stringify(value)) {
		return "", true
	}
	return r.Message, false
}

// Rules maps field names to their rule.
type Rules map[string]Rule

// Result is returned by a Resolver: the (possibly transformed) values and the
// complete error map for the submitted values.
type Result struct {
	Values Values
	Errors Errors
}

// Resolver validates the full value set. It replaces rule based validation
// for the instance it is configured on.
type Resolver func(ctx context.Context, values Values) (Result, error)

// FieldKind declares how a binding interprets change events.
type FieldKind string

const (
	// KindText stores the raw string value.
	KindText FieldKind = "text"
	// KindToggle stores the checked flag as a bool (checkbox style).
	KindToggle FieldKind = "toggle"
	// KindChoice stores the option identifier when it becomes checked
	// (radio style).
	KindChoice FieldKind = "choice"
)

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}
