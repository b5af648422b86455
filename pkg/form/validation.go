package form

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zoobzio/capitan"
)

// StrategyKind names a validation strategy.
type StrategyKind string

const (
	StrategyNone     StrategyKind = "none"
	StrategyRules    StrategyKind = "rules"
	StrategyResolver StrategyKind = "resolver"
)

// Strategy is the validation configuration of a form instance. It holds
// exactly one of: nothing, a rule table, or a resolver.
type Strategy struct {
	kind     StrategyKind
	rules    Rules
	resolver Resolver
}

// NoValidation makes Validate always succeed.
func NoValidation() Strategy {
	return Strategy{kind: StrategyNone}
}

// RuleBased validates fields against inline pattern rules. An empty table is
// equivalent to NoValidation.
func RuleBased(rules Rules) Strategy {
	if len(rules) == 0 {
		return NoValidation()
	}
	copied := make(Rules, len(rules))
	for name, rule := range rules {
		copied[name] = rule
	}
	return Strategy{kind: StrategyRules, rules: copied}
}

// ResolverBased delegates validation to resolver. A nil resolver is
// equivalent to NoValidation.
func ResolverBased(resolver Resolver) Strategy {
	if resolver == nil {
		return NoValidation()
	}
	return Strategy{kind: StrategyResolver, resolver: resolver}
}

// Kind reports the selected strategy.
func (s Strategy) Kind() StrategyKind {
	if s.kind == "" {
		return StrategyNone
	}
	return s.kind
}

// covers reports whether a single-field pass applies to name.
func (s Strategy) covers(name string) bool {
	switch s.kind {
	case StrategyRules:
		_, ok := s.rules[name]
		return ok
	case StrategyResolver:
		return true
	default:
		return false
	}
}

func strategyFor(cfg Config) Strategy {
	if cfg.Resolver != nil {
		return ResolverBased(cfg.Resolver)
	}
	return RuleBased(cfg.Rules)
}

// Validate runs the configured strategy against the current values, updates
// the error map, and reports whether the form is valid. Resolver failures are
// recovered and reported under FormErrorKey; nothing propagates to the
// caller.
func (f *Form) Validate(ctx context.Context) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	var valid bool
	switch f.strategy.Kind() {
	case StrategyRules:
		valid = f.validateRules(ctx)
	case StrategyResolver:
		valid = f.validateResolver(ctx)
	default:
		valid = true
	}

	capitan.Emit(ctx, FormValidated,
		KeyFormID.Field(f.id),
		KeyStrategy.Field(string(f.strategy.Kind())),
		KeyErrorCount.Field(len(f.Errors())),
	)
	return valid
}

func (f *Form) validateRules(ctx context.Context) bool {
	values := f.Values()

	partial := make(Errors, len(f.strategy.rules))
	valid := true
	for name, rule := range f.strategy.rules {
		value, ok := values[name]
		if !ok {
			continue
		}
		message, ok := rule.check(value)
		if !ok {
			valid = false
		}
		partial[name] = message
	}

	f.publishErrors(ctx, f.store.mergeErrors(partial))
	return valid
}

func (f *Form) validateResolver(ctx context.Context) bool {
	result, err := f.resolve(ctx, f.Values())
	if err != nil {
		f.publishErrors(ctx, f.store.adopt(nil, Errors{FormErrorKey: GenericValidationMessage}))
		return false
	}

	errs := result.Errors
	if errs == nil {
		errs = Errors{}
	}
	valid := errs.Valid()

	var adopted Values
	if valid {
		adopted = f.declaredOnly(result.Values)
	}

	state := f.store.adopt(adopted, errs)
	if len(adopted) > 0 {
		capitan.Emit(ctx, FormValuesChanged, KeyFormID.Field(f.id))
	}
	f.publishErrors(ctx, state)
	return valid
}

// validateField re-runs validation for a single field after a binder write.
func (f *Form) validateField(ctx context.Context, name string) {
	if !f.strategy.covers(name) {
		f.publishErrors(ctx, f.store.mergeErrors(Errors{name: ""}))
		return
	}

	switch f.strategy.Kind() {
	case StrategyRules:
		value, _ := f.store.value(name)
		message, _ := f.strategy.rules[name].check(value)
		f.publishErrors(ctx, f.store.mergeErrors(Errors{name: message}))
	case StrategyResolver:
		result, err := f.resolve(ctx, f.Values())
		if err != nil {
			f.publishErrors(ctx, f.store.mergeErrors(Errors{FormErrorKey: GenericValidationMessage}))
			return
		}
		// A successful pass also settles the catch-all left by an earlier failure.
		f.publishErrors(ctx, f.store.mergeErrors(Errors{
			name:         result.Errors[name],
			FormErrorKey: result.Errors[FormErrorKey],
		}))
	}
}

// resolve calls the resolver, converting panics into errors.
func (f *Form) resolve(ctx context.Context, values Values) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("form: resolver panic: %v", r)
		}
		if err != nil {
			f.log.Warn("resolver failed", slog.String("err", err.Error()))
			capitan.Emit(ctx, FormResolverFailed,
				KeyFormID.Field(f.id),
				KeyError.Field(err.Error()),
			)
		}
	}()
	return f.strategy.resolver(ctx, values)
}

func (f *Form) declaredOnly(values Values) Values {
	if len(values) == 0 {
		return nil
	}
	out := make(Values, len(values))
	for name, value := range values {
		if f.Declared(name) {
			out[name] = value
		}
	}
	return out
}
