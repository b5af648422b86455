package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-formlight/pkg/form"
)

// FromRules adapts an inline rule table into a resolver so it can be combined
// with other resolvers.
func FromRules(rules form.Rules) form.Resolver {
	return func(ctx context.Context, values form.Values) (form.Result, error) {
		if err := ctx.Err(); err != nil {
			return form.Result{}, err
		}
		errs := form.Errors{}
		for name, rule := range rules {
			if rule.Pattern == nil {
				continue
			}
			if _, ok := values[name]; !ok {
				continue
			}
			if !rule.Pattern.MatchString(values.String(name)) {
				errs[name] = rule.Message
			}
		}
		return form.Result{Values: values, Errors: errs}, nil
	}
}

// Chain runs resolvers in order, feeding each the values returned by the
// previous one. The first message reported for a field wins. Any error stops
// the chain.
func Chain(resolvers ...form.Resolver) form.Resolver {
	return func(ctx context.Context, values form.Values) (form.Result, error) {
		current := values
		errs := form.Errors{}
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			res, err := r(ctx, current)
			if err != nil {
				return form.Result{}, err
			}
			if res.Values != nil {
				current = res.Values
			}
			for name, message := range res.Errors {
				if message == "" {
					continue
				}
				if _, exists := errs[name]; !exists {
					errs[name] = message
				}
			}
		}
		return form.Result{Values: current, Errors: errs}, nil
	}
}

// WithTimeout bounds r by d. When the deadline passes first the resolver
// result is discarded and a context error is returned.
func WithTimeout(r form.Resolver, d time.Duration) form.Resolver {
	return func(ctx context.Context, values form.Values) (form.Result, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		type outcome struct {
			result form.Result
			err    error
		}
		done := make(chan outcome, 1)

		go func() {
			var out outcome
			defer func() {
				if rec := recover(); rec != nil {
					out = outcome{err: fmt.Errorf("resolver: panic: %v", rec)}
				}
				done <- out
			}()
			out.result, out.err = r(ctx, values)
		}()

		select {
		case out := <-done:
			return out.result, out.err
		case <-ctx.Done():
			return form.Result{}, fmt.Errorf("resolver: %w", ctx.Err())
		}
	}
}
