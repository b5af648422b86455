package form

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Event is the triggering submit event. Implementations suppress whatever
// default submission behaviour their environment has.
type Event interface {
	PreventDefault()
}

// SubmitFunc handles a submit event and reports whether the callback ran.
type SubmitFunc func(ctx context.Context, ev Event) bool

// HandleSubmit wraps callback so it only runs when validation passes. The
// callback receives the values as they are after validation.
func (f *Form) HandleSubmit(callback func(ctx context.Context, values Values)) SubmitFunc {
	return func(ctx context.Context, ev Event) bool {
		if ev != nil {
			ev.PreventDefault()
		}
		if ctx == nil {
			ctx = context.Background()
		}

		if !f.Validate(ctx) {
			capitan.Emit(ctx, FormSubmitBlocked,
				KeyFormID.Field(f.id),
				KeyErrorCount.Field(len(f.Errors())),
			)
			return false
		}

		capitan.Emit(ctx, FormSubmitted, KeyFormID.Field(f.id))
		if callback != nil {
			callback(ctx, f.Values())
		}
		return true
	}
}

// Reset restores the default values and clears every error.
func (f *Form) Reset() {
	state := f.store.replace(f.defaults.Clone(), Errors{})
	capitan.Emit(context.Background(), FormReset, KeyFormID.Field(f.id))
	f.store.notify(state)
}
