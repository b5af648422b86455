package form

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/zoobzio/capitan"
)

// Config describes a form instance. Rules and Resolver are alternative
// validation strategies; when both are set the resolver takes precedence.
type Config struct {
	// Defaults seeds the values and fixes the set of field names.
	Defaults Values
	// Rules declares inline pattern rules keyed by field name.
	Rules Rules
	// Resolver replaces Rules with a full-form validation function.
	Resolver Resolver
	// Kinds declares the field kind used by Register when no BindOption
	// overrides it.
	Kinds map[string]FieldKind
}

// Option customises a Form at construction time.
type Option func(*Form)

// WithLogger routes diagnostics to logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.log = logger
		}
	}
}

// WithID overrides the generated instance identifier carried on signals and
// log records.
func WithID(id string) Option {
	return func(f *Form) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			f.id = trimmed
		}
	}
}

// WithStrategy forces a validation strategy, ignoring Config.Rules and
// Config.Resolver.
func WithStrategy(strategy Strategy) Option {
	return func(f *Form) {
		f.strategy = strategy
	}
}

// Form is a single form instance. It is safe for concurrent use.
type Form struct {
	id       string
	defaults Values
	kinds    map[string]FieldKind
	strategy Strategy
	store    *store
	log      *slog.Logger
}

// New creates a form instance from cfg.
func New(cfg Config, options ...Option) *Form {
	defaults := cfg.Defaults.Clone()

	kinds := make(map[string]FieldKind, len(cfg.Kinds))
	for name, kind := range cfg.Kinds {
		kinds[name] = kind
	}

	f := &Form{
		id:       uuid.NewString(),
		defaults: defaults,
		kinds:    kinds,
		strategy: strategyFor(cfg),
		store:    newStore(defaults),
		log:      slog.New(slog.DiscardHandler),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}

	f.log = f.log.With(slog.String("form", f.id))
	return f
}

// ID returns the instance identifier.
func (f *Form) ID() string {
	return f.id
}

// Strategy reports which validation strategy the instance runs.
func (f *Form) Strategy() StrategyKind {
	return f.strategy.Kind()
}

// Defaults returns a copy of the configured default values.
func (f *Form) Defaults() Values {
	return f.defaults.Clone()
}

// Values returns a snapshot of the current values.
func (f *Form) Values() Values {
	return f.store.snapshot().Values
}

// Errors returns a snapshot of the current error messages.
func (f *Form) Errors() Errors {
	return f.store.snapshot().Errors
}

// State returns a consistent snapshot of values and errors.
func (f *Form) State() State {
	return f.store.snapshot()
}

// Subscribe registers fn to receive a snapshot after every state change.
// Listeners run synchronously on the goroutine that caused the change. The
// returned function removes the listener.
func (f *Form) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}
	return f.store.subscribe(fn)
}

// SetValue writes value without running validation.
func (f *Form) SetValue(name string, value any) {
	f.writeValue(context.Background(), name, value)
}

// Watch returns the current value of name, or a snapshot of every value when
// name is empty. It always reads live state.
func (f *Form) Watch(name string) any {
	if name == "" {
		return f.Values()
	}
	v, _ := f.store.value(name)
	return v
}

// Declared reports whether name is one of the fields fixed by the defaults.
func (f *Form) Declared(name string) bool {
	_, ok := f.defaults[name]
	return ok
}

func (f *Form) writeValue(ctx context.Context, name string, value any) {
	if !f.Declared(name) {
		f.log.Debug("write to undeclared field", slog.String("field", name))
	}
	state := f.store.mergeValues(Values{name: value})
	capitan.Emit(ctx, FormValuesChanged,
		KeyFormID.Field(f.id),
		KeyField.Field(name),
	)
	f.store.notify(state)
}

func (f *Form) publishErrors(ctx context.Context, state State) {
	capitan.Emit(ctx, FormErrorsChanged,
		KeyFormID.Field(f.id),
		KeyErrorCount.Field(len(state.Errors)),
	)
	f.store.notify(state)
}
